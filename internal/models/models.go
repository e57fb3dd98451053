package models

// Chunk is a bounded span of text from one page of one source document.
// Chunks are created once during splitting and never mutated afterwards.
type Chunk struct {
	ID         string
	Content    string
	Source     string
	PageNumber int // zero-based at load time, shown 1-indexed to users
}

// SearchResult pairs a retrieved chunk with its similarity score.
// Results are ordered best-first.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// Turn is one (question, answer) exchange within a chat session.
type Turn struct {
	Question string
	Answer   string
}

// Answer is the outcome of one ask: the model output plus the chunks
// that were fed into the synthesis prompt.
type Answer struct {
	Answer       string
	SourceChunks []Chunk
}
