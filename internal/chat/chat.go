package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"docqa/internal/models"
	"docqa/internal/prompts"
	"docqa/internal/vectorindex"
)

var ErrGeneration = errors.New("generation failed")

// Mode selects how a session treats its history.
type Mode string

const (
	// ModeConversational condenses follow-ups against the history before
	// retrieval and includes prior turns in the synthesis prompt.
	ModeConversational Mode = "conversational"
	// ModeSingleTurn answers every question in isolation. Turns are still
	// recorded for display, but never fed back into generation.
	ModeSingleTurn Mode = "single"
)

// Separator between retrieved chunk texts in the synthesis prompt.
const contextSeparator = "\n---------\n"

// Generator produces a completion for a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Chat answers questions against a bound retriever, accumulating turn
// history for the lifetime of the session. Not safe for concurrent Ask
// calls; one in-flight question per session.
type Chat struct {
	mode      Mode
	retriever vectorindex.Retriever
	generator Generator
	template  prompts.Template
	history   []models.Turn
}

func New(mode Mode, retriever vectorindex.Retriever, generator Generator, template prompts.Template) *Chat {
	return &Chat{
		mode:      mode,
		retriever: retriever,
		generator: generator,
		template:  template,
	}
}

// Ask answers one question. In conversational mode a follow-up is first
// rewritten into a standalone search query; retrieval runs on the rewrite
// while synthesis always gets the original question. The turn is appended
// to history only after the whole call succeeds.
func (c *Chat) Ask(ctx context.Context, question string) (models.Answer, error) {
	searchQuery := question
	if c.mode == ModeConversational && len(c.history) > 0 {
		condensed, err := c.generator.Generate(ctx, prompts.RenderCondense(c.historyString(), question))
		if err != nil {
			return models.Answer{}, fmt.Errorf("%w: condensing question: %v", ErrGeneration, err)
		}
		if s := strings.TrimSpace(condensed); s != "" {
			searchQuery = s
		}
		log.Debug().Str("standalone", searchQuery).Msg("condensed follow-up question")
	}

	chunks, err := c.retriever.GetRelevant(ctx, searchQuery)
	if err != nil {
		return models.Answer{}, err
	}
	if len(chunks) == 0 {
		log.Debug().Msg("no relevant chunks; answering with empty context")
	}

	prompt := c.buildPrompt(chunks, question)
	answer, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return models.Answer{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	c.history = append(c.history, models.Turn{Question: question, Answer: answer})
	return models.Answer{Answer: answer, SourceChunks: chunks}, nil
}

func (c *Chat) buildPrompt(chunks []models.Chunk, question string) string {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	var b strings.Builder
	if c.mode == ModeConversational && len(c.history) > 0 {
		b.WriteString("Chat History:\n")
		b.WriteString(c.historyString())
		b.WriteString("\n\n")
	}
	b.WriteString(c.template.Render(strings.Join(texts, contextSeparator), question))
	return b.String()
}

func (c *Chat) historyString() string {
	pairs := make([]string, len(c.history))
	for i, turn := range c.history {
		pairs[i] = fmt.Sprintf("Human: %s\nAssistant: %s", turn.Question, turn.Answer)
	}
	return strings.Join(pairs, "\n\n")
}

// History returns a copy of the session's turns, oldest first.
func (c *Chat) History() []models.Turn {
	out := make([]models.Turn, len(c.history))
	copy(out, c.history)
	return out
}

// Reset discards the whole session history. Individual turns are never
// deleted.
func (c *Chat) Reset() {
	c.history = nil
}
