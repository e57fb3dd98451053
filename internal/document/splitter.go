package document

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/helper"
	"docqa/internal/models"
)

// Strategy selects how page text is cut into chunks.
type Strategy string

const (
	// StrategyRecursive splits on a prioritized list of separators until
	// every chunk fits the size limit, with exact character overlap
	// between neighbours on the same page.
	StrategyRecursive Strategy = "recursive"
	// StrategyFixed splits on the paragraph separator only and merges
	// consecutive pieces up to the size limit.
	StrategyFixed Strategy = "fixed"
)

const paragraphSeparator = "\n\n"

// Separators tried in order when looking for a clean cut point.
var recursiveSeparators = []string{"\n\n", "\n", ". ", " "}

type SplitOptions struct {
	Strategy     Strategy
	ChunkSize    int
	ChunkOverlap int
}

// Validate rejects size/overlap combinations the splitter cannot honor.
func (o SplitOptions) Validate() error {
	if o.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", o.ChunkSize)
	}
	if o.ChunkOverlap < 0 || o.ChunkOverlap >= o.ChunkSize {
		return fmt.Errorf("chunk overlap must be in [0, %d), got %d", o.ChunkSize, o.ChunkOverlap)
	}
	switch o.Strategy {
	case StrategyRecursive, StrategyFixed:
		return nil
	default:
		return fmt.Errorf("unknown split strategy: %q", o.Strategy)
	}
}

// Split cuts the extracted pages into chunks under the chosen strategy.
// Every chunk gets a fresh unique ID; chunks never span page boundaries.
func Split(pages []Page, opts SplitOptions) ([]models.Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var chunks []models.Chunk
	for _, page := range pages {
		text := strings.TrimSpace(page.Text)
		if text == "" {
			continue
		}
		var pieces []string
		switch opts.Strategy {
		case StrategyRecursive:
			pieces = splitRecursive(text, opts.ChunkSize, opts.ChunkOverlap)
		case StrategyFixed:
			pieces = splitFixed(text, opts.ChunkSize, opts.ChunkOverlap)
		}
		for _, piece := range pieces {
			chunks = append(chunks, models.Chunk{
				ID:         helper.NewID(),
				Content:    piece,
				Source:     page.Source,
				PageNumber: page.Number,
			})
		}
	}
	return chunks, nil
}

// LoadAndSplit loads a source and splits it in one go. A document with no
// extractable text yields zero chunks, which the index refuses downstream.
func LoadAndSplit(ctx context.Context, source string, opts SplitOptions) ([]models.Chunk, error) {
	pages, err := Load(ctx, source)
	if err != nil {
		return nil, err
	}
	return Split(pages, opts)
}

// splitRecursive walks the text in windows of at most size characters.
// Each window ends at the best available separator near the limit, and the
// next window starts exactly overlap characters before the previous end, so
// the trailing overlap of chunk i is the leading text of chunk i+1.
func splitRecursive(text string, size, overlap int) []string {
	if len(text) <= size {
		return []string{text}
	}

	var out []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			out = append(out, text[start:])
			break
		}
		end = cutPoint(text, start, end, size)
		if end-overlap <= start {
			// A separator this early would stall the scan; hard cut instead.
			end = start + size
		}
		out = append(out, text[start:end])
		start = end - overlap
	}
	return out
}

// cutPoint moves end back to the nearest preferred separator within the
// last tenth of the window. Falls back to a hard cut when no separator is
// close enough or when moving back would stall the scan.
func cutPoint(text string, start, end, size int) int {
	lookBack := size / 10
	if lookBack < 1 {
		return end
	}
	from := end - lookBack
	if from < start {
		from = start
	}
	for _, sep := range recursiveSeparators {
		idx := strings.LastIndex(text[from:end], sep)
		if idx < 0 {
			continue
		}
		candidate := from + idx + len(sep)
		if candidate > start {
			return candidate
		}
	}
	return end
}

// splitFixed splits on the paragraph separator and greedily merges pieces
// up to the size limit, carrying overlap characters of trailing context
// into the next chunk. A single paragraph longer than the limit is kept
// whole rather than cut mid-word.
func splitFixed(text string, size, overlap int) []string {
	parts := strings.Split(text, paragraphSeparator)

	var out []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		chunk := b.String()
		out = append(out, chunk)
		b.Reset()
		if overlap > 0 && len(chunk) > overlap {
			b.WriteString(chunk[len(chunk)-overlap:])
		}
	}

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if b.Len() > 0 && b.Len()+len(paragraphSeparator)+len(part) > size {
			flush()
		}
		if b.Len() > 0 {
			b.WriteString(paragraphSeparator)
		}
		b.WriteString(part)
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
