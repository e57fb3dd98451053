package chat

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"docqa/internal/models"
)

// FormatSources renders the retrieved chunks as a citation list, one line
// per source document with grouped 1-indexed page ranges, e.g.
// "- guidelines.pdf (pages: 2-4, 7)".
func FormatSources(chunks []models.Chunk) string {
	sourcePages := make(map[string][]int)
	var order []string
	for _, chunk := range chunks {
		name := sourceName(chunk.Source)
		if _, seen := sourcePages[name]; !seen {
			order = append(order, name)
		}
		// Page numbers are stored 0-indexed.
		sourcePages[name] = append(sourcePages[name], chunk.PageNumber+1)
	}

	var b strings.Builder
	for _, name := range order {
		pages := sourcePages[name]
		sort.Ints(pages)
		b.WriteString(fmt.Sprintf("- %s (pages: %s)\n", name, strings.Join(pageRanges(pages), ", ")))
	}
	return b.String()
}

func sourceName(source string) string {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		u, err := url.Parse(source)
		if err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(source)
}

// pageRanges collapses sorted page numbers into continuous ranges.
func pageRanges(pages []int) []string {
	var out []string
	start, end := pages[0], pages[0]
	for _, page := range pages[1:] {
		if page-end > 1 {
			out = append(out, formatRange(start, end))
			start = page
		}
		end = page
	}
	out = append(out, formatRange(start, end))
	return out
}

func formatRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
