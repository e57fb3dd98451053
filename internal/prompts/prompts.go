package prompts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownTemplate = errors.New("unknown prompt template")

// Category groups answer styles by intent.
type Category string

const (
	CategoryDefault Category = "default"
	CategoryMedical Category = "medical"
	CategoryHumor   Category = "humor"
)

// Template is an immutable prompt with {context} and {question}
// placeholders, resolved once at session setup and never mutated.
type Template struct {
	Category    Category
	Style       string
	Description string
	Text        string
}

// Render substitutes the retrieved context and the user question into the
// template.
func (t Template) Render(context, question string) string {
	r := strings.NewReplacer("{context}", context, "{question}", question)
	return r.Replace(t.Text)
}

// CondenseQuestion rewrites a follow-up into a standalone search query.
const CondenseQuestion = `Combine the chat history and follow up question into a standalone question.
Chat History:
{chat_history}
Follow up question: {question}
`

// RenderCondense fills the condense template with the serialized history
// and the follow-up question.
func RenderCondense(chatHistory, question string) string {
	r := strings.NewReplacer("{chat_history}", chatHistory, "{question}", question)
	return r.Replace(CondenseQuestion)
}

// Resolve looks up one (category, style) pair. Unknown pairs fail here,
// at session setup, not on the first ask.
func Resolve(category Category, style string) (Template, error) {
	styles, ok := registry[category]
	if !ok {
		return Template{}, fmt.Errorf("%w: category %q", ErrUnknownTemplate, category)
	}
	tpl, ok := styles[style]
	if !ok {
		return Template{}, fmt.Errorf("%w: style %q in category %q", ErrUnknownTemplate, style, category)
	}
	return tpl, nil
}

// Categories lists the known categories in stable order.
func Categories() []Category {
	out := make([]Category, 0, len(registry))
	for c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Styles lists the style names of one category in stable order.
func Styles(category Category) ([]string, error) {
	styles, ok := registry[category]
	if !ok {
		return nil, fmt.Errorf("%w: category %q", ErrUnknownTemplate, category)
	}
	out := make([]string, 0, len(styles))
	for name := range styles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
