package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/models"
	"docqa/internal/prompts"
)

// fakeRetriever records the queries it gets and returns fixed chunks.
type fakeRetriever struct {
	chunks  []models.Chunk
	queries []string
}

func (f *fakeRetriever) GetRelevant(_ context.Context, query string) ([]models.Chunk, error) {
	f.queries = append(f.queries, query)
	return f.chunks, nil
}

// fakeGenerator records prompts and replays scripted responses in order.
// An empty script answers "ok" forever.
type fakeGenerator struct {
	prompts   []string
	responses []string
	errs      []error
	calls     int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "ok", nil
}

func defaultTemplate(t *testing.T) prompts.Template {
	t.Helper()
	tpl, err := prompts.Resolve(prompts.CategoryDefault, "Default")
	require.NoError(t, err)
	return tpl
}

func metoprololChunks() []models.Chunk {
	return []models.Chunk{
		{ID: "c1", Content: "Metoprolol is a beta blocker.", Source: "meds.pdf", PageNumber: 0},
		{ID: "c2", Content: "The copay for metoprolol is $10.", Source: "meds.pdf", PageNumber: 1},
	}
}

func TestAskFirstQuestionSkipsCondense(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	generator := &fakeGenerator{responses: []string{"It lowers blood pressure."}}
	session := New(ModeConversational, retriever, generator, defaultTemplate(t))

	answer, err := session.Ask(context.Background(), "What is metoprolol?")
	require.NoError(t, err)

	// With no history, retrieval runs on the verbatim question and only
	// one model call happens.
	require.Equal(t, []string{"What is metoprolol?"}, retriever.queries)
	require.Len(t, generator.prompts, 1)
	assert.Equal(t, "It lowers blood pressure.", answer.Answer)
	assert.Equal(t, metoprololChunks(), answer.SourceChunks)
}

func TestAskFollowUpCondensesBeforeRetrieval(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	generator := &fakeGenerator{responses: []string{
		"Metoprolol is a beta blocker.",
		"What is metoprolol used for?",
		"It treats high blood pressure.",
	}}
	session := New(ModeConversational, retriever, generator, defaultTemplate(t))

	_, err := session.Ask(context.Background(), "What is metoprolol?")
	require.NoError(t, err)

	_, err = session.Ask(context.Background(), "What is it for?")
	require.NoError(t, err)

	// Retrieval got the rewritten standalone query.
	require.Len(t, retriever.queries, 2)
	assert.Equal(t, "What is metoprolol used for?", retriever.queries[1])

	// The condense prompt carried the prior turn.
	require.Len(t, generator.prompts, 3)
	condensePrompt := generator.prompts[1]
	assert.Contains(t, condensePrompt, "Human: What is metoprolol?")
	assert.Contains(t, condensePrompt, "Assistant: Metoprolol is a beta blocker.")
	assert.Contains(t, condensePrompt, "Follow up question: What is it for?")

	// Synthesis used the original question, not the rewrite.
	synthesisPrompt := generator.prompts[2]
	assert.Contains(t, synthesisPrompt, "What is it for?")
	assert.NotContains(t, synthesisPrompt, "What is metoprolol used for?")
}

func TestAskSynthesisPromptContainsContext(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	generator := &fakeGenerator{}
	session := New(ModeConversational, retriever, generator, defaultTemplate(t))

	_, err := session.Ask(context.Background(), "What is metoprolol?")
	require.NoError(t, err)

	prompt := generator.prompts[0]
	assert.Contains(t, prompt, "Metoprolol is a beta blocker.")
	assert.Contains(t, prompt, "The copay for metoprolol is $10.")
	assert.Contains(t, prompt, contextSeparator)
}

func TestAskHistoryGrowsOnePerSuccess(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	generator := &fakeGenerator{}
	session := New(ModeConversational, retriever, generator, defaultTemplate(t))

	for i := 0; i < 3; i++ {
		_, err := session.Ask(context.Background(), "What is metoprolol?")
		require.NoError(t, err)
	}
	assert.Len(t, session.History(), 3)
}

func TestAskFailureLeavesHistoryUntouched(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	generator := &fakeGenerator{
		responses: []string{"first answer"},
		errs:      []error{nil, errors.New("provider timeout")},
	}
	session := New(ModeSingleTurn, retriever, generator, defaultTemplate(t))

	_, err := session.Ask(context.Background(), "first question")
	require.NoError(t, err)

	_, err = session.Ask(context.Background(), "second question")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)

	history := session.History()
	require.Len(t, history, 1)
	assert.Equal(t, "first question", history[0].Question)
}

func TestAskCondenseFailureIsGenerationError(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	generator := &fakeGenerator{
		errs: []error{nil, errors.New("provider timeout")},
	}
	session := New(ModeConversational, retriever, generator, defaultTemplate(t))

	_, err := session.Ask(context.Background(), "What is metoprolol?")
	require.NoError(t, err)

	_, err = session.Ask(context.Background(), "What is it for?")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Len(t, session.History(), 1)
	// Retrieval never ran for the failed ask.
	assert.Len(t, retriever.queries, 1)
}

func TestAskSingleTurnIgnoresHistoryInPayload(t *testing.T) {
	question := "What is the copay?"

	fresh := &fakeGenerator{}
	freshSession := New(ModeSingleTurn, &fakeRetriever{chunks: metoprololChunks()}, fresh, defaultTemplate(t))
	_, err := freshSession.Ask(context.Background(), question)
	require.NoError(t, err)

	seasoned := &fakeGenerator{}
	seasonedRetriever := &fakeRetriever{chunks: metoprololChunks()}
	seasonedSession := New(ModeSingleTurn, seasonedRetriever, seasoned, defaultTemplate(t))
	for i := 0; i < 2; i++ {
		_, err := seasonedSession.Ask(context.Background(), "unrelated warmup question")
		require.NoError(t, err)
	}
	_, err = seasonedSession.Ask(context.Background(), question)
	require.NoError(t, err)

	// Identical Ready state, different histories, same payload: history is
	// recorded but never fed back into generation.
	assert.Equal(t, fresh.prompts[0], seasoned.prompts[2])
	assert.Len(t, seasonedSession.History(), 3)

	// And no condense call ever happens in single-turn mode.
	assert.Equal(t, []string{"unrelated warmup question", "unrelated warmup question", question}, seasonedRetriever.queries)
}

func TestAskEmptyIndexProceedsWithEmptyContext(t *testing.T) {
	retriever := &fakeRetriever{}
	generator := &fakeGenerator{responses: []string{"I don't have enough information."}}
	session := New(ModeConversational, retriever, generator, defaultTemplate(t))

	answer, err := session.Ask(context.Background(), "What is metoprolol?")
	require.NoError(t, err)
	assert.Empty(t, answer.SourceChunks)
	assert.Contains(t, generator.prompts[0], "Context: \n")
}

func TestAskBlankCondenseFallsBackToQuestion(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	generator := &fakeGenerator{responses: []string{"answer one", "   "}}
	session := New(ModeConversational, retriever, generator, defaultTemplate(t))

	_, err := session.Ask(context.Background(), "What is metoprolol?")
	require.NoError(t, err)
	_, err = session.Ask(context.Background(), "What is it for?")
	require.NoError(t, err)

	assert.Equal(t, "What is it for?", retriever.queries[1])
}

func TestReset(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	session := New(ModeConversational, retriever, &fakeGenerator{}, defaultTemplate(t))

	_, err := session.Ask(context.Background(), "What is metoprolol?")
	require.NoError(t, err)
	require.Len(t, session.History(), 1)

	session.Reset()
	assert.Empty(t, session.History())

	// After reset the next ask is a first question again: no condense.
	generatorCallsBefore := len(retriever.queries)
	_, err = session.Ask(context.Background(), "What is atenolol?")
	require.NoError(t, err)
	assert.Equal(t, "What is atenolol?", retriever.queries[generatorCallsBefore])
}

func TestHistoryReturnsCopy(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	session := New(ModeConversational, retriever, &fakeGenerator{}, defaultTemplate(t))

	_, err := session.Ask(context.Background(), "What is metoprolol?")
	require.NoError(t, err)

	history := session.History()
	history[0].Question = "mutated"
	assert.Equal(t, "What is metoprolol?", session.History()[0].Question)
}

func TestConversationalPromptIncludesHistory(t *testing.T) {
	retriever := &fakeRetriever{chunks: metoprololChunks()}
	generator := &fakeGenerator{responses: []string{
		"beta blocker",
		"standalone query",
		"final answer",
	}}
	session := New(ModeConversational, retriever, generator, defaultTemplate(t))

	_, err := session.Ask(context.Background(), "What is metoprolol?")
	require.NoError(t, err)
	_, err = session.Ask(context.Background(), "What is it for?")
	require.NoError(t, err)

	synthesis := generator.prompts[2]
	assert.True(t, strings.HasPrefix(synthesis, "Chat History:\n"))
	assert.Contains(t, synthesis, "Human: What is metoprolol?")
}
