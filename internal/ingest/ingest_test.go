package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/document"
	"docqa/internal/vectorindex"
)

// stubEmbedder satisfies the embeddings interface for wiring tests that
// never reach the embedding step.
type stubEmbedder struct{}

func (stubEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1}
	}
	return out, nil
}

func (stubEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1}, nil
}

func defaultOpts() Options {
	return Options{Strategy: document.StrategyRecursive, ChunkSize: 1000, ChunkOverlap: 0}
}

func TestIngestAllSourcesUnreadable(t *testing.T) {
	dir := t.TempDir()
	index := vectorindex.New(dir, "index", 4, stubEmbedder{})

	sources := []string{
		filepath.Join(dir, "missing.pdf"),
		"report.docx",
	}
	err := Ingest(context.Background(), index, sources, defaultOpts())
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorindex.ErrIndexCreation)

	// Nothing was persisted.
	_, statErr := os.Stat(filepath.Join(dir, "index.chromem"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestIngestEmptySourceList(t *testing.T) {
	index := vectorindex.New(t.TempDir(), "index", 4, stubEmbedder{})
	err := Ingest(context.Background(), index, nil, defaultOpts())
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorindex.ErrIndexCreation)
}

func TestIngestInvalidSplitOptions(t *testing.T) {
	index := vectorindex.New(t.TempDir(), "index", 4, stubEmbedder{})
	err := Ingest(context.Background(), index, []string{"doc.pdf"}, Options{
		Strategy:     document.StrategyRecursive,
		ChunkSize:    100,
		ChunkOverlap: 100,
	})
	require.Error(t, err)
	// Invalid chunk bounds are not a per-source load failure; they abort
	// the batch.
	assert.NotErrorIs(t, err, document.ErrDocumentLoad)
}
