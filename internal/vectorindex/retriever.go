package vectorindex

import (
	"context"

	"docqa/internal/models"
)

// Retriever is the read-only capability handed to the chat orchestrator.
// It hides the index's mutation methods.
type Retriever interface {
	GetRelevant(ctx context.Context, query string) ([]models.Chunk, error)
}

type retriever struct {
	index *Index
	topK  int
}

// Retriever narrows the index to similarity retrieval at the configured
// top-k.
func (i *Index) Retriever() Retriever {
	return &retriever{index: i, topK: i.topK}
}

func (r *retriever) GetRelevant(ctx context.Context, query string) ([]models.Chunk, error) {
	results, err := r.index.SimilaritySearch(ctx, query, r.topK)
	if err != nil {
		return nil, err
	}
	chunks := make([]models.Chunk, 0, len(results))
	for _, res := range results {
		chunks = append(chunks, res.Chunk)
	}
	return chunks, nil
}
