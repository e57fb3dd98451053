package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"docqa/internal/document"
	"docqa/internal/vectorindex"
)

// Options carries the chunking settings for one ingestion batch.
type Options struct {
	Strategy     document.Strategy
	ChunkSize    int
	ChunkOverlap int
}

// Ingest loads and splits each source and feeds the chunks into the index:
// the first successful source creates the index, later ones append. An
// unreadable source aborts that source only; documents already ingested in
// the batch stay valid. The index is persisted once at the end.
func Ingest(ctx context.Context, index *vectorindex.Index, sources []string, opts Options) error {
	splitOpts := document.SplitOptions{
		Strategy:     opts.Strategy,
		ChunkSize:    opts.ChunkSize,
		ChunkOverlap: opts.ChunkOverlap,
	}
	if err := splitOpts.Validate(); err != nil {
		return err
	}

	created := false
	for _, source := range sources {
		chunks, err := document.LoadAndSplit(ctx, source, splitOpts)
		if err != nil {
			if errors.Is(err, document.ErrDocumentLoad) || errors.Is(err, document.ErrUnsupportedSource) {
				log.Error().Err(err).Str("source", source).Msg("skipping source")
				continue
			}
			return err
		}

		if !created {
			if err := index.CreateFromChunks(ctx, chunks); err != nil {
				return fmt.Errorf("ingesting %s: %w", source, err)
			}
			created = true
		} else if err := index.AddChunks(ctx, chunks); err != nil {
			return fmt.Errorf("ingesting %s: %w", source, err)
		}
		log.Info().Str("source", source).Int("chunks", len(chunks)).Msg("ingested source")
	}

	if !created {
		return fmt.Errorf("%w: no sources could be ingested", vectorindex.ErrIndexCreation)
	}
	return index.Save()
}
