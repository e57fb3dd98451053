package vectorindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"docqa/internal/embedding"
	"docqa/internal/models"
)

var (
	ErrIndexCreation       = errors.New("index creation failed")
	ErrIndexLoad           = errors.New("index load failed")
	ErrIndexNotInitialized = errors.New("index not initialized")
)

const exportCompress = false

// Index is an embedding index bound to one persisted storage location.
// It is not safe for concurrent writers; callers serialize ingest+save.
// Concurrent reads of a loaded index are fine.
type Index struct {
	folderPath string
	indexName  string
	topK       int
	embedder   embeddings.Embedder

	db         *chromem.DB
	collection *chromem.Collection
	dimension  int
}

// manifest is the companion artifact persisted next to the vector file.
type manifest struct {
	IndexName string    `json:"index_name"`
	Chunks    int       `json:"chunks"`
	Dimension int       `json:"dimension"`
	SavedAt   time.Time `json:"saved_at"`
}

func New(folderPath, indexName string, topK int, embedder embeddings.Embedder) *Index {
	return &Index{
		folderPath: folderPath,
		indexName:  indexName,
		topK:       topK,
		embedder:   embedder,
	}
}

func (i *Index) indexFile() string {
	return filepath.Join(i.folderPath, i.indexName+".chromem")
}

func (i *Index) manifestFile() string {
	return filepath.Join(i.folderPath, i.indexName+".manifest.json")
}

// embedFunc adapts the bound embedder for chromem. All documents carry
// precomputed vectors, so this only runs if chromem needs to embed text
// itself, which the index never asks for.
func (i *Index) embedFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return i.embedder.EmbedQuery(ctx, text)
	}
}

// CreateFromChunks embeds the chunks and builds a fresh in-memory index,
// replacing any previously held one. On failure the prior index, if any,
// is left untouched.
func (i *Index) CreateFromChunks(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("%w: no chunks to index", ErrIndexCreation)
	}

	vectors, err := embedding.EmbedChunks(ctx, i.embedder, chunks)
	if err != nil {
		return fmt.Errorf("%w: embedding chunks: %v", ErrIndexCreation, err)
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection(i.indexName, nil, i.embedFunc())
	if err != nil {
		return fmt.Errorf("%w: creating collection: %v", ErrIndexCreation, err)
	}
	if err := collection.AddDocuments(ctx, toDocuments(chunks, vectors), runtime.NumCPU()); err != nil {
		return fmt.Errorf("%w: adding documents: %v", ErrIndexCreation, err)
	}

	i.db = db
	i.collection = collection
	i.dimension = len(vectors[0])
	log.Debug().Int("chunks", len(chunks)).Str("index", i.indexName).Msg("created index")
	return nil
}

// AddChunks embeds and appends to the current in-memory index. An index
// must already exist from CreateFromChunks or Load.
func (i *Index) AddChunks(ctx context.Context, chunks []models.Chunk) error {
	if i.collection == nil {
		return fmt.Errorf("%w: add requires a created or loaded index", ErrIndexNotInitialized)
	}
	if len(chunks) == 0 {
		return nil
	}

	vectors, err := embedding.EmbedChunks(ctx, i.embedder, chunks)
	if err != nil {
		return fmt.Errorf("%w: embedding chunks: %v", ErrIndexCreation, err)
	}
	if err := i.collection.AddDocuments(ctx, toDocuments(chunks, vectors), runtime.NumCPU()); err != nil {
		return fmt.Errorf("%w: adding documents: %v", ErrIndexCreation, err)
	}
	log.Debug().Int("chunks", len(chunks)).Str("index", i.indexName).Msg("appended to index")
	return nil
}

// Save persists the in-memory index to its storage location, overwriting
// any prior artifacts. Both files are written to temp paths and renamed,
// so a concurrent Load never sees a half-written index.
func (i *Index) Save() error {
	if i.collection == nil {
		return fmt.Errorf("%w: nothing to save", ErrIndexNotInitialized)
	}
	if err := os.MkdirAll(i.folderPath, 0o755); err != nil {
		return fmt.Errorf("creating index folder: %w", err)
	}

	tmpIndex := i.indexFile() + ".tmp"
	if err := i.db.ExportToFile(tmpIndex, exportCompress, "", i.indexName); err != nil {
		return fmt.Errorf("exporting index: %w", err)
	}
	if err := os.Rename(tmpIndex, i.indexFile()); err != nil {
		return fmt.Errorf("replacing index file: %w", err)
	}

	m := manifest{
		IndexName: i.indexName,
		Chunks:    i.collection.Count(),
		Dimension: i.dimension,
		SavedAt:   time.Now().UTC(),
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	tmpManifest := i.manifestFile() + ".tmp"
	if err := os.WriteFile(tmpManifest, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmpManifest, i.manifestFile()); err != nil {
		return fmt.Errorf("replacing manifest: %w", err)
	}

	log.Info().Str("index", i.indexName).Int("chunks", m.Chunks).Msg("saved index")
	return nil
}

// Load reads a previously persisted index into memory, replacing the
// current one. The in-memory state changes only when loading succeeds.
func (i *Index) Load() error {
	data, err := os.ReadFile(i.manifestFile())
	if err != nil {
		return fmt.Errorf("%w: reading manifest: %v", ErrIndexLoad, err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("%w: decoding manifest: %v", ErrIndexLoad, err)
	}

	db := chromem.NewDB()
	if err := db.ImportFromFile(i.indexFile(), ""); err != nil {
		return fmt.Errorf("%w: importing %s: %v", ErrIndexLoad, i.indexFile(), err)
	}
	collection := db.GetCollection(i.indexName, i.embedFunc())
	if collection == nil {
		return fmt.Errorf("%w: collection %q missing from %s", ErrIndexLoad, i.indexName, i.indexFile())
	}

	i.db = db
	i.collection = collection
	i.dimension = m.Dimension
	log.Info().Str("index", i.indexName).Int("chunks", collection.Count()).Msg("loaded index")
	return nil
}

// Len reports how many entries the in-memory index holds.
func (i *Index) Len() int {
	if i.collection == nil {
		return 0
	}
	return i.collection.Count()
}

// SimilaritySearch embeds the query and returns up to k nearest entries,
// best-first. If the index holds fewer than k entries, all are returned.
func (i *Index) SimilaritySearch(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	if i.collection == nil {
		return nil, fmt.Errorf("%w: search requires a created or loaded index", ErrIndexNotInitialized)
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}

	count := i.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	queryVector, err := i.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := i.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryVector,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	out := make([]models.SearchResult, 0, len(results))
	for _, res := range results {
		chunk, err := resultChunk(res)
		if err != nil {
			return nil, err
		}
		out = append(out, models.SearchResult{
			Chunk: chunk,
			Score: res.Similarity,
		})
	}
	return out, nil
}

func toDocuments(chunks []models.Chunk, vectors [][]float32) []chromem.Document {
	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chromem.Document{
			ID:      chunk.ID,
			Content: chunk.Content,
			Metadata: map[string]string{
				"source": chunk.Source,
				"page":   strconv.Itoa(chunk.PageNumber),
			},
			Embedding: vectors[i],
		}
	}
	return docs
}

func resultChunk(res chromem.Result) (models.Chunk, error) {
	page, err := strconv.Atoi(res.Metadata["page"])
	if err != nil {
		return models.Chunk{}, fmt.Errorf("entry %s has corrupt page metadata %q: %w", res.ID, res.Metadata["page"], err)
	}
	return models.Chunk{
		ID:         res.ID,
		Content:    res.Content,
		Source:     res.Metadata["source"],
		PageNumber: page,
	}, nil
}
