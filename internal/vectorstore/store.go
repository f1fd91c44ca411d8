// Package vectorstore persists chunk embeddings and serves filtered
// nearest-neighbor queries over them.
package vectorstore

import (
	"context"

	"docrag-backend/models"
)

// Store is the persistence contract of the vector index.
//
// Upsert is idempotent on content: repeated calls with the same id replace the
// entry wholesale. Query returns up to k entries by descending similarity;
// source, when non-empty, restricts results to entries whose metadata source
// equals it.
type Store interface {
	Upsert(ctx context.Context, id, text string, vector []float32, metadata models.ChunkMetadata) error
	Query(ctx context.Context, vector []float32, k int, source string) ([]models.ScoredChunk, error)
}
