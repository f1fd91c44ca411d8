package services

import (
	"context"

	"docrag-backend/internal/ai"
)

// Embedder maps text windows to fixed-dimension vectors, batch-oriented and
// order-preserving.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Reranker scores candidate texts against a query and returns the top-n with
// their original candidate indices.
type Reranker interface {
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]ai.RerankResult, error)
}

// ChatCompleter sends a chat-style request to the generation service.
type ChatCompleter interface {
	Complete(ctx context.Context, model string, messages []ai.ChatMessage, maxTokens int) (string, error)
}

// MindmapEnqueuer schedules best-effort background mind-map generation. The
// outcome never feeds back into the ingestion result.
type MindmapEnqueuer interface {
	EnqueueMindmap(documentName, text string) error
}
