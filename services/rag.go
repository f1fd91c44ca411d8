package services

import (
	"context"
	"strings"

	"docrag-backend/internal/ai"
	"docrag-backend/internal/logger"
	"docrag-backend/internal/vectorstore"
)

// NoRelevantContent is the fixed sentinel returned when retrieval yields no
// chunks; generation is never invoked in that case.
const NoRelevantContent = "No relevant content found."

const (
	groundedSystemPrompt = "You are an intelligent assistant that answers only using the supplied documents."
	openSystemPrompt     = "You are a helpful and concise assistant."
)

// RAGService orchestrates retrieve → rerank → generate for grounded answers
// and forwards ungrounded questions straight to the generation service.
type RAGService struct {
	embedder  Embedder
	store     vectorstore.Store
	reranker  Reranker
	chat      ChatCompleter
	topK      int
	topN      int
	maxTokens int
}

func NewRAGService(embedder Embedder, store vectorstore.Store, reranker Reranker, chat ChatCompleter, topK, topN, maxTokens int) *RAGService {
	return &RAGService{
		embedder:  embedder,
		store:     store,
		reranker:  reranker,
		chat:      chat,
		topK:      topK,
		topN:      topN,
		maxTokens: maxTokens,
	}
}

// Answer produces a grounded or ungrounded answer for the question. When
// documentName is set, retrieval is restricted to that document's chunks.
func (rs *RAGService) Answer(ctx context.Context, question, model string, useGrounding bool, documentName string) (string, error) {
	if !useGrounding {
		return rs.openAnswer(ctx, question, model)
	}
	return rs.groundedAnswer(ctx, question, model, documentName)
}

func (rs *RAGService) groundedAnswer(ctx context.Context, question, model, documentName string) (string, error) {
	vectors, err := rs.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return "", err
	}

	candidates, err := rs.store.Query(ctx, vectors[0], rs.topK, documentName)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return NoRelevantContent, nil
	}

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = c.Text
	}

	ranked, err := rs.reranker.Rerank(ctx, question, docs, rs.topN)
	if err != nil {
		return "", err
	}

	topChunks := make([]string, 0, rs.topN)
	for _, r := range ranked {
		if r.Index < 0 || r.Index >= len(docs) {
			logger.Warn("Reranker returned out-of-range index", "index", r.Index, "candidates", len(docs))
			continue
		}
		topChunks = append(topChunks, docs[r.Index])
		if len(topChunks) == rs.topN {
			break
		}
	}

	messages := []ai.ChatMessage{
		{Role: "system", Content: groundedSystemPrompt},
		{Role: "user", Content: question + "\n\n" + strings.Join(topChunks, "\n")},
	}
	return rs.chat.Complete(ctx, model, messages, rs.maxTokens)
}

func (rs *RAGService) openAnswer(ctx context.Context, question, model string) (string, error) {
	messages := []ai.ChatMessage{
		{Role: "system", Content: openSystemPrompt},
		{Role: "user", Content: question},
	}
	return rs.chat.Complete(ctx, model, messages, rs.maxTokens)
}
