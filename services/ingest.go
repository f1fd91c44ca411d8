package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"docrag-backend/internal/extract"
	"docrag-backend/internal/logger"
	"docrag-backend/internal/vectorstore"
	"docrag-backend/models"
)

// IngestService runs the decode → chunk → embed → upsert pipeline. Chunks of
// one document are embedded and upserted one at a time in index order.
type IngestService struct {
	extractor *extract.Extractor
	chunker   *ChunkingService
	embedder  Embedder
	store     vectorstore.Store
	mindmaps  MindmapEnqueuer
}

func NewIngestService(extractor *extract.Extractor, chunker *ChunkingService, embedder Embedder, store vectorstore.Store, mindmaps MindmapEnqueuer) *IngestService {
	return &IngestService{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		mindmaps:  mindmaps,
	}
}

// IngestFile normalizes the uploaded bytes by their declared extension and
// indexes the result under the original filename.
func (is *IngestService) IngestFile(ctx context.Context, data []byte, filename string) (*models.IngestResponse, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")

	text, err := is.extractor.Extract(ctx, data, ext)
	if err != nil {
		return nil, err
	}

	count, err := is.storeChunks(ctx, text, filename)
	if err != nil {
		return nil, err
	}

	is.enqueueMindmap(filename, text)

	return &models.IngestResponse{
		Message:      fmt.Sprintf("%d chunks stored from %s", count, filename),
		DocumentName: filename,
		ChunkCount:   count,
	}, nil
}

// IngestURL fetches and normalizes the content behind the URL and indexes it
// under a slug derived from the URL.
func (is *IngestService) IngestURL(ctx context.Context, url string) (*models.IngestResponse, error) {
	documentName := slug.Make(url)

	text, err := is.extractor.ExtractURL(ctx, url)
	if err != nil {
		return nil, err
	}

	count, err := is.storeChunks(ctx, text, documentName)
	if err != nil {
		return nil, err
	}

	is.enqueueMindmap(documentName, text)

	return &models.IngestResponse{
		Message:      fmt.Sprintf("%d chunks extracted from URL", count),
		DocumentName: documentName,
		ChunkCount:   count,
	}, nil
}

// storeChunks embeds and upserts each window under the identity key
// "{document_name}_{chunk_index}". Re-ingestion overwrites matching indices;
// entries beyond the new chunk count are left in place.
func (is *IngestService) storeChunks(ctx context.Context, text, documentName string) (int, error) {
	chunks := is.chunker.ChunkText(text)

	for idx, chunk := range chunks {
		vectors, err := is.embedder.EmbedTexts(ctx, []string{chunk})
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunk %d of %s: %w", idx, documentName, err)
		}

		id := fmt.Sprintf("%s_%d", documentName, idx)
		metadata := models.ChunkMetadata{Source: documentName, ChunkIndex: idx}
		if err := is.store.Upsert(ctx, id, chunk, vectors[0], metadata); err != nil {
			return 0, err
		}
	}
	return len(chunks), nil
}

func (is *IngestService) enqueueMindmap(documentName, text string) {
	if is.mindmaps == nil {
		return
	}
	if err := is.mindmaps.EnqueueMindmap(documentName, text); err != nil {
		// Best-effort: a lost mind map never fails the ingestion
		logger.Warn("Failed to enqueue mindmap task", "document", documentName, "error", err)
	}
}
