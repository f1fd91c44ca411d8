package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"docrag-backend/internal/extract"
)

func newTestIngest(t *testing.T, chunkSize, overlap int, store *fakeStore) *IngestService {
	t.Helper()
	chunker := newTestChunker(t, chunkSize, overlap)
	extractor := extract.New(nil, nil, nil, t.TempDir())
	return NewIngestService(extractor, chunker, &fakeEmbedder{}, store, nil)
}

func TestIngestFileUnsupportedExtensionLeavesIndexUnchanged(t *testing.T) {
	store := newFakeStore()
	svc := newTestIngest(t, 500, 100, store)

	_, err := svc.IngestFile(context.Background(), []byte("binary"), "archive.zip")
	var unsupported *extract.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if len(store.entries) != 0 {
		t.Fatalf("index mutated on unsupported format: %d entries", len(store.entries))
	}
}

func TestIngestFileIdentityKeys(t *testing.T) {
	store := newFakeStore()
	svc := newTestIngest(t, 500, 100, store)

	resp, err := svc.IngestFile(context.Background(), []byte("a short note"), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ChunkCount != 1 {
		t.Fatalf("chunk count = %d, want 1", resp.ChunkCount)
	}
	if resp.DocumentName != "notes.txt" {
		t.Fatalf("document name = %q", resp.DocumentName)
	}

	entry, ok := store.entries["notes.txt_0"]
	if !ok {
		t.Fatalf("missing entry notes.txt_0, have %v", keys(store.entries))
	}
	if entry.text != "a short note" {
		t.Fatalf("stored text = %q", entry.text)
	}
	if entry.metadata.Source != "notes.txt" || entry.metadata.ChunkIndex != 0 {
		t.Fatalf("metadata = %+v", entry.metadata)
	}
}

func TestIngestFileMultipleChunksIndexedInOrder(t *testing.T) {
	store := newFakeStore()
	svc := newTestIngest(t, 10, 3, store)

	var text string
	for i := 0; i < 40; i++ {
		text += fmt.Sprintf("word%d ", i)
	}
	resp, err := svc.IngestFile(context.Background(), []byte(text), "long.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ChunkCount < 2 {
		t.Fatalf("expected multiple chunks, got %d", resp.ChunkCount)
	}
	if len(store.entries) != resp.ChunkCount {
		t.Fatalf("stored %d entries, reported %d", len(store.entries), resp.ChunkCount)
	}
	for i := 0; i < resp.ChunkCount; i++ {
		id := fmt.Sprintf("long.txt_%d", i)
		entry, ok := store.entries[id]
		if !ok {
			t.Fatalf("missing entry %s", id)
		}
		if entry.metadata.ChunkIndex != i {
			t.Fatalf("entry %s has chunk index %d", id, entry.metadata.ChunkIndex)
		}
	}
}

func TestReingestShrinkingDocumentKeepsStaleTail(t *testing.T) {
	store := newFakeStore()
	svc := newTestIngest(t, 10, 3, store)

	var long string
	for i := 0; i < 40; i++ {
		long += fmt.Sprintf("word%d ", i)
	}
	first, err := svc.IngestFile(context.Background(), []byte(long), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.IngestFile(context.Background(), []byte("tiny"), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ChunkCount >= first.ChunkCount {
		t.Fatalf("test needs a shrinking document: %d -> %d chunks", first.ChunkCount, second.ChunkCount)
	}

	// Overlapping indices are overwritten, the tail of the first ingestion stays
	if len(store.entries) != first.ChunkCount {
		t.Fatalf("store has %d entries, want %d", len(store.entries), first.ChunkCount)
	}
	if store.entries["doc.txt_0"].text != "tiny" {
		t.Fatalf("chunk 0 not overwritten: %q", store.entries["doc.txt_0"].text)
	}
	staleID := fmt.Sprintf("doc.txt_%d", first.ChunkCount-1)
	if _, ok := store.entries[staleID]; !ok {
		t.Fatalf("stale tail entry %s was removed", staleID)
	}
}

func TestReingestSameDocumentIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestIngest(t, 500, 100, store)

	for i := 0; i < 2; i++ {
		resp, err := svc.IngestFile(context.Background(), []byte("stable content"), "same.txt")
		if err != nil {
			t.Fatalf("ingest %d: %v", i, err)
		}
		if resp.ChunkCount != 1 {
			t.Fatalf("ingest %d: chunk count %d", i, resp.ChunkCount)
		}
	}
	if len(store.entries) != 1 {
		t.Fatalf("re-ingestion duplicated entries: %d", len(store.entries))
	}
}

func keys(m map[string]storedChunk) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
