package vectorstore

import (
	"context"
	"fmt"
	"testing"

	"docrag-backend/models"
)

func entry(source string, idx int, vec []float32) models.ChunkEntry {
	return models.ChunkEntry{
		ChunkID:  fmt.Sprintf("%s_%d", source, idx),
		Text:     fmt.Sprintf("chunk %d of %s", idx, source),
		Vector:   vec,
		Metadata: models.ChunkMetadata{Source: source, ChunkIndex: idx},
	}
}

func TestRankEntriesOrdersByDescendingScore(t *testing.T) {
	entries := []models.ChunkEntry{
		entry("doc.txt", 0, []float32{0, 1}),
		entry("doc.txt", 1, []float32{1, 0}),
		entry("doc.txt", 2, []float32{1, 1}),
	}

	got := rankEntries(entries, []float32{1, 0}, 3, "")
	if len(got) != 3 {
		t.Fatalf("got %d results", len(got))
	}
	if got[0].Metadata.ChunkIndex != 1 || got[1].Metadata.ChunkIndex != 2 || got[2].Metadata.ChunkIndex != 0 {
		t.Fatalf("wrong order: %v, %v, %v", got[0].Metadata, got[1].Metadata, got[2].Metadata)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("scores not descending: %v then %v", got[i-1].Score, got[i].Score)
		}
	}
}

func TestRankEntriesSourceFilter(t *testing.T) {
	entries := []models.ChunkEntry{
		entry("a.txt", 0, []float32{1, 0}),
		entry("b.txt", 0, []float32{1, 0}),
		entry("a.txt", 1, []float32{0, 1}),
	}

	got := rankEntries(entries, []float32{1, 0}, 5, "a.txt")
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	for _, c := range got {
		if c.Metadata.Source != "a.txt" {
			t.Fatalf("result from wrong source: %+v", c.Metadata)
		}
	}
}

func TestRankEntriesFilterMatchesNothing(t *testing.T) {
	entries := []models.ChunkEntry{
		entry("a.txt", 0, []float32{1, 0}),
	}

	if got := rankEntries(entries, []float32{1, 0}, 5, "missing.txt"); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestRankEntriesTieBreaksOnChunkID(t *testing.T) {
	// Identical vectors produce identical scores; order must fall back to
	// ascending chunk id regardless of input order.
	entries := []models.ChunkEntry{
		entry("doc.txt", 2, []float32{1, 0}),
		entry("doc.txt", 0, []float32{1, 0}),
		entry("doc.txt", 1, []float32{1, 0}),
	}

	got := rankEntries(entries, []float32{1, 0}, 3, "")
	for i, want := range []string{"doc.txt_0", "doc.txt_1", "doc.txt_2"} {
		id := fmt.Sprintf("%s_%d", got[i].Metadata.Source, got[i].Metadata.ChunkIndex)
		if id != want {
			t.Fatalf("position %d: got %s, want %s", i, id, want)
		}
	}
}

func TestRankEntriesCapsAtK(t *testing.T) {
	entries := []models.ChunkEntry{
		entry("doc.txt", 0, []float32{1, 0}),
		entry("doc.txt", 1, []float32{0.9, 0.1}),
		entry("doc.txt", 2, []float32{0, 1}),
	}

	if got := rankEntries(entries, []float32{1, 0}, 2, ""); len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
}

func TestRankEntriesKLargerThanCandidates(t *testing.T) {
	entries := []models.ChunkEntry{
		entry("doc.txt", 0, []float32{1, 0}),
	}

	if got := rankEntries(entries, []float32{1, 0}, 10, ""); len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if got := rankEntries(nil, []float32{1, 0}, 10, ""); len(got) != 0 {
		t.Fatalf("expected no results for empty index, got %d", len(got))
	}
}

func TestUpsertRejectsWrongDimensions(t *testing.T) {
	store := &MongoStore{dims: 3}

	err := store.Upsert(context.Background(), "doc.txt_0", "text",
		[]float32{1, 2}, models.ChunkMetadata{Source: "doc.txt"})
	if err == nil {
		t.Fatal("expected error for a 2-dimension vector in a 3-dimension index")
	}
}
