package services

import (
	"strings"
	"testing"
)

// The tokenizer vocabulary is fetched on first use; skip instead of failing
// when it is unavailable.
func newTestChunker(t *testing.T, chunkSize, overlap int) *ChunkingService {
	t.Helper()
	cs, err := NewChunkingService(chunkSize, overlap)
	if err != nil {
		t.Skipf("tokenizer unavailable: %v", err)
	}
	return cs
}

func TestNewChunkingServiceRejectsLargeOverlap(t *testing.T) {
	if _, err := NewChunkingService(10, 10); err == nil {
		t.Fatal("expected error when overlap equals chunk size")
	}
	if _, err := NewChunkingService(10, 20); err == nil {
		t.Fatal("expected error when overlap exceeds chunk size")
	}
}

func TestChunkTextEmpty(t *testing.T) {
	cs := newTestChunker(t, 500, 100)
	if chunks := cs.ChunkText(""); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}

func TestChunkTextSingleWindow(t *testing.T) {
	cs := newTestChunker(t, 500, 100)
	text := "A short paragraph that fits comfortably inside one window."
	chunks := cs.ChunkText(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Fatalf("single window should equal the input, got %q", chunks[0])
	}
}

func TestChunkTextOverlappingWindows(t *testing.T) {
	cs := newTestChunker(t, 10, 3)

	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 8)
	tokens := cs.encoding.Encode(text, nil, nil)
	if len(tokens) <= 10 {
		t.Fatalf("test text too short: %d tokens", len(tokens))
	}

	chunks := cs.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Windows advance by chunkSize-overlap tokens
	if want := cs.encoding.Decode(tokens[0:10]); chunks[0] != want {
		t.Fatalf("chunk 0 = %q, want %q", chunks[0], want)
	}
	if want := cs.encoding.Decode(tokens[7:17]); chunks[1] != want {
		t.Fatalf("chunk 1 = %q, want %q", chunks[1], want)
	}

	// Final window carries the tail of the document
	last := chunks[len(chunks)-1]
	tail := cs.encoding.Decode(tokens[len(tokens)-1:])
	if !strings.HasSuffix(last, tail) {
		t.Fatalf("last chunk %q does not end with the document tail %q", last, tail)
	}
}
