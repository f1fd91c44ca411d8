package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMindmapGenerateWritesCleanedOutline(t *testing.T) {
	chat := &fakeChat{reply: "Sure, here is your mind map:\n# Topic\nSome commentary.\n## Idea 1\n### Detail\n```\ncode fence\n```\n## Idea 2"}
	dir := t.TempDir()
	svc := NewMindmapService(chat, "mistral", dir, 500)

	path, err := svc.Generate(context.Background(), "report.pdf", "document text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "report.pdf", "mindmap.md") {
		t.Fatalf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	want := "# Topic\n## Idea 1\n### Detail\n## Idea 2"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if !strings.Contains(chat.lastMessages[0].Content, "document text") {
		t.Fatalf("document text missing from prompt")
	}
}
