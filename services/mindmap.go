package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docrag-backend/internal/ai"
)

const mindmapPrompt = `You are a mind map expert. You will be given a text (structured or a single paragraph). Your task is to extract the central theme and generate a brainstorming-style hierarchical mind map in Markdown.

Goal:
- If it's a single paragraph, extract the main theme and generate 3+ main ideas with sub-ideas.
- If it has titles, use them to structure the map.
- Use Markdown headings only: #, ##, ###. Do not return anything else.

Example:
# Main Topic
## Idea 1
### Detail 1.1
### Detail 1.2
## Idea 2
### ...
Here is the text:
`

// MindmapService generates a hierarchical markdown outline of a document via
// the generation service and persists it under the mindmap directory. The
// interactive HTML rendering is handled by an external renderer watching that
// directory.
type MindmapService struct {
	chat      ChatCompleter
	model     string
	dir       string
	maxTokens int
}

func NewMindmapService(chat ChatCompleter, model, dir string, maxTokens int) *MindmapService {
	return &MindmapService{
		chat:      chat,
		model:     model,
		dir:       dir,
		maxTokens: maxTokens,
	}
}

// Generate writes mindmaps/<document>/mindmap.md and returns its path.
func (ms *MindmapService) Generate(ctx context.Context, documentName, text string) (string, error) {
	messages := []ai.ChatMessage{
		{Role: "user", Content: mindmapPrompt + text},
	}
	markdown, err := ms.chat.Complete(ctx, ms.model, messages, ms.maxTokens)
	if err != nil {
		return "", err
	}

	outDir := filepath.Join(ms.dir, documentName)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create mindmap directory: %w", err)
	}

	outPath := filepath.Join(outDir, "mindmap.md")
	if err := os.WriteFile(outPath, []byte(cleanMarkdown(markdown)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write mindmap: %w", err)
	}
	return outPath, nil
}

// cleanMarkdown keeps only heading lines so the renderer gets a pure outline.
func cleanMarkdown(markdown string) string {
	var lines []string
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
