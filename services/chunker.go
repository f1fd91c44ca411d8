package services

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// ChunkingService splits normalized text into overlapping token windows using
// a byte-pair subword tokenizer (cl100k_base). Windows are produced in
// document order; the final window may be shorter than the window size.
type ChunkingService struct {
	encoding  *tiktoken.Tiktoken
	chunkSize int
	overlap   int
}

func NewChunkingService(chunkSize, overlap int) (*ChunkingService, error) {
	if overlap >= chunkSize {
		return nil, fmt.Errorf("overlap %d must be smaller than chunk size %d", overlap, chunkSize)
	}
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}
	return &ChunkingService{
		encoding:  encoding,
		chunkSize: chunkSize,
		overlap:   overlap,
	}, nil
}

// ChunkText returns the token windows of text. Empty input yields an empty
// sequence; input at or under the window size yields exactly one window equal
// to the input.
func (cs *ChunkingService) ChunkText(text string) []string {
	if text == "" {
		return nil
	}

	tokens := cs.encoding.Encode(text, nil, nil)
	if len(tokens) == 0 {
		return nil
	}

	step := cs.chunkSize - cs.overlap
	var chunks []string
	for start := 0; start < len(tokens); start += step {
		end := start + cs.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, cs.encoding.Decode(tokens[start:end]))
		if end == len(tokens) {
			break
		}
	}
	return chunks
}
