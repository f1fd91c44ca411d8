package extract

import (
	"context"
	"os"
)

// DecodeAudio transcribes an encoded audio byte stream. The stream is
// materialized to a temporary file for the model call; the file is removed on
// every exit path.
func (e *Extractor) DecodeAudio(ctx context.Context, data []byte, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "audio-*."+ext)
	if err != nil {
		return "", decodeErr("audio", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", decodeErr("audio", err)
	}
	if err := tmp.Close(); err != nil {
		return "", decodeErr("audio", err)
	}

	text, err := e.transcriber.TranscribeFile(ctx, tmpPath)
	if err != nil {
		return "", decodeErr("audio", err)
	}
	return text, nil
}
