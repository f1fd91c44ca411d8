package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsVideoPlatformURL reports whether the URL points at a hosted video page
// rather than a plain web page.
func IsVideoPlatformURL(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}

// VideoID resolves the stable video identifier from a video-platform URL.
func VideoID(url string) (string, error) {
	if _, after, found := strings.Cut(url, "watch?v="); found {
		id, _, _ := strings.Cut(after, "&")
		return id, nil
	}
	if _, after, found := strings.Cut(url, "youtu.be/"); found {
		id, _, _ := strings.Cut(after, "?")
		return id, nil
	}
	return "", fmt.Errorf("not a recognized video URL: %s", url)
}

// DecodeVideoPlatform transcribes the audio track of a hosted video. The
// transcript is cached on disk keyed by video id; repeat calls for the same
// id skip the download and transcription entirely.
func (e *Extractor) DecodeVideoPlatform(ctx context.Context, url string) (string, error) {
	id, err := VideoID(url)
	if err != nil {
		return "", decodeErr("video-platform", err)
	}

	if err := os.MkdirAll(e.transcriptDir, 0o755); err != nil {
		return "", decodeErr("video-platform", err)
	}

	transcriptPath := filepath.Join(e.transcriptDir, id+".txt")
	if cached, err := os.ReadFile(transcriptPath); err == nil {
		return string(cached), nil
	}

	tmpDir, err := os.MkdirTemp("", "ytaudio")
	if err != nil {
		return "", decodeErr("video-platform", err)
	}
	defer os.RemoveAll(tmpDir)

	audioPath := filepath.Join(tmpDir, id+".mp3")
	cmd := exec.CommandContext(ctx, "yt-dlp",
		"-f", "bestaudio",
		"--extract-audio", "--audio-format", "mp3",
		"-o", audioPath, url,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", decodeErr("video-platform", fmt.Errorf("yt-dlp failed: %v: %s", err, out))
	}

	text, err := e.transcriber.TranscribeFile(ctx, audioPath)
	if err != nil {
		return "", decodeErr("video-platform", err)
	}
	text = strings.TrimSpace(text)

	if err := os.WriteFile(transcriptPath, []byte(text), 0o644); err != nil {
		return "", decodeErr("video-platform", err)
	}
	return text, nil
}
