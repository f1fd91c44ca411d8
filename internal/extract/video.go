package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// DecodeVideo demuxes the video's audio track (full re-encode to mp3 via
// ffmpeg) and delegates the result to the audio decoder. All intermediate
// files live in a scoped temp directory removed on every exit path.
func (e *Extractor) DecodeVideo(ctx context.Context, data []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "video")
	if err != nil {
		return "", decodeErr("video", err)
	}
	defer os.RemoveAll(tmpDir)

	videoPath := filepath.Join(tmpDir, "input.mp4")
	if err := os.WriteFile(videoPath, data, 0o600); err != nil {
		return "", decodeErr("video", err)
	}

	audioPath := filepath.Join(tmpDir, "audio.mp3")
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", videoPath, "-vn", "-f", "mp3", audioPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", decodeErr("video", fmt.Errorf("ffmpeg failed: %v: %s", err, out))
	}

	audioData, err := os.ReadFile(audioPath)
	if err != nil {
		return "", decodeErr("video", err)
	}
	return e.DecodeAudio(ctx, audioData, "mp3")
}
