// Package extract normalizes heterogeneous source documents into plain text.
// One decoder exists per supported format; the richer formats (PDF, pptx,
// video) compose the image and audio decoders for their embedded media.
package extract

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Format is a closed enumeration over the supported input kinds. Unknown
// extensions map to FormatUnknown rather than failing a lookup at decode time.
type Format int

const (
	FormatUnknown Format = iota
	FormatText
	FormatCSV
	FormatSpreadsheet
	FormatDocument
	FormatPresentation
	FormatPDF
	FormatImage
	FormatAudio
	FormatVideo
)

// FormatForExtension maps a lower-cased file extension (without dot) to its
// format kind.
func FormatForExtension(ext string) Format {
	switch strings.ToLower(ext) {
	case "txt":
		return FormatText
	case "csv":
		return FormatCSV
	case "xlsx":
		return FormatSpreadsheet
	case "docx":
		return FormatDocument
	case "pptx":
		return FormatPresentation
	case "pdf":
		return FormatPDF
	case "png", "jpg", "jpeg":
		return FormatImage
	case "mp3", "wav", "m4a":
		return FormatAudio
	case "mp4":
		return FormatVideo
	default:
		return FormatUnknown
	}
}

// ImageCaptioner produces a one-sentence visual description of an image.
type ImageCaptioner interface {
	CaptionImage(ctx context.Context, imageData []byte, format string) (string, error)
}

// TextRecognizer runs OCR over an image.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, imageData []byte, filename string) (string, error)
}

// Transcriber converts an audio file into text.
type Transcriber interface {
	TranscribeFile(ctx context.Context, audioPath string) (string, error)
}

// Extractor dispatches raw bytes to the decoder for their declared format.
// The model-service dependencies are injected so decoders composing them
// (image, PDF, presentation, audio, video) can be exercised with fakes.
type Extractor struct {
	captioner     ImageCaptioner
	ocr           TextRecognizer
	transcriber   Transcriber
	httpClient    *http.Client
	transcriptDir string
}

func New(ocr TextRecognizer, captioner ImageCaptioner, transcriber Transcriber, transcriptDir string) *Extractor {
	return &Extractor{
		captioner:     captioner,
		ocr:           ocr,
		transcriber:   transcriber,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		transcriptDir: transcriptDir,
	}
}

// Extract converts raw bytes with a declared extension into plain text.
// Unrecognized extensions return UnsupportedFormatError; decoder failures
// propagate as DecodeError without being caught here.
func (e *Extractor) Extract(ctx context.Context, data []byte, ext string) (string, error) {
	switch FormatForExtension(ext) {
	case FormatText:
		return DecodeText(data), nil
	case FormatCSV:
		return DecodeCSV(data), nil
	case FormatSpreadsheet:
		return DecodeSpreadsheet(data)
	case FormatDocument:
		return DecodeDocument(data)
	case FormatPresentation:
		return e.DecodePresentation(ctx, data)
	case FormatPDF:
		return e.DecodePDF(ctx, data)
	case FormatImage:
		return e.DecodeImage(ctx, data, "upload."+strings.ToLower(ext))
	case FormatAudio:
		return e.DecodeAudio(ctx, data, strings.ToLower(ext))
	case FormatVideo:
		return e.DecodeVideo(ctx, data)
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

// ExtractURL normalizes the content behind a URL: video-platform pages go
// through the cached transcription path, everything else is fetched as a web
// page.
func (e *Extractor) ExtractURL(ctx context.Context, url string) (string, error) {
	if IsVideoPlatformURL(url) {
		return e.DecodeVideoPlatform(ctx, url)
	}
	return e.DecodeWebPage(ctx, url)
}
