package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// DecodeImage produces the concatenation of a one-sentence visual caption and
// the OCR text of the image. Both parts are always included, even when one is
// empty.
func (e *Extractor) DecodeImage(ctx context.Context, data []byte, filename string) (string, error) {
	ocrText, err := e.ocr.RecognizeText(ctx, data, filename)
	if err != nil {
		return "", decodeErr("image", err)
	}

	caption, err := e.captioner.CaptionImage(ctx, data, imageFormat(data))
	if err != nil {
		return "", decodeErr("image", err)
	}

	return fmt.Sprintf("Visual description: %s\nOCR text: %s", strings.TrimSpace(caption), ocrText), nil
}

// imageFormat sniffs the image subtype ("jpeg", "png", ...) from the bytes.
func imageFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	if format, ok := strings.CutPrefix(contentType, "image/"); ok {
		return format
	}
	return "jpeg"
}
