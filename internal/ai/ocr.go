package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// OCRClient handles communication with the OCR service.
type OCRClient struct {
	baseURL    string
	languages  []string
	httpClient *http.Client
}

type ocrResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Error   string `json:"error,omitempty"`
}

func NewOCRClient(baseURL string, languages []string) *OCRClient {
	return &OCRClient{
		baseURL:   baseURL,
		languages: languages,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // OCR can take time
		},
	}
}

// RecognizeText runs optical character recognition on the image for every
// configured language and returns the recognized text. An empty result is not
// an error: blank images legitimately contain no text.
func (c *OCRClient) RecognizeText(ctx context.Context, imageData []byte, filename string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fileWriter, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := fileWriter.Write(imageData); err != nil {
		return "", fmt.Errorf("failed to write image data: %w", err)
	}
	writer.WriteField("languages", strings.Join(c.languages, "+"))
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/ocr/extract", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", serviceErr("ocr", true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", serviceErr("ocr", true,
			fmt.Errorf("OCR request failed with status %d: %s", resp.StatusCode, string(body)))
	}

	var ocrResp ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&ocrResp); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}
	if !ocrResp.Success {
		return "", serviceErr("ocr", false, fmt.Errorf("OCR processing failed: %s", ocrResp.Error))
	}

	return strings.TrimSpace(ocrResp.Text), nil
}
