package ai

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/time/rate"
)

func TestEmbedTextsCancelledContextReturnsServiceError(t *testing.T) {
	gc := &GeminiClient{
		embedModel:  "test-model",
		rateLimiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gc.EmbedTexts(ctx, []string{"some text"})
	var svc *ServiceError
	if !errors.As(err, &svc) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svc.Service != "embedding" {
		t.Fatalf("service = %q, want embedding", svc.Service)
	}
	if !svc.Retryable {
		t.Fatal("rate-limited embedding failure should be retryable")
	}
}

func TestCaptionImageCancelledContextReturnsServiceError(t *testing.T) {
	gc := &GeminiClient{
		captionModel: "test-model",
		rateLimiter:  rate.NewLimiter(rate.Limit(1), 1),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gc.CaptionImage(ctx, []byte{0xFF, 0xD8}, "jpeg")
	var svc *ServiceError
	if !errors.As(err, &svc) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svc.Service != "captioning" {
		t.Fatalf("service = %q, want captioning", svc.Service)
	}
}

func TestEmbedTextsEmptyInput(t *testing.T) {
	gc := &GeminiClient{embedModel: "test-model"}

	vectors, err := gc.EmbedTexts(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vectors != nil {
		t.Fatalf("expected no vectors, got %v", vectors)
	}
}
