package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"
)

// GeminiClient owns the process-wide Gemini handle used for embeddings and
// image captioning. Created once at startup and passed by reference to every
// component that needs it; no teardown beyond Close at process exit.
type GeminiClient struct {
	client       *genai.Client
	embedModel   string
	captionModel string
	breaker      *gobreaker.CircuitBreaker
	rateLimiter  *rate.Limiter
}

func NewGeminiClient(apiKey, embedModel, captionModel string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &GeminiClient{
		client:       client,
		embedModel:   embedModel,
		captionModel: captionModel,
		breaker:      breaker,
		rateLimiter:  rate.NewLimiter(rate.Limit(2), 10),
	}, nil
}

// EmbedTexts returns one embedding vector per input text, in input order.
// Deterministic for a fixed model version; the batch is sent in one request.
func (gc *GeminiClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	tracer := otel.Tracer("gemini-client")
	ctx, span := tracer.Start(ctx, "gemini.embed_texts")
	defer span.End()
	span.SetAttributes(
		attribute.Int("gemini.batch_size", len(texts)),
		attribute.String("gemini.model", gc.embedModel),
	)

	if err := gc.rateLimiter.Wait(ctx); err != nil {
		return nil, serviceErr("embedding", true, err)
	}

	result, err := gc.breaker.Execute(func() (interface{}, error) {
		em := gc.client.EmbeddingModel(gc.embedModel)
		batch := em.NewBatch()
		for _, text := range texts {
			batch.AddContent(genai.Text(text))
		}
		resp, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, err
		}
		if len(resp.Embeddings) != len(texts) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
		}
		vectors := make([][]float32, len(resp.Embeddings))
		for i, emb := range resp.Embeddings {
			vectors[i] = emb.Values
		}
		return vectors, nil
	})
	if err != nil {
		span.SetAttributes(attribute.Bool("gemini.error", true))
		return nil, serviceErr("embedding", err == gobreaker.ErrOpenState, err)
	}

	return result.([][]float32), nil
}

// CaptionImage produces a one-sentence visual description of the image.
// format is the image subtype without the "image/" prefix ("jpeg", "png").
func (gc *GeminiClient) CaptionImage(ctx context.Context, imageData []byte, format string) (string, error) {
	tracer := otel.Tracer("gemini-client")
	ctx, span := tracer.Start(ctx, "gemini.caption_image")
	defer span.End()
	span.SetAttributes(
		attribute.Int("gemini.image_bytes", len(imageData)),
		attribute.String("gemini.model", gc.captionModel),
	)

	if err := gc.rateLimiter.Wait(ctx); err != nil {
		return "", serviceErr("captioning", true, err)
	}

	result, err := gc.breaker.Execute(func() (interface{}, error) {
		model := gc.client.GenerativeModel(gc.captionModel)
		model.SetMaxOutputTokens(100)

		resp, err := model.GenerateContent(ctx,
			genai.ImageData(format, imageData),
			genai.Text("Describe this image in one sentence."),
		)
		if err != nil {
			return nil, err
		}
		return responseText(resp), nil
	})
	if err != nil {
		span.SetAttributes(attribute.Bool("gemini.error", true))
		return "", serviceErr("captioning", err == gobreaker.ErrOpenState, err)
	}

	return result.(string), nil
}

func (gc *GeminiClient) Close() error {
	if gc.client != nil {
		return gc.client.Close()
	}
	return nil
}

// responseText flattens the text parts of a generation response.
func responseText(resp *genai.GenerateContentResponse) string {
	out := ""
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out += string(text)
			}
		}
	}
	return out
}
