// Package queue carries the fire-and-forget background tasks. Task outcomes
// are observed only through logs and never feed back into request handling.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"docrag-backend/internal/logger"
	"docrag-backend/services"
)

const TaskGenerateMindmap = "mindmap:generate"

type MindmapPayload struct {
	DocumentName string `json:"document_name"`
	Text         string `json:"text"`
}

func NewMindmapTask(documentName, text string) (*asynq.Task, error) {
	payload, err := json.Marshal(MindmapPayload{
		DocumentName: documentName,
		Text:         text,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskGenerateMindmap,
		payload,
		asynq.MaxRetry(0),
		asynq.Timeout(10*time.Minute),
		asynq.Queue("low"),
	), nil
}

// Client enqueues background tasks from the API process.
type Client struct {
	client *asynq.Client
}

func NewClient(redisOpt asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpt)}
}

// EnqueueMindmap satisfies services.MindmapEnqueuer.
func (c *Client) EnqueueMindmap(documentName, text string) error {
	task, err := NewMindmapTask(documentName, text)
	if err != nil {
		return err
	}
	if _, err := c.client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue mindmap task: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// TaskProcessor handles tasks on the worker process.
type TaskProcessor struct {
	mindmaps *services.MindmapService
}

func NewTaskProcessor(mindmaps *services.MindmapService) *TaskProcessor {
	return &TaskProcessor{mindmaps: mindmaps}
}

// ProcessMindmap generates and persists the mind map for one document.
// Failures are logged and swallowed: the task never retries and never
// surfaces to the caller that triggered it.
func (p *TaskProcessor) ProcessMindmap(ctx context.Context, t *asynq.Task) error {
	var payload MindmapPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Warn("Malformed mindmap payload", "error", err)
		return nil
	}

	path, err := p.mindmaps.Generate(ctx, payload.DocumentName, payload.Text)
	if err != nil {
		logger.Warn("Mindmap generation failed", "document", payload.DocumentName, "error", err)
		return nil
	}

	logger.Info("Mindmap generated", "document", payload.DocumentName, "path", path)
	return nil
}
