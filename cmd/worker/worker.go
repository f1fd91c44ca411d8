package main

import (
	"context"
	"log"

	"docrag-backend/internal/ai"
	"docrag-backend/internal/config"
	"docrag-backend/internal/logger"
	"docrag-backend/internal/queue"
	"docrag-backend/services"

	"github.com/hibiken/asynq"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Generation client used for mind map outlines
	chatClient := ai.NewChatClient(cfg.GenerationBaseURL)
	mindmapService := services.NewMindmapService(chatClient, cfg.GenerationModel, cfg.MindmapDir, cfg.GenerationMaxTokens)

	// Redis options for Asynq
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// Create Asynq server
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			StrictPriority: true,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("Task failed", "type", task.Type(), "error", err)
			}),
		},
	)

	// Create task processor
	processor := queue.NewTaskProcessor(mindmapService)

	// Create mux and register handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskGenerateMindmap, processor.ProcessMindmap)

	logger.Info("Starting worker", "redis", redisOpt.Addr)

	// Start the server
	if err := server.Run(mux); err != nil {
		log.Fatal("Failed to start worker:", err)
	}
}
