package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docrag-backend/internal/ai"
	"docrag-backend/internal/config"
	"docrag-backend/internal/extract"
	"docrag-backend/internal/logger"
	"docrag-backend/internal/queue"
	"docrag-backend/internal/telemetry"
	"docrag-backend/internal/vectorstore"
	"docrag-backend/middleware"
	"docrag-backend/routes"
	"docrag-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Initialize tracing
	shutdownTracer, err := telemetry.InitTracer("docrag-backend")
	if err != nil {
		logger.Warn("Tracing disabled", "error", err)
	} else {
		defer shutdownTracer()
	}

	// Connect to MongoDB
	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	// Connect to Redis (rate limiting)
	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer rdb.Close()

	// Embedding and captioning client
	geminiClient, err := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.EmbeddingModel, cfg.CaptionModel)
	if err != nil {
		log.Fatal("Failed to initialize Gemini client:", err)
	}
	defer geminiClient.Close()

	chatClient := ai.NewChatClient(cfg.GenerationBaseURL)
	rerankClient := ai.NewRerankClient(cfg.CohereAPIKey, cfg.RerankModel)
	whisperClient := ai.NewWhisperClient(cfg.WhisperServiceURL)
	ocrClient := ai.NewOCRClient(cfg.OCRServiceURL, cfg.OCRLanguages)

	extractor := extract.New(ocrClient, geminiClient, whisperClient, cfg.TranscriptDir)

	chunker, err := services.NewChunkingService(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Fatal("Failed to initialize chunker:", err)
	}

	store := vectorstore.NewMongoStore(mongoClient, cfg.DBName, cfg.VectorDimensions)

	// Background task queue (mind maps)
	queueClient := queue.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer queueClient.Close()

	ingestService := services.NewIngestService(extractor, chunker, geminiClient, store, queueClient)
	ragService := services.NewRAGService(geminiClient, store, rerankClient, chatClient,
		cfg.RetrieveTopK, cfg.RerankTopN, cfg.GenerationMaxTokens)

	// Periodic index stats
	statsScheduler, err := services.StartIndexStatsJob(store)
	if err != nil {
		logger.Warn("Index stats job disabled", "error", err)
	} else {
		defer statsScheduler.Stop()
	}

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("docrag-backend"))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware(rdb, cfg))
	router.MaxMultipartMemory = cfg.MaxFileSize

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Generated mind maps are served as static markdown
	router.Static("/mindmaps", cfg.MindmapDir)

	// Setup routes
	routes.SetupIngestRoutes(router, cfg, ingestService)
	routes.SetupChatRoutes(router, cfg, ragService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
