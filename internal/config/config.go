package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	DBName      string
	Port        string
	GinMode     string
	CORSOrigins []string
	MaxFileSize int64

	// Redis / task queue
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// API rate limiting
	RateLimitReqs   int
	RateLimitWindow int

	// Chunking (token-based)
	ChunkSize    int
	ChunkOverlap int

	// Embeddings / captioning (Gemini)
	GeminiAPIKey     string
	EmbeddingModel   string
	CaptionModel     string
	VectorDimensions int

	// Generation (OpenAI-compatible endpoint, e.g. Ollama)
	GenerationBaseURL   string
	GenerationModel     string
	GenerationMaxTokens int

	// Reranking (Cohere)
	CohereAPIKey string
	RerankModel  string
	RerankTopN   int
	RetrieveTopK int

	// Speech-to-text service (whisper server)
	WhisperServiceURL string

	// OCR service
	OCRServiceURL string
	OCRLanguages  []string

	// On-disk artifacts
	TranscriptDir string
	MindmapDir    string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017/docrag"),
		DBName:      getEnv("DB_NAME", "docrag"),
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		MaxFileSize: getEnvInt64("MAX_FILE_SIZE", 104857600), // 100MB

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		ChunkSize:    getEnvInt("CHUNK_SIZE", 500),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 100),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		CaptionModel:     getEnv("CAPTION_MODEL", "gemini-2.0-flash"),
		VectorDimensions: getEnvInt("VECTOR_DIM", 768),

		GenerationBaseURL:   getEnv("GENERATION_BASE_URL", "http://localhost:11434/v1"),
		GenerationModel:     getEnv("GENERATION_MODEL", "mistral"),
		GenerationMaxTokens: getEnvInt("GENERATION_MAX_TOKENS", 500),

		CohereAPIKey: getEnv("COHERE_API_KEY", ""),
		RerankModel:  getEnv("RERANK_MODEL", "rerank-v3.5"),
		RerankTopN:   getEnvInt("RERANK_TOP_N", 3),
		RetrieveTopK: getEnvInt("RETRIEVE_TOP_K", 5),

		WhisperServiceURL: getEnv("WHISPER_SERVICE_URL", "http://localhost:9000"),

		OCRServiceURL: getEnv("OCR_SERVICE_URL", "http://localhost:8001"),
		OCRLanguages:  strings.Split(getEnv("OCR_LANGUAGES", "fra,eng"), ","),

		TranscriptDir: getEnv("TRANSCRIPT_DIR", "transcript"),
		MindmapDir:    getEnv("MINDMAP_DIR", "mindmaps"),
	}

	// Validate required fields
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
