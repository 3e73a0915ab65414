package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	GeminiAPIKey        string
	DatabaseURL         string
	Neo4jURI            string
	Neo4jUser           string
	Neo4jPassword       string
	WorkerCount         int
	BatchSize           int
	TranslationModel    string
	EmbeddingModel      string
	EmbeddingBaseURL    string
	EmbeddingDimensions int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		Neo4jURI:            getEnv("NEO4J_URI", ""),
		Neo4jUser:           getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:       getEnv("NEO4J_PASSWORD", ""),
		WorkerCount:         getEnvInt("WORKER_COUNT", 4),
		BatchSize:           getEnvInt("BATCH_SIZE", 32),
		TranslationModel:    getEnv("TRANSLATION_MODEL", "gemini-2.5-flash"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		EmbeddingBaseURL:    getEnv("EMBEDDING_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 768),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
