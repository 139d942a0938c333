package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ragflow  RagflowConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type RagflowConfig struct {
	BaseURL              string
	APIKey               string
	TimeoutSeconds       int
	StatusCacheTTLSecond int
}

type TopicConfig struct {
	RefreshDocumentStatus string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ragflow: RagflowConfig{
			BaseURL:              getEnv("RAGFLOW_BASE_URL", "http://localhost:9380"),
			APIKey:               getEnv("RAGFLOW_API_KEY", ""),
			TimeoutSeconds:       getEnvAsInt("RAGFLOW_TIMEOUT_SECONDS", 30),
			StatusCacheTTLSecond: getEnvAsInt("RAGFLOW_STATUS_CACHE_TTL_SECONDS", 5),
		},
		Topics: TopicConfig{
			RefreshDocumentStatus: getEnv("REFRESH_DOCUMENT_STATUS_TOPIC_NAME", "REFRESH_DOCUMENT_STATUS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
