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
	Feed     FeedConfig
	Scoring  ScoringConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type FeedConfig struct {
	SweepIntervalSeconds int
	SessionTTLMinutes    int
}

type ScoringConfig struct {
	HotThreshold  int
	WarmThreshold int
}

type TopicConfig struct {
	SignalBatch string // watermill topic for detected signal batches
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Feed: FeedConfig{
			SweepIntervalSeconds: getEnvAsInt("FEED_SWEEP_INTERVAL_SECONDS", 30),
			SessionTTLMinutes:    getEnvAsInt("FEED_SESSION_TTL_MINUTES", 60),
		},
		Scoring: ScoringConfig{
			HotThreshold:  getEnvAsInt("SCORE_HOT_THRESHOLD", 80),
			WarmThreshold: getEnvAsInt("SCORE_WARM_THRESHOLD", 50),
		},
		Topics: TopicConfig{
			SignalBatch: getEnv("SIGNAL_BATCH_TOPIC_NAME", "SIGNALS_DETECTED"),
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
