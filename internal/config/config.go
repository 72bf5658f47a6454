package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Diff     DiffConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type DiffConfig struct {
	// PageSize is how many usernames a list page carries.
	PageSize int
	// SessionTTLMin is how long an unfinished two-step upload survives.
	SessionTTLMin int
	// RetentionDays prunes snapshots older than this before each insert;
	// 0 disables retention.
	RetentionDays int
	// AllowedUserIDs restricts access when non-empty.
	AllowedUserIDs []string
	// DiffTopic is the internal pubsub topic for completed-diff events.
	DiffTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Diff: DiffConfig{
			PageSize:       getEnvAsInt("PAGE_SIZE", 50),
			SessionTTLMin:  getEnvAsInt("SESSION_TTL_MIN", 60),
			RetentionDays:  getEnvAsInt("RETENTION_DAYS", 0),
			AllowedUserIDs: getEnvAsList("ALLOWED_USER_IDS"),
			DiffTopic:      getEnv("DIFF_COMPLETED_TOPIC_NAME", "DIFF_COMPLETED"),
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

func getEnvAsList(key string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
