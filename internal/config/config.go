package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	AWSRegion      string
	DynamoEndpoint string // Optional override, e.g. a local DynamoDB
	DynamoTable    string

	RedisURL string
	CacheTTL time.Duration

	// SlowListThreshold is the duration above which a full collection scan
	// is logged as slow. Soft warning only, never a failure.
	SlowListThreshold time.Duration

	// SweepInterval is how often the consistency sweep runs.
	SweepInterval time.Duration

	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "pretty"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		DynamoEndpoint:    getEnv("DYNAMO_ENDPOINT", ""),
		DynamoTable:       getEnv("DYNAMO_TABLE", "registro_documents"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CacheTTL:          time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		SlowListThreshold: time.Duration(getEnvInt("SLOW_LIST_THRESHOLD_MS", 2000)) * time.Millisecond,
		SweepInterval:     time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 15)) * time.Minute,
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
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

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
