// Package config loads CLI configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all klair-cli configuration.
type Config struct {
	// Server
	ServerURL string
	AuthToken string

	// HTTP timeout for short calls. Zero disables the timeout; chat always
	// runs without one.
	RequestTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string
}

// Load reads configuration from the environment with defaults. A .env file
// in the working directory is honored when present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		ServerURL:      envOr("KLAIR_SERVER_URL", "http://localhost:8000"),
		AuthToken:      envOr("KLAIR_AUTH_TOKEN", ""),
		RequestTimeout: time.Duration(envInt("KLAIR_REQUEST_TIMEOUT_SEC", 0)) * time.Second,
		LogLevel:       envOr("KLAIR_LOG_LEVEL", "info"),
		LogFormat:      envOr("KLAIR_LOG_FORMAT", "console"),
		LogFile:        envOr("KLAIR_LOG_FILE", ""),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
