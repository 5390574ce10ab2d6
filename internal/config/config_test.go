package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Empty(t, cfg.AuthToken)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KLAIR_SERVER_URL", "http://rag.internal:9000")
	t.Setenv("KLAIR_AUTH_TOKEN", "secret")
	t.Setenv("KLAIR_REQUEST_TIMEOUT_SEC", "30")
	t.Setenv("KLAIR_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "http://rag.internal:9000", cfg.ServerURL)
	assert.Equal(t, "secret", cfg.AuthToken)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("KLAIR_REQUEST_TIMEOUT_SEC", "soon")
	cfg := Load()
	assert.Zero(t, cfg.RequestTimeout)
}
