package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"HTTP_ADDR", "DATABASE_URL", "DB_MAX_CONNS", "RAILS_FILE", "LOG_LEVEL", "LOG_FORMAT",
	"LOG_FILE", "DB_RETRY_ATTEMPTS", "DB_RETRY_MAX_WAIT", "MAX_UPLOAD_MB", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 10*time.Second, cfg.RetryMaxWait)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_RETRY_ATTEMPTS", "5")
	t.Setenv("DB_RETRY_MAX_WAIT", "2s")
	t.Setenv("LOG_FORMAT", "Console")
	t.Setenv("MAX_UPLOAD_MB", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 5, cfg.RetryAttempts)
	assert.Equal(t, 2*time.Second, cfg.RetryMaxWait)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, int64(1<<20), cfg.MaxUploadBytes)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://hub@localhost/ihub\nRAILS_FILE=/etc/rails.yaml\n"), 0o600))
	// godotenv does not override variables that are already set, even when empty
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	require.NoError(t, os.Unsetenv("RAILS_FILE"))

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://hub@localhost/ihub", cfg.DatabaseURL)
	assert.Equal(t, "/etc/rails.yaml", cfg.RailsFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric attempts", key: "DB_RETRY_ATTEMPTS", value: "three"},
		{name: "zero attempts", key: "DB_RETRY_ATTEMPTS", value: "0"},
		{name: "bad duration", key: "DB_RETRY_MAX_WAIT", value: "10 seconds"},
		{name: "zero pool", key: "DB_MAX_CONNS", value: "0"},
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml"},
		{name: "negative upload", key: "MAX_UPLOAD_MB", value: "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
