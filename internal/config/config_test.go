package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "STORAGE_DRIVER", "DATA_DIR", "BADGER_PATH",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "JWT_ISSUER", "TOKEN_TTL", "RATE_LIMIT", "RATE_WINDOW",
}

// clearEnv blanks every variable the package reads; getEnv treats an empty
// value as unset.
func clearEnv(t *testing.T) {
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverFile, cfg.StorageDriver)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.True(t, cfg.SingleOwner())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_USER", "kanso")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "history")
	t.Setenv("JWT_SECRET", "a-very-long-secret-value")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("RATE_LIMIT", "0")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.SingleOwner())
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, "postgres://kanso:pw@localhost:5432/history?sslmode=disable", cfg.PostgresDSN())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Unknown driver", env: map[string]string{"STORAGE_DRIVER": "mongo"}},
		{name: "Postgres without credentials", env: map[string]string{"STORAGE_DRIVER": "postgres"}},
		{name: "Port not numeric", env: map[string]string{"PORT": "http"}},
		{name: "Bad duration", env: map[string]string{"TOKEN_TTL": "tomorrow"}},
		{name: "Bad integer", env: map[string]string{"RATE_LIMIT": "lots"}},
		{name: "Short secret", env: map[string]string{"JWT_SECRET": "short"}},
		{name: "Redis db out of range", env: map[string]string{"REDIS_DB": "42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	for _, k := range allKeys {
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\nSTORAGE_DRIVER=memory\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}
