package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30, cfg.TokenDurationMinutes)
	assert.Equal(t, 30*time.Minute, cfg.TokenDuration())
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, 60*time.Second, cfg.RateLimitWindow())
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "ENVIRONMENT=production\nSERVER_PORT=9000\nTOKEN_DURATION_MINUTES=5\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.TokenDuration())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=9000\n"), 0o600))

	t.Setenv("SERVER_PORT", "7777")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.ServerPort)
}

func TestIsProductionCaseInsensitive(t *testing.T) {
	cfg := &Config{Environment: "PRODUCTION"}
	assert.True(t, cfg.IsProduction())

	cfg.Environment = "staging"
	assert.False(t, cfg.IsProduction())
}

func TestCORSOriginList(t *testing.T) {
	cfg := &Config{CORSOrigins: "http://localhost:3000, https://app.example.com ,"}
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://app.example.com"},
		cfg.CORSOriginList())

	cfg.CORSOrigins = ""
	assert.Empty(t, cfg.CORSOriginList())
}
