package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/rv-companion/internal/config"
)

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required UPSTREAM_BASE_URL is provided.
func TestLoad_defaults(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://trips.example.com")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "https://trips.example.com", cfg.UpstreamBaseURL)
	require.Empty(t, cfg.DatabaseURL)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://legacy.example.com/api")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/companion")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "https://legacy.example.com/api", cfg.UpstreamBaseURL)
	require.Equal(t, "postgres://user:pass@db:5432/companion", cfg.DatabaseURL)
	require.Equal(t, "cache:6379", cfg.RedisAddr)
	require.Equal(t, 90*time.Second, cfg.CacheTTL)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

// TestLoad_missingRequired verifies that an error is returned when
// UPSTREAM_BASE_URL is not set, and that the error names the variable.
func TestLoad_missingRequired(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "UPSTREAM_BASE_URL")
}

// TestLoad_badTTL verifies that a malformed CACHE_TTL is rejected.
func TestLoad_badTTL(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://trips.example.com")
	t.Setenv("CACHE_TTL", "five minutes")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "CACHE_TTL")
}
