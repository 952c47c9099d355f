package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "https://embed.tagnology.co/api/product/getPageInfo", cfg.Embed.Endpoint)
	assert.Equal(t, "91APP", cfg.Embed.Platform)
	assert.Equal(t, 30*time.Second, cfg.Embed.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EMBED_PLATFORM", "SHOPLINE")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_DEV", "true")
	t.Setenv("RATE_LIMIT_RPS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "SHOPLINE", cfg.Embed.Platform)
	assert.Equal(t, 5*time.Second, cfg.Embed.Timeout)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 3, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadAppliesEnvDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Embed.Endpoint, cfg.Embed.Endpoint)
	assert.Equal(t, Default().RateLimit, cfg.RateLimit)
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embed.yaml")
	data := []byte("server:\n  port: \"7777\"\nembed:\n  platform: SHOPIFY\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("EMBED_CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "SHOPIFY", cfg.Embed.Platform)
	// Values absent from the file keep their environment values.
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, Default().Embed.Endpoint, cfg.Embed.Endpoint)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("EMBED_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := LoadOrDefault()
	assert.Equal(t, Default(), cfg)
}
