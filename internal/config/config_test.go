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
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "stayscraper", cfg.AppName)
	assert.Equal(t, "local", cfg.DeployEnv)
	assert.Equal(t, "10000", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 100*time.Second, cfg.Scrape.NavigationTimeout)
	assert.Equal(t, 110*time.Second, cfg.Scrape.RequestTimeout)
	assert.Equal(t, 8*time.Second, cfg.Scrape.SettleDelay)
	assert.Equal(t, 3, cfg.Scrape.MaxAttempts)
	assert.True(t, cfg.Scrape.ContentCheck)
	assert.True(t, cfg.Scrape.Stealth)
	assert.True(t, cfg.Scrape.APIFallback)
	assert.Equal(t, []string{"airbnb."}, cfg.Scrape.ListingHosts)
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("DEPLOY_ENV", "Render")
	t.Setenv("MAX_ATTEMPTS", "5")
	t.Setenv("NAVIGATION_TIMEOUT", "30")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("STEALTH", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("API_FALLBACK_RPS", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "render", cfg.DeployEnv)
	assert.Equal(t, 5, cfg.Scrape.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Scrape.NavigationTimeout)
	assert.Equal(t, 45*time.Second, cfg.Scrape.RequestTimeout)
	assert.False(t, cfg.Scrape.Stealth)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.InDelta(t, 0.5, cfg.Scrape.APIFallbackRPS, 1e-9)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MAX_ATTEMPTS", "many")
	t.Setenv("HEADLESS", "sometimes")
	t.Setenv("NAVIGATION_TIMEOUT", "60s")
	t.Setenv("REQUEST_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Scrape.MaxAttempts)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 70*time.Second, cfg.Scrape.RequestTimeout)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=from-file\nFLUENTBIT_ENABLED=true\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("APP_NAME")
		os.Unsetenv("FLUENTBIT_ENABLED")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.AppName)
	// No host configured, so the sink is switched off.
	assert.False(t, cfg.FluentBit.Enabled)
}
