package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BAKERY_API_URL", "https://api.bakery.test")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 10*time.Second, cfg.BakeryAPI.Timeout())
	assert.Equal(t, 120*time.Minute, cfg.Session.TTL())
	assert.Equal(t, "bakery_session", cfg.Session.CookieName)
	assert.Equal(t, 15.0, cfg.Checkout.ShippingCost)
	assert.NotEmpty(t, cfg.Checkout.StorePickupAddress)
	assert.False(t, cfg.Proxy.Enabled)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BAKERY_API_URL", "https://api.example.com")
	t.Setenv("BAKERY_API_TIMEOUT_SECONDS", "3")
	t.Setenv("SHIPPING_COST", "12.5")
	t.Setenv("PROXY_ENABLED", "true")
	t.Setenv("PROXY_HOSTNAME", "proxy.local")
	t.Setenv("PROXY_PORT", "3128")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://api.example.com", cfg.BakeryAPI.URL)
	assert.Equal(t, 3*time.Second, cfg.BakeryAPI.Timeout())
	assert.Equal(t, 12.5, cfg.Checkout.ShippingCost)
	assert.True(t, cfg.Proxy.Enabled)
	assert.Equal(t, "proxy.local", cfg.Proxy.Hostname)
	assert.Equal(t, 3128, cfg.Proxy.Port)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
BAKERY_API_URL=https://staging.example.com
SESSION_TTL_MINUTES=30
`)
	require.NoError(t, os.WriteFile(dir+"/.env", content, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "https://staging.example.com", cfg.BakeryAPI.URL)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL())
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	os.Unsetenv("BAKERY_API_URL")

	cfg, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration: BAKERY_API_URL")
}
