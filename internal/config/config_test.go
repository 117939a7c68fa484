package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "memory", cfg.LinkStoreBackend)
	assert.Equal(t, "/voice-call", cfg.LinkBasePath)
	assert.Equal(t, 60*time.Minute, cfg.LinkDefaultTTL)
	assert.True(t, cfg.LinkSingleUse)
	assert.Equal(t, 60*time.Second, cfg.LinkSweepInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "securelink", cfg.MetricsNamespace)
	assert.Equal(t, 8081, cfg.MetricsPort)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LINK_STORE_BACKEND", "postgres")
	t.Setenv("LINK_DEFAULT_TTL_MINUTES", "15")
	t.Setenv("LINK_SINGLE_USE", "false")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.LinkStoreBackend)
	assert.Equal(t, 15*time.Minute, cfg.LinkDefaultTTL)
	assert.False(t, cfg.LinkSingleUse)
	assert.False(t, cfg.RateLimitEnabled)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.GetGinMode())
		})
	}
}
