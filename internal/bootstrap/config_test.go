package bootstrap

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/penuel-portal/config"
)

func TestConfigureLogger(t *testing.T) {
	t.Run("json at warn drops info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := ConfigureLogger(&buf, config.LoggingConfig{Level: "warn", Format: "json"})
		logger.Info("hidden")
		logger.Warn("shown", "k", "v")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
		assert.Equal(t, "shown", rec["msg"])
		assert.Equal(t, "v", rec["k"])
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		ConfigureLogger(&buf, config.LoggingConfig{Level: "debug", Format: "text"}).Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("AUTH_MODE", "Directory")
	t.Setenv("AUTH_LOGIN_DELAY", "1m")
	t.Setenv("REDIS_URI", " redis://localhost:6379/1 ")
	t.Setenv("REDIS_SESSION_PREFIX", "portal:")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.AuthModeDirectory, cfg.Auth.Mode)
	assert.Equal(t, 10*time.Second, cfg.Auth.LoginDelay, "delay is clamped")
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URI)
	assert.Equal(t, "portal:", cfg.Redis.KeyPrefix)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("AUTH_MODE", "oidc")
	t.Setenv("OIDC_DISCOVERY_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
