package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/penuel-portal/config"
	"github.com/target/penuel-portal/internal/adapters/directory"
	mockauth "github.com/target/penuel-portal/internal/mocks/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildVerifier(t *testing.T) {
	t.Run("directory is the default", func(t *testing.T) {
		for _, mode := range []config.AuthMode{config.AuthModeDirectory, ""} {
			v, err := BuildVerifier(config.AuthConfig{Mode: mode}, discardLogger())
			require.NoError(t, err)
			d, ok := v.(*directory.Directory)
			require.True(t, ok, "mode %q", mode)
			assert.Positive(t, d.Len())
		}
	})

	t.Run("unsupported mode", func(t *testing.T) {
		_, err := BuildVerifier(config.AuthConfig{Mode: "ldap"}, discardLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported auth mode "ldap"`)
	})
}

func TestBuildAuthService_RequiresDependencies(t *testing.T) {
	cfg := &config.AppConfig{}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	tests := []struct {
		name string
		deps AuthDeps
		want string
	}{
		{name: "config", deps: AuthDeps{RedisClient: client, Verifier: &mockauth.FakeVerifier{}}, want: "config is required"},
		{name: "redis", deps: AuthDeps{Config: cfg, Verifier: &mockauth.FakeVerifier{}}, want: "redis client is required"},
		{name: "verifier", deps: AuthDeps{Config: cfg, RedisClient: client}, want: "credential verifier is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := BuildAuthService(tt.deps)
			require.Error(t, err)
			assert.Nil(t, svc)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildAuthService(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	svc, err := BuildAuthService(AuthDeps{
		Config:      &config.AppConfig{Redis: config.RedisConfig{KeyPrefix: "session:"}},
		Verifier:    directory.Default(),
		RedisClient: client,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
