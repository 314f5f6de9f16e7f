package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeDirectory {
		t.Errorf("expected directory auth mode, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.LoginDelay != 600*time.Millisecond {
		t.Errorf("expected 600ms login delay, got %v", cfg.Auth.LoginDelay)
	}
	if cfg.Redis.KeyPrefix != "session:" {
		t.Errorf("expected session: prefix, got %q", cfg.Redis.KeyPrefix)
	}
	if cfg.Audit.Enabled {
		t.Error("audit should be disabled by default")
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if !cfg.Observability.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "OIDC")
	t.Setenv("AUTH_LOGIN_DELAY", "0s")
	t.Setenv("OIDC_CLIENT_ID", "portal")
	t.Setenv("OIDC_CLIENT_SECRET", "super-secret")
	t.Setenv("OIDC_DISCOVERY_URL", "https://login.example.com/.well-known/openid-configuration")
	t.Setenv("OIDC_ROLE_CLAIM", "portal_role")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode:       AuthModeOIDC,
		LoginDelay: 0,
		OIDC: OIDCConfig{
			ClientID:        "portal",
			ClientSecret:    "super-secret",
			Scope:           "openid profile email",
			DiscoveryURL:    "https://login.example.com/.well-known/openid-configuration",
			RoleClaim:       "portal_role",
			DepartmentClaim: "department",
			Timeout:         10 * time.Second,
		},
	}
	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	var m AuthMode
	if err := m.UnmarshalText([]byte(" Directory ")); err != nil || m != AuthModeDirectory {
		t.Fatalf("got %q, %v", m, err)
	}
	if err := m.UnmarshalText([]byte("oauth")); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestAuthConfig_ValidateOIDC(t *testing.T) {
	a := AuthConfig{Mode: AuthModeOIDC}
	err := a.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"OIDC_DISCOVERY_URL", "OIDC_CLIENT_ID"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name  string
		delay time.Duration
		want  time.Duration
	}{
		{"negative", -time.Second, 0},
		{"zero disables", 0, 0},
		{"kept", 250 * time.Millisecond, 250 * time.Millisecond},
		{"clamped", time.Minute, maxLoginDelay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AuthConfig{LoginDelay: tt.delay}
			a.Sanitize()
			if a.LoginDelay != tt.want {
				t.Errorf("expected %v, got %v", tt.want, a.LoginDelay)
			}
			if a.Mode != AuthModeDirectory {
				t.Errorf("expected default mode, got %q", a.Mode)
			}
		})
	}
}

func TestRedisConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RedisConfig
		wantErr bool
	}{
		{"direct", RedisConfig{URI: "localhost:6379"}, false},
		{"direct without uri", RedisConfig{}, true},
		{"sentinel", RedisConfig{UseSentinel: true, SentinelNodes: []string{"s1:26379"}}, false},
		{"sentinel without nodes", RedisConfig{UseSentinel: true, SentinelNodes: []string{" "}}, true},
		{"cluster from uri", RedisConfig{UseCluster: true, URI: "redis://c1:6379"}, false},
		{"cluster and sentinel", RedisConfig{UseCluster: true, UseSentinel: true, URI: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Sanitize()
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRedisConfig_SanitizePrefix(t *testing.T) {
	r := RedisConfig{KeyPrefix: "  "}
	r.Sanitize()
	if r.KeyPrefix != "session:" {
		t.Errorf("expected default prefix, got %q", r.KeyPrefix)
	}
}

func TestRedisConfig_ParseSessionPrefix(t *testing.T) {
	t.Setenv("SESSION_PREFIX", "ignored:")
	t.Setenv("REDIS_SESSION_PREFIX", "portal:")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Redis.KeyPrefix != "portal:" {
		t.Errorf("expected REDIS_SESSION_PREFIX to set the prefix, got %q", cfg.Redis.KeyPrefix)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	h := HTTPConfig{ShutdownTimeout: time.Millisecond}
	h.Sanitize()
	if h.Addr != ":8080" || h.ReadHeaderTimeout != 10*time.Second || h.ShutdownTimeout != time.Second {
		t.Errorf("unexpected sanitized config: %#v", h)
	}
}

func TestLoggingConfig_Sanitize(t *testing.T) {
	c := LoggingConfig{Level: " DEBUG ", Format: "TEXT"}
	c.Sanitize()
	if c.Level != "debug" || c.Format != "text" {
		t.Errorf("unexpected %#v", c)
	}
	if c.SlogLevel().String() != "DEBUG" {
		t.Errorf("unexpected level %v", c.SlogLevel())
	}

	c = LoggingConfig{Level: "verbose", Format: "xml"}
	c.Sanitize()
	if c.Level != "info" || c.Format != "json" {
		t.Errorf("unexpected fallback %#v", c)
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Error("NODE_ENV=development should enable dev mode")
	}
}
