package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/target/penuel-portal/config"
	"github.com/target/penuel-portal/internal/adapters/directory"
	"github.com/target/penuel-portal/internal/adapters/oidc"
	redisadapter "github.com/target/penuel-portal/internal/adapters/redis"
	"github.com/target/penuel-portal/internal/data"
	"github.com/target/penuel-portal/internal/observability/metrics"
	"github.com/target/penuel-portal/internal/ports"
	"github.com/target/penuel-portal/internal/service"
)

// BuildVerifier returns the credential verifier selected by cfg.Mode.
//
//nolint:ireturn // the verifier is picked by configuration.
func BuildVerifier(cfg config.AuthConfig, logger *slog.Logger) (ports.CredentialVerifier, error) {
	switch cfg.Mode {
	case config.AuthModeDirectory, "":
		d := directory.Default()
		if logger != nil {
			logger.Info("using built-in credential directory", "entries", d.Len())
		}
		return d, nil

	case config.AuthModeOIDC:
		v, err := oidc.NewVerifier(oidc.VerifierConfig{
			ClientID:        cfg.OIDC.ClientID,
			ClientSecret:    cfg.OIDC.ClientSecret,
			Scope:           cfg.OIDC.Scope,
			DiscoveryURL:    cfg.OIDC.DiscoveryURL,
			RoleClaim:       cfg.OIDC.RoleClaim,
			DepartmentClaim: cfg.OIDC.DepartmentClaim,
			HTTPClient:      &http.Client{Timeout: cfg.OIDC.Timeout},
			Logger:          logger,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc verifier: %w", err)
		}
		if logger != nil {
			logger.Info("using OIDC credential verifier", "discovery_url", cfg.OIDC.DiscoveryURL)
		}
		return v, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}

// AuthDeps groups the dependencies of the auth service.
type AuthDeps struct {
	Config      *config.AppConfig
	Verifier    ports.CredentialVerifier
	RedisClient redis.UniversalClient
	// DB backs the audit trail; nil disables it.
	DB      *sql.DB
	Metrics *metrics.AuthMetrics
	Logger  *slog.Logger
}

// BuildAuthService wires the session lifecycle over the Redis store.
func BuildAuthService(deps AuthDeps) (*service.AuthService, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	if deps.RedisClient == nil {
		return nil, errors.New("redis client is required for the session store")
	}
	if deps.Verifier == nil {
		return nil, errors.New("credential verifier is required")
	}

	opts := service.AuthServiceOptions{
		Verifier:   deps.Verifier,
		Sessions:   redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, deps.Config.Redis.KeyPrefix),
		Metrics:    deps.Metrics,
		Logger:     deps.Logger,
		LoginDelay: deps.Config.Auth.LoginDelay,
	}
	if deps.DB != nil {
		opts.Audit = data.NewAuditRepo(deps.DB)
	}
	return service.NewAuthService(opts), nil
}
