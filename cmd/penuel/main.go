package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/target/penuel-portal/config"
	"github.com/target/penuel-portal/internal/bootstrap"
	httpx "github.com/target/penuel-portal/internal/http"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger = bootstrap.ConfigureLogger(os.Stdout, cfg.Observability.Logging)
	logStartupInfo(ctx, logger, &cfg)

	redisClient, err := bootstrap.ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	db, err := connectAudit(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}()
	}

	verifier, err := bootstrap.BuildVerifier(cfg.Auth, logger)
	if err != nil {
		return err
	}
	registry, authMetrics := bootstrap.NewMetrics(cfg.Observability.Metrics)

	authSvc, err := bootstrap.BuildAuthService(bootstrap.AuthDeps{
		Config:      &cfg,
		Verifier:    verifier,
		RedisClient: redisClient,
		DB:          db,
		Metrics:     authMetrics,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	server, err := bootstrap.NewHTTPServer(bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Auth:     authSvc,
		Registry: registry,
		Metrics:  authMetrics,
		Ready:    readinessChecks(redisClient, db),
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return bootstrap.Serve(ctx, server, cfg.HTTP.ShutdownTimeout, logger)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting penuel portal",
		"addr", cfg.HTTP.Addr,
		"auth_mode", cfg.Auth.Mode,
		"login_delay", cfg.Auth.LoginDelay,
		"audit_enabled", cfg.Audit.Enabled,
		"dev", cfg.IsDev)
}

// connectAudit opens the audit database when the audit trail is enabled.
func connectAudit(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*sql.DB, error) {
	if !cfg.Audit.Enabled {
		return nil, nil
	}
	db, err := bootstrap.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}
	if !cfg.Postgres.RunMigrationsOnStart {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		return db, nil
	}
	if err := bootstrap.RunMigrations(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func readinessChecks(redisClient redis.UniversalClient, db *sql.DB) map[string]httpx.PingFunc {
	checks := map[string]httpx.PingFunc{
		"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	return checks
}
