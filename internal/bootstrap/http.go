package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	penuel "github.com/target/penuel-portal"
	"github.com/target/penuel-portal/config"
	httpx "github.com/target/penuel-portal/internal/http"
	"github.com/target/penuel-portal/internal/observability/metrics"
)

// NewMetrics creates the registry and auth metrics. Both are nil when metrics are disabled.
func NewMetrics(cfg config.MetricsConfig) (*prometheus.Registry, *metrics.AuthMetrics) {
	if !cfg.Enabled {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg, metrics.NewAuthMetrics(reg)
}

// HTTPServerConfig contains what the portal handler is built from.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Auth     httpx.AuthServiceInterface
	Registry *prometheus.Registry
	Metrics  *metrics.AuthMetrics
	Ready    map[string]httpx.PingFunc
	Logger   *slog.Logger
}

// NewHTTPServer builds the router over the embedded assets and wraps it in a server.
func NewHTTPServer(cfg HTTPServerConfig) (*http.Server, error) {
	if cfg.Config == nil {
		return nil, errors.New("config is required")
	}
	templateFS, err := fs.Sub(penuel.TemplateFS, "frontend/templates")
	if err != nil {
		return nil, fmt.Errorf("template fs: %w", err)
	}
	staticFS, err := fs.Sub(penuel.StaticFS, "frontend/static")
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}

	services := httpx.RouterServices{
		Auth:         cfg.Auth,
		Metrics:      cfg.Metrics,
		Ready:        cfg.Ready,
		TemplateFS:   templateFS,
		StaticFS:     staticFS,
		CookieDomain: cfg.Config.HTTP.CookieDomain,
		IsDev:        cfg.Config.IsDev,
		Logger:       cfg.Logger,
	}
	if cfg.Registry != nil {
		services.MetricsHandler = promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{Registry: cfg.Registry})
	}

	handler, err := httpx.NewRouter(services)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	return &http.Server{
		Addr:              cfg.Config.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Config.HTTP.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}

// Serve runs server until ctx is canceled or SIGINT/SIGTERM arrives, then shuts it
// down within shutdownTimeout.
func Serve(ctx context.Context, server *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})
	return g.Wait()
}
