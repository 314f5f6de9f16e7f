package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/penuel-portal/config"
	"github.com/target/penuel-portal/internal/adapters/directory"
	mockauth "github.com/target/penuel-portal/internal/mocks/auth"
	"github.com/target/penuel-portal/internal/service"
)

func TestNewMetrics(t *testing.T) {
	reg, m := NewMetrics(config.MetricsConfig{Enabled: false})
	assert.Nil(t, reg)
	assert.Nil(t, m)

	reg, m = NewMetrics(config.MetricsConfig{Enabled: true})
	require.NotNil(t, reg)
	require.NotNil(t, m)
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families, "runtime collectors are registered")
}

func newTestServer(t *testing.T, metricsEnabled bool) *http.Server {
	t.Helper()
	cfg := &config.AppConfig{HTTP: config.HTTPConfig{Addr: ":0", ReadHeaderTimeout: time.Second}}
	reg, m := NewMetrics(config.MetricsConfig{Enabled: metricsEnabled})
	svc := service.NewAuthService(service.AuthServiceOptions{
		Verifier: directory.Default(),
		Sessions: mockauth.NewMemorySessionStore(),
		Metrics:  m,
		Logger:   discardLogger(),
	})
	server, err := NewHTTPServer(HTTPServerConfig{
		Config:   cfg,
		Auth:     svc,
		Registry: reg,
		Metrics:  m,
		Ready:    nil,
		Logger:   discardLogger(),
	})
	require.NoError(t, err)
	return server
}

func TestNewHTTPServer_ServesEmbeddedAssets(t *testing.T) {
	server := newTestServer(t, true)
	assert.Equal(t, ":0", server.Addr)
	assert.Equal(t, time.Second, server.ReadHeaderTimeout)

	for _, path := range []string{"/", "/gate", "/healthz", "/static/css/portal.css", "/metrics"} {
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestNewHTTPServer_NoMetricsRoute(t *testing.T) {
	server := newTestServer(t, false)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewHTTPServer_RequiresConfig(t *testing.T) {
	_, err := NewHTTPServer(HTTPServerConfig{})
	require.Error(t, err)
}

func TestServe_StopsOnCancel(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, server, time.Second, discardLogger()) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
