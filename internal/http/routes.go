package httpx

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	"github.com/target/penuel-portal/internal/observability/metrics"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth    AuthServiceInterface
	Metrics *metrics.AuthMetrics
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
	// Ready maps dependency names to probes for GET /readyz.
	Ready map[string]PingFunc

	TemplateFS fs.FS
	StaticFS   fs.FS

	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
}

// NewRouter builds the portal handler: public pages, the login surface, the
// guarded dashboard views and operational endpoints.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil {
		return nil, errors.New("auth service is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS := services.TemplateFS
	if services.IsDev || templateFS == nil {
		templateFS = os.DirFS(TemplatePathFromRoot)
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS, Logger: logger})
	if err != nil {
		return nil, err
	}

	ui := &UIHandlers{T: tr, Sessions: services.Auth, Logger: logger}
	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Renderer:     tr,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	guards := GuardConfig{Sessions: services.Auth, Metrics: services.Metrics, Logger: logger}

	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, Metrics(services.Metrics, pattern)(h))
	}

	handle("GET /{$}", ui.Public(PageHome, "Penuel"))
	handle("GET /about", ui.Public(PageAbout, "About Penuel"))
	handle("GET /catalogue", ui.Public(PageCatalogue, "Our Services"))

	registerAuthRoutes(handle, authHandlers)
	registerDashboardRoutes(handle, ui, guards)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.Ready, logger))
	if services.MetricsHandler != nil {
		mux.Handle("GET /metrics", services.MetricsHandler)
	}
	mux.Handle("GET /static/", staticHandler(services.StaticFS, services.IsDev))
	mux.HandleFunc("/", ui.NotFound)

	csrf := CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})
	return Recover(logger)(Logging(logger)(csrf(mux))), nil
}

func registerAuthRoutes(handle func(string, http.Handler), h *AuthHandlers) {
	handle("GET "+domainauth.PathLogin, NoStore(http.HandlerFunc(h.LoginPage)))
	handle("POST "+domainauth.PathLogin, NoStore(http.HandlerFunc(h.Login)))
	handle("POST /auth/logout", NoStore(http.HandlerFunc(h.Logout)))
	handle("GET /auth/status", http.HandlerFunc(h.Status))
}

// registerDashboardRoutes mounts every protected view behind its route guard and the shell guard.
func registerDashboardRoutes(handle func(string, http.Handler), ui *UIHandlers, guards GuardConfig) {
	layout := LayoutGuard(guards)
	for _, v := range dashboardViews() {
		view := NoStore(ui.Dashboard(v))
		handle("GET "+v.Path, RouteGuard(guards, v.Requirement)(layout(view)))
	}
}

// staticHandler serves /static/* from disk in dev mode and from the embedded FS otherwise.
func staticHandler(staticFS fs.FS, isDev bool) http.Handler {
	var root http.FileSystem = http.Dir("frontend/static")
	if !isDev && staticFS != nil {
		root = http.FS(staticFS)
	}
	h := http.StripPrefix("/static/", http.FileServer(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		h.ServeHTTP(w, r)
	})
}
