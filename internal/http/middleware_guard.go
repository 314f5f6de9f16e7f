package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	"github.com/target/penuel-portal/internal/observability/metrics"
)

// SessionReader is the read side of the session lifecycle used by the guards.
// Both methods clear partial records before returning the empty session.
type SessionReader interface {
	Current(ctx context.Context, handle string) (domainauth.Session, error)
	Recheck(ctx context.Context, handle string) (domainauth.Session, error)
}

// GuardConfig groups the dependencies of RouteGuard and LayoutGuard.
type GuardConfig struct {
	Sessions SessionReader
	Metrics  *metrics.AuthMetrics
	Logger   *slog.Logger
}

func (c GuardConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// sessionHandle returns the session handle carried by the request, or "".
func sessionHandle(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// RouteGuard wraps a protected view with req. Each request reads the current
// session and asks domainauth.Decide; a denial replace-navigates to the fallback
// without writing any of the view.
func RouteGuard(cfg GuardConfig, req domainauth.AccessRequirement) func(http.Handler) http.Handler {
	tier := req.Tier()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := cfg.Sessions.Current(r.Context(), sessionHandle(r))
			if err != nil {
				writeStoreError(w, r, cfg.logger(), err)
				return
			}

			decision := domainauth.Decide(sess, req)
			cfg.Metrics.ObserveDecision(tier, decision)
			if !decision.Allowed {
				cfg.logger().DebugContext(r.Context(), "access denied",
					"path", r.URL.Path, "tier", tier, "role", sess.Role,
					"department", sess.Department, "redirect", decision.Redirect)
				ReplaceNavigate(w, r, decision.Redirect)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		})
	}
}

// LayoutGuard is the dashboard shell check. It re-reads the store on its own, so a
// teardown by another actor after the route decision still sends the request to login.
func LayoutGuard(cfg GuardConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := cfg.Sessions.Recheck(r.Context(), sessionHandle(r))
			if err != nil {
				writeStoreError(w, r, cfg.logger(), err)
				return
			}
			if !sess.IsComplete() {
				cfg.logger().DebugContext(r.Context(), "layout guard: no session", "path", r.URL.Path)
				ReplaceNavigate(w, r, domainauth.PathLogin)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		})
	}
}

func writeStoreError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	logger.ErrorContext(r.Context(), "session store unavailable", "path", r.URL.Path, "error", err)
	if wantsJSON(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusServiceUnavailable,
			ErrCode: "session_store_unavailable",
			Err:     errors.New("session store unavailable"),
		})
		return
	}
	http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
}
