package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
)

// UIHandlers renders the public pages and the dashboard views.
type UIHandlers struct {
	T        *TemplateRenderer
	Sessions SessionReader
	Logger   *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// currentSession is a best-effort read for pages that only adapt their chrome.
func (h *UIHandlers) currentSession(r *http.Request) domainauth.Session {
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		return sess
	}
	if h.Sessions == nil {
		return domainauth.Session{}
	}
	sess, err := h.Sessions.Current(r.Context(), sessionHandle(r))
	if err != nil {
		h.logger().WarnContext(r.Context(), "public page: session read failed", "path", r.URL.Path, "error", err)
		return domainauth.Session{}
	}
	return sess
}

// Public returns a handler for an unauthenticated page.
func (h *UIHandlers) Public(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := newPageData(r, page, title, h.currentSession(r))
		h.T.renderOrError(w, r, http.StatusOK, data)
	}
}

// Dashboard returns the handler for a protected view. It expects the guards
// to have placed the session in the request context.
func (h *UIHandlers) Dashboard(v dashboardView) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSessionFromContext(r.Context())
		if !ok || !sess.IsComplete() {
			ReplaceNavigate(w, r, domainauth.PathLogin)
			return
		}
		data := newPageData(r, v.Page, v.Title, sess)
		data.Layout = LayoutDashboard
		if v.Department != domainauth.DepartmentUnset {
			if e, found := domainauth.LookupDepartment(v.Department); found {
				data.Department = &e
			}
		}
		h.T.renderOrError(w, r, http.StatusOK, data)
	}
}

// NotFound renders the 404 page, or a JSON error for API clients.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) || h == nil || h.T == nil {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "message": "page not found"})
		return
	}
	data := newPageData(r, PageNotFound, "Page Not Found", h.currentSession(r))
	h.T.renderOrError(w, r, http.StatusNotFound, data)
}
