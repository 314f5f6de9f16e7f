package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	"github.com/target/penuel-portal/internal/ports"
	"github.com/target/penuel-portal/internal/service"
)

// AuthServiceInterface defines the session lifecycle operations the handlers use.
type AuthServiceInterface interface {
	SessionReader
	Replace(ctx context.Context, previous, identity, secret string) (*service.LoginResult, error)
	Logout(ctx context.Context, handle string) error
}

// invalidCredentialsMessage is shown for every rejected login.
const invalidCredentialsMessage = "Invalid email or password"

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Renderer     *TemplateRenderer
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPage renders the sign-in form. Visitors who are already signed in go to their landing page.
// GET /gate.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Svc.Current(r.Context(), sessionHandle(r))
	if err != nil {
		h.logger().WarnContext(r.Context(), "login page: session read failed", "error", err)
		sess = domainauth.Session{}
	}
	if sess.IsComplete() {
		ReplaceNavigate(w, r, domainauth.LandingPath(sess))
		return
	}
	h.renderLogin(w, r, http.StatusOK, loginRequest{}, "")
}

// Login verifies the submitted pair and starts a session under a fresh handle.
// Accepts form posts and JSON bodies. POST /gate.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	asJSON := wantsJSON(r)
	in, ok := h.readLogin(w, r, asJSON)
	if !ok {
		return
	}

	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		h.loginFailed(w, r, loginFailure{
			asJSON: asJSON, in: in, status: http.StatusBadRequest,
			errCode: "missing_fields", err: service.ErrMissingCredentials,
			message: "Please enter your email and password",
		})
		return
	}

	res, err := h.Svc.Replace(r.Context(), sessionHandle(r), in.Email, in.Password)
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrInvalidCredentials):
		h.loginFailed(w, r, loginFailure{
			asJSON: asJSON, in: in, status: http.StatusUnauthorized,
			errCode: "invalid_credentials", err: ports.ErrInvalidCredentials,
			message: invalidCredentialsMessage,
		})
		return
	case errors.Is(err, context.Canceled):
		// The client went away; nothing was written.
		h.logger().DebugContext(r.Context(), "login abandoned", "subject", in.Email)
		return
	default:
		h.logger().ErrorContext(r.Context(), "login failed", "subject", in.Email, "error", err)
		h.loginFailed(w, r, loginFailure{
			asJSON: asJSON, in: in, status: http.StatusServiceUnavailable,
			errCode: "login_unavailable", err: errors.New("sign-in is temporarily unavailable"),
			message: "Sign-in is temporarily unavailable. Please try again.",
		})
		return
	}

	h.setSessionCookie(w, r, res.Handle)
	landing := domainauth.LandingPath(res.Session)
	if asJSON {
		WriteJSON(w, http.StatusOK, map[string]any{
			"redirect": landing,
			"session":  newStatusResponse(res.Session),
		})
		return
	}
	ReplaceNavigate(w, r, landing)
}

func (h *AuthHandlers) readLogin(w http.ResponseWriter, r *http.Request, asJSON bool) (loginRequest, bool) {
	var in loginRequest
	if asJSON && strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return in, DecodeJSON(w, r, &in)
	}
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return in, false
	}
	in.Email = r.PostFormValue("email")
	in.Password = r.PostFormValue("password")
	return in, true
}

type loginFailure struct {
	asJSON  bool
	in      loginRequest
	status  int
	errCode string
	err     error
	message string
}

func (h *AuthHandlers) loginFailed(w http.ResponseWriter, r *http.Request, f loginFailure) {
	if f.asJSON || h.Renderer == nil {
		WriteError(w, ErrorParams{Code: f.status, ErrCode: f.errCode, Err: f.err})
		return
	}
	status := f.status
	if WantsPartial(r) {
		// htmx does not swap error responses.
		status = http.StatusOK
	}
	h.renderLogin(w, r, status, f.in, f.message)
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, in loginRequest, msg string) {
	if h.Renderer == nil {
		http.Error(w, "login page unavailable", http.StatusInternalServerError)
		return
	}
	data := newPageData(r, PageLogin, "Access the Portal", domainauth.Session{})
	data.Email = in.Email
	data.Error = msg
	h.Renderer.renderOrError(w, r, status, data)
}

// Logout tears down the session and navigates to the login surface.
// Repeating it is harmless. POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Logout(r.Context(), sessionHandle(r)); err != nil {
		// Keep the cookie so the user can retry; dropping it would orphan the record.
		h.logger().ErrorContext(r.Context(), "logout failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusServiceUnavailable,
			ErrCode: "logout_failed",
			Err:     errors.New("sign-out is temporarily unavailable"),
		})
		return
	}
	h.clearSessionCookie(w, r)
	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]string{"redirect": domainauth.PathLogin})
		return
	}
	ReplaceNavigate(w, r, domainauth.PathLogin)
}

type statusResponse struct {
	Authenticated bool                  `json:"authenticated"`
	Role          domainauth.Role       `json:"role,omitempty"`
	Department    domainauth.Department `json:"department,omitempty"`
	Subject       string                `json:"subject,omitempty"`
	Landing       string                `json:"landing"`
	Navigation    []navItemResponse     `json:"navigation"`
}

type navItemResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

func newStatusResponse(s domainauth.Session) statusResponse {
	out := statusResponse{Landing: domainauth.LandingPath(s), Navigation: []navItemResponse{}}
	if !s.IsComplete() {
		return out
	}
	out.Authenticated = true
	out.Role = s.Role
	out.Department = s.Department
	out.Subject = s.Subject
	for _, n := range domainauth.Navigation(s) {
		out.Navigation = append(out.Navigation, navItemResponse{ID: n.ID, Label: n.Label, Path: n.Path})
	}
	return out
}

// Status reports the current identity as JSON. GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Svc.Current(r.Context(), sessionHandle(r))
	if err != nil {
		writeStoreError(w, r, h.logger(), err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, newStatusResponse(sess))
}

// setSessionCookie stores the handle in an HttpOnly cookie with no expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, handle string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    handle,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
