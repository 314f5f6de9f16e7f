package httpx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/target/penuel-portal/internal/adapters/directory"
	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	mockauth "github.com/target/penuel-portal/internal/mocks/auth"
	"github.com/target/penuel-portal/internal/service"
)

const testCSRFToken = "test-csrf-token"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// portal is a fully wired router over in-memory session and audit stores.
type portal struct {
	store   *mockauth.MemorySessionStore
	audit   *mockauth.RecordingAuditRecorder
	svc     *service.AuthService
	handler http.Handler
}

type portalOption func(*RouterServices)

func newPortal(t *testing.T, opts ...portalOption) *portal {
	t.Helper()
	SkipIfNoTemplates(t)

	p := &portal{
		store: mockauth.NewMemorySessionStore(),
		audit: &mockauth.RecordingAuditRecorder{},
	}
	p.svc = service.NewAuthService(service.AuthServiceOptions{
		Verifier: directory.Default(),
		Sessions: p.store,
		Audit:    p.audit,
		Logger:   discardLogger(),
	})

	services := RouterServices{
		Auth:       p.svc,
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS("../../frontend/static"),
		Logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(&services)
	}
	h, err := NewRouter(services)
	require.NoError(t, err)
	p.handler = h
	return p
}

type requestOption func(*http.Request)

func withSession(handle string) requestOption {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: handle})
	}
}

func withHeader(k, v string) requestOption {
	return func(r *http.Request) { r.Header.Set(k, v) }
}

func asHTMX() requestOption { return withHeader("Hx-Request", "true") }

func withoutCSRF() requestOption {
	return func(r *http.Request) {
		r.Header.Del(DefaultCSRFHeaderName)
	}
}

func (p *portal) do(t *testing.T, method, target string, body io.Reader, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	req.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	p.handler.ServeHTTP(rec, req)
	return rec
}

func (p *portal) get(t *testing.T, target string, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	return p.do(t, http.MethodGet, target, nil, opts...)
}

func (p *portal) postForm(t *testing.T, target string, form url.Values, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	opts = append([]requestOption{withHeader("Content-Type", "application/x-www-form-urlencoded")}, opts...)
	return p.do(t, http.MethodPost, target, strings.NewReader(form.Encode()), opts...)
}

func (p *portal) postJSON(t *testing.T, target string, payload any, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	opts = append([]requestOption{withHeader("Content-Type", "application/json")}, opts...)
	return p.do(t, http.MethodPost, target, strings.NewReader(string(b)), opts...)
}

// login signs in through POST /gate and returns the issued handle.
func (p *portal) login(t *testing.T, email, password string, opts ...requestOption) string {
	t.Helper()
	rec := p.postForm(t, domainauth.PathLogin, url.Values{"email": {email}, "password": {password}}, opts...)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	c := findCookie(rec, SessionCookieName)
	require.NotNil(t, c, "session cookie not set")
	return c.Value
}

// plant writes a complete session directly into the store.
func (p *portal) plant(t *testing.T, handle string, sess domainauth.Session) {
	t.Helper()
	require.NoError(t, p.store.Write(context.Background(), handle, sess))
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	resp := rec.Result()
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func ownerSession() domainauth.Session {
	return domainauth.Session{
		Authenticated: true,
		Role:          domainauth.RoleOwner,
		Department:    domainauth.DepartmentExecutive,
		Subject:       "owner@penuel.com",
	}
}

func staffSession(d domainauth.Department) domainauth.Session {
	return domainauth.Session{
		Authenticated: true,
		Role:          domainauth.RoleStaff,
		Department:    d,
		Subject:       string(d) + "@penuel.com",
	}
}
