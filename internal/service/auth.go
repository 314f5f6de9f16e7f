package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	"github.com/target/penuel-portal/internal/observability/metrics"
	"github.com/target/penuel-portal/internal/ports"
)

// DefaultLoginDelay is the simulated verification latency applied before every login check.
const DefaultLoginDelay = 600 * time.Millisecond

// ErrMissingCredentials is returned when identity or secret is blank.
var ErrMissingCredentials = errors.New("email and password are required")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Verifier ports.CredentialVerifier
	Sessions ports.SessionStore
	Audit    ports.AuditRecorder  // optional
	Metrics  *metrics.AuthMetrics // optional
	Logger   *slog.Logger         // optional

	// LoginDelay is waited before verification. Zero disables it.
	LoginDelay time.Duration

	// NewHandle and Now are overridable for tests.
	NewHandle func() string
	Now       func() time.Time
}

// AuthService orchestrates the session lifecycle: login, reads with self-healing, and teardown.
type AuthService struct {
	verifier   ports.CredentialVerifier
	sessions   ports.SessionStore
	audit      ports.AuditRecorder
	metrics    *metrics.AuthMetrics
	logger     *slog.Logger
	loginDelay time.Duration
	newHandle  func() string
	now        func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	s := &AuthService{
		verifier:   opts.Verifier,
		sessions:   opts.Sessions,
		audit:      opts.Audit,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		loginDelay: opts.LoginDelay,
		newHandle:  opts.NewHandle,
		now:        opts.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.newHandle == nil {
		s.newHandle = generateSessionHandle
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// LoginResult is a freshly written session and the handle it is stored under.
type LoginResult struct {
	Handle  string
	Session domainauth.Session
}

// Login verifies identity/secret and persists a complete session under a new handle.
// A rejected pair yields ports.ErrInvalidCredentials unchanged, whatever half was wrong.
// Cancelling ctx abandons the attempt without writing anything.
func (s *AuthService) Login(ctx context.Context, identity, secret string) (*LoginResult, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" || secret == "" {
		return nil, ErrMissingCredentials
	}

	if err := s.wait(ctx); err != nil {
		s.metrics.ObserveLogin(metrics.ResultError, err)
		return nil, err
	}

	cred, err := s.verifier.Verify(ctx, identity, secret)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			s.metrics.ObserveLogin(metrics.ResultInvalid, nil)
			s.logger.InfoContext(ctx, "login rejected", "subject", identity)
			s.record(ctx, ports.AuditEvent{Outcome: ports.AuditLoginFailed, Subject: identity})
			return nil, ports.ErrInvalidCredentials
		}
		s.metrics.ObserveLogin(metrics.ResultError, err)
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	sess := domainauth.Session{
		Authenticated: true,
		Role:          cred.Role,
		Department:    cred.Department,
		Subject:       identity,
	}
	handle := s.newHandle()
	if writeErr := s.sessions.Write(ctx, handle, sess); writeErr != nil {
		s.metrics.ObserveLogin(metrics.ResultError, writeErr)
		return nil, fmt.Errorf("write session: %w", writeErr)
	}

	s.metrics.ObserveLogin(metrics.ResultSuccess, nil)
	s.logger.InfoContext(ctx, "login succeeded",
		"subject", identity, "role", sess.Role, "department", sess.Department)
	s.record(ctx, ports.AuditEvent{
		Outcome:    ports.AuditLoginSucceeded,
		Subject:    identity,
		Role:       sess.Role,
		Department: sess.Department,
	})
	return &LoginResult{Handle: handle, Session: sess}, nil
}

// Replace logs in like Login and, on success, clears the record held under previous.
// A failed login leaves the previous session untouched.
func (s *AuthService) Replace(ctx context.Context, previous, identity, secret string) (*LoginResult, error) {
	res, err := s.Login(ctx, identity, secret)
	if err != nil {
		return nil, err
	}
	if previous != "" && previous != res.Handle {
		if clearErr := s.sessions.Clear(ctx, previous); clearErr != nil {
			s.logger.WarnContext(ctx, "failed to clear previous session", "error", clearErr)
		}
	}
	return res, nil
}

// Current returns the session stored under handle. Partial records are cleared and
// reported as the empty session. An empty handle is the empty session.
func (s *AuthService) Current(ctx context.Context, handle string) (domainauth.Session, error) {
	return s.current(ctx, handle, "route_guard")
}

// Recheck is Current for the dashboard layout check; it reads the store afresh.
func (s *AuthService) Recheck(ctx context.Context, handle string) (domainauth.Session, error) {
	return s.current(ctx, handle, "layout_guard")
}

func (s *AuthService) current(ctx context.Context, handle, source string) (domainauth.Session, error) {
	if handle == "" {
		return domainauth.Session{}, nil
	}
	sess, err := s.sessions.Read(ctx, handle)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("read session: %w", err)
	}
	if !sess.IsPartial() {
		return sess, nil
	}

	s.logger.WarnContext(ctx, "clearing partial session",
		"source", source, "authenticated", sess.Authenticated, "role", sess.Role, "department", sess.Department)
	if clearErr := s.sessions.Clear(ctx, handle); clearErr != nil {
		return domainauth.Session{}, fmt.Errorf("clear partial session: %w", clearErr)
	}
	s.metrics.ObserveSelfHeal(source)
	s.record(ctx, ports.AuditEvent{
		Outcome:    ports.AuditSelfHeal,
		Subject:    sess.Subject,
		Role:       sess.Role,
		Department: sess.Department,
	})
	return domainauth.Session{}, nil
}

// Logout removes every field of the session under handle. It is idempotent and
// an empty handle is a no-op.
func (s *AuthService) Logout(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}

	// Subject is only needed for the audit trail.
	prev, readErr := s.sessions.Read(ctx, handle)
	if readErr != nil {
		s.logger.DebugContext(ctx, "logout: read before clear failed", "error", readErr)
	}

	if err := s.sessions.Clear(ctx, handle); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	if readErr == nil && !prev.IsEmpty() {
		s.logger.InfoContext(ctx, "logout", "subject", prev.Subject)
		s.record(ctx, ports.AuditEvent{
			Outcome:    ports.AuditLogout,
			Subject:    prev.Subject,
			Role:       prev.Role,
			Department: prev.Department,
		})
	}
	return nil
}

func (s *AuthService) wait(ctx context.Context) error {
	if s.loginDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.loginDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// record appends to the audit trail when one is configured. Failures are logged only.
func (s *AuthService) record(ctx context.Context, ev ports.AuditEvent) {
	if s.audit == nil {
		return
	}
	ev.OccurredAt = s.now().UTC()
	if err := s.audit.Record(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "audit record failed", "outcome", ev.Outcome, "error", err)
	}
}

// generateSessionHandle creates a cryptographically random session handle.
func generateSessionHandle() string {
	return uuid.New().String()
}
