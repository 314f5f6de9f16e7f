package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
)

// ErrInvalidCredentials is the single failure a CredentialVerifier reports for a
// rejected identity/secret pair. It is returned for an unknown identity and for a
// wrong secret alike, so callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// SessionStore persists the session claims of one browser, addressed by an opaque handle.
// Read of an unknown handle returns the empty session and a nil error.
// Write replaces every field in one step; Clear removes every field.
type SessionStore interface {
	Read(ctx context.Context, handle string) (domainauth.Session, error)
	Write(ctx context.Context, handle string, sess domainauth.Session) error
	Clear(ctx context.Context, handle string) error
}

// CredentialVerifier checks a submitted identity/secret pair.
type CredentialVerifier interface {
	Verify(ctx context.Context, identity, secret string) (domainauth.Credential, error)
}

// AuditOutcome classifies an audit event.
type AuditOutcome string

const (
	AuditLoginSucceeded AuditOutcome = "login_succeeded"
	AuditLoginFailed    AuditOutcome = "login_failed"
	AuditLogout         AuditOutcome = "logout"
	AuditSelfHeal       AuditOutcome = "self_heal"
)

// AuditEvent is one entry of the authentication audit trail. Secrets are never recorded.
type AuditEvent struct {
	Outcome    AuditOutcome
	Subject    string
	Role       domainauth.Role
	Department domainauth.Department
	OccurredAt time.Time
}

// AuditRecorder appends events to the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, ev AuditEvent) error
}
