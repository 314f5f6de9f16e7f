package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"maps"
	"sync"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	"github.com/target/penuel-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore       = (*MemorySessionStore)(nil)
	_ ports.CredentialVerifier = (*FakeVerifier)(nil)
	_ ports.AuditRecorder      = (*RecordingAuditRecorder)(nil)
)

// MemorySessionStore is an in-memory session store for unit tests.
// Records are kept as raw field maps so tests can plant partial records.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]map[string]string

	// Optional error injection.
	ReadErr  error
	WriteErr error
	ClearErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]map[string]string)}
}

func (m *MemorySessionStore) Read(_ context.Context, handle string) (domainauth.Session, error) {
	if m.ReadErr != nil {
		return domainauth.Session{}, m.ReadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return domainauth.DecodeFields(m.sessions[handle]), nil
}

func (m *MemorySessionStore) Write(_ context.Context, handle string, sess domainauth.Session) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if handle == "" {
		return errors.New("session handle cannot be empty")
	}
	if !sess.IsComplete() {
		return errors.New("refusing to write incomplete session")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[handle] = domainauth.EncodeFields(sess)
	return nil
}

func (m *MemorySessionStore) Clear(_ context.Context, handle string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, handle)
	return nil
}

// Put stores raw fields under handle, bypassing Write validation.
func (m *MemorySessionStore) Put(handle string, fields map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[handle] = maps.Clone(fields)
}

// Fields returns a copy of the raw fields stored under handle, or nil.
func (m *MemorySessionStore) Fields(handle string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.sessions[handle]; ok {
		return maps.Clone(f)
	}
	return nil
}

// Len returns the number of stored records.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// FakeVerifier accepts a fixed set of credentials.
type FakeVerifier struct {
	VerifyFunc func(ctx context.Context, identity, secret string) (domainauth.Credential, error)

	Credentials []domainauth.Credential

	mu    sync.Mutex
	calls int
}

func (f *FakeVerifier) Verify(ctx context.Context, identity, secret string) (domainauth.Credential, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.VerifyFunc != nil {
		return f.VerifyFunc(ctx, identity, secret)
	}
	id := domainauth.NormalizeIdentity(identity)
	for _, c := range f.Credentials {
		if c.Identity == id && c.Secret == secret {
			return c, nil
		}
	}
	return domainauth.Credential{}, ports.ErrInvalidCredentials
}

// Calls returns how many times Verify was invoked.
func (f *FakeVerifier) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// RecordingAuditRecorder keeps every recorded event in memory.
type RecordingAuditRecorder struct {
	Err error

	mu     sync.Mutex
	events []ports.AuditEvent
}

func (r *RecordingAuditRecorder) Record(_ context.Context, ev ports.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.Err
}

// Events returns a copy of the recorded events.
func (r *RecordingAuditRecorder) Events() []ports.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.AuditEvent(nil), r.events...)
}

// Outcomes returns the outcome of each recorded event in order.
func (r *RecordingAuditRecorder) Outcomes() []ports.AuditOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.AuditOutcome, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Outcome)
	}
	return out
}
