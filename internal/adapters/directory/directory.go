package directory

// Package directory provides the static, build-time credential directory used
// when no remote verifier is configured.

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	"github.com/target/penuel-portal/internal/ports"
)

var _ ports.CredentialVerifier = (*Directory)(nil)

// Directory is an immutable identity → credential table.
type Directory struct {
	entries map[string]domainauth.Credential
}

// builtin is the credential table compiled into the portal.
func builtin() []domainauth.Credential {
	return []domainauth.Credential{
		{Identity: "owner@penuel.com", Secret: "penuel-owner", Role: domainauth.RoleOwner, Department: domainauth.DepartmentExecutive},
		{Identity: "carwash@penuel.com", Secret: "penuel-carwash", Role: domainauth.RoleStaff, Department: domainauth.DepartmentCarWash},
		{Identity: "service@penuel.com", Secret: "penuel-service", Role: domainauth.RoleStaff, Department: domainauth.DepartmentService},
		{Identity: "restaurant@penuel.com", Secret: "penuel-restaurant", Role: domainauth.RoleStaff, Department: domainauth.DepartmentRestaurant},
		{Identity: "supermarket@penuel.com", Secret: "penuel-supermarket", Role: domainauth.RoleStaff, Department: domainauth.DepartmentSupermarket},
	}
}

// Default returns the built-in directory.
func Default() *Directory {
	d, err := New(builtin()...)
	if err != nil {
		// The built-in table is validated by tests.
		panic(err)
	}
	return d
}

// New builds a directory from entries. Identities are normalized; each entry must
// carry a secret and a role/department pair that forms a complete session.
func New(entries ...domainauth.Credential) (*Directory, error) {
	m := make(map[string]domainauth.Credential, len(entries))
	for _, e := range entries {
		key := domainauth.NormalizeIdentity(e.Identity)
		if key == "" {
			return nil, errors.New("directory: identity is required")
		}
		if e.Secret == "" {
			return nil, fmt.Errorf("directory: secret is required for %q", key)
		}
		probe := domainauth.Session{Authenticated: true, Role: e.Role, Department: e.Department, Subject: key}
		if !probe.IsComplete() {
			return nil, fmt.Errorf("directory: invalid role/department %q/%q for %q", e.Role, e.Department, key)
		}
		if _, dup := m[key]; dup {
			return nil, fmt.Errorf("directory: duplicate identity %q", key)
		}
		e.Identity = key
		m[key] = e
	}
	return &Directory{entries: m}, nil
}

// Verify looks up identity case-insensitively and compares secret exactly.
// Unknown identity and wrong secret both return ports.ErrInvalidCredentials.
func (d *Directory) Verify(_ context.Context, identity, secret string) (domainauth.Credential, error) {
	e, ok := d.entries[domainauth.NormalizeIdentity(identity)]
	if !ok {
		return domainauth.Credential{}, ports.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(e.Secret), []byte(secret)) != 1 {
		return domainauth.Credential{}, ports.ErrInvalidCredentials
	}
	return e, nil
}

// Len returns the number of entries.
func (d *Directory) Len() int { return len(d.entries) }
