package auth

// Package auth contains domain-level types for authentication, sessions, and access decisions.
// It is pure and free of framework/adapter concerns.

import "strings"

// Role represents an application's authorization role.
// Keep string form for easy persistence in the session store.
type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
	// RoleNone is the zero role carried by an absent session.
	RoleNone Role = ""
)

// ParseRole converts a persisted or configured value into a Role.
// Comparison is case-insensitive; unknown values yield RoleNone and false.
func ParseRole(v string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleOwner:
		return RoleOwner, true
	case RoleStaff:
		return RoleStaff, true
	default:
		return RoleNone, false
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Department identifies a business unit.
type Department string

const (
	DepartmentExecutive   Department = "executive"
	DepartmentCarWash     Department = "carwash"
	DepartmentService     Department = "service"
	DepartmentRestaurant  Department = "restaurant"
	DepartmentSupermarket Department = "supermarket"
	// DepartmentUnset is the zero department carried by an absent session,
	// and doubles as "no department restriction" in an AccessRequirement.
	DepartmentUnset Department = ""
)

// ParseDepartment converts a persisted or configured value into a Department.
// Comparison is case-insensitive; unknown values yield DepartmentUnset and false.
func ParseDepartment(v string) (Department, bool) {
	switch d := Department(strings.ToLower(strings.TrimSpace(v))); d {
	case DepartmentExecutive, DepartmentCarWash, DepartmentService, DepartmentRestaurant, DepartmentSupermarket:
		return d, true
	default:
		return DepartmentUnset, false
	}
}

// Valid reports whether d is one of the defined departments.
func (d Department) Valid() bool {
	_, ok := ParseDepartment(string(d))
	return ok
}

// Session is the current actor's identity claims as held by the session store.
// A session is either complete or absent; anything in between is partial and
// must be treated as absent by every consumer.
type Session struct {
	Authenticated bool       `json:"authenticated"`
	Role          Role       `json:"role"`
	Department    Department `json:"department"`
	Subject       string     `json:"subject"`
}

// IsEmpty reports whether every field is cleared.
func (s Session) IsEmpty() bool {
	return !s.Authenticated && s.Role == RoleNone && s.Department == DepartmentUnset && s.Subject == ""
}

// IsComplete reports whether the session carries a full, consistent set of claims:
// authenticated, a valid role and department, owners only in executive, and staff
// only in a department that has a workspace in the registry.
func (s Session) IsComplete() bool {
	if !s.Authenticated {
		return false
	}
	role, ok := ParseRole(string(s.Role))
	if !ok {
		return false
	}
	dept, ok := ParseDepartment(string(s.Department))
	if !ok {
		return false
	}
	switch role {
	case RoleOwner:
		return dept == DepartmentExecutive
	case RoleStaff:
		_, ok = LookupDepartment(dept)
		return ok
	default:
		return false
	}
}

// IsPartial reports whether the session is neither empty nor complete.
func (s Session) IsPartial() bool {
	return !s.IsEmpty() && !s.IsComplete()
}

// IsOwner reports whether the session is a complete owner session.
func (s Session) IsOwner() bool {
	return s.IsComplete() && s.normalizedRole() == RoleOwner
}

// normalized returns the session in the lower-cased comparison domain, or the
// empty session when it is not complete.
func (s Session) normalized() Session {
	if !s.IsComplete() {
		return Session{}
	}
	return Session{
		Authenticated: true,
		Role:          s.normalizedRole(),
		Department:    s.normalizedDepartment(),
		Subject:       s.Subject,
	}
}

func (s Session) normalizedRole() Role {
	r, _ := ParseRole(string(s.Role))
	return r
}

func (s Session) normalizedDepartment() Department {
	d, _ := ParseDepartment(string(s.Department))
	return d
}

// Credential is one entry of a credential directory.
// Identity is stored normalized (lower-cased).
type Credential struct {
	Identity   string
	Secret     string
	Role       Role
	Department Department
}

// NormalizeIdentity returns the lookup form of a submitted identity.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
