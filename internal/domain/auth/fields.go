package auth

// Persisted field names of a session record. The four fields are written and
// cleared together; a record holding only some of them is a partial session.
const (
	FieldAuthenticated = "authenticated"
	FieldRole          = "role"
	FieldDepartment    = "department"
	FieldSubject       = "subject"
)

// SessionFields lists every persisted field name.
func SessionFields() []string {
	return []string{FieldAuthenticated, FieldRole, FieldDepartment, FieldSubject}
}

// EncodeFields renders s into its persisted field map. Absent values are omitted
// rather than stored empty, so an empty session encodes to an empty map.
func EncodeFields(s Session) map[string]string {
	m := make(map[string]string, 4)
	if s.Authenticated {
		m[FieldAuthenticated] = "true"
	}
	if s.Role != RoleNone {
		m[FieldRole] = string(s.Role)
	}
	if s.Department != DepartmentUnset {
		m[FieldDepartment] = string(s.Department)
	}
	if s.Subject != "" {
		m[FieldSubject] = s.Subject
	}
	return m
}

// DecodeFields reads a persisted field map. Values are kept as stored so that
// malformed records surface as partial sessions instead of being silently fixed.
func DecodeFields(m map[string]string) Session {
	return Session{
		Authenticated: m[FieldAuthenticated] == "true",
		Role:          Role(m[FieldRole]),
		Department:    Department(m[FieldDepartment]),
		Subject:       m[FieldSubject],
	}
}
