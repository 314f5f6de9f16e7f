package auth

// Tier names the authorization pattern an AccessRequirement expresses.
// It is derived from the requirement's data and only used for reporting.
type Tier string

const (
	TierOwnerOnly        Tier = "owner_only"
	TierAnyStaff         Tier = "any_staff"
	TierDepartmentScoped Tier = "department_scoped"
)

// AccessRequirement is the data a protected view declares about who may see it.
// RequiredDepartment is DepartmentUnset when the view has no department restriction.
type AccessRequirement struct {
	RequiredRole       Role
	RequiredDepartment Department
	FallbackPath       string
}

// OwnerOnly builds a Tier 1 requirement.
func OwnerOnly(fallback string) AccessRequirement {
	return AccessRequirement{RequiredRole: RoleOwner, FallbackPath: fallback}
}

// AnyStaff builds a Tier 2 requirement.
func AnyStaff(fallback string) AccessRequirement {
	return AccessRequirement{RequiredRole: RoleStaff, FallbackPath: fallback}
}

// DepartmentScoped builds a Tier 3 requirement.
func DepartmentScoped(dept Department, fallback string) AccessRequirement {
	return AccessRequirement{RequiredRole: RoleStaff, RequiredDepartment: dept, FallbackPath: fallback}
}

// Tier reports which access tier the requirement belongs to.
func (r AccessRequirement) Tier() Tier {
	switch {
	case r.RequiredDepartment != DepartmentUnset:
		return TierDepartmentScoped
	case r.RequiredRole == RoleOwner:
		return TierOwnerOnly
	default:
		return TierAnyStaff
	}
}

// Decision is the outcome of an access check. A denied decision carries the
// path the caller must replace-navigate to. Deny is a normal result, not an error.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Allow is the decision that renders the protected view.
func Allow() Decision { return Decision{Allowed: true} }

// Deny is the decision that redirects to path.
func Deny(path string) Decision { return Decision{Redirect: path} }

// Decide is the single access decision procedure shared by every protected view.
// It is pure: no I/O, no mutation, deterministic for its two inputs.
//
// Incomplete sessions are evaluated as absent. Owners pass every requirement
// before any other condition is looked at. Otherwise the role must match, and
// the department must match when the requirement names one.
func Decide(s Session, req AccessRequirement) Decision {
	s = s.normalized()
	requiredRole, _ := ParseRole(string(req.RequiredRole))
	requiredDept, _ := ParseDepartment(string(req.RequiredDepartment))

	if s.Role == RoleOwner {
		return Allow()
	}
	if s.Role != requiredRole || requiredRole == RoleNone {
		return Deny(req.FallbackPath)
	}
	if req.RequiredDepartment != DepartmentUnset && s.Department != requiredDept {
		return Deny(req.FallbackPath)
	}
	return Allow()
}
