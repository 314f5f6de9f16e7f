package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	ownerSession = Session{Authenticated: true, Role: RoleOwner, Department: DepartmentExecutive, Subject: "owner@penuel.com"}
	requirements = []AccessRequirement{
		OwnerOnly(StaffLandingPath),
		AnyStaff(PathLogin),
		DepartmentScoped(DepartmentCarWash, StaffLandingPath),
		DepartmentScoped(DepartmentService, StaffLandingPath),
		DepartmentScoped(DepartmentRestaurant, StaffLandingPath),
		DepartmentScoped(DepartmentSupermarket, StaffLandingPath),
		{RequiredRole: RoleStaff, RequiredDepartment: DepartmentExecutive, FallbackPath: "/x"},
		{RequiredRole: "admin", FallbackPath: "/y"},
	}
)

func staffIn(d Department) Session {
	return Session{Authenticated: true, Role: RoleStaff, Department: d, Subject: string(d) + "@penuel.com"}
}

func TestDecide_OwnerBypassesEveryRequirement(t *testing.T) {
	for _, req := range requirements {
		assert.Equal(t, Allow(), Decide(ownerSession, req), "requirement %+v", req)
	}
}

func TestDecide_OwnerBypassScenario(t *testing.T) {
	req := AccessRequirement{RequiredRole: RoleStaff, RequiredDepartment: DepartmentCarWash, FallbackPath: "/ops"}
	assert.True(t, Decide(ownerSession, req).Allowed)
}

func TestDecide_WrongDepartment(t *testing.T) {
	req := AccessRequirement{RequiredRole: RoleStaff, RequiredDepartment: DepartmentCarWash, FallbackPath: "/ops"}
	assert.Equal(t, Deny("/ops"), Decide(staffIn(DepartmentRestaurant), req))
}

func TestDecide_Unauthenticated(t *testing.T) {
	req := AccessRequirement{RequiredRole: RoleStaff, FallbackPath: "/login"}
	assert.Equal(t, Deny("/login"), Decide(Session{}, req))
	assert.Equal(t, Deny("/dashboard/operations"), Decide(Session{}, OwnerOnly("/dashboard/operations")))
}

func TestDecide_StaffMatrix(t *testing.T) {
	for _, e := range Departments() {
		s := staffIn(e.Department)
		for _, req := range requirements {
			want := req.RequiredRole == RoleStaff &&
				(req.RequiredDepartment == DepartmentUnset || req.RequiredDepartment == e.Department)
			got := Decide(s, req)
			assert.Equal(t, want, got.Allowed, "dept=%s req=%+v", e.Department, req)
			if !want {
				assert.Equal(t, req.FallbackPath, got.Redirect)
			}
		}
	}
}

func TestDecide_AnyStaffNeverRejectsOnDepartment(t *testing.T) {
	for _, e := range Departments() {
		assert.True(t, Decide(staffIn(e.Department), AnyStaff(PathLogin)).Allowed)
	}
}

func TestDecide_PartialSessionsAreAbsent(t *testing.T) {
	partial := []Session{
		{Authenticated: true},
		{Authenticated: true, Role: RoleStaff},
		{Role: RoleOwner, Department: DepartmentExecutive},
		{Role: RoleOwner},
		{Authenticated: true, Role: RoleOwner, Department: DepartmentCarWash},
		{Authenticated: true, Role: RoleStaff, Department: DepartmentExecutive},
		{Authenticated: true, Role: "secretary", Department: DepartmentService},
	}
	for _, s := range partial {
		for _, req := range requirements {
			assert.Equal(t, Deny(req.FallbackPath), Decide(s, req), "session %+v req %+v", s, req)
		}
	}
}

func TestDecide_CaseInsensitive(t *testing.T) {
	s := Session{Authenticated: true, Role: "Staff", Department: "CARWASH"}
	req := AccessRequirement{RequiredRole: "STAFF", RequiredDepartment: "CarWash", FallbackPath: "/ops"}
	assert.True(t, Decide(s, req).Allowed)
}

func TestAccessRequirement_Tier(t *testing.T) {
	assert.Equal(t, TierOwnerOnly, OwnerOnly("/").Tier())
	assert.Equal(t, TierAnyStaff, AnyStaff("/").Tier())
	assert.Equal(t, TierDepartmentScoped, DepartmentScoped(DepartmentService, "/").Tier())
}
