package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDepartment(t *testing.T) {
	e, ok := LookupDepartment(DepartmentCarWash)
	require.True(t, ok)
	assert.Equal(t, "Car Wash", e.Label)
	assert.Equal(t, "/dashboard/dept/carwash", e.WorkspacePath)

	_, ok = LookupDepartment(DepartmentExecutive)
	assert.False(t, ok, "executive has no workspace")

	_, ok = LookupDepartment(DepartmentUnset)
	assert.False(t, ok)
}

func TestDepartments_ReturnsCopy(t *testing.T) {
	d := Departments()
	require.Len(t, d, 4)
	d[0].Label = "mutated"
	assert.Equal(t, "Car Wash", Departments()[0].Label)
}

func TestNavigation(t *testing.T) {
	assert.Empty(t, Navigation(Session{}))

	owner := Navigation(ownerSession)
	assert.Len(t, owner, 6)
	assert.Equal(t, PathAura, owner[len(owner)-1].Path)

	staff := Navigation(staffIn(DepartmentRestaurant))
	require.Len(t, staff, 4)
	assert.Equal(t, "/dashboard/dept/restaurant", staff[3].Path)
	for _, item := range staff {
		assert.NotEqual(t, PathFinancials, item.Path)
	}
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, PathOverview, LandingPath(ownerSession))
	assert.Equal(t, StaffLandingPath, LandingPath(staffIn(DepartmentService)))
	assert.Equal(t, PathLogin, LandingPath(Session{Authenticated: true}))
}
