package auth

// DashboardRoot is the path prefix of every protected surface.
const DashboardRoot = "/dashboard"

// DepartmentEntry is the display metadata of a department workspace.
type DepartmentEntry struct {
	Department    Department
	Label         string
	WorkspacePath string
}

// departmentRegistry lists the staff departments in display order.
// Executive is absent: owners have no single department workspace.
var departmentRegistry = []DepartmentEntry{ //nolint:gochecknoglobals // static registry
	{Department: DepartmentCarWash, Label: "Car Wash", WorkspacePath: DepartmentWorkspacePath(DepartmentCarWash)},
	{Department: DepartmentService, Label: "Service Center", WorkspacePath: DepartmentWorkspacePath(DepartmentService)},
	{Department: DepartmentRestaurant, Label: "Restaurant", WorkspacePath: DepartmentWorkspacePath(DepartmentRestaurant)},
	{Department: DepartmentSupermarket, Label: "Supermarket", WorkspacePath: DepartmentWorkspacePath(DepartmentSupermarket)},
}

// DepartmentWorkspacePath returns /dashboard/dept/<tag>.
func DepartmentWorkspacePath(d Department) string {
	return DashboardRoot + "/dept/" + string(d)
}

// Departments returns a copy of the registry in display order.
func Departments() []DepartmentEntry {
	out := make([]DepartmentEntry, len(departmentRegistry))
	copy(out, departmentRegistry)
	return out
}

// LookupDepartment returns the registry entry for d.
// A false result means the department has no workspace surface, which is the
// expected answer for DepartmentExecutive.
func LookupDepartment(d Department) (DepartmentEntry, bool) {
	d, ok := ParseDepartment(string(d))
	if !ok {
		return DepartmentEntry{}, false
	}
	for _, e := range departmentRegistry {
		if e.Department == d {
			return e, true
		}
	}
	return DepartmentEntry{}, false
}
