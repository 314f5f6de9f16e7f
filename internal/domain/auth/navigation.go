package auth

// Well-known surfaces of the portal.
const (
	PathHome         = "/"
	PathAbout        = "/about"
	PathCatalogue    = "/catalogue"
	PathLogin        = "/gate"
	PathOverview     = DashboardRoot
	PathFinancials   = DashboardRoot + "/financials"
	PathSettings     = DashboardRoot + "/settings"
	PathAura         = DashboardRoot + "/aura"
	PathOperations   = DashboardRoot + "/operations"
	PathStaffRoster  = DashboardRoot + "/staff"
	StaffLandingPath = PathOperations
)

// NavItem is one sidebar entry. Items are display only; showing an item does
// not grant access to it.
type NavItem struct {
	ID    string
	Label string
	Path  string
}

var (
	baseNavItems = []NavItem{ //nolint:gochecknoglobals // static menu
		{ID: "dashboard", Label: "Dashboard Home", Path: PathOverview},
		{ID: "operations", Label: "Operations Feed", Path: PathOperations},
		{ID: "staff", Label: "Staff Management", Path: PathStaffRoster},
	}
	ownerNavItems = []NavItem{ //nolint:gochecknoglobals // static menu
		{ID: "financials", Label: "Financial Reports", Path: PathFinancials},
		{ID: "settings", Label: "Global Settings", Path: PathSettings},
		{ID: "aura", Label: "Aura Analytics", Path: PathAura},
	}
)

// Navigation returns the sidebar entries for s. Absent or partial sessions get none.
func Navigation(s Session) []NavItem {
	if !s.IsComplete() {
		return nil
	}
	items := append([]NavItem(nil), baseNavItems...)
	if s.IsOwner() {
		return append(items, ownerNavItems...)
	}
	if e, ok := LookupDepartment(s.Department); ok {
		items = append(items, NavItem{ID: "dept-" + string(e.Department), Label: e.Label, Path: e.WorkspacePath})
	}
	return items
}

// LandingPath is where an actor is sent after signing in.
func LandingPath(s Session) string {
	switch {
	case s.IsOwner():
		return PathOverview
	case s.IsComplete():
		return StaffLandingPath
	default:
		return PathLogin
	}
}
