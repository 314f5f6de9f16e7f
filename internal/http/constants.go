package httpx

import domainauth "github.com/target/penuel-portal/internal/domain/auth"

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	// Public pages.
	PageHome      = "home"
	PageAbout     = "about"
	PageCatalogue = "catalogue"
	PageLogin     = "login"
	PageNotFound  = "not-found"

	// Owner-only pages.
	PageOverview   = "overview"
	PageFinancials = "financials"
	PageSettings   = "settings"
	PageAura       = "aura"

	// Staff pages.
	PageOperations  = "operations"
	PageStaffRoster = "staff"
	PageDepartment  = "department"
)

const (
	// SessionCookieName holds the opaque session handle.
	SessionCookieName = "session_id"

	// LayoutPublic and LayoutDashboard are the two page shells.
	LayoutPublic    = "layout"
	LayoutDashboard = "dashboard-layout"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:        "home-content",
	PageAbout:       "about-content",
	PageCatalogue:   "catalogue-content",
	PageLogin:       "login-content",
	PageNotFound:    "not-found-content",
	PageOverview:    "overview-content",
	PageFinancials:  "financials-content",
	PageSettings:    "settings-content",
	PageAura:        "aura-content",
	PageOperations:  "operations-content",
	PageStaffRoster: "staff-content",
	PageDepartment:  "department-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to not-found-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "not-found-content"
}

// dashboardView binds a protected path to its page and access requirement.
type dashboardView struct {
	Path        string
	Page        string
	Title       string
	Requirement domainauth.AccessRequirement
	Department  domainauth.Department
}

// dashboardViews lists every protected surface. Tiers differ only in their requirement data.
func dashboardViews() []dashboardView {
	ownerOnly := domainauth.OwnerOnly(domainauth.StaffLandingPath)
	anyStaff := domainauth.AnyStaff(domainauth.PathLogin)

	views := []dashboardView{
		{Path: domainauth.PathOverview, Page: PageOverview, Title: "Command Center", Requirement: ownerOnly},
		{Path: domainauth.PathFinancials, Page: PageFinancials, Title: "Financial Reports", Requirement: ownerOnly},
		{Path: domainauth.PathSettings, Page: PageSettings, Title: "Global Settings", Requirement: ownerOnly},
		{Path: domainauth.PathAura, Page: PageAura, Title: "Aura Analytics", Requirement: ownerOnly},
		{Path: domainauth.PathOperations, Page: PageOperations, Title: "Operations Feed", Requirement: anyStaff},
		{Path: domainauth.PathStaffRoster, Page: PageStaffRoster, Title: "Staff Management", Requirement: anyStaff},
	}
	for _, e := range domainauth.Departments() {
		views = append(views, dashboardView{
			Path:        e.WorkspacePath,
			Page:        PageDepartment,
			Title:       e.Label,
			Requirement: domainauth.DepartmentScoped(e.Department, domainauth.StaffLandingPath),
			Department:  e.Department,
		})
	}
	return views
}
