package httpx

import (
	"net/http"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
)

// PageData is the view model shared by every template.
type PageData struct {
	Title  string
	Page   string
	Layout string
	Path   string

	Session  domainauth.Session
	SignedIn bool
	IsOwner  bool
	Landing  string
	Nav      []domainauth.NavItem

	// Department is set on department workspace pages.
	Department  *domainauth.DepartmentEntry
	Departments []domainauth.DepartmentEntry

	CSRFToken string

	// Login form state.
	Email string
	Error string
}

// newPageData builds the common fields for page on the public shell.
func newPageData(r *http.Request, page, title string, sess domainauth.Session) PageData {
	return PageData{
		Title:       title,
		Page:        page,
		Layout:      LayoutPublic,
		Path:        r.URL.Path,
		Session:     sess,
		SignedIn:    sess.IsComplete(),
		IsOwner:     sess.IsOwner(),
		Landing:     domainauth.LandingPath(sess),
		Nav:         domainauth.Navigation(sess),
		Departments: domainauth.Departments(),
		CSRFToken:   GetCSRFToken(r),
	}
}
