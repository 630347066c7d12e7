package web

import (
	"github.com/marklaroya/portfolio/internal/content"
	"github.com/marklaroya/portfolio/internal/view"
)

// Template names.
const (
	PageIndex          = "index.tmpl"
	PagePrivacy        = "privacy.tmpl"
	PageAdminLogin     = "admin_login.tmpl"
	PageAdminDashboard = "admin_dashboard.tmpl"
	PageAdminVisitors  = "admin_visitors.tmpl"
	PageAdminError     = "admin_error.tmpl"
	FragmentNav        = "nav"
)

// Nav is what the navigation bar needs from a view.
type Nav struct {
	ViewID   string
	Sections []content.Section
	Dark     bool
	MenuOpen bool
}

// Page is the data for a full page load.
type Page struct {
	HTMLClass string
	Nav       Nav
	Profile   *content.Profile
}

// NavFor snapshots v. Call it while holding the view (inside View.Do).
func NavFor(v *view.View, sections []content.Section) Nav {
	return Nav{
		ViewID:   v.ID,
		Sections: sections,
		Dark:     v.Theme.Dark(),
		MenuOpen: v.Nav.MenuOpen(),
	}
}

// PageFor snapshots v for a full render. Same locking rule as NavFor.
func PageFor(v *view.View, sections []content.Section, p *content.Profile) Page {
	return Page{
		HTMLClass: v.Document.Class(),
		Nav:       NavFor(v, sections),
		Profile:   p,
	}
}
