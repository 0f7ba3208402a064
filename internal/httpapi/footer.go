package httpapi

import (
	"html/template"

	"github.com/MarkoPoloResearchLab/botdash/internal/dashboard"
	"github.com/MarkoPoloResearchLab/botdash/pkg/footer"
)

const (
	footerElementID       = "dashboard-footer"
	footerBaseClass       = "mt-auto py-3 border-top"
	footerThemeLightClass = "bg-body text-body-secondary"
	footerThemeDarkClass  = "bg-dark text-light border-light"
	footerBrandText       = "botdash"
	footerLinkClass       = "link-secondary small"
	lastRefreshElementID  = "last-refresh"
	lastRefreshWaiting    = "Waiting for first refresh"
)

var footerLinks = []footer.Link{
	{Label: "Metrics", URL: MetricsPath},
	{Label: "Health", URL: HealthPath},
}

// RenderFooterHTML renders the page footer for the session's theme.
func RenderFooterHTML(theme dashboard.Theme, lastRefresh string) (template.HTML, error) {
	themeClass := footerThemeLightClass
	if theme == dashboard.ThemeDark {
		themeClass = footerThemeDarkClass
	}
	if lastRefresh == "" {
		lastRefresh = lastRefreshWaiting
	}
	return footer.Render(footer.Config{
		ElementID:   footerElementID,
		BaseClass:   footerBaseClass,
		ThemeClass:  themeClass,
		BrandText:   footerBrandText,
		StatusID:    lastRefreshElementID,
		StatusLabel: lastRefresh,
		LinkClass:   footerLinkClass,
		Links:       footerLinks,
	})
}
