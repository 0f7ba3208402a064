package footer

import (
	"bytes"
	"html/template"
)

// Link describes an entry in the footer's link list.
type Link struct {
	Label string
	URL   string
}

// Config captures the markup hooks required to render the footer.
type Config struct {
	ElementID   string
	BaseClass   string
	ThemeClass  string
	BrandText   string
	BrandURL    string
	StatusID    string
	StatusLabel string
	LinkClass   string
	Links       []Link
}

var (
	footerTemplate = template.Must(template.New("footer").Parse(`<footer id="{{.ElementID}}" class="{{.BaseClass}} {{.ThemeClass}}">
  <div class="container d-flex justify-content-between align-items-center">
    {{if .BrandURL}}<a class="{{.LinkClass}}" href="{{.BrandURL}}" target="_blank" rel="noopener noreferrer">{{.BrandText}}</a>{{else}}<span>{{.BrandText}}</span>{{end}}
    {{if .StatusID}}<small id="{{.StatusID}}" class="text-muted">{{.StatusLabel}}</small>{{end}}
    <ul class="list-inline mb-0">
      {{range .Links}}
      <li class="list-inline-item"><a class="{{$.LinkClass}}" href="{{.URL}}">{{.Label}}</a></li>
      {{end}}
    </ul>
  </div>
</footer>`))
)

// Render returns the footer HTML for the provided configuration.
func Render(config Config) (template.HTML, error) {
	var buffer bytes.Buffer
	if err := footerTemplate.Execute(&buffer, config); err != nil {
		return "", err
	}
	return template.HTML(buffer.String()), nil
}
