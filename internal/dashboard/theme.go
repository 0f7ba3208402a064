package dashboard

import "strings"

// Theme is the dashboard color scheme stored per browser session.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Palette holds the chart colors for a theme.
type Palette struct {
	Text string `json:"text"`
	Grid string `json:"grid"`
}

// ParseTheme falls back to light for anything it does not recognize.
func ParseTheme(raw string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(raw))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (theme Theme) Toggle() Theme {
	if theme == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Icon is the toggle button icon: a sun offers the way back to light.
func (theme Theme) Icon() string {
	if theme == ThemeDark {
		return "fas fa-sun"
	}
	return "fas fa-moon"
}

func (theme Theme) Palette() Palette {
	if theme == ThemeDark {
		return Palette{Text: "#ffffff", Grid: "#495057"}
	}
	return Palette{Text: "#5a5c69", Grid: "#e3e6f0"}
}
