package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const iconFallback = "Description"

// Section icons of the bundled insurance preset, keyed by section title.
var defaultIcons = map[string]string{
	"Policy":          svgIcon("M21 5l-9-4-9 4v6c0 5.55 3.84 10.74 9 12 2.3-.56 4.33-1.9 5.88-3.71l-3.12-3.12c-1.94 1.29-4.58 1.07-6.29-.64-1.95-1.95-1.95-5.12 0-7.07 1.95-1.95 5.12-1.95 7.07 0 1.71 1.71 1.92 4.35.64 6.29l2.9 2.9C20.29 15.69 21 13.38 21 11V5z"),
	"Policy Header":   svgIcon("M12 12c2.21 0 4-1.79 4-4s-1.79-4-4-4-4 1.79-4 4 1.79 4 4 4zm0 2c-2.67 0-8 1.34-8 4v2h16v-2c0-2.66-5.33-4-8-4z"),
	"PDPA Consent":    svgIcon("M12 1 3 5v6c0 5.55 3.84 10.74 9 12 5.16-1.26 9-6.45 9-12V5l-9-4zm1 16h-2v-6h2v6zm0-8h-2V7h2v2z"),
	"Insured Details": svgIcon("M12 1 3 5v6c0 5.55 3.84 10.74 9 12 5.16-1.26 9-6.45 9-12V5l-9-4zm0 10.99h7c-.53 4.12-3.28 7.79-7 8.94V12H5V6.3l7-3.11v8.8z"),
	iconFallback:      svgIcon("M14 2H6c-1.1 0-1.99.9-1.99 2L4 20c0 1.1.89 2 1.99 2H18c1.1 0 2-.9 2-2V8l-6-6zm2 16H8v-2h8v2zm0-4H8v-2h8v2zm-3-5V3.5L18.5 9H13z"),
}

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

func svgIcon(path string) string {
	return `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" aria-hidden="true"><path d="` + path + `"/></svg>`
}

// iconSet resolves section titles to sanitized inline SVG markup.
type iconSet map[string]string

func newIconSet(overrides map[string]string) iconSet {
	icons := make(iconSet, len(defaultIcons)+len(overrides))
	for title, markup := range defaultIcons {
		icons[title] = markup
	}
	for title, markup := range overrides {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if cleaned := sanitizeIconMarkup(markup); cleaned != "" {
			icons[title] = cleaned
		}
	}
	return icons
}

func (s iconSet) lookup(title string) string {
	if markup, ok := s[title]; ok {
		return markup
	}
	return s[iconFallback]
}

func sanitizeIconMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("svg", "g", "path", "circle", "rect", "polygon", "title")

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "aria-hidden", "role", "focusable", "class",
		).OnElements("svg")

		for _, el := range []string{"path", "circle", "rect", "polygon"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "rx", "ry", "points",
				"fill", "stroke", "stroke-width", "class",
			).OnElements(el)
		}
		policy.AllowAttrs("id").OnElements("g")

		iconPolicy = policy
	})
	return iconPolicy
}
