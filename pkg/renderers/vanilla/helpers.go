package vanilla

import (
	"strconv"
	"strings"

	gotemplate "github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
)

// componentControlID builds the DOM id of a field control. Multi-entry
// sections suffix the entry id so tabs never share ids.
func componentControlID(name string, entryID int) string {
	slug := gotemplate.Slug(name)
	if slug == "" {
		return ""
	}
	if entryID < 0 {
		return "fw-" + slug
	}
	return "fw-" + slug + "-" + strconv.Itoa(entryID)
}

func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "fw-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}
