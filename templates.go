package formwizard

import (
	"io/fs"

	vanilla "github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla templates so callers can
// copy or override them through a theme.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the bundled stylesheet.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
