package render

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Renderer draws the current wizard step into a byte representation (HTML,
// terminal text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snap wizard.Snapshot, options RenderOptions) ([]byte, error)
}
