package formwizard

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/render"
)

// RenderOptions aliases render.RenderOptions for callers that only import
// the root package.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the module root.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderPreset renders the first step of a bundled preset with the named
// renderer ("vanilla" when empty).
func RenderPreset(ctx context.Context, preset, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	result, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Preset:   preset,
		Renderer: rendererName,
	})
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeManifests builds a selector over manifests, the first being the
// default theme.
func WithThemeManifests(defaultVariant string, manifests ...*theme.Manifest) orchestrator.Option {
	return orchestrator.WithThemeSelector(render.NewSelector(defaultVariant, manifests...))
}
