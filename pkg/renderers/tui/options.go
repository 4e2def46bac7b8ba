package tui

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/render"
)

// OutputFormat controls how snapshots and collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints applied to printed messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger records session actions at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithRenderOptions localises prompts and chrome labels of interactive
// sessions.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(r *Renderer) {
		r.sessionOpts = opts
	}
}

// WithMaxPrompts stops a session with ErrTooManyPrompts after n prompts.
// Zero means no limit.
func WithMaxPrompts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxPrompts = n
		}
	}
}
