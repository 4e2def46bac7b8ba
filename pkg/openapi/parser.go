package openapi

import "context"

// Parser extracts operations from a document, keyed by operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// Validate runs document validation after loading. Enabled by default.
	Validate bool

	// AllowExternalRefs lets $ref point outside the document.
	AllowExternalRefs bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithExternalRefs allows references to other files or URLs.
func WithExternalRefs(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowExternalRefs = enabled
	}
}

// NewParserOptions applies options over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{Validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
