package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	internalLoader "github.com/goliatone/go-formwizard/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formwizard/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/registry"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithSchemas supplies the registry Request.Preset names are looked up in.
// Defaults to the bundled presets.
func WithSchemas(schemas *registry.Registry) Option {
	return func(o *Orchestrator) {
		o.schemas = schemas
	}
}

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(renderers *render.Registry) Option {
	return func(o *Orchestrator) {
		o.renderers = renderers
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves Request.ThemeName and ThemeVariant into the
// renderer theme configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks sets the partials used where a theme names none.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// WithLogger records pipeline stages at debug level and hands the logger to
// wizard sessions.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates schema resolution, session replay and rendering.
type Orchestrator struct {
	schemas         *registry.Registry
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	renderers       *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	logger          zerolog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator. Missing dependencies get the built-in
// implementations: bundled presets, the kin-openapi loader and parser, and a
// registry holding the vanilla and tui renderers.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes where the schema comes from and what to replay on the
// session before rendering. Exactly one of Schema, Preset, SchemaPath or
// OpenAPI must be set.
type Request struct {
	Schema     *schema.Schema
	Preset     string
	SchemaPath string

	// OpenAPI and OperationID import the operation's request body.
	OpenAPI     pkgopenapi.Source
	OperationID string

	// State resumes a previous session; nil starts a fresh one.
	State   *wizard.State
	Compact bool

	// Values are answers for the current step, applied before Actions.
	Values url.Values
	// Actions are render.ParseAction strings applied in order.
	Actions []string

	Renderer      string
	ThemeName     string
	ThemeVariant  string
	RenderOptions render.RenderOptions
}

// Result is the rendered step together with the session it was drawn from.
type Result struct {
	Output      []byte
	ContentType string
	Renderer    string
	State       wizard.State
	Snapshot    wizard.Snapshot
	Values      []wizard.SectionValues
}

// ResolveSchema returns the schema a request names.
func (o *Orchestrator) ResolveSchema(ctx context.Context, req Request) (schema.Schema, error) {
	if err := o.initialiseErr; err != nil {
		return schema.Schema{}, err
	}

	set := 0
	for _, ok := range []bool{req.Schema != nil, req.Preset != "", req.SchemaPath != "", req.OpenAPI != nil} {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		return schema.Schema{}, errors.New("orchestrator: schema, preset, schema path or openapi source is required")
	case set > 1:
		return schema.Schema{}, errors.New("orchestrator: only one schema source may be set")
	}

	switch {
	case req.Schema != nil:
		if err := schema.Validate(*req.Schema); err != nil {
			return schema.Schema{}, fmt.Errorf("orchestrator: %w", err)
		}
		return req.Schema.Clone(), nil
	case req.Preset != "":
		s, err := o.schemas.Get(req.Preset)
		if err != nil {
			return schema.Schema{}, fmt.Errorf("orchestrator: %w", err)
		}
		return s, nil
	case req.SchemaPath != "":
		s, err := registry.LoadFile(req.SchemaPath)
		if err != nil {
			return schema.Schema{}, fmt.Errorf("orchestrator: %w", err)
		}
		return s, nil
	default:
		return o.importOpenAPI(ctx, req)
	}
}

func (o *Orchestrator) importOpenAPI(ctx context.Context, req Request) (schema.Schema, error) {
	if req.OperationID == "" {
		return schema.Schema{}, errors.New("orchestrator: operation id is required")
	}
	doc, err := o.loader.Load(ctx, req.OpenAPI)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	s, err := pkgopenapi.ImportOperation(operations, req.OperationID, pkgopenapi.WithImportLogger(o.logger))
	if err != nil {
		return schema.Schema{}, fmt.Errorf("orchestrator: %w", err)
	}
	o.logger.Debug().
		Str("source", req.OpenAPI.Location()).
		Str("operation", req.OperationID).
		Int("sections", s.Len()).
		Msg("orchestrator imported openapi operation")
	return s, nil
}

// Session builds a wizard session for the request and replays its values and
// actions.
func (o *Orchestrator) Session(ctx context.Context, req Request) (*wizard.Controller, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := o.ResolveSchema(ctx, req)
	if err != nil {
		return nil, err
	}

	actions := make([]render.Action, 0, len(req.Actions))
	for _, raw := range req.Actions {
		action, err := render.ParseAction(raw)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		actions = append(actions, action)
	}

	opts := []wizard.Option{wizard.WithLogger(o.logger), wizard.WithCompactLayout(req.Compact)}
	if req.State != nil {
		opts = append(opts, wizard.WithState(*req.State))
	}
	c := wizard.New(s, opts...)

	if len(req.Values) > 0 {
		render.ApplyValues(c, req.Values)
	}
	for _, action := range actions {
		render.ApplyAction(c, action)
	}
	return c, nil
}

// Generate resolves the schema, replays the request on a session and renders
// the current step.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	c, err := o.Session(ctx, req)
	if err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil && o.themeSelector != nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return Result{}, err
		}
		opts.Theme = cfg
	}

	snap := c.Snapshot()
	output, err := renderer.Render(ctx, snap, opts)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug().
		Str("renderer", renderer.Name()).
		Int("step", snap.Step).
		Int("bytes", len(output)).
		Msg("orchestrator rendered step")

	return Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		Renderer:    renderer.Name(),
		State:       c.State(),
		Snapshot:    snap,
		Values:      c.Collect(),
	}, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	sel, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	fallbacks := o.themeFallbacks
	if len(fallbacks) == 0 {
		fallbacks = render.DefaultPartials()
	}
	return render.ThemeConfig(sel, fallbacks), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.renderers == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}
	if target != "" {
		renderer, err := o.renderers.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.renderers.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.renderers.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.schemas == nil {
		schemas, err := registry.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load presets: %w", err)
			return
		}
		o.schemas = schemas
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.renderers == nil {
		o.renderers = render.NewRegistry()
		html, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.renderers.MustRegister(html)
		text, err := tui.New(tui.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: tui renderer: %w", err)
			return
		}
		o.renderers.MustRegister(text)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
