package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	gotemplate "github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	overrides        map[schema.FieldType]string
	icons            map[string]string
	title            string
	heading          string
	inlineStyles     bool
	stylesheets      []string
	chrome           ChromeClasses
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithComponentOverride renders every field of kind with the named component.
func WithComponentOverride(kind schema.FieldType, component string) Option {
	return func(cfg *config) {
		if cfg.overrides == nil {
			cfg.overrides = make(map[schema.FieldType]string)
		}
		cfg.overrides[kind.Kind()] = component
	}
}

// WithSectionIcons sets inline SVG icons for the section list, keyed by
// section title. Markup is sanitized; sections without an icon use a generic
// document icon.
func WithSectionIcons(icons map[string]string) Option {
	return func(cfg *config) {
		if cfg.icons == nil {
			cfg.icons = make(map[string]string, len(icons))
		}
		for title, markup := range icons {
			cfg.icons[title] = markup
		}
	}
}

// WithTitle sets the heading of the section list. Defaults to the localised
// "Sections" label.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = strings.TrimSpace(title)
	}
}

// WithHeading prefixes the top bar title: "<heading> - <section>".
func WithHeading(heading string) Option {
	return func(cfg *config) {
		cfg.heading = strings.TrimSpace(heading)
	}
}

// WithDefaultStyles inlines the bundled stylesheet into the output.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an external stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithChromeClasses appends classes to the page chrome.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.chrome = classes
	}
}

// Renderer draws the current wizard step as an HTML form: section list,
// stepper, entry tabs, field grid and navigation buttons. Every button
// submits a render.HiddenAction value.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	strategies  fieldStrategies
	icons       iconSet
	title       string
	heading     string
	inlineCSS   string
	stylesheets []string
	classes     map[string]string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	strategies, err := resolveStrategies(cfg.registry, cfg.overrides)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	r := &Renderer{
		templates:   renderer,
		registry:    cfg.registry,
		strategies:  strategies,
		icons:       newIconSet(cfg.icons),
		title:       cfg.title,
		heading:     cfg.heading,
		stylesheets: cfg.stylesheets,
		classes:     cfg.chrome.resolve(),
	}
	if cfg.inlineStyles {
		r.inlineCSS = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, snap wizard.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	icons := make([]string, len(snap.Steps))
	for i, step := range snap.Steps {
		icons[i] = r.icons.lookup(step.Title)
	}

	snap = cloneSnapshot(snap)
	render.LocalizeSnapshot(&snap, opts)
	labels := render.LocalizeLabels(opts)
	mapping := render.StepErrors(snap, opts, labels)
	partials := resolvePartials(opts)

	entryID := -1
	for _, entry := range snap.Entries {
		if entry.Active {
			entryID = entry.ID
		}
	}

	fields := newComponentRenderer(r.templates, r.strategies, partials, mapping.Fields, entryID)
	fieldMarkup := make([]string, 0, len(snap.Fields))
	for _, field := range snap.Fields {
		markup, err := fields.render(field)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		fieldMarkup = append(fieldMarkup, markup)
	}

	steps := make([]map[string]any, 0, len(snap.Steps))
	for i, step := range snap.Steps {
		steps = append(steps, map[string]any{
			"title":    step.Title,
			"number":   strconv.Itoa(step.Index + 1),
			"action":   render.ActionValue(render.ActionJump, step.Index),
			"icon":     icons[i],
			"current":  step.Current,
			"complete": step.Complete,
		})
	}

	common := map[string]any{
		"labels":  labels,
		"layout":  snap.Layout,
		"classes": r.classes,
	}

	sidebar, err := r.partial(partials, "wizard.sidebar", common, map[string]any{
		"title":        r.sidebarTitle(labels),
		"drawer_width": strconv.Itoa(snap.DrawerWidth),
		"steps":        steps,
	})
	if err != nil {
		return nil, err
	}

	var entries string
	if snap.Multiple {
		entries, err = r.partial(partials, "wizard.entries", common, map[string]any{
			"entries": entryTabs(snap),
		})
		if err != nil {
			return nil, err
		}
	}

	controls, err := r.partial(partials, "wizard.controls", common, map[string]any{
		"first": snap.First,
		"last":  snap.Last,
		"valid": snap.Valid,
	})
	if err != nil {
		return nil, err
	}

	var style string
	stylesheets := append([]string(nil), r.stylesheets...)
	if opts.Theme != nil {
		style = render.CSSVarsStyle(opts.Theme.CSSVars)
		if opts.Theme.AssetURL != nil {
			if href := opts.Theme.AssetURL("stylesheet"); href != "" {
				stylesheets = append(stylesheets, href)
			}
		}
	}
	stylesheets = append(stylesheets, r.registry.Stylesheets(fields.used())...)

	hidden := render.SortedHiddenFields(render.MergeHiddenFields(nil,
		append(append([]render.HiddenField(nil), opts.Hidden...), render.StepHiddenFields(snap)...)...))

	page, err := r.partial(partials, "wizard.step", common, map[string]any{
		"step":        strconv.Itoa(snap.Step),
		"columns":     strconv.Itoa(snap.Columns),
		"action":      opts.Action,
		"style":       style,
		"stylesheets": stylesheets,
		"inline_css":  r.inlineCSS,
		"hidden":      hidden,
		"heading":     r.topbarHeading(snap.Title),
		"title":       snap.Title,
		"multiple":    snap.Multiple,
		"add_label":   strings.TrimSpace(labels.AddEntry + " " + snap.Title),
		"form_errors": mapping.Form,
		"steps":       steps,
		"fields":      fieldMarkup,
		"sidebar":     sidebar,
		"entries":     entries,
		"controls":    controls,
	})
	if err != nil {
		return nil, err
	}
	return []byte(page), nil
}

func (r *Renderer) partial(partials map[string]string, key string, common, data map[string]any) (string, error) {
	name := partials[key]
	payload := make(map[string]any, len(common)+len(data))
	for k, v := range common {
		payload[k] = v
	}
	for k, v := range data {
		payload[k] = v
	}
	out, err := r.templates.RenderTemplate(name, payload)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render %s: %w", key, err)
	}
	return out, nil
}

func (r *Renderer) sidebarTitle(labels render.Labels) string {
	if r.title != "" {
		return r.title
	}
	return labels.Sections
}

func (r *Renderer) topbarHeading(section string) string {
	if r.heading == "" {
		return section
	}
	return r.heading + " - " + section
}

func resolvePartials(opts render.RenderOptions) map[string]string {
	partials := render.DefaultPartials()
	if opts.Theme == nil {
		return partials
	}
	for key, path := range opts.Theme.Partials {
		if strings.TrimSpace(path) != "" {
			partials[key] = path
		}
	}
	return partials
}

// entryTabs labels entries by section title and 1-based position.
func entryTabs(snap wizard.Snapshot) []map[string]any {
	tabs := make([]map[string]any, 0, len(snap.Entries))
	for _, entry := range snap.Entries {
		tabs = append(tabs, map[string]any{
			"label":  snap.Title + " " + strconv.Itoa(entry.Position+1),
			"select": render.ActionValue(render.ActionSelectEntry, entry.Position),
			"remove": render.ActionValue(render.ActionRemoveEntry, entry.Position),
			"active": entry.Active,
		})
	}
	return tabs
}

func cloneSnapshot(snap wizard.Snapshot) wizard.Snapshot {
	out := snap
	out.Steps = append([]wizard.StepView(nil), snap.Steps...)
	out.Entries = append([]wizard.EntryView(nil), snap.Entries...)
	out.Fields = make([]wizard.FieldView, len(snap.Fields))
	for i, field := range snap.Fields {
		field.Options = append([]string(nil), field.Options...)
		out.Fields[i] = field
	}
	return out
}
