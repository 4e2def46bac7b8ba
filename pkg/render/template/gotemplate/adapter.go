package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formwizard/pkg/render/template"
)

const defaultExtension = ".tmpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	files     fs.FS
	extension string
	helpers   map[string]any
	globals   map[string]any
}

// WithBaseDir loads templates from a directory on disk. Files found there win
// over the same names in WithFS.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithTemplateFunc exposes helpers to every template. pongo2 filter functions
// are registered as filters; other functions become callable globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		cfg.helpers = mergeInto(cfg.helpers, funcs)
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		cfg.globals = mergeInto(cfg.globals, data)
	}
}

// WithGoTemplateOptions exists for API compatibility only. Callers that build
// go-template option lists can hand them over unchanged; the pongo2 engine
// ignores every option and renders exactly as it would without them.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

func mergeInto(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, value := range src {
		if key = strings.TrimSpace(key); key != "" {
			dst[key] = value
		}
	}
	return dst
}

// Engine renders pongo2 templates and caches parsed files by path.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
	ext   string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. A base directory or an fs.FS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: defaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.files == nil {
		return nil, errors.New("gotemplate: a base dir or fs.FS is required")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: base dir loader: %w", err)
		}
		loaders = append(loaders, local)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}

	e := &Engine{
		set:   pongo2.NewSet("formwizard", loaders...),
		cache: make(map[string]*pongo2.Template),
		ext:   cfg.extension,
	}
	e.set.Globals = pongo2.Context{}
	registerBuiltinFilters()

	if err := e.GlobalContext(cfg.globals); err != nil {
		return nil, fmt.Errorf("gotemplate: global data: %w", err)
	}
	for name, fn := range cfg.helpers {
		e.addHelper(name, fn)
	}
	return e, nil
}

// Render treats name as inline template source when it contains pongo2 tags,
// otherwise as a template path.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders the named file, appending the engine extension when
// missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.load(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, name, data, out)
}

// RenderString parses and renders inline template source.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline template", data, out)
}

func (e *Engine) execute(tmpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// RegisterFilter adds a filter. pongo2 filters are process-wide, so a name
// that is already taken is an error.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) addHelper(name string, fn any) {
	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, filter)
		}
		return
	}
	if !isFunc(fn) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Globals[name] = fn
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func isFunc(v any) bool {
	return v != nil && reflect.ValueOf(v).Kind() == reflect.Func
}

// toContext turns template data into a pongo2 context. Maps are walked so
// function values survive; anything else must encode to a JSON object.
func toContext(data any) (pongo2.Context, error) {
	var m map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		m = v
	case map[string]any:
		m = v
	default:
		plain, err := plainValue(v)
		if err != nil {
			return nil, err
		}
		obj, ok := plain.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("template data %T is not an object", data)
		}
		m = obj
	}

	out := make(pongo2.Context, len(m))
	for key, value := range m {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		converted, err := normalize(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = converted
	}
	return out, nil
}

// normalize reduces values to the maps, slices and scalars pongo2 indexes
// predictably. Structs go through their JSON form.
func normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64, []string, *pongo2.Value:
		return v, nil
	case pongo2.Context:
		return normalize(map[string]any(v))
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	}
	if isFunc(value) {
		return value, nil
	}
	return plainValue(value)
}

func plainValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func registerBuiltinFilters() {
	builtins := map[string]pongo2.FilterFunction{
		"trim": filterTrim,
		"slug": filterSlug,
	}
	for name, fn := range builtins {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterSlug turns section titles and field names into DOM-safe ids.
func filterSlug(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(Slug(in.String())), nil
}

// Slug lower-cases s and collapses every run of non-alphanumeric runes into
// one dash.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			dash = true
			continue
		}
		if dash && b.Len() > 0 {
			b.WriteByte('-')
		}
		dash = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
