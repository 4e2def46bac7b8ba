package render

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ErrThemeNotFound is returned when a selector has no manifest for a name.
var ErrThemeNotFound = errors.New("render: theme not found")

// DefaultPartials maps wizard partial keys to the bundled templates. Theme
// manifests override entries through their Templates map.
func DefaultPartials() map[string]string {
	return map[string]string{
		"wizard.step":     "templates/step.tmpl",
		"wizard.sidebar":  "templates/sidebar.tmpl",
		"wizard.entries":  "templates/entries.tmpl",
		"forms.input":     "templates/fields/input.tmpl",
		"forms.checkbox":  "templates/fields/checkbox.tmpl",
		"forms.select":    "templates/fields/select.tmpl",
		"wizard.controls": "templates/controls.tmpl",
	}
}

// ThemeConfig flattens a selection into the renderer configuration: variant
// tokens and templates override the base manifest, tokens become `--name`
// CSS variables and asset keys resolve against the manifest prefix.
func ThemeConfig(sel *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if sel == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: make(map[string]string, len(fallbacks)),
		Tokens:   make(map[string]string),
		CSSVars:  make(map[string]string),
	}
	for key, path := range fallbacks {
		cfg.Partials[key] = path
	}

	manifest := sel.Manifest
	if manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}

	variant, hasVariant := manifest.Variants[sel.Variant]
	for key, value := range manifest.Tokens {
		cfg.Tokens[key] = value
	}
	for key, path := range manifest.Templates {
		cfg.Partials[key] = path
	}
	files := make(map[string]string, len(manifest.Assets.Files))
	for key, file := range manifest.Assets.Files {
		files[key] = file
	}
	prefix := manifest.Assets.Prefix

	if hasVariant {
		for key, value := range variant.Tokens {
			cfg.Tokens[key] = value
		}
		for key, path := range variant.Templates {
			cfg.Partials[key] = path
		}
		for key, file := range variant.Assets.Files {
			files[key] = file
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}

// CSSVarsStyle renders CSS variables as a sorted inline style declaration.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

// Selector picks manifests by name, falling back to configured defaults.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector returns a selector over manifests. The first manifest becomes
// the default theme.
func NewSelector(defaultVariant string, manifests ...*theme.Manifest) *Selector {
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultVariant: defaultVariant,
	}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		if s.defaultTheme == "" {
			s.defaultTheme = manifest.Name
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select implements theme.ThemeSelector.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.defaultTheme
	}
	if variant == "" {
		variant = s.defaultVariant
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ResolveTheme selects a theme and flattens it with the default partials.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	sel, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return ThemeConfig(sel, DefaultPartials()), nil
}

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

// ParseManifest decodes a YAML (or JSON) theme manifest.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("render: parse theme manifest: %w", err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, errors.New("render: theme manifest name is required")
	}

	manifest := &theme.Manifest{
		Name:      raw.Name,
		Version:   raw.Version,
		Tokens:    raw.Tokens,
		Templates: raw.Templates,
		Assets:    theme.Assets{Prefix: raw.Assets.Prefix, Files: raw.Assets.Files},
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, v := range raw.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Templates,
				Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// LoadManifest reads a theme manifest from disk.
func LoadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read theme manifest: %w", err)
	}
	return ParseManifest(data)
}
