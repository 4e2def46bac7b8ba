// Package registry keeps named form schemas, loaded from files, fs.FS trees or
// the presets bundled with the module.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

var (
	// ErrNotFound is returned when no schema is registered under a name.
	ErrNotFound = errors.New("registry: schema not found")
	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("registry: schema already registered")
	// ErrEmptyName rejects registrations without a name.
	ErrEmptyName = errors.New("registry: schema name is required")
)

// Entry is a registered schema together with its origin.
type Entry struct {
	Name   string
	Source schema.Source
	Schema schema.Schema
}

// Registry stores schemas by name. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Default returns a registry populated with the bundled presets.
func Default() (*Registry, error) {
	reg := New()
	if err := reg.LoadFS(PresetsFS(), schema.SourceFromPreset); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register stores s under name after validating it.
func (r *Registry) Register(name string, src schema.Source, s schema.Schema) error {
	key := strings.TrimSpace(name)
	if key == "" {
		return ErrEmptyName
	}
	if err := schema.Validate(s); err != nil {
		return fmt.Errorf("registry: %s: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, key)
	}
	r.entries[key] = Entry{Name: key, Source: src, Schema: s.Clone()}
	return nil
}

// Get returns a copy of the schema registered under name.
func (r *Registry) Get(name string) (schema.Schema, error) {
	entry, err := r.Lookup(name)
	if err != nil {
		return schema.Schema{}, err
	}
	return entry.Schema, nil
}

// Lookup returns the registry entry for name.
func (r *Registry) Lookup(name string) (Entry, error) {
	key := strings.TrimSpace(name)

	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	entry.Schema = entry.Schema.Clone()
	return entry, nil
}

// Names lists registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns every entry sorted by name.
func (r *Registry) List() []Entry {
	names := r.Names()
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		if entry, err := r.Lookup(name); err == nil {
			out = append(out, entry)
		}
	}
	return out
}

// LoadFS walks fsys and registers every JSON or YAML document under its file
// stem. sourceFor maps the stem to the recorded source; nil records the fs
// path.
func (r *Registry) LoadFS(fsys fs.FS, sourceFor func(name string) schema.Source) error {
	if fsys == nil {
		return nil
	}

	return fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("registry: read %s: %w", p, err)
		}

		name := stem(p)
		src := schema.SourceFromFS(p)
		if sourceFor != nil {
			src = sourceFor(name)
		}
		doc, err := schema.NewDocument(src, data)
		if err != nil {
			return err
		}
		s, err := doc.Decode()
		if err != nil {
			return err
		}
		return r.Register(name, src, s)
	})
}

// LoadFile reads and decodes a single schema file from disk without
// registering it.
func LoadFile(p string) (schema.Schema, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("registry: read %s: %w", p, err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(p), data)
	if err != nil {
		return schema.Schema{}, err
	}
	return doc.Decode()
}

func isSchemaFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
