package openapi

import (
	"errors"
	"sort"
)

// Document wraps a raw OpenAPI payload and its origin so callers never see
// kin-openapi types.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document, copying raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin of the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the origin identifier.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is the subset of an OpenAPI operation the importer needs.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
}

// NewOperation validates the identifying fields.
func NewOperation(id, method, path string, request Schema) (Operation, error) {
	if id == "" {
		return Operation{}, errors.New("openapi: operation id is required")
	}
	if method == "" {
		return Operation{}, errors.New("openapi: operation method is required")
	}
	if path == "" {
		return Operation{}, errors.New("openapi: operation path is required")
	}
	return Operation{ID: id, Method: method, Path: path, RequestBody: request}, nil
}

// Schema is a resolved JSON schema node. Order is the x-order hint of the
// node inside its parent's properties, zero when absent.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Enum        []any
	Order       int
}

// PropertyNames lists the properties by Order (unordered ones last), then
// by name.
func (s Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := s.Properties[names[i]].Order, s.Properties[names[j]].Order
		switch {
		case a == b:
			return names[i] < names[j]
		case a == 0:
			return false
		case b == 0:
			return true
		default:
			return a < b
		}
	})
	return names
}

// IsRequired reports whether name is listed in Required.
func (s Schema) IsRequired(name string) bool {
	for _, required := range s.Required {
		if required == name {
			return true
		}
	}
	return false
}

// IsObject reports whether the node describes an object with properties.
func (s Schema) IsObject() bool {
	return s.Type == "object" || (s.Type == "" && len(s.Properties) > 0)
}
