package schema

import (
	"errors"
	"fmt"
)

// Document wraps a raw schema payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw and pairs it with src.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, fmt.Errorf("%w: %s is empty", ErrInvalidDocument, src.Location())
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
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

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Decode parses and validates the payload. Errors are prefixed with the
// document location.
func (d Document) Decode() (Schema, error) {
	s, err := Parse(d.raw)
	if err != nil {
		return Schema{}, fmt.Errorf("%s: %w", d.Location(), err)
	}
	if err := Validate(s); err != nil {
		return Schema{}, fmt.Errorf("%s: %w", d.Location(), err)
	}
	return s, nil
}
