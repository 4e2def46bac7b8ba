package schema

import "errors"

var (
	// ErrEmptyTitle signals a section without a title.
	ErrEmptyTitle = errors.New("schema: section title is empty")
	// ErrDuplicateSection signals two sections sharing a title.
	ErrDuplicateSection = errors.New("schema: duplicate section title")
	// ErrEmptyName signals a field without a name.
	ErrEmptyName = errors.New("schema: field name is empty")
	// ErrDuplicateField signals two fields sharing a name inside one section.
	ErrDuplicateField = errors.New("schema: duplicate field name")
	// ErrUnknownFieldType signals a type outside the supported variants.
	ErrUnknownFieldType = errors.New("schema: unknown field type")
	// ErrOptionsMismatch signals options on a non-dropdown field or a dropdown
	// field without options.
	ErrOptionsMismatch = errors.New("schema: options present iff type is dropdown")
	// ErrInvalidDocument signals a payload that is neither JSON nor YAML in the
	// expected shape.
	ErrInvalidDocument = errors.New("schema: invalid document")
)
