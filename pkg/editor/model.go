package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Field is a field under edit.
type Field struct {
	ID       string
	Name     string
	Label    string
	Required bool
	Type     schema.FieldType
	Options  []string
}

func (f Field) clone() Field {
	f.Options = append([]string(nil), f.Options...)
	return f
}

func (f Field) export() schema.Field {
	out := schema.Field{
		Name:     f.Name,
		Label:    f.Label,
		Required: f.Required,
		Type:     f.Type,
	}
	if f.Type == schema.FieldTypeDropdown {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

// Section is a section under edit.
type Section struct {
	ID                   string
	Title                string
	AllowMultipleEntries bool
	Fields               []Field
}

func (s Section) clone() Section {
	out := s
	out.Fields = make([]Field, len(s.Fields))
	for i, field := range s.Fields {
		out.Fields[i] = field.clone()
	}
	return out
}

// SectionProperty names a patchable section attribute.
type SectionProperty string

const (
	SectionTitle         SectionProperty = "title"
	SectionAllowMultiple SectionProperty = "allowMultipleEntries"
)

// FieldProperty names a patchable field attribute.
type FieldProperty string

const (
	FieldName     FieldProperty = "name"
	FieldLabel    FieldProperty = "label"
	FieldRequired FieldProperty = "required"
	FieldTypeProp FieldProperty = "type"
	FieldOptions  FieldProperty = "options"
)

// ListKind selects the list Reorder operates on.
type ListKind string

const (
	ListSections ListKind = "section"
	ListFields   ListKind = "field"
)

// DefaultOptions seeds new dropdown fields.
func DefaultOptions() []string {
	return []string{"Option 1", "Option 2", "Option 3"}
}

// ParseOptions splits a comma-separated list into trimmed items. Empty items
// are kept so positions match what the user typed.
func ParseOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, len(parts))
	for i, part := range parts {
		out[i] = strings.TrimSpace(part)
	}
	return out
}

func asString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: want string, got %T", ErrInvalidValue, value)
	}
}

func asBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: want bool, got %T", ErrInvalidValue, value)
	}
}

func asOptions(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return ParseOptions(v), nil
	case []string:
		return append([]string(nil), v...), nil
	default:
		return nil, fmt.Errorf("%w: want comma-separated string, got %T", ErrInvalidValue, value)
	}
}

func asFieldType(value any) (schema.FieldType, error) {
	switch v := value.(type) {
	case schema.FieldType:
		if !v.Valid() {
			return "", fmt.Errorf("%w: %q", schema.ErrUnknownFieldType, v)
		}
		return v.Kind(), nil
	case string:
		return schema.ParseFieldType(v)
	default:
		return "", fmt.Errorf("%w: want field type, got %T", ErrInvalidValue, value)
	}
}

// move relocates the element at src to dst, keeping the relative order of
// everything else. It reports false when either index is out of range.
func move[T any](items []T, src, dst int) bool {
	if src < 0 || src >= len(items) || dst < 0 || dst >= len(items) {
		return false
	}
	if src == dst {
		return true
	}
	item := items[src]
	if src < dst {
		copy(items[src:dst], items[src+1:dst+1])
	} else {
		copy(items[dst+1:src+1], items[dst:src])
	}
	items[dst] = item
	return true
}
