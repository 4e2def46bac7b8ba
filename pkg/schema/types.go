package schema

import (
	"fmt"
	"strings"
)

// FieldType enumerates the input variants a field can take. The zero value is
// treated as FieldTypeText.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDropdown FieldType = "dropdown"
)

// FieldTypes lists every supported variant in palette order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeNumber,
		FieldTypeDate,
		FieldTypeCheckbox,
		FieldTypeDropdown,
	}
}

// ParseFieldType normalises raw input into a FieldType. Empty input maps to
// FieldTypeText.
func ParseFieldType(raw string) (FieldType, error) {
	trimmed := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	if trimmed == "" {
		return FieldTypeText, nil
	}
	if !trimmed.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFieldType, raw)
	}
	return trimmed, nil
}

// Kind resolves the zero value to FieldTypeText.
func (t FieldType) Kind() FieldType {
	if t == "" {
		return FieldTypeText
	}
	return t
}

// Valid reports whether t is one of the supported variants (empty counts as
// text).
func (t FieldType) Valid() bool {
	switch t.Kind() {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeCheckbox, FieldTypeDropdown:
		return true
	default:
		return false
	}
}

func (t FieldType) String() string {
	return string(t.Kind())
}

// Field describes one input inside a section.
type Field struct {
	Name     string
	Label    string
	Required bool
	Type     FieldType
	Options  []string

	// Index and API are carried through from hand-authored documents but no
	// behaviour depends on them.
	Index *int
	API   string
}

// Kind returns the resolved field type.
func (f Field) Kind() FieldType {
	return f.Type.Kind()
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	if f.Index != nil {
		idx := *f.Index
		out.Index = &idx
	}
	return out
}

// Section is a named, ordered group of fields rendered as one wizard step.
type Section struct {
	Title                string
	AllowMultipleEntries bool
	Fields               []Field
}

// Field looks up a field by name.
func (s Section) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// RequiredNames lists the names of required fields in declaration order.
func (s Section) RequiredNames() []string {
	var out []string
	for _, field := range s.Fields {
		if field.Required {
			out = append(out, field.Name)
		}
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	if s.Fields != nil {
		out.Fields = make([]Field, len(s.Fields))
		for i, field := range s.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// Schema is the ordered section list. Section order is wizard step order.
type Schema struct {
	Sections []Section
}

// New builds a schema from the supplied sections.
func New(sections ...Section) Schema {
	return Schema{Sections: sections}
}

// Len reports the number of sections.
func (s Schema) Len() int {
	return len(s.Sections)
}

// Titles returns section titles in order.
func (s Schema) Titles() []string {
	out := make([]string, len(s.Sections))
	for i, section := range s.Sections {
		out[i] = section.Title
	}
	return out
}

// Section returns the section at position idx. Out of range positions report
// false rather than panicking.
func (s Schema) Section(idx int) (Section, bool) {
	if idx < 0 || idx >= len(s.Sections) {
		return Section{}, false
	}
	return s.Sections[idx], true
}

// Lookup finds a section by title.
func (s Schema) Lookup(title string) (Section, int, bool) {
	for i, section := range s.Sections {
		if section.Title == title {
			return section, i, true
		}
	}
	return Section{}, -1, false
}

// FieldCount totals the fields across all sections.
func (s Schema) FieldCount() int {
	total := 0
	for _, section := range s.Sections {
		total += len(section.Fields)
	}
	return total
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	if s.Sections == nil {
		return Schema{}
	}
	out := Schema{Sections: make([]Section, len(s.Sections))}
	for i, section := range s.Sections {
		out.Sections[i] = section.Clone()
	}
	return out
}

// SharedNameCollisions reports field names declared by more than one
// single-entry section. Those sections share one flat value map, so colliding
// names overwrite each other.
func (s Schema) SharedNameCollisions() []string {
	owners := make(map[string]int)
	var order []string
	for _, section := range s.Sections {
		if section.AllowMultipleEntries {
			continue
		}
		for _, field := range section.Fields {
			if _, seen := owners[field.Name]; !seen {
				order = append(order, field.Name)
			}
			owners[field.Name]++
		}
	}
	var out []string
	for _, name := range order {
		if owners[name] > 1 {
			out = append(out, name)
		}
	}
	return out
}
