package editor

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Option configures an Editor.
type Option func(*Editor)

// WithLogger attaches a logger for edit tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// Editor holds the sections being authored and the active selection. It is
// not safe for concurrent use.
type Editor struct {
	sections    []Section
	active      string
	nextField   int
	nextSection int
	logger      zerolog.Logger
}

// New returns an editor seeded with a "Cover Details" section.
func New(options ...Option) *Editor {
	e := newEditor(options)
	e.sections = []Section{{
		ID:    "section-1",
		Title: "Cover Details",
		Fields: []Field{
			{ID: "field-1", Name: "plan_type", Label: "Plan Type", Required: true, Type: schema.FieldTypeText},
			{ID: "field-2", Name: "itenary", Label: "Itenary", Type: schema.FieldTypeText},
			{ID: "field-3", Name: "commision_percentage", Label: "Commission Percentage", Type: schema.FieldTypeNumber},
			{ID: "field-4", Name: "premium_due", Label: "Premium Due", Type: schema.FieldTypeNumber},
		},
	}}
	e.active = "section-1"
	e.nextField = 5
	e.nextSection = 2
	return e
}

// NewEmpty returns an editor without sections.
func NewEmpty(options ...Option) *Editor {
	return newEditor(options)
}

func newEditor(options []Option) *Editor {
	e := &Editor{
		nextField:   1,
		nextSection: 1,
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Import replaces the editor contents with s, assigning fresh ids. The first
// section becomes active.
func (e *Editor) Import(s schema.Schema) {
	e.sections = make([]Section, 0, len(s.Sections))
	e.nextField = 1
	e.nextSection = 1
	e.active = ""

	for _, src := range s.Sections {
		section := Section{
			ID:                   e.sectionID(),
			Title:                src.Title,
			AllowMultipleEntries: src.AllowMultipleEntries,
			Fields:               make([]Field, 0, len(src.Fields)),
		}
		for _, f := range src.Fields {
			section.Fields = append(section.Fields, Field{
				ID:       e.fieldID(),
				Name:     f.Name,
				Label:    f.Label,
				Required: f.Required,
				Type:     f.Kind(),
				Options:  append([]string(nil), f.Options...),
			})
		}
		e.sections = append(e.sections, section)
	}
	if len(e.sections) > 0 {
		e.active = e.sections[0].ID
	}
	e.logger.Debug().Int("sections", len(e.sections)).Msg("editor import")
}

// Sections returns a copy of the sections in order.
func (e *Editor) Sections() []Section {
	out := make([]Section, len(e.sections))
	for i, section := range e.sections {
		out[i] = section.clone()
	}
	return out
}

// ActiveID returns the id of the selected section, or "" when none is.
func (e *Editor) ActiveID() string {
	return e.active
}

// ActiveSection returns a copy of the selected section.
func (e *Editor) ActiveSection() (Section, bool) {
	idx := e.sectionIndex(e.active)
	if idx < 0 {
		return Section{}, false
	}
	return e.sections[idx].clone(), true
}

// AddSection appends an empty section and selects it.
func (e *Editor) AddSection() string {
	n := e.nextSection
	section := Section{
		ID:     e.sectionID(),
		Title:  "New Section " + strconv.Itoa(n),
		Fields: []Field{},
	}
	e.sections = append(e.sections, section)
	e.active = section.ID
	e.logger.Debug().Str("section", section.ID).Msg("editor section added")
	return section.ID
}

// DeleteSection removes the section with id. Deleting the active section
// selects the first remaining one, or clears the selection.
func (e *Editor) DeleteSection(id string) error {
	idx := e.sectionIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrSectionNotFound, id)
	}
	e.sections = append(e.sections[:idx], e.sections[idx+1:]...)

	switch {
	case len(e.sections) == 0:
		e.active = ""
	case e.active == id:
		e.active = e.sections[0].ID
	}
	e.logger.Debug().Str("section", id).Str("active", e.active).Msg("editor section deleted")
	return nil
}

// SelectSection makes id the active section.
func (e *Editor) SelectSection(id string) error {
	if e.sectionIndex(id) < 0 {
		return fmt.Errorf("%w: %q", ErrSectionNotFound, id)
	}
	e.active = id
	return nil
}

// UpdateSection patches one property of a section. Booleans accept bool or
// a strconv-parsable string.
func (e *Editor) UpdateSection(id string, property SectionProperty, value any) error {
	idx := e.sectionIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrSectionNotFound, id)
	}
	section := &e.sections[idx]

	switch property {
	case SectionTitle:
		title, err := asString(value)
		if err != nil {
			return err
		}
		section.Title = title
	case SectionAllowMultiple:
		multi, err := asBool(value)
		if err != nil {
			return err
		}
		section.AllowMultipleEntries = multi
	default:
		return fmt.Errorf("%w: section %q", ErrUnknownProperty, property)
	}
	return nil
}

// AddField appends a field of kind to the section with sectionID, or to the
// active section when sectionID is empty. It returns the new field id, or ""
// when there is no target section or kind is not a supported field type.
func (e *Editor) AddField(sectionID string, kind schema.FieldType) string {
	if !kind.Valid() {
		return ""
	}
	if sectionID == "" {
		sectionID = e.active
	}
	idx := e.sectionIndex(sectionID)
	if idx < 0 {
		return ""
	}

	n := e.nextField
	field := Field{
		ID:    e.fieldID(),
		Name:  "field_" + strconv.Itoa(n),
		Label: "Field " + strconv.Itoa(n),
		Type:  kind.Kind(),
	}
	if field.Type == schema.FieldTypeDropdown {
		field.Options = DefaultOptions()
	}
	e.sections[idx].Fields = append(e.sections[idx].Fields, field)
	e.logger.Debug().Str("section", sectionID).Str("field", field.ID).Str("type", field.Type.String()).Msg("editor field added")
	return field.ID
}

// DeleteField removes the field with id.
func (e *Editor) DeleteField(id string) error {
	si, fi := e.fieldIndex(id)
	if si < 0 {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, id)
	}
	fields := e.sections[si].Fields
	e.sections[si].Fields = append(fields[:fi], fields[fi+1:]...)
	return nil
}

// UpdateField patches one property of a field. Options accept a
// comma-separated string, which is split and trimmed. Switching a field to
// dropdown without options seeds the default options.
func (e *Editor) UpdateField(id string, property FieldProperty, value any) error {
	si, fi := e.fieldIndex(id)
	if si < 0 {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, id)
	}
	field := &e.sections[si].Fields[fi]

	switch property {
	case FieldName:
		name, err := asString(value)
		if err != nil {
			return err
		}
		field.Name = name
	case FieldLabel:
		label, err := asString(value)
		if err != nil {
			return err
		}
		field.Label = label
	case FieldRequired:
		required, err := asBool(value)
		if err != nil {
			return err
		}
		field.Required = required
	case FieldTypeProp:
		kind, err := asFieldType(value)
		if err != nil {
			return err
		}
		field.Type = kind
		if kind == schema.FieldTypeDropdown && len(field.Options) == 0 {
			field.Options = DefaultOptions()
		}
	case FieldOptions:
		options, err := asOptions(value)
		if err != nil {
			return err
		}
		field.Options = options
	default:
		return fmt.Errorf("%w: field %q", ErrUnknownProperty, property)
	}
	return nil
}

// Reorder moves one section, or one field of the active section, from src
// to dst. Out of range indexes leave everything untouched and report false.
func (e *Editor) Reorder(kind ListKind, src, dst int) bool {
	switch kind {
	case ListSections:
		return move(e.sections, src, dst)
	case ListFields:
		idx := e.sectionIndex(e.active)
		if idx < 0 {
			return false
		}
		return move(e.sections[idx].Fields, src, dst)
	default:
		return false
	}
}

// Export converts the sections to a schema, dropping the synthetic ids.
func (e *Editor) Export() schema.Schema {
	out := schema.Schema{Sections: make([]schema.Section, 0, len(e.sections))}
	for _, section := range e.sections {
		exported := schema.Section{
			Title:                section.Title,
			AllowMultipleEntries: section.AllowMultipleEntries,
			Fields:               make([]schema.Field, 0, len(section.Fields)),
		}
		for _, field := range section.Fields {
			exported.Fields = append(exported.Fields, field.export())
		}
		out.Sections = append(out.Sections, exported)
	}
	return out
}

func (e *Editor) sectionID() string {
	id := "section-" + strconv.Itoa(e.nextSection)
	e.nextSection++
	return id
}

func (e *Editor) fieldID() string {
	id := "field-" + strconv.Itoa(e.nextField)
	e.nextField++
	return id
}

func (e *Editor) sectionIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, section := range e.sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}

func (e *Editor) fieldIndex(id string) (int, int) {
	for si, section := range e.sections {
		for fi, field := range section.Fields {
			if field.ID == id {
				return si, fi
			}
		}
	}
	return -1, -1
}
