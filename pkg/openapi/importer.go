package openapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

var (
	// ErrOperationNotFound signals an operationId missing from the document.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody signals an operation without an object request body.
	ErrNoRequestBody = errors.New("openapi: operation has no object request body")
)

// ImportOption configures Import.
type ImportOption func(*importer)

type importer struct {
	logger       zerolog.Logger
	generalTitle string
}

// WithImportLogger records skipped properties at debug level.
func WithImportLogger(logger zerolog.Logger) ImportOption {
	return func(im *importer) {
		im.logger = logger
	}
}

// WithGeneralTitle names the section that gathers top-level scalar
// properties. Defaults to the operation summary, then a label derived from
// the operation id.
func WithGeneralTitle(title string) ImportOption {
	return func(im *importer) {
		im.generalTitle = strings.TrimSpace(title)
	}
}

// Import maps the request body of op onto a wizard schema:
//
//   - top-level scalar properties form the first section;
//   - object properties become single-entry sections;
//   - arrays of objects become multi-entry sections;
//   - nested objects inside a section are flattened as parent_child fields.
//
// Booleans map to checkboxes, integers and numbers to number fields,
// date and date-time strings to date fields and enums to dropdowns. Other
// arrays are skipped. The result is validated before it is returned.
func Import(op Operation, options ...ImportOption) (schema.Schema, error) {
	im := importer{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(&im)
		}
	}

	body := op.RequestBody
	if !body.IsObject() || len(body.Properties) == 0 {
		return schema.Schema{}, fmt.Errorf("%w: %s", ErrNoRequestBody, op.ID)
	}

	general := schema.Section{Title: im.titleFor(op)}
	var sections []schema.Section

	for _, name := range body.PropertyNames() {
		prop := body.Properties[name]
		switch {
		case prop.IsObject():
			section := schema.Section{Title: sectionTitle(name, prop)}
			section.Fields = im.fields("", prop)
			sections = append(sections, section)
		case prop.Type == "array" && prop.Items != nil && prop.Items.IsObject():
			section := schema.Section{Title: sectionTitle(name, prop), AllowMultipleEntries: true}
			section.Fields = im.fields("", *prop.Items)
			sections = append(sections, section)
		default:
			if field, ok := im.field(name, prop, body.IsRequired(name)); ok {
				general.Fields = append(general.Fields, field)
			}
		}
	}

	out := schema.Schema{}
	if len(general.Fields) > 0 {
		out.Sections = append(out.Sections, general)
	}
	for _, section := range sections {
		if len(section.Fields) == 0 {
			im.logger.Debug().Str("section", section.Title).Msg("openapi import: empty section dropped")
			continue
		}
		out.Sections = append(out.Sections, section)
	}
	if len(out.Sections) == 0 {
		return schema.Schema{}, fmt.Errorf("%w: %s has no importable properties", ErrNoRequestBody, op.ID)
	}

	if err := schema.Validate(out); err != nil {
		return schema.Schema{}, fmt.Errorf("openapi: import %s: %w", op.ID, err)
	}
	return out, nil
}

// ImportOperation finds operationID in ops and imports it.
func ImportOperation(ops map[string]Operation, operationID string, options ...ImportOption) (schema.Schema, error) {
	op, ok := ops[operationID]
	if !ok {
		return schema.Schema{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	return Import(op, options...)
}

func (im importer) titleFor(op Operation) string {
	switch {
	case im.generalTitle != "":
		return im.generalTitle
	case strings.TrimSpace(op.Summary) != "":
		return strings.TrimSpace(op.Summary)
	default:
		return Label(op.ID)
	}
}

func (im importer) fields(prefix string, node Schema) []schema.Field {
	var out []schema.Field
	for _, name := range node.PropertyNames() {
		prop := node.Properties[name]
		full := name
		if prefix != "" {
			full = prefix + "_" + name
		}
		if prop.IsObject() {
			out = append(out, im.fields(full, prop)...)
			continue
		}
		if field, ok := im.field(full, prop, node.IsRequired(name)); ok {
			out = append(out, field)
		}
	}
	return out
}

func (im importer) field(name string, prop Schema, required bool) (schema.Field, bool) {
	kind, ok := fieldKind(prop)
	if !ok {
		im.logger.Debug().Str("property", name).Str("type", prop.Type).Msg("openapi import: property skipped")
		return schema.Field{}, false
	}
	field := schema.Field{
		Name:     name,
		Label:    prop.Title,
		Required: required,
		Type:     kind,
	}
	if field.Label == "" {
		field.Label = Label(name)
	}
	if kind == schema.FieldTypeDropdown {
		for _, value := range prop.Enum {
			field.Options = append(field.Options, fmt.Sprint(value))
		}
	}
	return field, true
}

func fieldKind(prop Schema) (schema.FieldType, bool) {
	if len(prop.Enum) > 0 && prop.Type != "boolean" {
		return schema.FieldTypeDropdown, true
	}
	switch prop.Type {
	case "boolean":
		return schema.FieldTypeCheckbox, true
	case "integer", "number":
		return schema.FieldTypeNumber, true
	case "string", "":
		if prop.Format == "date" || prop.Format == "date-time" {
			return schema.FieldTypeDate, true
		}
		return schema.FieldTypeText, true
	default:
		return "", false
	}
}

func sectionTitle(name string, prop Schema) string {
	if title := strings.TrimSpace(prop.Title); title != "" {
		return title
	}
	if prop.Items != nil {
		if title := strings.TrimSpace(prop.Items.Title); title != "" {
			return title
		}
	}
	return Label(name)
}
