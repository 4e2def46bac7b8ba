package schema

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Validate checks the structural invariants of the document format: unique,
// non-empty section titles; unique, non-empty field names per section; known
// field types; and options present exactly when the type is dropdown. All
// violations are reported together.
func Validate(s Schema) error {
	var result *multierror.Error

	titles := make(map[string]struct{}, len(s.Sections))
	for _, section := range s.Sections {
		title := strings.TrimSpace(section.Title)
		if title == "" {
			result = multierror.Append(result, ErrEmptyTitle)
		} else if _, dup := titles[section.Title]; dup {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrDuplicateSection, section.Title))
		}
		titles[section.Title] = struct{}{}

		if err := validateSection(section); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func validateSection(section Section) error {
	var result *multierror.Error
	names := make(map[string]struct{}, len(section.Fields))

	for i, field := range section.Fields {
		name := strings.TrimSpace(field.Name)
		switch {
		case name == "":
			result = multierror.Append(result, fmt.Errorf("%w: section %q position %d", ErrEmptyName, section.Title, i))
		default:
			if _, dup := names[field.Name]; dup {
				result = multierror.Append(result, fmt.Errorf("%w: section %q field %q", ErrDuplicateField, section.Title, field.Name))
			}
			names[field.Name] = struct{}{}
		}

		if !field.Type.Valid() {
			result = multierror.Append(result, fmt.Errorf("%w: section %q field %q type %q", ErrUnknownFieldType, section.Title, field.Name, field.Type))
			continue
		}

		isDropdown := field.Kind() == FieldTypeDropdown
		hasOptions := len(field.Options) > 0
		if isDropdown != hasOptions {
			result = multierror.Append(result, fmt.Errorf("%w: section %q field %q", ErrOptionsMismatch, section.Title, field.Name))
		}
	}

	return result.ErrorOrNil()
}
