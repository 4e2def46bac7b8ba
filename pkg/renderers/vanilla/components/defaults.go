package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const templatePrefix = "templates/fields/"

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer("forms.input", templatePrefix+"input.tmpl"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer("forms.select", templatePrefix+"select.tmpl"),
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer("forms.checkbox", templatePrefix+"checkbox.tmpl"),
	})

	return registry
}

// ComponentFor returns the default component name for a field kind.
func ComponentFor(kind schema.FieldType) string {
	switch kind.Kind() {
	case schema.FieldTypeDropdown:
		return NameSelect
	case schema.FieldTypeCheckbox:
		return NameCheckbox
	default:
		return NameInput
	}
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field wizard.FieldView, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if data.ThemePartials != nil {
			if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
				resolvedTemplate = candidate
			}
		}

		payload := map[string]any{
			"field":   field,
			"id":      data.ControlID,
			"invalid": data.Invalid,
		}
		rendered, err := data.Template.RenderTemplate(resolvedTemplate, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
