package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render/template"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// fieldStrategies maps every field kind to its component, resolved once when
// the renderer is built.
type fieldStrategies map[schema.FieldType]components.Descriptor

func resolveStrategies(registry *components.Registry, overrides map[schema.FieldType]string) (fieldStrategies, error) {
	out := make(fieldStrategies, len(schema.FieldTypes()))
	for _, kind := range schema.FieldTypes() {
		name := overrides[kind]
		if strings.TrimSpace(name) == "" {
			name = components.ComponentFor(kind)
		}
		descriptor, ok := registry.Descriptor(name)
		if !ok {
			return nil, fmt.Errorf("component %q not registered for %s fields", name, kind)
		}
		out[kind] = descriptor
	}
	return out, nil
}

type componentRenderer struct {
	templates  template.TemplateRenderer
	strategies fieldStrategies
	partials   map[string]string
	errors     map[string][]string
	entryID    int

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, strategies fieldStrategies, partials map[string]string, errors map[string][]string, entryID int) *componentRenderer {
	return &componentRenderer{
		templates:      templates,
		strategies:     strategies,
		partials:       partials,
		errors:         errors,
		entryID:        entryID,
		usedComponents: make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(field wizard.FieldView) (string, error) {
	descriptor, ok := r.strategies[field.Kind.Kind()]
	if !ok {
		return "", fmt.Errorf("no component for field %q of kind %q", field.Name, field.Kind)
	}

	messages := r.errors[field.Name]
	data := components.ComponentData{
		Template:      r.templates,
		ThemePartials: r.partials,
		ControlID:     componentControlID(field.Name, r.entryID),
		Invalid:       len(messages) > 0,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", descriptor.Name, field.Name, err)
	}

	r.usedComponents[descriptor.Name] = struct{}{}

	return buildFieldMarkup(field, descriptor.Name, data.ControlID, control.String(), messages), nil
}

func (r *componentRenderer) used() []string {
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func buildFieldMarkup(field wizard.FieldView, componentName, controlID, control string, messages []string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	inline := componentName == components.NameCheckbox

	builder.WriteString(`<div class="fw-field`)
	if inline {
		builder.WriteString(` fw-field--checkbox`)
	}
	builder.WriteString(`" data-component="`)
	builder.WriteString(html.EscapeString(componentName))
	builder.WriteString(`" data-field="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString("\">\n")

	if !inline {
		writeLabel(&builder, field, controlID)
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if inline {
		writeLabel(&builder, field, controlID)
	}

	for _, message := range messages {
		builder.WriteString(`    <p class="fw-field__error">`)
		builder.WriteString(html.EscapeString(message))
		builder.WriteString("</p>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func writeLabel(builder *strings.Builder, field wizard.FieldView, controlID string) {
	if strings.TrimSpace(field.Label) == "" {
		return
	}
	builder.WriteString(`    <label for="`)
	builder.WriteString(html.EscapeString(controlID))
	builder.WriteString(`" class="fw-label">`)
	builder.WriteString(html.EscapeString(field.Label))
	if field.Required {
		builder.WriteString(` *`)
	}
	builder.WriteString("</label>\n")
}
