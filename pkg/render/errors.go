package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ErrorMapping splits a message payload into field-level messages for the
// current step and step-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple step-level message
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload assigns messages to fields of the current step. Keys may be
// bare field names, `Section.field` paths or JSON pointers (`/field`); keys
// that match no field on the step become step-level messages, merged in key
// order.
func MapErrorPayload(snap wizard.Snapshot, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}

	names := make(map[string]struct{}, len(snap.Fields))
	for _, field := range snap.Fields {
		names[field.Name] = struct{}{}
	}

	paths := make([]string, 0, len(payload))
	for rawPath := range payload {
		paths = append(paths, rawPath)
	}
	sort.Strings(paths)

	for _, rawPath := range paths {
		normalized := normalizeMessages(payload[rawPath])
		if len(normalized) == 0 {
			continue
		}
		name, ok := matchField(rawPath, snap.Title, names)
		if !ok {
			mapping.Form = MergeFormErrors(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	return mapping
}

// MissingRequired returns message for every empty required field of the
// current step.
func MissingRequired(snap wizard.Snapshot, message string) map[string][]string {
	out := make(map[string][]string)
	for _, field := range snap.Fields {
		if field.Required && !field.Filled {
			out[field.Name] = []string{message}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StepErrors combines opts.Errors with missing-required messages when
// opts.ShowMissing is set.
func StepErrors(snap wizard.Snapshot, opts RenderOptions, labels Labels) ErrorMapping {
	mapping := MapErrorPayload(snap, opts.Errors)
	if !opts.ShowMissing {
		return mapping
	}
	for name, messages := range MissingRequired(snap, labels.Required) {
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], messages...))
	}
	return mapping
}

func matchField(raw, section string, names map[string]struct{}) (string, bool) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "$.")
	clean = strings.TrimLeft(clean, "#/")
	if clean == "" {
		return "", false
	}
	if _, ok := names[clean]; ok {
		return clean, true
	}
	for _, sep := range []string{".", "/"} {
		if rest, ok := strings.CutPrefix(clean, section+sep); ok {
			if _, ok := names[rest]; ok {
				return rest, true
			}
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
