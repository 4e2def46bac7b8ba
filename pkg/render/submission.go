package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Hidden input names carrying the wizard position.
const (
	HiddenStep  = "_step"
	HiddenEntry = "_entry"
)

// HiddenField is a hidden form input emitted alongside the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// StepHiddenFields returns the inputs that let a form post identify the step
// and, for multi-entry sections, the active entry id.
func StepHiddenFields(snap wizard.Snapshot) []HiddenField {
	fields := []HiddenField{Hidden(HiddenStep, strconv.Itoa(snap.Step))}
	for _, entry := range snap.Entries {
		if entry.Active {
			fields = append(fields, Hidden(HiddenEntry, strconv.Itoa(entry.ID)))
		}
	}
	return fields
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields sorts hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  name,
			Value: fields[name],
		})
	}
	return result
}
