package wizard

import "github.com/goliatone/go-formwizard/pkg/schema"

// SectionValues is the collected output of one section. Single-entry sections
// always yield exactly one entry holding the shared values of their fields.
type SectionValues struct {
	Title    string   `json:"title"`
	Multiple bool     `json:"multiple"`
	Entries  []Values `json:"entries"`
}

// Collect gathers answers per section in step order. Only fields declared by
// a section are reported for it; values that were never written are left out.
func (f *Form) Collect(st State) []SectionValues {
	out := make([]SectionValues, 0, f.Steps())
	for _, section := range f.schema.Sections {
		sv := SectionValues{Title: section.Title, Multiple: section.AllowMultipleEntries}

		if section.AllowMultipleEntries {
			for _, entry := range st.EntriesFor(section.Title).Entries {
				sv.Entries = append(sv.Entries, pick(entry.Values, section.Fields))
			}
		} else {
			sv.Entries = []Values{pick(st.Shared, section.Fields)}
		}
		out = append(out, sv)
	}
	return out
}

func pick(values Values, fields []schema.Field) Values {
	out := make(Values, len(fields))
	for _, field := range fields {
		if v, ok := values.Lookup(field.Name); ok && v.Kind() != KindNone {
			out[field.Name] = v
		}
	}
	return out
}
