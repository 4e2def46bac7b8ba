package wizard

import "github.com/goliatone/go-formwizard/pkg/schema"

// StepView describes one entry of the step navigation.
type StepView struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Complete bool   `json:"complete"`
	Current  bool   `json:"current"`
}

// EntryView describes one entry tab of a multi-entry section.
type EntryView struct {
	Position int  `json:"position"`
	ID       int  `json:"id"`
	Active   bool `json:"active"`
}

// FieldView is a field of the current step paired with its current answer.
type FieldView struct {
	Name     string           `json:"name"`
	Label    string           `json:"label"`
	Required bool             `json:"required"`
	Kind     schema.FieldType `json:"kind"`
	Options  []string         `json:"options,omitempty"`
	Text     string           `json:"text"`
	Checked  bool             `json:"checked"`
	Filled   bool             `json:"filled"`
}

// Snapshot is a read-only picture of the current step for renderers.
type Snapshot struct {
	Steps       []StepView  `json:"steps"`
	Step        int         `json:"step"`
	Title       string      `json:"title"`
	Multiple    bool        `json:"multiple"`
	Entries     []EntryView `json:"entries,omitempty"`
	Fields      []FieldView `json:"fields"`
	Valid       bool        `json:"valid"`
	First       bool        `json:"first"`
	Last        bool        `json:"last"`
	Layout      Layout      `json:"layout"`
	DrawerWidth int         `json:"drawerWidth"`
	Columns     int         `json:"columns"`
}

// NewSnapshot builds the view of st's current step.
func NewSnapshot(f *Form, st State) Snapshot {
	snap := Snapshot{
		Step:        st.Step,
		Valid:       f.IsSectionValid(st, st.Step),
		First:       st.Step == 0,
		Last:        f.IsLastStep(st.Step),
		Layout:      st.Layout,
		DrawerWidth: DrawerWidth(st.Layout),
		Columns:     f.GridColumns(st.Step, st.Layout.Compact),
	}

	for i, title := range f.Titles() {
		snap.Steps = append(snap.Steps, StepView{
			Index:    i,
			Title:    title,
			Complete: st.IsStepComplete(i),
			Current:  i == st.Step,
		})
	}

	section, ok := f.Section(st.Step)
	if !ok {
		return snap
	}
	snap.Title = section.Title
	snap.Multiple = section.AllowMultipleEntries

	values := st.Shared
	if section.AllowMultipleEntries {
		list := st.EntriesFor(section.Title)
		for i, entry := range list.Entries {
			snap.Entries = append(snap.Entries, EntryView{Position: i, ID: entry.ID, Active: i == list.Active})
		}
		active, _ := list.ActiveEntry()
		values = active.Values
	}

	for _, field := range section.Fields {
		snap.Fields = append(snap.Fields, FieldView{
			Name:     field.Name,
			Label:    field.Label,
			Required: field.Required,
			Kind:     f.FieldKind(st.Step, field.Name),
			Options:  append([]string(nil), field.Options...),
			Text:     values.StringOr(field.Name, ""),
			Checked:  values.BoolOr(field.Name, false),
			Filled:   values.Filled(field.Name),
		})
	}
	return snap
}
