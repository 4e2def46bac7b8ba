package wizard

import (
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Drawer widths for the section panel, in pixels.
const (
	DrawerWidthMinimized = 60
	DrawerWidthCompact   = 200
	DrawerWidthDefault   = 220
)

// Form is the compiled view of a schema. It never changes after Compile.
type Form struct {
	schema schema.Schema
	kinds  []map[string]schema.FieldType
}

// Compile resolves every field's variant once and returns the read-only form.
func Compile(s schema.Schema) *Form {
	f := &Form{
		schema: s.Clone(),
		kinds:  make([]map[string]schema.FieldType, len(s.Sections)),
	}
	for i, section := range f.schema.Sections {
		index := make(map[string]schema.FieldType, len(section.Fields))
		for _, field := range section.Fields {
			index[field.Name] = field.Kind()
		}
		f.kinds[i] = index
	}
	return f
}

// Schema returns a copy of the compiled schema.
func (f *Form) Schema() schema.Schema {
	return f.schema.Clone()
}

// Steps reports the number of wizard steps, one per section.
func (f *Form) Steps() int {
	return len(f.schema.Sections)
}

// Titles lists step titles in order.
func (f *Form) Titles() []string {
	return f.schema.Titles()
}

// Section returns the section shown at step.
func (f *Form) Section(step int) (schema.Section, bool) {
	return f.schema.Section(step)
}

// FieldKind returns the variant of a field in the section at step. Unknown
// fields resolve to text.
func (f *Form) FieldKind(step int, name string) schema.FieldType {
	if step < 0 || step >= len(f.kinds) {
		return schema.FieldTypeText
	}
	if kind, ok := f.kinds[step][name]; ok {
		return kind
	}
	return schema.FieldTypeText
}

// IsMulti reports whether the section at step allows multiple entries.
func (f *Form) IsMulti(step int) bool {
	section, ok := f.schema.Section(step)
	return ok && section.AllowMultipleEntries
}

// Init builds the starting state: step 0, no values, and one empty entry
// (id 0, active) for every multi-entry section. The navigation panel starts
// open unless the layout is compact.
func (f *Form) Init(compact bool) State {
	st := State{
		Shared:    Values{},
		Multi:     make(map[string]EntryList),
		Completed: make(map[int]bool),
		Layout: Layout{
			Compact:    compact,
			DrawerOpen: !compact,
		},
	}
	for _, section := range f.schema.Sections {
		if section.AllowMultipleEntries {
			st.Multi[section.Title] = freshEntryList()
		}
	}
	return st
}

// IsLastStep reports whether step is the final section.
func (f *Form) IsLastStep(step int) bool {
	return step == f.Steps()-1
}

// Advance marks step complete and moves to the following step unless step is
// the last one.
func (f *Form) Advance(st State, step int) State {
	next := st.Clone()
	if next.Completed == nil {
		next.Completed = make(map[int]bool)
	}
	next.Completed[step] = true
	if step < f.Steps()-1 {
		next.Step = step + 1
	}
	return next
}

// Retreat moves to the previous step unless step is the first one.
func (f *Form) Retreat(st State, step int) State {
	next := st.Clone()
	if step > 0 {
		next.Step = step - 1
	}
	return next
}

// Jump moves straight to target. Compact layouts close the navigation panel.
// Targets outside the form leave the state unchanged.
func (f *Form) Jump(st State, target int) State {
	next := st.Clone()
	if target < 0 || target >= f.Steps() {
		return next
	}
	next.Step = target
	if next.Layout.Compact {
		next.Layout.DrawerOpen = false
	}
	return next
}

// SetField records an input for a field of the current step's section. For
// multi-entry sections the value lands in the entry at entry[0] when given,
// otherwise the active entry; positions past the end are ignored. Checkbox
// fields store the checked-state, every other variant stores the raw text.
func (f *Form) SetField(st State, multi bool, name string, in Input, entry ...int) State {
	next := st.Clone()
	value := f.valueFor(next.Step, name, in)

	if !multi {
		if next.Shared == nil {
			next.Shared = Values{}
		}
		next.Shared[name] = value
		return next
	}

	title := f.titleAt(next.Step)
	if next.Multi == nil {
		next.Multi = make(map[string]EntryList)
	}
	list, ok := next.Multi[title]
	if !ok {
		list = freshEntryList()
	}

	idx := list.Active
	if len(entry) > 0 {
		idx = entry[0]
	}
	if idx < 0 || idx >= len(list.Entries) {
		return next
	}

	target := list.Entries[idx]
	if target.Values == nil {
		target.Values = Values{}
	}
	target.Values[name] = value
	list.Entries[idx] = target
	next.Multi[title] = list
	return next
}

func (f *Form) valueFor(step int, name string, in Input) Value {
	if f.FieldKind(step, name) == schema.FieldTypeCheckbox {
		return BoolValue(in.Checked)
	}
	return StringValue(in.Text)
}

// IsSectionValid reports whether every required field of the section at step
// holds a non-empty value. Multi-entry sections are judged by their active
// entry only; other entries may still be incomplete.
func (f *Form) IsSectionValid(st State, step int) bool {
	section, ok := f.schema.Section(step)
	if !ok {
		return false
	}

	if section.AllowMultipleEntries {
		list := st.EntriesFor(section.Title)
		if len(list.Entries) == 0 {
			return false
		}
		active, _ := list.ActiveEntry()
		for _, name := range section.RequiredNames() {
			if !active.Values.Filled(name) {
				return false
			}
		}
		return true
	}

	for _, field := range section.Fields {
		if field.Required && !st.Shared.Filled(field.Name) {
			return false
		}
	}
	return true
}

// ToggleDrawer opens or closes the navigation panel.
func (f *Form) ToggleDrawer(st State) State {
	next := st.Clone()
	next.Layout.DrawerOpen = !next.Layout.DrawerOpen
	return next
}

// ToggleMinimize collapses or expands the navigation panel.
func (f *Form) ToggleMinimize(st State) State {
	next := st.Clone()
	next.Layout.Minimized = !next.Layout.Minimized
	return next
}

// DrawerWidth returns the navigation panel width for a layout.
func DrawerWidth(l Layout) int {
	switch {
	case l.Minimized:
		return DrawerWidthMinimized
	case l.Compact:
		return DrawerWidthCompact
	default:
		return DrawerWidthDefault
	}
}

// GridColumns returns how many field columns the section at step should use:
// one on small screens, three for sections with more than ten fields,
// otherwise two.
func (f *Form) GridColumns(step int, smallScreen bool) int {
	if smallScreen {
		return 1
	}
	section, _ := f.schema.Section(step)
	if len(section.Fields) > 10 {
		return 3
	}
	return 2
}

func (f *Form) titleAt(step int) string {
	section, _ := f.schema.Section(step)
	return section.Title
}
