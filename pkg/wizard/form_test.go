package wizard

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

func singleSectionSchema() schema.Schema {
	return schema.New(schema.Section{
		Title: "A",
		Fields: []schema.Field{
			{Name: "x", Label: "X", Required: true},
		},
	})
}

func mixedSchema() schema.Schema {
	return schema.New(
		schema.Section{Title: "Policy", Fields: []schema.Field{
			{Name: "policy_number", Label: "Policy Number", Required: true},
			{Name: "product_code", Label: "Policy Type", Required: true},
			{Name: "memo_text", Label: "Memo"},
		}},
		schema.Section{Title: "Insured", AllowMultipleEntries: true, Fields: []schema.Field{
			{Name: "name", Label: "Name", Required: true},
			{Name: "relation", Label: "Relation", Type: schema.FieldTypeDropdown, Options: []string{"Wife", "Husband"}},
		}},
		schema.Section{Title: "Consent", Fields: []schema.Field{
			{Name: "consent_given", Label: "Consent Given", Required: true, Type: schema.FieldTypeCheckbox},
			{Name: "premium", Label: "Premium", Required: true, Type: schema.FieldTypeNumber},
		}},
	)
}

func TestForm_SingleFieldScenario(t *testing.T) {
	form := Compile(singleSectionSchema())
	if form.Steps() != 1 {
		t.Fatalf("expected 1 step, got %d", form.Steps())
	}

	st := form.Init(false)
	if form.IsSectionValid(st, 0) {
		t.Fatalf("section must be invalid before x is set")
	}

	st = form.SetField(st, false, "x", TextInput("v"))
	if !form.IsSectionValid(st, 0) {
		t.Fatalf("section must be valid once x is set")
	}
}

func TestForm_InitSeedsMultiEntrySections(t *testing.T) {
	form := Compile(mixedSchema())
	st := form.Init(false)

	list, ok := st.Multi["Insured"]
	if !ok {
		t.Fatalf("expected entries for multi-entry section")
	}
	if diff := cmp.Diff([]int{0}, list.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if list.Active != 0 {
		t.Fatalf("expected active 0, got %d", list.Active)
	}
	if _, ok := st.Multi["Policy"]; ok {
		t.Fatalf("single-entry sections must not get entry lists")
	}
	if !st.Layout.DrawerOpen {
		t.Fatalf("drawer starts open on wide layouts")
	}
	if form.Init(true).Layout.DrawerOpen {
		t.Fatalf("drawer starts closed on compact layouts")
	}
}

func TestForm_Navigation(t *testing.T) {
	form := Compile(mixedSchema())
	st := form.Init(false)

	st = form.Retreat(st, st.Step)
	if st.Step != 0 {
		t.Fatalf("retreat at step 0 must be a no-op, got %d", st.Step)
	}

	st = form.Advance(st, st.Step)
	if st.Step != 1 || !st.IsStepComplete(0) {
		t.Fatalf("advance must complete step 0 and move to 1: %+v", st)
	}

	st = form.Advance(st, st.Step)
	st = form.Advance(st, st.Step)
	if st.Step != 2 {
		t.Fatalf("advance must stop at the last step, got %d", st.Step)
	}
	if !st.IsStepComplete(2) {
		t.Fatalf("advance on the last step still marks it complete")
	}

	st = form.Retreat(st, st.Step)
	if st.Step != 1 {
		t.Fatalf("retreat must move back, got %d", st.Step)
	}
	if !st.IsStepComplete(1) {
		t.Fatalf("completion is never unset")
	}
}

func TestForm_AdvanceDoesNotRequireValidity(t *testing.T) {
	form := Compile(mixedSchema())
	st := form.Init(false)
	if form.IsSectionValid(st, 0) {
		t.Fatalf("precondition: section 0 invalid")
	}
	st = form.Advance(st, 0)
	if !st.IsStepComplete(0) || st.Step != 1 {
		t.Fatalf("advance marks complete unconditionally")
	}
}

func TestForm_JumpIsIdempotentAndClosesCompactDrawer(t *testing.T) {
	form := Compile(mixedSchema())

	wide := form.Init(false)
	wide = form.Jump(wide, 2)
	again := form.Jump(wide, 2)
	if diff := cmp.Diff(wide, again); diff != "" {
		t.Fatalf("jump twice must be idempotent (-first +second):\n%s", diff)
	}
	if !again.Layout.DrawerOpen {
		t.Fatalf("wide layouts keep the drawer open")
	}

	compact := form.Init(true)
	compact = form.ToggleDrawer(compact)
	compact = form.Jump(compact, 1)
	if compact.Step != 1 || compact.Layout.DrawerOpen {
		t.Fatalf("compact jump must close the drawer: %+v", compact.Layout)
	}

	out := form.Jump(compact, 9)
	if out.Step != 1 {
		t.Fatalf("out of range jump must be ignored, got %d", out.Step)
	}
}

func TestForm_TransitionsDoNotMutateInput(t *testing.T) {
	form := Compile(mixedSchema())
	st := form.Init(false)
	before := st.Clone()

	_ = form.Advance(st, 0)
	_ = form.SetField(st, false, "policy_number", TextInput("P-1"))
	_ = form.AddEntry(st, "Insured")

	if diff := cmp.Diff(before, st); diff != "" {
		t.Fatalf("input state mutated (-before +after):\n%s", diff)
	}
}

func TestForm_SingleEntryValidity(t *testing.T) {
	form := Compile(mixedSchema())
	st := form.Init(false)

	st = form.SetField(st, false, "policy_number", TextInput("P-1"))
	st = form.SetField(st, false, "memo_text", TextInput("optional"))
	if form.IsSectionValid(st, 0) {
		t.Fatalf("one of two required fields missing")
	}

	st = form.SetField(st, false, "product_code", TextInput(""))
	if form.IsSectionValid(st, 0) {
		t.Fatalf("empty string does not satisfy required")
	}

	st = form.SetField(st, false, "product_code", TextInput("TRV"))
	if !form.IsSectionValid(st, 0) {
		t.Fatalf("both required fields set")
	}

	st = form.SetField(st, false, "memo_text", TextInput(""))
	if !form.IsSectionValid(st, 0) {
		t.Fatalf("optional fields never gate validity")
	}
}

func TestForm_CheckboxAndZeroValuesCountAsAnswers(t *testing.T) {
	form := Compile(mixedSchema())
	st := form.Jump(form.Init(false), 2)

	if form.IsSectionValid(st, 2) {
		t.Fatalf("untouched checkbox counts as missing")
	}

	st = form.SetField(st, false, "consent_given", Input{Text: "on", Checked: false})
	st = form.SetField(st, false, "premium", TextInput("0"))

	if !form.IsSectionValid(st, 2) {
		t.Fatalf("false checkbox and numeric zero are answers")
	}

	v, _ := st.Shared.Lookup("consent_given")
	if v.Kind() != KindBool || v.Bool() {
		t.Fatalf("checkbox must store checked-state, got %#v", v)
	}
	if got := st.Shared.StringOr("premium", "missing"); got != "0" {
		t.Fatalf("number stores raw text, got %q", got)
	}
}

func TestForm_MultiEntrySetFieldTargetsActiveEntry(t *testing.T) {
	form := Compile(mixedSchema())
	st := form.Jump(form.Init(false), 1)

	st = form.SetField(st, true, "name", TextInput("Ann"))
	st = form.AddEntry(st, "Insured")
	st = form.SetField(st, true, "name", TextInput("Bob"))
	st = form.SetField(st, true, "relation", TextInput("Wife"), 0)

	list := st.Multi["Insured"]
	if got := list.Entries[0].Values.StringOr("name", ""); got != "Ann" {
		t.Fatalf("entry 0 name = %q", got)
	}
	if got := list.Entries[1].Values.StringOr("name", ""); got != "Bob" {
		t.Fatalf("entry 1 name = %q", got)
	}
	if got := list.Entries[0].Values.StringOr("relation", ""); got != "Wife" {
		t.Fatalf("explicit entry index must be honoured, got %q", got)
	}
	if _, ok := st.Shared.Lookup("name"); ok {
		t.Fatalf("multi-entry writes must not leak into shared values")
	}

	out := form.SetField(st, true, "name", TextInput("Zed"), 7)
	if diff := cmp.Diff(st, out); diff != "" {
		t.Fatalf("writes to a missing entry are ignored (-want +got):\n%s", diff)
	}
}

// Validity of a multi-entry section only looks at the active entry; other
// entries may stay incomplete and the section still reads as valid.
func TestForm_MultiEntryValidityUsesActiveEntryOnly(t *testing.T) {
	form := Compile(mixedSchema())
	st := form.Jump(form.Init(false), 1)

	st = form.AddEntry(st, "Insured")
	st = form.SetField(st, true, "name", TextInput("Bob"))
	if !form.IsSectionValid(st, 1) {
		t.Fatalf("active entry is complete")
	}

	st = form.SelectEntry(st, "Insured", 0)
	if form.IsSectionValid(st, 1) {
		t.Fatalf("entry 0 is incomplete")
	}
}

func TestForm_GridColumnsAndDrawerWidth(t *testing.T) {
	fields := make([]schema.Field, 11)
	for i := range fields {
		fields[i] = schema.Field{Name: string(rune('a' + i))}
	}
	form := Compile(schema.New(
		schema.Section{Title: "Small", Fields: fields[:3]},
		schema.Section{Title: "Large", Fields: fields},
	))

	if got := form.GridColumns(0, false); got != 2 {
		t.Fatalf("small section columns = %d", got)
	}
	if got := form.GridColumns(1, false); got != 3 {
		t.Fatalf("large section columns = %d", got)
	}
	if got := form.GridColumns(1, true); got != 1 {
		t.Fatalf("small screen columns = %d", got)
	}

	if got := DrawerWidth(Layout{}); got != DrawerWidthDefault {
		t.Fatalf("default width = %d", got)
	}
	if got := DrawerWidth(Layout{Compact: true}); got != DrawerWidthCompact {
		t.Fatalf("compact width = %d", got)
	}
	if got := DrawerWidth(Layout{Compact: true, Minimized: true}); got != DrawerWidthMinimized {
		t.Fatalf("minimized width = %d", got)
	}
}

func TestForm_Collect(t *testing.T) {
	form := Compile(mixedSchema())
	st := form.Init(false)
	st = form.SetField(st, false, "policy_number", TextInput("P-1"))
	st = form.Jump(st, 1)
	st = form.SetField(st, true, "name", TextInput("Ann"))
	st = form.AddEntry(st, "Insured")
	st = form.SetField(st, true, "name", TextInput("Bob"))

	got := form.Collect(st)
	want := []SectionValues{
		{Title: "Policy", Entries: []Values{{"policy_number": StringValue("P-1")}}},
		{Title: "Insured", Multiple: true, Entries: []Values{
			{"name": StringValue("Ann")},
			{"name": StringValue("Bob")},
		}},
		{Title: "Consent", Entries: []Values{{}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collect mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_TolerantReads(t *testing.T) {
	form := Compile(mixedSchema())
	st := State{}

	if form.IsSectionValid(st, 42) {
		t.Fatalf("unknown step is never valid")
	}
	if form.FieldKind(9, "nope") != schema.FieldTypeText {
		t.Fatalf("unknown fields resolve to text")
	}
	list := st.EntriesFor("Insured")
	if len(list.Entries) != 1 || list.Entries[0].ID != 0 {
		t.Fatalf("missing entry lists read as one empty entry: %+v", list)
	}
	snap := NewSnapshot(form, st)
	if len(snap.Steps) != 3 || snap.Title != "Policy" {
		t.Fatalf("snapshot of zero state: %+v", snap)
	}
}
