package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

func sectionIDs(e *Editor) []string {
	var out []string
	for _, section := range e.Sections() {
		out = append(out, section.ID)
	}
	return out
}

func fieldNames(section Section) []string {
	var out []string
	for _, field := range section.Fields {
		out = append(out, field.Name)
	}
	return out
}

func TestNew_SeedsCoverDetails(t *testing.T) {
	e := New()

	require.Equal(t, "section-1", e.ActiveID())
	active, ok := e.ActiveSection()
	require.True(t, ok)
	require.Equal(t, "Cover Details", active.Title)
	require.Equal(t, []string{"plan_type", "itenary", "commision_percentage", "premium_due"}, fieldNames(active))

	require.Equal(t, "section-2", e.AddSection())
	require.Equal(t, "field-5", e.AddField("", schema.FieldTypeText))
}

func TestAddSection_TitlesAndSelection(t *testing.T) {
	e := NewEmpty()
	require.Equal(t, "", e.ActiveID())

	first := e.AddSection()
	second := e.AddSection()
	require.Equal(t, []string{"section-1", "section-2"}, sectionIDs(e))
	require.Equal(t, second, e.ActiveID())

	sections := e.Sections()
	require.Equal(t, "New Section 1", sections[0].Title)
	require.Equal(t, "New Section 2", sections[1].Title)
	require.False(t, sections[1].AllowMultipleEntries)

	require.NoError(t, e.SelectSection(first))
	require.Equal(t, first, e.ActiveID())
	require.ErrorIs(t, e.SelectSection("section-9"), ErrSectionNotFound)
}

func TestDeleteSection_Selection(t *testing.T) {
	e := NewEmpty()
	a := e.AddSection()
	b := e.AddSection()
	c := e.AddSection()

	require.NoError(t, e.SelectSection(b))
	require.NoError(t, e.DeleteSection(a))
	require.Equal(t, b, e.ActiveID(), "deleting another section keeps the selection")

	require.NoError(t, e.DeleteSection(b))
	require.Equal(t, c, e.ActiveID(), "deleting the active section selects the first remaining")

	require.NoError(t, e.DeleteSection(c))
	require.Equal(t, "", e.ActiveID())
	require.Empty(t, e.Sections())

	require.ErrorIs(t, e.DeleteSection(c), ErrSectionNotFound)
}

func TestAddField_Defaults(t *testing.T) {
	e := NewEmpty()
	require.Equal(t, "", e.AddField("", schema.FieldTypeText), "no active section is a no-op")

	sid := e.AddSection()
	text := e.AddField("", schema.FieldTypeText)
	drop := e.AddField(sid, schema.FieldTypeDropdown)
	require.Equal(t, "field-1", text)
	require.Equal(t, "field-2", drop)
	require.Equal(t, "", e.AddField("section-7", schema.FieldTypeDate))
	require.Equal(t, "", e.AddField(sid, schema.FieldType("bogus")), "unknown kinds are rejected")

	active, _ := e.ActiveSection()
	want := []Field{
		{ID: "field-1", Name: "field_1", Label: "Field 1", Type: schema.FieldTypeText},
		{ID: "field-2", Name: "field_2", Label: "Field 2", Type: schema.FieldTypeDropdown, Options: []string{"Option 1", "Option 2", "Option 3"}},
	}
	if diff := cmp.Diff(want, active.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateSection(t *testing.T) {
	e := New()

	require.NoError(t, e.UpdateSection("section-1", SectionTitle, "Cover"))
	require.NoError(t, e.UpdateSection("section-1", SectionAllowMultiple, true))
	active, _ := e.ActiveSection()
	require.Equal(t, "Cover", active.Title)
	require.True(t, active.AllowMultipleEntries)

	require.NoError(t, e.UpdateSection("section-1", SectionAllowMultiple, "false"))
	active, _ = e.ActiveSection()
	require.False(t, active.AllowMultipleEntries)

	require.ErrorIs(t, e.UpdateSection("section-1", SectionAllowMultiple, "maybe"), ErrInvalidValue)
	require.ErrorIs(t, e.UpdateSection("section-1", SectionTitle, 42), ErrInvalidValue)
	require.ErrorIs(t, e.UpdateSection("section-1", "colour", "red"), ErrUnknownProperty)
	require.ErrorIs(t, e.UpdateSection("nope", SectionTitle, "x"), ErrSectionNotFound)
}

func TestUpdateField(t *testing.T) {
	e := New()

	require.NoError(t, e.UpdateField("field-2", FieldName, "itinerary"))
	require.NoError(t, e.UpdateField("field-2", FieldLabel, "Itinerary"))
	require.NoError(t, e.UpdateField("field-2", FieldRequired, true))
	require.NoError(t, e.UpdateField("field-2", FieldTypeProp, "dropdown"))

	active, _ := e.ActiveSection()
	field := active.Fields[1]
	require.Equal(t, "itinerary", field.Name)
	require.True(t, field.Required)
	require.Equal(t, schema.FieldTypeDropdown, field.Type)
	require.Equal(t, DefaultOptions(), field.Options, "switching to dropdown seeds options")

	require.NoError(t, e.UpdateField("field-2", FieldOptions, " Asia ,Europe,  , Americas"))
	active, _ = e.ActiveSection()
	require.Equal(t, []string{"Asia", "Europe", "", "Americas"}, active.Fields[1].Options)

	require.ErrorIs(t, e.UpdateField("field-2", FieldTypeProp, "slider"), schema.ErrUnknownFieldType)
	require.ErrorIs(t, e.UpdateField("field-2", FieldOptions, 3), ErrInvalidValue)
	require.ErrorIs(t, e.UpdateField("field-2", "placeholder", "x"), ErrUnknownProperty)
	require.ErrorIs(t, e.UpdateField("field-99", FieldName, "x"), ErrFieldNotFound)
}

func TestDeleteField(t *testing.T) {
	e := New()
	require.NoError(t, e.DeleteField("field-3"))
	active, _ := e.ActiveSection()
	require.Equal(t, []string{"plan_type", "itenary", "premium_due"}, fieldNames(active))
	require.True(t, errors.Is(e.DeleteField("field-3"), ErrFieldNotFound))
}

func TestReorder(t *testing.T) {
	e := NewEmpty()
	for i := 0; i < 4; i++ {
		e.AddSection()
	}

	require.True(t, e.Reorder(ListSections, 0, 2))
	require.Equal(t, []string{"section-2", "section-3", "section-1", "section-4"}, sectionIDs(e))

	require.True(t, e.Reorder(ListSections, 3, 0))
	require.Equal(t, []string{"section-4", "section-2", "section-3", "section-1"}, sectionIDs(e))

	require.False(t, e.Reorder(ListSections, 0, 4))
	require.False(t, e.Reorder(ListSections, -1, 0))
	require.Equal(t, []string{"section-4", "section-2", "section-3", "section-1"}, sectionIDs(e))

	f := New()
	require.True(t, f.Reorder(ListFields, 3, 1))
	active, _ := f.ActiveSection()
	require.Equal(t, []string{"plan_type", "premium_due", "itenary", "commision_percentage"}, fieldNames(active))
	require.False(t, f.Reorder("column", 0, 1))
}

func TestImport_AssignsFreshIDs(t *testing.T) {
	src := schema.New(
		schema.Section{Title: "One", Fields: []schema.Field{{Name: "a", Label: "A", Required: true}}},
		schema.Section{Title: "Two", AllowMultipleEntries: true, Fields: []schema.Field{
			{Name: "b", Label: "B", Type: schema.FieldTypeDropdown, Options: []string{"x"}},
			{Name: "c", Label: "C", Type: schema.FieldTypeDate},
		}},
	)

	e := New()
	e.Import(src)
	require.Equal(t, []string{"section-1", "section-2"}, sectionIDs(e))
	require.Equal(t, "section-1", e.ActiveID())
	require.Equal(t, "field-4", e.AddField("section-2", schema.FieldTypeCheckbox))
	require.Equal(t, "section-3", e.AddSection())
}

func TestSectionsReturnsCopies(t *testing.T) {
	e := New()
	sections := e.Sections()
	sections[0].Fields[0].Name = "mutated"

	active, _ := e.ActiveSection()
	require.Equal(t, "plan_type", active.Fields[0].Name)
}
