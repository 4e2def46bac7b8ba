package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func insuredState(t *testing.T, form *Form, entries int) State {
	t.Helper()
	st := form.Jump(form.Init(false), 1)
	for i := 1; i < entries; i++ {
		st = form.AddEntry(st, "Insured")
	}
	return st
}

func TestAddEntry_AssignsNextIDAndActivates(t *testing.T) {
	form := Compile(mixedSchema())
	st := insuredState(t, form, 3)

	list := st.Multi["Insured"]
	require.Equal(t, []int{0, 1, 2}, list.IDs())
	require.Equal(t, 2, list.Active)

	st = form.RemoveEntry(st, "Insured", 1)
	st = form.AddEntry(st, "Insured")
	list = st.Multi["Insured"]
	require.Equal(t, []int{0, 2, 3}, list.IDs(), "ids are never reused below the max")
	require.Equal(t, 2, list.Active)
}

func TestAddEntry_EmptyListStartsAtZero(t *testing.T) {
	form := Compile(mixedSchema())
	st := State{Multi: map[string]EntryList{"Insured": {}}}

	st = form.AddEntry(st, "Insured")
	require.Equal(t, []int{0}, st.Multi["Insured"].IDs())
	require.Equal(t, 0, st.Multi["Insured"].Active)
}

func TestRemoveEntry_ActiveLastEntry(t *testing.T) {
	form := Compile(mixedSchema())
	st := insuredState(t, form, 2)
	require.Equal(t, 1, st.Multi["Insured"].Active)

	st = form.RemoveEntry(st, "Insured", 1)
	list := st.Multi["Insured"]
	require.Equal(t, []int{0}, list.IDs())
	require.Equal(t, 0, list.Active)
}

func TestRemoveEntry_LastRemainingIsReset(t *testing.T) {
	form := Compile(mixedSchema())
	st := insuredState(t, form, 2)
	st = form.RemoveEntry(st, "Insured", 0)
	st = form.SetField(st, true, "name", TextInput("Bob"))
	require.Equal(t, []int{1}, st.Multi["Insured"].IDs())

	st = form.RemoveEntry(st, "Insured", 0)
	list := st.Multi["Insured"]
	require.Equal(t, []int{0}, list.IDs())
	require.Equal(t, 0, list.Active)
	require.False(t, list.Entries[0].Values.Filled("name"))
}

func TestRemoveEntry_ActiveIndexAdjustments(t *testing.T) {
	form := Compile(mixedSchema())

	cases := []struct {
		name       string
		entries    int
		active     int
		remove     int
		wantIDs    []int
		wantActive int
	}{
		{name: "removing active middle steps back", entries: 3, active: 1, remove: 1, wantIDs: []int{0, 2}, wantActive: 0},
		{name: "removing active first stays at zero", entries: 3, active: 0, remove: 0, wantIDs: []int{1, 2}, wantActive: 0},
		{name: "active past new end is clamped", entries: 3, active: 2, remove: 0, wantIDs: []int{1, 2}, wantActive: 1},
		{name: "active before removed is kept", entries: 4, active: 1, remove: 3, wantIDs: []int{0, 1, 2}, wantActive: 1},
		{name: "active after removed keeps its position", entries: 4, active: 2, remove: 0, wantIDs: []int{1, 2, 3}, wantActive: 2},
		{name: "out of range index is ignored", entries: 2, active: 1, remove: 5, wantIDs: []int{0, 1}, wantActive: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := insuredState(t, form, tc.entries)
			st = form.SelectEntry(st, "Insured", tc.active)
			st = form.RemoveEntry(st, "Insured", tc.remove)

			list := st.Multi["Insured"]
			require.Equal(t, tc.wantIDs, list.IDs())
			require.Equal(t, tc.wantActive, list.Active)
		})
	}
}

func TestSelectEntry_NoValidation(t *testing.T) {
	form := Compile(mixedSchema())
	st := insuredState(t, form, 2)

	st = form.SelectEntry(st, "Insured", 4)
	require.Equal(t, 4, st.Multi["Insured"].Active)

	_, ok := st.Multi["Insured"].ActiveEntry()
	require.False(t, ok)
	require.False(t, form.IsSectionValid(st, 1))
}
