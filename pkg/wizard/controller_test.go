package wizard

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestController_Session(t *testing.T) {
	var logs bytes.Buffer
	c := New(mixedSchema(), WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))

	require.False(t, c.CanAdvance())
	c.SetField("policy_number", TextInput("P-1"))
	c.SetField("product_code", TextInput("TRV"))
	require.True(t, c.CanAdvance())
	require.Equal(t, "P-1", c.Value("policy_number").String())

	c.Advance()
	require.Equal(t, 1, c.Step())
	require.True(t, c.IsStepComplete(0))

	c.SetField("name", TextInput("Ann"))
	c.AddEntry()
	require.Equal(t, 1, c.Entries().Active)
	require.False(t, c.CanAdvance(), "fresh entry has no name")

	c.SetEntryField(1, "name", TextInput("Bob"))
	require.True(t, c.CanAdvance())
	require.Equal(t, "Bob", c.Value("name").String())

	c.RemoveEntry(1)
	require.Equal(t, []int{0}, c.Entries().IDs())
	require.Equal(t, "Ann", c.Value("name").String())

	c.Advance()
	require.True(t, c.IsLastStep())
	c.Retreat()
	require.Equal(t, 1, c.Step())

	out := logs.String()
	require.Contains(t, out, "wizard advance")
	require.Contains(t, out, "wizard entry removed")
}

func TestController_CompactLayoutAndToggles(t *testing.T) {
	c := New(mixedSchema(), WithCompactLayout(true))
	require.False(t, c.State().Layout.DrawerOpen)
	require.Equal(t, DrawerWidthCompact, c.DrawerWidth())

	c.ToggleDrawer()
	require.True(t, c.State().Layout.DrawerOpen)
	c.Jump(2)
	require.False(t, c.State().Layout.DrawerOpen)

	c.ToggleMinimize()
	require.Equal(t, DrawerWidthMinimized, c.DrawerWidth())
	require.Equal(t, 1, c.GridColumns(true))
}

func TestController_StateRoundTripsThroughJSON(t *testing.T) {
	c := New(mixedSchema())
	c.SetField("policy_number", TextInput("P-1"))
	c.Advance()
	c.AddEntry()
	c.SetField("name", TextInput("Bob"))
	c.Jump(2)
	c.SetField("consent_given", CheckedInput(true))

	payload, err := json.Marshal(c.State())
	require.NoError(t, err)
	require.True(t, strings.Contains(string(payload), `"consent_given":true`))

	var restored State
	require.NoError(t, json.Unmarshal(payload, &restored))

	resumed := New(mixedSchema(), WithState(restored))
	if diff := cmp.Diff(c.State(), resumed.State()); diff != "" {
		t.Fatalf("resumed state mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 2, resumed.Step())
	require.True(t, resumed.Value("consent_given").Bool())
}

func TestController_ResumeClampsStepIntoForm(t *testing.T) {
	stale := New(mixedSchema()).State()
	stale.Step = 9
	c := New(mixedSchema(), WithState(stale))
	require.Equal(t, 2, c.Step())
	require.True(t, c.IsLastStep())
	require.Equal(t, "Consent", c.Snapshot().Title)

	stale.Step = -3
	require.Equal(t, 0, New(mixedSchema(), WithState(stale)).Step())
}

func TestController_Snapshot(t *testing.T) {
	c := New(mixedSchema())
	c.Jump(1)
	c.SetField("name", TextInput("Ann"))
	c.AddEntry()

	snap := c.Snapshot()
	require.Equal(t, "Insured", snap.Title)
	require.True(t, snap.Multiple)
	require.Len(t, snap.Entries, 2)
	require.True(t, snap.Entries[1].Active)
	require.False(t, snap.Valid)
	require.Equal(t, "", snap.Fields[0].Text, "fields reflect the active entry")
	require.Equal(t, []string{"Wife", "Husband"}, snap.Fields[1].Options)
	require.True(t, snap.Steps[1].Current)
	require.False(t, snap.First)
	require.False(t, snap.Last)
}

func TestValue_Semantics(t *testing.T) {
	require.True(t, Value{}.IsEmpty())
	require.True(t, StringValue("").IsEmpty())
	require.False(t, StringValue("0").IsEmpty())
	require.False(t, BoolValue(false).IsEmpty())

	vs := Values{"n": StringValue("0"), "c": BoolValue(false)}
	require.Equal(t, "0", vs.StringOr("n", "x"))
	require.Equal(t, "x", vs.StringOr("missing", "x"))
	require.False(t, vs.BoolOr("c", true))
	require.True(t, vs.BoolOr("n", true), "non-boolean values fall back to the default")

	var decoded Values
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":false,"c":null}`), &decoded))
	require.Equal(t, KindString, decoded["a"].Kind())
	require.Equal(t, KindBool, decoded["b"].Kind())
	require.Equal(t, KindNone, decoded["c"].Kind())
	require.Error(t, json.Unmarshal([]byte(`{"a":3}`), &decoded))
}
