package render_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		raw  string
		want render.Action
	}{
		{raw: "next", want: render.Action{Name: render.ActionNext}},
		{raw: " Back ", want: render.Action{Name: render.ActionBack}},
		{raw: "jump:3", want: render.Action{Name: render.ActionJump, Index: 3}},
		{raw: "remove-entry:0", want: render.Action{Name: render.ActionRemoveEntry}},
		{raw: "select-entry: 2", want: render.Action{Name: render.ActionSelectEntry, Index: 2}},
	}
	for _, tc := range cases {
		got, err := render.ParseAction(tc.raw)
		require.NoError(t, err, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}

	for _, raw := range []string{"", "submit", "jump", "jump:x", "next:1"} {
		_, err := render.ParseAction(raw)
		require.True(t, errors.Is(err, render.ErrUnknownAction), raw)
	}

	require.Equal(t, "jump:4", render.Action{Name: render.ActionJump, Index: 4}.String())
	require.Equal(t, "add-entry", render.Action{Name: render.ActionAddEntry, Index: 9}.String())
}

func TestApplyActionAndValues(t *testing.T) {
	c := wizard.New(schema.New(
		schema.Section{Title: "Policy", Fields: []schema.Field{
			{Name: "policy_number", Label: "Policy Number", Required: true},
			{Name: "consent", Label: "Consent", Type: schema.FieldTypeCheckbox},
		}},
		schema.Section{Title: "Insured", AllowMultipleEntries: true, Fields: []schema.Field{
			{Name: "name", Label: "Name", Required: true},
		}},
	))

	render.ApplyValues(c, url.Values{
		"policy_number": {"P-1"},
		"consent":       {"false", "true"},
		"name":          {"not on this step"},
	})
	require.Equal(t, "P-1", c.Value("policy_number").String())
	require.True(t, c.Value("consent").Bool())
	require.True(t, c.Value("name").IsEmpty())

	for _, raw := range []string{"next", "add-entry", "select-entry:0", "remove-entry:1", "toggle-minimize"} {
		action, err := render.ParseAction(raw)
		require.NoError(t, err)
		render.ApplyAction(c, action)
	}
	require.Equal(t, 1, c.Step())
	require.True(t, c.IsStepComplete(0))
	require.Equal(t, []int{0}, c.Entries().IDs())
	require.True(t, c.State().Layout.Minimized)

	render.ApplyAction(c, render.Action{Name: render.ActionJump, Index: 0})
	render.ApplyAction(c, render.Action{Name: render.ActionBack})
	require.Equal(t, 0, c.Step())

	c.SetField("policy_number", wizard.TextInput(""))
	render.ApplyAction(c, render.Action{Name: render.ActionNext})
	require.Equal(t, 0, c.Step(), "next is ignored on an invalid step")
}
