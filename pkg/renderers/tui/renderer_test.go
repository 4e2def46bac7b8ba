package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formwizard/pkg/editor"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type stubDriver struct {
	inputs   []string
	selects  []int
	confirms []bool

	infos         []string
	selectConfigs []SelectConfig
	inputConfigs  []InputConfig
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if len(s.inputs) == 0 {
		return "", ErrAborted
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return false, ErrAborted
	}
	val := s.confirms[0]
	s.confirms = s.confirms[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if len(s.selects) == 0 {
		return -1, ErrAborted
	}
	val := s.selects[0]
	s.selects = s.selects[1:]
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func (s *stubDriver) exhausted() bool {
	return len(s.inputs) == 0 && len(s.selects) == 0 && len(s.confirms) == 0
}

func applicationSchema() schema.Schema {
	return schema.New(
		schema.Section{
			Title: "Applicant",
			Fields: []schema.Field{
				{Name: "name", Label: "Name", Required: true},
				{Name: "age", Label: "Age", Type: schema.FieldTypeNumber},
				{Name: "plan", Label: "Plan", Type: schema.FieldTypeDropdown, Options: []string{"Basic", "Gold"}},
			},
		},
		schema.Section{
			Title:                "Drivers",
			AllowMultipleEntries: true,
			Fields: []schema.Field{
				{Name: "driver", Label: "Driver", Required: true},
				{Name: "licensed", Label: "Licensed", Type: schema.FieldTypeCheckbox},
			},
		},
	)
}

func newTestRenderer(t *testing.T, driver PromptDriver, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(append([]Option{WithPromptDriver(driver)}, opts...)...)
	require.NoError(t, err)
	return r
}

func TestRenderer_Metadata(t *testing.T) {
	r := newTestRenderer(t, &stubDriver{})
	require.Equal(t, "tui", r.Name())
	require.Equal(t, "text/plain; charset=utf-8", r.ContentType())

	r = newTestRenderer(t, &stubDriver{}, WithOutputFormat(OutputFormatJSON))
	require.Equal(t, "application/json", r.ContentType())

	_, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat("yaml"))
	require.Error(t, err)
}

func TestRenderer_RenderPretty(t *testing.T) {
	c := wizard.New(applicationSchema())
	c.SetField("name", wizard.TextInput("Ada"))

	r := newTestRenderer(t, &stubDriver{})
	out, err := r.Render(context.Background(), c.Snapshot(), render.RenderOptions{})
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, "Applicant (1/2)")
	require.Contains(t, text, "[>] Applicant")
	require.Contains(t, text, "[ ] Drivers")
	require.Contains(t, text, "Ada")
	require.Contains(t, text, "FIELD")
}

func TestRenderer_RenderMultiEntry(t *testing.T) {
	c := wizard.New(applicationSchema())
	c.Jump(1)
	c.SetField("licensed", wizard.CheckedInput(true))
	c.AddEntry()

	r := newTestRenderer(t, &stubDriver{})
	out, err := r.Render(context.Background(), c.Snapshot(), render.RenderOptions{})
	require.NoError(t, err)
	require.Contains(t, string(out), "Drivers 1 | *Drivers 2*")
}

func TestRenderer_RenderJSON(t *testing.T) {
	c := wizard.New(applicationSchema())
	r := newTestRenderer(t, &stubDriver{}, WithOutputFormat(OutputFormatJSON))

	out, err := r.Render(context.Background(), c.Snapshot(), render.RenderOptions{})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "Applicant", decoded["title"])
	require.Equal(t, false, decoded["valid"])
}

func TestRenderer_RenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRenderer(t, &stubDriver{})
	_, err := r.Render(ctx, wizard.New(applicationSchema()).Snapshot(), render.RenderOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Serialize(t *testing.T) {
	values := []wizard.SectionValues{
		{Title: "Applicant", Entries: []wizard.Values{{"name": wizard.StringValue("Ada")}}},
		{Title: "Drivers", Multiple: true, Entries: []wizard.Values{
			{"driver": wizard.StringValue("Ann"), "licensed": wizard.BoolValue(true)},
		}},
	}

	r := newTestRenderer(t, &stubDriver{})
	out, err := r.Serialize(values)
	require.NoError(t, err)
	require.Equal(t, "Applicant\n  name: Ada\nDrivers 1\n  driver: Ann\n  licensed: true\n", string(out))

	r = newTestRenderer(t, &stubDriver{}, WithOutputFormat(OutputFormatJSON))
	out, err = r.Serialize(values)
	require.NoError(t, err)
	require.Contains(t, string(out), `"title": "Drivers"`)
}

func TestRenderer_Fill(t *testing.T) {
	driver := &stubDriver{
		inputs:   []string{"Ada", "abc", "42", "Ann", "", "Ann"},
		selects:  []int{1, 0, 3, 4, 1, 0},
		confirms: []bool{true, false, true},
	}
	r := newTestRenderer(t, driver)

	values, err := r.Fill(context.Background(), wizard.New(applicationSchema()))
	require.NoError(t, err)
	require.True(t, driver.exhausted())

	require.Len(t, values, 2)
	require.Equal(t, wizard.Values{
		"name": wizard.StringValue("Ada"),
		"age":  wizard.StringValue("42"),
		"plan": wizard.StringValue("Gold"),
	}, values[0].Entries[0])
	require.Equal(t, []wizard.Values{{
		"driver":   wizard.StringValue("Ann"),
		"licensed": wizard.BoolValue(true),
	}}, values[1].Entries)

	require.Equal(t, "Name *", driver.inputConfigs[0].Message)
	require.Contains(t, driver.infos, errNotANumber.Error())
	require.Contains(t, driver.infos, "Missing required fields: Driver")
	require.Equal(t, []string{"Next", "Edit answers", "Sections"}, driver.selectConfigs[1].Options)
	require.Equal(t, []string{"Back", "Edit answers", "Add Drivers", "Switch entry", "Remove entry", "Sections"}, driver.selectConfigs[3].Options)
}

func TestRenderer_FillLocalisesMenu(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"Ada", ""},
		selects: []int{0},
	}
	opts := render.RenderOptions{
		Locale:     "es",
		Translator: mapTranslator{"wizard.next": "Siguiente", "wizard.sections": "Secciones"},
	}
	r := newTestRenderer(t, driver, WithRenderOptions(opts))

	_, err := r.Fill(context.Background(), wizard.New(applicationSchema()))
	require.ErrorIs(t, err, ErrAborted)
	require.Equal(t, []string{"Siguiente", "Edit answers", "Secciones"}, driver.selectConfigs[1].Options)
}

func TestRenderer_FillPromptLimit(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada", "1", "2"}}
	r := newTestRenderer(t, driver, WithMaxPrompts(2))

	_, err := r.Fill(context.Background(), wizard.New(applicationSchema()))
	require.ErrorIs(t, err, ErrTooManyPrompts)
}

func TestRenderer_FillAborted(t *testing.T) {
	r := newTestRenderer(t, &stubDriver{})
	_, err := r.Fill(context.Background(), wizard.New(applicationSchema()))
	require.ErrorIs(t, err, ErrAborted)
}

func TestRenderer_Edit(t *testing.T) {
	driver := &stubDriver{
		inputs:   []string{"Vehicles", "make", "Audi, BMW"},
		selects:  []int{0, 1, 2, 4, 4, 5, 0, 0, 5, 0, 4, 5, 0, 2, 7, 8},
		confirms: []bool{true},
	}
	r := newTestRenderer(t, driver)

	ed := editor.NewEmpty()
	require.NoError(t, r.Edit(context.Background(), ed))
	require.True(t, driver.exhausted())

	out := ed.Export()
	require.Len(t, out.Sections, 1)
	section := out.Sections[0]
	require.Equal(t, "Vehicles", section.Title)
	require.True(t, section.AllowMultipleEntries)
	require.Equal(t, []schema.Field{{
		Name:     "make",
		Label:    "Field 1",
		Required: true,
		Type:     schema.FieldTypeDropdown,
		Options:  []string{"Audi", "BMW"},
	}}, section.Fields)

	require.Equal(t, "No section selected", driver.infos[0])
	preview := driver.infos[len(driver.infos)-2]
	require.Contains(t, preview, `"Vehicles"`)
	require.Contains(t, preview, `"make"`)
}

func TestRenderer_EditDeleteSection(t *testing.T) {
	driver := &stubDriver{
		selects:  []int{3, 2},
		confirms: []bool{true},
	}
	r := newTestRenderer(t, driver)

	ed := editor.New()
	require.NoError(t, r.Edit(context.Background(), ed))
	require.Empty(t, ed.Sections())
	require.Equal(t, "", ed.ActiveID())
}

type mapTranslator map[string]string

func (m mapTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if val, ok := m[key]; ok {
		return val, nil
	}
	return "", errors.New("missing translation")
}
