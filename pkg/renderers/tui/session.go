package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// DateLayout is the accepted format of date answers.
const DateLayout = "2006-01-02"

var (
	errNotANumber = errors.New("enter a number")
	errNotADate   = errors.New("enter a date as YYYY-MM-DD")
)

type fieldPrompt func(ctx context.Context, r *Renderer, field wizard.FieldView, label string) (wizard.Input, error)

// fieldPrompts holds one prompt strategy per field kind.
var fieldPrompts = map[schema.FieldType]fieldPrompt{
	schema.FieldTypeText:     promptText(nil),
	schema.FieldTypeNumber:   promptText(validateNumber),
	schema.FieldTypeDate:     promptText(validateDate),
	schema.FieldTypeCheckbox: promptCheckbox,
	schema.FieldTypeDropdown: promptDropdown,
}

type menuKind int

const (
	menuNext menuKind = iota
	menuSubmit
	menuBack
	menuEdit
	menuJump
	menuAddEntry
	menuSelectEntry
	menuRemoveEntry
)

type menuItem struct {
	label string
	kind  menuKind
}

// Fill runs the wizard in the terminal: every pass prompts the fields of the
// current step and then offers the navigation menu. The session ends when the
// last step is submitted and returns the collected answers.
func (r *Renderer) Fill(ctx context.Context, c *wizard.Controller) ([]wizard.SectionValues, error) {
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	r.prompts = 0
	labels := render.LocalizeLabels(r.sessionOpts)

	for {
		if err := r.promptStep(ctx, c); err != nil {
			return nil, err
		}

		snap := r.localized(c.Snapshot())
		if !snap.Valid {
			if err := r.info(ctx, r.theme.ErrorPrefix+missingSummary(snap, labels)); err != nil {
				return nil, err
			}
		}

		items := stepMenu(snap, labels)
		choice, err := r.choose(ctx, SelectConfig{Message: snap.Title, Options: menuLabels(items)})
		if err != nil {
			return nil, err
		}
		item := items[choice]

		switch item.kind {
		case menuSubmit:
			c.Advance()
			r.logger.Debug().Int("step", snap.Step).Msg("tui submit")
			return c.Collect(), nil
		case menuNext:
			r.apply(c, render.Action{Name: render.ActionNext})
		case menuBack:
			r.apply(c, render.Action{Name: render.ActionBack})
		case menuAddEntry:
			r.apply(c, render.Action{Name: render.ActionAddEntry})
		case menuJump:
			target, err := r.choose(ctx, SelectConfig{Message: labels.Sections, Options: stepTitles(snap), DefaultIndex: snap.Step})
			if err != nil {
				return nil, err
			}
			r.apply(c, render.Action{Name: render.ActionJump, Index: target})
		case menuSelectEntry, menuRemoveEntry:
			active := 0
			for _, entry := range snap.Entries {
				if entry.Active {
					active = entry.Position
				}
			}
			index, err := r.choose(ctx, SelectConfig{Message: item.label, Options: entryLabels(snap), DefaultIndex: active})
			if err != nil {
				return nil, err
			}
			name := render.ActionSelectEntry
			if item.kind == menuRemoveEntry {
				name = render.ActionRemoveEntry
			}
			r.apply(c, render.Action{Name: name, Index: index})
		}
	}
}

func (r *Renderer) promptStep(ctx context.Context, c *wizard.Controller) error {
	snap := r.localized(c.Snapshot())
	header := fmt.Sprintf("%s%s (%d/%d)", r.theme.InfoPrefix, snap.Title, snap.Step+1, len(snap.Steps))
	for _, entry := range snap.Entries {
		if entry.Active {
			header += " - " + entryLabel(snap.Title, entry.Position)
		}
	}
	if err := r.info(ctx, header); err != nil {
		return err
	}

	for _, field := range snap.Fields {
		prompt, ok := fieldPrompts[field.Kind.Kind()]
		if !ok {
			prompt = fieldPrompts[schema.FieldTypeText]
		}
		label := field.Label
		if field.Required {
			label += " *"
		}
		in, err := prompt(ctx, r, field, label)
		if err != nil {
			return err
		}
		c.SetField(field.Name, in)
	}
	return nil
}

func (r *Renderer) apply(c *wizard.Controller, action render.Action) {
	render.ApplyAction(c, action)
	r.logger.Debug().Str("action", action.String()).Int("step", c.Step()).Msg("tui action")
}

func (r *Renderer) localized(snap wizard.Snapshot) wizard.Snapshot {
	render.LocalizeSnapshot(&snap, r.sessionOpts)
	return snap
}

func stepMenu(snap wizard.Snapshot, labels render.Labels) []menuItem {
	var items []menuItem
	if snap.Valid {
		if snap.Last {
			items = append(items, menuItem{label: labels.Submit, kind: menuSubmit})
		} else {
			items = append(items, menuItem{label: labels.Next, kind: menuNext})
		}
	}
	if !snap.First {
		items = append(items, menuItem{label: labels.Back, kind: menuBack})
	}
	items = append(items, menuItem{label: "Edit answers", kind: menuEdit})
	if snap.Multiple {
		items = append(items, menuItem{label: labels.AddEntry + " " + snap.Title, kind: menuAddEntry})
		if len(snap.Entries) > 1 {
			items = append(items, menuItem{label: "Switch entry", kind: menuSelectEntry})
		}
		items = append(items, menuItem{label: labels.RemoveEntry + " entry", kind: menuRemoveEntry})
	}
	items = append(items, menuItem{label: labels.Sections, kind: menuJump})
	return items
}

func menuLabels(items []menuItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.label
	}
	return out
}

func stepTitles(snap wizard.Snapshot) []string {
	out := make([]string, len(snap.Steps))
	for i, step := range snap.Steps {
		title := step.Title
		if step.Complete {
			title += " ✓"
		}
		out[i] = title
	}
	return out
}

func entryLabels(snap wizard.Snapshot) []string {
	out := make([]string, len(snap.Entries))
	for i, entry := range snap.Entries {
		out[i] = entryLabel(snap.Title, entry.Position)
	}
	return out
}

func missingSummary(snap wizard.Snapshot, labels render.Labels) string {
	var missing []string
	for _, field := range snap.Fields {
		if field.Required && !field.Filled {
			missing = append(missing, field.Label)
		}
	}
	if len(missing) == 0 {
		return labels.Required
	}
	return "Missing required fields: " + strings.Join(missing, ", ")
}

func promptText(validate func(string) error) fieldPrompt {
	return func(ctx context.Context, r *Renderer, field wizard.FieldView, label string) (wizard.Input, error) {
		var validator func(string) error
		if validate != nil {
			validator = func(text string) error {
				if strings.TrimSpace(text) == "" {
					return nil
				}
				return validate(text)
			}
		}
		for {
			text, err := r.input(ctx, InputConfig{Message: label, Default: field.Text, Validator: validator})
			if err != nil {
				return wizard.Input{}, err
			}
			if validator != nil {
				if err := validator(text); err != nil {
					if err := r.info(ctx, r.theme.ErrorPrefix+err.Error()); err != nil {
						return wizard.Input{}, err
					}
					continue
				}
			}
			return wizard.TextInput(strings.TrimSpace(text)), nil
		}
	}
}

func promptCheckbox(ctx context.Context, r *Renderer, field wizard.FieldView, label string) (wizard.Input, error) {
	checked, err := r.confirm(ctx, ConfirmConfig{Message: label, Default: field.Checked})
	if err != nil {
		return wizard.Input{}, err
	}
	return wizard.CheckedInput(checked), nil
}

func promptDropdown(ctx context.Context, r *Renderer, field wizard.FieldView, label string) (wizard.Input, error) {
	if len(field.Options) == 0 {
		return wizard.TextInput(field.Text), nil
	}
	def := indexOf(field.Options, field.Text)
	if def < 0 {
		def = 0
	}
	idx, err := r.choose(ctx, SelectConfig{Message: label, Options: field.Options, DefaultIndex: def})
	if err != nil {
		return wizard.Input{}, err
	}
	return wizard.TextInput(field.Options[idx]), nil
}

func validateNumber(text string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil {
		return errNotANumber
	}
	return nil
}

func validateDate(text string) error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(text)); err != nil {
		return errNotADate
	}
	return nil
}

func sortedNames(values wizard.Values) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Renderer) count() error {
	r.prompts++
	if r.maxPrompts > 0 && r.prompts > r.maxPrompts {
		return ErrTooManyPrompts
	}
	return nil
}

func (r *Renderer) input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := r.count(); err != nil {
		return "", err
	}
	return r.driver.Input(ctx, cfg)
}

func (r *Renderer) confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := r.count(); err != nil {
		return false, err
	}
	return r.driver.Confirm(ctx, cfg)
}

// choose runs a select prompt and rejects indexes outside the options.
func (r *Renderer) choose(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := r.count(); err != nil {
		return 0, err
	}
	idx, err := r.driver.Select(ctx, cfg)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(cfg.Options) {
		return 0, fmt.Errorf("tui: selection %d outside %d options", idx, len(cfg.Options))
	}
	return idx, nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}
