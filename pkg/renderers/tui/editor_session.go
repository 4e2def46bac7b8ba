package tui

import (
	"context"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/editor"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

type editorAction string

const (
	editAddSection    editorAction = "Add section"
	editSelectSection editorAction = "Select section"
	editRenameSection editorAction = "Rename section"
	editToggleMulti   editorAction = "Toggle multiple entries"
	editDeleteSection editorAction = "Delete section"
	editAddField      editorAction = "Add field"
	editField         editorAction = "Edit field"
	editDeleteField   editorAction = "Delete field"
	editMoveSection   editorAction = "Move section"
	editMoveField     editorAction = "Move field"
	editPreview       editorAction = "Preview JSON"
	editDone          editorAction = "Done"
)

var fieldPropertyLabels = []struct {
	label    string
	property editor.FieldProperty
}{
	{"Name", editor.FieldName},
	{"Label", editor.FieldLabel},
	{"Required", editor.FieldRequired},
	{"Type", editor.FieldTypeProp},
	{"Options", editor.FieldOptions},
}

// Edit runs the schema editor menu until the user picks Done. Changes are
// applied to ed as they are made.
func (r *Renderer) Edit(ctx context.Context, ed *editor.Editor) error {
	if r.driver == nil {
		return ErrNoDriver
	}
	if ed == nil {
		return nil
	}
	r.prompts = 0

	for {
		active, hasActive := ed.ActiveSection()
		header := r.theme.InfoPrefix + "No section selected"
		if hasActive {
			header = r.theme.InfoPrefix + describeSection(active)
		}
		if err := r.info(ctx, header); err != nil {
			return err
		}

		actions := editorMenu(ed.Sections(), active, hasActive)
		choice, err := r.choose(ctx, SelectConfig{Message: "Schema editor", Options: editorLabels(actions)})
		if err != nil {
			return err
		}
		action := actions[choice]
		r.logger.Debug().Str("action", string(action)).Str("section", active.ID).Msg("tui editor action")

		switch action {
		case editDone:
			return nil
		case editAddSection:
			ed.AddSection()
		case editSelectSection:
			sections := ed.Sections()
			idx, err := r.choose(ctx, SelectConfig{Message: string(action), Options: sectionTitles(sections)})
			if err != nil {
				return err
			}
			if err := ed.SelectSection(sections[idx].ID); err != nil {
				return err
			}
		case editRenameSection:
			title, err := r.input(ctx, InputConfig{Message: "Title", Default: active.Title})
			if err != nil {
				return err
			}
			if err := ed.UpdateSection(active.ID, editor.SectionTitle, strings.TrimSpace(title)); err != nil {
				return err
			}
		case editToggleMulti:
			if err := ed.UpdateSection(active.ID, editor.SectionAllowMultiple, !active.AllowMultipleEntries); err != nil {
				return err
			}
		case editDeleteSection:
			ok, err := r.confirm(ctx, ConfirmConfig{Message: "Delete " + active.Title + "?"})
			if err != nil {
				return err
			}
			if ok {
				if err := ed.DeleteSection(active.ID); err != nil {
					return err
				}
			}
		case editAddField:
			kinds := schema.FieldTypes()
			idx, err := r.choose(ctx, SelectConfig{Message: "Field type", Options: typeNames(kinds)})
			if err != nil {
				return err
			}
			ed.AddField(active.ID, kinds[idx])
		case editField:
			if err := r.editField(ctx, ed, active); err != nil {
				return err
			}
		case editDeleteField:
			idx, err := r.choose(ctx, SelectConfig{Message: string(action), Options: fieldLabels(active.Fields)})
			if err != nil {
				return err
			}
			if err := ed.DeleteField(active.Fields[idx].ID); err != nil {
				return err
			}
		case editMoveSection:
			if err := r.move(ctx, ed, editor.ListSections, sectionTitles(ed.Sections())); err != nil {
				return err
			}
		case editMoveField:
			if err := r.move(ctx, ed, editor.ListFields, fieldLabels(active.Fields)); err != nil {
				return err
			}
		case editPreview:
			out, err := ed.ExportJSON()
			if err != nil {
				out = r.theme.ErrorPrefix + err.Error()
			}
			if err := r.info(ctx, out); err != nil {
				return err
			}
		}
	}
}

func (r *Renderer) editField(ctx context.Context, ed *editor.Editor, section editor.Section) error {
	idx, err := r.choose(ctx, SelectConfig{Message: string(editField), Options: fieldLabels(section.Fields)})
	if err != nil {
		return err
	}
	field := section.Fields[idx]

	names := make([]string, len(fieldPropertyLabels))
	for i, entry := range fieldPropertyLabels {
		names[i] = entry.label
	}
	prop, err := r.choose(ctx, SelectConfig{Message: field.Label, Options: names})
	if err != nil {
		return err
	}
	property := fieldPropertyLabels[prop].property

	var value any
	switch property {
	case editor.FieldRequired:
		value, err = r.confirm(ctx, ConfirmConfig{Message: "Required", Default: field.Required})
	case editor.FieldTypeProp:
		kinds := schema.FieldTypes()
		var kind int
		kind, err = r.choose(ctx, SelectConfig{Message: "Field type", Options: typeNames(kinds), DefaultIndex: indexOf(typeNames(kinds), field.Type.String())})
		if err == nil {
			value = kinds[kind]
		}
	case editor.FieldOptions:
		var raw string
		raw, err = r.input(ctx, InputConfig{Message: "Options (comma separated)", Default: strings.Join(field.Options, ", ")})
		value = editor.ParseOptions(raw)
	case editor.FieldName:
		value, err = r.input(ctx, InputConfig{Message: "Name", Default: field.Name})
	default:
		value, err = r.input(ctx, InputConfig{Message: "Label", Default: field.Label})
	}
	if err != nil {
		return err
	}
	return ed.UpdateField(field.ID, property, value)
}

func (r *Renderer) move(ctx context.Context, ed *editor.Editor, kind editor.ListKind, items []string) error {
	src, err := r.choose(ctx, SelectConfig{Message: "Move", Options: items})
	if err != nil {
		return err
	}
	dst, err := r.choose(ctx, SelectConfig{Message: "To position", Options: items, DefaultIndex: src})
	if err != nil {
		return err
	}
	ed.Reorder(kind, src, dst)
	return nil
}

func editorMenu(sections []editor.Section, active editor.Section, hasActive bool) []editorAction {
	actions := []editorAction{editAddSection}
	if len(sections) > 1 {
		actions = append(actions, editSelectSection, editMoveSection)
	}
	if hasActive {
		actions = append(actions, editRenameSection, editToggleMulti, editDeleteSection, editAddField)
		if len(active.Fields) > 0 {
			actions = append(actions, editField, editDeleteField)
		}
		if len(active.Fields) > 1 {
			actions = append(actions, editMoveField)
		}
	}
	return append(actions, editPreview, editDone)
}

func editorLabels(actions []editorAction) []string {
	out := make([]string, len(actions))
	for i, action := range actions {
		out[i] = string(action)
	}
	return out
}

func describeSection(section editor.Section) string {
	var b strings.Builder
	b.WriteString(section.Title)
	if section.AllowMultipleEntries {
		b.WriteString(" (multiple entries)")
	}
	for _, field := range section.Fields {
		b.WriteString("\n  - ")
		b.WriteString(field.Label)
		b.WriteString(" [")
		b.WriteString(field.Name)
		b.WriteString(", ")
		b.WriteString(field.Type.String())
		if field.Required {
			b.WriteString(", required")
		}
		b.WriteString("]")
	}
	return b.String()
}

func sectionTitles(sections []editor.Section) []string {
	out := make([]string, len(sections))
	for i, section := range sections {
		out[i] = section.Title
	}
	return out
}

func fieldLabels(fields []editor.Field) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = field.Label + " (" + field.Name + ")"
	}
	return out
}

func typeNames(kinds []schema.FieldType) []string {
	out := make([]string, len(kinds))
	for i, kind := range kinds {
		out[i] = kind.String()
	}
	return out
}
