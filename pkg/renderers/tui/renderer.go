package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Renderer implements render.Renderer for terminals and runs interactive
// wizard and editor sessions over a PromptDriver.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	logger       zerolog.Logger
	sessionOpts  render.RenderOptions
	maxPrompts   int
	prompts      int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, pretty output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatPrettyText,
		logger:       zerolog.Nop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// Render describes the current step: the snapshot as JSON, or a text summary
// with the step list, entry tabs and a table of field answers.
func (r *Renderer) Render(ctx context.Context, snap wizard.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	local := snap
	local.Steps = append([]wizard.StepView(nil), snap.Steps...)
	local.Fields = append([]wizard.FieldView(nil), snap.Fields...)
	render.LocalizeSnapshot(&local, opts)
	labels := render.LocalizeLabels(opts)

	if r.outputFormat == OutputFormatJSON {
		out, err := json.MarshalIndent(local, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode snapshot: %w", err)
		}
		return out, nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s (%d/%d)\n", local.Title, local.Step+1, len(local.Steps))
	for _, step := range local.Steps {
		marker := " "
		switch {
		case step.Current:
			marker = ">"
		case step.Complete:
			marker = "x"
		}
		fmt.Fprintf(&buf, "  [%s] %s\n", marker, step.Title)
	}
	if local.Multiple {
		tabs := make([]string, 0, len(local.Entries))
		for _, entry := range local.Entries {
			tab := entryLabel(local.Title, entry.Position)
			if entry.Active {
				tab = "*" + tab + "*"
			}
			tabs = append(tabs, tab)
		}
		fmt.Fprintf(&buf, "%s\n", strings.Join(tabs, " | "))
	}

	errs := render.StepErrors(local, opts, labels)
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Field", "Value", "Required", "Messages"})
	table.SetAutoWrapText(false)
	for _, field := range local.Fields {
		required := ""
		if field.Required {
			required = labels.Yes
		}
		table.Append([]string{
			field.Label,
			displayValue(field, labels),
			required,
			strings.Join(errs.Fields[field.Name], "; "),
		})
	}
	table.Render()

	for _, message := range errs.Form {
		fmt.Fprintf(&buf, "%s%s\n", r.theme.ErrorPrefix, message)
	}
	return buf.Bytes(), nil
}

// Serialize encodes collected values in the configured output format.
func (r *Renderer) Serialize(values []wizard.SectionValues) ([]byte, error) {
	if r.outputFormat == OutputFormatJSON {
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return out, nil
	}

	var buf bytes.Buffer
	for _, section := range values {
		for i, entry := range section.Entries {
			title := section.Title
			if section.Multiple {
				title = entryLabel(section.Title, i)
			}
			fmt.Fprintf(&buf, "%s\n", title)
			for _, name := range sortedNames(entry) {
				fmt.Fprintf(&buf, "  %s: %s\n", name, entry[name].String())
			}
		}
	}
	return buf.Bytes(), nil
}

func displayValue(field wizard.FieldView, labels render.Labels) string {
	if field.Kind.Kind() == schema.FieldTypeCheckbox {
		if !field.Filled {
			return ""
		}
		if field.Checked {
			return labels.Yes
		}
		return labels.No
	}
	return field.Text
}

func entryLabel(title string, position int) string {
	return title + " " + strconv.Itoa(position+1)
}
