package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formwizard/pkg/registry"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

func newInspectCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List bundled presets, or describe the sections and fields of a schema.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v.GetString("preset") == "" && v.GetString("schema") == "" && v.GetString("openapi") == "" {
				presets, err := registry.Default()
				if err != nil {
					return err
				}
				writePresetTable(cmd.OutOrStdout(), presets.List())
				return nil
			}
			s, err := resolveSchema(cmd.Context(), v, newOrchestrator(v))
			if err != nil {
				return err
			}
			writeSchemaTable(cmd.OutOrStdout(), s)
			return nil
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func writePresetTable(w io.Writer, entries []registry.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Source", "Sections", "Fields"})
	table.SetAutoWrapText(false)
	for _, entry := range entries {
		fields := 0
		for _, section := range entry.Schema.Sections {
			fields += len(section.Fields)
		}
		location := ""
		if entry.Source != nil {
			location = entry.Source.Location()
		}
		table.Append([]string{
			entry.Name,
			location,
			strconv.Itoa(entry.Schema.Len()),
			strconv.Itoa(fields),
		})
	}
	table.Render()
}

func writeSchemaTable(w io.Writer, s schema.Schema) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Step", "Section", "Field", "Label", "Type", "Required", "Options"})
	table.SetAutoWrapText(false)
	for i, section := range s.Sections {
		title := section.Title
		if section.AllowMultipleEntries {
			title += " (multiple)"
		}
		for _, field := range section.Fields {
			required := ""
			if field.Required {
				required = "yes"
			}
			table.Append([]string{
				strconv.Itoa(i + 1),
				title,
				field.Name,
				field.Label,
				field.Type.String(),
				required,
				strings.Join(field.Options, ", "),
			})
		}
	}
	table.Render()
	fmt.Fprintf(w, "%d sections\n", s.Len())
	if shared := s.SharedNameCollisions(); len(shared) > 0 {
		fmt.Fprintf(w, "warning: single-entry sections share field names %s; their values overwrite each other\n", strings.Join(shared, ", "))
	}
}
