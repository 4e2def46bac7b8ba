package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/editor"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
)

func newEditCommand(v *viper.Viper, d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a wizard schema interactively and export it as JSON.",
		Long: `edit opens the schema editor. Without a source flag it starts from the
seeded "Cover Details" section; --empty starts with no sections.

The result is written to --output, to --dir as form-definition.json, copied to
the clipboard with --copy, or printed to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEdit(cmd, v, d)
		},
	}
	cmd.Flags().String("preset", "", "start from a bundled preset")
	cmd.Flags().String("schema", "", "start from a JSON or YAML schema file")
	cmd.Flags().String("openapi", "", "start from an OpenAPI document path or URL")
	cmd.Flags().String("operation", "", "operation id to import with --openapi")
	cmd.Flags().Bool("empty", false, "start without sections")
	cmd.Flags().String("dir", "", "write form-definition.json into this directory")
	cmd.Flags().Bool("copy", false, "copy the exported JSON to the clipboard")
	cmd.Flags().StringP("output", "o", "", "write the exported JSON to a file")
	return cmd
}

func runEdit(cmd *cobra.Command, v *viper.Viper, d deps) error {
	ctx := cmd.Context()
	opts := []editor.Option{editor.WithLogger(logging.Logger)}

	var ed *editor.Editor
	switch {
	case v.GetString("preset") != "" || v.GetString("schema") != "" || v.GetString("openapi") != "":
		s, err := resolveSchema(ctx, v, newOrchestrator(v))
		if err != nil {
			return err
		}
		ed = editor.NewEmpty(opts...)
		ed.Import(s)
	case v.GetBool("empty"):
		ed = editor.NewEmpty(opts...)
	default:
		ed = editor.New(opts...)
	}

	driver := d.driver
	if driver == nil {
		driver = tui.NewSurveyDriver(cmd.ErrOrStderr())
	}
	r, err := tui.New(tui.WithPromptDriver(driver), tui.WithLogger(logging.Logger))
	if err != nil {
		return err
	}
	if err := r.Edit(ctx, ed); err != nil {
		return err
	}

	written := false
	if dir := v.GetString("dir"); dir != "" {
		path, err := ed.Download(dir)
		if err != nil {
			return err
		}
		logging.Info().Str("path", path).Msg("schema written")
		written = true
	}
	if v.GetBool("copy") {
		cb := d.clipboard
		if cb == nil {
			cb = editor.SystemClipboard{}
		}
		if err := ed.CopyJSON(cb); err != nil {
			return err
		}
		written = true
	}
	if path := v.GetString("output"); path != "" || !written {
		text, err := ed.ExportJSON()
		if err != nil {
			return err
		}
		return writeOutput(cmd, path, []byte(text))
	}
	return nil
}
