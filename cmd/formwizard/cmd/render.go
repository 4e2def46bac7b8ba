package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/render"
)

func newRenderCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the current wizard step after replaying answers and actions.",
		Example: `  formwizard render --preset insurance --set policy_number=P-1 --do next
  formwizard render --renderer tui --state session.json --do add-entry`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, v)
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().String("renderer", "vanilla", "renderer: vanilla or tui")
	cmd.Flags().StringArray("set", nil, "answer for the current step as name=value (repeatable)")
	cmd.Flags().StringArray("do", nil, "action to apply after answers: next, back, jump:N, add-entry, select-entry:N, remove-entry:N, toggle-drawer, toggle-minimize")
	cmd.Flags().String("state", "", "JSON file the session state is read from and written back to")
	cmd.Flags().Bool("compact", false, "use the compact (small viewport) layout")
	cmd.Flags().String("theme-manifest", "", "go-theme manifest (JSON or YAML) for the vanilla renderer")
	cmd.Flags().String("theme", "", "theme name to select from the manifest")
	cmd.Flags().String("variant", "", "theme variant to select")
	cmd.Flags().StringP("output", "o", "", "write the rendered step to a file")
	return cmd
}

func runRender(cmd *cobra.Command, v *viper.Viper) error {
	req, err := sourceRequest(v)
	if err != nil {
		return err
	}

	values, err := parseAssignments(v.GetStringSlice("set"))
	if err != nil {
		return err
	}
	statePath := v.GetString("state")
	st, err := readState(statePath)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}

	req.Values = values
	req.Actions = v.GetStringSlice("do")
	req.State = st
	req.Compact = v.GetBool("compact")
	req.Renderer = v.GetString("renderer")
	req.ThemeName = v.GetString("theme")
	req.ThemeVariant = v.GetString("variant")

	var options []orchestrator.Option
	if path := v.GetString("theme-manifest"); path != "" {
		manifest, err := render.LoadManifest(path)
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithThemeSelector(render.NewSelector(req.ThemeVariant, manifest)))
	}

	result, err := newOrchestrator(v, options...).Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	logging.Debug().
		Str("renderer", result.Renderer).
		Int("step", result.Snapshot.Step).
		Bool("valid", result.Snapshot.Valid).
		Msg("rendered step")

	if err := writeState(statePath, result.State); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return writeOutput(cmd, v.GetString("output"), result.Output)
}

// parseAssignments turns name=value pairs into form values. Repeating a name
// keeps the last value.
func parseAssignments(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := url.Values{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", pair)
		}
		values.Set(name, value)
	}
	return values, nil
}
