package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func newFillCommand(v *viper.Viper, d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a wizard interactively and print the collected answers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFill(cmd, v, d.driver)
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().String("format", string(tui.OutputFormatPrettyText), "answer format: pretty or json")
	cmd.Flags().String("state", "", "JSON file to resume from; the final state is written back")
	cmd.Flags().Int("max-prompts", 0, "abort after this many prompts (0 for no limit)")
	cmd.Flags().StringP("output", "o", "", "write the answers to a file")
	return cmd
}

// runFill drives the session with driver, or with the survey driver on the
// command's streams when driver is nil.
func runFill(cmd *cobra.Command, v *viper.Viper, driver tui.PromptDriver) error {
	ctx := cmd.Context()
	s, err := resolveSchema(ctx, v, newOrchestrator(v))
	if err != nil {
		return err
	}

	statePath := v.GetString("state")
	st, err := readState(statePath)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	opts := []wizard.Option{wizard.WithLogger(logging.Logger)}
	if st != nil {
		opts = append(opts, wizard.WithState(*st))
	}
	c := wizard.New(s, opts...)

	if driver == nil {
		driver = tui.NewSurveyDriver(cmd.ErrOrStderr())
	}
	r, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormat(v.GetString("format"))),
		tui.WithMaxPrompts(v.GetInt("max-prompts")),
		tui.WithLogger(logging.Logger),
	)
	if err != nil {
		return err
	}

	values, err := r.Fill(ctx, c)
	if stateErr := writeState(statePath, c.State()); stateErr != nil {
		logging.Warn().Err(stateErr).Str("path", statePath).Msg("could not save session state")
	}
	if err != nil {
		return err
	}

	out, err := r.Serialize(values)
	if err != nil {
		return err
	}
	return writeOutput(cmd, v.GetString("output"), out)
}
