package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/editor"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
)

const envPrefix = "FORMWIZARD"

type rootOpts struct {
	cfgFile  string
	logLevel string
}

var longRootDescription = `formwizard runs schema-driven multi-step forms in the terminal,
renders individual wizard steps as HTML or text, and edits wizard schemas.

Schemas come from a bundled preset, a JSON or YAML file, or the request body
of an OpenAPI operation.
`

// deps are the interactive collaborators commands use. Zero values select the
// survey prompts and the system clipboard.
type deps struct {
	driver    tui.PromptDriver
	clipboard editor.Clipboard
}

// NewRootCommand assembles the command tree. Each call returns a fresh tree
// with its own viper instance.
func NewRootCommand() *cobra.Command {
	return newRootCommand(deps{})
}

func newRootCommand(d deps) *cobra.Command {
	opts := &rootOpts{}
	v := viper.New()

	root := &cobra.Command{
		Use:           "formwizard",
		Short:         "Fill, render and edit multi-section form wizards.",
		Long:          longRootDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v, opts); err != nil {
				return err
			}
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			logging.Configure(cmd.ErrOrStderr(), v.GetString("log-level"), os.Stderr.Fd())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.formwizard.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error, off")
	root.PersistentFlags().Duration("http-timeout", 30*time.Second, "timeout for fetching remote OpenAPI documents")
	_ = v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("http-timeout", root.PersistentFlags().Lookup("http-timeout"))

	root.AddCommand(
		newFillCommand(v, d),
		newRenderCommand(v),
		newEditCommand(v, d),
		newExportCommand(v),
		newInspectCommand(v),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "formwizard: %v\n", err)
		os.Exit(1)
	}
}

// initConfig reads the config file and FORMWIZARD_* environment variables.
// A missing default config file is not an error.
func initConfig(v *viper.Viper, opts *rootOpts) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.cfgFile != "" {
		v.SetConfigFile(opts.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", opts.cfgFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.SetConfigFile(filepath.Join(home, ".formwizard.yaml"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	logging.Debug().Str("config", v.ConfigFileUsed()).Msg("loaded config file")
	return nil
}
