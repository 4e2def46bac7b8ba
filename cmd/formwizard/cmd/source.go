package cmd

import (
	"context"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	formwizard "github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/internal/logging"
	pkgopenapi "github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const defaultPreset = "insurance"

// addSourceFlags registers the flags every schema-consuming command shares.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("preset", "", "bundled preset name (default \""+defaultPreset+"\" when no other source is given)")
	cmd.Flags().String("schema", "", "path to a JSON or YAML wizard schema")
	cmd.Flags().String("openapi", "", "OpenAPI document path or http(s) URL")
	cmd.Flags().String("operation", "", "operation id whose request body becomes the wizard")
}

// sourceRequest fills the schema fields of an orchestrator request from the
// bound flags, falling back to the default preset.
func sourceRequest(v *viper.Viper) (orchestrator.Request, error) {
	req := orchestrator.Request{
		Preset:      strings.TrimSpace(v.GetString("preset")),
		SchemaPath:  strings.TrimSpace(v.GetString("schema")),
		OperationID: strings.TrimSpace(v.GetString("operation")),
	}
	if location := strings.TrimSpace(v.GetString("openapi")); location != "" {
		src, err := pkgopenapi.ParseSource(location)
		if err != nil {
			return orchestrator.Request{}, err
		}
		req.OpenAPI = src
	}
	if req.Preset == "" && req.SchemaPath == "" && req.OpenAPI == nil {
		req.Preset = defaultPreset
	}
	return req, nil
}

func resolveSchema(ctx context.Context, v *viper.Viper, o *orchestrator.Orchestrator) (schema.Schema, error) {
	req, err := sourceRequest(v)
	if err != nil {
		return schema.Schema{}, err
	}
	return o.ResolveSchema(ctx, req)
}

// newOrchestrator builds an orchestrator whose loader may fetch remote
// OpenAPI documents within the configured timeout.
func newOrchestrator(v *viper.Viper, options ...orchestrator.Option) *orchestrator.Orchestrator {
	loader := formwizard.NewLoader(pkgopenapi.WithHTTPFallback(v.GetDuration("http-timeout")))
	base := []orchestrator.Option{
		orchestrator.WithLogger(logging.Logger),
		orchestrator.WithLoader(loader),
	}
	return orchestrator.New(append(base, options...)...)
}

func readState(path string) (*wizard.State, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var st wizard.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func writeState(path string, st wizard.State) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// writeOutput writes to the named file, or to the command's stdout when the
// path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logging.Info().Str("path", path).Int("bytes", len(data)).Msg("wrote output")
	return nil
}
