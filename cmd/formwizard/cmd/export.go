package cmd

import (
	"bytes"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

func newExportCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a schema as canonical JSON or YAML.",
		Long: `export resolves a schema from a preset, a file or an OpenAPI operation and
writes it in the exchange format. Importing an operation this way gives a
starting point for hand edits.`,
		Example: `  formwizard export --preset insurance
  formwizard export --openapi api.yaml --operation createQuote -o quote.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSchema(cmd.Context(), v, newOrchestrator(v))
			if err != nil {
				return err
			}
			if shared := s.SharedNameCollisions(); len(shared) > 0 {
				logging.Warn().Strs("fields", shared).Msg("single-entry sections share field names")
			}
			out, err := encodeSchema(s, v.GetString("format"))
			if err != nil {
				return err
			}
			return writeOutput(cmd, v.GetString("output"), out)
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().String("format", "json", "output format: json or yaml")
	cmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	return cmd
}

func encodeSchema(s schema.Schema, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := schema.EncodeJSON(&buf, s); err != nil {
		return nil, err
	}
	if format != "yaml" {
		return buf.Bytes(), nil
	}
	// Decode into a node so YAML keeps the document's section order.
	var node yaml.Node
	if err := yaml.Unmarshal(buf.Bytes(), &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

// blockStyle clears the flow and quoting styles JSON input carries.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
