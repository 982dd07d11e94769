package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/githubnext/spawncheck/pkg/console"
	"github.com/githubnext/spawncheck/pkg/constants"
	"github.com/githubnext/spawncheck/pkg/schema"
	"github.com/spf13/cobra"
)

// PrintSchema writes the registry entry of kind in the given format
func PrintSchema(w io.Writer, kind schema.Kind, format string) error {
	out, err := schema.Encode(kind, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, err = fmt.Fprintln(w)
	}
	return err
}

// NewSchemaCommand creates the schema command
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <zones|tiers>",
		Short: "Print the required fields of a configuration type",
		Long: `Print the required fields of a configuration type.

Formats:
  yaml        field tables (default)
  json        the same tables as JSON
  jsonschema  a JSON Schema that rejects undeclared fields

Examples:
  ` + constants.CLIName + ` schema zones
  ` + constants.CLIName + ` schema tiers --format jsonschema`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			format, _ := cmd.Flags().GetString("format")
			kind, err := schema.ParseKind(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				os.Exit(1)
			}
			if err := PrintSchema(os.Stdout, kind, format); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json, jsonschema)")
	return cmd
}
