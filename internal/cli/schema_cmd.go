package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pathnottaken-go/internal/model"
)

func newSchemaCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the request or result",
		RunE: func(cmd *cobra.Command, args []string) error {
			var schema any
			switch kind {
			case "all":
				schema = map[string]any{
					"request": model.RequestSchema(),
					"result":  model.ResultSchema(),
				}
			case "request":
				schema = model.RequestSchema()
			case "result":
				schema = model.ResultSchema()
			default:
				return fmt.Errorf("unknown schema kind %q, expected all, request or result", kind)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(schema)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "all", "Which schema to print: all, request or result")
	return cmd
}
