package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"chemquest/internal/catalog"
)

// NewSchemaCmd writes the boss catalogue JSON schema.
func NewSchemaCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Write the boss catalogue JSON schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				data, err := json.MarshalIndent(catalog.Schema(), "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return catalog.WriteSchema(out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (stdout when empty)")
	return cmd
}
