package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/backoffice-import/internal/application/importing"
	"github.com/mohammadpnp/backoffice-import/internal/bootstrap"
)

func newTemplateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template <domain>",
		Short: "Write the blank import workbook for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := bootstrap.NewRegistry()
			if err != nil {
				return err
			}

			out, err := app.NewExportTemplate(registry).Execute(cmd.Context(), app.ExportTemplateInput{Domain: args[0]})
			if err != nil {
				return err
			}
			if output == "" {
				output = out.FileName
			}
			if err := os.WriteFile(output, out.Content, 0o644); err != nil {
				return fmt.Errorf("write template: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"domain": args[0],
				"file":   output,
				"bytes":  len(out.Content),
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default <domain>_template.xlsx)")
	return cmd
}
