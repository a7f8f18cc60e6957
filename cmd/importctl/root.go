package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "importctl",
		Short:         "Preview and commit back-office spreadsheet imports",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(newTemplateCmd())
	cmd.AddCommand(newRunCmd())
	return cmd
}
