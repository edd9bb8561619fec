package main

import (
	"fmt"

	"github.com/gatoreducator/gatorgrade/internal/checks"
	"github.com/spf13/cobra"
)

func newChecksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checks",
		Short: "List the available check types",
		Long: `List the check types that can be used in the "check" field of a
configuration file. Shell commands use the "command" field instead and run as
ExecuteCommand checks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := checks.NewDefaultRegistry(checks.Options{})
			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
