package main

import (
	"fmt"

	"github.com/gatoreducator/gatorgrade/internal/checks"
	"github.com/gatoreducator/gatorgrade/internal/config"
	"github.com/gatoreducator/gatorgrade/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file without running it",
		Long: `Validate the configuration file named by --config against the
configuration schema and check that every check type it uses exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return validateConfig(cmd, path)
		},
	}
}

func validateConfig(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	problems, err := validation.ValidateConfigFile(path)
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		registry := checks.NewDefaultRegistry(checks.Options{})
		for _, spec := range cfg.Checks {
			if _, err := registry.Resolve(spec.CheckType); err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", spec.DisplayName(), err))
			}
		}

		if len(problems) == 0 {
			fmt.Fprintf(out, "✓ %s is valid (%d check(s))\n", path, len(cfg.Checks))
			return nil
		}
	}

	fmt.Fprintf(out, "✗ %s has %d problem(s):\n", path, len(problems))
	for _, p := range problems {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	return fmt.Errorf("%s is not valid", path)
}
