package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeavatar1/ecspipe/internal/validation"
)

func newLintCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Run cfn-lint on the synthesized template",
		Long: `Lint synthesizes the template and runs cfn-lint against it.

Warnings are reported but do not fail the command; errors do.

Examples:
    ecspipe lint
    ecspipe lint -c prod.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Environment config file (TOML)")

	return cmd
}

func runLint(configPath string) error {
	_, syn, err := synthesize(configPath)
	if err != nil {
		return err
	}

	result, err := validation.LintTemplate(syn)
	if err != nil {
		return err
	}

	for _, msg := range result.Errors {
		fmt.Printf("ERROR %s\n", msg)
	}
	for _, msg := range result.Warnings {
		fmt.Printf("WARN  %s\n", msg)
	}
	for _, msg := range result.Informational {
		fmt.Printf("INFO  %s\n", msg)
	}

	if !result.Passed {
		return fmt.Errorf("lint failed with %d errors", len(result.Errors))
	}
	if result.TotalIssues() == 0 {
		fmt.Println("OK: no issues")
	}
	return nil
}
