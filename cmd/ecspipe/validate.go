package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeavatar1/ecspipe/internal/validation"
)

func newValidateCmd() *cobra.Command {
	var (
		configPath   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run structural checks on the topology",
		Long: `Validate synthesizes the topology and checks the structural rules the
provider cannot enforce before deployment: listener bindings, the blue/green
target group pair, deployment group ownership and pipeline stage order.

Examples:
    ecspipe validate
    ecspipe validate --format json -c prod.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(configPath, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Environment config file (TOML)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runValidate(configPath, format string) error {
	_, syn, err := synthesize(configPath)
	if err != nil {
		return err
	}

	issues := validation.Check(syn)
	result := validation.Summarize(syn, issues)

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "text":
		for _, issue := range issues {
			fmt.Println(issue.String())
		}
		if result.Success {
			fmt.Printf("OK: %d resources\n", result.Resources)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		return fmt.Errorf("validation failed with %d errors", len(result.Errors))
	}
	return nil
}
