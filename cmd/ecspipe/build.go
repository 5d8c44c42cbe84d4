package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeavatar1/ecspipe/internal/template"
)

func newBuildCmd() *cobra.Command {
	var (
		configPath   string
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Synthesize the CloudFormation template",
		Long: `Build synthesizes the release pipeline topology into a CloudFormation
template.

Examples:
    ecspipe build
    ecspipe build -o template.json
    ecspipe build --format yaml -c prod.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(configPath, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Environment config file (TOML)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runBuild(configPath, format, outputFile string) error {
	_, syn, err := synthesize(configPath)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = template.EncodeJSON(syn.Template)
	case "yaml":
		data, err = template.EncodeYAML(syn.Template)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	return writeOutput(data, outputFile)
}
