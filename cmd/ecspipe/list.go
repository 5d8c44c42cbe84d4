package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	ecspipe "github.com/codeavatar1/ecspipe"
)

func newListCmd() *cobra.Command {
	var (
		configPath   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the declared resources",
		Long: `List prints every resource in the topology in dependency order.

Examples:
    ecspipe list
    ecspipe list --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(configPath, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Environment config file (TOML)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(configPath, format string) error {
	_, syn, err := synthesize(configPath)
	if err != nil {
		return err
	}

	result := ecspipe.ListResult{}
	for _, name := range syn.Order {
		result.Resources = append(result.Resources, ecspipe.ListResource{
			Name: name,
			Type: syn.Template.Resources[name].Type,
		})
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "text":
		for _, res := range result.Resources {
			fmt.Printf("%-24s %s\n", res.Name, res.Type)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}
