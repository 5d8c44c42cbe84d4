package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeavatar1/ecspipe/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		configPath    string
		outputFormat  string
		outputFile    string
		includeParams bool
		cluster       bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the resource dependency graph",
		Long: `Graph renders the topology's dependency graph.

Examples:
    ecspipe graph
    ecspipe graph --format mermaid
    ecspipe graph --cluster -o graph.dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(configPath, outputFormat, outputFile, includeParams, cluster)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Environment config file (TOML)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&includeParams, "parameters", false, "Include parameter nodes")
	cmd.Flags().BoolVar(&cluster, "cluster", false, "Group resources by AWS service")

	return cmd
}

func runGraph(configPath, format, outputFile string, includeParams, cluster bool) error {
	_, syn, err := synthesize(configPath)
	if err != nil {
		return err
	}

	var gf graph.Format
	switch format {
	case "dot":
		gf = graph.FormatDOT
	case "mermaid":
		gf = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	gen := &graph.Generator{
		Format:            gf,
		IncludeParameters: includeParams,
		ClusterByService:  cluster,
	}

	out, err := gen.GenerateString(syn)
	if err != nil {
		return err
	}
	return writeOutput([]byte(out), outputFile)
}
