// Command ecspipe synthesizes, validates and deploys the container release
// pipeline stack.
//
// Usage:
//
//	ecspipe build                 Synthesize the CloudFormation template
//	ecspipe validate              Run structural checks on the topology
//	ecspipe lint                  Run cfn-lint on the synthesized template
//	ecspipe graph                 Render the dependency graph
//	ecspipe deploy                Submit the stack and wait
//	ecspipe version               Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeavatar1/ecspipe/config"
	"github.com/codeavatar1/ecspipe/internal/template"
	"github.com/codeavatar1/ecspipe/topology"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ecspipe",
		Short: "Blue/green container release pipeline on ECS",
		Long: `ecspipe declares an ECS blue/green release pipeline as Go resources and
synthesizes it into a CloudFormation template.

The topology covers the full path from source to running service: an ECR
repository, an ARM-backed ECS cluster, a load-balanced service under a
CodeDeploy blue/green deployment group, and a three-stage CodePipeline
(Source, Build, Deploy) that builds the image on ARM CodeBuild.`,
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newLintCmd(),
		newGraphCmd(),
		newListCmd(),
		newRenderCmd(),
		newDeployCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// synthesize loads the configuration and builds the full topology.
func synthesize(configPath string) (config.Config, *template.Synthesis, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}

	s, err := topology.Build(cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("building topology: %w", err)
	}

	syn, err := s.Synth()
	if err != nil {
		return cfg, nil, fmt.Errorf("synthesizing template: %w", err)
	}
	return cfg, syn, nil
}

// writeOutput prints to stdout or writes to a file.
func writeOutput(data []byte, outputFile string) error {
	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputFile, data, 0644)
}
