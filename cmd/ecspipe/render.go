package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeavatar1/ecspipe/config"
	"github.com/codeavatar1/ecspipe/internal/buildspec"
)

func newRenderCmd() *cobra.Command {
	var (
		configPath  string
		imageURI    string
		taskdefPath string
		taskRole    string
		execRole    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Preview build artifacts locally",
		Long: `Render previews the artifacts the build stage produces: the inline
buildspec, imagedefinitions.json for a given image URI, and a task
definition template with its role placeholders substituted.

Examples:
    ecspipe render
    ecspipe render --image-uri 123.dkr.ecr.us-east-1.amazonaws.com/repo:abc
    ecspipe render --taskdef app/taskdef.json --task-role arn:... --execution-role arn:...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(configPath, imageURI, taskdefPath, taskRole, execRole)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Environment config file (TOML)")
	cmd.Flags().StringVar(&imageURI, "image-uri", "", "Image URI for imagedefinitions.json")
	cmd.Flags().StringVar(&taskdefPath, "taskdef", "", "Task definition template to substitute roles into")
	cmd.Flags().StringVar(&taskRole, "task-role", "", "Task role ARN")
	cmd.Flags().StringVar(&execRole, "execution-role", "", "Execution role ARN")

	return cmd
}

func runRender(configPath, imageURI, taskdefPath, taskRole, execRole string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	spec, err := buildspec.ImageBuild(cfg.Container.Name).Render()
	if err != nil {
		return err
	}
	fmt.Println("# buildspec.yml")
	fmt.Print(spec)

	if imageURI != "" {
		fmt.Println("\n# imagedefinitions.json")
		fmt.Println(buildspec.ImageDefinitions(cfg.Container.Name, imageURI))
	}

	if taskdefPath != "" {
		data, err := os.ReadFile(taskdefPath)
		if err != nil {
			return fmt.Errorf("reading task definition: %w", err)
		}
		fmt.Println("\n# taskdef.json")
		fmt.Println(buildspec.SubstituteRoles(string(data), taskRole, execRole))
	}

	return nil
}
