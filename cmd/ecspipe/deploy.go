package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/codeavatar1/ecspipe/internal/deployer"
	"github.com/codeavatar1/ecspipe/internal/template"
	"github.com/codeavatar1/ecspipe/internal/validation"
)

func newDeployCmd() *cobra.Command {
	var (
		configPath string
		region     string
		paramFlags []string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Submit the stack to CloudFormation and wait",
		Long: `Deploy synthesizes the template, runs the structural checks, then creates
or updates the CloudFormation stack and waits for a terminal status.

Parameters without defaults (VpcId, SubnetIds) must be supplied with -p.

Examples:
    ecspipe deploy -p VpcId=vpc-123 -p SubnetIds=subnet-a,subnet-b
    ecspipe deploy -c prod.toml --region eu-west-1 -p VpcId=vpc-123 -p SubnetIds=subnet-a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, configPath, region, paramFlags, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Environment config file (TOML)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default: config region)")
	cmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "Template parameter as Key=Value (repeatable)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the deploy result as JSON")

	return cmd
}

func runDeploy(cmd *cobra.Command, configPath, region string, paramFlags []string, jsonOut bool) error {
	cfg, syn, err := synthesize(configPath)
	if err != nil {
		return err
	}

	if errs := validation.Errors(validation.Check(syn)); len(errs) > 0 {
		for _, issue := range errs {
			fmt.Fprintln(os.Stderr, issue.String())
		}
		return fmt.Errorf("refusing to deploy: %d structural errors", len(errs))
	}

	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}

	body, err := template.EncodeJSON(syn.Template)
	if err != nil {
		return err
	}

	if region == "" {
		region = cfg.Region
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	d, err := deployer.New(cmd.Context(), region, log)
	if err != nil {
		return err
	}

	result, err := d.Deploy(cmd.Context(), cfg.StackName, string(body), params)
	if err != nil {
		return err
	}

	if jsonOut {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("%s: %s\n", result.StackName, result.Status)
		for key, value := range result.Outputs {
			fmt.Printf("  %s = %s\n", key, value)
		}
	}

	if !result.Success {
		return fmt.Errorf("deployment failed: %s", result.Status)
	}
	return nil
}

func parseParams(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(flags))
	for _, flag := range flags {
		key, value, found := strings.Cut(flag, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected Key=Value", flag)
		}
		params[key] = value
	}
	return params, nil
}
