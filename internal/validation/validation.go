// Package validation checks the synthesized topology against the structural
// rules the provider cannot enforce before deployment, and runs cfn-lint on
// the rendered template.
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"

	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/internal/template"
)

// Issue is one structural finding.
type Issue struct {
	Rule     string `json:"rule"`
	Level    string `json:"level"` // "Error" or "Warning"
	Resource string `json:"resource"`
	Message  string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Rule, i.Resource, i.Message)
}

// Check runs all structural rules against a synthesized stack.
func Check(syn *template.Synthesis) []Issue {
	var issues []Issue
	issues = append(issues, checkListeners(syn)...)
	issues = append(issues, checkDeploymentGroups(syn)...)
	issues = append(issues, checkServices(syn)...)
	issues = append(issues, checkPipelines(syn)...)
	issues = append(issues, checkBuildProjects(syn)...)
	return issues
}

// Errors filters issues down to the Error level.
func Errors(issues []Issue) []Issue {
	var errs []Issue
	for _, issue := range issues {
		if issue.Level == "Error" {
			errs = append(errs, issue)
		}
	}
	return errs
}

func resourcesOfType(syn *template.Synthesis, cfType string) map[string]map[string]any {
	found := make(map[string]map[string]any)
	for name, def := range syn.Template.Resources {
		if def.Type == cfType {
			found[name] = def.Properties
		}
	}
	return found
}

// checkListeners requires every listener to forward to exactly one target
// group; the deployment orchestration owns any further binding.
func checkListeners(syn *template.Synthesis) []Issue {
	var issues []Issue
	for name, props := range resourcesOfType(syn, "AWS::ElasticLoadBalancingV2::Listener") {
		actions, _ := props["DefaultActions"].([]any)
		if len(actions) != 1 {
			issues = append(issues, Issue{
				Rule:     "listener-single-action",
				Level:    "Error",
				Resource: name,
				Message:  fmt.Sprintf("listener must have exactly one default action, found %d", len(actions)),
			})
			continue
		}
		action, _ := actions[0].(map[string]any)
		if action["Type"] != "forward" || action["TargetGroupArn"] == nil {
			issues = append(issues, Issue{
				Rule:     "listener-forward-target",
				Level:    "Error",
				Resource: name,
				Message:  "default action must forward to a target group",
			})
		}
	}
	return issues
}

// checkDeploymentGroups requires a distinct blue/green pair and a production
// route on every deployment group, and at most one group per service.
func checkDeploymentGroups(syn *template.Synthesis) []Issue {
	var issues []Issue
	serviceGroups := make(map[string][]string)

	for name, props := range resourcesOfType(syn, "AWS::CodeDeploy::DeploymentGroup") {
		style, _ := props["DeploymentStyle"].(map[string]any)
		if style == nil || style["DeploymentType"] != "BLUE_GREEN" || style["DeploymentOption"] != "WITH_TRAFFIC_CONTROL" {
			issues = append(issues, Issue{
				Rule:     "deployment-style-blue-green",
				Level:    "Error",
				Resource: name,
				Message:  "deployment group must use BLUE_GREEN with traffic control",
			})
		}

		lbInfo, _ := props["LoadBalancerInfo"].(map[string]any)
		pairs, _ := lbInfo["TargetGroupPairInfoList"].([]any)
		if len(pairs) != 1 {
			issues = append(issues, Issue{
				Rule:     "deployment-target-pair",
				Level:    "Error",
				Resource: name,
				Message:  fmt.Sprintf("deployment group must declare exactly one target group pair, found %d", len(pairs)),
			})
		} else {
			pair, _ := pairs[0].(map[string]any)
			tgs, _ := pair["TargetGroups"].([]any)
			if len(tgs) != 2 {
				issues = append(issues, Issue{
					Rule:     "deployment-target-pair",
					Level:    "Error",
					Resource: name,
					Message:  fmt.Sprintf("target group pair must hold two target groups, found %d", len(tgs)),
				})
			} else if fmt.Sprint(tgs[0]) == fmt.Sprint(tgs[1]) {
				issues = append(issues, Issue{
					Rule:     "deployment-target-pair",
					Level:    "Error",
					Resource: name,
					Message:  "blue and green target groups must be distinct",
				})
			}
			if route, _ := pair["ProdTrafficRoute"].(map[string]any); route == nil {
				issues = append(issues, Issue{
					Rule:     "deployment-prod-route",
					Level:    "Error",
					Resource: name,
					Message:  "target group pair must declare a production traffic route",
				})
			}
		}

		services, _ := props["ECSServices"].([]any)
		for _, svc := range services {
			key := fmt.Sprint(svc)
			serviceGroups[key] = append(serviceGroups[key], name)
		}
	}

	for svc, groups := range serviceGroups {
		if len(groups) > 1 {
			issues = append(issues, Issue{
				Rule:     "one-group-per-service",
				Level:    "Error",
				Resource: strings.Join(groups, ", "),
				Message:  fmt.Sprintf("service %s is claimed by %d deployment groups", svc, len(groups)),
			})
		}
	}

	return issues
}

// checkServices requires load-balanced services to hand deployments to
// CodeDeploy.
func checkServices(syn *template.Synthesis) []Issue {
	var issues []Issue
	for name, props := range resourcesOfType(syn, "AWS::ECS::Service") {
		if _, balanced := props["LoadBalancers"]; !balanced {
			continue
		}
		controller, _ := props["DeploymentController"].(map[string]any)
		if controller == nil || controller["Type"] != "CODE_DEPLOY" {
			issues = append(issues, Issue{
				Rule:     "service-codedeploy-controller",
				Level:    "Error",
				Resource: name,
				Message:  "load-balanced service must use the CODE_DEPLOY deployment controller",
			})
		}
	}
	return issues
}

// checkPipelines requires the fixed Source, Build, Deploy stage order and
// that every consumed artifact was produced by an earlier stage.
func checkPipelines(syn *template.Synthesis) []Issue {
	var issues []Issue
	wantCategories := []string{"Source", "Build", "Deploy"}

	for name, props := range resourcesOfType(syn, "AWS::CodePipeline::Pipeline") {
		stages, _ := props["Stages"].([]any)
		if len(stages) != len(wantCategories) {
			issues = append(issues, Issue{
				Rule:     "pipeline-stage-order",
				Level:    "Error",
				Resource: name,
				Message:  fmt.Sprintf("pipeline must have %d stages, found %d", len(wantCategories), len(stages)),
			})
			continue
		}

		produced := make(map[string]bool)
		for i, raw := range stages {
			stage, _ := raw.(map[string]any)
			actions, _ := stage["Actions"].([]any)

			for _, rawAction := range actions {
				action, _ := rawAction.(map[string]any)

				typeId, _ := action["ActionTypeId"].(map[string]any)
				if category, _ := typeId["Category"].(string); category != wantCategories[i] {
					issues = append(issues, Issue{
						Rule:     "pipeline-stage-order",
						Level:    "Error",
						Resource: name,
						Message:  fmt.Sprintf("stage %d must hold %s actions, found %s", i+1, wantCategories[i], category),
					})
				}

				for _, raw := range artifactNames(action["InputArtifacts"]) {
					if !produced[raw] {
						issues = append(issues, Issue{
							Rule:     "pipeline-artifact-flow",
							Level:    "Error",
							Resource: name,
							Message:  fmt.Sprintf("artifact %s consumed before any stage produced it", raw),
						})
					}
				}
			}

			// Outputs become visible to later stages only.
			for _, rawAction := range actions {
				action, _ := rawAction.(map[string]any)
				for _, out := range artifactNames(action["OutputArtifacts"]) {
					produced[out] = true
				}
			}
		}
	}

	return issues
}

func artifactNames(v any) []string {
	refs, _ := v.([]any)
	var names []string
	for _, raw := range refs {
		ref, _ := raw.(map[string]any)
		if name, _ := ref["Name"].(string); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// checkBuildProjects requires the image build to know its target repository.
func checkBuildProjects(syn *template.Synthesis) []Issue {
	var issues []Issue
	for name, props := range resourcesOfType(syn, "AWS::CodeBuild::Project") {
		env, _ := props["Environment"].(map[string]any)
		vars, _ := env["EnvironmentVariables"].([]any)

		found := false
		for _, raw := range vars {
			v, _ := raw.(map[string]any)
			if v["Name"] == "REPOSITORY_URI" {
				found = true
			}
		}
		if !found {
			issues = append(issues, Issue{
				Rule:     "build-repository-env",
				Level:    "Error",
				Resource: name,
				Message:  "build project must carry a REPOSITORY_URI environment variable",
			})
		}
	}
	return issues
}

// CfnLintResult holds the outcome of a cfn-lint run.
type CfnLintResult struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r CfnLintResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// RunCfnLint lints a rendered template file with cfn-lint-go.
func RunCfnLint(templatePath string) (*CfnLintResult, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("template file not found: %s", templatePath)},
		}, nil
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("linter error: %v", err)},
		}, nil
	}

	result := &CfnLintResult{
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}

	for _, match := range matches {
		formatted := formatMatch(match)
		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	// Warnings are acceptable.
	result.Passed = len(result.Errors) == 0
	return result, nil
}

// LintTemplate renders a synthesized template to a temp file and lints it.
func LintTemplate(syn *template.Synthesis) (*CfnLintResult, error) {
	data, err := template.EncodeJSON(syn.Template)
	if err != nil {
		return nil, fmt.Errorf("encoding template: %w", err)
	}

	f, err := os.CreateTemp("", "ecspipe-*.json")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	return RunCfnLint(f.Name())
}

func formatMatch(match lint.Match) string {
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}

// Summarize converts issues into the CLI result shape.
func Summarize(syn *template.Synthesis, issues []Issue) ecspipe.ValidateResult {
	result := ecspipe.ValidateResult{
		Resources: len(syn.Template.Resources),
	}
	for _, issue := range issues {
		if issue.Level == "Error" {
			result.Errors = append(result.Errors, issue.String())
		} else {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}
	result.Success = len(result.Errors) == 0
	return result
}
