// Package ecspipe provides Go types for declaring the AWS resources of a
// container release pipeline and synthesizing them into a CloudFormation
// template.
//
// Resources are declared as plain Go structs:
//
//	var ImageRepo = ecr.Repository{
//	    ImageScanningConfiguration: &ecr.Repository_ImageScanningConfiguration{
//	        ScanOnPush: true,
//	    },
//	}
//
// A stack.Stack collects the declarations under stable logical names, and the
// ecspipe CLI synthesizes, validates, graphs and deploys the resulting
// template.
package ecspipe

import (
	"encoding/json"
)

// Resource represents a CloudFormation resource.
// All resource types (ecs.Cluster, iam.Role, etc.) implement this interface.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::ECS::Cluster")
	ResourceType() string
}

// AttrRef represents a GetAtt reference to a resource attribute.
//
// Example:
//
//	ServiceRoleArn: ecspipe.AttrRef{Resource: "CodeDeployRole", Attribute: "Arn"}
//
// When serialized to CloudFormation JSON, AttrRef becomes:
//
//	{"Fn::GetAtt": ["CodeDeployRole", "Arn"]}
type AttrRef struct {
	// Resource is the logical name of the referenced resource
	Resource string
	// Attribute is the attribute name (e.g., "Arn", "DNSName")
	Attribute string
}

// MarshalJSON serializes AttrRef to CloudFormation GetAtt syntax.
func (a AttrRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {a.Resource, a.Attribute},
	})
}

// IsZero returns true if the AttrRef has not been populated.
func (a AttrRef) IsZero() bool {
	return a.Resource == "" && a.Attribute == ""
}

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Parameter is a CloudFormation template parameter.
type Parameter struct {
	Type          string   `json:"Type" yaml:"Type"`
	Description   string   `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default       any      `json:"Default,omitempty" yaml:"Default,omitempty"`
	AllowedValues []string `json:"AllowedValues,omitempty" yaml:"AllowedValues,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string  `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any     `json:"Value" yaml:"Value"`
	Export      *Export `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// Export names a cross-stack export for an output.
type Export struct {
	Name string `json:"Name" yaml:"Name"`
}

// BuildResult is the JSON output from `ecspipe build`.
type BuildResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// ValidateResult is the JSON output from `ecspipe validate`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// LintResult is the JSON output from `ecspipe lint`.
type LintResult struct {
	Success bool        `json:"success"`
	Issues  []LintIssue `json:"issues,omitempty"`
}

// LintIssue is a single linting issue.
type LintIssue struct {
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Rule     string `json:"rule"`
}

// ListResult is the JSON output from `ecspipe list`.
type ListResult struct {
	Resources []ListResource `json:"resources"`
}

// ListResource is a single resource in the list output.
type ListResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// DeployResult is the JSON output from `ecspipe deploy`.
type DeployResult struct {
	Success   bool              `json:"success"`
	StackID   string            `json:"stack_id,omitempty"`
	StackName string            `json:"stack_name"`
	Status    string            `json:"status,omitempty"`
	Outputs   map[string]string `json:"outputs,omitempty"`
	Errors    []string          `json:"errors,omitempty"`
}
