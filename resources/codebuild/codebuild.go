// Package codebuild provides the AWS::CodeBuild resource types used by the
// topology.
package codebuild

// Compute types and ARM image for the build environment.
const (
	ComputeSmall       = "BUILD_GENERAL1_SMALL"
	ArmContainer       = "ARM_CONTAINER"
	ArmAmazonLinux2Std = "aws/codebuild/amazonlinux2-aarch64-standard:3.0"
)

// Project is an AWS::CodeBuild::Project.
type Project struct {
	Name             any                  `json:"Name,omitempty"`
	Description      string               `json:"Description,omitempty"`
	ServiceRole      any                  `json:"ServiceRole,omitempty"`
	Source           *Project_Source      `json:"Source,omitempty"`
	Artifacts        *Project_Artifacts   `json:"Artifacts,omitempty"`
	Environment      *Project_Environment `json:"Environment,omitempty"`
	TimeoutInMinutes int                  `json:"TimeoutInMinutes,omitempty"`
	Tags             []any                `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Project) ResourceType() string { return "AWS::CodeBuild::Project" }

// Project_Source describes where the build input and buildspec come from.
// With Type CODEPIPELINE the buildspec is carried inline so the source
// artifact does not need a buildspec.yml.
type Project_Source struct {
	Type      string `json:"Type,omitempty"`
	BuildSpec string `json:"BuildSpec,omitempty"`
}

// Project_Artifacts describes the build output. Type CODEPIPELINE hands the
// declared files back to the pipeline by reference.
type Project_Artifacts struct {
	Type string `json:"Type,omitempty"`
}

// Project_Environment is the build container configuration.
type Project_Environment struct {
	Type                 string                        `json:"Type,omitempty"`
	ComputeType          string                        `json:"ComputeType,omitempty"`
	Image                string                        `json:"Image,omitempty"`
	PrivilegedMode       bool                          `json:"PrivilegedMode,omitempty"`
	EnvironmentVariables []Project_EnvironmentVariable `json:"EnvironmentVariables,omitempty"`
}

// Project_EnvironmentVariable is one build environment variable.
type Project_EnvironmentVariable struct {
	Name  string `json:"Name,omitempty"`
	Value any    `json:"Value,omitempty"`
	Type  string `json:"Type,omitempty"`
}
