// Package codepipeline provides the AWS::CodePipeline resource types used by
// the topology.
package codepipeline

// Pipeline is an AWS::CodePipeline::Pipeline.
//
// Stages execute in declaration order; artifacts flow between stages by
// reference through the artifact store.
type Pipeline struct {
	Name                     any                     `json:"Name,omitempty"`
	RoleArn                  any                     `json:"RoleArn,omitempty"`
	ArtifactStore            *Pipeline_ArtifactStore `json:"ArtifactStore,omitempty"`
	Stages                   []Pipeline_Stage        `json:"Stages,omitempty"`
	RestartExecutionOnUpdate bool                    `json:"RestartExecutionOnUpdate,omitempty"`
	Tags                     []any                   `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Pipeline) ResourceType() string { return "AWS::CodePipeline::Pipeline" }

// Pipeline_ArtifactStore is the S3 location artifacts move through.
type Pipeline_ArtifactStore struct {
	Type     string `json:"Type,omitempty"`
	Location any    `json:"Location,omitempty"`
}

// Pipeline_Stage is one named stage with its actions.
type Pipeline_Stage struct {
	Name    string            `json:"Name,omitempty"`
	Actions []Pipeline_Action `json:"Actions,omitempty"`
}

// Pipeline_Action is one action inside a stage.
type Pipeline_Action struct {
	Name            string                 `json:"Name,omitempty"`
	ActionTypeId    *Pipeline_ActionTypeId `json:"ActionTypeId,omitempty"`
	Configuration   map[string]any         `json:"Configuration,omitempty"`
	InputArtifacts  []Pipeline_ArtifactRef `json:"InputArtifacts,omitempty"`
	OutputArtifacts []Pipeline_ArtifactRef `json:"OutputArtifacts,omitempty"`
	RunOrder        int                    `json:"RunOrder,omitempty"`
}

// Pipeline_ActionTypeId identifies the action provider.
type Pipeline_ActionTypeId struct {
	Category string `json:"Category,omitempty"`
	Owner    string `json:"Owner,omitempty"`
	Provider string `json:"Provider,omitempty"`
	Version  string `json:"Version,omitempty"`
}

// Pipeline_ArtifactRef names an artifact an action consumes or produces.
type Pipeline_ArtifactRef struct {
	Name string `json:"Name,omitempty"`
}
