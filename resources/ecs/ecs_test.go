package ecs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ecspipe "github.com/codeavatar1/ecspipe"
)

// TestResourceTypes verifies the ECS resource types return correct
// CloudFormation types.
func TestResourceTypes(t *testing.T) {
	tests := []struct {
		name     string
		resource ecspipe.Resource
		expected string
	}{
		{"Cluster", Cluster{}, "AWS::ECS::Cluster"},
		{"CapacityProvider", CapacityProvider{}, "AWS::ECS::CapacityProvider"},
		{"ClusterCapacityProviderAssociations", ClusterCapacityProviderAssociations{}, "AWS::ECS::ClusterCapacityProviderAssociations"},
		{"TaskDefinition", TaskDefinition{}, "AWS::ECS::TaskDefinition"},
		{"Service", Service{}, "AWS::ECS::Service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resource.ResourceType())
		})
	}
}

// TestTaskDefinitionSerialization tests that TaskDefinition serializes to the
// CloudFormation property shape.
func TestTaskDefinitionSerialization(t *testing.T) {
	td := TaskDefinition{
		Family:                  "web-arm",
		RequiresCompatibilities: []any{"EC2"},
		ContainerDefinitions: []TaskDefinition_ContainerDefinition{
			{
				Name:              "web",
				Image:             "repo/web:latest",
				Cpu:               256,
				MemoryReservation: 256,
				Essential:         true,
				PortMappings: []TaskDefinition_PortMapping{
					{ContainerPort: 80, Protocol: "tcp"},
				},
				LogConfiguration: &TaskDefinition_LogConfiguration{
					LogDriver: "awslogs",
					Options: map[string]any{
						"awslogs-stream-prefix": "web-arm",
					},
				},
			},
		},
	}

	data, err := json.Marshal(td)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "web-arm", parsed["Family"])
	defs := parsed["ContainerDefinitions"].([]any)
	require.Len(t, defs, 1)
	container := defs[0].(map[string]any)
	assert.Equal(t, "web", container["Name"])
	assert.Equal(t, float64(256), container["MemoryReservation"])
	assert.Equal(t, true, container["Essential"])

	ports := container["PortMappings"].([]any)
	require.Len(t, ports, 1)
	assert.Equal(t, float64(80), ports[0].(map[string]any)["ContainerPort"])
	// HostPort left nil means dynamic host ports on EC2 launch type.
	assert.NotContains(t, ports[0].(map[string]any), "HostPort")
}

// TestServiceSerialization checks the CodeDeploy deployment controller shape.
func TestServiceSerialization(t *testing.T) {
	svc := Service{
		Cluster:        map[string]any{"Ref": "EcsCluster"},
		TaskDefinition: map[string]any{"Ref": "Ec2TaskDef"},
		DesiredCount:   1,
		LaunchType:     "EC2",
		DeploymentController: &Service_DeploymentController{
			Type: "CODE_DEPLOY",
		},
	}

	data, err := json.Marshal(svc)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	dc := parsed["DeploymentController"].(map[string]any)
	assert.Equal(t, "CODE_DEPLOY", dc["Type"])
	assert.Equal(t, "EC2", parsed["LaunchType"])
}
