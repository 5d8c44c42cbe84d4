package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/internal/template"
	"github.com/codeavatar1/ecspipe/intrinsics"
	"github.com/codeavatar1/ecspipe/resources/ecs"
	"github.com/codeavatar1/ecspipe/resources/iam"
)

func synthFixture(t *testing.T) *template.Synthesis {
	t.Helper()

	b := template.NewBuilder("graph test")
	require.NoError(t, b.AddResource("TaskRole", iam.Role{}))
	require.NoError(t, b.AddResource("EcsCluster", ecs.Cluster{}))
	require.NoError(t, b.AddResource("Ec2TaskDef", ecs.TaskDefinition{
		TaskRoleArn: ecspipe.AttrRef{Resource: "TaskRole", Attribute: "Arn"},
	}))
	require.NoError(t, b.AddResource("Ec2Service", ecs.Service{
		Cluster:        intrinsics.Ref{LogicalName: "EcsCluster"},
		TaskDefinition: intrinsics.Ref{LogicalName: "Ec2TaskDef"},
	}))

	syn, err := b.Build()
	require.NoError(t, err)
	return syn
}

func TestGenerateDOT(t *testing.T) {
	syn := synthFixture(t)

	out, err := (&Generator{}).GenerateString(syn)
	require.NoError(t, err)

	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "Ec2Service")
	assert.Contains(t, out, "AWS::ECS::Service")
	// GetAtt edges are colored.
	assert.Contains(t, out, `color="blue"`)
}

func TestGenerateMermaid(t *testing.T) {
	syn := synthFixture(t)

	out, err := (&Generator{Format: FormatMermaid}).GenerateString(syn)
	require.NoError(t, err)

	assert.Contains(t, out, "graph TB")
	assert.Contains(t, out, "EcsCluster")
}

func TestGenerateClustered(t *testing.T) {
	syn := synthFixture(t)

	out, err := (&Generator{ClusterByService: true}).GenerateString(syn)
	require.NoError(t, err)

	assert.Contains(t, out, "cluster_ECS")
}

func TestExtractService(t *testing.T) {
	assert.Equal(t, "ECS", extractService("AWS::ECS::Cluster"))
	assert.Equal(t, "CodeDeploy", extractService("AWS::CodeDeploy::DeploymentGroup"))
	assert.Equal(t, "Other", extractService("Custom"))
}
