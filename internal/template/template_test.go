package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/intrinsics"
	"github.com/codeavatar1/ecspipe/resources/ecr"
	"github.com/codeavatar1/ecspipe/resources/ecs"
	"github.com/codeavatar1/ecspipe/resources/logs"
)

func TestBuildDerivesDependencies(t *testing.T) {
	b := NewBuilder("test stack")

	require.NoError(t, b.AddResource("ImageRepo", ecr.Repository{}))
	require.NoError(t, b.AddResource("AppLogGroup", logs.LogGroup{
		LogGroupName: intrinsics.Sub{String: "/ecs/${AWS::StackName}"},
	}))
	require.NoError(t, b.AddResource("Ec2TaskDef", ecs.TaskDefinition{
		ContainerDefinitions: []ecs.TaskDefinition_ContainerDefinition{
			{
				Name:  "web",
				Image: intrinsics.Sub{String: "${ImageRepo.RepositoryUri}:latest"},
				LogConfiguration: &ecs.TaskDefinition_LogConfiguration{
					LogDriver: "awslogs",
					Options: map[string]any{
						"awslogs-group": intrinsics.Ref{LogicalName: "AppLogGroup"},
					},
				},
			},
		},
	}))

	syn, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"AppLogGroup", "ImageRepo"}, syn.Dependencies["Ec2TaskDef"])
	assert.Equal(t, []string{"AppLogGroup", "ImageRepo", "Ec2TaskDef"}, syn.Order)

	def := syn.Template.Resources["Ec2TaskDef"]
	assert.Equal(t, "AWS::ECS::TaskDefinition", def.Type)
}

func TestBuildDeterministicOrder(t *testing.T) {
	build := func() []string {
		b := NewBuilder("")
		require.NoError(t, b.AddResource("Charlie", ecr.Repository{}))
		require.NoError(t, b.AddResource("Alpha", ecr.Repository{}))
		require.NoError(t, b.AddResource("Bravo", ecr.Repository{}))
		syn, err := b.Build()
		require.NoError(t, err)
		return syn.Order
	}

	first := build()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build())
	}
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, first)
}

func TestBuildRejectsDuplicateNames(t *testing.T) {
	b := NewBuilder("")
	require.NoError(t, b.AddResource("ImageRepo", ecr.Repository{}))
	err := b.AddResource("ImageRepo", ecr.Repository{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate logical name")
}

func TestBuildRejectsUnknownReference(t *testing.T) {
	b := NewBuilder("")
	require.NoError(t, b.AddResource("Ec2Service", ecs.Service{
		Cluster: intrinsics.Ref{LogicalName: "NoSuchCluster"},
	}))

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchCluster")
}

func TestBuildDetectsCycle(t *testing.T) {
	b := NewBuilder("")
	require.NoError(t, b.AddResource("First", ecr.Repository{
		RepositoryName: intrinsics.Ref{LogicalName: "Second"},
	}))
	require.NoError(t, b.AddResource("Second", ecr.Repository{
		RepositoryName: intrinsics.Ref{LogicalName: "First"},
	}))

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestParameterRefsProduceNoEdges(t *testing.T) {
	b := NewBuilder("")
	require.NoError(t, b.AddParameter("VpcId", ecspipe.Parameter{Type: "AWS::EC2::VPC::Id"}))
	require.NoError(t, b.AddResource("Cluster", ecs.Cluster{
		ClusterName: intrinsics.Ref{LogicalName: "VpcId"},
	}))

	syn, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, syn.Dependencies["Cluster"])
	require.Contains(t, syn.Template.Parameters, "VpcId")
}

func TestExplicitDependsOnEmitted(t *testing.T) {
	b := NewBuilder("")
	require.NoError(t, b.AddResource("HttpListener", ecr.Repository{}))
	require.NoError(t, b.AddResource("Ec2Service", ecs.Service{}, "HttpListener"))

	syn, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"HttpListener"}, syn.Template.Resources["Ec2Service"].DependsOn)
	assert.Equal(t, []string{"HttpListener", "Ec2Service"}, syn.Order)
}

func TestEncodeYAML(t *testing.T) {
	b := NewBuilder("release pipeline")
	require.NoError(t, b.AddResource("ImageRepo", ecr.Repository{
		ImageScanningConfiguration: &ecr.Repository_ImageScanningConfiguration{ScanOnPush: true},
	}))

	syn, err := b.Build()
	require.NoError(t, err)

	out, err := EncodeYAML(syn.Template)
	require.NoError(t, err)
	assert.Contains(t, string(out), "AWS::ECR::Repository")
	assert.Contains(t, string(out), "ScanOnPush: true")
}
