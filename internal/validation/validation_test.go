package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeavatar1/ecspipe/config"
	"github.com/codeavatar1/ecspipe/internal/template"
	"github.com/codeavatar1/ecspipe/intrinsics"
	"github.com/codeavatar1/ecspipe/resources/codepipeline"
	"github.com/codeavatar1/ecspipe/resources/ecs"
	"github.com/codeavatar1/ecspipe/resources/elasticloadbalancingv2"
	"github.com/codeavatar1/ecspipe/topology"
)

func TestTopologyPassesAllRules(t *testing.T) {
	s, err := topology.Build(config.Default())
	require.NoError(t, err)
	syn, err := s.Synth()
	require.NoError(t, err)

	issues := Check(syn)
	assert.Empty(t, Errors(issues), "issues: %v", issues)

	result := Summarize(syn, issues)
	assert.True(t, result.Success)
	assert.Equal(t, 28, result.Resources)
}

func synthOf(t *testing.T, add func(b *template.Builder)) *template.Synthesis {
	t.Helper()
	b := template.NewBuilder("validation fixture")
	add(b)
	syn, err := b.Build()
	require.NoError(t, err)
	return syn
}

func ruleIDs(issues []Issue) []string {
	ids := make([]string, len(issues))
	for i, issue := range issues {
		ids[i] = issue.Rule
	}
	return ids
}

func TestListenerWithTwoActionsFails(t *testing.T) {
	syn := synthOf(t, func(b *template.Builder) {
		require.NoError(t, b.AddResource("BlueTG", elasticloadbalancingv2.TargetGroup{}))
		require.NoError(t, b.AddResource("GreenTG", elasticloadbalancingv2.TargetGroup{}))
		require.NoError(t, b.AddResource("Listener", elasticloadbalancingv2.Listener{
			DefaultActions: []elasticloadbalancingv2.Listener_Action{
				{Type: "forward", TargetGroupArn: intrinsics.Ref{LogicalName: "BlueTG"}},
				{Type: "forward", TargetGroupArn: intrinsics.Ref{LogicalName: "GreenTG"}},
			},
		}))
	})

	assert.Contains(t, ruleIDs(Check(syn)), "listener-single-action")
}

func TestBalancedServiceWithoutCodeDeployFails(t *testing.T) {
	syn := synthOf(t, func(b *template.Builder) {
		require.NoError(t, b.AddResource("Svc", ecs.Service{
			LoadBalancers: []ecs.Service_LoadBalancer{
				{ContainerName: "web", ContainerPort: 80},
			},
		}))
	})

	assert.Contains(t, ruleIDs(Check(syn)), "service-codedeploy-controller")
}

func TestPipelineStageOrderEnforced(t *testing.T) {
	syn := synthOf(t, func(b *template.Builder) {
		require.NoError(t, b.AddResource("Pipe", codepipeline.Pipeline{
			Stages: []codepipeline.Pipeline_Stage{
				{Name: "Build", Actions: []codepipeline.Pipeline_Action{{
					Name:         "B",
					ActionTypeId: &codepipeline.Pipeline_ActionTypeId{Category: "Build", Owner: "AWS", Provider: "CodeBuild", Version: "1"},
				}}},
				{Name: "Source", Actions: []codepipeline.Pipeline_Action{{
					Name:         "S",
					ActionTypeId: &codepipeline.Pipeline_ActionTypeId{Category: "Source", Owner: "AWS", Provider: "CodeStarSourceConnection", Version: "1"},
				}}},
				{Name: "Deploy", Actions: []codepipeline.Pipeline_Action{{
					Name:         "D",
					ActionTypeId: &codepipeline.Pipeline_ActionTypeId{Category: "Deploy", Owner: "AWS", Provider: "CodeDeployToECS", Version: "1"},
				}}},
			},
		}))
	})

	assert.Contains(t, ruleIDs(Check(syn)), "pipeline-stage-order")
}

func TestArtifactConsumedBeforeProducedFails(t *testing.T) {
	syn := synthOf(t, func(b *template.Builder) {
		require.NoError(t, b.AddResource("Pipe", codepipeline.Pipeline{
			Stages: []codepipeline.Pipeline_Stage{
				{Name: "Source", Actions: []codepipeline.Pipeline_Action{{
					Name:         "S",
					ActionTypeId: &codepipeline.Pipeline_ActionTypeId{Category: "Source", Owner: "AWS", Provider: "CodeStarSourceConnection", Version: "1"},
					// Consumes an artifact nothing has produced.
					InputArtifacts:  []codepipeline.Pipeline_ArtifactRef{{Name: "BuildOutput"}},
					OutputArtifacts: []codepipeline.Pipeline_ArtifactRef{{Name: "SourceOutput"}},
				}}},
				{Name: "Build", Actions: []codepipeline.Pipeline_Action{{
					Name:           "B",
					ActionTypeId:   &codepipeline.Pipeline_ActionTypeId{Category: "Build", Owner: "AWS", Provider: "CodeBuild", Version: "1"},
					InputArtifacts: []codepipeline.Pipeline_ArtifactRef{{Name: "SourceOutput"}},
				}}},
				{Name: "Deploy", Actions: []codepipeline.Pipeline_Action{{
					Name:         "D",
					ActionTypeId: &codepipeline.Pipeline_ActionTypeId{Category: "Deploy", Owner: "AWS", Provider: "CodeDeployToECS", Version: "1"},
				}}},
			},
		}))
	})

	assert.Contains(t, ruleIDs(Check(syn)), "pipeline-artifact-flow")
}

func TestSummarizeCollectsErrors(t *testing.T) {
	syn := synthOf(t, func(b *template.Builder) {
		require.NoError(t, b.AddResource("Svc", ecs.Service{
			LoadBalancers: []ecs.Service_LoadBalancer{{ContainerName: "web"}},
		}))
	})

	result := Summarize(syn, Check(syn))
	assert.False(t, result.Success)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "service-codedeploy-controller")
}
