package codedeploy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceTypes(t *testing.T) {
	assert.Equal(t, "AWS::CodeDeploy::Application", Application{}.ResourceType())
	assert.Equal(t, "AWS::CodeDeploy::DeploymentGroup", DeploymentGroup{}.ResourceType())
}

// TestDeploymentGroupSerialization checks the blue/green pair shape: two
// target groups and one production route.
func TestDeploymentGroupSerialization(t *testing.T) {
	group := DeploymentGroup{
		ApplicationName: map[string]any{"Ref": "CodeDeployApp"},
		DeploymentStyle: &DeploymentGroup_DeploymentStyle{
			DeploymentType:   "BLUE_GREEN",
			DeploymentOption: "WITH_TRAFFIC_CONTROL",
		},
		LoadBalancerInfo: &DeploymentGroup_LoadBalancerInfo{
			TargetGroupPairInfoList: []DeploymentGroup_TargetGroupPairInfo{
				{
					TargetGroups: []DeploymentGroup_TargetGroupInfo{
						{Name: "blue-tg"},
						{Name: "green-tg"},
					},
					ProdTrafficRoute: &DeploymentGroup_TrafficRoute{
						ListenerArns: []any{map[string]any{"Ref": "HttpListener"}},
					},
				},
			},
		},
	}

	data, err := json.Marshal(group)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	style := parsed["DeploymentStyle"].(map[string]any)
	assert.Equal(t, "BLUE_GREEN", style["DeploymentType"])

	pairs := parsed["LoadBalancerInfo"].(map[string]any)["TargetGroupPairInfoList"].([]any)
	require.Len(t, pairs, 1)
	pair := pairs[0].(map[string]any)
	assert.Len(t, pair["TargetGroups"].([]any), 2)
	assert.Contains(t, pair, "ProdTrafficRoute")
}
