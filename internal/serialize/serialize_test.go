package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/intrinsics"
)

func TestPropertiesOmitsZeroValues(t *testing.T) {
	type inner struct {
		Port int `json:"Port,omitempty"`
	}
	type res struct {
		Name    string `json:"Name,omitempty"`
		Count   int    `json:"Count,omitempty"`
		Enabled bool   `json:"Enabled,omitempty"`
		Nested  *inner `json:"Nested,omitempty"`
	}

	props, err := Properties(res{Name: "web"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Name": "web"}, props)
}

func TestPropertiesKeepsRequiredZeroes(t *testing.T) {
	// PropagateAtLaunch must serialize even when false.
	type tag struct {
		Key               string `json:"Key,omitempty"`
		PropagateAtLaunch bool   `json:"PropagateAtLaunch"`
	}

	props, err := Properties(tag{Key: "Name"})
	require.NoError(t, err)
	assert.Equal(t, false, props["PropagateAtLaunch"])
}

func TestPropertiesHonorsMarshalers(t *testing.T) {
	type res struct {
		Role any `json:"Role,omitempty"`
		Repo any `json:"Repo,omitempty"`
	}

	props, err := Properties(res{
		Role: ecspipe.AttrRef{Resource: "TaskRole", Attribute: "Arn"},
		Repo: intrinsics.Ref{LogicalName: "ImageRepo"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"Fn::GetAtt": []any{"TaskRole", "Arn"}}, props["Role"])
	assert.Equal(t, map[string]any{"Ref": "ImageRepo"}, props["Repo"])
}

func TestPropertiesSkipsZeroAttrRef(t *testing.T) {
	type res struct {
		Role ecspipe.AttrRef `json:"Role,omitempty"`
	}

	props, err := Properties(res{})
	require.NoError(t, err)
	assert.NotContains(t, props, "Role")
}

func TestValueNestedSlices(t *testing.T) {
	type mapping struct {
		ContainerPort int    `json:"ContainerPort,omitempty"`
		Protocol      string `json:"Protocol,omitempty"`
	}

	out, err := Value([]mapping{{ContainerPort: 80, Protocol: "tcp"}})
	require.NoError(t, err)

	list, ok := out.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, int64(80), list[0].(map[string]any)["ContainerPort"])
}
