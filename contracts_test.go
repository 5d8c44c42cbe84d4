package ecspipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrRef_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		ref      AttrRef
		expected string
	}{
		{
			name:     "role arn",
			ref:      AttrRef{Resource: "TaskRole", Attribute: "Arn"},
			expected: `{"Fn::GetAtt":["TaskRole","Arn"]}`,
		},
		{
			name:     "load balancer dns name",
			ref:      AttrRef{Resource: "Alb", Attribute: "DNSName"},
			expected: `{"Fn::GetAtt":["Alb","DNSName"]}`,
		},
		{
			name:     "repository uri",
			ref:      AttrRef{Resource: "ImageRepo", Attribute: "RepositoryUri"},
			expected: `{"Fn::GetAtt":["ImageRepo","RepositoryUri"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ref)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestAttrRef_IsZero(t *testing.T) {
	assert.True(t, AttrRef{}.IsZero())
	assert.False(t, AttrRef{Resource: "TaskRole"}.IsZero())
	assert.False(t, AttrRef{Attribute: "Arn"}.IsZero())
	assert.False(t, AttrRef{Resource: "TaskRole", Attribute: "Arn"}.IsZero())
}

func TestTemplate_MarshalJSON(t *testing.T) {
	tmpl := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]ResourceDef{
			"ImageRepo": {
				Type:       "AWS::ECR::Repository",
				Properties: map[string]any{"RepositoryName": "web"},
			},
		},
		Outputs: map[string]Output{
			"ServiceURL": {
				Value:       map[string]any{"Fn::Sub": "http://${Alb.DNSName}"},
				Description: "Public endpoint",
			},
		},
	}

	data, err := json.Marshal(tmpl)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "2010-09-09", parsed["AWSTemplateFormatVersion"])
	res := parsed["Resources"].(map[string]any)["ImageRepo"].(map[string]any)
	assert.Equal(t, "AWS::ECR::Repository", res["Type"])
	assert.NotContains(t, string(data), "DependsOn")
}
