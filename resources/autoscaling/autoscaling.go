// Package autoscaling provides the AWS::AutoScaling resource types used by
// the topology.
package autoscaling

// AutoScalingGroup is an AWS::AutoScaling::AutoScalingGroup.
//
// MinSize, MaxSize and DesiredCapacity are strings in CloudFormation.
type AutoScalingGroup struct {
	AutoScalingGroupName             any                                  `json:"AutoScalingGroupName,omitempty"`
	MinSize                          string                               `json:"MinSize,omitempty"`
	MaxSize                          string                               `json:"MaxSize,omitempty"`
	DesiredCapacity                  string                               `json:"DesiredCapacity,omitempty"`
	VPCZoneIdentifier                any                                  `json:"VPCZoneIdentifier,omitempty"`
	LaunchTemplate                   *AutoScalingGroup_LaunchTemplateSpec `json:"LaunchTemplate,omitempty"`
	NewInstancesProtectedFromScaleIn bool                                 `json:"NewInstancesProtectedFromScaleIn,omitempty"`
	Tags                             []AutoScalingGroup_TagProperty       `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (AutoScalingGroup) ResourceType() string { return "AWS::AutoScaling::AutoScalingGroup" }

// AutoScalingGroup_LaunchTemplateSpec references a launch template and version.
type AutoScalingGroup_LaunchTemplateSpec struct {
	LaunchTemplateId any `json:"LaunchTemplateId,omitempty"`
	Version          any `json:"Version,omitempty"`
}

// AutoScalingGroup_TagProperty is an autoscaling tag with propagation control.
type AutoScalingGroup_TagProperty struct {
	Key               string `json:"Key,omitempty"`
	Value             any    `json:"Value,omitempty"`
	PropagateAtLaunch bool   `json:"PropagateAtLaunch"`
}
