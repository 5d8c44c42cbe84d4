// Package codedeploy provides the AWS::CodeDeploy resource types used by the
// topology.
package codedeploy

// Application is an AWS::CodeDeploy::Application.
type Application struct {
	ApplicationName any    `json:"ApplicationName,omitempty"`
	ComputePlatform string `json:"ComputePlatform,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Application) ResourceType() string { return "AWS::CodeDeploy::Application" }

// DeploymentGroup is an AWS::CodeDeploy::DeploymentGroup.
//
// For ECS blue/green it binds exactly one service to a listener and a pair of
// target groups; CodeDeploy owns the traffic cutover between them.
type DeploymentGroup struct {
	ApplicationName                  any                               `json:"ApplicationName,omitempty"`
	DeploymentGroupName              any                               `json:"DeploymentGroupName,omitempty"`
	ServiceRoleArn                   any                               `json:"ServiceRoleArn,omitempty"`
	DeploymentConfigName             string                            `json:"DeploymentConfigName,omitempty"`
	DeploymentStyle                  *DeploymentGroup_DeploymentStyle  `json:"DeploymentStyle,omitempty"`
	BlueGreenDeploymentConfiguration *DeploymentGroup_BlueGreenConfig  `json:"BlueGreenDeploymentConfiguration,omitempty"`
	ECSServices                      []DeploymentGroup_ECSService      `json:"ECSServices,omitempty"`
	LoadBalancerInfo                 *DeploymentGroup_LoadBalancerInfo `json:"LoadBalancerInfo,omitempty"`
	AutoRollbackConfiguration        *DeploymentGroup_AutoRollback     `json:"AutoRollbackConfiguration,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (DeploymentGroup) ResourceType() string { return "AWS::CodeDeploy::DeploymentGroup" }

// DeploymentGroup_DeploymentStyle selects blue/green with traffic control.
type DeploymentGroup_DeploymentStyle struct {
	DeploymentType   string `json:"DeploymentType,omitempty"`
	DeploymentOption string `json:"DeploymentOption,omitempty"`
}

// DeploymentGroup_BlueGreenConfig controls the blue/green lifecycle.
type DeploymentGroup_BlueGreenConfig struct {
	DeploymentReadyOption                     *DeploymentGroup_DeploymentReadyOption `json:"DeploymentReadyOption,omitempty"`
	TerminateBlueInstancesOnDeploymentSuccess *DeploymentGroup_TerminateBlue         `json:"TerminateBlueInstancesOnDeploymentSuccess,omitempty"`
}

// DeploymentGroup_DeploymentReadyOption controls the wait before cutover.
type DeploymentGroup_DeploymentReadyOption struct {
	ActionOnTimeout   string `json:"ActionOnTimeout,omitempty"`
	WaitTimeInMinutes int    `json:"WaitTimeInMinutes,omitempty"`
}

// DeploymentGroup_TerminateBlue controls teardown of the replaced task set.
type DeploymentGroup_TerminateBlue struct {
	Action                       string `json:"Action,omitempty"`
	TerminationWaitTimeInMinutes int    `json:"TerminationWaitTimeInMinutes,omitempty"`
}

// DeploymentGroup_ECSService names the service the group deploys.
type DeploymentGroup_ECSService struct {
	ClusterName any `json:"ClusterName,omitempty"`
	ServiceName any `json:"ServiceName,omitempty"`
}

// DeploymentGroup_LoadBalancerInfo wires the listener/target-group pair.
type DeploymentGroup_LoadBalancerInfo struct {
	TargetGroupPairInfoList []DeploymentGroup_TargetGroupPairInfo `json:"TargetGroupPairInfoList,omitempty"`
}

// DeploymentGroup_TargetGroupPairInfo is the blue/green target-group pair
// plus the production traffic route.
type DeploymentGroup_TargetGroupPairInfo struct {
	TargetGroups     []DeploymentGroup_TargetGroupInfo `json:"TargetGroups,omitempty"`
	ProdTrafficRoute *DeploymentGroup_TrafficRoute     `json:"ProdTrafficRoute,omitempty"`
	TestTrafficRoute *DeploymentGroup_TrafficRoute     `json:"TestTrafficRoute,omitempty"`
}

// DeploymentGroup_TargetGroupInfo names one target group of the pair.
type DeploymentGroup_TargetGroupInfo struct {
	Name any `json:"Name,omitempty"`
}

// DeploymentGroup_TrafficRoute lists the listeners carrying the route.
type DeploymentGroup_TrafficRoute struct {
	ListenerArns []any `json:"ListenerArns,omitempty"`
}

// DeploymentGroup_AutoRollback enables rollback on the given event types.
type DeploymentGroup_AutoRollback struct {
	Enabled bool     `json:"Enabled,omitempty"`
	Events  []string `json:"Events,omitempty"`
}
