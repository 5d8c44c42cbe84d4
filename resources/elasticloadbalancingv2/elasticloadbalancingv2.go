// Package elasticloadbalancingv2 provides the AWS::ElasticLoadBalancingV2
// resource types used by the topology.
package elasticloadbalancingv2

// LoadBalancer is an AWS::ElasticLoadBalancingV2::LoadBalancer.
type LoadBalancer struct {
	Name           any    `json:"Name,omitempty"`
	Type           string `json:"Type,omitempty"`
	Scheme         string `json:"Scheme,omitempty"`
	Subnets        any    `json:"Subnets,omitempty"`
	SecurityGroups []any  `json:"SecurityGroups,omitempty"`
	Tags           []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (LoadBalancer) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::LoadBalancer"
}

// TargetGroup is an AWS::ElasticLoadBalancingV2::TargetGroup.
type TargetGroup struct {
	Name                  any                     `json:"Name,omitempty"`
	Port                  int                     `json:"Port,omitempty"`
	Protocol              string                  `json:"Protocol,omitempty"`
	VpcId                 any                     `json:"VpcId,omitempty"`
	TargetType            string                  `json:"TargetType,omitempty"`
	HealthCheckPath       string                  `json:"HealthCheckPath,omitempty"`
	HealthCheckPort       string                  `json:"HealthCheckPort,omitempty"`
	HealthCheckProtocol   string                  `json:"HealthCheckProtocol,omitempty"`
	Matcher               *TargetGroup_Matcher    `json:"Matcher,omitempty"`
	TargetGroupAttributes []TargetGroup_Attribute `json:"TargetGroupAttributes,omitempty"`
	Tags                  []any                   `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (TargetGroup) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::TargetGroup"
}

// TargetGroup_Matcher defines the HTTP codes counted as healthy.
type TargetGroup_Matcher struct {
	HttpCode string `json:"HttpCode,omitempty"`
}

// TargetGroup_Attribute is one target group attribute.
type TargetGroup_Attribute struct {
	Key   string `json:"Key,omitempty"`
	Value string `json:"Value,omitempty"`
}

// Listener is an AWS::ElasticLoadBalancingV2::Listener.
type Listener struct {
	LoadBalancerArn any               `json:"LoadBalancerArn,omitempty"`
	Port            int               `json:"Port,omitempty"`
	Protocol        string            `json:"Protocol,omitempty"`
	DefaultActions  []Listener_Action `json:"DefaultActions,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Listener) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::Listener"
}

// Listener_Action is one listener action. A forward action points the
// listener at exactly one target group; during a blue/green deployment
// CodeDeploy rewrites this binding and nothing else may.
type Listener_Action struct {
	Type           string `json:"Type,omitempty"`
	TargetGroupArn any    `json:"TargetGroupArn,omitempty"`
	Order          int    `json:"Order,omitempty"`
}
