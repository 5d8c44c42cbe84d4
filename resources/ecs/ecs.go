// Package ecs provides the AWS::ECS resource types used by the topology.
package ecs

// Cluster is an AWS::ECS::Cluster.
type Cluster struct {
	ClusterName     any                       `json:"ClusterName,omitempty"`
	ClusterSettings []Cluster_ClusterSettings `json:"ClusterSettings,omitempty"`
	Tags            []any                     `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Cluster) ResourceType() string { return "AWS::ECS::Cluster" }

// Cluster_ClusterSettings is one cluster setting (e.g. containerInsights).
type Cluster_ClusterSettings struct {
	Name  string `json:"Name,omitempty"`
	Value string `json:"Value,omitempty"`
}

// CapacityProvider is an AWS::ECS::CapacityProvider backed by an
// autoscaling group.
type CapacityProvider struct {
	Name                     any                                        `json:"Name,omitempty"`
	AutoScalingGroupProvider *CapacityProvider_AutoScalingGroupProvider `json:"AutoScalingGroupProvider,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (CapacityProvider) ResourceType() string { return "AWS::ECS::CapacityProvider" }

// CapacityProvider_AutoScalingGroupProvider binds the provider to an ASG.
type CapacityProvider_AutoScalingGroupProvider struct {
	AutoScalingGroupArn          any                              `json:"AutoScalingGroupArn,omitempty"`
	ManagedScaling               *CapacityProvider_ManagedScaling `json:"ManagedScaling,omitempty"`
	ManagedTerminationProtection string                           `json:"ManagedTerminationProtection,omitempty"`
}

// CapacityProvider_ManagedScaling lets ECS drive the ASG size.
type CapacityProvider_ManagedScaling struct {
	Status         string `json:"Status,omitempty"`
	TargetCapacity int    `json:"TargetCapacity,omitempty"`
}

// ClusterCapacityProviderAssociations is an
// AWS::ECS::ClusterCapacityProviderAssociations.
type ClusterCapacityProviderAssociations struct {
	Cluster                         any                                            `json:"Cluster,omitempty"`
	CapacityProviders               []any                                          `json:"CapacityProviders,omitempty"`
	DefaultCapacityProviderStrategy []ClusterCapacityProviderAssociations_Strategy `json:"DefaultCapacityProviderStrategy,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (ClusterCapacityProviderAssociations) ResourceType() string {
	return "AWS::ECS::ClusterCapacityProviderAssociations"
}

// ClusterCapacityProviderAssociations_Strategy weights one capacity provider.
type ClusterCapacityProviderAssociations_Strategy struct {
	CapacityProvider any `json:"CapacityProvider,omitempty"`
	Weight           int `json:"Weight,omitempty"`
	Base             int `json:"Base,omitempty"`
}

// TaskDefinition is an AWS::ECS::TaskDefinition.
//
// Task definitions are append-only: CloudFormation registers a new revision
// for every change and never mutates an existing one in place.
type TaskDefinition struct {
	Family                  any                                  `json:"Family,omitempty"`
	NetworkMode             string                               `json:"NetworkMode,omitempty"`
	RequiresCompatibilities []any                                `json:"RequiresCompatibilities,omitempty"`
	Cpu                     string                               `json:"Cpu,omitempty"`
	Memory                  string                               `json:"Memory,omitempty"`
	ExecutionRoleArn        any                                  `json:"ExecutionRoleArn,omitempty"`
	TaskRoleArn             any                                  `json:"TaskRoleArn,omitempty"`
	ContainerDefinitions    []TaskDefinition_ContainerDefinition `json:"ContainerDefinitions,omitempty"`
	Tags                    []any                                `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (TaskDefinition) ResourceType() string { return "AWS::ECS::TaskDefinition" }

// TaskDefinition_ContainerDefinition defines one container in a task.
type TaskDefinition_ContainerDefinition struct {
	Name              any                              `json:"Name,omitempty"`
	Image             any                              `json:"Image,omitempty"`
	Cpu               int                              `json:"Cpu,omitempty"`
	Memory            int                              `json:"Memory,omitempty"`
	MemoryReservation int                              `json:"MemoryReservation,omitempty"`
	Essential         bool                             `json:"Essential,omitempty"`
	PortMappings      []TaskDefinition_PortMapping     `json:"PortMappings,omitempty"`
	LogConfiguration  *TaskDefinition_LogConfiguration `json:"LogConfiguration,omitempty"`
	Environment       []TaskDefinition_KeyValuePair    `json:"Environment,omitempty"`
}

// TaskDefinition_PortMapping exposes a container port.
type TaskDefinition_PortMapping struct {
	ContainerPort int    `json:"ContainerPort,omitempty"`
	HostPort      *int   `json:"HostPort,omitempty"`
	Protocol      string `json:"Protocol,omitempty"`
}

// TaskDefinition_LogConfiguration routes container logs to a log driver.
type TaskDefinition_LogConfiguration struct {
	LogDriver string         `json:"LogDriver,omitempty"`
	Options   map[string]any `json:"Options,omitempty"`
}

// TaskDefinition_KeyValuePair is one environment variable.
type TaskDefinition_KeyValuePair struct {
	Name  string `json:"Name,omitempty"`
	Value any    `json:"Value,omitempty"`
}

// Service is an AWS::ECS::Service.
type Service struct {
	ServiceName                   any                           `json:"ServiceName,omitempty"`
	Cluster                       any                           `json:"Cluster,omitempty"`
	TaskDefinition                any                           `json:"TaskDefinition,omitempty"`
	DesiredCount                  int                           `json:"DesiredCount,omitempty"`
	LaunchType                    string                        `json:"LaunchType,omitempty"`
	SchedulingStrategy            string                        `json:"SchedulingStrategy,omitempty"`
	DeploymentController          *Service_DeploymentController `json:"DeploymentController,omitempty"`
	LoadBalancers                 []Service_LoadBalancer        `json:"LoadBalancers,omitempty"`
	HealthCheckGracePeriodSeconds int                           `json:"HealthCheckGracePeriodSeconds,omitempty"`
	Tags                          []any                         `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Service) ResourceType() string { return "AWS::ECS::Service" }

// Service_DeploymentController selects who runs deployments for the service.
// Type CODE_DEPLOY hands rolling updates over to CodeDeploy entirely.
type Service_DeploymentController struct {
	Type string `json:"Type,omitempty"`
}

// Service_LoadBalancer attaches one container port to a target group.
type Service_LoadBalancer struct {
	ContainerName  any `json:"ContainerName,omitempty"`
	ContainerPort  int `json:"ContainerPort,omitempty"`
	TargetGroupArn any `json:"TargetGroupArn,omitempty"`
}
