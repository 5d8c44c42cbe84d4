package topology

import (
	"fmt"

	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/config"
	"github.com/codeavatar1/ecspipe/intrinsics"
	"github.com/codeavatar1/ecspipe/resources/ec2"
	"github.com/codeavatar1/ecspipe/resources/ecs"
	"github.com/codeavatar1/ecspipe/resources/elasticloadbalancingv2"
	"github.com/codeavatar1/ecspipe/resources/iam"
	"github.com/codeavatar1/ecspipe/resources/logs"
	"github.com/codeavatar1/ecspipe/stack"
)

// addService declares the task definition, the load balancer pair and the
// CodeDeploy-controlled ECS service.
func addService(s *stack.Stack, cfg config.Config) {
	// --- Task identity and logging ---

	s.Add("AppLogGroup", logs.LogGroup{
		LogGroupName:    intrinsics.Sub{String: "/ecs/${AWS::StackName}/" + cfg.Container.Name},
		RetentionInDays: 30,
	})

	s.Add("TaskRole", iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRolePolicy("ecs-tasks.amazonaws.com"),
	})

	s.Add("TaskExecutionRole", iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRolePolicy("ecs-tasks.amazonaws.com"),
		ManagedPolicyArns: intrinsics.Any(
			intrinsics.Sub{String: "arn:${AWS::Partition}:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy"},
		),
	})

	// A changed definition registers a new revision; nothing mutates an
	// existing one in place.
	s.Add("Ec2TaskDef", ecs.TaskDefinition{
		Family:                  intrinsics.Sub{String: "${AWS::StackName}-" + cfg.Container.Name},
		RequiresCompatibilities: intrinsics.Any("EC2"),
		TaskRoleArn:             ecspipe.AttrRef{Resource: "TaskRole", Attribute: "Arn"},
		ExecutionRoleArn:        ecspipe.AttrRef{Resource: "TaskExecutionRole", Attribute: "Arn"},
		ContainerDefinitions: []ecs.TaskDefinition_ContainerDefinition{
			{
				Name:              cfg.Container.Name,
				Image:             intrinsics.Sub{String: "${ImageRepo.RepositoryUri}:latest"},
				Cpu:               cfg.Container.Cpu,
				MemoryReservation: cfg.Container.MemoryReservation,
				Essential:         true,
				PortMappings: []ecs.TaskDefinition_PortMapping{
					{ContainerPort: cfg.Container.Port, Protocol: "tcp"},
				},
				LogConfiguration: &ecs.TaskDefinition_LogConfiguration{
					LogDriver: "awslogs",
					Options: intrinsics.Json{
						"awslogs-group":         intrinsics.Ref{LogicalName: "AppLogGroup"},
						"awslogs-region":        intrinsics.AWS_REGION,
						"awslogs-stream-prefix": cfg.Container.StreamPrefix,
					},
				},
			},
		},
	})

	// --- Load balancer and target group pair ---

	s.Add("AlbSecurityGroup", ec2.SecurityGroup{
		GroupDescription: "Public HTTP to the load balancer",
		VpcId:            intrinsics.Param("VpcId"),
		SecurityGroupIngress: []ec2.SecurityGroup_IngressRule{
			{
				Description: "HTTP from anywhere",
				IpProtocol:  "tcp",
				FromPort:    cfg.Container.Port,
				ToPort:      cfg.Container.Port,
				CidrIp:      "0.0.0.0/0",
			},
		},
	})

	s.Add("Alb", elasticloadbalancingv2.LoadBalancer{
		Type:    "application",
		Scheme:  "internet-facing",
		Subnets: intrinsics.Param("SubnetIds"),
		SecurityGroups: intrinsics.Any(
			ecspipe.AttrRef{Resource: "AlbSecurityGroup", Attribute: "GroupId"},
		),
	})

	s.Add("BlueTargetGroup", targetGroup(cfg))
	s.Add("GreenTargetGroup", targetGroup(cfg))

	// The listener starts out forwarding all traffic to blue. Only the
	// deployment orchestration rewrites this binding.
	s.Add("HttpListener", elasticloadbalancingv2.Listener{
		LoadBalancerArn: intrinsics.Ref{LogicalName: "Alb"},
		Port:            cfg.Container.Port,
		Protocol:        "HTTP",
		DefaultActions: []elasticloadbalancingv2.Listener_Action{
			{
				Type:           "forward",
				TargetGroupArn: intrinsics.Ref{LogicalName: "BlueTargetGroup"},
			},
		},
	})

	// --- Service ---

	// The listener must exist before the service can bind its target group.
	s.Add("Ec2Service", ecs.Service{
		Cluster:        intrinsics.Ref{LogicalName: "EcsCluster"},
		TaskDefinition: intrinsics.Ref{LogicalName: "Ec2TaskDef"},
		DesiredCount:   1,
		LaunchType:     "EC2",
		DeploymentController: &ecs.Service_DeploymentController{
			Type: "CODE_DEPLOY",
		},
		LoadBalancers: []ecs.Service_LoadBalancer{
			{
				ContainerName:  cfg.Container.Name,
				ContainerPort:  cfg.Container.Port,
				TargetGroupArn: intrinsics.Ref{LogicalName: "BlueTargetGroup"},
			},
		},
	}, "HttpListener", "CapacityAssociation")
}

// targetGroup builds one of the interchangeable blue/green target groups.
func targetGroup(cfg config.Config) elasticloadbalancingv2.TargetGroup {
	return elasticloadbalancingv2.TargetGroup{
		Port:            cfg.Container.Port,
		Protocol:        "HTTP",
		VpcId:           intrinsics.Param("VpcId"),
		TargetType:      "instance",
		HealthCheckPath: "/",
		HealthCheckPort: fmt.Sprint(cfg.Container.Port),
	}
}
