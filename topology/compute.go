package topology

import (
	"fmt"

	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/config"
	"github.com/codeavatar1/ecspipe/intrinsics"
	"github.com/codeavatar1/ecspipe/resources/autoscaling"
	"github.com/codeavatar1/ecspipe/resources/ec2"
	"github.com/codeavatar1/ecspipe/resources/ecr"
	"github.com/codeavatar1/ecspipe/resources/ecs"
	"github.com/codeavatar1/ecspipe/resources/iam"
	"github.com/codeavatar1/ecspipe/stack"
)

// addCompute declares the image repository, the ECS cluster and the ARM
// container instances backing it.
func addCompute(s *stack.Stack, cfg config.Config) {
	s.Add("ImageRepo", ecr.Repository{})

	s.Add("EcsCluster", ecs.Cluster{})

	// --- Container instance identity ---

	s.Add("InstanceRole", iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRolePolicy("ec2.amazonaws.com"),
		ManagedPolicyArns: intrinsics.Any(
			intrinsics.Sub{String: "arn:${AWS::Partition}:iam::aws:policy/service-role/AmazonEC2ContainerServiceforEC2Role"},
		),
	})

	s.Add("InstanceProfile", iam.InstanceProfile{
		Roles: intrinsics.Any(intrinsics.Ref{LogicalName: "InstanceRole"}),
	})

	s.Add("InstanceSecurityGroup", ec2.SecurityGroup{
		GroupDescription: "Container instances behind the load balancer",
		VpcId:            intrinsics.Param("VpcId"),
	})

	// Ingress lives as a standalone rule so the instance group and the ALB
	// group can reference each other without a cycle.
	s.Add("InstanceIngress", ec2.SecurityGroupIngress{
		Description:           "Service traffic from the load balancer",
		GroupId:               ecspipe.AttrRef{Resource: "InstanceSecurityGroup", Attribute: "GroupId"},
		IpProtocol:            "tcp",
		FromPort:              cfg.Container.Port,
		ToPort:                cfg.Container.Port,
		SourceSecurityGroupId: ecspipe.AttrRef{Resource: "AlbSecurityGroup", Attribute: "GroupId"},
	})

	// --- ARM capacity ---

	s.Add("ArmLaunchTemplate", ec2.LaunchTemplate{
		LaunchTemplateData: &ec2.LaunchTemplate_Data{
			ImageId:      intrinsics.Param("EcsAmiId"),
			InstanceType: cfg.Capacity.InstanceType,
			IamInstanceProfile: &ec2.LaunchTemplate_InstanceProfile{
				Arn: ecspipe.AttrRef{Resource: "InstanceProfile", Attribute: "Arn"},
			},
			SecurityGroupIds: intrinsics.Any(
				ecspipe.AttrRef{Resource: "InstanceSecurityGroup", Attribute: "GroupId"},
			),
			UserData: intrinsics.Base64{
				Value: intrinsics.Sub{String: "#!/bin/bash\necho ECS_CLUSTER=${EcsCluster} >> /etc/ecs/ecs.config\n"},
			},
		},
	})

	s.Add("ArmCapacityGroup", autoscaling.AutoScalingGroup{
		MinSize:           fmt.Sprint(cfg.Capacity.MinCapacity),
		MaxSize:           fmt.Sprint(cfg.Capacity.MaxCapacity),
		VPCZoneIdentifier: intrinsics.Param("SubnetIds"),
		LaunchTemplate: &autoscaling.AutoScalingGroup_LaunchTemplateSpec{
			LaunchTemplateId: intrinsics.Ref{LogicalName: "ArmLaunchTemplate"},
			Version:          ecspipe.AttrRef{Resource: "ArmLaunchTemplate", Attribute: "LatestVersionNumber"},
		},
	})

	s.Add("ArmCapacityProvider", ecs.CapacityProvider{
		AutoScalingGroupProvider: &ecs.CapacityProvider_AutoScalingGroupProvider{
			AutoScalingGroupArn: intrinsics.Ref{LogicalName: "ArmCapacityGroup"},
			ManagedScaling: &ecs.CapacityProvider_ManagedScaling{
				Status:         "ENABLED",
				TargetCapacity: 100,
			},
		},
	})

	s.Add("CapacityAssociation", ecs.ClusterCapacityProviderAssociations{
		Cluster: intrinsics.Ref{LogicalName: "EcsCluster"},
		CapacityProviders: intrinsics.Any(
			intrinsics.Ref{LogicalName: "ArmCapacityProvider"},
		),
		DefaultCapacityProviderStrategy: []ecs.ClusterCapacityProviderAssociations_Strategy{
			{
				CapacityProvider: intrinsics.Ref{LogicalName: "ArmCapacityProvider"},
				Weight:           1,
			},
		},
	})
}
