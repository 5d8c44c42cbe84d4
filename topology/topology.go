// Package topology declares the container release pipeline: an ECR
// repository, an ARM-backed ECS cluster, a blue/green service behind an
// application load balancer, and a three-stage CodePipeline that builds the
// image on ARM CodeBuild and deploys it through CodeDeploy.
//
// The network is referenced, not created: the stack attaches to an existing
// VPC and public subnets supplied as parameters.
package topology

import (
	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/config"
	"github.com/codeavatar1/ecspipe/intrinsics"
	"github.com/codeavatar1/ecspipe/stack"
)

// armAmiParameter resolves the current ECS-optimized Amazon Linux 2 ARM AMI
// through SSM at deploy time.
const armAmiParameter = "/aws/service/ecs/optimized-ami/amazon-linux-2/arm64/recommended/image_id"

// Build declares the full topology for one environment.
func Build(cfg config.Config) (*stack.Stack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := stack.New(cfg.StackName, "Blue/green container release pipeline on ECS ARM capacity")

	// ------------------------------------------------------------------
	// Parameters
	// ------------------------------------------------------------------

	s.Parameter("VpcId", ecspipe.Parameter{
		Type:        "AWS::EC2::VPC::Id",
		Description: "Existing VPC the service and load balancer attach to",
	})
	s.Parameter("SubnetIds", ecspipe.Parameter{
		Type:        "List<AWS::EC2::Subnet::Id>",
		Description: "Public subnets for the load balancer and container instances",
	})
	s.Parameter("EcsAmiId", ecspipe.Parameter{
		Type:        "AWS::SSM::Parameter::Value<AWS::EC2::Image::Id>",
		Description: "ECS-optimized Amazon Linux 2 ARM AMI",
		Default:     armAmiParameter,
	})
	s.Parameter("GitHubOwner", ecspipe.Parameter{
		Type:        "String",
		Description: "GitHub owner of the source repository",
		Default:     cfg.Source.Owner,
	})
	s.Parameter("GitHubRepo", ecspipe.Parameter{
		Type:        "String",
		Description: "GitHub repository the pipeline releases from",
		Default:     cfg.Source.Repository,
	})
	s.Parameter("SourceBranch", ecspipe.Parameter{
		Type:        "String",
		Description: "Branch that triggers the pipeline",
		Default:     cfg.Source.Branch,
	})
	s.Parameter("ConnectionArn", ecspipe.Parameter{
		Type:        "String",
		Description: "CodeStar connection to GitHub",
		Default:     cfg.Source.ConnectionArn,
	})

	// ------------------------------------------------------------------
	// Resources
	// ------------------------------------------------------------------

	addCompute(s, cfg)
	addService(s, cfg)
	if err := addPipeline(s, cfg); err != nil {
		return nil, err
	}

	// ------------------------------------------------------------------
	// Outputs
	// ------------------------------------------------------------------

	s.Output("ServiceURL", ecspipe.Output{
		Description: "HTTP endpoint of the deployed service",
		Value:       intrinsics.Sub{String: "http://${Alb.DNSName}"},
	})
	s.Output("RepositoryUri", ecspipe.Output{
		Description: "ECR repository the pipeline pushes images to",
		Value:       ecspipe.AttrRef{Resource: "ImageRepo", Attribute: "RepositoryUri"},
	})
	s.Output("PipelineName", ecspipe.Output{
		Description: "Release pipeline",
		Value:       intrinsics.Ref{LogicalName: "Pipeline"},
	})

	return s, nil
}
