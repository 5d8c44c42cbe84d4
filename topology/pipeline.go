package topology

import (
	"fmt"

	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/config"
	"github.com/codeavatar1/ecspipe/internal/buildspec"
	"github.com/codeavatar1/ecspipe/intrinsics"
	"github.com/codeavatar1/ecspipe/resources/codebuild"
	"github.com/codeavatar1/ecspipe/resources/codedeploy"
	"github.com/codeavatar1/ecspipe/resources/codepipeline"
	"github.com/codeavatar1/ecspipe/resources/iam"
	"github.com/codeavatar1/ecspipe/resources/s3"
	"github.com/codeavatar1/ecspipe/stack"
)

// addPipeline declares the CodeDeploy deployment group, the ARM image build
// project and the three-stage release pipeline.
func addPipeline(s *stack.Stack, cfg config.Config) error {
	// --- Blue/green deployment orchestration ---

	s.Add("CodeDeployApp", codedeploy.Application{
		ComputePlatform: "ECS",
	})

	s.Add("CodeDeployRole", iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRolePolicy("codedeploy.amazonaws.com"),
		ManagedPolicyArns: intrinsics.Any(
			intrinsics.Sub{String: "arn:${AWS::Partition}:iam::aws:policy/AWSCodeDeployRoleForECS"},
		),
	})

	// Exactly one deployment group owns the service's traffic cutover.
	s.Add("CodeDeployGroup", codedeploy.DeploymentGroup{
		ApplicationName:      intrinsics.Ref{LogicalName: "CodeDeployApp"},
		ServiceRoleArn:       ecspipe.AttrRef{Resource: "CodeDeployRole", Attribute: "Arn"},
		DeploymentConfigName: "CodeDeployDefault.ECSAllAtOnce",
		DeploymentStyle: &codedeploy.DeploymentGroup_DeploymentStyle{
			DeploymentType:   "BLUE_GREEN",
			DeploymentOption: "WITH_TRAFFIC_CONTROL",
		},
		BlueGreenDeploymentConfiguration: &codedeploy.DeploymentGroup_BlueGreenConfig{
			DeploymentReadyOption: &codedeploy.DeploymentGroup_DeploymentReadyOption{
				ActionOnTimeout: "CONTINUE_DEPLOYMENT",
			},
			TerminateBlueInstancesOnDeploymentSuccess: &codedeploy.DeploymentGroup_TerminateBlue{
				Action: "TERMINATE",
			},
		},
		ECSServices: []codedeploy.DeploymentGroup_ECSService{
			{
				ClusterName: intrinsics.Ref{LogicalName: "EcsCluster"},
				ServiceName: ecspipe.AttrRef{Resource: "Ec2Service", Attribute: "Name"},
			},
		},
		LoadBalancerInfo: &codedeploy.DeploymentGroup_LoadBalancerInfo{
			TargetGroupPairInfoList: []codedeploy.DeploymentGroup_TargetGroupPairInfo{
				{
					TargetGroups: []codedeploy.DeploymentGroup_TargetGroupInfo{
						{Name: ecspipe.AttrRef{Resource: "BlueTargetGroup", Attribute: "TargetGroupName"}},
						{Name: ecspipe.AttrRef{Resource: "GreenTargetGroup", Attribute: "TargetGroupName"}},
					},
					ProdTrafficRoute: &codedeploy.DeploymentGroup_TrafficRoute{
						ListenerArns: intrinsics.Any(intrinsics.Ref{LogicalName: "HttpListener"}),
					},
				},
			},
		},
		AutoRollbackConfiguration: &codedeploy.DeploymentGroup_AutoRollback{
			Enabled: true,
			Events:  []string{"DEPLOYMENT_FAILURE"},
		},
	})

	// --- Image build ---

	spec, err := buildspec.ImageBuild(cfg.Container.Name).Render()
	if err != nil {
		return fmt.Errorf("rendering buildspec: %w", err)
	}

	s.Add("BuildRole", iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRolePolicy("codebuild.amazonaws.com"),
		Policies: intrinsics.Any(
			iam.Role_Policy{
				PolicyName: "build-logs",
				PolicyDocument: intrinsics.PolicyDocument{
					Version: intrinsics.PolicyVersion,
					Statement: intrinsics.Any(
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: intrinsics.Any(
								"logs:CreateLogGroup",
								"logs:CreateLogStream",
								"logs:PutLogEvents",
							),
							Resource: intrinsics.Sub{String: "arn:${AWS::Partition}:logs:${AWS::Region}:${AWS::AccountId}:log-group:/aws/codebuild/*"},
						},
					),
				},
			},
			iam.Role_Policy{
				PolicyName: "image-pull-push",
				PolicyDocument: intrinsics.PolicyDocument{
					Version: intrinsics.PolicyVersion,
					Statement: intrinsics.Any(
						intrinsics.PolicyStatement{
							Effect:   "Allow",
							Action:   "ecr:GetAuthorizationToken",
							Resource: "*",
						},
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: intrinsics.Any(
								"ecr:BatchCheckLayerAvailability",
								"ecr:GetDownloadUrlForLayer",
								"ecr:BatchGetImage",
								"ecr:PutImage",
								"ecr:InitiateLayerUpload",
								"ecr:UploadLayerPart",
								"ecr:CompleteLayerUpload",
							),
							Resource: ecspipe.AttrRef{Resource: "ImageRepo", Attribute: "Arn"},
						},
					),
				},
			},
			iam.Role_Policy{
				PolicyName: "artifact-access",
				PolicyDocument: intrinsics.PolicyDocument{
					Version: intrinsics.PolicyVersion,
					Statement: intrinsics.Any(
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: intrinsics.Any(
								"s3:GetObject",
								"s3:GetObjectVersion",
								"s3:PutObject",
							),
							Resource: intrinsics.Sub{String: "${ArtifactBucket.Arn}/*"},
						},
					),
				},
			},
		),
	})

	s.Add("BuildImage", codebuild.Project{
		ServiceRole: ecspipe.AttrRef{Resource: "BuildRole", Attribute: "Arn"},
		Source: &codebuild.Project_Source{
			Type:      "CODEPIPELINE",
			BuildSpec: spec,
		},
		Artifacts: &codebuild.Project_Artifacts{
			Type: "CODEPIPELINE",
		},
		Environment: &codebuild.Project_Environment{
			Type:           codebuild.ArmContainer,
			ComputeType:    codebuild.ComputeSmall,
			Image:          codebuild.ArmAmazonLinux2Std,
			PrivilegedMode: true,
			EnvironmentVariables: []codebuild.Project_EnvironmentVariable{
				{Name: "REPOSITORY_URI", Value: ecspipe.AttrRef{Resource: "ImageRepo", Attribute: "RepositoryUri"}},
				{Name: "TASK_ROLE_ARN", Value: ecspipe.AttrRef{Resource: "TaskRole", Attribute: "Arn"}},
				{Name: "EXECUTION_ROLE_ARN", Value: ecspipe.AttrRef{Resource: "TaskExecutionRole", Attribute: "Arn"}},
				{Name: "TASK_DEFINITION_ARN", Value: intrinsics.Ref{LogicalName: "Ec2TaskDef"}},
			},
		},
	})

	// --- Release pipeline ---

	s.Add("ArtifactBucket", s3.Bucket{
		VersioningConfiguration: &s3.Bucket_VersioningConfiguration{Status: "Enabled"},
		BucketEncryption: &s3.Bucket_BucketEncryption{
			ServerSideEncryptionConfiguration: []s3.Bucket_ServerSideEncryptionRule{
				{ServerSideEncryptionByDefault: &s3.Bucket_ServerSideEncryptionByDefault{SSEAlgorithm: "AES256"}},
			},
		},
		PublicAccessBlockConfiguration: &s3.Bucket_PublicAccessBlockConfiguration{
			BlockPublicAcls:       true,
			BlockPublicPolicy:     true,
			IgnorePublicAcls:      true,
			RestrictPublicBuckets: true,
		},
	})

	s.Add("PipelineRole", iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRolePolicy("codepipeline.amazonaws.com"),
		Policies: intrinsics.Any(
			iam.Role_Policy{
				PolicyName: "pipeline-actions",
				PolicyDocument: intrinsics.PolicyDocument{
					Version: intrinsics.PolicyVersion,
					Statement: intrinsics.Any(
						intrinsics.PolicyStatement{
							Effect:   "Allow",
							Action:   "codestar-connections:UseConnection",
							Resource: intrinsics.Param("ConnectionArn"),
						},
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: intrinsics.Any(
								"codebuild:StartBuild",
								"codebuild:BatchGetBuilds",
							),
							Resource: ecspipe.AttrRef{Resource: "BuildImage", Attribute: "Arn"},
						},
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: intrinsics.Any(
								"codedeploy:CreateDeployment",
								"codedeploy:GetDeployment",
								"codedeploy:GetDeploymentConfig",
								"codedeploy:GetApplication",
								"codedeploy:GetApplicationRevision",
								"codedeploy:RegisterApplicationRevision",
							),
							Resource: "*",
						},
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: intrinsics.Any(
								"ecs:RegisterTaskDefinition",
								"ecs:DescribeServices",
								"ecs:DescribeTaskDefinition",
							),
							Resource: "*",
						},
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: "iam:PassRole",
							Resource: intrinsics.Any(
								ecspipe.AttrRef{Resource: "TaskRole", Attribute: "Arn"},
								ecspipe.AttrRef{Resource: "TaskExecutionRole", Attribute: "Arn"},
							),
						},
						intrinsics.PolicyStatement{
							Effect: "Allow",
							Action: intrinsics.Any(
								"s3:GetObject",
								"s3:GetObjectVersion",
								"s3:GetBucketVersioning",
								"s3:PutObject",
							),
							Resource: intrinsics.Any(
								ecspipe.AttrRef{Resource: "ArtifactBucket", Attribute: "Arn"},
								intrinsics.Sub{String: "${ArtifactBucket.Arn}/*"},
							),
						},
					),
				},
			},
		),
	})

	// Stage order is fixed: Source, then Build, then Deploy. Artifacts flow
	// by name between declared stages.
	s.Add("Pipeline", codepipeline.Pipeline{
		Name:    cfg.StackName,
		RoleArn: ecspipe.AttrRef{Resource: "PipelineRole", Attribute: "Arn"},
		ArtifactStore: &codepipeline.Pipeline_ArtifactStore{
			Type:     "S3",
			Location: intrinsics.Ref{LogicalName: "ArtifactBucket"},
		},
		Stages: []codepipeline.Pipeline_Stage{
			{
				Name: "Source",
				Actions: []codepipeline.Pipeline_Action{
					{
						Name: "GitHub_Source",
						ActionTypeId: &codepipeline.Pipeline_ActionTypeId{
							Category: "Source",
							Owner:    "AWS",
							Provider: "CodeStarSourceConnection",
							Version:  "1",
						},
						Configuration: map[string]any{
							"ConnectionArn":    intrinsics.Param("ConnectionArn"),
							"FullRepositoryId": intrinsics.Sub{String: "${GitHubOwner}/${GitHubRepo}"},
							"BranchName":       intrinsics.Param("SourceBranch"),
						},
						OutputArtifacts: []codepipeline.Pipeline_ArtifactRef{{Name: "SourceOutput"}},
						RunOrder:        1,
					},
				},
			},
			{
				Name: "Build",
				Actions: []codepipeline.Pipeline_Action{
					{
						Name: "Build_ARM_Image",
						ActionTypeId: &codepipeline.Pipeline_ActionTypeId{
							Category: "Build",
							Owner:    "AWS",
							Provider: "CodeBuild",
							Version:  "1",
						},
						Configuration: map[string]any{
							"ProjectName": intrinsics.Ref{LogicalName: "BuildImage"},
						},
						InputArtifacts:  []codepipeline.Pipeline_ArtifactRef{{Name: "SourceOutput"}},
						OutputArtifacts: []codepipeline.Pipeline_ArtifactRef{{Name: "BuildOutput"}},
						RunOrder:        1,
					},
				},
			},
			{
				Name: "Deploy",
				Actions: []codepipeline.Pipeline_Action{
					{
						Name: "BlueGreenDeploy",
						ActionTypeId: &codepipeline.Pipeline_ActionTypeId{
							Category: "Deploy",
							Owner:    "AWS",
							Provider: "CodeDeployToECS",
							Version:  "1",
						},
						Configuration: map[string]any{
							"ApplicationName":                intrinsics.Ref{LogicalName: "CodeDeployApp"},
							"DeploymentGroupName":            intrinsics.Ref{LogicalName: "CodeDeployGroup"},
							"TaskDefinitionTemplateArtifact": "BuildOutput",
							"TaskDefinitionTemplatePath":     "output/taskdef.json",
							"AppSpecTemplateArtifact":        "BuildOutput",
							"AppSpecTemplatePath":            "output/appspec.yaml",
							"Image1ArtifactName":             "BuildOutput",
							"Image1ContainerName":            "IMAGE1_NAME",
						},
						InputArtifacts: []codepipeline.Pipeline_ArtifactRef{{Name: "BuildOutput"}},
						RunOrder:       1,
					},
				},
			},
		},
	})

	return nil
}
