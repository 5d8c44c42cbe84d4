// Package buildspec models the inline CodeBuild buildspec for the image
// build stage.
//
// The buildspec is carried inline on the CodeBuild project so the source
// artifact does not need a buildspec.yml. Phase order is fixed by struct
// field order: pre_build, build, post_build.
package buildspec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is a CodeBuild buildspec document.
type Spec struct {
	Version   string     `yaml:"version"`
	Env       *Env       `yaml:"env,omitempty"`
	Phases    Phases     `yaml:"phases"`
	Artifacts *Artifacts `yaml:"artifacts,omitempty"`
}

// Env holds buildspec environment variables.
type Env struct {
	Variables map[string]string `yaml:"variables,omitempty"`
}

// Phases are the build lifecycle phases in execution order.
type Phases struct {
	PreBuild  *Phase `yaml:"pre_build,omitempty"`
	Build     *Phase `yaml:"build,omitempty"`
	PostBuild *Phase `yaml:"post_build,omitempty"`
}

// Phase is one list of shell commands.
type Phase struct {
	Commands []string `yaml:"commands"`
}

// Artifacts names the files handed back to the pipeline.
type Artifacts struct {
	Files []string `yaml:"files"`
}

// Render serializes the buildspec to YAML.
func (s Spec) Render() (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImageBuild returns the buildspec for building and pushing the container
// image. The image tag tracks the resolved source commit, falling back to
// latest for manual executions. The taskdef/appspec copy and sed steps
// tolerate sources that do not carry those files yet.
func ImageBuild(container string) Spec {
	return Spec{
		Version: "0.2",
		Env: &Env{
			Variables: map[string]string{
				"IMAGE_TAG": "${CODEBUILD_RESOLVED_SOURCE_VERSION:-latest}",
			},
		},
		Phases: Phases{
			PreBuild: &Phase{
				Commands: []string{
					"echo Logging in to Amazon ECR...",
					"aws --version || true",
					"aws ecr get-login-password --region ${AWS_REGION:-us-east-1} | docker login --username AWS --password-stdin $REPOSITORY_URI",
					"echo Using image tag: $IMAGE_TAG",
				},
			},
			Build: &Phase{
				Commands: []string{
					"echo Build started on `date`",
					"echo Building the Docker image...",
					"docker build -t $REPOSITORY_URI:$IMAGE_TAG .",
				},
			},
			PostBuild: &Phase{
				Commands: []string{
					"echo Build completed on `date`",
					"echo Pushing the Docker image...",
					"docker push $REPOSITORY_URI:$IMAGE_TAG",
					"echo Writing imagedefinitions.json for CodeDeploy/CodePipeline",
					fmt.Sprintf(`printf '[{"name":"%s","imageUri":"%%s"}]' $REPOSITORY_URI:$IMAGE_TAG > imagedefinitions.json`, container),
					"mkdir -p output",
					"cp app/taskdef.json output/taskdef.json || true",
					"cp app/appspec.yaml output/appspec.yaml || true",
					"echo Replacing role placeholders in task definition",
					`sed -i "s|TASK_ROLE_ARN|$TASK_ROLE_ARN|g" output/taskdef.json || true`,
					`sed -i "s|EXECUTION_ROLE_ARN|$EXECUTION_ROLE_ARN|g" output/taskdef.json || true`,
				},
			},
		},
		Artifacts: &Artifacts{
			Files: []string{
				"imagedefinitions.json",
				"output/taskdef.json",
				"output/appspec.yaml",
			},
		},
	}
}

// ImageDefinitions renders the imagedefinitions.json document CodePipeline
// hands to the deploy stage.
func ImageDefinitions(container, imageURI string) string {
	return fmt.Sprintf(`[{"name":%q,"imageUri":%q}]`, container, imageURI)
}

// SubstituteRoles replaces the role placeholders in a task definition
// document, mirroring the post_build sed steps.
func SubstituteRoles(doc, taskRoleArn, executionRoleArn string) string {
	doc = strings.ReplaceAll(doc, "TASK_ROLE_ARN", taskRoleArn)
	doc = strings.ReplaceAll(doc, "EXECUTION_ROLE_ARN", executionRoleArn)
	return doc
}
