// Package deployer submits synthesized templates to CloudFormation and waits
// for the stack to reach a terminal status.
package deployer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/rs/zerolog"

	ecspipe "github.com/codeavatar1/ecspipe"
)

// API is the CloudFormation surface the deployer needs. The SDK client
// satisfies it; tests substitute a stub.
type API interface {
	CreateStack(ctx context.Context, in *cloudformation.CreateStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, in *cloudformation.UpdateStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DescribeStacks(ctx context.Context, in *cloudformation.DescribeStacksInput, opts ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
}

// Deployer drives create-or-update deployments.
type Deployer struct {
	client       API
	log          zerolog.Logger
	pollInterval time.Duration
}

// New builds a deployer against the real CloudFormation service.
func New(ctx context.Context, region string, log zerolog.Logger) (*Deployer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewFromClient(cloudformation.NewFromConfig(cfg), log), nil
}

// NewFromClient builds a deployer around an existing client.
func NewFromClient(client API, log zerolog.Logger) *Deployer {
	return &Deployer{
		client:       client,
		log:          log,
		pollInterval: 5 * time.Second,
	}
}

// Deploy creates the stack if it does not exist, updates it otherwise, and
// polls until CloudFormation reports a terminal status. An update with no
// changes is a successful no-op.
func (d *Deployer) Deploy(ctx context.Context, stackName, templateBody string, params map[string]string) (*ecspipe.DeployResult, error) {
	result := &ecspipe.DeployResult{StackName: stackName}

	parameters := toParameters(params)
	exists, err := d.stackExists(ctx, stackName)
	if err != nil {
		return nil, err
	}

	if exists {
		d.log.Info().Str("stack", stackName).Msg("updating stack")
		_, err = d.client.UpdateStack(ctx, &cloudformation.UpdateStackInput{
			StackName:    aws.String(stackName),
			TemplateBody: aws.String(templateBody),
			Parameters:   parameters,
			Capabilities: []types.Capability{types.CapabilityCapabilityNamedIam},
		})
		if err != nil {
			if isNoUpdate(err) {
				d.log.Info().Str("stack", stackName).Msg("no changes to deploy")
				return d.describe(ctx, stackName, result)
			}
			return nil, fmt.Errorf("updating stack %s: %w", stackName, err)
		}
	} else {
		d.log.Info().Str("stack", stackName).Msg("creating stack")
		out, err := d.client.CreateStack(ctx, &cloudformation.CreateStackInput{
			StackName:    aws.String(stackName),
			TemplateBody: aws.String(templateBody),
			Parameters:   parameters,
			Capabilities: []types.Capability{types.CapabilityCapabilityNamedIam},
			OnFailure:    types.OnFailureRollback,
		})
		if err != nil {
			return nil, fmt.Errorf("creating stack %s: %w", stackName, err)
		}
		result.StackID = aws.ToString(out.StackId)
	}

	return d.wait(ctx, stackName, result)
}

// wait polls DescribeStacks until the stack reaches a terminal status.
func (d *Deployer) wait(ctx context.Context, stackName string, result *ecspipe.DeployResult) (*ecspipe.DeployResult, error) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		stack, err := d.currentStack(ctx, stackName)
		if err != nil {
			return nil, err
		}

		status := string(stack.StackStatus)
		result.Status = status
		result.StackID = aws.ToString(stack.StackId)

		if terminal, ok := terminalStatus(stack.StackStatus); terminal {
			result.Success = ok
			result.Outputs = toOutputs(stack.Outputs)
			if !ok {
				reason := aws.ToString(stack.StackStatusReason)
				if reason != "" {
					result.Errors = append(result.Errors, reason)
				}
				d.log.Error().Str("stack", stackName).Str("status", status).Msg("deployment failed")
			} else {
				d.log.Info().Str("stack", stackName).Str("status", status).Msg("deployment complete")
			}
			return result, nil
		}

		d.log.Debug().Str("stack", stackName).Str("status", status).Msg("waiting")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// describe fills the result from the current stack state without waiting.
func (d *Deployer) describe(ctx context.Context, stackName string, result *ecspipe.DeployResult) (*ecspipe.DeployResult, error) {
	stack, err := d.currentStack(ctx, stackName)
	if err != nil {
		return nil, err
	}
	result.Success = true
	result.StackID = aws.ToString(stack.StackId)
	result.Status = string(stack.StackStatus)
	result.Outputs = toOutputs(stack.Outputs)
	return result, nil
}

func (d *Deployer) currentStack(ctx context.Context, stackName string) (*types.Stack, error) {
	out, err := d.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("describing stack %s: %w", stackName, err)
	}
	if len(out.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s not found", stackName)
	}
	return &out.Stacks[0], nil
}

func (d *Deployer) stackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := d.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if isNotFound(err, stackName) {
			return false, nil
		}
		return false, fmt.Errorf("describing stack %s: %w", stackName, err)
	}
	return true, nil
}

// terminalStatus reports whether the status is terminal and whether it is a
// success.
func terminalStatus(status types.StackStatus) (terminal, ok bool) {
	switch status {
	case types.StackStatusCreateComplete, types.StackStatusUpdateComplete:
		return true, true
	case types.StackStatusCreateFailed,
		types.StackStatusRollbackComplete,
		types.StackStatusRollbackFailed,
		types.StackStatusUpdateRollbackComplete,
		types.StackStatusUpdateRollbackFailed,
		types.StackStatusDeleteComplete,
		types.StackStatusDeleteFailed:
		return true, false
	default:
		return false, false
	}
}

// isNoUpdate matches the sentinel CloudFormation returns when the template
// and parameters are unchanged.
func isNoUpdate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "No updates are to be performed")
}

func isNotFound(err error, stackName string) bool {
	if err == nil {
		return false
	}
	var apiErr interface{ ErrorCode() string }
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ValidationError" {
		return strings.Contains(err.Error(), "does not exist")
	}
	return strings.Contains(err.Error(), "does not exist")
}

func toParameters(params map[string]string) []types.Parameter {
	if len(params) == 0 {
		return nil
	}
	out := make([]types.Parameter, 0, len(params))
	for key, value := range params {
		out = append(out, types.Parameter{
			ParameterKey:   aws.String(key),
			ParameterValue: aws.String(value),
		})
	}
	return out
}

func toOutputs(outputs []types.Output) map[string]string {
	if len(outputs) == 0 {
		return nil
	}
	result := make(map[string]string, len(outputs))
	for _, out := range outputs {
		result[aws.ToString(out.OutputKey)] = aws.ToString(out.OutputValue)
	}
	return result
}
