package deployer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	created *cloudformation.CreateStackInput
	updated *cloudformation.UpdateStackInput

	createErr error
	updateErr error

	// describe responses returned in order; the last repeats.
	describes   []*cloudformation.DescribeStacksOutput
	describeErr []error
	calls       int
}

func (s *stubClient) CreateStack(_ context.Context, in *cloudformation.CreateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error) {
	s.created = in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &cloudformation.CreateStackOutput{StackId: aws.String("stack-id-1")}, nil
}

func (s *stubClient) UpdateStack(_ context.Context, in *cloudformation.UpdateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error) {
	s.updated = in
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &cloudformation.UpdateStackOutput{StackId: aws.String("stack-id-1")}, nil
}

func (s *stubClient) DescribeStacks(_ context.Context, _ *cloudformation.DescribeStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	i := s.calls
	s.calls++
	if i >= len(s.describes) {
		i = len(s.describes) - 1
	}
	if i < len(s.describeErr) && s.describeErr[i] != nil {
		return nil, s.describeErr[i]
	}
	return s.describes[i], nil
}

func stackOutput(status types.StackStatus, outputs ...types.Output) *cloudformation.DescribeStacksOutput {
	return &cloudformation.DescribeStacksOutput{
		Stacks: []types.Stack{{
			StackId:     aws.String("stack-id-1"),
			StackName:   aws.String("EcsArmPipeline"),
			StackStatus: status,
			Outputs:     outputs,
		}},
	}
}

func testDeployer(client API) *Deployer {
	d := NewFromClient(client, zerolog.Nop())
	d.pollInterval = time.Millisecond
	return d
}

func TestDeployCreatesMissingStack(t *testing.T) {
	stub := &stubClient{
		describes: []*cloudformation.DescribeStacksOutput{
			nil, // first describe: not found
			stackOutput(types.StackStatusCreateInProgress),
			stackOutput(types.StackStatusCreateComplete,
				types.Output{OutputKey: aws.String("ServiceURL"), OutputValue: aws.String("http://alb.example")}),
		},
		describeErr: []error{errors.New("ValidationError: Stack with id EcsArmPipeline does not exist")},
	}

	result, err := testDeployer(stub).Deploy(context.Background(), "EcsArmPipeline", "{}", map[string]string{"VpcId": "vpc-1"})
	require.NoError(t, err)

	require.NotNil(t, stub.created)
	assert.Nil(t, stub.updated)
	assert.Equal(t, []types.Capability{types.CapabilityCapabilityNamedIam}, stub.created.Capabilities)
	require.Len(t, stub.created.Parameters, 1)
	assert.Equal(t, "VpcId", aws.ToString(stub.created.Parameters[0].ParameterKey))

	assert.True(t, result.Success)
	assert.Equal(t, "CREATE_COMPLETE", result.Status)
	assert.Equal(t, "http://alb.example", result.Outputs["ServiceURL"])
}

func TestDeployUpdatesExistingStack(t *testing.T) {
	stub := &stubClient{
		describes: []*cloudformation.DescribeStacksOutput{
			stackOutput(types.StackStatusCreateComplete),
			stackOutput(types.StackStatusUpdateInProgress),
			stackOutput(types.StackStatusUpdateComplete),
		},
	}

	result, err := testDeployer(stub).Deploy(context.Background(), "EcsArmPipeline", "{}", nil)
	require.NoError(t, err)

	require.NotNil(t, stub.updated)
	assert.Nil(t, stub.created)
	assert.True(t, result.Success)
	assert.Equal(t, "UPDATE_COMPLETE", result.Status)
}

func TestDeployNoChangesIsNoOp(t *testing.T) {
	stub := &stubClient{
		updateErr: errors.New("ValidationError: No updates are to be performed."),
		describes: []*cloudformation.DescribeStacksOutput{
			stackOutput(types.StackStatusUpdateComplete,
				types.Output{OutputKey: aws.String("ServiceURL"), OutputValue: aws.String("http://alb.example")}),
		},
	}

	result, err := testDeployer(stub).Deploy(context.Background(), "EcsArmPipeline", "{}", nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "http://alb.example", result.Outputs["ServiceURL"])
}

func TestDeployReportsRollback(t *testing.T) {
	stub := &stubClient{
		describes: []*cloudformation.DescribeStacksOutput{
			nil,
			stackOutput(types.StackStatusCreateInProgress),
			{
				Stacks: []types.Stack{{
					StackId:           aws.String("stack-id-1"),
					StackStatus:       types.StackStatusRollbackComplete,
					StackStatusReason: aws.String("Resource creation cancelled"),
				}},
			},
		},
		describeErr: []error{errors.New("ValidationError: Stack with id EcsArmPipeline does not exist")},
	}

	result, err := testDeployer(stub).Deploy(context.Background(), "EcsArmPipeline", "{}", nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "ROLLBACK_COMPLETE", result.Status)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "cancelled")
}

func TestDeployHonorsContextCancellation(t *testing.T) {
	stub := &stubClient{
		describes: []*cloudformation.DescribeStacksOutput{
			stackOutput(types.StackStatusCreateComplete),
			stackOutput(types.StackStatusUpdateInProgress),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	d := NewFromClient(stub, zerolog.Nop())
	d.pollInterval = time.Hour

	_, err := d.Deploy(ctx, "EcsArmPipeline", "{}", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTerminalStatus(t *testing.T) {
	tests := []struct {
		status   types.StackStatus
		terminal bool
		ok       bool
	}{
		{types.StackStatusCreateComplete, true, true},
		{types.StackStatusUpdateComplete, true, true},
		{types.StackStatusRollbackComplete, true, false},
		{types.StackStatusUpdateRollbackComplete, true, false},
		{types.StackStatusCreateInProgress, false, false},
		{types.StackStatusUpdateInProgress, false, false},
	}

	for _, tt := range tests {
		terminal, ok := terminalStatus(tt.status)
		assert.Equal(t, tt.terminal, terminal, string(tt.status))
		assert.Equal(t, tt.ok, ok, string(tt.status))
	}
}
