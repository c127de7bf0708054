package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

// StepFunctionsClient struct for Step Functions client
type StepFunctionsClient struct {
	client SFNAPI
	region string
}

// NewStepFunctionsClient creates a new StepFunctionsClient
func NewStepFunctionsClient(client SFNAPI, region string) *StepFunctionsClient {
	return &StepFunctionsClient{client: client, region: region}
}

// ListActivityArns returns the ARN of every activity in the region
func (c *StepFunctionsClient) ListActivityArns(ctx context.Context) ([]string, error) {
	var arns []string

	paginator := sfn.NewListActivitiesPaginator(c.client, &sfn.ListActivitiesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing activities in %s: %w", c.region, err)
		}
		for _, a := range page.Activities {
			arns = append(arns, aws.ToString(a.ActivityArn))
		}
	}

	return arns, nil
}

// ListStateMachineArns returns the ARN of every state machine in the region
func (c *StepFunctionsClient) ListStateMachineArns(ctx context.Context) ([]string, error) {
	var arns []string

	paginator := sfn.NewListStateMachinesPaginator(c.client, &sfn.ListStateMachinesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing state machines in %s: %w", c.region, err)
		}
		for _, sm := range page.StateMachines {
			arns = append(arns, aws.ToString(sm.StateMachineArn))
		}
	}

	return arns, nil
}

// DescribeActivity returns the details of one activity
func (c *StepFunctionsClient) DescribeActivity(ctx context.Context, activityArn string) (*sfn.DescribeActivityOutput, error) {
	out, err := c.client.DescribeActivity(ctx, &sfn.DescribeActivityInput{
		ActivityArn: aws.String(activityArn),
	})
	if err != nil {
		return nil, fmt.Errorf("error describing activity %s: %w", activityArn, err)
	}
	return out, nil
}

// DescribeStateMachine returns the details of one state machine
func (c *StepFunctionsClient) DescribeStateMachine(ctx context.Context, stateMachineArn string) (*sfn.DescribeStateMachineOutput, error) {
	out, err := c.client.DescribeStateMachine(ctx, &sfn.DescribeStateMachineInput{
		StateMachineArn: aws.String(stateMachineArn),
	})
	if err != nil {
		return nil, fmt.Errorf("error describing state machine %s: %w", stateMachineArn, err)
	}
	return out, nil
}
