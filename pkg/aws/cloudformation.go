package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cfnTypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/younsl/awsinspector/internal/models"
)

// CloudFormationClient struct for CloudFormation client
type CloudFormationClient struct {
	client CloudFormationAPI
	region string
}

// NewCloudFormationClient creates a new CloudFormationClient
func NewCloudFormationClient(client CloudFormationAPI, region string) *CloudFormationClient {
	return &CloudFormationClient{client: client, region: region}
}

// ListStacks returns every stack that is not DELETE_COMPLETE, sorted by stack id
func (c *CloudFormationClient) ListStacks(ctx context.Context) ([]models.StackInfo, error) {
	var stacks []models.StackInfo

	paginator := cloudformation.NewListStacksPaginator(c.client, &cloudformation.ListStacksInput{
		StackStatusFilter: nonDeletedStackStatuses(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing CloudFormation stacks in %s: %w", c.region, err)
		}
		for _, s := range page.StackSummaries {
			if s.StackStatus == cfnTypes.StackStatusDeleteComplete {
				continue
			}
			stacks = append(stacks, models.StackInfo{
				StackName: aws.ToString(s.StackName),
				StackID:   aws.ToString(s.StackId),
				Status:    string(s.StackStatus),
			})
		}
	}

	sort.Slice(stacks, func(i, j int) bool {
		return stacks[i].StackID < stacks[j].StackID
	})
	return stacks, nil
}

// DescribeStack returns the details of one stack. stackID may be a name or ARN.
func (c *CloudFormationClient) DescribeStack(ctx context.Context, stackID string) (*cfnTypes.Stack, error) {
	out, err := c.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackID),
	})
	if err != nil {
		return nil, fmt.Errorf("error describing stack %s: %w", stackID, err)
	}
	if len(out.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s not found", stackID)
	}
	return &out.Stacks[0], nil
}

// ListStackResources returns every resource summary of a stack
func (c *CloudFormationClient) ListStackResources(ctx context.Context, stackID string) ([]models.StackResource, error) {
	var resources []models.StackResource

	paginator := cloudformation.NewListStackResourcesPaginator(c.client, &cloudformation.ListStackResourcesInput{
		StackName: aws.String(stackID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing resources of stack %s: %w", stackID, err)
		}
		for _, r := range page.StackResourceSummaries {
			resources = append(resources, models.StackResource{
				LogicalID:    aws.ToString(r.LogicalResourceId),
				PhysicalID:   aws.ToString(r.PhysicalResourceId),
				ResourceType: aws.ToString(r.ResourceType),
				Status:       string(r.ResourceStatus),
			})
		}
	}
	return resources, nil
}

// ListStackResources lists the resources of a stack through the profile's
// credentials, in the stack's region
func (s *Session) ListStackResources(ctx context.Context, profile, region, stackID string) ([]models.StackResource, error) {
	client, err := s.CloudFormation(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return client.ListStackResources(ctx, stackID)
}

func nonDeletedStackStatuses() []cfnTypes.StackStatus {
	var statuses []cfnTypes.StackStatus
	for _, status := range cfnTypes.StackStatusCreateInProgress.Values() {
		if status != cfnTypes.StackStatusDeleteComplete {
			statuses = append(statuses, status)
		}
	}
	return statuses
}
