package provider

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/utils"
)

// CloudFormation lists and describes CloudFormation stacks
type CloudFormation struct {
	base
}

// NewCloudFormation creates the CloudFormation provider
func NewCloudFormation(cfg Config) *CloudFormation {
	return &CloudFormation{
		base: newBase(cfg, "cloudformation", "CloudFormation",
			[3]string{"stack", "Stack", "Stacks"},
		),
	}
}

// ListResourceArns returns the ids of all non-deleted stacks, sorted
func (p *CloudFormation) ListResourceArns(ctx context.Context, profile, region, resourceType string) ([]string, error) {
	if resourceType != "stack" {
		return nil, p.unknownType(resourceType)
	}
	client, err := p.cfg.Clients.CloudFormation(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	stacks, err := client.ListStacks(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(stacks))
	for i, s := range stacks {
		ids[i] = s.StackID
	}
	return ids, nil
}

// ListStacks returns the non-deleted stacks of a region
func (p *CloudFormation) ListStacks(ctx context.Context, profile, region string) ([]models.StackInfo, error) {
	client, err := p.cfg.Clients.CloudFormation(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return client.ListStacks(ctx)
}

// DescribeResource describes a stack including its parameters and outputs
func (p *CloudFormation) DescribeResource(ctx context.Context, profile string, resource arn.ARN) ([]models.ResourceField, error) {
	if strings.ToLower(resource.ResourceType) != "stack" {
		return nil, p.unknownType(resource.ResourceType)
	}
	client, err := p.cfg.Clients.CloudFormation(ctx, profile, resource.Region)
	if err != nil {
		return nil, err
	}
	stack, err := client.DescribeStack(ctx, resource.String())
	if err != nil {
		return nil, err
	}

	termination := "Disabled"
	if aws.ToBool(stack.EnableTerminationProtection) {
		termination = "Enabled"
	}
	rollback := "Enabled"
	if aws.ToBool(stack.DisableRollback) {
		rollback = "Disabled"
	}
	capabilities := "None"
	if len(stack.Capabilities) > 0 {
		names := make([]string, len(stack.Capabilities))
		for i, c := range stack.Capabilities {
			names[i] = string(c)
		}
		capabilities = strings.Join(names, ", ")
	}
	drift := "N/A"
	if stack.DriftInformation != nil {
		drift = string(stack.DriftInformation.StackDriftStatus)
	}

	fields := []models.ResourceField{
		header("Stack"),
		field("Stack Name", aws.ToString(stack.StackName), models.FieldName),
		field("Stack Status", string(stack.StackStatus), models.FieldName),
		field("Description", utils.DerefOr(stack.Description, "N/A"), models.FieldShortText),
		field("Change Set ARN", utils.DerefOr(stack.ChangeSetId, "N/A"), models.FieldARN),
		field("Creation Time", utils.FormatISOTime(stack.CreationTime), models.FieldDate),
		field("Last Updated Time", utils.FormatISOTime(stack.LastUpdatedTime), models.FieldDate),
		field("Termination Protection", termination, models.FieldName),
		field("Rollback", rollback, models.FieldName),
		field("Capabilities", capabilities, models.FieldShortText),
		field("Drift Status", drift, models.FieldName),
		field("Parameters", "", models.FieldName),
	}
	for _, param := range stack.Parameters {
		fields = append(fields, field("    "+aws.ToString(param.ParameterKey), utils.DerefOr(param.ParameterValue, "N/A"), models.FieldName))
	}
	fields = append(fields, field("Outputs", "", models.FieldName))
	for _, out := range stack.Outputs {
		fields = append(fields, field("    "+aws.ToString(out.OutputKey), utils.DerefOr(out.OutputValue, "N/A"), models.FieldName))
	}
	return fields, nil
}
