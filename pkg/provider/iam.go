package provider

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/utils"
)

// IAM lists and describes IAM roles. IAM is global, so regions are ignored.
type IAM struct {
	base
}

// NewIAM creates the IAM provider
func NewIAM(cfg Config) *IAM {
	return &IAM{
		base: newBase(cfg, "iam", "IAM",
			[3]string{"role", "Role", "Roles"},
		),
	}
}

func (p *IAM) ListResourceArns(ctx context.Context, profile, _, resourceType string) ([]string, error) {
	if resourceType != "role" {
		return nil, p.unknownType(resourceType)
	}
	client, err := p.cfg.Clients.IAM(ctx, profile)
	if err != nil {
		return nil, err
	}
	return client.ListRoleArns(ctx)
}

func (p *IAM) DescribeResource(ctx context.Context, profile string, resource arn.ARN) ([]models.ResourceField, error) {
	if strings.ToLower(resource.ResourceType) != "role" {
		return nil, p.unknownType(resource.ResourceType)
	}
	client, err := p.cfg.Clients.IAM(ctx, profile)
	if err != nil {
		return nil, err
	}
	role, err := client.GetRole(ctx, resource.ResourceName)
	if err != nil {
		return nil, err
	}

	lastUsed := "N/A"
	if role.RoleLastUsed != nil && role.RoleLastUsed.LastUsedDate != nil {
		lastUsed = utils.FormatISOTime(role.RoleLastUsed.LastUsedDate)
	}
	policy := "N/A"
	if role.AssumeRolePolicyDocument != nil {
		policy = utils.DecodePolicyDocument(*role.AssumeRolePolicyDocument)
	}

	return []models.ResourceField{
		header("Role"),
		field("Role Name", aws.ToString(role.RoleName), models.FieldName),
		field("Role ID", aws.ToString(role.RoleId), models.FieldName),
		field("Path", aws.ToString(role.Path), models.FieldShortText),
		field("Description", aws.ToString(role.Description), models.FieldShortText),
		field("Max Session Duration", utils.Int32String(role.MaxSessionDuration), models.FieldNumber),
		field("Created", utils.FormatISOTime(role.CreateDate), models.FieldDate),
		field("Last Used", lastUsed, models.FieldDate),
		field("Assume Role Policy", policy, models.FieldJSON),
	}, nil
}

// ArnForCloudFormationResource maps AWS::IAM::Role. The physical id is the
// role name.
func (p *IAM) ArnForCloudFormationResource(cfnType string, res models.StackResource) (string, string, error) {
	if cfnType != "AWS::IAM::Role" {
		return p.base.ArnForCloudFormationResource(cfnType, res)
	}
	return "role", "role/" + res.PhysicalID, nil
}
