package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// IAMClient struct for IAM client
type IAMClient struct {
	client IAMAPI
}

// NewIAMClient creates a new IAMClient. IAM is a global service so no region
// is kept.
func NewIAMClient(client IAMAPI) *IAMClient {
	return &IAMClient{client: client}
}

// ListRoleArns returns the ARN of every IAM role in the account
func (c *IAMClient) ListRoleArns(ctx context.Context) ([]string, error) {
	var roles []string
	var marker *string

	for {
		result, err := c.client.ListRoles(ctx, &iam.ListRolesInput{
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("error listing IAM roles: %w", err)
		}

		for _, role := range result.Roles {
			roles = append(roles, aws.ToString(role.Arn))
		}

		if !result.IsTruncated || result.Marker == nil {
			break
		}
		marker = result.Marker
	}

	return roles, nil
}

// GetRole returns one role. Role names can be path-qualified, so only the
// text after the last "/" is used.
func (c *IAMClient) GetRole(ctx context.Context, resourceName string) (*types.Role, error) {
	roleName := resourceName
	if i := strings.LastIndex(roleName, "/"); i >= 0 {
		roleName = roleName[i+1:]
	}

	out, err := c.client.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)})
	if err != nil {
		return nil, fmt.Errorf("error getting IAM role %s: %w", roleName, err)
	}
	if out.Role == nil {
		return nil, fmt.Errorf("failed to get details for role: %s", roleName)
	}
	return out.Role, nil
}

// AccountAlias returns the first account alias, or "" when none is set
func (c *IAMClient) AccountAlias(ctx context.Context) (string, error) {
	out, err := c.client.ListAccountAliases(ctx, &iam.ListAccountAliasesInput{})
	if err != nil {
		return "", fmt.Errorf("failed to access account aliases: %w", err)
	}
	if len(out.AccountAliases) == 0 {
		return "", nil
	}
	return out.AccountAliases[0], nil
}
