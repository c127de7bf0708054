package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// IdentityClients builds the clients an IdentityResolver needs
type IdentityClients interface {
	STS(ctx context.Context, profile string) (STSAPI, error)
	IAM(ctx context.Context, profile string) (*IAMClient, error)
}

// IdentityResolver looks up the account id and alias behind a profile.
// Successful lookups are cached for the life of the resolver.
type IdentityResolver struct {
	clients  IdentityClients
	accounts memo[string]
	aliases  memo[string]
}

// NewIdentityResolver creates an IdentityResolver
func NewIdentityResolver(clients IdentityClients) *IdentityResolver {
	return &IdentityResolver{clients: clients}
}

// CallerAccountID returns the 12-digit account id of profile
func (r *IdentityResolver) CallerAccountID(ctx context.Context, profile string) (string, error) {
	return r.accounts.Do(profile, func() (string, error) {
		client, err := r.clients.STS(ctx, profile)
		if err != nil {
			return "", err
		}
		out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			return "", fmt.Errorf("failed to access profile %s: %w", profile, err)
		}
		return aws.ToString(out.Account), nil
	})
}

// AccountAlias returns the first account alias of profile, or "" when the
// account has none
func (r *IdentityResolver) AccountAlias(ctx context.Context, profile string) (string, error) {
	return r.aliases.Do(profile, func() (string, error) {
		client, err := r.clients.IAM(ctx, profile)
		if err != nil {
			return "", err
		}
		return client.AccountAlias(ctx)
	})
}
