package tree

import (
	"context"

	"github.com/younsl/awsinspector/internal/models"
	"golang.org/x/sync/errgroup"
)

// ConfigResolver reads the local AWS configuration
type ConfigResolver interface {
	ProfileIDs() ([]string, error)
	DefaultRegion(profile string) (string, bool)
	ClientConfig(profile string) models.ClientConfig
}

// IdentityResolver resolves the account behind a profile
type IdentityResolver interface {
	CallerAccountID(ctx context.Context, profile string) (string, error)
	// AccountAlias returns "" when the account has no alias
	AccountAlias(ctx context.Context, profile string) (string, error)
}

// RegionEnumerator lists the regions enabled for a profile
type RegionEnumerator interface {
	EnabledRegions(ctx context.Context, profile string) ([]string, error)
}

// resolveAccount fetches the account id and alias of a profile concurrently.
// Either failure fails the whole profile.
func resolveAccount(ctx context.Context, identity IdentityResolver, profile string) (account, alias string, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		account, err = identity.CallerAccountID(gctx, profile)
		return err
	})
	g.Go(func() error {
		var err error
		alias, err = identity.AccountAlias(gctx, profile)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return account, alias, nil
}

func accountDescription(account, alias string) string {
	return "(" + account + " - " + alias + ")"
}
