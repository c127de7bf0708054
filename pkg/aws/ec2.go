package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// RegionClients builds the client a RegionLister needs
type RegionClients interface {
	EC2(ctx context.Context, profile string) (EC2API, error)
}

// RegionLister enumerates the regions enabled for a profile's account
type RegionLister struct {
	clients RegionClients
	regions memo[[]string]
}

// NewRegionLister creates a RegionLister
func NewRegionLister(clients RegionClients) *RegionLister {
	return &RegionLister{clients: clients}
}

// EnabledRegions returns the region codes that are enabled by default or
// opted in, sorted by code
func (l *RegionLister) EnabledRegions(ctx context.Context, profile string) ([]string, error) {
	regions, err := l.regions.Do(profile, func() ([]string, error) {
		client, err := l.clients.EC2(ctx, profile)
		if err != nil {
			return nil, err
		}

		// AllRegions=false limits the result to opt-in-not-required and opted-in regions
		out, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
			AllRegions: aws.Bool(false),
		})
		if err != nil {
			return nil, fmt.Errorf("error listing regions for profile %s: %w", profile, err)
		}

		names := make([]string, 0, len(out.Regions))
		for _, r := range out.Regions {
			if r.RegionName != nil {
				names = append(names, *r.RegionName)
			}
		}
		sort.Strings(names)
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), regions...), nil
}
