package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cfnTypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/awsinspector/internal/models"
	inspector "github.com/younsl/awsinspector/pkg/aws"
	"github.com/younsl/awsinspector/pkg/aws/awstest"
	"github.com/younsl/awsinspector/pkg/focus"
	"github.com/younsl/awsinspector/pkg/provider"
)

var _ StackLister = (*provider.CloudFormation)(nil)

const appStack = "arn:aws:cloudformation:eu-west-1:123456789012:stack/app/5b1c"

func newFocusView(factory *awstest.Factory, cfg *fakeConfig) *FocusView {
	pcfg := provider.Config{Clients: factory}
	stacks := focus.StackResourceListerFunc(func(ctx context.Context, profile, region, stackID string) ([]models.StackResource, error) {
		client, err := factory.CloudFormation(ctx, profile, region)
		if err != nil {
			return nil, err
		}
		return client.ListStackResources(ctx, stackID)
	})
	return NewFocusView(FocusViewOptions{
		Config:   cfg,
		Identity: inspector.NewIdentityResolver(factory),
		Regions:  inspector.NewRegionLister(factory),
		Stacks:   provider.NewCloudFormation(pcfg),
		Deriver:  focus.NewDeriver(provider.NewRegistry(pcfg), stacks),
	})
}

func itemLabels(items []*FocusItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestFocusViewFilters(t *testing.T) {
	v := newFocusView(awstest.NewFactory(), &fakeConfig{})

	groups, err := v.Children(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{FiltersLabel, CloudFormationLabel}, itemLabels(groups))

	filters, err := v.Children(context.Background(), groups[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"All Services in Default Region", "All Regions in Default Profile", "Everything in all Profiles"}, itemLabels(filters))
	assert.Same(t, groups[0], filters[0].Parent())
	assert.True(t, filters[0].Selectable())
	assert.False(t, groups[0].Selectable())

	f, err := v.Select(context.Background(), filters[1])
	require.NoError(t, err)
	assert.Equal(t, "default", f.Profiles[0].ID)
	assert.Equal(t, models.Wildcard, f.Profiles[0].Regions[0].ID)

	f, err = v.Select(context.Background(), groups[0])
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestFocusViewCloudFormation(t *testing.T) {
	factory := awstest.NewFactory().
		Set("default", &awstest.Account{
			STS: &awstest.STS{Account: "123456789012"},
			IAM: &awstest.IAM{Aliases: []string{"dev"}},
			EC2: &awstest.EC2{Regions: []string{"eu-west-1"}},
			CloudFormation: &awstest.CloudFormation{
				Stacks: []cfnTypes.StackSummary{
					{StackName: aws.String("app"), StackId: aws.String(appStack), StackStatus: cfnTypes.StackStatusUpdateComplete},
					{StackName: aws.String("gone"), StackId: aws.String("arn:aws:cloudformation:eu-west-1:123456789012:stack/gone/1"), StackStatus: cfnTypes.StackStatusDeleteComplete},
				},
				Resources: map[string][]cfnTypes.StackResourceSummary{
					appStack: {
						{LogicalResourceId: aws.String("Queue"), PhysicalResourceId: aws.String("https://sqs.eu-west-1.amazonaws.com/123456789012/app-Queue"), ResourceType: aws.String("AWS::SQS::Queue")},
					},
				},
			},
		}).
		Set("expired", &awstest.Account{STS: &awstest.STS{Err: errors.New("ExpiredToken")}})
	v := newFocusView(factory, &fakeConfig{profiles: []string{"default", "expired"}})

	groups, err := v.Children(context.Background(), nil)
	require.NoError(t, err)
	profiles, err := v.Children(context.Background(), groups[1])
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, ItemProfile, profiles[0].Kind)
	assert.Equal(t, "Profile: default", profiles[0].Label)
	assert.Equal(t, "(123456789012 - dev)", profiles[0].Description)
	assert.Equal(t, ItemError, profiles[1].Kind)
	assert.Contains(t, profiles[1].Label, "Invalid Profile: expired.")

	regions, err := v.Children(context.Background(), profiles[0])
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "eu-west-1", regions[0].Label)
	assert.Equal(t, "Europe (Ireland)", regions[0].Description)

	stacks, err := v.Children(context.Background(), regions[0])
	require.NoError(t, err)
	require.Len(t, stacks, 1)
	assert.Equal(t, "app", stacks[0].Label)
	assert.Equal(t, appStack, stacks[0].StackID)

	f, err := v.Select(context.Background(), stacks[0])
	require.NoError(t, err)
	assert.Equal(t, "default", f.Profiles[0].ID)
	assert.Equal(t, "eu-west-1", f.Profiles[0].Regions[0].ID)
	assert.Equal(t, []string{"arn:aws:sqs:eu-west-1:123456789012:app-Queue"}, f.Profiles[0].Regions[0].Services[0].ResourceTypes[0].ARNs)
}

func TestFocusViewNoStacks(t *testing.T) {
	factory := awstest.NewFactory().Set("default", account("123456789012"))
	v := newFocusView(factory, &fakeConfig{profiles: []string{"default"}})

	region := &FocusItem{Kind: ItemRegion, Profile: "default", Region: "us-east-1"}
	stacks, err := v.Children(context.Background(), region)
	require.NoError(t, err)
	require.Len(t, stacks, 1)
	assert.Equal(t, ItemPlaceholder, stacks[0].Kind)
	assert.Equal(t, NoStacksLabel, stacks[0].Label)
}
