package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/awsinspector/internal/models"
	inspector "github.com/younsl/awsinspector/pkg/aws"
	"github.com/younsl/awsinspector/pkg/aws/awstest"
	"github.com/younsl/awsinspector/pkg/formatter"
	"github.com/younsl/awsinspector/pkg/provider"
	"github.com/younsl/awsinspector/pkg/tree"
)

type staticConfig struct{}

func (staticConfig) ProfileIDs() ([]string, error) { return []string{"default"}, nil }

func (staticConfig) DefaultRegion(string) (string, bool) { return "us-east-1", true }

func (staticConfig) ClientConfig(string) models.ClientConfig { return models.ClientConfig{} }

func testEngine() *tree.Engine {
	factory := awstest.NewFactory().Set("default", &awstest.Account{
		STS: &awstest.STS{Account: "123456789012"},
		EC2: &awstest.EC2{Regions: []string{"us-east-1", "us-west-2"}},
		SNS: &awstest.SNS{Topics: []string{"arn:aws:sns:us-east-1:123456789012:alerts"}},
	})
	e := tree.New(tree.Options{
		Registry: provider.NewRegistry(provider.Config{Clients: factory}),
		Config:   staticConfig{},
		Identity: inspector.NewIdentityResolver(factory),
		Regions:  inspector.NewRegionLister(factory),
	})
	e.SetFocus(&models.Focus{
		Version: models.FocusVersion,
		Profiles: []models.ProfileFocus{{
			ID: "default",
			Regions: []models.RegionFocus{{
				ID: "*",
				Services: []models.ServiceFocus{{
					ID:            "sns",
					ResourceTypes: []models.ResourceTypeFocus{{ID: "topic", ARNs: []string{"*"}}},
				}},
			}},
		}},
	})
	return e
}

func rowLabels(rows []formatter.TreeRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Node.Label
	}
	return out
}

func TestWalkFullDepth(t *testing.T) {
	rows, err := newWalker(testEngine(), 5).Walk(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Profile: default",
		"us-east-1", "SNS", "Topics", "alerts",
		"us-west-2", "SNS", "Topics", "alerts",
	}, rowLabels(rows))
	assert.Equal(t, 0, rows[0].Depth)
	assert.Equal(t, 4, rows[4].Depth)
}

func TestWalkLimitsDepth(t *testing.T) {
	rows, err := newWalker(testEngine(), 2).Walk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Profile: default", "us-east-1", "us-west-2"}, rowLabels(rows))
}
