package focus

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cfnTypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	inspector "github.com/younsl/awsinspector/pkg/aws"
	"github.com/younsl/awsinspector/pkg/aws/awstest"
	"github.com/younsl/awsinspector/pkg/provider"
)

var _ StackResourceLister = (*inspector.Session)(nil)

const stackArn = "arn:aws:cloudformation:ap-southeast-2:000000000000:stack/sqs-lambda-stack/3d2a5a70-1c1f-11ef-9d43-0a6b4f8c1f2d"

func staticStack(resources ...models.StackResource) StackResourceListerFunc {
	return func(_ context.Context, _, _, _ string) ([]models.StackResource, error) {
		return resources, nil
	}
}

func newDeriver(stacks StackResourceLister) *Deriver {
	return NewDeriver(provider.NewRegistry(provider.Config{}), stacks)
}

func TestDeriveFromStackOrdersByRegistry(t *testing.T) {
	d := newDeriver(staticStack(
		models.StackResource{LogicalID: "Queue2", PhysicalID: "https://sqs.ap-southeast-2.amazonaws.com/000000000000/sqs-lambda-stack-Queue2-x1", ResourceType: "AWS::SQS::Queue"},
		models.StackResource{LogicalID: "Mapping", PhysicalID: "91edff81-dd21-4bb6-bd38-776153ec2d50", ResourceType: "AWS::Lambda::EventSourceMapping"},
		models.StackResource{LogicalID: "Queue1", PhysicalID: "https://sqs.ap-southeast-2.amazonaws.com/000000000000/sqs-lambda-stack-Queue1-y2", ResourceType: "AWS::SQS::Queue"},
		models.StackResource{LogicalID: "Handler", PhysicalID: "sqs-lambda-stack-Handler-z3", ResourceType: "AWS::Lambda::Function"},
		models.StackResource{LogicalID: "HandlerRole", PhysicalID: "sqs-lambda-stack-HandlerRole-w4", ResourceType: "AWS::IAM::Role"},
	))

	f, err := d.DeriveFromStack(context.Background(), "default", arn.MustParse(stackArn))
	require.NoError(t, err)
	require.NoError(t, Validate(f))

	assert.Equal(t, models.FocusVersion, f.Version)
	require.Len(t, f.Profiles, 1)
	assert.Equal(t, "default", f.Profiles[0].ID)
	require.Len(t, f.Profiles[0].Regions, 1)
	assert.Equal(t, "ap-southeast-2", f.Profiles[0].Regions[0].ID)

	want := []models.ServiceFocus{
		{ID: "iam", ResourceTypes: []models.ResourceTypeFocus{
			{ID: "role", ARNs: []string{"arn:aws:iam:ap-southeast-2:000000000000:role/sqs-lambda-stack-HandlerRole-w4"}},
		}},
		{ID: "lambda", ResourceTypes: []models.ResourceTypeFocus{
			{ID: "function", ARNs: []string{"arn:aws:lambda:ap-southeast-2:000000000000:function:sqs-lambda-stack-Handler-z3"}},
			{ID: "event-source-mapping", ARNs: []string{"arn:aws:lambda:ap-southeast-2:000000000000:event-source-mapping:91edff81-dd21-4bb6-bd38-776153ec2d50"}},
		}},
		{ID: "sqs", ResourceTypes: []models.ResourceTypeFocus{
			{ID: "queue", ARNs: []string{
				"arn:aws:sqs:ap-southeast-2:000000000000:sqs-lambda-stack-Queue2-x1",
				"arn:aws:sqs:ap-southeast-2:000000000000:sqs-lambda-stack-Queue1-y2",
			}},
		}},
	}
	assert.Equal(t, want, f.Profiles[0].Regions[0].Services)
}

func TestDeriveFromStackMapsStepFunctions(t *testing.T) {
	d := newDeriver(staticStack(models.StackResource{
		PhysicalID:   "arn:aws:states:ap-southeast-2:000000000000:stateMachine:Machine-1",
		ResourceType: "AWS::StepFunctions::StateMachine",
	}))

	f, err := d.DeriveFromStack(context.Background(), "default", arn.MustParse(stackArn))
	require.NoError(t, err)
	services := f.Profiles[0].Regions[0].Services
	require.Len(t, services, 1)
	assert.Equal(t, "states", services[0].ID)
	assert.Equal(t, []string{"arn:aws:states:ap-southeast-2:000000000000:stateMachine:Machine-1"}, services[0].ResourceTypes[0].ARNs)
}

func TestDeriveFromEmptyStack(t *testing.T) {
	f, err := newDeriver(staticStack()).DeriveFromStack(context.Background(), "default", arn.MustParse(stackArn))
	require.NoError(t, err)
	assert.Empty(t, f.Profiles[0].Regions[0].Services)
}

func TestDeriveFromStackErrors(t *testing.T) {
	tests := []struct {
		name     string
		stack    string
		resource models.StackResource
		want     error
	}{
		{
			name:  "not a stack arn",
			stack: "arn:aws:sqs:ap-southeast-2:000000000000:queue",
			want:  models.ErrInvalidArn,
		},
		{
			name:  "cloudformation arn of another type",
			stack: "arn:aws:cloudformation:ap-southeast-2:000000000000:changeSet/x/1",
			want:  models.ErrInvalidArn,
		},
		{
			name:     "non AWS resource",
			stack:    stackArn,
			resource: models.StackResource{ResourceType: "Custom::Thing"},
			want:     models.ErrUnsupportedResource,
		},
		{
			name:     "unregistered service",
			stack:    stackArn,
			resource: models.StackResource{ResourceType: "AWS::EC2::Instance", PhysicalID: "i-123"},
			want:     models.ErrUnknownService,
		},
		{
			name:     "provider refuses type",
			stack:    stackArn,
			resource: models.StackResource{ResourceType: "AWS::SQS::QueuePolicy", PhysicalID: "p"},
			want:     models.ErrUnsupportedResource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newDeriver(staticStack(tt.resource)).DeriveFromStack(context.Background(), "default", arn.MustParse(tt.stack))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestDeriveFromStackThroughSession(t *testing.T) {
	factory := awstest.NewFactory().Set("default", &awstest.Account{
		CloudFormation: &awstest.CloudFormation{
			PageSize: 1,
			Resources: map[string][]cfnTypes.StackResourceSummary{
				stackArn: {
					{LogicalResourceId: aws.String("Topic"), PhysicalResourceId: aws.String("arn:aws:sns:ap-southeast-2:000000000000:alerts"), ResourceType: aws.String("AWS::SNS::Topic")},
					{LogicalResourceId: aws.String("Table"), PhysicalResourceId: aws.String("orders"), ResourceType: aws.String("AWS::DynamoDB::Table")},
				},
			},
		},
	})
	lister := StackResourceListerFunc(func(ctx context.Context, profile, region, stackID string) ([]models.StackResource, error) {
		client, err := factory.CloudFormation(ctx, profile, region)
		if err != nil {
			return nil, err
		}
		return client.ListStackResources(ctx, stackID)
	})

	f, err := newDeriver(lister).DeriveFromStack(context.Background(), "default", arn.MustParse(stackArn))
	require.NoError(t, err)
	services := f.Profiles[0].Regions[0].Services
	require.Len(t, services, 2)
	assert.Equal(t, "dynamodb", services[0].ID)
	assert.Equal(t, "arn:aws:dynamodb:ap-southeast-2:000000000000:table/orders", services[0].ResourceTypes[0].ARNs[0])
	assert.Equal(t, "sns", services[1].ID)
	assert.Equal(t, "arn:aws:sns:ap-southeast-2:000000000000:alerts", services[1].ResourceTypes[0].ARNs[0])

	_, err = newDeriver(lister).DeriveFromStack(context.Background(), "missing", arn.MustParse(stackArn))
	assert.Error(t, err)
}
