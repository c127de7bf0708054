package arn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/awsinspector/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		partition    string
		service      string
		region       string
		account      string
		resourceID   string
		resourceType string
		resourceName string
	}{
		{
			name:         "step functions state machine",
			input:        "arn:aws:states:us-east-1:123456789012:stateMachine:my-state-machine",
			partition:    "aws",
			service:      "states",
			region:       "us-east-1",
			account:      "123456789012",
			resourceID:   "stateMachine:my-state-machine",
			resourceType: "stateMachine",
			resourceName: "my-state-machine",
		},
		{
			name:         "dynamodb table",
			input:        "arn:aws:dynamodb:ap-southeast-2:123456789012:table/my-table",
			partition:    "aws",
			service:      "dynamodb",
			region:       "ap-southeast-2",
			account:      "123456789012",
			resourceID:   "table/my-table",
			resourceType: "table",
			resourceName: "my-table",
		},
		{
			name:         "lambda function",
			input:        "arn:aws:lambda:eu-central-1:123456789012:function:my-function",
			partition:    "aws",
			service:      "lambda",
			region:       "eu-central-1",
			account:      "123456789012",
			resourceID:   "function:my-function",
			resourceType: "function",
			resourceName: "my-function",
		},
		{
			name:         "sns topic has no type",
			input:        "arn:aws:sns:us-east-1:123456789012:my-topic",
			partition:    "aws",
			service:      "sns",
			region:       "us-east-1",
			account:      "123456789012",
			resourceID:   "my-topic",
			resourceName: "my-topic",
		},
		{
			name:         "iam role without region",
			input:        "arn:aws:iam::123456789012:role/service-role/my-role",
			partition:    "aws",
			service:      "iam",
			account:      "123456789012",
			resourceID:   "role/service-role/my-role",
			resourceType: "role",
			resourceName: "service-role/my-role",
		},
		{
			name:         "govcloud partition",
			input:        "arn:aws-us-gov:lambda:us-east-1:123456789012:function:my-function",
			partition:    "aws-us-gov",
			service:      "lambda",
			region:       "us-east-1",
			account:      "123456789012",
			resourceID:   "function:my-function",
			resourceType: "function",
			resourceName: "my-function",
		},
		{
			name:         "s3 bucket without account",
			input:        "arn:aws:s3:::my-bucket",
			partition:    "aws",
			service:      "s3",
			resourceID:   "my-bucket",
			resourceName: "my-bucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.partition, a.Partition)
			assert.Equal(t, tt.service, a.Service)
			assert.Equal(t, tt.region, a.Region)
			assert.Equal(t, tt.account, a.AccountID)
			assert.Equal(t, tt.resourceID, a.ResourceID)
			assert.Equal(t, tt.resourceType, a.ResourceType)
			assert.Equal(t, tt.resourceName, a.ResourceName)
			assert.Equal(t, tt.resourceType != "", a.HasResourceType())
			assert.Equal(t, tt.input, a.String())
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, input := range []string{
		"aws:lambda:eu-central-1:123456789012:function:my-function",
		"arn:aws:lambda:eu-central-1:12347:function:my-function",
		"completely-invalid-arn",
		"",
	} {
		_, err := Parse(input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, models.ErrInvalidArn), input)
	}
}

func TestBuild(t *testing.T) {
	s := Build("aws", "lambda", "ap-southeast-2", "000000000000", "function:fn")
	assert.Equal(t, "arn:aws:lambda:ap-southeast-2:000000000000:function:fn", s)
	assert.Equal(t, "fn", MustParse(s).ResourceName)
}
