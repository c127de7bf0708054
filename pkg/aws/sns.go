package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSClient struct for SNS client
type SNSClient struct {
	client SNSAPI
	region string
}

// NewSNSClient creates a new SNSClient
func NewSNSClient(client SNSAPI, region string) *SNSClient {
	return &SNSClient{client: client, region: region}
}

// ListTopicArns returns the ARN of every topic in the region
func (c *SNSClient) ListTopicArns(ctx context.Context) ([]string, error) {
	var arns []string

	paginator := sns.NewListTopicsPaginator(c.client, &sns.ListTopicsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing SNS topics in %s: %w", c.region, err)
		}
		for _, topic := range page.Topics {
			arns = append(arns, aws.ToString(topic.TopicArn))
		}
	}

	return arns, nil
}

// GetTopicAttributes returns the attribute map of one topic
func (c *SNSClient) GetTopicAttributes(ctx context.Context, topicArn string) (map[string]string, error) {
	out, err := c.client.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{
		TopicArn: aws.String(topicArn),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting attributes of topic %s: %w", topicArn, err)
	}
	return out.Attributes, nil
}
