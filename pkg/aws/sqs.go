package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"golang.org/x/sync/errgroup"
)

// maxQueueLookups bounds concurrent GetQueueAttributes calls while listing
const maxQueueLookups = 10

// SQSClient struct for SQS client
type SQSClient struct {
	client SQSAPI
	region string
}

// NewSQSClient creates a new SQSClient
func NewSQSClient(client SQSAPI, region string) *SQSClient {
	return &SQSClient{client: client, region: region}
}

// ListQueueArns returns the ARN of every queue in the region, in the order
// ListQueues returned their URLs
func (c *SQSClient) ListQueueArns(ctx context.Context) ([]string, error) {
	var queueURLs []string

	paginator := sqs.NewListQueuesPaginator(c.client, &sqs.ListQueuesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing SQS queues in %s: %w", c.region, err)
		}
		queueURLs = append(queueURLs, page.QueueUrls...)
	}

	// Queue URLs do not carry the partition, so each ARN is read back from
	// the queue itself
	arns := make([]string, len(queueURLs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxQueueLookups)
	for i, url := range queueURLs {
		i, url := i, url
		g.Go(func() error {
			out, err := c.client.GetQueueAttributes(gctx, &sqs.GetQueueAttributesInput{
				QueueUrl:       aws.String(url),
				AttributeNames: []sqsTypes.QueueAttributeName{sqsTypes.QueueAttributeNameQueueArn},
			})
			if err != nil {
				return fmt.Errorf("error reading ARN of queue %s: %w", url, err)
			}
			arn, ok := out.Attributes[string(sqsTypes.QueueAttributeNameQueueArn)]
			if !ok {
				return fmt.Errorf("queue %s returned no QueueArn attribute", url)
			}
			arns[i] = arn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return arns, nil
}

// GetQueueAttributes returns all attributes of the named queue
func (c *SQSClient) GetQueueAttributes(ctx context.Context, queueName string) (map[string]string, error) {
	urlOut, err := c.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return nil, fmt.Errorf("error resolving URL of queue %s: %w", queueName, err)
	}

	out, err := c.client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       urlOut.QueueUrl,
		AttributeNames: []sqsTypes.QueueAttributeName{sqsTypes.QueueAttributeNameAll},
	})
	if err != nil {
		return nil, fmt.Errorf("error getting attributes of queue %s: %w", queueName, err)
	}
	if len(out.Attributes) == 0 {
		return nil, fmt.Errorf("no attributes found for queue %s", queueName)
	}
	return out.Attributes, nil
}
