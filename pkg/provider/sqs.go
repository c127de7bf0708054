package provider

import (
	"context"

	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/utils"
)

// SQS lists and describes SQS queues. Queue ARNs carry no resource type.
type SQS struct {
	base
}

// NewSQS creates the SQS provider
func NewSQS(cfg Config) *SQS {
	return &SQS{
		base: newBase(cfg, "sqs", "SQS",
			[3]string{"queue", "Queue", "Queues"},
		),
	}
}

func (p *SQS) ListResourceArns(ctx context.Context, profile, region, resourceType string) ([]string, error) {
	if resourceType != "queue" {
		return nil, p.unknownType(resourceType)
	}
	client, err := p.cfg.Clients.SQS(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return client.ListQueueArns(ctx)
}

func (p *SQS) DescribeResource(ctx context.Context, profile string, resource arn.ARN) ([]models.ResourceField, error) {
	if resource.HasResourceType() {
		return nil, p.unknownType(resource.ResourceType)
	}
	client, err := p.cfg.Clients.SQS(ctx, profile, resource.Region)
	if err != nil {
		return nil, err
	}
	attrs, err := client.GetQueueAttributes(ctx, resource.ResourceName)
	if err != nil {
		return nil, err
	}

	return []models.ResourceField{
		header("Queue"),
		field("Name", resource.ResourceName, models.FieldName),
		field("Visibility Timeout", attr(attrs, "VisibilityTimeout"), models.FieldNumber),
		field("Maximum Message Size", attr(attrs, "MaximumMessageSize"), models.FieldNumber),
		field("Message Retention Period", attr(attrs, "MessageRetentionPeriod"), models.FieldNumber),
		field("Delay Seconds", attr(attrs, "DelaySeconds"), models.FieldNumber),
		field("Receive Message Wait Time Seconds", attr(attrs, "ReceiveMessageWaitTimeSeconds"), models.FieldNumber),
		field("SQS Managed SSE Enabled", attrOr(attrs, "SqsManagedSseEnabled", "false"), models.FieldName),
		field("Approximate Number of Messages", attrOr(attrs, "ApproximateNumberOfMessages", "0"), models.FieldNumber),
		field("Approximate Number of Messages Delayed", attrOr(attrs, "ApproximateNumberOfMessagesDelayed", "0"), models.FieldNumber),
		field("Approximate Number of Messages Not Visible", attrOr(attrs, "ApproximateNumberOfMessagesNotVisible", "0"), models.FieldNumber),
		field("Created Timestamp", utils.FormatEpochSeconds(attr(attrs, "CreatedTimestamp")), models.FieldDate),
		field("Last Modified Timestamp", utils.FormatEpochSeconds(attr(attrs, "LastModifiedTimestamp")), models.FieldDate),
	}, nil
}

// ArnForCloudFormationResource maps AWS::SQS::Queue. The physical id is the
// queue URL, whose last path segment is the queue name.
func (p *SQS) ArnForCloudFormationResource(cfnType string, res models.StackResource) (string, string, error) {
	if cfnType != "AWS::SQS::Queue" {
		return p.base.ArnForCloudFormationResource(cfnType, res)
	}
	return "queue", lastSegment(res.PhysicalID, '/'), nil
}
