package provider

import (
	"context"

	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/utils"
)

// SNS lists and describes SNS topics. Topic ARNs carry no resource type.
type SNS struct {
	base
}

// NewSNS creates the SNS provider
func NewSNS(cfg Config) *SNS {
	return &SNS{
		base: newBase(cfg, "sns", "SNS",
			[3]string{"topic", "Topic", "Topics"},
		),
	}
}

func (p *SNS) ListResourceArns(ctx context.Context, profile, region, resourceType string) ([]string, error) {
	if resourceType != "topic" {
		return nil, p.unknownType(resourceType)
	}
	client, err := p.cfg.Clients.SNS(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return client.ListTopicArns(ctx)
}

func (p *SNS) DescribeResource(ctx context.Context, profile string, resource arn.ARN) ([]models.ResourceField, error) {
	if resource.HasResourceType() {
		return nil, p.unknownType(resource.ResourceType)
	}
	client, err := p.cfg.Clients.SNS(ctx, profile, resource.Region)
	if err != nil {
		return nil, err
	}
	attrs, err := client.GetTopicAttributes(ctx, resource.String())
	if err != nil {
		return nil, err
	}

	return []models.ResourceField{
		header("Topic"),
		field("Name", resource.ResourceName, models.FieldName),
		field("Display Name", attr(attrs, "DisplayName"), models.FieldName),
		field("Owner", attr(attrs, "Owner"), models.FieldName),
		field("Subscriptions Confirmed", attr(attrs, "SubscriptionsConfirmed"), models.FieldNumber),
		field("Subscriptions Pending", attr(attrs, "SubscriptionsPending"), models.FieldNumber),
		field("Subscriptions Deleted", attr(attrs, "SubscriptionsDeleted"), models.FieldNumber),
		field("FIFO Topic", attrOr(attrs, "FifoTopic", "false"), models.FieldName),
		field("KMS Master Key", attr(attrs, "KmsMasterKeyId"), models.FieldShortText),
		field("Policy", utils.PrettyJSONString(attr(attrs, "Policy")), models.FieldJSON),
	}, nil
}

// ArnForCloudFormationResource maps AWS::SNS::Topic. The physical id is the
// topic ARN, whose last segment is the topic name.
func (p *SNS) ArnForCloudFormationResource(cfnType string, res models.StackResource) (string, string, error) {
	if cfnType != "AWS::SNS::Topic" {
		return p.base.ArnForCloudFormationResource(cfnType, res)
	}
	return "topic", lastSegment(res.PhysicalID, ':'), nil
}

func attr(attrs map[string]string, key string) string {
	return attrOr(attrs, key, "N/A")
}

func attrOr(attrs map[string]string, key, def string) string {
	if v, ok := attrs[key]; ok && v != "" {
		return v
	}
	return def
}
