package provider

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dustin/go-humanize"
	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/utils"
)

// DynamoDB lists and describes DynamoDB tables
type DynamoDB struct {
	base
}

// NewDynamoDB creates the DynamoDB provider
func NewDynamoDB(cfg Config) *DynamoDB {
	return &DynamoDB{
		base: newBase(cfg, "dynamodb", "DynamoDB",
			[3]string{"table", "Table", "Tables"},
		),
	}
}

func (p *DynamoDB) ListResourceArns(ctx context.Context, profile, region, resourceType string) ([]string, error) {
	if resourceType != "table" {
		return nil, p.unknownType(resourceType)
	}
	client, err := p.cfg.Clients.DynamoDB(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return client.ListTableArns(ctx)
}

func (p *DynamoDB) DescribeResource(ctx context.Context, profile string, resource arn.ARN) ([]models.ResourceField, error) {
	if strings.ToLower(resource.ResourceType) != "table" {
		return nil, p.unknownType(resource.ResourceType)
	}
	client, err := p.cfg.Clients.DynamoDB(ctx, profile, resource.Region)
	if err != nil {
		return nil, err
	}
	table, err := client.DescribeTable(ctx, resource.ResourceName)
	if err != nil {
		return nil, err
	}

	billing := "PROVISIONED"
	if table.BillingModeSummary != nil {
		billing = string(table.BillingModeSummary.BillingMode)
	}

	return []models.ResourceField{
		header("Table"),
		field("Name", aws.ToString(table.TableName), models.FieldName),
		field("Status", string(table.TableStatus), models.FieldName),
		field("Partition Key", keyAttribute(table.KeySchema, ddbTypes.KeyTypeHash), models.FieldName),
		field("Sort Key", keyAttribute(table.KeySchema, ddbTypes.KeyTypeRange), models.FieldName),
		field("Billing Mode", billing, models.FieldName),
		field("Item Count", utils.Int64String(table.ItemCount), models.FieldNumber),
		field("Table Size", humanize.Bytes(uint64(aws.ToInt64(table.TableSizeBytes))), models.FieldShortText),
		field("Creation Date", utils.FormatISOTime(table.CreationDateTime), models.FieldDate),
		field("Stream ARN", utils.DerefOr(table.LatestStreamArn, "N/A"), models.FieldARN),
	}, nil
}

// ArnForCloudFormationResource maps AWS::DynamoDB::Table. The physical id is
// the table name.
func (p *DynamoDB) ArnForCloudFormationResource(cfnType string, res models.StackResource) (string, string, error) {
	if cfnType != "AWS::DynamoDB::Table" {
		return p.base.ArnForCloudFormationResource(cfnType, res)
	}
	return "table", "table/" + res.PhysicalID, nil
}

func keyAttribute(schema []ddbTypes.KeySchemaElement, keyType ddbTypes.KeyType) string {
	for _, k := range schema {
		if k.KeyType == keyType {
			return aws.ToString(k.AttributeName)
		}
	}
	return "N/A"
}
