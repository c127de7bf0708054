package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBClient struct for DynamoDB client
type DynamoDBClient struct {
	client DynamoDBAPI
	region string
}

// NewDynamoDBClient creates a new DynamoDBClient
func NewDynamoDBClient(client DynamoDBAPI, region string) *DynamoDBClient {
	return &DynamoDBClient{client: client, region: region}
}

// ListTableArns returns the ARN of every table in the region
func (c *DynamoDBClient) ListTableArns(ctx context.Context) ([]string, error) {
	var tables []string

	paginator := dynamodb.NewListTablesPaginator(c.client, &dynamodb.ListTablesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing DynamoDB tables in %s: %w", c.region, err)
		}
		tables = append(tables, page.TableNames...)
	}

	if len(tables) == 0 {
		return []string{}, nil
	}

	// ListTables only returns names; the ARN prefix is shared by all tables
	// so it is taken from the first one
	first, err := c.DescribeTable(ctx, tables[0])
	if err != nil {
		return nil, err
	}
	tableArn := aws.ToString(first.TableArn)
	prefix := tableArn[:strings.LastIndex(tableArn, "/")+1]

	arns := make([]string, len(tables))
	for i, name := range tables {
		arns[i] = prefix + name
	}
	return arns, nil
}

// DescribeTable returns the description of one table
func (c *DynamoDBClient) DescribeTable(ctx context.Context, tableName string) (*ddbTypes.TableDescription, error) {
	out, err := c.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		return nil, fmt.Errorf("error describing DynamoDB table %s: %w", tableName, err)
	}
	if out.Table == nil {
		return nil, fmt.Errorf("failed to describe DynamoDB table: %s", tableName)
	}
	return out.Table, nil
}
