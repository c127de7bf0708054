package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
)

// LogGroupStoredBytes returns the stored bytes of a function's log group.
// found is false when the log group does not exist yet.
func (c *LambdaClient) LogGroupStoredBytes(ctx context.Context, logGroupName string) (storedBytes int64, found bool, err error) {
	paginator := cloudwatchlogs.NewDescribeLogGroupsPaginator(c.logs, &cloudwatchlogs.DescribeLogGroupsInput{
		LogGroupNamePrefix: aws.String(logGroupName),
	})

	pageCount := 0
	for paginator.HasMorePages() {
		pageCount++
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("error fetching log groups page %d: %w", pageCount, err)
		}
		for _, lg := range output.LogGroups {
			if aws.ToString(lg.LogGroupName) == logGroupName {
				return aws.ToInt64(lg.StoredBytes), true, nil
			}
		}
	}

	return 0, false, nil
}
