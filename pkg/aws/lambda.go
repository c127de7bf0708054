package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// metricsWindowDays is the look-back window for function metrics
const metricsWindowDays = 30

// LambdaClient struct for Lambda client
type LambdaClient struct {
	client   LambdaAPI
	cwClient CloudWatchAPI
	logs     CloudWatchLogsAPI
	region   string
	now      func() time.Time
}

// FunctionMetrics holds CloudWatch sums for a function over the last 30 days
type FunctionMetrics struct {
	Invocations int64
	Errors      int64
}

// NewLambdaClient creates a new LambdaClient
func NewLambdaClient(client LambdaAPI, cwClient CloudWatchAPI, logs CloudWatchLogsAPI, region string) *LambdaClient {
	return &LambdaClient{
		client:   client,
		cwClient: cwClient,
		logs:     logs,
		region:   region,
		now:      time.Now,
	}
}

// ListFunctionArns returns the ARN of every function in the region
func (c *LambdaClient) ListFunctionArns(ctx context.Context) ([]string, error) {
	var arns []string
	var nextMarker *string

	for {
		result, err := c.client.ListFunctions(ctx, &lambda.ListFunctionsInput{
			Marker: nextMarker,
		})
		if err != nil {
			return nil, fmt.Errorf("error listing Lambda functions in %s: %w", c.region, err)
		}

		for _, fn := range result.Functions {
			arns = append(arns, aws.ToString(fn.FunctionArn))
		}

		if result.NextMarker == nil || *result.NextMarker == "" {
			break
		}
		nextMarker = result.NextMarker
	}

	return arns, nil
}

// ListEventSourceMappingArns returns the ARN of every event source mapping
func (c *LambdaClient) ListEventSourceMappingArns(ctx context.Context) ([]string, error) {
	var arns []string

	paginator := lambda.NewListEventSourceMappingsPaginator(c.client, &lambda.ListEventSourceMappingsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing event source mappings in %s: %w", c.region, err)
		}
		for _, m := range page.EventSourceMappings {
			arns = append(arns, aws.ToString(m.EventSourceMappingArn))
		}
	}

	return arns, nil
}

// GetFunction returns the configuration of one function
func (c *LambdaClient) GetFunction(ctx context.Context, functionName string) (*lambdaTypes.FunctionConfiguration, error) {
	out, err := c.client.GetFunction(ctx, &lambda.GetFunctionInput{
		FunctionName: aws.String(functionName),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting Lambda function %s: %w", functionName, err)
	}
	if out.Configuration == nil {
		return nil, fmt.Errorf("failed to get Lambda function: %s", functionName)
	}
	return out.Configuration, nil
}

// GetEventSourceMapping returns one event source mapping by UUID
func (c *LambdaClient) GetEventSourceMapping(ctx context.Context, uuid string) (*lambda.GetEventSourceMappingOutput, error) {
	out, err := c.client.GetEventSourceMapping(ctx, &lambda.GetEventSourceMappingInput{
		UUID: aws.String(uuid),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting event source mapping %s: %w", uuid, err)
	}
	return out, nil
}

// GetFunctionMetrics sums the Invocations and Errors metrics of a function
// over the last 30 days
func (c *LambdaClient) GetFunctionMetrics(ctx context.Context, functionName string) (FunctionMetrics, error) {
	endTime := c.now()
	startTime := endTime.AddDate(0, 0, -metricsWindowDays)

	invocations, err := c.sumMetric(ctx, functionName, "Invocations", startTime, endTime)
	if err != nil {
		return FunctionMetrics{}, err
	}
	errorCount, err := c.sumMetric(ctx, functionName, "Errors", startTime, endTime)
	if err != nil {
		return FunctionMetrics{}, err
	}

	return FunctionMetrics{Invocations: invocations, Errors: errorCount}, nil
}

func (c *LambdaClient) sumMetric(ctx context.Context, functionName, metric string, start, end time.Time) (int64, error) {
	result, err := c.cwClient.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/Lambda"),
		MetricName: aws.String(metric),
		Dimensions: []cwTypes.Dimension{
			{
				Name:  aws.String("FunctionName"),
				Value: aws.String(functionName),
			},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(86400), // 1 day
		Statistics: []cwTypes.Statistic{cwTypes.StatisticSum},
	})
	if err != nil {
		return 0, fmt.Errorf("error reading %s metric for %s: %w", metric, functionName, err)
	}

	var total int64
	for _, datapoint := range result.Datapoints {
		if datapoint.Sum != nil {
			total += int64(*datapoint.Sum)
		}
	}
	return total, nil
}
