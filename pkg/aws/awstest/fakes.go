// Package awstest provides in-memory fakes of the narrow AWS service
// interfaces for tests.
package awstest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cfnTypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamTypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	sfnTypes "github.com/aws/aws-sdk-go-v2/service/sfn/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// pageOf returns the page of items starting at token and the next token.
// size <= 0 returns everything at once.
func pageOf[T any](items []T, token *string, size int) ([]T, *string) {
	start := 0
	if token != nil {
		start, _ = strconv.Atoi(*token)
	}
	if start > len(items) {
		start = len(items)
	}
	if size <= 0 || start+size >= len(items) {
		return items[start:], nil
	}
	next := strconv.Itoa(start + size)
	return items[start : start+size], &next
}

// Counter records how many times each API operation was called
type Counter struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *Counter) record(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[op]++
}

// Calls returns the number of calls made to op
func (c *Counter) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

// CloudFormation fakes CloudFormationAPI
type CloudFormation struct {
	Counter
	Stacks    []cfnTypes.StackSummary
	Details   map[string]cfnTypes.Stack                  // keyed by stack name or id
	Resources map[string][]cfnTypes.StackResourceSummary // keyed by stack name or id
	PageSize  int
	Err       error
}

func (f *CloudFormation) ListStacks(_ context.Context, in *cloudformation.ListStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.ListStacksOutput, error) {
	f.record("ListStacks")
	if f.Err != nil {
		return nil, f.Err
	}
	var matching []cfnTypes.StackSummary
	for _, s := range f.Stacks {
		if len(in.StackStatusFilter) == 0 || containsStatus(in.StackStatusFilter, s.StackStatus) {
			matching = append(matching, s)
		}
	}
	page, next := pageOf(matching, in.NextToken, f.PageSize)
	return &cloudformation.ListStacksOutput{StackSummaries: page, NextToken: next}, nil
}

func (f *CloudFormation) DescribeStacks(_ context.Context, in *cloudformation.DescribeStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	f.record("DescribeStacks")
	if f.Err != nil {
		return nil, f.Err
	}
	stack, ok := f.Details[aws.ToString(in.StackName)]
	if !ok {
		return nil, fmt.Errorf("stack %s does not exist", aws.ToString(in.StackName))
	}
	return &cloudformation.DescribeStacksOutput{Stacks: []cfnTypes.Stack{stack}}, nil
}

func (f *CloudFormation) ListStackResources(_ context.Context, in *cloudformation.ListStackResourcesInput, _ ...func(*cloudformation.Options)) (*cloudformation.ListStackResourcesOutput, error) {
	f.record("ListStackResources")
	if f.Err != nil {
		return nil, f.Err
	}
	resources, ok := f.Resources[aws.ToString(in.StackName)]
	if !ok {
		return nil, fmt.Errorf("stack %s does not exist", aws.ToString(in.StackName))
	}
	page, next := pageOf(resources, in.NextToken, f.PageSize)
	return &cloudformation.ListStackResourcesOutput{StackResourceSummaries: page, NextToken: next}, nil
}

func containsStatus(statuses []cfnTypes.StackStatus, s cfnTypes.StackStatus) bool {
	for _, status := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

// DynamoDB fakes DynamoDBAPI
type DynamoDB struct {
	Counter
	Tables   map[string]ddbTypes.TableDescription // keyed by table name
	Names    []string                             // listing order
	PageSize int
	Err      error
}

func (f *DynamoDB) ListTables(_ context.Context, in *dynamodb.ListTablesInput, _ ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	f.record("ListTables")
	if f.Err != nil {
		return nil, f.Err
	}
	start := 0
	if in.ExclusiveStartTableName != nil {
		for i, n := range f.Names {
			if n == *in.ExclusiveStartTableName {
				start = i + 1
			}
		}
	}
	rest := f.Names[start:]
	if f.PageSize <= 0 || len(rest) <= f.PageSize {
		return &dynamodb.ListTablesOutput{TableNames: rest}, nil
	}
	page := rest[:f.PageSize]
	return &dynamodb.ListTablesOutput{TableNames: page, LastEvaluatedTableName: aws.String(page[len(page)-1])}, nil
}

func (f *DynamoDB) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	f.record("DescribeTable")
	if f.Err != nil {
		return nil, f.Err
	}
	t, ok := f.Tables[aws.ToString(in.TableName)]
	if !ok {
		return nil, fmt.Errorf("table %s not found", aws.ToString(in.TableName))
	}
	return &dynamodb.DescribeTableOutput{Table: &t}, nil
}

// IAM fakes IAMAPI
type IAM struct {
	Counter
	Roles    []iamTypes.Role
	Aliases  []string
	PageSize int
	Err      error
}

func (f *IAM) ListRoles(_ context.Context, in *iam.ListRolesInput, _ ...func(*iam.Options)) (*iam.ListRolesOutput, error) {
	f.record("ListRoles")
	if f.Err != nil {
		return nil, f.Err
	}
	page, next := pageOf(f.Roles, in.Marker, f.PageSize)
	return &iam.ListRolesOutput{Roles: page, Marker: next, IsTruncated: next != nil}, nil
}

func (f *IAM) GetRole(_ context.Context, in *iam.GetRoleInput, _ ...func(*iam.Options)) (*iam.GetRoleOutput, error) {
	f.record("GetRole")
	if f.Err != nil {
		return nil, f.Err
	}
	for _, r := range f.Roles {
		if aws.ToString(r.RoleName) == aws.ToString(in.RoleName) {
			role := r
			return &iam.GetRoleOutput{Role: &role}, nil
		}
	}
	return nil, fmt.Errorf("role %s not found", aws.ToString(in.RoleName))
}

func (f *IAM) ListAccountAliases(_ context.Context, _ *iam.ListAccountAliasesInput, _ ...func(*iam.Options)) (*iam.ListAccountAliasesOutput, error) {
	f.record("ListAccountAliases")
	if f.Err != nil {
		return nil, f.Err
	}
	return &iam.ListAccountAliasesOutput{AccountAliases: f.Aliases}, nil
}

// Lambda fakes LambdaAPI
type Lambda struct {
	Counter
	Functions []lambdaTypes.FunctionConfiguration
	Mappings  []lambdaTypes.EventSourceMappingConfiguration
	PageSize  int
	Err       error
}

func (f *Lambda) ListFunctions(_ context.Context, in *lambda.ListFunctionsInput, _ ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error) {
	f.record("ListFunctions")
	if f.Err != nil {
		return nil, f.Err
	}
	page, next := pageOf(f.Functions, in.Marker, f.PageSize)
	return &lambda.ListFunctionsOutput{Functions: page, NextMarker: next}, nil
}

func (f *Lambda) GetFunction(_ context.Context, in *lambda.GetFunctionInput, _ ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error) {
	f.record("GetFunction")
	if f.Err != nil {
		return nil, f.Err
	}
	for _, fn := range f.Functions {
		if aws.ToString(fn.FunctionName) == aws.ToString(in.FunctionName) {
			cfg := fn
			return &lambda.GetFunctionOutput{Configuration: &cfg}, nil
		}
	}
	return nil, fmt.Errorf("function %s not found", aws.ToString(in.FunctionName))
}

func (f *Lambda) ListEventSourceMappings(_ context.Context, in *lambda.ListEventSourceMappingsInput, _ ...func(*lambda.Options)) (*lambda.ListEventSourceMappingsOutput, error) {
	f.record("ListEventSourceMappings")
	if f.Err != nil {
		return nil, f.Err
	}
	page, next := pageOf(f.Mappings, in.Marker, f.PageSize)
	return &lambda.ListEventSourceMappingsOutput{EventSourceMappings: page, NextMarker: next}, nil
}

func (f *Lambda) GetEventSourceMapping(_ context.Context, in *lambda.GetEventSourceMappingInput, _ ...func(*lambda.Options)) (*lambda.GetEventSourceMappingOutput, error) {
	f.record("GetEventSourceMapping")
	if f.Err != nil {
		return nil, f.Err
	}
	for _, m := range f.Mappings {
		if aws.ToString(m.UUID) == aws.ToString(in.UUID) {
			return &lambda.GetEventSourceMappingOutput{
				UUID:                  m.UUID,
				EventSourceArn:        m.EventSourceArn,
				EventSourceMappingArn: m.EventSourceMappingArn,
				FunctionArn:           m.FunctionArn,
				State:                 m.State,
				BatchSize:             m.BatchSize,
				LastModified:          m.LastModified,
			}, nil
		}
	}
	return nil, fmt.Errorf("event source mapping %s not found", aws.ToString(in.UUID))
}

// CloudWatch fakes CloudWatchAPI. Sums maps metric name to daily sums.
type CloudWatch struct {
	Counter
	Sums map[string][]float64
	Err  error
}

func (f *CloudWatch) GetMetricStatistics(_ context.Context, in *cloudwatch.GetMetricStatisticsInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	f.record("GetMetricStatistics")
	if f.Err != nil {
		return nil, f.Err
	}
	var points []cwTypes.Datapoint
	for _, sum := range f.Sums[aws.ToString(in.MetricName)] {
		points = append(points, cwTypes.Datapoint{Sum: aws.Float64(sum)})
	}
	return &cloudwatch.GetMetricStatisticsOutput{Datapoints: points}, nil
}

// CloudWatchLogs fakes CloudWatchLogsAPI
type CloudWatchLogs struct {
	Counter
	Groups []logTypes.LogGroup
	Err    error
}

func (f *CloudWatchLogs) DescribeLogGroups(_ context.Context, in *cloudwatchlogs.DescribeLogGroupsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	f.record("DescribeLogGroups")
	if f.Err != nil {
		return nil, f.Err
	}
	var groups []logTypes.LogGroup
	for _, g := range f.Groups {
		if strings.HasPrefix(aws.ToString(g.LogGroupName), aws.ToString(in.LogGroupNamePrefix)) {
			groups = append(groups, g)
		}
	}
	return &cloudwatchlogs.DescribeLogGroupsOutput{LogGroups: groups}, nil
}

// SNS fakes SNSAPI
type SNS struct {
	Counter
	Topics     []string
	Attributes map[string]map[string]string // keyed by topic ARN
	PageSize   int
	Err        error
}

func (f *SNS) ListTopics(_ context.Context, in *sns.ListTopicsInput, _ ...func(*sns.Options)) (*sns.ListTopicsOutput, error) {
	f.record("ListTopics")
	if f.Err != nil {
		return nil, f.Err
	}
	page, next := pageOf(f.Topics, in.NextToken, f.PageSize)
	topics := make([]snsTypes.Topic, len(page))
	for i, arn := range page {
		topics[i] = snsTypes.Topic{TopicArn: aws.String(arn)}
	}
	return &sns.ListTopicsOutput{Topics: topics, NextToken: next}, nil
}

func (f *SNS) GetTopicAttributes(_ context.Context, in *sns.GetTopicAttributesInput, _ ...func(*sns.Options)) (*sns.GetTopicAttributesOutput, error) {
	f.record("GetTopicAttributes")
	if f.Err != nil {
		return nil, f.Err
	}
	attrs, ok := f.Attributes[aws.ToString(in.TopicArn)]
	if !ok {
		return nil, fmt.Errorf("topic %s not found", aws.ToString(in.TopicArn))
	}
	return &sns.GetTopicAttributesOutput{Attributes: attrs}, nil
}

// SQS fakes SQSAPI. Queues maps queue URL to its attributes, which must
// include QueueArn.
type SQS struct {
	Counter
	URLs     []string // listing order
	Queues   map[string]map[string]string
	PageSize int
	Err      error
}

func (f *SQS) ListQueues(_ context.Context, in *sqs.ListQueuesInput, _ ...func(*sqs.Options)) (*sqs.ListQueuesOutput, error) {
	f.record("ListQueues")
	if f.Err != nil {
		return nil, f.Err
	}
	page, next := pageOf(f.URLs, in.NextToken, f.PageSize)
	return &sqs.ListQueuesOutput{QueueUrls: page, NextToken: next}, nil
}

func (f *SQS) GetQueueAttributes(_ context.Context, in *sqs.GetQueueAttributesInput, _ ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error) {
	f.record("GetQueueAttributes")
	if f.Err != nil {
		return nil, f.Err
	}
	attrs, ok := f.Queues[aws.ToString(in.QueueUrl)]
	if !ok {
		return nil, fmt.Errorf("queue %s does not exist", aws.ToString(in.QueueUrl))
	}
	return &sqs.GetQueueAttributesOutput{Attributes: attrs}, nil
}

func (f *SQS) GetQueueUrl(_ context.Context, in *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	f.record("GetQueueUrl")
	if f.Err != nil {
		return nil, f.Err
	}
	for _, url := range f.URLs {
		if url[strings.LastIndex(url, "/")+1:] == aws.ToString(in.QueueName) {
			return &sqs.GetQueueUrlOutput{QueueUrl: aws.String(url)}, nil
		}
	}
	return nil, fmt.Errorf("queue %s does not exist", aws.ToString(in.QueueName))
}

// StepFunctions fakes SFNAPI
type StepFunctions struct {
	Counter
	Activities    []sfn.DescribeActivityOutput
	StateMachines []sfn.DescribeStateMachineOutput
	PageSize      int
	Err           error
}

func (f *StepFunctions) ListActivities(_ context.Context, in *sfn.ListActivitiesInput, _ ...func(*sfn.Options)) (*sfn.ListActivitiesOutput, error) {
	f.record("ListActivities")
	if f.Err != nil {
		return nil, f.Err
	}
	page, next := pageOf(f.Activities, in.NextToken, f.PageSize)
	items := make([]sfnTypes.ActivityListItem, len(page))
	for i, a := range page {
		items[i] = sfnTypes.ActivityListItem{ActivityArn: a.ActivityArn, Name: a.Name, CreationDate: a.CreationDate}
	}
	return &sfn.ListActivitiesOutput{Activities: items, NextToken: next}, nil
}

func (f *StepFunctions) ListStateMachines(_ context.Context, in *sfn.ListStateMachinesInput, _ ...func(*sfn.Options)) (*sfn.ListStateMachinesOutput, error) {
	f.record("ListStateMachines")
	if f.Err != nil {
		return nil, f.Err
	}
	page, next := pageOf(f.StateMachines, in.NextToken, f.PageSize)
	items := make([]sfnTypes.StateMachineListItem, len(page))
	for i, sm := range page {
		items[i] = sfnTypes.StateMachineListItem{StateMachineArn: sm.StateMachineArn, Name: sm.Name, Type: sm.Type, CreationDate: sm.CreationDate}
	}
	return &sfn.ListStateMachinesOutput{StateMachines: items, NextToken: next}, nil
}

func (f *StepFunctions) DescribeActivity(_ context.Context, in *sfn.DescribeActivityInput, _ ...func(*sfn.Options)) (*sfn.DescribeActivityOutput, error) {
	f.record("DescribeActivity")
	if f.Err != nil {
		return nil, f.Err
	}
	for _, a := range f.Activities {
		if aws.ToString(a.ActivityArn) == aws.ToString(in.ActivityArn) {
			out := a
			return &out, nil
		}
	}
	return nil, fmt.Errorf("activity %s does not exist", aws.ToString(in.ActivityArn))
}

func (f *StepFunctions) DescribeStateMachine(_ context.Context, in *sfn.DescribeStateMachineInput, _ ...func(*sfn.Options)) (*sfn.DescribeStateMachineOutput, error) {
	f.record("DescribeStateMachine")
	if f.Err != nil {
		return nil, f.Err
	}
	for _, sm := range f.StateMachines {
		if aws.ToString(sm.StateMachineArn) == aws.ToString(in.StateMachineArn) {
			out := sm
			return &out, nil
		}
	}
	return nil, fmt.Errorf("state machine %s does not exist", aws.ToString(in.StateMachineArn))
}

// STS fakes STSAPI
type STS struct {
	Counter
	Account string
	Err     error
}

func (f *STS) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	f.record("GetCallerIdentity")
	if f.Err != nil {
		return nil, f.Err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String(f.Account)}, nil
}

// EC2 fakes EC2API
type EC2 struct {
	Counter
	Regions []string
	Err     error
}

func (f *EC2) DescribeRegions(_ context.Context, _ *ec2.DescribeRegionsInput, _ ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	f.record("DescribeRegions")
	if f.Err != nil {
		return nil, f.Err
	}
	regions := make([]ec2Types.Region, len(f.Regions))
	for i, r := range f.Regions {
		regions[i] = ec2Types.Region{RegionName: aws.String(r)}
	}
	return &ec2.DescribeRegionsOutput{Regions: regions}, nil
}
