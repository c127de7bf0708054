package provider

import (
	"context"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/dustin/go-humanize"
	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	inspector "github.com/younsl/awsinspector/pkg/aws"
	"github.com/younsl/awsinspector/pkg/utils"
)

// Lambda lists and describes Lambda functions and event source mappings
type Lambda struct {
	base
}

// NewLambda creates the Lambda provider
func NewLambda(cfg Config) *Lambda {
	return &Lambda{
		base: newBase(cfg, "lambda", "Lambda",
			[3]string{"function", "Function", "Functions"},
			[3]string{"event-source-mapping", "Event Source Mapping", "Event Source Mappings"},
		),
	}
}

func (p *Lambda) ListResourceArns(ctx context.Context, profile, region, resourceType string) ([]string, error) {
	if _, ok := p.names[resourceType]; !ok {
		return nil, p.unknownType(resourceType)
	}
	client, err := p.cfg.Clients.Lambda(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	if resourceType == "function" {
		return client.ListFunctionArns(ctx)
	}
	return client.ListEventSourceMappingArns(ctx)
}

func (p *Lambda) DescribeResource(ctx context.Context, profile string, resource arn.ARN) ([]models.ResourceField, error) {
	resourceType := strings.ToLower(resource.ResourceType)
	if _, ok := p.names[resourceType]; !ok {
		return nil, p.unknownType(resource.ResourceType)
	}
	client, err := p.cfg.Clients.Lambda(ctx, profile, resource.Region)
	if err != nil {
		return nil, err
	}
	if resourceType == "function" {
		return p.describeFunction(ctx, client, resource.ResourceName)
	}
	return p.describeEventSourceMapping(ctx, client, resource.ResourceName)
}

func (p *Lambda) describeFunction(ctx context.Context, client *inspector.LambdaClient, name string) ([]models.ResourceField, error) {
	fn, err := client.GetFunction(ctx, name)
	if err != nil {
		return nil, err
	}

	architectures := make([]string, len(fn.Architectures))
	for i, a := range fn.Architectures {
		architectures[i] = string(a)
	}
	archValue := strings.Join(architectures, ", ")
	if archValue == "" {
		archValue = "N/A"
	}

	logFormat, logGroup := "N/A", "N/A"
	if fn.LoggingConfig != nil {
		if fn.LoggingConfig.LogFormat != "" {
			logFormat = string(fn.LoggingConfig.LogFormat)
		}
		logGroup = utils.DerefOr(fn.LoggingConfig.LogGroup, "N/A")
	}

	fields := []models.ResourceField{
		header("Function"),
		field("Name", aws.ToString(fn.FunctionName), models.FieldName),
		field("State", string(fn.State), models.FieldName),
		field("Description", utils.DerefOr(fn.Description, "N/A"), models.FieldName),
		field("Runtime", string(fn.Runtime), models.FieldName),
		field("Handler", aws.ToString(fn.Handler), models.FieldName),
		field("Version", aws.ToString(fn.Version), models.FieldName),
		field("Role", aws.ToString(fn.Role), models.FieldARN),
		field("Code Size (bytes)", strconv.FormatInt(fn.CodeSize, 10), models.FieldNumber),
		field("Memory Size (MB)", utils.Int32String(fn.MemorySize), models.FieldNumber),
		field("Timeout (seconds)", utils.Int32String(fn.Timeout), models.FieldNumber),
		field("Last Modified", aws.ToString(fn.LastModified), models.FieldDate),
		field("Last Update Status", string(fn.LastUpdateStatus), models.FieldName),
		field("Package Type", packageType(fn.PackageType), models.FieldName),
		field("Architectures", archValue, models.FieldName),
		field("LogFormat", logFormat, models.FieldName),
		field("LogGroup", logGroup, models.FieldLogGroup),
	}

	// Metrics and log statistics are best effort; a missing permission
	// should not hide the function's configuration
	invocations, errorCount := "N/A", "N/A"
	if metrics, err := client.GetFunctionMetrics(ctx, name); err != nil {
		p.logger.Warn("could not read CloudWatch metrics", "function", name, "error", err)
	} else {
		invocations = strconv.FormatInt(metrics.Invocations, 10)
		errorCount = strconv.FormatInt(metrics.Errors, 10)
	}
	fields = append(fields,
		field("Invocations (30 days)", invocations, models.FieldNumber),
		field("Errors (30 days)", errorCount, models.FieldNumber),
	)

	if logGroup != "N/A" {
		stored := "N/A"
		if size, found, err := client.LogGroupStoredBytes(ctx, logGroup); err != nil {
			p.logger.Warn("could not read log group size", "logGroup", logGroup, "error", err)
		} else if found {
			stored = humanize.Bytes(uint64(size))
		}
		fields = append(fields, field("Log Group Stored Bytes", stored, models.FieldShortText))
	}

	return fields, nil
}

func (p *Lambda) describeEventSourceMapping(ctx context.Context, client *inspector.LambdaClient, uuid string) ([]models.ResourceField, error) {
	m, err := client.GetEventSourceMapping(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return []models.ResourceField{
		header("Event Source Mapping"),
		field("UUID", aws.ToString(m.UUID), models.FieldName),
		field("State", utils.DerefOr(m.State, "N/A"), models.FieldName),
		field("Function", utils.DerefOr(m.FunctionArn, "N/A"), models.FieldARN),
		field("Event Source", utils.DerefOr(m.EventSourceArn, "N/A"), models.FieldARN),
		field("Batch Size", utils.Int32String(m.BatchSize), models.FieldNumber),
		field("Last Modified", utils.FormatISOTime(m.LastModified), models.FieldDate),
		field("State Transition Reason", utils.DerefOr(m.StateTransitionReason, "N/A"), models.FieldShortText),
	}, nil
}

// ArnForCloudFormationResource maps AWS::Lambda::Function (physical id is
// the function name) and AWS::Lambda::EventSourceMapping (physical id is
// the mapping UUID)
func (p *Lambda) ArnForCloudFormationResource(cfnType string, res models.StackResource) (string, string, error) {
	switch cfnType {
	case "AWS::Lambda::Function":
		return "function", "function:" + res.PhysicalID, nil
	case "AWS::Lambda::EventSourceMapping":
		return "event-source-mapping", "event-source-mapping:" + res.PhysicalID, nil
	default:
		return p.base.ArnForCloudFormationResource(cfnType, res)
	}
}

func packageType(t lambdaTypes.PackageType) string {
	if t == "" {
		return "N/A"
	}
	return string(t)
}
