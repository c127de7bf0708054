package provider

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/utils"
)

// StepFunctions lists and describes activities and state machines
type StepFunctions struct {
	base
}

// NewStepFunctions creates the Step Functions provider
func NewStepFunctions(cfg Config) *StepFunctions {
	return &StepFunctions{
		base: newBase(cfg, "states", "Step Functions",
			[3]string{"activity", "Activity", "Activities"},
			[3]string{"statemachine", "State Machine", "State Machines"},
		),
	}
}

func (p *StepFunctions) ListResourceArns(ctx context.Context, profile, region, resourceType string) ([]string, error) {
	if _, ok := p.names[resourceType]; !ok {
		return nil, p.unknownType(resourceType)
	}
	client, err := p.cfg.Clients.StepFunctions(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	if resourceType == "activity" {
		return client.ListActivityArns(ctx)
	}
	return client.ListStateMachineArns(ctx)
}

func (p *StepFunctions) DescribeResource(ctx context.Context, profile string, resource arn.ARN) ([]models.ResourceField, error) {
	resourceType := strings.ToLower(resource.ResourceType)
	if _, ok := p.names[resourceType]; !ok {
		return nil, p.unknownType(resource.ResourceType)
	}
	client, err := p.cfg.Clients.StepFunctions(ctx, profile, resource.Region)
	if err != nil {
		return nil, err
	}

	if resourceType == "activity" {
		details, err := client.DescribeActivity(ctx, resource.String())
		if err != nil {
			return nil, err
		}
		return []models.ResourceField{
			header("Activity"),
			field("Name", aws.ToString(details.Name), models.FieldName),
			field("Creation Date", utils.FormatISOTime(details.CreationDate), models.FieldDate),
		}, nil
	}

	details, err := client.DescribeStateMachine(ctx, resource.String())
	if err != nil {
		return nil, err
	}

	logGroup := "None"
	logExecutionData := "No"
	logLevel := "N/A"
	if lc := details.LoggingConfiguration; lc != nil {
		if len(lc.Destinations) > 0 && lc.Destinations[0].CloudWatchLogsLogGroup != nil {
			logGroup = utils.DerefOr(lc.Destinations[0].CloudWatchLogsLogGroup.LogGroupArn, "None")
		}
		if lc.IncludeExecutionData {
			logExecutionData = "Yes"
		}
		if lc.Level != "" {
			logLevel = string(lc.Level)
		}
	}
	tracing := "Disabled"
	if details.TracingConfiguration != nil && details.TracingConfiguration.Enabled {
		tracing = "Enabled"
	}

	return []models.ResourceField{
		header("State Machine"),
		field("Name", aws.ToString(details.Name), models.FieldName),
		field("Description", aws.ToString(details.Description), models.FieldShortText),
		field("State Machine Type", string(details.Type), models.FieldName),
		field("Status", string(details.Status), models.FieldName),
		field("Creation Date", utils.FormatISOTime(details.CreationDate), models.FieldDate),
		field("Role ARN", aws.ToString(details.RoleArn), models.FieldARN),
		field("Definition", utils.PrettyJSONString(aws.ToString(details.Definition)), models.FieldJSON),
		field("Log Group", logGroup, models.FieldARN),
		field("Log Execution Data", logExecutionData, models.FieldName),
		field("Log Level", logLevel, models.FieldName),
		field("Tracing", tracing, models.FieldName),
	}, nil
}

// ArnForCloudFormationResource maps AWS::StepFunctions::StateMachine and
// AWS::StepFunctions::Activity. Both physical ids are ARNs.
func (p *StepFunctions) ArnForCloudFormationResource(cfnType string, res models.StackResource) (string, string, error) {
	switch cfnType {
	case "AWS::StepFunctions::StateMachine":
		return "statemachine", "stateMachine:" + lastSegment(res.PhysicalID, ':'), nil
	case "AWS::StepFunctions::Activity":
		return "activity", "activity:" + lastSegment(res.PhysicalID, ':'), nil
	default:
		return p.base.ArnForCloudFormationResource(cfnType, res)
	}
}
