package aws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// fallbackRegion is used for global services when a profile has no region
const fallbackRegion = "us-east-1"

// SessionOptions configures a Session
type SessionOptions struct {
	DisableIMDS bool // Skip EC2 instance metadata credential probing
	Logger      *slog.Logger
}

// Session builds SDK configurations and service clients per profile and
// region. Configurations are loaded once per (profile, region) pair.
type Session struct {
	shared  *SharedConfig
	opts    SessionOptions
	logger  *slog.Logger
	configs memo[aws.Config]
}

// NewSession creates a Session backed by the given shared config
func NewSession(shared *SharedConfig, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{shared: shared, opts: opts, logger: logger}
}

// SharedConfig returns the config file reader behind this session
func (s *Session) SharedConfig() *SharedConfig {
	return s.shared
}

// Config loads the SDK configuration for profile in region. An empty region
// resolves to the profile's default region, then to us-east-1.
func (s *Session) Config(ctx context.Context, profile, region string) (aws.Config, error) {
	if region == "" {
		if r, ok := s.shared.DefaultRegion(profile); ok {
			region = r
		} else {
			region = fallbackRegion
		}
	}

	return s.configs.Do(memoKey(profile, region), func() (aws.Config, error) {
		opts := []func(*config.LoadOptions) error{
			config.WithSharedConfigProfile(profile),
			config.WithRegion(region),
		}
		if endpoint := s.shared.ClientConfig(profile).EndpointOverride; endpoint != "" {
			opts = append(opts, config.WithBaseEndpoint(endpoint))
		}
		if s.opts.DisableIMDS {
			opts = append(opts, config.WithEC2IMDSClientEnableState(imds.ClientDisabled))
		}

		s.logger.Debug("loading AWS config", "profile", profile, "region", region)
		cfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return aws.Config{}, fmt.Errorf("error loading AWS config for profile %s: %w", profile, err)
		}
		return cfg, nil
	})
}

// CloudFormation returns a CloudFormation accessor
func (s *Session) CloudFormation(ctx context.Context, profile, region string) (*CloudFormationClient, error) {
	cfg, err := s.Config(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return NewCloudFormationClient(cloudformation.NewFromConfig(cfg), cfg.Region), nil
}

// DynamoDB returns a DynamoDB accessor
func (s *Session) DynamoDB(ctx context.Context, profile, region string) (*DynamoDBClient, error) {
	cfg, err := s.Config(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return NewDynamoDBClient(dynamodb.NewFromConfig(cfg), cfg.Region), nil
}

// IAM returns an IAM accessor. IAM is global so only the profile matters.
func (s *Session) IAM(ctx context.Context, profile string) (*IAMClient, error) {
	cfg, err := s.Config(ctx, profile, "")
	if err != nil {
		return nil, err
	}
	return NewIAMClient(iam.NewFromConfig(cfg)), nil
}

// Lambda returns a Lambda accessor that also reads CloudWatch metrics and
// log group statistics
func (s *Session) Lambda(ctx context.Context, profile, region string) (*LambdaClient, error) {
	cfg, err := s.Config(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return NewLambdaClient(
		lambda.NewFromConfig(cfg),
		cloudwatch.NewFromConfig(cfg),
		cloudwatchlogs.NewFromConfig(cfg),
		cfg.Region,
	), nil
}

// SNS returns an SNS accessor
func (s *Session) SNS(ctx context.Context, profile, region string) (*SNSClient, error) {
	cfg, err := s.Config(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return NewSNSClient(sns.NewFromConfig(cfg), cfg.Region), nil
}

// SQS returns an SQS accessor
func (s *Session) SQS(ctx context.Context, profile, region string) (*SQSClient, error) {
	cfg, err := s.Config(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return NewSQSClient(sqs.NewFromConfig(cfg), cfg.Region), nil
}

// StepFunctions returns a Step Functions accessor
func (s *Session) StepFunctions(ctx context.Context, profile, region string) (*StepFunctionsClient, error) {
	cfg, err := s.Config(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return NewStepFunctionsClient(sfn.NewFromConfig(cfg), cfg.Region), nil
}

// STS returns an STS client for profile
func (s *Session) STS(ctx context.Context, profile string) (STSAPI, error) {
	cfg, err := s.Config(ctx, profile, "")
	if err != nil {
		return nil, err
	}
	return sts.NewFromConfig(cfg), nil
}

// EC2 returns an EC2 client for profile in its default region
func (s *Session) EC2(ctx context.Context, profile string) (EC2API, error) {
	cfg, err := s.Config(ctx, profile, "")
	if err != nil {
		return nil, err
	}
	return ec2.NewFromConfig(cfg), nil
}
