package awstest

import (
	"context"
	"fmt"
	"sync"

	inspector "github.com/younsl/awsinspector/pkg/aws"
)

// Account bundles the fakes served for one profile. Nil fields behave as
// empty services.
type Account struct {
	CloudFormation *CloudFormation
	DynamoDB       *DynamoDB
	IAM            *IAM
	Lambda         *Lambda
	CloudWatch     *CloudWatch
	CloudWatchLogs *CloudWatchLogs
	SNS            *SNS
	SQS            *SQS
	StepFunctions  *StepFunctions
	STS            *STS
	EC2            *EC2
}

// Factory serves fakes per profile. A key of the form "profile/region"
// takes precedence over the bare profile key.
type Factory struct {
	mu       sync.Mutex
	Accounts map[string]*Account
}

var (
	_ inspector.ClientFactory   = (*Factory)(nil)
	_ inspector.IdentityClients = (*Factory)(nil)
	_ inspector.RegionClients   = (*Factory)(nil)
)

// NewFactory creates a Factory with no accounts
func NewFactory() *Factory {
	return &Factory{Accounts: make(map[string]*Account)}
}

// Set registers the fakes for a profile, or a "profile/region" pair
func (f *Factory) Set(key string, account *Account) *Factory {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Accounts[key] = account
	return f
}

func (f *Factory) account(profile, region string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.Accounts[profile+"/"+region]
	if !ok || region == "" {
		a, ok = f.Accounts[profile]
	}
	if !ok {
		return nil, fmt.Errorf("failed to get shared config profile, %s", profile)
	}
	a.fillDefaults()
	return a, nil
}

func (a *Account) fillDefaults() {
	if a.CloudFormation == nil {
		a.CloudFormation = &CloudFormation{}
	}
	if a.DynamoDB == nil {
		a.DynamoDB = &DynamoDB{}
	}
	if a.IAM == nil {
		a.IAM = &IAM{}
	}
	if a.Lambda == nil {
		a.Lambda = &Lambda{}
	}
	if a.CloudWatch == nil {
		a.CloudWatch = &CloudWatch{}
	}
	if a.CloudWatchLogs == nil {
		a.CloudWatchLogs = &CloudWatchLogs{}
	}
	if a.SNS == nil {
		a.SNS = &SNS{}
	}
	if a.SQS == nil {
		a.SQS = &SQS{}
	}
	if a.StepFunctions == nil {
		a.StepFunctions = &StepFunctions{}
	}
	if a.EC2 == nil {
		a.EC2 = &EC2{}
	}
}

func (f *Factory) CloudFormation(_ context.Context, profile, region string) (*inspector.CloudFormationClient, error) {
	a, err := f.account(profile, region)
	if err != nil {
		return nil, err
	}
	return inspector.NewCloudFormationClient(a.CloudFormation, region), nil
}

func (f *Factory) DynamoDB(_ context.Context, profile, region string) (*inspector.DynamoDBClient, error) {
	a, err := f.account(profile, region)
	if err != nil {
		return nil, err
	}
	return inspector.NewDynamoDBClient(a.DynamoDB, region), nil
}

func (f *Factory) IAM(_ context.Context, profile string) (*inspector.IAMClient, error) {
	a, err := f.account(profile, "")
	if err != nil {
		return nil, err
	}
	return inspector.NewIAMClient(a.IAM), nil
}

func (f *Factory) Lambda(_ context.Context, profile, region string) (*inspector.LambdaClient, error) {
	a, err := f.account(profile, region)
	if err != nil {
		return nil, err
	}
	return inspector.NewLambdaClient(a.Lambda, a.CloudWatch, a.CloudWatchLogs, region), nil
}

func (f *Factory) SNS(_ context.Context, profile, region string) (*inspector.SNSClient, error) {
	a, err := f.account(profile, region)
	if err != nil {
		return nil, err
	}
	return inspector.NewSNSClient(a.SNS, region), nil
}

func (f *Factory) SQS(_ context.Context, profile, region string) (*inspector.SQSClient, error) {
	a, err := f.account(profile, region)
	if err != nil {
		return nil, err
	}
	return inspector.NewSQSClient(a.SQS, region), nil
}

func (f *Factory) StepFunctions(_ context.Context, profile, region string) (*inspector.StepFunctionsClient, error) {
	a, err := f.account(profile, region)
	if err != nil {
		return nil, err
	}
	return inspector.NewStepFunctionsClient(a.StepFunctions, region), nil
}

func (f *Factory) STS(_ context.Context, profile string) (inspector.STSAPI, error) {
	a, err := f.account(profile, "")
	if err != nil {
		return nil, err
	}
	if a.STS == nil {
		return nil, fmt.Errorf("no STS configured for profile %s", profile)
	}
	return a.STS, nil
}

func (f *Factory) EC2(_ context.Context, profile string) (inspector.EC2API, error) {
	a, err := f.account(profile, "")
	if err != nil {
		return nil, err
	}
	return a.EC2, nil
}
