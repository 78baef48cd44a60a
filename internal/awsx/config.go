// Package awsx implements the failover collaborators on AWS: the Cognito
// user pool as the directory, SNS for notifications and SSM Parameter Store
// for configuration.
package awsx

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/dmitrijs2005/regionfailover/internal/failover"
)

var (
	_ failover.Directory      = (*CognitoDirectory)(nil)
	_ failover.Notifier       = (*SNSNotifier)(nil)
	_ failover.ParameterStore = (*SSMParameterStore)(nil)
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newCognitoClient = func(cfg aws.Config, optFns ...func(*cognitoidentityprovider.Options)) CognitoAPI {
		return cognitoidentityprovider.NewFromConfig(cfg, optFns...)
	}

	newSNSClient = func(cfg aws.Config, optFns ...func(*sns.Options)) SNSAPI {
		return sns.NewFromConfig(cfg, optFns...)
	}

	newSSMClient = func(cfg aws.Config, optFns ...func(*ssm.Options)) SSMAPI {
		return ssm.NewFromConfig(cfg, optFns...)
	}
)

// Options describes how to reach AWS.
//
// Static credentials are used only when AccessKeyID is set; otherwise the
// default chain (environment, Lambda role) applies. BaseEndpoint points every
// client at an emulator such as LocalStack.
type Options struct {
	PrimaryRegion   string
	SecondaryRegion string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	BaseEndpoint    string
	MaxAttempts     int
}

// Clients bundles the adapters for one run. The directory and the
// subscriptions live in the secondary region; the broadcast and the
// parameter store in the primary one.
type Clients struct {
	Directory  *CognitoDirectory
	Notifier   *SNSNotifier
	Parameters *SSMParameterStore
}

func loadRegionConfig(ctx context.Context, region string, o Options) (aws.Config, error) {
	if region == "" {
		return aws.Config{}, fmt.Errorf("aws region is empty")
	}

	optFns := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if o.MaxAttempts > 0 {
		optFns = append(optFns, config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), o.MaxAttempts)
		}))
	}
	if o.AccessKeyID != "" {
		optFns = append(optFns, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, o.SessionToken)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, optFns...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config for %s: %w", region, err)
	}
	return cfg, nil
}

// NewClients loads per-region configuration and builds the adapters.
func NewClients(ctx context.Context, o Options) (*Clients, error) {
	primary, err := loadRegionConfig(ctx, o.PrimaryRegion, o)
	if err != nil {
		return nil, err
	}
	secondary, err := loadRegionConfig(ctx, o.SecondaryRegion, o)
	if err != nil {
		return nil, err
	}

	var endpoint *string
	if o.BaseEndpoint != "" {
		endpoint = aws.String(o.BaseEndpoint)
	}

	cognito := newCognitoClient(secondary, func(opts *cognitoidentityprovider.Options) {
		opts.BaseEndpoint = endpoint
	})
	primarySNS := newSNSClient(primary, func(opts *sns.Options) {
		opts.BaseEndpoint = endpoint
	})
	secondarySNS := newSNSClient(secondary, func(opts *sns.Options) {
		opts.BaseEndpoint = endpoint
	})
	params := newSSMClient(primary, func(opts *ssm.Options) {
		opts.BaseEndpoint = endpoint
	})

	return &Clients{
		Directory:  NewCognitoDirectory(cognito),
		Notifier:   NewSNSNotifier(primarySNS, secondarySNS),
		Parameters: NewSSMParameterStore(params),
	}, nil
}
