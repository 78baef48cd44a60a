package awsx

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/dmitrijs2005/regionfailover/internal/failover"
)

// SSMAPI is the part of the SSM client the parameter store uses.
type SSMAPI interface {
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// SSMParameterStore writes parameters to SSM, overwriting existing values.
// SECRET entries become SecureString parameters.
type SSMParameterStore struct {
	api SSMAPI
}

func NewSSMParameterStore(api SSMAPI) *SSMParameterStore {
	return &SSMParameterStore{api: api}
}

func (s *SSMParameterStore) PutParameter(ctx context.Context, e failover.ParameterEntry) error {
	in := &ssm.PutParameterInput{
		Name:      aws.String(e.Name),
		Value:     aws.String(e.Value),
		Type:      parameterType(e.Sensitivity),
		Overwrite: aws.Bool(true),
	}
	if e.Description != "" {
		in.Description = aws.String(e.Description)
	}

	_, err := s.api.PutParameter(ctx, in)
	return err
}

func parameterType(s failover.Sensitivity) types.ParameterType {
	if s == failover.SensitivitySecret {
		return types.ParameterTypeSecureString
	}
	return types.ParameterTypeString
}
