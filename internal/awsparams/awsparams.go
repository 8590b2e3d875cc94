// Package awsparams wraps the AWS SSM Parameter Store calls the service
// needs in production: fetching decrypted secure strings by name.
package awsparams

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// API is the slice of the SSM client this package uses. Tests substitute a
// fake; production code uses ssm.Client.
type API interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

type Client struct {
	ssm API
}

// New builds a client from the ambient AWS configuration (env, shared
// config, instance role).
func New(ctx context.Context) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{ssm: ssm.NewFromConfig(cfg)}, nil
}

func NewWithAPI(api API) *Client {
	return &Client{ssm: api}
}

// Fetch returns the decrypted values of the named parameters, keyed by
// parameter name. Missing names are an error: a prod boot with absent
// secrets should fail loudly, not run with blanks.
func (c *Client) Fetch(ctx context.Context, names ...string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	out, err := c.ssm.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          names,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parameters: %w", err)
	}

	if len(out.InvalidParameters) > 0 {
		return nil, fmt.Errorf("parameters not found: %v", out.InvalidParameters)
	}

	values := make(map[string]string, len(out.Parameters))
	for _, p := range out.Parameters {
		if p.Name == nil || p.Value == nil {
			continue
		}
		values[*p.Name] = *p.Value
	}
	return values, nil
}
