// Where: internal/infra/registry/aws_factory.go
// What: AWS client factory for the remote registry backends.
// Why: Encapsulate SDK configuration, including local S3/DynamoDB endpoints.
package registry

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poruru/envctx/internal/constants"
	"github.com/poruru/envctx/internal/infra/config"
)

const defaultAWSRegion = "us-east-1"

// ClientFactory builds SDK clients for the remote backends.
type ClientFactory interface {
	S3(ctx context.Context, cfg config.RegistryConfig) (S3API, error)
	DynamoDB(ctx context.Context, cfg config.RegistryConfig) (DynamoDBAPI, error)
}

type awsClientFactory struct {
	getenv func(string) string
}

func (f awsClientFactory) S3(ctx context.Context, cfg config.RegistryConfig) (S3API, error) {
	awsCfg, err := f.loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	endpoint := f.endpoint(cfg)
	return s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	}), nil
}

func (f awsClientFactory) DynamoDB(ctx context.Context, cfg config.RegistryConfig) (DynamoDBAPI, error) {
	awsCfg, err := f.loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	endpoint := f.endpoint(cfg)
	return dynamodb.NewFromConfig(awsCfg, func(options *dynamodb.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func (f awsClientFactory) loadAWSConfig(ctx context.Context, cfg config.RegistryConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(f.region(cfg)),
	}
	accessKey := strings.TrimSpace(f.getenv(constants.EnvRegistryAccessKey))
	secretKey := strings.TrimSpace(f.getenv(constants.EnvRegistrySecretKey))
	if accessKey != "" && secretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

func (f awsClientFactory) region(cfg config.RegistryConfig) string {
	if region := strings.TrimSpace(cfg.Region); region != "" {
		return region
	}
	if region := strings.TrimSpace(f.getenv(constants.EnvAWSRegion)); region != "" {
		return region
	}
	return defaultAWSRegion
}

func (f awsClientFactory) endpoint(cfg config.RegistryConfig) string {
	if endpoint := strings.TrimSpace(f.getenv(constants.EnvRegistryEndpoint)); endpoint != "" {
		return endpoint
	}
	return strings.TrimSpace(cfg.Endpoint)
}
