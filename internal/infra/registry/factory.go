// Where: internal/infra/registry/factory.go
// What: Backend selection for the environment registry.
// Why: Map the global registry config onto a concrete implementation.
package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/envctx/internal/infra/config"
)

// New builds the registry configured by cfg using real AWS clients.
func New(ctx context.Context, cfg config.RegistryConfig) (Registry, error) {
	return NewWithFactory(ctx, cfg, awsClientFactory{getenv: os.Getenv})
}

// NewWithFactory builds the registry configured by cfg with the given client factory.
func NewWithFactory(ctx context.Context, cfg config.RegistryConfig, clients ClientFactory) (Registry, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch backend {
	case "", config.RegistryBackendFile:
		return NewFileRegistry(), nil
	case config.RegistryBackendS3:
		if strings.TrimSpace(cfg.Bucket) == "" {
			return nil, fmt.Errorf("registry bucket is required for the s3 backend")
		}
		client, err := clients.S3(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create s3 client: %w", err)
		}
		return NewS3Registry(client, cfg.Bucket, cfg.Prefix), nil
	case config.RegistryBackendDynamoDB:
		if strings.TrimSpace(cfg.Table) == "" {
			return nil, fmt.Errorf("registry table is required for the dynamodb backend")
		}
		client, err := clients.DynamoDB(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create dynamodb client: %w", err)
		}
		return NewDynamoRegistry(client, cfg.Table), nil
	default:
		return nil, fmt.Errorf("unsupported registry backend %q", cfg.Backend)
	}
}

// Location describes where envName of the project is stored by the configured
// backend, for messages that tell the operator where to create a profile.
func Location(cfg config.RegistryConfig, projectPath, envName string) string {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case config.RegistryBackendS3:
		objects := S3Registry{Bucket: cfg.Bucket, Prefix: strings.Trim(cfg.Prefix, "/")}
		return "s3://" + cfg.Bucket + "/" + objects.ObjectKey(projectPath, envName+".yaml")
	case config.RegistryBackendDynamoDB:
		return fmt.Sprintf("dynamodb table %s item (%s=%s, %s=%s)",
			cfg.Table, dynamoProjectAttr, ProjectKey(projectPath), dynamoEnvAttr, envName)
	default:
		return filepath.Join(EnvironmentsDir(projectPath), envName+".yaml")
	}
}

// ProjectKey is the key remote backends store a project's profiles under: the
// lower-cased base name of the project root. Projects sharing a directory name
// share remote profiles, and values sealed for one project identity will not
// decrypt in the other; give such projects distinct directory names or
// separate registry prefixes/tables.
func ProjectKey(projectPath string) string {
	cleaned := filepath.Clean(strings.TrimSpace(projectPath))
	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "default"
	}
	return strings.ToLower(base)
}
