// Where: internal/infra/registry/dynamodb.go
// What: DynamoDB-backed environment registry.
// Why: Serve profiles from a shared table keyed by project and environment.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/poruru/envctx/internal/domain/environment"
)

const (
	dynamoProjectAttr  = "project"
	dynamoEnvAttr      = "env"
	dynamoDocumentAttr = "document"
)

// DynamoDBAPI is the subset of the DynamoDB client used by DynamoRegistry.
type DynamoDBAPI interface {
	dynamodb.QueryAPIClient
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoRegistry reads profiles from a table with partition key "project"
// and sort key "env"; the profile body lives in the "document" attribute.
type DynamoRegistry struct {
	Client DynamoDBAPI
	Table  string
}

// NewDynamoRegistry returns a registry backed by table.
func NewDynamoRegistry(client DynamoDBAPI, table string) *DynamoRegistry {
	return &DynamoRegistry{Client: client, Table: table}
}

// ListNames queries every environment item of the project.
func (r *DynamoRegistry) ListNames(ctx context.Context, projectPath string) ([]string, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	paginator := dynamodb.NewQueryPaginator(r.Client, &dynamodb.QueryInput{
		TableName:              aws.String(r.Table),
		KeyConditionExpression: aws.String("#p = :p"),
		ExpressionAttributeNames: map[string]string{
			"#p": dynamoProjectAttr,
			"#e": dynamoEnvAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberS{Value: ProjectKey(projectPath)},
		},
		ProjectionExpression: aws.String("#e"),
	})

	names := []string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query dynamodb profiles: %w", err)
		}
		for _, item := range page.Items {
			if name, ok := stringAttr(item, dynamoEnvAttr); ok && name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load fetches and decodes a single profile item.
func (r *DynamoRegistry) Load(ctx context.Context, req LoadRequest) (environment.Profile, error) {
	if r.Client == nil {
		return environment.Profile{}, fmt.Errorf("dynamodb client is nil")
	}
	key := strings.TrimSpace(req.EnvName)
	if key == "" {
		return environment.Profile{}, fmt.Errorf("environment name is required")
	}
	out, err := r.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.Table),
		Key: map[string]types.AttributeValue{
			dynamoProjectAttr: &types.AttributeValueMemberS{Value: ProjectKey(req.ProjectPath)},
			dynamoEnvAttr:     &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return environment.Profile{}, fmt.Errorf("get dynamodb profile %s: %w", key, err)
	}
	if len(out.Item) == 0 {
		return missingProfile(req, key)
	}
	document, ok := stringAttr(out.Item, dynamoDocumentAttr)
	if !ok {
		return environment.Profile{}, &DecodeError{EnvName: key, Err: fmt.Errorf("attribute %q is missing or not a string", dynamoDocumentAttr)}
	}
	return decodeProfile(key, []byte(document), req.Crypto)
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, bool) {
	value, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return value.Value, true
}
