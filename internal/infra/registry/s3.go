// Where: internal/infra/registry/s3.go
// What: S3-backed environment registry.
// Why: Share profiles between machines through an object store.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/poruru/envctx/internal/domain/environment"
)

// S3API is the subset of the S3 client used by S3Registry.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Registry reads profiles from <bucket>/<prefix>/<project key>/<env>.yaml.
type S3Registry struct {
	Client S3API
	Bucket string
	Prefix string
}

// NewS3Registry returns a registry reading from bucket under prefix.
func NewS3Registry(client S3API, bucket, prefix string) *S3Registry {
	return &S3Registry{Client: client, Bucket: bucket, Prefix: strings.Trim(prefix, "/")}
}

func (r *S3Registry) projectPrefix(projectPath string) string {
	return path.Join(r.Prefix, ProjectKey(projectPath)) + "/"
}

// ListNames lists the environment objects under the project prefix.
func (r *S3Registry) ListNames(ctx context.Context, projectPath string) ([]string, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	prefix := strings.TrimPrefix(r.projectPrefix(projectPath), "/")
	paginator := s3.NewListObjectsV2Paginator(r.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.Bucket),
		Prefix: aws.String(prefix),
	})

	seen := map[string]struct{}{}
	names := []string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3 profiles: %w", err)
		}
		for _, obj := range page.Contents {
			rest := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if strings.Contains(rest, "/") {
				continue
			}
			name, ok := trimProfileExt(rest)
			if !ok || name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load fetches and decodes a single profile object, trying .yaml before .yml.
func (r *S3Registry) Load(ctx context.Context, req LoadRequest) (environment.Profile, error) {
	if r.Client == nil {
		return environment.Profile{}, fmt.Errorf("s3 client is nil")
	}
	key := strings.TrimSpace(req.EnvName)
	if key == "" {
		return environment.Profile{}, fmt.Errorf("environment name is required")
	}
	for _, ext := range profileExtensions {
		objectKey := r.ObjectKey(req.ProjectPath, key+ext)
		content, found, err := r.fetch(ctx, objectKey)
		if err != nil {
			return environment.Profile{}, err
		}
		if !found {
			continue
		}
		return decodeProfile(key, content, req.Crypto)
	}
	return missingProfile(req, key)
}

// ObjectKey returns the object key holding filename for the project.
func (r *S3Registry) ObjectKey(projectPath, filename string) string {
	return strings.TrimPrefix(r.projectPrefix(projectPath)+filename, "/")
}

func (r *S3Registry) fetch(ctx context.Context, objectKey string) ([]byte, bool, error) {
	out, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get s3 profile %s: %w", objectKey, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read s3 profile %s: %w", objectKey, err)
	}
	return content, true, nil
}
