// Where: internal/infra/registry/registry.go
// What: Environment registry contract and shared errors.
// Why: Let the resolver list and load environment profiles regardless of backend.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/poruru/envctx/internal/domain/environment"
	"github.com/poruru/envctx/internal/domain/secret"
)

// ErrProfileNotFound is returned when the named environment has no persisted profile.
var ErrProfileNotFound = errors.New("environment profile not found")

// LoadRequest describes one profile load.
type LoadRequest struct {
	ProjectPath string
	EnvName     string
	// Crypto is nil for projects without an identity; values are then not decrypted.
	Crypto secret.Provider
	// AllowMissing returns an empty profile instead of ErrProfileNotFound.
	AllowMissing bool
}

// Registry lists and loads environment profiles for a project.
type Registry interface {
	ListNames(ctx context.Context, projectPath string) ([]string, error)
	Load(ctx context.Context, req LoadRequest) (environment.Profile, error)
}

// DecodeError reports a persisted profile that is not a valid document.
type DecodeError struct {
	EnvName string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode profile %s: %v", e.EnvName, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecryptError reports a secret value that could not be decrypted.
type DecryptError struct {
	EnvName string
	Path    string
	Err     error
}

func (e *DecryptError) Error() string {
	return fmt.Sprintf("decrypt %s in profile %s: %v", e.Path, e.EnvName, e.Err)
}

func (e *DecryptError) Unwrap() error {
	return e.Err
}

func missingProfile(req LoadRequest, key string) (environment.Profile, error) {
	if req.AllowMissing {
		return environment.Profile{Name: key, Data: map[string]any{}}, nil
	}
	return environment.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, key)
}
