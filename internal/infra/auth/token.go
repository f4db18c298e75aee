// Where: internal/infra/auth/token.go
// What: Access token lookup for downstream tools.
// Why: Give the working context an auth handle without reading env vars ad hoc.
package auth

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/poruru/envctx/internal/constants"
	"github.com/poruru/envctx/internal/infra/envutil"
)

// ErrNoToken is returned when no token is configured.
var ErrNoToken = errors.New("no access token configured")

// TokenProvider supplies the access token used by downstream tools.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// EnvTokenProvider reads the token from ENVCTX_TOKEN.
type EnvTokenProvider struct {
	Getenv func(string) string
}

// NewEnvTokenProvider returns a provider reading the process environment.
func NewEnvTokenProvider() EnvTokenProvider {
	return EnvTokenProvider{Getenv: os.Getenv}
}

func (p EnvTokenProvider) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	token := strings.TrimSpace(getenv(envutil.HostEnvKey(constants.HostSuffixToken)))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Configured reports whether provider yields a token.
func Configured(ctx context.Context, provider TokenProvider) bool {
	if provider == nil {
		return false
	}
	token, err := provider.Token(ctx)
	return err == nil && token != ""
}
