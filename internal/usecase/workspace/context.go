// Where: internal/usecase/workspace/context.go
// What: Working context handed to downstream commands.
// Why: Enumerate every field explicitly so tool handles and environment data never collide.
package workspace

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/poruru/envctx/internal/domain/project"
	"github.com/poruru/envctx/internal/domain/question"
	"github.com/poruru/envctx/internal/domain/secret"
	"github.com/poruru/envctx/internal/infra/auth"
	"github.com/poruru/envctx/internal/infra/ui"
	"go.uber.org/zap"
)

// Tools carries the ambient handles an operation may use.
type Tools struct {
	Logger    *zap.Logger
	UI        ui.UserInterface
	Presenter question.Presenter
	Token     auth.TokenProvider
}

// Context is the per-operation aggregate of project, environment and tools.
type Context struct {
	Project   project.Settings
	TargetEnv string
	// NewEnv is set when TargetEnv was named through "+ new env" and has no stored profile yet.
	NewEnv bool
	Config map[string]any
	Root   string
	Tools  Tools
	// Crypto is nil for legacy projects without an identity.
	Crypto  secret.Provider
	Answers question.Answers
}

// DecodeConfig decodes the environment config into out, which must be a pointer.
// Fields are matched by their yaml tags and scalar types are converted loosely.
func (c Context) DecodeConfig(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("create config decoder: %w", err)
	}
	if err := decoder.Decode(c.Config); err != nil {
		return fmt.Errorf("decode %s config: %w", c.TargetEnv, err)
	}
	return nil
}
