// Where: internal/usecase/resolve/resolver.go
// What: Target environment resolution for an open project.
// Why: Turn operator choices or supplied names into a loaded environment profile.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/poruru/envctx/internal/domain/environment"
	"github.com/poruru/envctx/internal/domain/project"
	"github.com/poruru/envctx/internal/domain/question"
	"github.com/poruru/envctx/internal/domain/secret"
	"github.com/poruru/envctx/internal/infra/registry"
	"go.uber.org/zap"
)

// Request captures the inputs of one resolution.
type Request struct {
	ProjectPath string
	// Settings is nil when no project is open.
	Settings *project.Settings
	// EnvName pre-selects an existing environment. A name the registry does not
	// list fails with KindEnvironmentLoadFailed wrapping registry.ErrProfileNotFound,
	// the same as a missing DefaultEnv.
	EnvName string
	// NewEnvName pre-selects "+ new env" with this name.
	NewEnvName string
	// NonInteractive skips prompting when nothing was supplied and falls back to DefaultEnv.
	NonInteractive bool
}

// Resolution is the outcome of a successful resolution.
type Resolution struct {
	Profile environment.Profile
	Answers question.Answers
	// Crypto is nil for projects without an identity.
	Crypto secret.Provider
	IsNew  bool
}

// Resolver selects and loads the target environment.
type Resolver struct {
	Registry   registry.Registry
	Presenter  question.Presenter
	Crypto     secret.Factory
	DefaultEnv string
	Logger     *zap.Logger
}

// Resolve runs the selection flow and loads the chosen profile.
// Every failure is returned as *Error.
func (r Resolver) Resolve(ctx context.Context, req Request) (Resolution, error) {
	log := r.logger().With(zap.String("project", req.ProjectPath))

	if strings.TrimSpace(req.ProjectPath) == "" || req.Settings == nil {
		log.Debug("resolution refused: no project open")
		return Resolution{}, &Error{Kind: KindNoProjectOpen}
	}

	existing, err := r.Registry.ListNames(ctx, req.ProjectPath)
	if err != nil {
		log.Error("list environments failed", zap.Error(err))
		return Resolution{}, &Error{Kind: KindEnvironmentLoadFailed, Err: err}
	}
	existing = withoutSentinel(existing)
	log.Debug("environments listed", zap.Strings("existing", existing))

	answers, unknown := seedAnswers(req, existing)
	if unknown != "" {
		err := fmt.Errorf("%w: %s", registry.ErrProfileNotFound, unknown)
		log.Error("environment load failed", zap.Error(err))
		return Resolution{}, &Error{Kind: KindEnvironmentLoadFailed, Env: unknown, Err: err}
	}
	if len(answers) == 0 && req.NonInteractive {
		log.Debug("selection skipped: non-interactive without supplied environment")
	} else {
		if err := question.Traverse(ctx, BuildTree(existing), r.Presenter, answers); err != nil {
			log.Info("environment selection aborted", zap.Error(err))
			return Resolution{}, &Error{Kind: KindQuestionAborted, Err: err}
		}
	}

	target, isNew, err := r.targetName(answers)
	if err != nil {
		log.Info("environment not determined", zap.Error(err))
		return Resolution{}, err
	}
	log = log.With(zap.String("env", target), zap.Bool("new", isNew))

	provider := r.provider(req.Settings)
	if provider == nil {
		log.Debug("loading without decryption", zap.Bool("identity_missing", req.Settings.IdentityMissing))
	}

	profile, err := r.Registry.Load(ctx, registry.LoadRequest{
		ProjectPath:  req.ProjectPath,
		EnvName:      target,
		Crypto:       provider,
		AllowMissing: isNew,
	})
	if err != nil {
		log.Error("environment load failed", zap.Error(err))
		return Resolution{}, &Error{Kind: KindEnvironmentLoadFailed, Env: target, Err: err}
	}

	log.Info("environment resolved", zap.String("profile", profile.Name))
	return Resolution{
		Profile: profile,
		Answers: answers.Clone(),
		Crypto:  provider,
		IsNew:   isNew,
	}, nil
}

// targetName implements the final-name rule: the child answer when the sentinel
// was chosen, the selected name otherwise, and the default when nothing was chosen.
func (r Resolver) targetName(answers question.Answers) (string, bool, error) {
	selected, _ := answers.Lookup(EnvNodeID)
	if selected == environment.NewEnvOption {
		name := environment.NormalizeName(answers[NewEnvNameNodeID])
		if name == "" {
			return "", true, &Error{Kind: KindMissingNewEnvironmentName}
		}
		return name, true, nil
	}
	if selected != "" {
		return selected, false, nil
	}
	if fallback := strings.TrimSpace(r.DefaultEnv); fallback != "" {
		return fallback, false, nil
	}
	return "", false, &Error{Kind: KindNoEnvironment}
}

func (r Resolver) provider(settings *project.Settings) secret.Provider {
	if !settings.HasIdentity() || r.Crypto == nil {
		return nil
	}
	return r.Crypto(settings.ProjectID)
}

func (r Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// seedAnswers converts supplied names into pre-answered nodes. A supplied
// existing name is matched case-insensitively; an unlisted one is returned
// as unknown.
func seedAnswers(req Request, existing []string) (question.Answers, string) {
	answers := question.Answers{}
	if name := strings.TrimSpace(req.NewEnvName); name != "" {
		answers[EnvNodeID] = environment.NewEnvOption
		answers[NewEnvNameNodeID] = name
		return answers, ""
	}
	name := strings.TrimSpace(req.EnvName)
	if name == "" {
		return answers, ""
	}
	for _, candidate := range existing {
		if strings.EqualFold(candidate, name) {
			answers[EnvNodeID] = candidate
			return answers, ""
		}
	}
	return answers, name
}

func withoutSentinel(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == environment.NewEnvOption {
			continue
		}
		out = append(out, name)
	}
	return out
}
