// Where: internal/usecase/workspace/assemble.go
// What: Context assembly for opened and brand-new projects.
// Why: Build the working context as a pure function of its inputs.
package workspace

import (
	"context"
	"fmt"

	"github.com/mitchellh/copystructure"
	"github.com/poruru/envctx/internal/domain/project"
	"github.com/poruru/envctx/internal/domain/question"
	"github.com/poruru/envctx/internal/domain/secret"
	"github.com/poruru/envctx/internal/usecase/resolve"
)

// ResolveExisting merges loaded project settings and a resolved environment.
// The target environment is always the name of the profile the registry returned.
func ResolveExisting(root string, settings *project.Settings, res resolve.Resolution, tools Tools) (Context, error) {
	if settings == nil {
		return Context{}, &resolve.Error{Kind: resolve.KindNoProjectOpen}
	}
	config, err := copyConfig(res.Profile.Data)
	if err != nil {
		return Context{}, err
	}
	return Context{
		Project:   *settings,
		TargetEnv: res.Profile.Name,
		NewEnv:    res.IsNew,
		Config:    config,
		Root:      root,
		Tools:     tools,
		Crypto:    res.Crypto,
		Answers:   res.Answers.Clone(),
	}, nil
}

// SynthesizeNew builds the context of a project that does not exist yet:
// a fresh identity, the default solution stanza and an empty config.
func SynthesizeNew(root, appName string, tools Tools, factory secret.Factory, answers question.Answers) Context {
	settings := project.New(appName)
	var provider secret.Provider
	if factory != nil {
		provider = factory(settings.ProjectID)
	}
	return Context{
		Project: settings,
		Config:  map[string]any{},
		Root:    root,
		Tools:   tools,
		Crypto:  provider,
		Answers: answers.Clone(),
	}
}

// Assembler wires resolution and merging for callers.
type Assembler struct {
	Resolver resolve.Resolver
	Crypto   secret.Factory
	Tools    Tools
}

// Open resolves the target environment of an open project and builds its context.
func (a Assembler) Open(ctx context.Context, req resolve.Request) (Context, error) {
	resolver := a.Resolver
	if resolver.Presenter == nil {
		resolver.Presenter = a.Tools.Presenter
	}
	if resolver.Logger == nil {
		resolver.Logger = a.Tools.Logger
	}
	if resolver.Crypto == nil {
		resolver.Crypto = a.Crypto
	}
	res, err := resolver.Resolve(ctx, req)
	if err != nil {
		return Context{}, err
	}
	return ResolveExisting(req.ProjectPath, req.Settings, res, a.Tools)
}

// Create synthesizes the context for a new project rooted at root.
func (a Assembler) Create(root, appName string, answers question.Answers) Context {
	return SynthesizeNew(root, appName, a.Tools, a.Crypto, answers)
}

func copyConfig(data map[string]any) (map[string]any, error) {
	if data == nil {
		return map[string]any{}, nil
	}
	copied, err := copystructure.Copy(data)
	if err != nil {
		return nil, fmt.Errorf("copy environment config: %w", err)
	}
	return copied.(map[string]any), nil
}
