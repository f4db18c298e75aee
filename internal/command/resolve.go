// Where: internal/command/resolve.go
// What: resolve command adapter.
// Why: Resolve the target environment and report the working context.
package command

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/poruru/envctx/internal/constants"
	"github.com/poruru/envctx/internal/infra/auth"
	"github.com/poruru/envctx/internal/infra/envutil"
	"github.com/poruru/envctx/internal/infra/registry"
	"github.com/poruru/envctx/internal/infra/ui"
	"github.com/poruru/envctx/internal/usecase/resolve"
	"github.com/poruru/envctx/internal/usecase/workspace"
	"go.uber.org/zap"
)

func runResolve(cli CLI, deps Dependencies, out io.Writer) int {
	s, err := openSession(cli, deps, out)
	if err != nil {
		return exitWithError(out, err)
	}
	defer s.close()

	// Parse the template before prompting so a typo fails fast.
	var tmpl *template.Template
	if format := cli.Resolve.Format; format != "" {
		tmpl, err = template.New("resolve").Funcs(sprig.TxtFuncMap()).Parse(format)
		if err != nil {
			return exitWithError(out, fmt.Errorf("parse --format: %w", err))
		}
	}

	wctx, err := s.open(cli, deps)
	if err != nil {
		return exitWithResolveError(out, err)
	}

	if !cli.Resolve.NoSave && !wctx.NewEnv {
		if err := s.rememberProject(wctx.TargetEnv, deps); err != nil {
			s.logger.Warn("remember last environment failed", zap.Error(err))
		}
	}

	if tmpl != nil {
		rendered, err := renderContext(tmpl, wctx)
		if err != nil {
			return exitWithError(out, err)
		}
		writeLine(out, rendered)
		return 0
	}

	s.ui.Block("🌐", "Environment", summaryRows(s, wctx))
	if wctx.NewEnv {
		location := registry.Location(s.global.Registry, wctx.Root, wctx.TargetEnv)
		s.ui.Info(fmt.Sprintf("Environment %q is new; create %s to persist it.", wctx.TargetEnv, location))
	}
	return 0
}

func (s *session) open(cli CLI, deps Dependencies) (workspace.Context, error) {
	var reg registry.Registry
	if s.settings != nil {
		built, err := deps.NewRegistry(s.ctx, s.global.Registry)
		if err != nil {
			return workspace.Context{}, fmt.Errorf("open registry: %w", err)
		}
		reg = built
	}
	factory, err := s.cryptoFactory(deps)
	if err != nil {
		return workspace.Context{}, err
	}
	tools := s.tools(cli, deps)

	envName := strings.TrimSpace(cli.EnvFlag)
	if envName == "" && cli.Resolve.New == "" {
		envName = envutil.GetHostEnv(constants.HostSuffixEnv)
	}

	assembler := workspace.Assembler{
		Resolver: resolve.Resolver{Registry: reg, DefaultEnv: s.defaultEnv()},
		Crypto:   factory,
		Tools:    tools,
	}
	return assembler.Open(s.ctx, resolve.Request{
		ProjectPath:    s.root,
		Settings:       s.settings,
		EnvName:        envName,
		NewEnvName:     cli.Resolve.New,
		NonInteractive: !isInteractive(cli, deps),
	})
}

func summaryRows(s *session, wctx workspace.Context) []ui.KeyValue {
	projectID := wctx.Project.ProjectID
	if wctx.Project.IdentityMissing {
		projectID = "(legacy, secrets not decrypted)"
	}
	token := "not set"
	if auth.Configured(s.ctx, wctx.Tools.Token) {
		token = "set"
	}
	return []ui.KeyValue{
		{Key: "app", Value: wctx.Project.AppName},
		{Key: "project_id", Value: projectID},
		{Key: "env", Value: wctx.TargetEnv},
		{Key: "new", Value: wctx.NewEnv},
		{Key: "root", Value: wctx.Root},
		{Key: "config keys", Value: len(wctx.Config)},
		{Key: "token", Value: token},
	}
}

func renderContext(tmpl *template.Template, wctx workspace.Context) (string, error) {
	data := map[string]any{
		"Env":       wctx.TargetEnv,
		"App":       wctx.Project.AppName,
		"ProjectID": wctx.Project.ProjectID,
		"Legacy":    wctx.Project.IdentityMissing,
		"Solution":  wctx.Project.Solution,
		"Root":      wctx.Root,
		"Config":    wctx.Config,
		"Answers":   map[string]string(wctx.Answers),
		"IsNew":     wctx.NewEnv,
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render --format: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
