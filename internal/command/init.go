// Where: internal/command/init.go
// What: init command adapter.
// Why: Create project settings with a fresh identity, or upgrade a legacy project.
package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/envctx/internal/domain/question"
	"github.com/poruru/envctx/internal/infra/config"
	"github.com/poruru/envctx/internal/infra/interaction"
	"github.com/poruru/envctx/internal/infra/registry"
	"github.com/poruru/envctx/internal/infra/ui"
	"github.com/poruru/envctx/internal/usecase/workspace"
)

func runInit(cli CLI, deps Dependencies, out io.Writer) int {
	s, err := openSession(cli, deps, out)
	if err != nil {
		return exitWithError(out, err)
	}
	defer s.close()

	root := s.startDir
	appName := strings.TrimSpace(cli.Init.Name)
	if s.settings != nil {
		if !s.settings.IdentityMissing {
			return exitWithError(out, fmt.Errorf("project already initialized at %s", s.root))
		}
		ok, err := confirmIdentityUpgrade(cli, deps, out)
		if err != nil {
			return exitWithError(out, err)
		}
		if !ok {
			s.ui.Info("Aborted; project settings unchanged.")
			return 1
		}
		root = s.root
		if appName == "" {
			appName = s.settings.AppName
		}
	}

	root, err = filepath.Abs(root)
	if err != nil {
		return exitWithError(out, fmt.Errorf("resolve project dir: %w", err))
	}
	if appName == "" {
		appName = filepath.Base(root)
	}

	factory, err := s.cryptoFactory(deps)
	if err != nil {
		return exitWithError(out, err)
	}
	assembler := workspace.Assembler{Crypto: factory, Tools: s.tools(cli, deps)}
	wctx := assembler.Create(root, appName, question.Answers{})

	if err := config.SaveProjectSettings(root, wctx.Project); err != nil {
		return exitWithError(out, err)
	}
	if err := os.MkdirAll(registry.EnvironmentsDir(root), 0o755); err != nil {
		return exitWithError(out, fmt.Errorf("create environments dir: %w", err))
	}

	s.root = root
	s.settings = &wctx.Project
	if err := s.rememberProject("", deps); err != nil {
		s.ui.Warn(fmt.Sprintf("Warning: failed to register project: %v", err))
	}

	s.ui.Success(fmt.Sprintf("Initialized %s", appName))
	s.ui.Block("📦", "Project", []ui.KeyValue{
		{Key: "app", Value: wctx.Project.AppName},
		{Key: "project_id", Value: wctx.Project.ProjectID},
		{Key: "solution", Value: wctx.Project.Solution.Name + "@" + wctx.Project.Solution.Version},
		{Key: "root", Value: wctx.Root},
	})
	return 0
}

func confirmIdentityUpgrade(cli CLI, deps Dependencies, out io.Writer) (bool, error) {
	if cli.Init.Yes {
		return true, nil
	}
	if !isInteractive(cli, deps) {
		return false, fmt.Errorf("legacy project needs confirmation; rerun with --yes")
	}
	return interaction.PromptYesNoWithIO(deps.In, out, "Assign a new identity to this legacy project?")
}
