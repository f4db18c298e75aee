// Where: internal/command/session.go
// What: Per-invocation state shared by command handlers.
// Why: Load config, logging, project settings and wiring once per command.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poruru/envctx/internal/constants"
	"github.com/poruru/envctx/internal/domain/project"
	"github.com/poruru/envctx/internal/domain/question"
	"github.com/poruru/envctx/internal/domain/secret"
	"github.com/poruru/envctx/internal/infra/config"
	"github.com/poruru/envctx/internal/infra/crypto"
	"github.com/poruru/envctx/internal/infra/envutil"
	"github.com/poruru/envctx/internal/infra/interaction"
	"github.com/poruru/envctx/internal/infra/logging"
	"github.com/poruru/envctx/internal/infra/ui"
	"github.com/poruru/envctx/internal/meta"
	"github.com/poruru/envctx/internal/usecase/workspace"
	"go.uber.org/zap"
)

type session struct {
	ctx        context.Context
	ui         ui.UserInterface
	logger     *zap.Logger
	global     config.GlobalConfig
	globalPath string
	startDir   string
	// root and settings are empty when no project encloses startDir.
	root     string
	settings *project.Settings
}

func openSession(cli CLI, deps Dependencies, out io.Writer) (*session, error) {
	globalPath, err := config.GlobalConfigPath()
	if err != nil {
		return nil, err
	}
	global, err := loadGlobalOrDefault(globalPath)
	if err != nil {
		return nil, err
	}

	level := logging.FirstLevel(cli.LogLevel, envutil.GetHostEnv(constants.HostSuffixLogLevel), global.Log.Level)
	logger, err := logging.New(level, deps.ErrOut)
	if err != nil {
		return nil, err
	}

	startDir := strings.TrimSpace(cli.ProjectDir)
	if startDir == "" {
		startDir, err = deps.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working dir: %w", err)
		}
	}

	s := &session{
		ctx:        context.Background(),
		ui:         legacyUI(out),
		logger:     logger,
		global:     global,
		globalPath: globalPath,
		startDir:   startDir,
	}

	root, err := deps.RootResolver(startDir)
	switch {
	case err == nil:
		settings, err := config.LoadProjectSettings(root)
		if err != nil {
			return nil, fmt.Errorf("load project settings: %w", err)
		}
		s.root = root
		s.settings = &settings
	case config.IsProjectRootNotFound(err):
		logger.Debug("no project found", zap.String("start", startDir))
	default:
		return nil, err
	}
	return s, nil
}

func loadGlobalOrDefault(path string) (config.GlobalConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.DefaultGlobalConfig(), nil
		}
		return config.GlobalConfig{}, fmt.Errorf("stat global config: %w", err)
	}
	cfg, err := config.LoadGlobalConfig(path)
	if err != nil {
		return config.GlobalConfig{}, err
	}
	return cfg.Normalize(), nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// lastEnv returns the environment remembered for the open project.
func (s *session) lastEnv() string {
	if s.settings == nil {
		return ""
	}
	entry, ok := s.global.Projects[s.settings.AppName]
	if !ok || filepath.Clean(entry.Path) != filepath.Clean(s.root) {
		return ""
	}
	return entry.LastEnv
}

// defaultEnv is the fallback used when nothing was selected.
func (s *session) defaultEnv() string {
	if last := s.lastEnv(); last != "" {
		return last
	}
	return s.global.DefaultEnv
}

func (s *session) rememberProject(lastEnv string, deps Dependencies) error {
	if s.settings == nil {
		return nil
	}
	if s.global.Projects == nil {
		s.global.Projects = map[string]config.ProjectEntry{}
	}
	entry := s.global.Projects[s.settings.AppName]
	if filepath.Clean(entry.Path) != filepath.Clean(s.root) {
		entry = config.ProjectEntry{}
	}
	entry.Path = s.root
	entry.LastUsed = deps.Now().UTC().Format(time.RFC3339)
	if lastEnv != "" {
		entry.LastEnv = lastEnv
	}
	s.global.Projects[s.settings.AppName] = entry
	return config.SaveGlobalConfig(s.globalPath, s.global)
}

func (s *session) cryptoFactory(deps Dependencies) (secret.Factory, error) {
	if deps.Keys != nil {
		return crypto.NewFactory(deps.Keys), nil
	}
	home, err := config.ConfigHome()
	if err != nil {
		return nil, err
	}
	keyring := crypto.NewKeyring(
		filepath.Join(home, meta.MasterKeyFile),
		envutil.GetHostEnv(constants.HostSuffixMasterKey),
	)
	return crypto.NewFactory(keyring), nil
}

func isInteractive(cli CLI, deps Dependencies) bool {
	if cli.NonInteractive {
		return false
	}
	if value, ok := envutil.HostEnvBool(constants.HostSuffixInteractive); ok && !value {
		return false
	}
	if deps.Interactive != nil {
		return deps.Interactive()
	}
	return interaction.IsTerminal(deps.In)
}

func (s *session) presenter(cli CLI, deps Dependencies) question.Presenter {
	if !isInteractive(cli, deps) {
		return interaction.NonInteractivePresenter{}
	}
	hints := map[string]string{}
	if last := s.lastEnv(); last != "" {
		hints[last] = "(last used)"
	}
	return interaction.QuestionPresenter{Prompter: deps.Prompter, Hints: hints}
}

func (s *session) tools(cli CLI, deps Dependencies) workspace.Tools {
	return workspace.Tools{
		Logger:    s.logger,
		UI:        s.ui,
		Presenter: s.presenter(cli, deps),
		Token:     deps.Token,
	}
}
