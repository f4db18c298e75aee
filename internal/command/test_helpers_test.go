package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poruru/envctx/internal/domain/project"
	"github.com/poruru/envctx/internal/infra/auth"
	"github.com/poruru/envctx/internal/infra/config"
	"github.com/poruru/envctx/internal/infra/crypto"
	"github.com/poruru/envctx/internal/infra/interaction"
	"github.com/poruru/envctx/internal/infra/registry"
)

const testProjectID = "7a4a5f5e-3f0b-4d6e-9b7a-1c2d3e4f5a6b"

var testMasterKey = strings.Repeat("ab", 32)

type testEnv struct {
	root      string
	configDir string
	out       *bytes.Buffer
	errOut    *bytes.Buffer
	deps      Dependencies
}

func setWorkingDir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd %s: %v", prev, err)
		}
	})
}

// newTestEnv isolates config, key and cwd; the working directory reported
// to commands is root.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	configDir := t.TempDir()
	for _, key := range []string{
		"ENVCTX_CONFIG_PATH",
		"ENVCTX_PROJECT_DIR",
		"ENVCTX_ENV",
		"ENVCTX_INTERACTIVE",
		"ENVCTX_LOG_LEVEL",
		"ENVCTX_TOKEN",
		"CLI_CMD",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("ENVCTX_CONFIG_HOME", configDir)
	t.Setenv("ENVCTX_MASTER_KEY", testMasterKey)
	setWorkingDir(t, t.TempDir())

	env := &testEnv{
		root:      t.TempDir(),
		configDir: configDir,
		out:       &bytes.Buffer{},
		errOut:    &bytes.Buffer{},
	}
	env.deps = Dependencies{
		Out:         env.out,
		ErrOut:      env.errOut,
		Interactive: func() bool { return false },
		Getwd:       func() (string, error) { return env.root, nil },
		Token:       auth.EnvTokenProvider{Getenv: func(string) string { return "" }},
		Now:         func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	return env
}

func (e *testEnv) run(args ...string) int {
	e.out.Reset()
	return Run(args, e.deps)
}

func (e *testEnv) initProject(t *testing.T, id string) {
	t.Helper()
	settings := project.Settings{AppName: "shop", ProjectID: id, Solution: project.DefaultSolution()}
	if id == "" {
		settings.IdentityMissing = true
	}
	if err := config.SaveProjectSettings(e.root, settings); err != nil {
		t.Fatalf("save project settings: %v", err)
	}
}

func (e *testEnv) writeProfile(t *testing.T, name, content string) {
	t.Helper()
	dir := registry.EnvironmentsDir(e.root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
}

func (e *testEnv) seal(t *testing.T, plaintext string) string {
	t.Helper()
	provider := crypto.NewProvider(testProjectID, crypto.NewKeyring("", testMasterKey))
	sealed, err := provider.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	return sealed
}

func (e *testEnv) globalConfig(t *testing.T) config.GlobalConfig {
	t.Helper()
	cfg, err := config.LoadGlobalConfig(filepath.Join(e.configDir, "config.yaml"))
	if err != nil {
		t.Fatalf("load global config: %v", err)
	}
	return cfg
}

type fakePrompter struct {
	selectAnswer string
	inputAnswer  string
	err          error
	selectTitles []string
	inputTitles  []string
	options      []interaction.SelectOption
}

func (p *fakePrompter) Input(title string, _ []string, validate func(string) error) (string, error) {
	p.inputTitles = append(p.inputTitles, title)
	if p.err != nil {
		return "", p.err
	}
	if validate != nil {
		if err := validate(p.inputAnswer); err != nil {
			return "", err
		}
	}
	return p.inputAnswer, nil
}

func (p *fakePrompter) Select(title string, _ []string) (string, error) {
	p.selectTitles = append(p.selectTitles, title)
	return p.selectAnswer, p.err
}

func (p *fakePrompter) SelectValue(title string, options []interaction.SelectOption) (string, error) {
	p.selectTitles = append(p.selectTitles, title)
	p.options = append(p.options, options...)
	return p.selectAnswer, p.err
}
