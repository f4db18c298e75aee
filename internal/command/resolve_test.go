package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/poruru/envctx/internal/domain/environment"
	"github.com/poruru/envctx/internal/infra/config"
)

func TestResolveDecryptsSecretsWithEnvFlag(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "prod", "data:\n  password: "+env.seal(t, "hunter2")+"\n")

	code := env.run("resolve", "--env", "prod", "--format", "{{ .Env }}:{{ .Config.password }}")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, env.out.String())
	}
	if got := strings.TrimSpace(env.out.String()); got != "prod:hunter2" {
		t.Fatalf("unexpected output: %q", got)
	}

	cfg := env.globalConfig(t)
	entry, ok := cfg.Projects["shop"]
	if !ok {
		t.Fatalf("project not remembered: %#v", cfg.Projects)
	}
	if entry.LastEnv != "prod" || entry.Path != env.root {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if entry.LastUsed != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected last_used: %q", entry.LastUsed)
	}
}

func TestResolveNoSaveKeepsGlobalConfigUntouched(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "dev", "data: {}\n")

	if code := env.run("resolve", "-e", "dev", "--no-save"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, env.out.String())
	}
	if _, err := os.Stat(filepath.Join(env.configDir, "config.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("global config must not be written, stat err = %v", err)
	}
	if !strings.Contains(env.out.String(), "Environment") || !strings.Contains(env.out.String(), "dev") {
		t.Fatalf("expected summary block, got %q", env.out.String())
	}
}

func TestResolveUsesSprigFunctions(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "dev", "data:\n  region: eu-west-1\n")

	code := env.run("resolve", "-e", "dev", "--no-save", "--format", `{{ .Env | upper }} {{ .Config.region | default "none" }} {{ .Config.missing | default "none" }}`)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, env.out.String())
	}
	if got := strings.TrimSpace(env.out.String()); got != "DEV eu-west-1 none" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestResolveRejectsBadTemplateBeforeResolving(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)

	code := env.run("resolve", "-e", "dev", "--format", "{{ .Env")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(env.out.String(), "parse --format") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestResolveNonInteractiveUsesLastEnv(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "dev", "data: {}\n")
	env.writeProfile(t, "prod", "data: {}\n")

	cfg := config.DefaultGlobalConfig()
	cfg.Projects["shop"] = config.ProjectEntry{Path: env.root, LastEnv: "prod"}
	if err := config.SaveGlobalConfig(filepath.Join(env.configDir, "config.yaml"), cfg); err != nil {
		t.Fatalf("save global config: %v", err)
	}

	code := env.run("resolve", "--non-interactive", "--no-save", "--format", "{{ .Env }}")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, env.out.String())
	}
	if got := strings.TrimSpace(env.out.String()); got != "prod" {
		t.Fatalf("expected last env, got %q", got)
	}
}

func TestResolveNonInteractiveMissingDefaultProfile(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "dev", "data: {}\n")

	code := env.run("resolve", "--non-interactive")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(env.out.String(), `load environment "default"`) {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestResolveWithoutProject(t *testing.T) {
	env := newTestEnv(t)

	code := env.run("resolve", "-e", "dev")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	output := env.out.String()
	if !strings.Contains(output, "no project is open") || !strings.Contains(output, "envctx init") {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestResolveInteractiveNewEnvironment(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "dev", "data: {}\n")
	env.writeProfile(t, "prod", "data: {}\n")

	prompter := &fakePrompter{selectAnswer: environment.NewEnvOption, inputAnswer: "Staging"}
	env.deps.Prompter = prompter
	env.deps.Interactive = func() bool { return true }

	code := env.run("resolve", "--format", "{{ .Env }} {{ .IsNew }}")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, env.out.String())
	}
	if got := strings.TrimSpace(env.out.String()); got != "staging true" {
		t.Fatalf("unexpected output: %q", got)
	}
	if len(prompter.options) != 3 || prompter.options[0].Value != environment.NewEnvOption {
		t.Fatalf("unexpected options: %#v", prompter.options)
	}
	if len(prompter.inputTitles) != 1 {
		t.Fatalf("expected one name prompt, got %v", prompter.inputTitles)
	}
	if _, err := os.Stat(filepath.Join(env.configDir, "config.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("new environments must not be remembered as last env")
	}
}

func TestResolveInteractiveMarksLastUsed(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "dev", "data: {}\n")

	cfg := config.DefaultGlobalConfig()
	cfg.Projects["shop"] = config.ProjectEntry{Path: env.root, LastEnv: "dev"}
	if err := config.SaveGlobalConfig(filepath.Join(env.configDir, "config.yaml"), cfg); err != nil {
		t.Fatalf("save global config: %v", err)
	}

	prompter := &fakePrompter{selectAnswer: "dev"}
	env.deps.Prompter = prompter
	env.deps.Interactive = func() bool { return true }

	if code := env.run("resolve", "--no-save"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, env.out.String())
	}
	if len(prompter.options) != 2 || prompter.options[1].Label != "dev (last used)" {
		t.Fatalf("unexpected options: %#v", prompter.options)
	}
}

func TestResolveInteractiveCancel(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "dev", "data: {}\n")

	env.deps.Prompter = &fakePrompter{err: huh.ErrUserAborted}
	env.deps.Interactive = func() bool { return true }

	code := env.run("resolve")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(env.out.String(), "environment selection aborted") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestResolveLegacyProjectKeepsCiphertext(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, "")
	sealed := env.seal(t, "hunter2")
	env.writeProfile(t, "dev", "data:\n  password: "+sealed+"\n")

	code := env.run("resolve", "-e", "dev", "--no-save", "--format", "{{ .Legacy }} {{ .Config.password }}")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, env.out.String())
	}
	if got := strings.TrimSpace(env.out.String()); got != "true "+sealed {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestResolveWrongKeyFailsToLoad(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "prod", "data:\n  password: "+env.seal(t, "hunter2")+"\n")
	t.Setenv("ENVCTX_MASTER_KEY", strings.Repeat("cd", 32))

	code := env.run("resolve", "-e", "prod")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(env.out.String(), `load environment "prod"`) {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestResolveUnknownEnvReportsMissingProfile(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)
	env.writeProfile(t, "dev", "data: {}\n")

	code := env.run("resolve", "-e", "qa")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	out := env.out.String()
	if !strings.Contains(out, `load environment "qa"`) || !strings.Contains(out, "env list") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestResolveNewEnvironmentPointsAtRegistryLocation(t *testing.T) {
	env := newTestEnv(t)
	env.initProject(t, testProjectID)

	code := env.run("resolve", "--new", "staging")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, env.out.String())
	}
	want := filepath.Join(env.root, ".envctx", "envs", "staging.yaml")
	if !strings.Contains(env.out.String(), want) {
		t.Fatalf("expected %s in output: %q", want, env.out.String())
	}
}
