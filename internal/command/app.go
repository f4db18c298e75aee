// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru/envctx/internal/infra/auth"
	"github.com/poruru/envctx/internal/infra/config"
	"github.com/poruru/envctx/internal/infra/crypto"
	"github.com/poruru/envctx/internal/infra/interaction"
	"github.com/poruru/envctx/internal/infra/registry"
	"github.com/poruru/envctx/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Zero-valued fields fall back to the production implementations.
type Dependencies struct {
	Out          io.Writer
	ErrOut       io.Writer
	In           *os.File
	Prompter     interaction.Prompter
	Interactive  func() bool
	Getwd        func() (string, error)
	RootResolver func(string) (string, error)
	NewRegistry  func(context.Context, config.RegistryConfig) (registry.Registry, error)
	Keys         crypto.KeySource
	Token        auth.TokenProvider
	Now          func() time.Time
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	EnvFlag        string     `short:"e" name:"env" help:"Environment name"`
	EnvFile        string     `name:"env-file" help:"Path to .env file"`
	LogLevel       string     `name:"log-level" help:"Diagnostic log level (debug/info/warn/error)"`
	ProjectDir     string     `short:"C" name:"project-dir" help:"Start project discovery from this directory"`
	NonInteractive bool       `name:"non-interactive" help:"Never prompt; use supplied or default environment"`
	Resolve        ResolveCmd `cmd:"" help:"Resolve the target environment and print its context"`
	Env            EnvCmd     `cmd:"" help:"Inspect environments"`
	Init           InitCmd    `cmd:"" help:"Create project settings with a new identity"`
	Encrypt        EncryptCmd `cmd:"" help:"Encrypt a value for this project's environment profiles"`
	Version        VersionCmd `cmd:"" help:"Show version information"`
}

type (
	// ResolveCmd defines the resolve command flags.
	ResolveCmd struct {
		New    string `name:"new" help:"Create a new environment with this name"`
		Format string `name:"format" help:"Go template (with sprig functions) used to render the result"`
		NoSave bool   `name:"no-save" help:"Do not remember the resolved environment"`
	}

	EnvCmd struct {
		List EnvListCmd `cmd:"" help:"List environments of the current project"`
	}

	EnvListCmd struct{}

	InitCmd struct {
		Name string `name:"name" help:"Application name (default: directory name)"`
		Yes  bool   `short:"y" help:"Assign an identity to a legacy project without asking"`
	}

	EncryptCmd struct {
		Value string `arg:"" optional:"" help:"Plaintext to encrypt (read from stdin when omitted)"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	deps = withDefaults(deps)
	ui := legacyUI(out)

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli, kong.Name(cliName()), kong.Writers(out, deps.ErrOut))
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, out)
	}

	loadEnvFile(cli.EnvFile, ui)

	command := commandPath(ctx.Command())
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	ui.Warn("unknown command")
	return 1
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Prompter == nil {
		deps.Prompter = interaction.HuhPrompter{}
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.RootResolver == nil {
		deps.RootResolver = config.ResolveProjectRoot
	}
	if deps.NewRegistry == nil {
		deps.NewRegistry = registry.New
	}
	if deps.Token == nil {
		deps.Token = auth.NewEnvTokenProvider()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return deps
}

// loadEnvFile loads the given env file, or ./.env when present.
func loadEnvFile(path string, ui interface{ Warn(string) }) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"resolve":  runResolve,
		"env list": runEnvList,
		"init":     runInit,
		"encrypt":  runEncrypt,
		"version":  func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(cli, out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	return 1, false
}

// commandPath drops positional placeholders such as "<value>" from a kong command path.
func commandPath(command string) string {
	parts := strings.Fields(command)
	kept := parts[:0]
	for _, part := range parts {
		if strings.HasPrefix(part, "<") {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, " ")
}

// runVersion prints the version information of the CLI.
func runVersion(_ CLI, out io.Writer) int {
	legacyUI(out).Info(version.GetVersion())
	return 0
}

// runNoArgs prints short usage when the CLI is invoked without arguments.
func runNoArgs(out io.Writer) int {
	ui := legacyUI(out)
	cmd := cliName()
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s resolve [--env <name> | --new <name>] [--format <template>]", cmd))
	ui.Info(fmt.Sprintf("  %s env list", cmd))
	ui.Info(fmt.Sprintf("  %s init [--name <app>]", cmd))
	ui.Info(fmt.Sprintf("  %s encrypt <value>", cmd))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s resolve --help", cmd))
	return 0
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "expected string value") {
		ui := legacyUI(out)
		cmd := cliName()
		switch {
		case strings.Contains(msg, "--env-file"):
			ui.Warn("`--env-file` expects a value. Provide a file path.")
			ui.Info(fmt.Sprintf("Example: %s resolve --env-file .env.prod", cmd))
			return 1
		case strings.Contains(msg, "--env"):
			ui.Warn("`-e/--env` expects a value. Provide a name or omit the flag for interactive input.")
			ui.Info(fmt.Sprintf("Example: %s resolve -e prod", cmd))
			ui.Info(fmt.Sprintf("Interactive: %s resolve", cmd))
			return 1
		case strings.Contains(msg, "--new"):
			ui.Warn("`--new` expects the name of the environment to create.")
			ui.Info(fmt.Sprintf("Example: %s resolve --new staging", cmd))
			return 1
		case strings.Contains(msg, "--format"):
			ui.Warn("`--format` expects a Go template.")
			ui.Info(fmt.Sprintf("Example: %s resolve --format '{{ .Env }}'", cmd))
			return 1
		}
	}
	return exitWithError(out, err)
}
