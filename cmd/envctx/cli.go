// Where: cmd/envctx/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/poruru/envctx/internal/command"
	"github.com/poruru/envctx/internal/constants"
	"github.com/poruru/envctx/internal/infra/auth"
	"github.com/poruru/envctx/internal/infra/config"
	"github.com/poruru/envctx/internal/infra/crypto"
	"github.com/poruru/envctx/internal/infra/envutil"
	"github.com/poruru/envctx/internal/infra/interaction"
	"github.com/poruru/envctx/internal/infra/registry"
	"github.com/poruru/envctx/internal/meta"
)

var (
	getwd      = os.Getwd
	configHome = config.ConfigHome
)

// buildDependencies constructs the runtime dependencies required by the CLI.
// The master key is loaded lazily so commands that never decrypt stay cheap.
func buildDependencies() (command.Dependencies, error) {
	home, err := configHome()
	if err != nil {
		return command.Dependencies{}, fmt.Errorf("resolve config home: %w", err)
	}

	deps := command.Dependencies{
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		In:           os.Stdin,
		Prompter:     interaction.HuhPrompter{},
		Getwd:        getwd,
		RootResolver: config.ResolveProjectRoot,
		NewRegistry:  registry.New,
		Keys: crypto.NewKeyring(
			filepath.Join(home, meta.MasterKeyFile),
			envutil.GetHostEnv(constants.HostSuffixMasterKey),
		),
		Token: auth.NewEnvTokenProvider(),
	}
	return deps, nil
}
