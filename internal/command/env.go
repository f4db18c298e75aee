// Where: internal/command/env.go
// What: env list command adapter.
// Why: Show which environments the registry knows for the current project.
package command

import (
	"fmt"
	"io"

	"github.com/poruru/envctx/internal/usecase/resolve"
)

func runEnvList(cli CLI, deps Dependencies, out io.Writer) int {
	s, err := openSession(cli, deps, out)
	if err != nil {
		return exitWithError(out, err)
	}
	defer s.close()

	if s.settings == nil {
		return exitWithResolveError(out, resolve.ErrNoProjectOpen)
	}

	reg, err := deps.NewRegistry(s.ctx, s.global.Registry)
	if err != nil {
		return exitWithError(out, fmt.Errorf("open registry: %w", err))
	}
	names, err := reg.ListNames(s.ctx, s.root)
	if err != nil {
		return exitWithError(out, fmt.Errorf("list environments: %w", err))
	}

	if len(names) == 0 {
		s.ui.Info(fmt.Sprintf("No environments yet. Run '%s resolve --new <name>' to start one.", cliName()))
		return 0
	}

	last := s.lastEnv()
	for _, name := range names {
		marker := "  "
		if name == last {
			marker = "* "
		}
		writeLine(out, marker+name)
	}
	if s.settings.IdentityMissing {
		s.ui.Warn("Project has no identity; secret values are shown encrypted. Run 'init' to assign one.")
	}
	return 0
}
