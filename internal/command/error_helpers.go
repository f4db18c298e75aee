// Where: internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Keep failure output consistent and point operators at the next step.
package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/poruru/envctx/internal/domain/question"
	"github.com/poruru/envctx/internal/infra/registry"
	"github.com/poruru/envctx/internal/usecase/resolve"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	writeLine(out, fmt.Sprintf("✗ %v", err))
	return 1
}

// exitWithResolveError adds a hint for resolution failures the operator can fix.
func exitWithResolveError(out io.Writer, err error) int {
	code := exitWithError(out, err)
	if hint := resolveHint(err); hint != "" {
		legacyUI(out).Info(hint)
	}
	return code
}

func resolveHint(err error) string {
	cmd := cliName()
	switch resolve.KindOf(err) {
	case resolve.KindNoProjectOpen:
		return fmt.Sprintf("Run '%s init' to create a project, or pass --project-dir.", cmd)
	case resolve.KindNoEnvironment:
		return fmt.Sprintf("Pass --env <name>, or run '%s env list' to see environments.", cmd)
	case resolve.KindMissingNewEnvironmentName:
		return fmt.Sprintf("Example: %s resolve --new staging", cmd)
	case resolve.KindEnvironmentLoadFailed:
		if errors.Is(err, registry.ErrProfileNotFound) {
			return fmt.Sprintf("Run '%s env list' to see environments, or pass --new <name> to start one.", cmd)
		}
	case resolve.KindQuestionAborted:
		if errors.Is(err, question.ErrNonInteractive) {
			return "No terminal available; pass --env <name> or --new <name>."
		}
	}
	return ""
}
