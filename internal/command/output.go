// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface usage and raw line output.
package command

import (
	"fmt"
	"io"

	"github.com/poruru/envctx/internal/infra/ui"
)

func legacyUI(out io.Writer) ui.UserInterface {
	return ui.NewTerminalUI(out, false)
}

func writeLine(out io.Writer, line string) {
	_, _ = fmt.Fprintln(out, line)
}
