// Where: cmd/envctx/main.go
// What: CLI entrypoint.
// Why: Execute envctx commands with configured dependencies.
package main

import (
	"fmt"
	"os"

	"github.com/poruru/envctx/internal/command"
)

func main() {
	deps, err := buildDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(command.Run(os.Args[1:], deps))
}
