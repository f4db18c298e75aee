// Where: internal/command/encrypt.go
// What: encrypt command adapter.
// Why: Let operators produce enc:v1 values to paste into environment profiles.
package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poruru/envctx/internal/usecase/resolve"
)

func runEncrypt(cli CLI, deps Dependencies, out io.Writer) int {
	s, err := openSession(cli, deps, out)
	if err != nil {
		return exitWithError(out, err)
	}
	defer s.close()

	if s.settings == nil {
		return exitWithResolveError(out, resolve.ErrNoProjectOpen)
	}
	if !s.settings.HasIdentity() {
		return exitWithError(out, fmt.Errorf("project %s has no identity; run '%s init' first", s.settings.AppName, cliName()))
	}

	value := cli.Encrypt.Value
	if value == "" {
		value, err = readSecret(deps.In)
		if err != nil {
			return exitWithError(out, err)
		}
	}
	if value == "" {
		return exitWithError(out, errors.New("nothing to encrypt"))
	}

	factory, err := s.cryptoFactory(deps)
	if err != nil {
		return exitWithError(out, err)
	}
	sealed, err := factory(s.settings.ProjectID).Encrypt(value)
	if err != nil {
		return exitWithError(out, fmt.Errorf("encrypt value: %w", err))
	}
	writeLine(out, sealed)
	return 0
}

func readSecret(in io.Reader) (string, error) {
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read value: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
