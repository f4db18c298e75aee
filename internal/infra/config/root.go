// Where: internal/infra/config/root.go
// What: Project root discovery.
// Why: Find the enclosing project from env or by searching upward from the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poruru/envctx/internal/constants"
	"github.com/poruru/envctx/internal/infra/envutil"
	"github.com/poruru/envctx/internal/meta"
)

var errProjectRootNotFound = errors.New("project root not found")

// ResolveProjectRoot determines the project root path.
// Priority order.
// 1. Brand-prefixed PROJECT_DIR environment variable (validated as root or searched upward).
// 2. Upward search for .envctx/project.yaml from startDir.
func ResolveProjectRoot(startDir string) (string, error) {
	if dir := envutil.GetHostEnv(constants.HostSuffixProjectDir); dir != "" {
		if root, ok := findProjectRoot(dir); ok {
			return root, nil
		}
	}

	if startDir != "" {
		if root, ok := findProjectRoot(startDir); ok {
			return root, nil
		}
	}

	return "", fmt.Errorf(
		"%w: run inside a project, run '%s init', or set %s",
		errProjectRootNotFound,
		meta.Slug,
		envutil.HostEnvKey(constants.HostSuffixProjectDir),
	)
}

// IsProjectRootNotFound reports whether err came from a failed root search.
func IsProjectRootNotFound(err error) bool {
	return errors.Is(err, errProjectRootNotFound)
}

// findProjectRoot searches upward from the given path to find
// a directory containing .envctx/project.yaml.
func findProjectRoot(path string) (string, bool) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, meta.HomeDir, meta.ProjectFile)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
