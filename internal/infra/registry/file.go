// Where: internal/infra/registry/file.go
// What: Filesystem-backed environment registry.
// Why: Read profiles committed next to the project under .envctx/envs.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poruru/envctx/internal/domain/environment"
	"github.com/poruru/envctx/internal/meta"
)

var profileExtensions = []string{".yaml", ".yml"}

// FileRegistry reads profiles from <project>/.envctx/envs/<name>.yaml.
type FileRegistry struct{}

// NewFileRegistry returns a registry backed by the project directory.
func NewFileRegistry() FileRegistry {
	return FileRegistry{}
}

// EnvironmentsDir returns the directory holding a project's profiles.
func EnvironmentsDir(projectPath string) string {
	return filepath.Join(projectPath, meta.HomeDir, meta.EnvironmentsDir)
}

// ListNames returns the sorted environment names found for the project.
func (FileRegistry) ListNames(ctx context.Context, projectPath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := EnvironmentsDir(projectPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read environments dir: %w", err)
	}

	seen := map[string]struct{}{}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := trimProfileExt(entry.Name())
		if !ok || name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and decodes a single profile.
func (FileRegistry) Load(ctx context.Context, req LoadRequest) (environment.Profile, error) {
	if err := ctx.Err(); err != nil {
		return environment.Profile{}, err
	}
	key := strings.TrimSpace(req.EnvName)
	if key == "" {
		return environment.Profile{}, fmt.Errorf("environment name is required")
	}
	if strings.ContainsAny(key, `/\`) {
		return environment.Profile{}, fmt.Errorf("invalid environment name %q", key)
	}

	dir := EnvironmentsDir(req.ProjectPath)
	for _, ext := range profileExtensions {
		content, err := os.ReadFile(filepath.Join(dir, key+ext))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return environment.Profile{}, fmt.Errorf("read profile %s: %w", key, err)
		}
		return decodeProfile(key, content, req.Crypto)
	}
	return missingProfile(req, key)
}

func trimProfileExt(filename string) (string, bool) {
	for _, ext := range profileExtensions {
		if strings.HasSuffix(filename, ext) {
			return strings.TrimSuffix(filename, ext), true
		}
	}
	return "", false
}
