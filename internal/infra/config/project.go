// Where: internal/infra/config/project.go
// What: Project settings persistence.
// Why: Read <root>/.envctx/project.yaml and flag legacy projects without an identity.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/envctx/internal/domain/project"
	"github.com/poruru/envctx/internal/meta"
	"gopkg.in/yaml.v3"
)

// ErrProjectNotFound is returned when no project settings file exists.
var ErrProjectNotFound = errors.New("project settings not found")

type projectFile struct {
	AppName   string       `yaml:"app_name"`
	ProjectID string       `yaml:"project_id,omitempty"`
	Solution  solutionFile `yaml:"solution"`
}

type solutionFile struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ProjectSettingsPath returns the settings file path for a project root.
func ProjectSettingsPath(root string) (string, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return "", fmt.Errorf("project root is required")
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		trimmed = abs
	}
	return filepath.Join(trimmed, meta.HomeDir, meta.ProjectFile), nil
}

// LoadProjectSettings reads the project settings under root. A file without
// project_id loads with IdentityMissing set; a malformed id is an error.
func LoadProjectSettings(root string) (project.Settings, error) {
	path, err := ProjectSettingsPath(root)
	if err != nil {
		return project.Settings{}, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return project.Settings{}, fmt.Errorf("%w: %s", ErrProjectNotFound, path)
		}
		return project.Settings{}, fmt.Errorf("read project settings: %w", err)
	}

	var file projectFile
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return project.Settings{}, fmt.Errorf("decode project settings: %w", err)
	}

	settings := project.Settings{
		AppName:   strings.TrimSpace(file.AppName),
		ProjectID: strings.TrimSpace(file.ProjectID),
		Solution: project.Solution{
			Name:    strings.TrimSpace(file.Solution.Name),
			Version: strings.TrimSpace(file.Solution.Version),
		},
	}
	if settings.AppName == "" {
		settings.AppName = filepath.Base(filepath.Dir(filepath.Dir(path)))
	}
	if settings.ProjectID == "" {
		settings.IdentityMissing = true
		return settings, nil
	}
	if err := project.ValidateID(settings.ProjectID); err != nil {
		return project.Settings{}, fmt.Errorf("invalid project_id %q: %w", settings.ProjectID, err)
	}
	return settings, nil
}

// SaveProjectSettings writes settings under root, creating the directory.
func SaveProjectSettings(root string, settings project.Settings) error {
	path, err := ProjectSettingsPath(root)
	if err != nil {
		return err
	}
	file := projectFile{
		AppName: settings.AppName,
		Solution: solutionFile{
			Name:    settings.Solution.Name,
			Version: settings.Solution.Version,
		},
	}
	if !settings.IdentityMissing {
		file.ProjectID = settings.ProjectID
	}
	payload, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("encode project settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create project settings dir: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write project settings: %w", err)
	}
	return nil
}
