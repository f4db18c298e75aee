// Where: internal/infra/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.envctx/config.yaml consistently.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/envctx/internal/constants"
	"github.com/poruru/envctx/internal/infra/envutil"
	"github.com/poruru/envctx/internal/meta"
	"gopkg.in/yaml.v3"
)

// Registry backends understood by registry.New.
const (
	RegistryBackendFile     = "file"
	RegistryBackendS3       = "s3"
	RegistryBackendDynamoDB = "dynamodb"
)

// GlobalConfig represents the ~/.envctx/config.yaml global configuration.
// It tracks registered projects, their last used environment, and tool settings.
type GlobalConfig struct {
	Version    int                     `yaml:"version"`
	DefaultEnv string                  `yaml:"default_env,omitempty"`
	Registry   RegistryConfig          `yaml:"registry,omitempty"`
	Log        LogConfig               `yaml:"log,omitempty"`
	Projects   map[string]ProjectEntry `yaml:"projects,omitempty"`
}

// RegistryConfig selects where environment profiles are read from.
type RegistryConfig struct {
	Backend  string `yaml:"backend,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Table    string `yaml:"table,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// ProjectEntry stores a project's directory path, last-used timestamp and environment.
type ProjectEntry struct {
	Path     string `yaml:"path"`
	LastUsed string `yaml:"last_used"`
	LastEnv  string `yaml:"last_env,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		Version:    1,
		DefaultEnv: meta.DefaultEnv,
		Registry:   RegistryConfig{Backend: RegistryBackendFile},
		Projects:   map[string]ProjectEntry{},
	}
}

// Normalize fills zero values so callers can index maps and compare backends safely.
func (c GlobalConfig) Normalize() GlobalConfig {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Projects == nil {
		c.Projects = map[string]ProjectEntry{}
	}
	if strings.TrimSpace(c.DefaultEnv) == "" {
		c.DefaultEnv = meta.DefaultEnv
	}
	c.Registry.Backend = strings.ToLower(strings.TrimSpace(c.Registry.Backend))
	if c.Registry.Backend == "" {
		c.Registry.Backend = RegistryBackendFile
	}
	return c
}

// ConfigHome returns the directory holding global state such as the master key.
// Respects the brand-specific CONFIG_HOME environment variable.
func ConfigHome() (string, error) {
	if override := envutil.GetHostEnv(constants.HostSuffixConfigHome); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, meta.HomeDir), nil
}

// GlobalConfigPath returns the path to the global config file.
// Respects brand-specific CONFIG_PATH and CONFIG_HOME environment variables.
func GlobalConfigPath() (string, error) {
	if override := envutil.GetHostEnv(constants.HostSuffixConfigPath); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	home, err := ConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// LoadGlobalConfig reads and parses the global configuration file.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}, fmt.Errorf("read global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, fmt.Errorf("decode global config: %w", err)
	}
	return cfg, nil
}

// SaveGlobalConfig writes a GlobalConfig to the specified path.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode global config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create global config dir: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write global config: %w", err)
	}
	return nil
}
