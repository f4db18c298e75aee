// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep brand names and directory layout in one place.
package meta

const (
	// Project Identity
	AppName   = "envctx"
	Slug      = "envctx"
	EnvPrefix = "ENVCTX"

	// Directory Layout
	HomeDir         = ".envctx"
	ProjectFile     = "project.yaml"
	EnvironmentsDir = "envs"
	MasterKeyFile   = "master.key"

	// Default solution stanza written for new projects
	SolutionName    = "envctx-solution"
	SolutionVersion = "1.0.0"

	// DefaultEnv is used when neither the operator nor the config names one.
	DefaultEnv = "default"
)
