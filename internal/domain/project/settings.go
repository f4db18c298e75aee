// Where: internal/domain/project/settings.go
// What: Project settings and identity.
// Why: The project id keys secret encryption and must never change once minted.
package project

import (
	"strings"

	"github.com/google/uuid"
	"github.com/poruru/envctx/internal/meta"
)

// Solution describes the solution stanza stored with every project.
type Solution struct {
	Name    string
	Version string
}

// Settings is the persisted per-project configuration.
type Settings struct {
	AppName   string
	ProjectID string
	Solution  Solution
	// IdentityMissing marks legacy projects created before project ids existed.
	// Their environment data is never decrypted.
	IdentityMissing bool
}

// DefaultSolution returns the stanza written for newly created projects.
func DefaultSolution() Solution {
	return Solution{Name: meta.SolutionName, Version: meta.SolutionVersion}
}

// New mints settings for a brand-new project with a fresh identity.
func New(appName string) Settings {
	return Settings{
		AppName:   strings.TrimSpace(appName),
		ProjectID: uuid.NewString(),
		Solution:  DefaultSolution(),
	}
}

// HasIdentity reports whether secrets can be keyed by this project.
func (s Settings) HasIdentity() bool {
	return !s.IdentityMissing && strings.TrimSpace(s.ProjectID) != ""
}

// ValidateID checks that id is a well-formed project identity.
func ValidateID(id string) error {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err
}
