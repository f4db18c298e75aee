// Where: internal/domain/environment/profile.go
// What: Environment profile and naming rules.
// Why: Share the sentinel and name validation between prompts and the resolver.
package environment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// NewEnvOption is the reserved select option meaning "create a new environment".
const NewEnvOption = "+ new env"

var (
	// ErrReservedName is returned when a new environment would shadow the sentinel.
	ErrReservedName = fmt.Errorf("%q is reserved", NewEnvOption)
	// ErrInvalidName is returned for names that do not match the naming rule.
	ErrInvalidName = errors.New("environment name must start with a letter and contain only a-z, 0-9, '-' or '_' (max 32)")
	// ErrAlreadyExists is returned when a new environment reuses an existing name.
	ErrAlreadyExists = errors.New("environment already exists")
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,31}$`)

// Profile is the configuration data persisted for one environment.
type Profile struct {
	Name string
	Data map[string]any
}

// NormalizeName trims and lower-cases a candidate environment name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateNewName checks a candidate name for a new environment.
// An empty name passes so callers can report a missing name separately.
func ValidateNewName(name string, existing []string) error {
	if strings.TrimSpace(name) == NewEnvOption {
		return ErrReservedName
	}
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil
	}
	if !namePattern.MatchString(normalized) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, current := range existing {
		if NormalizeName(current) == normalized {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, normalized)
		}
	}
	return nil
}
