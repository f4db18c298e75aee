// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/poruru/envctx/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining meta.EnvPrefix with the given suffix.
// Example: HostEnvKey("ENV") returns "ENVCTX_ENV".
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + strings.TrimSpace(suffix)
}

// GetHostEnv retrieves a host-level environment variable with surrounding
// whitespace removed.
// Example: GetHostEnv("ENV") returns the value of ENVCTX_ENV.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// SetHostEnv sets a host-level environment variable.
// Example: SetHostEnv("ENV", "production") sets ENVCTX_ENV=production.
func SetHostEnv(suffix, value string) error {
	key := HostEnvKey(suffix)
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("set env %s: %w", key, err)
	}
	return nil
}

// HostEnvBool reports whether the host-level variable holds a truthy value.
// The second result is false when the variable is unset or unrecognised.
func HostEnvBool(suffix string) (bool, bool) {
	switch strings.ToLower(GetHostEnv(suffix)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}
