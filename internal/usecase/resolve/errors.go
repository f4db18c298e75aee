// Where: internal/usecase/resolve/errors.go
// What: Typed failures returned by environment resolution.
// Why: Let callers branch on the failure kind while keeping the underlying cause.
package resolve

import (
	"errors"
	"fmt"
)

// Kind identifies a class of resolution failure.
type Kind string

const (
	// KindNoProjectOpen means no project path or project settings were available.
	KindNoProjectOpen Kind = "NO_PROJECT_OPEN"
	// KindQuestionAborted means the operator canceled or the prompt surface failed.
	KindQuestionAborted Kind = "QUESTION_ABORTED"
	// KindMissingNewEnvironmentName means "+ new env" was chosen without a name.
	KindMissingNewEnvironmentName Kind = "MISSING_NEW_ENVIRONMENT_NAME"
	// KindEnvironmentLoadFailed wraps registry, decryption and decoding failures.
	KindEnvironmentLoadFailed Kind = "ENVIRONMENT_LOAD_FAILED"
	// KindNoEnvironment means nothing was selected and no default is configured.
	KindNoEnvironment Kind = "NO_ENVIRONMENT"
)

// Sentinels for errors.Is checks; they match any *Error of the same kind.
var (
	ErrNoProjectOpen             = &Error{Kind: KindNoProjectOpen}
	ErrQuestionAborted           = &Error{Kind: KindQuestionAborted}
	ErrMissingNewEnvironmentName = &Error{Kind: KindMissingNewEnvironmentName}
	ErrEnvironmentLoadFailed     = &Error{Kind: KindEnvironmentLoadFailed}
	ErrNoEnvironment             = &Error{Kind: KindNoEnvironment}
)

// Error is the single failure type returned by Resolver.Resolve.
type Error struct {
	Kind Kind
	// Env is the environment being resolved when known.
	Env string
	Err error
}

func (e *Error) Error() string {
	msg := e.message()
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *Error) message() string {
	switch e.Kind {
	case KindNoProjectOpen:
		return "no project is open"
	case KindQuestionAborted:
		return "environment selection aborted"
	case KindMissingNewEnvironmentName:
		return "a name is required for the new environment"
	case KindEnvironmentLoadFailed:
		if e.Env != "" {
			return fmt.Sprintf("load environment %q", e.Env)
		}
		return "load environment"
	case KindNoEnvironment:
		return "no environment selected and no default environment configured"
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var resolveErr *Error
	if errors.As(err, &resolveErr) {
		return resolveErr.Kind
	}
	return ""
}
