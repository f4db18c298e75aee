// Where: internal/domain/question/errors.go
// What: Traversal failure types.
// Why: Let callers tell operator aborts apart from UI or validation failures.
package question

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled is returned by presenters when the operator aborts a prompt.
	ErrCanceled = errors.New("question canceled by operator")
	// ErrNonInteractive is returned when a prompt is needed but no UI surface is available.
	ErrNonInteractive = errors.New("question requires interactive input")
	// ErrInvalidOption is returned when a select answer is not one of the node's options.
	ErrInvalidOption = errors.New("answer is not a valid option")
)

// AbortError reports the node at which traversal stopped.
type AbortError struct {
	NodeID string
	Err    error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("question %q aborted: %v", e.NodeID, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}
