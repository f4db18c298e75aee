// Where: internal/domain/question/traverse.go
// What: Depth-first traversal of question trees.
// Why: Collect answers in order while honoring pre-supplied values and conditions.
package question

import (
	"context"
	"fmt"
)

// Presenter obtains an answer for a single node. Implementations block until
// the operator responds or the prompt fails.
type Presenter interface {
	Present(ctx context.Context, node *Node, answers Answers) (string, error)
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(ctx context.Context, node *Node, answers Answers) (string, error)

func (f PresenterFunc) Present(ctx context.Context, node *Node, answers Answers) (string, error) {
	return f(ctx, node, answers)
}

// Traverse walks the tree rooted at root in pre-order, storing each answer in
// answers under the node ID before visiting the children it enables.
// Answers already present for a node are reused without prompting.
// The first failure aborts the walk and is returned as *AbortError.
func Traverse(ctx context.Context, root *Node, presenter Presenter, answers Answers) error {
	if root == nil {
		return nil
	}
	if answers == nil {
		return fmt.Errorf("traverse: answers map is nil")
	}
	return visit(ctx, root, presenter, answers)
}

func visit(ctx context.Context, node *Node, presenter Presenter, answers Answers) error {
	if err := ctx.Err(); err != nil {
		return &AbortError{NodeID: node.ID, Err: err}
	}

	answer, supplied := answers[node.ID]
	if !supplied {
		if presenter == nil {
			return &AbortError{NodeID: node.ID, Err: ErrNonInteractive}
		}
		value, err := presenter.Present(ctx, node, answers)
		if err != nil {
			return &AbortError{NodeID: node.ID, Err: err}
		}
		answer = value
	}

	if err := validate(node, answer); err != nil {
		return &AbortError{NodeID: node.ID, Err: err}
	}
	answers[node.ID] = answer

	for _, child := range node.Children(answer) {
		if err := visit(ctx, child, presenter, answers); err != nil {
			return err
		}
	}
	return nil
}

func validate(node *Node, answer string) error {
	if node.Kind == KindSelect && !node.HasOption(answer) {
		return fmt.Errorf("%w: %q", ErrInvalidOption, answer)
	}
	if node.Validate != nil {
		if err := node.Validate(answer); err != nil {
			return err
		}
	}
	return nil
}
