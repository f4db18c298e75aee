// Where: internal/infra/interaction/presenter.go
// What: Question presenters backed by the prompter or by nothing at all.
// Why: Bridge question trees to huh prompts and to non-interactive runs.
package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/poruru/envctx/internal/domain/question"
)

// QuestionPresenter renders question nodes through a Prompter.
type QuestionPresenter struct {
	Prompter Prompter
	// Hints appends a note to the label of matching select options, e.g. "(last used)".
	Hints map[string]string
}

// Present asks the operator for the node's answer.
func (p QuestionPresenter) Present(ctx context.Context, node *question.Node, _ question.Answers) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Prompter == nil {
		return "", question.ErrNonInteractive
	}

	var (
		answer string
		err    error
	)
	switch node.Kind {
	case question.KindSelect:
		answer, err = p.Prompter.SelectValue(node.Label, p.selectOptions(node))
	default:
		var suggestions []string
		if node.Default != "" {
			suggestions = []string{node.Default}
		}
		answer, err = p.Prompter.Input(node.Label, suggestions, node.Validate)
	}
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", question.ErrCanceled
		}
		return "", err
	}
	return answer, nil
}

func (p QuestionPresenter) selectOptions(node *question.Node) []SelectOption {
	options := make([]SelectOption, len(node.Options))
	for i, opt := range node.Options {
		label := opt
		if hint, ok := p.Hints[opt]; ok && hint != "" {
			label = fmt.Sprintf("%s %s", opt, hint)
		}
		options[i] = SelectOption{Label: label, Value: opt}
	}
	return options
}

// NonInteractivePresenter fails every prompt; answers must be supplied up front.
type NonInteractivePresenter struct{}

func (NonInteractivePresenter) Present(_ context.Context, node *question.Node, _ question.Answers) (string, error) {
	return "", fmt.Errorf("%w: %s", question.ErrNonInteractive, node.Label)
}
