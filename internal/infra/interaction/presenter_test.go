package interaction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/poruru/envctx/internal/domain/question"
)

type recordingPrompter struct {
	inputTitle    string
	inputSuggest  []string
	inputValidate func(string) error
	selectTitle   string
	selectOptions []SelectOption
	answer        string
	err           error
}

func (p *recordingPrompter) Input(title string, suggestions []string, validate func(string) error) (string, error) {
	p.inputTitle = title
	p.inputSuggest = suggestions
	p.inputValidate = validate
	return p.answer, p.err
}

func (p *recordingPrompter) Select(title string, options []string) (string, error) {
	return "", errors.New("Select must not be used by the presenter")
}

func (p *recordingPrompter) SelectValue(title string, options []SelectOption) (string, error) {
	p.selectTitle = title
	p.selectOptions = options
	return p.answer, p.err
}

func TestQuestionPresenterSelectUsesHints(t *testing.T) {
	prompter := &recordingPrompter{answer: "prod"}
	presenter := QuestionPresenter{Prompter: prompter, Hints: map[string]string{"dev": "(last used)"}}
	node := question.NewSelect("env", "Select environment", "dev", "prod", "+ new env")

	got, err := presenter.Present(context.Background(), node, question.Answers{})
	if err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if got != "prod" {
		t.Fatalf("Present() = %q, want prod", got)
	}
	if prompter.selectTitle != "Select environment" {
		t.Fatalf("title = %q", prompter.selectTitle)
	}
	want := []SelectOption{
		{Label: "dev (last used)", Value: "dev"},
		{Label: "prod", Value: "prod"},
		{Label: "+ new env", Value: "+ new env"},
	}
	if fmt.Sprint(prompter.selectOptions) != fmt.Sprint(want) {
		t.Fatalf("options = %#v", prompter.selectOptions)
	}
}

func TestQuestionPresenterInputForwardsDefaultAndValidator(t *testing.T) {
	prompter := &recordingPrompter{answer: "staging"}
	node := question.NewInput("name", "New environment name")
	node.Default = "staging"
	node.Validate = func(v string) error {
		if v == "bad" {
			return errors.New("bad")
		}
		return nil
	}

	got, err := (QuestionPresenter{Prompter: prompter}).Present(context.Background(), node, question.Answers{})
	if err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if got != "staging" {
		t.Fatalf("Present() = %q", got)
	}
	if len(prompter.inputSuggest) != 1 || prompter.inputSuggest[0] != "staging" {
		t.Fatalf("suggestions = %#v", prompter.inputSuggest)
	}
	if prompter.inputValidate == nil || prompter.inputValidate("bad") == nil {
		t.Fatal("node validator must be forwarded")
	}
}

func TestQuestionPresenterMapsUserAbort(t *testing.T) {
	prompter := &recordingPrompter{err: fmt.Errorf("prompt select value: %w", huh.ErrUserAborted)}
	node := question.NewSelect("env", "Select environment", "dev")

	_, err := (QuestionPresenter{Prompter: prompter}).Present(context.Background(), node, question.Answers{})
	if !errors.Is(err, question.ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
}

func TestQuestionPresenterKeepsOtherErrors(t *testing.T) {
	prompter := &recordingPrompter{err: errors.New("tty unavailable")}
	node := question.NewInput("name", "Name")

	_, err := (QuestionPresenter{Prompter: prompter}).Present(context.Background(), node, question.Answers{})
	if err == nil || errors.Is(err, question.ErrCanceled) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuestionPresenterHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	prompter := &recordingPrompter{answer: "dev"}

	_, err := (QuestionPresenter{Prompter: prompter}).Present(ctx, question.NewInput("name", "Name"), question.Answers{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if prompter.inputTitle != "" {
		t.Fatal("prompter must not be called after cancellation")
	}
}

func TestNonInteractivePresenter(t *testing.T) {
	_, err := (NonInteractivePresenter{}).Present(context.Background(), question.NewInput("name", "Name"), question.Answers{})
	if !errors.Is(err, question.ErrNonInteractive) {
		t.Fatalf("expected ErrNonInteractive, got %v", err)
	}
}
