// Where: internal/infra/ui/ui.go
// What: High-level output surface handed to commands and the working context.
// Why: Let use cases report progress without knowing about writers or emoji settings.
package ui

import "io"

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Block(emoji, title string, rows []KeyValue)
}

// NewTerminalUI returns a UserInterface rendering through a Console.
func NewTerminalUI(out io.Writer, emoji bool) UserInterface {
	return terminalUI{console: NewWithEmoji(out, emoji)}
}

type terminalUI struct {
	console *Console
}

func (t terminalUI) Info(msg string) {
	t.console.Info(msg)
}

func (t terminalUI) Warn(msg string) {
	t.console.Warn(msg)
}

func (t terminalUI) Success(msg string) {
	t.console.Success(msg)
}

func (t terminalUI) Block(emoji, title string, rows []KeyValue) {
	t.console.BlockStart(emoji, title)
	for _, kv := range rows {
		t.console.Item(kv.Key, kv.Value)
	}
	t.console.BlockEnd()
}

// Discard is a UserInterface that prints nothing.
var Discard UserInterface = NewTerminalUI(io.Discard, false)
