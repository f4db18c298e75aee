// Where: internal/infra/interaction/interaction_test.go
// What: Tests for terminal detection and confirmation helpers.
// Why: Keep non-interactive detection deterministic in tests.
package interaction

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestIsTerminalNilAndPipe(t *testing.T) {
	if IsTerminal(nil) {
		t.Fatal("IsTerminal(nil) must be false")
	}
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	defer func() {
		_ = r.Close()
		_ = w.Close()
	}()
	if IsTerminal(r) {
		t.Fatal("IsTerminal(pipe) must be false")
	}
}

func TestPromptYesNoWithIO(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: " YES \n", want: true},
		{input: "n\n", want: false},
		{input: "", want: false},
		{input: "yes", want: true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := PromptYesNoWithIO(strings.NewReader(tt.input), &out, "Continue?")
		if err != nil {
			t.Fatalf("PromptYesNoWithIO(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("PromptYesNoWithIO(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Continue? [y/N]: " {
			t.Fatalf("prompt output = %q", out.String())
		}
	}
}
