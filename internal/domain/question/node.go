// Where: internal/domain/question/node.go
// What: Composable prompt nodes with conditional children.
// Why: Describe interactive flows as data so traversal stays generic.
package question

import "strings"

// Kind tags the shape of answer a node expects.
type Kind int

const (
	// KindSelect offers a static option set; the answer must be one of Options.
	KindSelect Kind = iota
	// KindInput accepts free text.
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// Answers maps node IDs to the values collected for them.
type Answers map[string]string

// Clone returns an independent copy of the answers.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Lookup returns the trimmed answer for id and whether it is non-empty.
func (a Answers) Lookup(id string) (string, bool) {
	value, ok := a[id]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// Node is a single prompt in a question tree.
type Node struct {
	ID      string
	Kind    Kind
	Label   string
	Options []string
	// Default is offered as a suggestion for input nodes.
	Default string
	// Validate runs on every answer, prompted or pre-supplied.
	Validate func(string) error

	children []branch
}

type branch struct {
	cond Condition
	node *Node
}

// NewSelect builds a select node over a fixed option set.
func NewSelect(id, label string, options ...string) *Node {
	return &Node{
		ID:      id,
		Kind:    KindSelect,
		Label:   label,
		Options: append([]string(nil), options...),
	}
}

// NewInput builds a free-text node.
func NewInput(id, label string) *Node {
	return &Node{ID: id, Kind: KindInput, Label: label}
}

// Add attaches an unconditional child and returns n for chaining.
func (n *Node) Add(child *Node) *Node {
	return n.When(Always(), child)
}

// When attaches a child that is visited only if cond matches n's answer.
func (n *Node) When(cond Condition, child *Node) *Node {
	if child == nil {
		return n
	}
	n.children = append(n.children, branch{cond: cond, node: child})
	return n
}

// Children returns the children visible for the given answer, in attachment order.
func (n *Node) Children(answer string) []*Node {
	visible := make([]*Node, 0, len(n.children))
	for _, b := range n.children {
		if b.cond.Matches(answer) {
			visible = append(visible, b.node)
		}
	}
	return visible
}

// HasOption reports whether value is one of the node's static options.
func (n *Node) HasOption(value string) bool {
	for _, opt := range n.Options {
		if opt == value {
			return true
		}
	}
	return false
}
