// Where: internal/domain/question/condition.go
// What: Minimal condition language for child visibility.
// Why: Keep conditions total so traversal never fails while evaluating them.
package question

type conditionOp int

const (
	opAlways conditionOp = iota
	opEquals
)

// Condition guards a child node against its parent's answer.
// The zero value always matches.
type Condition struct {
	op      conditionOp
	literal string
}

// Always matches every answer.
func Always() Condition {
	return Condition{op: opAlways}
}

// Equals matches when the parent's answer is exactly literal.
func Equals(literal string) Condition {
	return Condition{op: opEquals, literal: literal}
}

// Matches evaluates the condition against answer.
func (c Condition) Matches(answer string) bool {
	switch c.op {
	case opEquals:
		return answer == c.literal
	default:
		return true
	}
}
