// Where: internal/usecase/resolve/tree.go
// What: Environment selection question tree.
// Why: Offer existing environments plus the "+ new env" branch as one prompt flow.
package resolve

import (
	"github.com/poruru/envctx/internal/domain/environment"
	"github.com/poruru/envctx/internal/domain/question"
)

// Node IDs used in the selection tree and in Resolution.Answers.
const (
	EnvNodeID        = "env"
	NewEnvNameNodeID = "newEnvName"
)

// BuildTree returns the selection tree for the given existing environments.
// The root offers "+ new env" first, followed by existing names in order; the
// name prompt is only visible when the sentinel is chosen.
func BuildTree(existing []string) *question.Node {
	options := make([]string, 0, len(existing)+1)
	options = append(options, environment.NewEnvOption)
	options = append(options, existing...)

	root := question.NewSelect(EnvNodeID, "Select environment", options...)
	newName := question.NewInput(NewEnvNameNodeID, "New environment name")
	newName.Validate = func(value string) error {
		return environment.ValidateNewName(value, existing)
	}
	return root.When(question.Equals(environment.NewEnvOption), newName)
}
