package engine

import (
	"github.com/flarebyte/irshim/internal/classify"
	"github.com/flarebyte/irshim/internal/command"
	"github.com/flarebyte/irshim/internal/config"
	"github.com/flarebyte/irshim/internal/irfix"
	"github.com/flarebyte/irshim/internal/plan"
	"github.com/flarebyte/irshim/internal/process"
)

// Step is the state carried from stage to stage for one intercepted command.
type Step struct {
	// Original is the command as received from the orchestrator.
	Original command.Command
	// Command is what the compile stage runs.
	Command        command.Command
	Classification classify.Classification
	Plan           plan.Plan
	// Capture selects RunWithOutput over Run.
	Capture bool
	Output  process.Output
	// Done stops the chain; later stages are skipped.
	Done bool
}

// Deps are the collaborators stages call into. They are read-only.
type Deps struct {
	Config     config.Engine
	Classifier *classify.Classifier
	Runner     process.Runner
	Optimizer  irfix.Optimizer
}

// exec runs cmd in the step's mode.
func (d Deps) exec(cmd command.Command, capture bool) (process.Output, error) {
	if capture {
		return d.Runner.RunWithOutput(cmd)
	}
	return process.Output{}, d.Runner.Run(cmd)
}
