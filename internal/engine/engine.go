// Package engine is the pluggable executor a build orchestrator hands every
// tool invocation to. It holds no mutable state, so one Engine may serve
// concurrent build steps.
package engine

import (
	"context"

	"github.com/flarebyte/irshim/internal/classify"
	"github.com/flarebyte/irshim/internal/command"
	"github.com/flarebyte/irshim/internal/config"
	"github.com/flarebyte/irshim/internal/irfix"
	"github.com/flarebyte/irshim/internal/process"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("irshim.engine")

// Engine runs the classify, plan, compile, transform-ir and dispatch stages.
type Engine struct {
	deps   Deps
	stages []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier replaces the default classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.deps.Classifier = c
		}
	}
}

// WithRunner replaces the process runner for every child, opt included.
func WithRunner(r process.Runner) Option {
	return func(e *Engine) {
		if r != nil {
			e.deps.Runner = r
		}
	}
}

// New returns an engine for cfg. Unset toolchain paths get their defaults.
func New(cfg config.Engine, opts ...Option) *Engine {
	cfg = cfg.WithDefaults()
	e := &Engine{
		deps: Deps{
			Config:     cfg,
			Classifier: classify.New(),
			Runner:     &process.Executor{},
		},
		stages: Pipeline,
	}
	for _, o := range opts {
		o(e)
	}
	e.deps.Optimizer = irfix.Optimizer{Path: cfg.Opt, PluginDir: cfg.PluginDir, Runner: e.deps.Runner}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Engine { return e.deps.Config }

// Exec runs cmd, rewriting it when it qualifies, and reports only failure.
func (e *Engine) Exec(ctx context.Context, cmd command.Command) error {
	_, err := e.run(ctx, cmd, false)
	return err
}

// ExecWithOutput runs cmd capturing output. When a browser artifact is
// produced the toolchain's output is returned, otherwise the compiler's.
func (e *Engine) ExecWithOutput(ctx context.Context, cmd command.Command) (process.Output, error) {
	st, err := e.run(ctx, cmd, true)
	if err != nil {
		return process.Output{}, err
	}
	return st.Output, nil
}

// Inspect classifies and plans cmd without running anything.
func (e *Engine) Inspect(ctx context.Context, cmd command.Command) (Step, error) {
	in := Step{Original: cmd, Command: cmd}
	cls, err := e.deps.Classifier.Classify(cmd, e.deps.Config)
	if err != nil {
		return Step{}, err
	}
	in.Classification = cls
	if cls.Passthrough {
		in.Done = true
		return in, nil
	}
	return Run(ctx, StagePlan, in, e.deps)
}

func (e *Engine) run(ctx context.Context, cmd command.Command, capture bool) (Step, error) {
	st := Step{Original: cmd, Command: cmd, Capture: capture}
	var err error
	for _, name := range e.stages {
		st, err = Run(ctx, name, st, e.deps)
		if err != nil {
			log.Debug("stage failed", "stage", name, "program", cmd.Program, "error", err.Error())
			return Step{}, err
		}
		if st.Done {
			break
		}
	}
	return st, nil
}
