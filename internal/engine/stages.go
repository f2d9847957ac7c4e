package engine

import (
	"context"
	"fmt"

	"github.com/flarebyte/irshim/internal/browser"
	"github.com/flarebyte/irshim/internal/irfix"
	"github.com/flarebyte/irshim/internal/plan"
)

// Stage names in execution order.
const (
	StageClassify  = "classify"
	StagePlan      = "plan"
	StageCompile   = "compile"
	StageTransform = "transform-ir"
	StageDispatch  = "dispatch"
)

// Pipeline is the fixed stage order for every intercepted command.
var Pipeline = []string{StageClassify, StagePlan, StageCompile, StageTransform, StageDispatch}

// classifyRunner runs pass-through commands immediately and ends the chain.
func classifyRunner(_ context.Context, in Step, deps Deps) (Step, error) {
	cls, err := deps.Classifier.Classify(in.Original, deps.Config)
	if err != nil {
		return Step{}, err
	}
	out := in
	out.Classification = cls
	if !cls.Passthrough {
		log.Debug("classified", "unit", cls.Unit, "binary", cls.Binary, "tooling", cls.Tooling, "excluded", cls.Excluded)
		return out, nil
	}
	res, err := deps.exec(in.Original, in.Capture)
	if err != nil {
		return Step{}, err
	}
	out.Output = res
	out.Done = true
	return out, nil
}

func planRunner(_ context.Context, in Step, deps Deps) (Step, error) {
	p, err := plan.Build(in.Classification, deps.Config)
	if err != nil {
		return Step{}, err
	}
	out := in
	out.Plan = p
	out.Command = p.Apply(in.Original)
	if p.Changes() {
		log.Info("rewrite", "unit", in.Classification.Unit, "request", p.Request.String(), "emit", p.Emit, "lto", p.LTO, "sysroot", p.Sysroot)
	}
	return out, nil
}

func compileRunner(_ context.Context, in Step, deps Deps) (Step, error) {
	res, err := deps.exec(in.Command, in.Capture)
	if err != nil {
		return Step{}, err
	}
	out := in
	out.Output = res
	return out, nil
}

func transformRunner(_ context.Context, in Step, deps Deps) (Step, error) {
	if !in.Plan.Repair {
		return in, nil
	}
	if err := irfix.Transform(in.Plan.IRPath, deps.Optimizer); err != nil {
		return Step{}, fmt.Errorf("%s: %w", in.Classification.Unit, err)
	}
	return in, nil
}

func dispatchRunner(_ context.Context, in Step, deps Deps) (Step, error) {
	if in.Plan.Dispatch == "" {
		return in, nil
	}
	cmd, err := browser.Command(browser.Request{
		Toolchain: deps.Config.Emcc,
		IRPath:    in.Plan.IRPath,
		OutDir:    in.Classification.OutDir,
		Unit:      in.Classification.Unit,
		Kind:      in.Plan.Dispatch,
		Dir:       in.Original.Dir,
	})
	if err != nil {
		return Step{}, err
	}
	res, err := deps.exec(cmd, in.Capture)
	if err != nil {
		return Step{}, err
	}
	log.Info("dispatched", "unit", in.Classification.Unit, "output", in.Plan.OutputPath)
	out := in
	out.Output = res
	return out, nil
}

func init() {
	Register(StageClassify, classifyRunner)
	Register(StagePlan, planRunner)
	Register(StageCompile, compileRunner)
	Register(StageTransform, transformRunner)
	Register(StageDispatch, dispatchRunner)
}
