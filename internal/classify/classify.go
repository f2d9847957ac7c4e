// Package classify decides what an intercepted command is: a pass-through
// tool call, a build-time helper compiled for the host, or a compile of the
// project's own code that may be rewritten.
package classify

import (
	"fmt"

	"github.com/flarebyte/irshim/internal/command"
	"github.com/flarebyte/irshim/internal/config"
)

// Facts are the values extracted from a compiler invocation.
type Facts struct {
	Unit      string   `json:"unit" yaml:"unit"`
	OutDir    string   `json:"outDir" yaml:"outDir"`
	Binary    bool     `json:"binary" yaml:"binary"`
	HasTarget bool     `json:"hasTarget" yaml:"hasTarget"`
	Input     string   `json:"input,omitempty" yaml:"input,omitempty"`
	Args      []string `json:"-" yaml:"-"`
}

// Classification is the result for one command.
type Classification struct {
	// Passthrough means the command runs unmodified.
	Passthrough bool `json:"passthrough" yaml:"passthrough"`
	Facts       `yaml:",inline"`
	// Tooling marks build-time helpers that run on the host.
	Tooling bool `json:"tooling" yaml:"tooling"`
	// Excluded marks inputs matched by an exclude pattern.
	Excluded bool `json:"excluded" yaml:"excluded"`
}

// Func decides whether a compiler invocation builds host-side tooling.
type Func func(f Facts, cfg config.Engine) (bool, error)

// Default is the stock tooling heuristic: the unit has a reserved tooling
// name, or no --target flag was passed while a cross target is configured.
//
// This is a heuristic. Build helpers are indistinguishable from the
// project's code except by these signals, so a compiler that changes its
// invocation shape can produce false positives.
func Default(f Facts, cfg config.Engine) (bool, error) {
	return cfg.IsToolingName(f.Unit) || (!f.HasTarget && cfg.CrossCompiling()), nil
}

// ShapeError reports a compiler invocation lacking a flag the rewrite relies on.
type ShapeError struct {
	Missing string
	Command string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unsupported compiler invocation: missing %s in %q", e.Missing, e.Command)
}

// Classifier holds the injectable parts of classification.
type Classifier struct {
	isTooling Func
	exclude   *Excluder
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithFunc replaces the tooling heuristic.
func WithFunc(fn Func) Option {
	return func(c *Classifier) {
		if fn != nil {
			c.isTooling = fn
		}
	}
}

// WithExcluder sets gitignore-style patterns for inputs that are never rewritten.
func WithExcluder(x *Excluder) Option {
	return func(c *Classifier) { c.exclude = x }
}

// New returns a classifier using Default unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{isTooling: Default}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Classify inspects cmd. Non-compiler tools and query-only compiler calls
// pass through; a codegen call without --crate-name or --out-dir is a
// *ShapeError.
func (c *Classifier) Classify(cmd command.Command, cfg config.Engine) (Classification, error) {
	if cmd.Kind != command.KindCompiler || isQuery(cmd) {
		return Classification{Passthrough: true}, nil
	}
	f, err := Extract(cmd)
	if err != nil {
		return Classification{}, err
	}
	tooling, err := c.isTooling(f, cfg)
	if err != nil {
		return Classification{}, err
	}
	out := Classification{Facts: f, Tooling: tooling}
	if c.exclude != nil {
		out.Excluded = c.exclude.Match(cmd.Dir, f.Input)
	}
	return out, nil
}

// Extract reads the facts the planner needs from a compiler invocation.
func Extract(cmd command.Command) (Facts, error) {
	unit, ok := cmd.Value("--crate-name")
	if !ok || unit == "" {
		return Facts{}, &ShapeError{Missing: "--crate-name", Command: cmd.String()}
	}
	outDir, ok := cmd.Value("--out-dir")
	if !ok || outDir == "" {
		return Facts{}, &ShapeError{Missing: "--out-dir", Command: cmd.String()}
	}
	f := Facts{
		Unit:      unit,
		OutDir:    outDir,
		Binary:    cmd.HasPair("--crate-type", "bin"),
		HasTarget: cmd.HasFlag("--target"),
		Args:      append([]string(nil), cmd.Args...),
	}
	if in := cmd.Inputs(".rs"); len(in) > 0 {
		f.Input = in[0]
	}
	return f, nil
}

var queryFlags = []string{"-V", "-vV", "--version", "--print", "--help", "-h"}

// isQuery reports compiler calls that generate no code, such as the version
// and target-info probes build tools issue before compiling.
func isQuery(cmd command.Command) bool {
	if len(cmd.Args) == 0 {
		return true
	}
	for _, f := range queryFlags {
		if cmd.HasFlag(f) {
			return true
		}
	}
	return false
}
