package config

import (
	"slices"

	"github.com/flarebyte/irshim/internal/browser"
)

// DefaultOptimizer is the IR optimizer binary used when none is configured.
const DefaultOptimizer = "opt"

// DefaultToolingNames are crate names the compiler uses for build scripts.
var DefaultToolingNames = []string{"build-script-build", "build_script_build"}

// Engine is the read-only configuration shared by every intercepted command.
// It is assembled once per run and passed by value.
type Engine struct {
	// Target is the cross-compilation triple, if any.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	// Sysroot is the alternate system root passed to non-tooling compiles.
	Sysroot string `json:"sysroot,omitempty" yaml:"sysroot,omitempty"`
	// Emcc is the second-stage (browser) toolchain binary.
	Emcc string `json:"emcc,omitempty" yaml:"emcc,omitempty"`
	// Opt is the IR optimizer binary.
	Opt string `json:"opt,omitempty" yaml:"opt,omitempty"`
	// Emit is the requested emission kind, e.g. "llvm35-ir" or "em-html".
	Emit string `json:"emit,omitempty" yaml:"emit,omitempty"`
	// PluginDir holds RemoveOverflowChecks.so and RemoveAssume.so.
	PluginDir string `json:"pluginDir,omitempty" yaml:"pluginDir,omitempty"`
	// ToolingNames are crate names always classified as build-time tooling.
	ToolingNames []string `json:"toolingNames,omitempty" yaml:"toolingNames,omitempty"`
}

// WithDefaults fills unset toolchain paths and tooling names.
func (e Engine) WithDefaults() Engine {
	if e.Emcc == "" {
		e.Emcc = browser.DefaultToolchain
	}
	if e.Opt == "" {
		e.Opt = DefaultOptimizer
	}
	if len(e.ToolingNames) == 0 {
		e.ToolingNames = append([]string(nil), DefaultToolingNames...)
	}
	return e
}

// IsToolingName reports whether unit is a reserved build-tooling crate name.
func (e Engine) IsToolingName(unit string) bool {
	names := e.ToolingNames
	if len(names) == 0 {
		names = DefaultToolingNames
	}
	return slices.Contains(names, unit)
}

// CrossCompiling reports whether a target triple is configured.
func (e Engine) CrossCompiling() bool { return e.Target != "" }
