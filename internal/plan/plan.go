// Package plan turns a classification and the engine configuration into the
// rewritten compiler invocation.
package plan

import (
	"path/filepath"
	"strings"

	"github.com/flarebyte/irshim/internal/browser"
	"github.com/flarebyte/irshim/internal/classify"
	"github.com/flarebyte/irshim/internal/command"
	"github.com/flarebyte/irshim/internal/config"
)

// LegacyPrefix marks emission kinds targeting the older IR dialect.
const LegacyPrefix = "llvm35-"

// IREmit is what the compiler is asked for when the module needs repair.
const IREmit = "llvm-ir"

// Request classifies the configured emission kind.
type Request int

const (
	// RequestNone means no emission kind is configured.
	RequestNone Request = iota
	// RequestRepair asks for IR plus the legacy-dialect pipeline.
	RequestRepair
	// RequestPlain forwards the configured kind verbatim.
	RequestPlain
)

func (r Request) String() string {
	switch r {
	case RequestRepair:
		return "repair"
	case RequestPlain:
		return "plain"
	default:
		return "none"
	}
}

// RequestFor maps an emission kind to a Request. The legacy-IR and browser
// prefixes are checked before anything else.
func RequestFor(emit string) Request {
	switch {
	case strings.HasPrefix(emit, LegacyPrefix), browser.IsBrowserKind(emit):
		return RequestRepair
	case emit != "":
		return RequestPlain
	default:
		return RequestNone
	}
}

// Plan is the decision for one compiler invocation.
type Plan struct {
	Request Request `json:"request" yaml:"request"`
	// Rewrite is true when the emission flags change.
	Rewrite bool `json:"rewrite" yaml:"rewrite"`
	// Emit is the value given to --emit after "dep-info,".
	Emit string `json:"emit,omitempty" yaml:"emit,omitempty"`
	LTO  bool   `json:"lto" yaml:"lto"`
	// Sysroot is appended as --sysroot when non-empty.
	Sysroot string `json:"sysroot,omitempty" yaml:"sysroot,omitempty"`
	// Repair runs the IR pipeline after the first pass.
	Repair bool `json:"repair" yaml:"repair"`
	// Dispatch is the browser kind handed to the second-stage toolchain.
	Dispatch   string `json:"dispatch,omitempty" yaml:"dispatch,omitempty"`
	IRPath     string `json:"irPath,omitempty" yaml:"irPath,omitempty"`
	OutputPath string `json:"outputPath,omitempty" yaml:"outputPath,omitempty"`
}

// Build decides the rewrite for cls. Passthrough classifications yield the
// zero Plan. An unsupported browser kind fails here, before anything runs.
func Build(cls classify.Classification, cfg config.Engine) (Plan, error) {
	var p Plan
	if cls.Passthrough {
		return p, nil
	}
	if !cls.Tooling {
		p.Sysroot = cfg.Sysroot
	}
	p.Request = RequestFor(cfg.Emit)
	if cls.Tooling || !cls.Binary || cls.Excluded {
		return p, nil
	}
	switch p.Request {
	case RequestRepair:
		p.Rewrite = true
		p.Emit = IREmit
		p.LTO = true
		p.Repair = true
		p.IRPath = IRPath(cls.OutDir, cls.Unit)
		if browser.IsBrowserKind(cfg.Emit) {
			out, err := browser.OutputPath(cls.OutDir, cls.Unit, cfg.Emit)
			if err != nil {
				return Plan{}, err
			}
			p.Dispatch = cfg.Emit
			p.OutputPath = out
		}
	case RequestPlain:
		p.Rewrite = true
		p.Emit = cfg.Emit
	}
	return p, nil
}

// IRPath is where the first pass writes the textual IR module.
func IRPath(outDir, unit string) string {
	return filepath.Join(outDir, unit+".ll")
}

// Apply returns cmd rewritten according to p. The input is never modified;
// every other flag, the environment and the working directory are kept.
func (p Plan) Apply(cmd command.Command) command.Command {
	out := cmd.Clone()
	if p.Rewrite {
		out = out.Without("--emit")
		out.Arg("--emit", "dep-info,"+p.Emit)
		if p.LTO {
			out.Arg("-C", "lto")
		}
	}
	if p.Sysroot != "" {
		out.Arg("--sysroot", p.Sysroot)
	}
	return out
}

// Changes reports whether Apply alters the command at all.
func (p Plan) Changes() bool {
	return p.Rewrite || p.Sysroot != ""
}
