package command

import (
	"path/filepath"
	"sort"
	"strings"
)

// Kind tells the classifier which tool a command invokes.
type Kind int

const (
	// KindOther is any tool that is not the native compiler.
	KindOther Kind = iota
	// KindCompiler is the native ahead-of-time compiler (rustc).
	KindCompiler
)

func (k Kind) String() string {
	if k == KindCompiler {
		return "compiler"
	}
	return "other"
}

// CompilerNames lists program base names recognized as the native compiler.
var CompilerNames = []string{"rustc"}

// Command is one intercepted tool invocation.
type Command struct {
	Kind    Kind
	Program string
	Args    []string
	Dir     string
	Env     map[string]string
}

// New builds a command and infers its kind from the program name.
func New(program string, args ...string) Command {
	return Command{
		Kind:    KindOf(program),
		Program: program,
		Args:    append([]string(nil), args...),
	}
}

// KindOf reports KindCompiler when the base name of program is a known compiler.
func KindOf(program string) Kind {
	base := strings.TrimSuffix(filepath.Base(program), ".exe")
	for _, n := range CompilerNames {
		if base == n {
			return KindCompiler
		}
	}
	return KindOther
}

// Clone returns a deep copy of c.
func (c Command) Clone() Command {
	out := c
	out.Args = append([]string(nil), c.Args...)
	if c.Env != nil {
		out.Env = make(map[string]string, len(c.Env))
		for k, v := range c.Env {
			out.Env[k] = v
		}
	}
	return out
}

// Arg appends arguments and returns the command for chaining.
func (c *Command) Arg(args ...string) *Command {
	c.Args = append(c.Args, args...)
	return c
}

// Argv returns the program followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// EnvKeys returns the override keys in sorted order.
func (c Command) EnvKeys() []string {
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}
