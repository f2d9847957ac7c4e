package irfix

import (
	"path/filepath"

	"github.com/flarebyte/irshim/internal/command"
)

// Plugin shared objects loaded into the optimizer.
const (
	OverflowPlugin = "RemoveOverflowChecks.so"
	AssumePlugin   = "RemoveAssume.so"
)

// Passes enabled by the plugins, followed by stock passes.
var passes = []string{"-remove-overflow-checks", "-remove-assume", "-globaldce"}

// Piper feeds input to a child and returns its stdout. *process.Executor
// implements it.
type Piper interface {
	Pipe(cmd command.Command, input []byte) ([]byte, error)
}

// Optimizer runs the external IR optimizer with the instrumentation-removal
// plugins.
type Optimizer struct {
	// Path is the optimizer binary, "opt" when empty.
	Path string
	// PluginDir holds OverflowPlugin and AssumePlugin.
	PluginDir string
	Runner    Piper
}

// PluginPaths returns the absolute plugin locations.
func (o Optimizer) PluginPaths() []string {
	return []string{
		filepath.Join(o.PluginDir, OverflowPlugin),
		filepath.Join(o.PluginDir, AssumePlugin),
	}
}

// Args returns the optimizer arguments: plugin loads, passes and -S for
// textual output. Input and output go through stdin and stdout.
func (o Optimizer) Args() []string {
	var args []string
	for _, p := range o.PluginPaths() {
		args = append(args, "-load="+p)
	}
	args = append(args, passes...)
	return append(args, "-S")
}

// Command builds the optimizer invocation.
func (o Optimizer) Command() command.Command {
	path := o.Path
	if path == "" {
		path = "opt"
	}
	return command.New(path, o.Args()...)
}

// Optimize pipes src through the optimizer. A non-zero exit is an error and
// no output is returned.
func (o Optimizer) Optimize(src []byte) ([]byte, error) {
	return o.Runner.Pipe(o.Command(), src)
}
