// Package process runs compile-step commands as blocking child processes.
// It never retries and imposes no timeout: a hung child blocks the caller.
package process

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/flarebyte/irshim/internal/command"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("irshim.process")

// Output is the captured result of a successful child.
type Output struct {
	Status int    `json:"status"`
	Stdout []byte `json:"stdout,omitempty"`
	Stderr []byte `json:"stderr,omitempty"`
}

// Runner is the contract the engine and the IR pipeline depend on.
type Runner interface {
	Run(cmd command.Command) error
	RunWithOutput(cmd command.Command) (Output, error)
	Pipe(cmd command.Command, input []byte) ([]byte, error)
}

// Executor spawns children with the parent's environment plus each command's
// overrides. Nil streams default to the parent's; Run inherits stdin, while
// the capturing modes give the child no stdin unless Stdin is set.
type Executor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Environ returns the base environment; defaults to os.Environ.
	Environ func() []string
}

var _ Runner = (*Executor)(nil)

// Run executes cmd with inherited output and reports only failure.
func (e *Executor) Run(cmd command.Command) error {
	c := e.prepare(cmd)
	c.Stdin = e.Stdin
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	c.Stdout = orDefault(e.Stdout, os.Stdout)
	c.Stderr = orDefault(e.Stderr, os.Stderr)
	return run(cmd.Program, c, nil, nil)
}

// RunWithOutput executes cmd capturing stdout and stderr. On a non-zero exit
// the captured streams travel with the *ExitError.
func (e *Executor) RunWithOutput(cmd command.Command) (Output, error) {
	c := e.prepare(cmd)
	c.Stdin = e.Stdin
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := run(cmd.Program, c, &stdout, &stderr); err != nil {
		return Output{}, err
	}
	return Output{Status: 0, Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}

// Pipe writes input to the child's stdin, closes it and returns everything
// the child wrote to stdout. Stderr is inherited.
func (e *Executor) Pipe(cmd command.Command, input []byte) ([]byte, error) {
	c := e.prepare(cmd)
	c.Stdin = bytes.NewReader(input)
	var stdout bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = orDefault(e.Stderr, os.Stderr)
	if err := run(cmd.Program, c, &stdout, nil); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

func (e *Executor) prepare(cmd command.Command) *exec.Cmd {
	c := exec.Command(cmd.Program, cmd.Args...)
	c.Dir = cmd.Dir
	base := os.Environ
	if e.Environ != nil {
		base = e.Environ
	}
	c.Env = applyEnvOverlay(base(), cmd.Env)
	return c
}

func run(program string, c *exec.Cmd, stdout, stderr *bytes.Buffer) error {
	log.Debug("spawn", "program", program, "args", strings.Join(c.Args[1:], " "), "dir", c.Dir)
	if err := c.Start(); err != nil {
		return &SpawnError{Program: program, Err: err}
	}
	err := c.Wait()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ee := &ExitError{Program: program, Status: exitErr.ExitCode()}
		if stdout != nil {
			ee.Stdout = stdout.Bytes()
		}
		if stderr != nil {
			ee.Stderr = stderr.Bytes()
		}
		log.Debug("exit", "program", program, "status", ee.Status)
		return ee
	}
	return &IOError{Program: program, Op: "wait", Err: err}
}

func orDefault(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// applyEnvOverlay merges overlay into base. The result is sorted by key so
// children see a deterministic environment.
func applyEnvOverlay(base []string, overlay map[string]string) []string {
	m := make(map[string]string, len(base)+len(overlay))
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		m[k] = v
	}
	for k, v := range overlay {
		m[k] = v
	}
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
