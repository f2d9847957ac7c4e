package process

import (
	"errors"
	"fmt"
	"os/exec"

	"golang.org/x/sys/unix"
)

// SpawnError means the child process could not be started.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	switch {
	case e.NotFound():
		return fmt.Sprintf("program %s not found", e.Program)
	case e.Permission():
		return fmt.Sprintf("program %s start failed: permission denied", e.Program)
	default:
		return fmt.Sprintf("program %s start failed: %v", e.Program, e.Err)
	}
}

func (e *SpawnError) Unwrap() error { return e.Err }

// NotFound reports a missing executable.
func (e *SpawnError) NotFound() bool {
	return errors.Is(e.Err, exec.ErrNotFound) || errors.Is(e.Err, unix.ENOENT)
}

// Permission reports an executable the current user may not run.
func (e *SpawnError) Permission() bool {
	return errors.Is(e.Err, unix.EACCES) || errors.Is(e.Err, unix.EPERM)
}

// ExitError means the child ran and exited with a non-zero status.
type ExitError struct {
	Program string
	Status  int
	// Stdout and Stderr are set in capturing mode.
	Stdout []byte
	Stderr []byte
}

func (e *ExitError) Error() string {
	if e.Status < 0 {
		return fmt.Sprintf("program %s terminated by signal", e.Program)
	}
	return fmt.Sprintf("program %s exited with status %d", e.Program, e.Status)
}

// ExitCode is the status the CLI exits with when forwarding this failure.
func (e *ExitError) ExitCode() int {
	if e.Status <= 0 {
		return 1
	}
	return e.Status
}

// IOError means communication with a running child failed.
type IOError struct {
	Program string
	Op      string
	Err     error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("program %s %s failed: %v", e.Program, e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
