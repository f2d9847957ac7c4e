package engine

import (
	"bytes"
	"context"
	"testing"

	"github.com/flarebyte/irshim/internal/command"
	"github.com/flarebyte/irshim/internal/config"
	"github.com/flarebyte/irshim/internal/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"
	"github.com/tliron/commonlog/simple"
)

// captureLog routes commonlog output at verbosity into a buffer.
func captureLog(t *testing.T, verbosity int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	b := simple.NewBackend()
	b.Buffered = false
	b.Configure(verbosity, nil)
	b.Writer = &buf
	commonlog.SetBackend(b)
	t.Cleanup(func() { commonlog.SetBackend(nil) })
	return &buf
}

func failingCompile(t *testing.T) error {
	t.Helper()
	r := &fakeRunner{onRun: func(command.Command) error { return &process.ExitError{Program: "rustc", Status: 1} }}
	e := New(config.Engine{Emit: "em-html"}, WithRunner(r))
	return e.Exec(context.Background(), appCmd(t.TempDir()))
}

func TestExec_FailureQuietAtDefaultVerbosity(t *testing.T) {
	buf := captureLog(t, 0)
	require.Error(t, failingCompile(t))
	assert.Empty(t, buf.String())
}

func TestExec_FailureLoggedAtDebug(t *testing.T) {
	buf := captureLog(t, 2)
	require.Error(t, failingCompile(t))
	assert.Contains(t, buf.String(), "stage failed")
}
