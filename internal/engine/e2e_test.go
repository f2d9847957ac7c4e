package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flarebyte/irshim/internal/command"
	"github.com/flarebyte/irshim/internal/config"
	"github.com/flarebyte/irshim/internal/process"
	"github.com/flarebyte/irshim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toolchain writes fake rustc, opt and emcc scripts that log their argv.
func toolchain(t *testing.T, d, outDir string) (rustc, opt, emcc string) {
	t.Helper()
	rustc = testutil.WriteScript(t, d, "rustc", `
printf '%s\n' "$@" > "`+d+`/rustc.args"
printf '%s\n' "; ModuleID = 'app'" "define i32 @main() {" "  ret i32 0, !dbg !4" "}" "!4 = distinct !{!5}" > "`+outDir+`/app.ll"`)
	opt = testutil.WriteScript(t, d, "opt", `
printf '%s\n' "$@" > "`+d+`/opt.args"
cat
echo "; optimized"`)
	emcc = testutil.WriteScript(t, d, "emcc", `
printf '%s\n' "$@" > "`+d+`/emcc.args"
while [ $# -gt 1 ]; do
	if [ "$1" = "-o" ]; then echo "<html></html>" > "$2"; fi
	shift
done`)
	return rustc, opt, emcc
}

func TestEndToEnd_BrowserArtifact(t *testing.T) {
	d := t.TempDir()
	outDir := filepath.Join(d, "build")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	rustc, opt, emcc := toolchain(t, d, outDir)

	cfg := config.Engine{
		Target:    "asmjs-unknown-emscripten",
		Sysroot:   "/opt/sysroot",
		Emcc:      emcc,
		Opt:       opt,
		Emit:      "em-html",
		PluginDir: filepath.Join(d, "plugins"),
	}
	var stdout, stderr bytes.Buffer
	e := New(cfg, WithRunner(&process.Executor{Stdout: &stdout, Stderr: &stderr}))

	cmd := command.New(rustc, "src/main.rs", "--crate-name", "app", "--crate-type", "bin",
		"--emit=dep-info,link", "--out-dir", outDir, "--target", "asmjs-unknown-emscripten")
	cmd.Kind = command.KindCompiler
	cmd.Dir = d
	require.NoError(t, e.Exec(context.Background(), cmd))

	rustcArgs := testutil.ReadFile(t, filepath.Join(d, "rustc.args"))
	assert.Equal(t, strings.Join([]string{
		"src/main.rs", "--crate-name", "app", "--crate-type", "bin",
		"--out-dir", outDir, "--target", "asmjs-unknown-emscripten",
		"--emit", "dep-info,llvm-ir", "-C", "lto", "--sysroot", "/opt/sysroot",
	}, "\n")+"\n", rustcArgs)

	optArgs := testutil.ReadFile(t, filepath.Join(d, "opt.args"))
	assert.Contains(t, optArgs, "-load="+filepath.Join(d, "plugins", "RemoveOverflowChecks.so")+"\n")
	assert.Contains(t, optArgs, "-load="+filepath.Join(d, "plugins", "RemoveAssume.so")+"\n")

	ll := testutil.ReadFile(t, filepath.Join(outDir, "app.ll"))
	assert.Equal(t, "; ModuleID = 'app'\ndefine i32 @main() {\n  ret i32 0, !dbg !4\n}\n!4 = metadata !{metadata !5}\n; optimized\n", ll)

	assert.Equal(t, "<html></html>\n", testutil.ReadFile(t, filepath.Join(outDir, "app.html")))
	emccArgs := testutil.ReadFile(t, filepath.Join(d, "emcc.args"))
	assert.True(t, strings.HasPrefix(emccArgs, filepath.Join(outDir, "app.ll")+"\n-lGL\n-lSDL\n-s\nUSE_SDL=2\n-o\n"), emccArgs)
}

func TestEndToEnd_OptimizerFailureKeepsModule(t *testing.T) {
	d := t.TempDir()
	outDir := filepath.Join(d, "build")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	rustc, _, emcc := toolchain(t, d, outDir)
	badOpt := testutil.WriteScript(t, d, "bad-opt", `cat >/dev/null; echo "opt: bad plugin" >&2; exit 1`)

	var stderr bytes.Buffer
	e := New(config.Engine{Opt: badOpt, Emcc: emcc, Emit: "em-js"}, WithRunner(&process.Executor{Stdout: &bytes.Buffer{}, Stderr: &stderr}))
	cmd := command.New(rustc, "src/main.rs", "--crate-name", "app", "--crate-type", "bin", "--out-dir", outDir)
	cmd.Kind = command.KindCompiler

	err := e.Exec(context.Background(), cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with status 1")
	assert.Contains(t, stderr.String(), "opt: bad plugin")
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(outDir, "app.ll")), "!4 = distinct !{!5}")
	_, statErr := os.Stat(filepath.Join(outDir, "app.js"))
	assert.True(t, os.IsNotExist(statErr))
}
