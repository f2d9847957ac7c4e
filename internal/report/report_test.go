package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/flarebyte/irshim/internal/command"
	"github.com/flarebyte/irshim/internal/config"
	"github.com/flarebyte/irshim/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func inspect(t *testing.T, cfg config.Engine, cmd command.Command) engine.Step {
	t.Helper()
	st, err := engine.New(cfg).Inspect(context.Background(), cmd)
	require.NoError(t, err)
	return st
}

func browserStep(t *testing.T) engine.Step {
	cmd := command.New("rustc", "src/main.rs", "--crate-name", "app", "--crate-type", "bin",
		"--out-dir", "/tmp/build", "--target", "asmjs-unknown-emscripten")
	cfg := config.Engine{Target: "asmjs-unknown-emscripten", Sysroot: "/sr", Emit: "em-html"}
	return inspect(t, cfg, cmd)
}

func TestYAML_Stable(t *testing.T) {
	st := browserStep(t)
	b1, err := YAML(st)
	require.NoError(t, err)
	b2, err := YAML(st)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(b1, b2))
	assert.True(t, bytes.HasSuffix(b1, []byte("\n")))
	assert.False(t, bytes.HasSuffix(b1, []byte("\n\n")))
}

func TestYAML_SortedKeys(t *testing.T) {
	b, err := YAML(browserStep(t))
	require.NoError(t, err)
	s := string(b)
	order := []string{"classification:", "command:", "plan:", "rewritten:"}
	last := -1
	for _, k := range order {
		i := strings.Index(s, "\n"+k)
		if strings.HasPrefix(s, k) {
			i = 0
		}
		require.GreaterOrEqual(t, i, 0, k)
		assert.Greater(t, i, last, k)
		last = i
	}
	assert.Contains(t, s, "  irPath: /tmp/build/app.ll\n")
	assert.Contains(t, s, "  outputPath: /tmp/build/app.html\n")
}

func TestYAML_RoundTrip(t *testing.T) {
	b, err := YAML(browserStep(t))
	require.NoError(t, err)
	var got struct {
		Classification struct {
			Unit    string `yaml:"unit"`
			Binary  bool   `yaml:"binary"`
			Tooling bool   `yaml:"tooling"`
		} `yaml:"classification"`
		Plan struct {
			Request  string `yaml:"request"`
			Emit     string `yaml:"emit"`
			LTO      bool   `yaml:"lto"`
			Sysroot  string `yaml:"sysroot"`
			Dispatch string `yaml:"dispatch"`
		} `yaml:"plan"`
		Rewritten struct {
			Args []string `yaml:"args"`
		} `yaml:"rewritten"`
	}
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, "app", got.Classification.Unit)
	assert.True(t, got.Classification.Binary)
	assert.False(t, got.Classification.Tooling)
	assert.Equal(t, "repair", got.Plan.Request)
	assert.Equal(t, "llvm-ir", got.Plan.Emit)
	assert.True(t, got.Plan.LTO)
	assert.Equal(t, "/sr", got.Plan.Sysroot)
	assert.Equal(t, "em-html", got.Plan.Dispatch)
	assert.Equal(t, []string{"--emit", "dep-info,llvm-ir", "-C", "lto", "--sysroot", "/sr"}, got.Rewritten.Args[len(got.Rewritten.Args)-6:])
}

func TestFields_PassthroughHasNoPlan(t *testing.T) {
	f := Fields(inspect(t, config.Engine{}, command.New("rustc", "-vV")))
	assert.NotContains(t, f, "plan")
	assert.NotContains(t, f, "rewritten")
	assert.Equal(t, map[string]any{"passthrough": true}, f["classification"])
}

func TestJSON(t *testing.T) {
	b, err := JSON(browserStep(t))
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	plan := got["plan"].(map[string]any)
	assert.Equal(t, "/tmp/build/app.html", plan["outputPath"])
	assert.Equal(t, true, plan["repair"])
}
