package classify

import (
	"errors"
	"testing"
	"time"

	"github.com/flarebyte/irshim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuaFunc_DecidesTooling(t *testing.T) {
	fn, err := LuaFunc(`return unit == "xtask" or (not hasTarget and crossTarget ~= "")`, time.Second)
	require.NoError(t, err)

	got, err := fn(Facts{Unit: "xtask", HasTarget: true}, config.Engine{})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = fn(Facts{Unit: "app", HasTarget: true}, config.Engine{Target: "x"})
	require.NoError(t, err)
	assert.False(t, got)

	got, err = fn(Facts{Unit: "app"}, config.Engine{Target: "x"})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestLuaFunc_SeesArgs(t *testing.T) {
	fn, err := LuaFunc(`
for i = 1, #args do
	if args[i] == "--cfg" and args[i+1] == "feature=\"host\"" then return true end
end
return false`, time.Second)
	require.NoError(t, err)
	got, err := fn(Facts{Unit: "app", Args: []string{"--cfg", `feature="host"`}}, config.Engine{})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestLuaFunc_SyntaxError(t *testing.T) {
	_, err := LuaFunc(`return (`, time.Second)
	var he *HookError
	require.True(t, errors.As(err, &he))
}

func TestLuaFunc_NonBooleanResult(t *testing.T) {
	fn, err := LuaFunc(`return "yes"`, time.Second)
	require.NoError(t, err)
	_, err = fn(Facts{Unit: "app"}, config.Engine{})
	require.EqualError(t, err, "classify hook (app): expected boolean result, got string")
}

func TestLuaFunc_RuntimeError(t *testing.T) {
	fn, err := LuaFunc(`error("nope")`, time.Second)
	require.NoError(t, err)
	_, err = fn(Facts{Unit: "app"}, config.Engine{})
	var he *HookError
	require.True(t, errors.As(err, &he))
	assert.Contains(t, he.Message, "nope")
}

func TestLuaFunc_Timeout(t *testing.T) {
	fn, err := LuaFunc(`while true do end`, 20*time.Millisecond)
	require.NoError(t, err)
	_, err = fn(Facts{Unit: "app"}, config.Engine{})
	var he *HookError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "timeout", he.Message)
}

func TestLuaFunc_NoOSLibrary(t *testing.T) {
	fn, err := LuaFunc(`return os.execute("true") == 0`, time.Second)
	require.NoError(t, err)
	_, err = fn(Facts{Unit: "app"}, config.Engine{})
	require.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	c, err := FromConfig(config.Classify{Inline: `return unit == "gen"`, HasInline: true, TimeoutMs: 100, Exclude: []string{"vendor/**"}})
	require.NoError(t, err)
	got, err := c.Classify(rustc("vendor/gen/main.rs", "--crate-name", "gen", "--crate-type", "bin", "--out-dir", "/o"), config.Engine{})
	require.NoError(t, err)
	assert.True(t, got.Tooling)
	assert.True(t, got.Excluded)

	_, err = FromConfig(config.Classify{Inline: "return (", HasInline: true})
	require.Error(t, err)
}
