package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/flarebyte/irshim/internal/buildinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetBuildinfo(t *testing.T) {
	oldVersion, oldCommit, oldDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	oldShort, oldJSON := flagShort, flagJSON
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = oldVersion, oldCommit, oldDate
		flagShort, flagJSON = oldShort, oldJSON
	})
	buildinfo.Version, buildinfo.Commit, buildinfo.Date = "", "", ""
	flagShort, flagJSON = false, false
}

func TestVersionDefaultOutputStable(t *testing.T) {
	resetBuildinfo(t)
	var out bytes.Buffer
	VersionCmd.SetOut(&out)
	require.NoError(t, VersionCmd.RunE(VersionCmd, nil))
	assert.Equal(t, "irshim dev\n", out.String())
}

func TestVersionWithCommit(t *testing.T) {
	resetBuildinfo(t)
	buildinfo.Version = "0.3.0"
	buildinfo.Commit = "0123456789abcdef"
	var out bytes.Buffer
	VersionCmd.SetOut(&out)
	require.NoError(t, VersionCmd.RunE(VersionCmd, nil))
	assert.Equal(t, "irshim 0.3.0 (commit=0123456)\n", out.String())
}

func TestVersionJSON(t *testing.T) {
	resetBuildinfo(t)
	flagJSON = true
	buildinfo.Version = "0.3.0"
	var out, errOut bytes.Buffer
	VersionCmd.SetOut(&out)
	VersionCmd.SetErr(&errOut)
	require.NoError(t, VersionCmd.RunE(VersionCmd, nil))
	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "0.3.0", got["version"])
	assert.Equal(t, "irshim version: 0.3.0\n", errOut.String())
}
