// Package setup turns the global flags and the config file into a ready
// engine. Every subcommand that touches the toolchain goes through it.
package setup

import (
	"os"
	"path/filepath"

	"github.com/flarebyte/irshim/internal/classify"
	"github.com/flarebyte/irshim/internal/config"
	"github.com/flarebyte/irshim/internal/engine"
	"github.com/flarebyte/irshim/internal/process"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

// ConfigFlag is the persistent flag naming the .cue config file.
const ConfigFlag = "config"

// ConfigPath returns the --config value, falling back to IRSHIM_CONFIG.
func ConfigPath(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup(ConfigFlag); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return config.DefaultPath()
}

// Load reads the configuration, configures logging and fills the plugin
// directory when the file and environment leave it unset.
func Load(path string) (config.File, error) {
	f, err := config.Load(path)
	if err != nil {
		return config.File{}, err
	}
	var logPath *string
	if f.Log.HasPath {
		logPath = &f.Log.Path
	}
	commonlog.Configure(f.Log.Verbosity, logPath)
	if f.Engine.PluginDir == "" {
		f.Engine.PluginDir = DefaultPluginDir()
	}
	return f, nil
}

// DefaultPluginDir is the directory holding the running binary, with
// symlinks resolved. Plugins ship next to irshim.
func DefaultPluginDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// Engine builds the engine for f. A nil runner selects a process executor
// bound to the parent's standard streams.
func Engine(f config.File, runner process.Runner) (*engine.Engine, error) {
	c, err := classify.FromConfig(f.Classify)
	if err != nil {
		return nil, err
	}
	return engine.New(f.EngineConfig(), engine.WithClassifier(c), engine.WithRunner(runner)), nil
}
