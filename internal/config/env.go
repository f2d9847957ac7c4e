package config

import "github.com/xyproto/env/v2"

// Environment variables overriding the config file. They are read once, when
// the configuration is assembled.
const (
	EnvConfig    = "IRSHIM_CONFIG"
	EnvTarget    = "IRSHIM_TARGET"
	EnvSysroot   = "IRSHIM_SYSROOT"
	EnvEmcc      = "IRSHIM_EMCC"
	EnvOpt       = "IRSHIM_OPT"
	EnvEmit      = "IRSHIM_EMIT"
	EnvPluginDir = "IRSHIM_PLUGIN_DIR"
	EnvVerbose   = "IRSHIM_VERBOSE"
	EnvLog       = "IRSHIM_LOG"
)

// DefaultPath returns the config path named by IRSHIM_CONFIG, if any.
func DefaultPath() string {
	env.Load()
	return env.Str(EnvConfig)
}

// ApplyEnv overlays IRSHIM_* variables onto f. Set variables win over the
// file. The process environment is re-read on every call.
func ApplyEnv(f *File) {
	env.Load()
	overlay := []struct {
		name string
		dst  *string
	}{
		{EnvTarget, &f.Engine.Target},
		{EnvSysroot, &f.Engine.Sysroot},
		{EnvEmcc, &f.Engine.Emcc},
		{EnvOpt, &f.Engine.Opt},
		{EnvEmit, &f.Engine.Emit},
		{EnvPluginDir, &f.Engine.PluginDir},
		{EnvLog, &f.Log.Path},
	}
	for _, o := range overlay {
		if env.Has(o.name) {
			*o.dst = env.Str(o.name)
		}
	}
	if f.Log.Path != "" {
		f.Log.HasPath = true
	}
	if env.Has(EnvVerbose) {
		f.Log.Verbosity = env.Int(EnvVerbose, f.Log.Verbosity)
		f.Log.HasVerbosity = true
	}
}
