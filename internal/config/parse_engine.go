package config

import "cuelang.org/go/cue"

// parseEngineSection extracts optional engine.* fields.
func parseEngineSection(v cue.Value) (Engine, error) {
	var e Engine
	ev := v.LookupPath(cue.ParsePath("engine"))
	if !ev.Exists() {
		return e, nil
	}
	fields := []struct {
		name string
		dst  *string
	}{
		{"engine.target", &e.Target},
		{"engine.sysroot", &e.Sysroot},
		{"engine.emcc", &e.Emcc},
		{"engine.opt", &e.Opt},
		{"engine.emit", &e.Emit},
		{"engine.pluginDir", &e.PluginDir},
	}
	for _, f := range fields {
		if err := decodeString(v, f.name, f.dst); err != nil {
			return Engine{}, err
		}
	}
	if err := decodeStringList(v, "engine.toolingNames", &e.ToolingNames); err != nil {
		return Engine{}, err
	}
	return e, nil
}
