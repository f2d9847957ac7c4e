package config

import (
	"fmt"
)

// File is the parsed irshim configuration.
//
// Example:
//
//	configVersion: "1"
//	engine: {
//		target:  "asmjs-unknown-emscripten"
//		sysroot: "/opt/rust-asmjs/sysroot"
//		emit:    "em-html"
//	}
//	classify: exclude: ["vendor/**"]
type File struct {
	ConfigVersion string
	Engine        Engine
	Classify      Classify
	Log           Log
}

// Classify holds the optional classification settings.
type Classify struct {
	Exclude    []string
	Inline     string
	TimeoutMs  int
	HasInline  bool
	HasTimeout bool
}

// Log holds the optional logging settings.
type Log struct {
	Verbosity    int
	Path         string
	HasVerbosity bool
	HasPath      bool
}

// Load reads the CUE file at path, overlays the environment and validates the
// result. An empty path yields the defaults plus the environment overlay.
func Load(path string) (File, error) {
	f := File{ConfigVersion: CurrentConfigVersion}
	if path != "" {
		parsed, err := ParseFile(path)
		if err != nil {
			return File{}, err
		}
		f = parsed
	}
	ApplyEnv(&f)
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// ParseFile compiles the CUE file at path and extracts every known section.
// Required fields:
//   - configVersion: string
func ParseFile(path string) (File, error) {
	v, err := compileCUE(path)
	if err != nil {
		return File{}, err
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return File{}, err
	}
	var f File
	if err := decodeString(v, "configVersion", &f.ConfigVersion); err != nil {
		return File{}, err
	}
	if !IsSupportedConfigVersion(f.ConfigVersion) {
		return File{}, fmt.Errorf("unsupported configVersion: %q (supported: %s)", f.ConfigVersion, SupportedConfigVersionsCSV())
	}
	if f.Engine, err = parseEngineSection(v); err != nil {
		return File{}, err
	}
	if f.Classify, err = parseClassifySection(v); err != nil {
		return File{}, err
	}
	if f.Log, err = parseLogSection(v); err != nil {
		return File{}, err
	}
	return f, nil
}

// EngineConfig returns the engine configuration with defaults applied.
func (f File) EngineConfig() Engine {
	return f.Engine.WithDefaults()
}
