package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// compileCUE loads and compiles a CUE file at the given path.
// It preserves the original error messages used by callers.
func compileCUE(path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("invalid config: %v", err)
	}
	return v, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return nil
}

// decodeString decodes an optional string field. A present field of the
// wrong kind is an error; an absent one leaves dst untouched.
func decodeString(v cue.Value, path string, dst *string) error {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return nil
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", path)
	}
	if err := f.Decode(dst); err != nil {
		return fmt.Errorf("invalid value for %s: %v", path, err)
	}
	return nil
}

func decodeInt(v cue.Value, path string, dst *int) (bool, error) {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return false, nil
	}
	if f.Kind() != cue.IntKind {
		return false, fmt.Errorf("invalid type for field: %s (expected int)", path)
	}
	if err := f.Decode(dst); err != nil {
		return false, fmt.Errorf("invalid value for %s: %v", path, err)
	}
	return true, nil
}

func decodeStringList(v cue.Value, path string, dst *[]string) error {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return nil
	}
	if f.Kind() != cue.ListKind {
		return fmt.Errorf("invalid type for field: %s (expected list of strings)", path)
	}
	if err := f.Decode(dst); err != nil {
		return fmt.Errorf("invalid type for field: %s (expected list of strings)", path)
	}
	return nil
}
