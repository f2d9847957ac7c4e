package irfix

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("irshim.irfix")

// Pipeline stages reported in StageError.
const (
	StageRead     = "read"
	StageRepair   = "repair"
	StageOptimize = "optimize"
	StageReplace  = "replace"
)

// StageError reports which part of the pipeline failed. The module on disk
// is untouched whenever a StageError is returned.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ir pipeline %s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Transform repairs the module at path, runs it through opt and replaces the
// file with the optimizer output. The file is replaced whole or not at all.
func Transform(path string, opt Optimizer) error {
	f, err := os.Open(path)
	if err != nil {
		return &StageError{Stage: StageRead, Path: path, Err: err}
	}
	repaired, err := Repair(f)
	_ = f.Close()
	if err != nil {
		return &StageError{Stage: StageRepair, Path: path, Err: err}
	}
	log.Debug("repaired", "path", path, "bytes", len(repaired))

	optimized, err := opt.Optimize(repaired)
	if err != nil {
		return &StageError{Stage: StageOptimize, Path: path, Err: err}
	}
	if err := replaceFile(path, optimized); err != nil {
		return &StageError{Stage: StageReplace, Path: path, Err: err}
	}
	log.Info("ir module rewritten", "path", path, "bytes", len(optimized))
	return nil
}

// replaceFile writes data next to path and renames it over path, keeping the
// original permissions.
func replaceFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".irshim-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
