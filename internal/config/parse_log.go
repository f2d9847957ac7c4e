package config

import "cuelang.org/go/cue"

// parseLogSection extracts optional log.* fields.
func parseLogSection(v cue.Value) (Log, error) {
	var l Log
	lv := v.LookupPath(cue.ParsePath("log"))
	if !lv.Exists() {
		return l, nil
	}
	ok, err := decodeInt(v, "log.verbosity", &l.Verbosity)
	if err != nil {
		return Log{}, err
	}
	l.HasVerbosity = ok
	pv := lv.LookupPath(cue.ParsePath("path"))
	if pv.Exists() {
		if err := decodeString(v, "log.path", &l.Path); err != nil {
			return Log{}, err
		}
		l.HasPath = l.Path != ""
	}
	return l, nil
}
