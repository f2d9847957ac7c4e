package config

import "cuelang.org/go/cue"

// DefaultHookTimeoutMs bounds the inline Lua classification hook.
const DefaultHookTimeoutMs = 200

// parseClassifySection extracts optional classify.* settings.
func parseClassifySection(v cue.Value) (Classify, error) {
	c := Classify{TimeoutMs: DefaultHookTimeoutMs}
	cv := v.LookupPath(cue.ParsePath("classify"))
	if !cv.Exists() {
		return c, nil
	}
	if err := decodeStringList(v, "classify.exclude", &c.Exclude); err != nil {
		return Classify{}, err
	}
	iv := cv.LookupPath(cue.ParsePath("inline"))
	if iv.Exists() {
		if err := decodeString(v, "classify.inline", &c.Inline); err != nil {
			return Classify{}, err
		}
		c.HasInline = c.Inline != ""
	}
	ok, err := decodeInt(v, "classify.timeoutMs", &c.TimeoutMs)
	if err != nil {
		return Classify{}, err
	}
	c.HasTimeout = ok
	return c, nil
}
