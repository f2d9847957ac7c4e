package classify

import (
	"time"

	"github.com/flarebyte/irshim/internal/config"
)

// FromConfig builds a classifier from the classify section: the Lua hook
// replaces Default when present, and exclude patterns are attached.
func FromConfig(c config.Classify) (*Classifier, error) {
	var opts []Option
	if c.HasInline {
		fn, err := LuaFunc(c.Inline, time.Duration(c.TimeoutMs)*time.Millisecond)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithFunc(fn))
	}
	if x := NewExcluder(c.Exclude); x != nil {
		opts = append(opts, WithExcluder(x))
	}
	return New(opts...), nil
}
