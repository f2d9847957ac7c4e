package command

import "strings"

// Value returns the value of the first occurrence of flag, accepting both
// "--flag value" and "--flag=value".
func (c Command) Value(flag string) (string, bool) {
	for i, a := range c.Args {
		if a == flag {
			if i+1 < len(c.Args) {
				return c.Args[i+1], true
			}
			return "", false
		}
		if v, ok := strings.CutPrefix(a, flag+"="); ok {
			return v, true
		}
	}
	return "", false
}

// HasPair reports whether flag is followed by value anywhere in the arguments.
func (c Command) HasPair(flag, value string) bool {
	for i, a := range c.Args {
		if a == flag && i+1 < len(c.Args) && c.Args[i+1] == value {
			return true
		}
		if a == flag+"="+value {
			return true
		}
	}
	return false
}

// HasFlag reports whether flag appears, alone or in "--flag=value" form.
func (c Command) HasFlag(flag string) bool {
	for _, a := range c.Args {
		if a == flag || strings.HasPrefix(a, flag+"=") {
			return true
		}
	}
	return false
}

// Without returns a copy of c with every occurrence of flag removed. When the
// flag appears on its own its following value is removed too.
func (c Command) Without(flag string) Command {
	out := c.Clone()
	args := make([]string, 0, len(c.Args))
	for i := 0; i < len(c.Args); i++ {
		a := c.Args[i]
		if a == flag {
			i++
			continue
		}
		if strings.HasPrefix(a, flag+"=") {
			continue
		}
		args = append(args, a)
	}
	out.Args = args
	return out
}

// Inputs returns arguments ending in one of the given suffixes.
func (c Command) Inputs(suffixes ...string) []string {
	var out []string
	for _, a := range c.Args {
		if strings.HasPrefix(a, "-") {
			continue
		}
		for _, s := range suffixes {
			if strings.HasSuffix(a, s) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
