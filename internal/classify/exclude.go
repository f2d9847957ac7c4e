package classify

import (
	"path/filepath"
	"strings"

	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Excluder matches compiler inputs against gitignore-syntax patterns.
type Excluder struct {
	matcher gitignore.Matcher
}

// NewExcluder parses patterns. Blank lines and comments are skipped; nil is
// returned when nothing remains.
func NewExcluder(patterns []string) *Excluder {
	var ps []gitignore.Pattern
	for _, line := range patterns {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, nil))
	}
	if len(ps) == 0 {
		return nil
	}
	return &Excluder{matcher: gitignore.NewMatcher(ps)}
}

// Match reports whether input, taken relative to dir, is excluded.
func (x *Excluder) Match(dir, input string) bool {
	if x == nil || input == "" {
		return false
	}
	p := input
	if filepath.IsAbs(p) && dir != "" {
		rel, err := filepath.Rel(dir, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			return false
		}
		p = rel
	}
	p = filepath.ToSlash(filepath.Clean(p))
	return x.matcher.Match(strings.Split(p, "/"), false)
}
