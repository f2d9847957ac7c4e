// Package buildinfo exposes version metadata for the irshim binary. Values
// are overridden at build time via -ldflags; the cli package values are
// honored as a fallback for release scripts that set those instead.
package buildinfo

import (
	"strings"

	"github.com/flarebyte/irshim/cli"
)

var (
	// Version is the semantic version. Falls back to cli.Version, then "dev".
	Version = "dev"
	// Commit is the VCS commit hash.
	Commit = ""
	// Date is the build time. Falls back to cli.Date.
	Date = ""
	// BuiltBy names the builder.
	BuiltBy = ""
)

// Summary returns a single-line version string such as
// "0.3.0 (commit=0123456, date=2026-10-17)".
func Summary() string {
	v := Version
	if v == "" {
		v = cli.Version
	}
	if v == "" {
		v = "dev"
	}
	d := Date
	if d == "" {
		d = cli.Date
	}
	parts := make([]string, 0, 2)
	if Commit != "" {
		c := Commit
		if len(c) > 7 {
			c = c[:7]
		}
		parts = append(parts, "commit="+c)
	}
	if d != "" {
		parts = append(parts, "date="+d)
	}
	if len(parts) > 0 {
		v += " (" + strings.Join(parts, ", ") + ")"
	}
	return v
}
