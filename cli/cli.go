// Package cli carries version data injected by external build scripts.
package cli

// Version and Date are set at build time, e.g.:
//
//	-ldflags "-X 'github.com/flarebyte/irshim/cli.Version=0.3.0' -X 'github.com/flarebyte/irshim/cli.Date=2026-10-17'"
//
// internal/buildinfo falls back to them when its own values are empty.
var (
	Version string
	Date    string
)
