// Package diagnose implements `irshim diagnose`: the resolved configuration
// plus checks that the toolchain it names is usable.
package diagnose

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/flarebyte/irshim/cmd/irshim/setup"
	"github.com/flarebyte/irshim/internal/browser"
	"github.com/flarebyte/irshim/internal/config"
	"github.com/flarebyte/irshim/internal/irfix"
	"github.com/flarebyte/irshim/internal/plan"
	"github.com/spf13/cobra"
)

const exitCodeChecksFailed = 2

type checksError struct {
	failed int
}

func (e checksError) Error() string { return fmt.Sprintf("%d check(s) failed", e.failed) }
func (e checksError) ExitCode() int { return exitCodeChecksFailed }

// Check is one toolchain probe.
type Check struct {
	Name     string
	OK       bool
	Skipped  bool
	Detail   string
	Required bool
}

// LookPath resolves programs; tests replace it.
var LookPath = exec.LookPath

// Cmd implements `irshim diagnose`.
var Cmd = &cobra.Command{
	Use:           "diagnose",
	Short:         "Print the resolved configuration and check the toolchain",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := setup.ConfigPath(cmd)
		f, err := setup.Load(path)
		if err != nil {
			return err
		}
		if err := writeConfig(cmd.OutOrStdout(), path, f); err != nil {
			return err
		}
		checks := Checks(f.EngineConfig())
		failed := printChecks(cmd.ErrOrStderr(), checks)
		if failed > 0 {
			return checksError{failed: failed}
		}
		return nil
	},
}

func writeConfig(w io.Writer, path string, f config.File) error {
	out := map[string]any{
		"configPath":    path,
		"configVersion": f.ConfigVersion,
		"engine":        f.EngineConfig(),
		"classify": map[string]any{
			"exclude":   f.Classify.Exclude,
			"hook":      f.Classify.HasInline,
			"timeoutMs": f.Classify.TimeoutMs,
		},
		"log": map[string]any{
			"verbosity": f.Log.Verbosity,
			"path":      f.Log.Path,
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Checks probes the optimizer, the plugins and the browser toolchain. Probes
// only matter for the configured emission kind; the rest are skipped.
func Checks(cfg config.Engine) []Check {
	repair := plan.RequestFor(cfg.Emit) == plan.RequestRepair
	var checks []Check
	checks = append(checks, programCheck("opt", cfg.Opt, repair))
	opt := irfix.Optimizer{PluginDir: cfg.PluginDir}
	for _, p := range opt.PluginPaths() {
		c := Check{Name: "plugin", Detail: p, Required: repair}
		if _, err := os.Stat(p); err == nil {
			c.OK = true
		} else if !repair {
			c.Skipped = true
		}
		checks = append(checks, c)
	}
	if browser.IsBrowserKind(cfg.Emit) {
		checks = append(checks, programCheck("emcc", cfg.Emcc, true))
	} else {
		checks = append(checks, Check{Name: "emcc", Skipped: true, Detail: cfg.Emcc})
	}
	return checks
}

func programCheck(name, program string, required bool) Check {
	c := Check{Name: name, Detail: program, Required: required}
	p, err := LookPath(program)
	switch {
	case err == nil:
		c.OK = true
		c.Detail = p
	case !required:
		c.Skipped = true
	}
	return c
}

// printChecks writes one colored line per check and returns the number of
// required checks that failed.
func printChecks(w io.Writer, checks []Check) int {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	failed := 0
	for _, c := range checks {
		var status string
		switch {
		case c.OK:
			status = ok("ok  ")
		case c.Skipped:
			status = dim("skip")
		default:
			status = bad("FAIL")
			failed++
		}
		fmt.Fprintf(w, "%s %-6s %s\n", status, c.Name, c.Detail)
	}
	return failed
}
