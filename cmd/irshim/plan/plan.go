// Package plan implements `irshim plan`, a dry run of the rewrite engine.
package plan

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/flarebyte/irshim/cmd/irshim/setup"
	"github.com/flarebyte/irshim/cmd/irshim/wrap"
	"github.com/flarebyte/irshim/internal/engine"
	"github.com/flarebyte/irshim/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagSummary bool
)

// Cmd implements `irshim plan [--json] <program> [args...]`. Nothing is
// spawned; the classification and planned rewrite are printed.
var Cmd = &cobra.Command{
	Use:           "plan [--json] <program> [args...]",
	Short:         "Print how a compiler invocation would be rewritten",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := setup.Load(setup.ConfigPath(cmd))
		if err != nil {
			return err
		}
		e, err := setup.Engine(f, nil)
		if err != nil {
			return err
		}
		c, err := wrap.Command(args)
		if err != nil {
			return err
		}
		st, err := e.Inspect(cmd.Context(), c)
		if err != nil {
			return err
		}
		if flagSummary {
			printSummary(cmd.ErrOrStderr(), st)
		}
		var b []byte
		if flagJSON {
			b, err = report.JSON(st)
		} else {
			b, err = report.YAML(st)
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

// printSummary writes one colored line describing the decision.
func printSummary(w io.Writer, st engine.Step) {
	bold := color.New(color.Bold).SprintFunc()
	cls := st.Classification
	switch {
	case cls.Passthrough:
		fmt.Fprintf(w, "%s %s\n", color.New(color.Faint).Sprint("passthrough"), st.Original.Program)
	case st.Plan.Dispatch != "":
		fmt.Fprintf(w, "%s %s -> %s\n", color.New(color.FgGreen).Sprint("browser"), bold(cls.Unit), st.Plan.OutputPath)
	case st.Plan.Repair:
		fmt.Fprintf(w, "%s %s -> %s\n", color.New(color.FgCyan).Sprint("repair"), bold(cls.Unit), st.Plan.IRPath)
	case st.Plan.Changes():
		fmt.Fprintf(w, "%s %s\n", color.New(color.FgYellow).Sprint("rewrite"), bold(cls.Unit))
	default:
		fmt.Fprintf(w, "%s %s\n", color.New(color.Faint).Sprint("unchanged"), bold(cls.Unit))
	}
}

func init() {
	Cmd.Flags().SetInterspersed(false)
	Cmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON instead of YAML")
	Cmd.Flags().BoolVar(&flagSummary, "summary", false, "Also print a one-line colored summary to stderr")
}
