package root

import (
	"strings"

	"github.com/flarebyte/irshim/cmd/irshim/diagnose"
	"github.com/flarebyte/irshim/cmd/irshim/plan"
	"github.com/flarebyte/irshim/cmd/irshim/setup"
	"github.com/flarebyte/irshim/cmd/irshim/version"
	"github.com/flarebyte/irshim/cmd/irshim/wrap"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for irshim.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "irshim",
		Short: "Compiler wrapper that emits repaired LLVM IR and browser artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringP(setup.ConfigFlag, "c", "", "Path to config file (.cue); defaults to $IRSHIM_CONFIG")

	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(wrap.Cmd)
	cmd.AddCommand(plan.Cmd)
	cmd.AddCommand(diagnose.Cmd)
	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(Route(cmd, args))
	return cmd.Execute()
}

// Route prepends "wrap" when the first argument is a program path rather
// than a subcommand or a flag. Build tools invoke a compiler wrapper as
// `<wrapper> <compiler> [args...]`. A leading -c/--config is kept in front
// of the program, where wrap reads it.
func Route(cmd *cobra.Command, args []string) []string {
	n := leadingConfig(args)
	if len(args) == n || strings.HasPrefix(args[n], "-") {
		return args
	}
	switch args[n] {
	case "help", "completion", "__complete":
		return args
	}
	for _, sub := range cmd.Commands() {
		if sub.Name() == args[n] || sub.HasAlias(args[n]) {
			return args
		}
	}
	return append([]string{wrap.Cmd.Name()}, args...)
}

// leadingConfig returns how many leading arguments form a config flag.
func leadingConfig(args []string) int {
	if len(args) == 0 {
		return 0
	}
	switch a := args[0]; {
	case a == "-c" || a == "--config":
		if len(args) < 2 {
			return 0
		}
		return 2
	case strings.HasPrefix(a, "--config="):
		return 1
	}
	return 0
}
