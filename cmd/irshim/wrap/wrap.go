// Package wrap implements `irshim wrap`, the compiler-wrapper entry point.
package wrap

import (
	"errors"
	"os"
	"strings"

	"github.com/flarebyte/irshim/cmd/irshim/setup"
	"github.com/flarebyte/irshim/internal/command"
	"github.com/flarebyte/irshim/internal/process"
	"github.com/spf13/cobra"
)

// Runner overrides the process runner; tests set it.
var Runner process.Runner

// Cmd implements `irshim wrap <program> [args...]`. Flag parsing is disabled
// so every argument reaches the wrapped program untouched. A leading
// --config/-c is the only flag irshim itself consumes.
var Cmd = &cobra.Command{
	Use:                "wrap <program> [args...]",
	Short:              "Run a compiler invocation through the rewrite engine",
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, rest, err := splitConfig(args)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			return errors.New("missing program to run")
		}
		if cfgPath == "" {
			cfgPath = setup.ConfigPath(cmd)
		}
		f, err := setup.Load(cfgPath)
		if err != nil {
			return err
		}
		e, err := setup.Engine(f, Runner)
		if err != nil {
			return err
		}
		c, err := Command(rest)
		if err != nil {
			return err
		}
		return e.Exec(cmd.Context(), c)
	},
}

// Command turns wrapper arguments into a command run from the current
// directory.
func Command(args []string) (command.Command, error) {
	c := command.New(args[0], args[1:]...)
	dir, err := os.Getwd()
	if err != nil {
		return command.Command{}, err
	}
	c.Dir = dir
	return c, nil
}

func splitConfig(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", args, nil
	}
	switch a := args[0]; {
	case a == "-c" || a == "--config":
		if len(args) < 2 {
			return "", nil, errors.New("flag needs an argument: " + a)
		}
		return args[1], args[2:], nil
	case strings.HasPrefix(a, "--config="):
		return strings.TrimPrefix(a, "--config="), args[1:], nil
	case a == "--":
		return "", args[1:], nil
	}
	return "", args, nil
}
