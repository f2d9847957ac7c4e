package version

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/flarebyte/irshim/internal/buildinfo"
	"github.com/spf13/cobra"
)

var (
	flagShort bool
	flagJSON  bool
)

// VersionCmd implements `irshim version`.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the irshim version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagShort || !flagJSON {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "irshim %s\n", buildinfo.Summary())
			return err
		}
		// JSON on stdout, the human line on stderr.
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "irshim version: %s\n", buildinfo.Summary())
		out := map[string]any{
			"version":  buildinfo.Version,
			"commit":   buildinfo.Commit,
			"date":     buildinfo.Date,
			"built_by": buildinfo.BuiltBy,
			"go":       runtime.Version(),
			"go_os":    runtime.GOOS,
			"go_arch":  runtime.GOARCH,
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&flagShort, "short", false, "Print only the version string")
	VersionCmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")
}
