package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion records the build metadata shown by --version. Called by
// the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the groundbox CLI. The logger is attached to the
// command context at info level, or debug level with --verbose.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "groundbox",
		Short:        "Generate the printable compost container parts",
		Long:         `Groundbox generates the parts of a countertop compost container as STL or 3MF meshes: the box with its sloped floor and threaded drain, the lid, the lid-mounted and storage scrapers, the drain spout with seal ring and cap, plus an assembly view, a step-by-step assembly animation and a thread fit-test plate.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("groundbox %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newAssemblyCmd())
	root.AddCommand(newAnimateCmd())
	root.AddCommand(newFitTestCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
