package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/workcell/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The --verbose (-v) flag switches the shared logger to debug level. The
// logger is also attached to the command context, so helpers that only see a
// context can reach it through loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "Workcell lays out robot pick-and-place cells",
		Long:          `Workcell turns a structured requirement record into a deterministic floor-plan layout for a robot pick-and-place cell: pedestal, conveyor, pallet, object, and the pick/place targets a motion planner drives to.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}
