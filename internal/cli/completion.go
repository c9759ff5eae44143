package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/workcell/pkg/pipeline"
)

// recordExts are the file types accepted as requirement records and layouts.
var recordExts = []string{"yaml", "yml", "json"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Completion prints a shell completion script for workcell. Record and layout
arguments complete to .yaml, .yml and .json files, and solve --format
completes to the supported layout formats.

  bash:       source <(workcell completion bash)
  zsh:        workcell completion zsh > "${fpath[1]}/_workcell"
  fish:       workcell completion fish | source
  powershell: workcell completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerCompletions attaches argument and flag completions to the commands
// that take record or layout files.
func registerCompletions(root *cobra.Command) {
	for _, name := range []string{"solve", "batch", "validate", "compare", "render", "inspect"} {
		if cmd, _, err := root.Find([]string{name}); err == nil && cmd != root {
			cmd.ValidArgsFunction = completeRecordFiles
		}
	}
	if solve, _, err := root.Find([]string{"solve"}); err == nil && solve != root {
		_ = solve.RegisterFlagCompletionFunc("format", completeLayoutFormats)
	}
}

func completeRecordFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return recordExts, cobra.ShellCompDirectiveFilterFileExt
}

func completeLayoutFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{
		pipeline.FormatJSON + "\tJSON layout",
		pipeline.FormatYAML + "\tYAML layout",
	}, cobra.ShellCompDirectiveNoFileComp
}
