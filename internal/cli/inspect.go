package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/workcell/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var static bool

	cmd := &cobra.Command{
		Use:   "inspect [layout]",
		Short: "Browse a layout interactively",
		Long: `Inspect opens an interactive view of a Layout Result: the component table, the
selected component's pose, the motion targets, and a floor sketch.

Use --static to print the view once without entering the interactive mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := pipeline.LoadResult(args[0])
			if err != nil {
				return err
			}

			model := NewInspectModel(res)
			if static {
				fmt.Fprint(cmd.OutOrStdout(), model.View())
				return nil
			}

			p := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithOutput(os.Stderr))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&static, "static", false, "print the view once and exit")

	return cmd
}
