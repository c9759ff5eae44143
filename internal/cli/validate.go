package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workcell/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var configPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate [layout]",
		Short: "Run the acceptance checks on a Layout Result",
		Long: `Validate re-runs the acceptance checks on a layout file: every component has a
position, pick and place targets are present, components are spread out, the
targets are far enough apart, and the pick target is high enough.

Exits non-zero when any check fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSolverConfig(configPath)
			if err != nil {
				return err
			}
			res, err := pipeline.LoadResult(args[0])
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, nil, loggerFromContext(cmd.Context()))
			rep := runner.Validate(cmd.Context(), res, cfg)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(rep); err != nil {
					return err
				}
			} else if rep.OK() {
				printSuccess("Layout passes all checks")
				printKeyValue("Separation", fmt.Sprintf("%.3f m", rep.Separation))
				printKeyValue("Pick height", fmt.Sprintf("%.3f m", rep.PickHeight))
			} else {
				for _, v := range rep.Violations {
					printError("%s: %s", v.Rule, v.Message)
				}
			}

			if !rep.OK() {
				return fmt.Errorf("layout failed %d of its acceptance checks", len(rep.Violations))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "solver config file (TOML) with the check thresholds")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}
