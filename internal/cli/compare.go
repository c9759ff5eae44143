package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workcell/pkg/pipeline"
	"github.com/matzehuels/workcell/pkg/solver"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	opts := solver.DefaultCompareOptions()
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare [candidate] [reference]",
		Short: "Compare a layout against a reference layout",
		Long: `Compare matches each reference component to a candidate component (by name,
then by component type) and checks that enough of them, and both motion
targets, land within tolerance.

Exits non-zero when the candidate does not pass.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := pipeline.LoadResult(args[0])
			if err != nil {
				return err
			}
			reference, err := pipeline.LoadResult(args[1])
			if err != nil {
				return err
			}

			cmp := solver.Compare(candidate, reference, opts)
			loggerFromContext(cmd.Context()).Debug("compared layouts",
				"matched", cmp.Matched,
				"within_tolerance", cmp.WithinTolerance,
				"reference_components", cmp.ReferenceCount)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(cmp); err != nil {
					return err
				}
			} else {
				printComparison(cmp)
			}

			if !cmp.Pass {
				return fmt.Errorf("candidate does not match the reference")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.PositionTolerance, "position-tol", opts.PositionTolerance, "max component position error (m)")
	cmd.Flags().Float64Var(&opts.MotionTolerance, "motion-tol", opts.MotionTolerance, "max pick/place target error (m)")
	cmd.Flags().Float64Var(&opts.MinMatchFraction, "min-match", opts.MinMatchFraction, "share of reference components that must match")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")

	return cmd
}

func printComparison(cmp solver.Comparison) {
	if cmp.Pass {
		printSuccess("%s", cmp.Summary())
	} else {
		printError("%s", cmp.Summary())
	}
	for _, m := range cmp.Components {
		switch {
		case !m.Matched:
			printDetail("%-16s no match", m.Reference)
		case m.Error == nil:
			printDetail("%-16s no position", m.Reference)
		default:
			printDetail("%-16s %.3f m", m.Reference, *m.Error)
		}
	}
	printKeyValue("Pick error", formatError(cmp.PickError))
	printKeyValue("Place error", formatError(cmp.PlaceError))
}

func formatError(e *float64) string {
	if e == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f m", *e)
}
