package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workcell/pkg/pipeline"
	"github.com/matzehuels/workcell/pkg/render/floorplan"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output path; the extension picks svg or dot
	dot       bool    // write DOT source instead of SVG
	scale     float64 // inches per meter
	showReach bool    // draw the reach circle
	title     string  // plan title
}

// renderCommand creates the render command for drawing floor plans.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: floorplan.DefaultScale, showReach: true}

	cmd := &cobra.Command{
		Use:   "render [layout]",
		Short: "Render a layout as a top-down floor plan",
		Long: `Render draws a Layout Result to scale: component footprints, the robot base,
the pick and place targets and the reach circle. Output is SVG, or Graphviz
DOT with --dot (or an output path ending in .dot).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <layout>.svg)")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "write Graphviz DOT instead of SVG")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "drawing scale in inches per meter")
	cmd.Flags().BoolVar(&opts.showReach, "reach", opts.showReach, "draw the robot reach circle")
	cmd.Flags().StringVar(&opts.title, "title", "", "title drawn above the plan")

	return cmd
}

func runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	res, err := pipeline.LoadResult(input)
	if err != nil {
		return err
	}

	format := pipeline.FormatSVG
	if opts.dot || strings.EqualFold(filepath.Ext(opts.output), ".dot") {
		format = pipeline.FormatDOT
	}
	out := opts.output
	if out == "" {
		out = outputPath(input, "."+format)
	}

	prog := newProgress(logger)
	dot := floorplan.ToDOT(res, floorplan.Options{
		Scale:     opts.scale,
		ShowReach: opts.showReach,
		Title:     opts.title,
	})
	data := []byte(dot)
	if format == pipeline.FormatSVG {
		spinner := newSpinner(ctx, os.Stderr, "Rendering floor plan", 0)
		spinner.Start()
		data, err = floorplan.RenderSVG(ctx, dot)
		spinner.Stop()
		if err != nil {
			return err
		}
	}
	logger.Debug("rendered floor plan", "format", format, "bytes", len(data))

	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	prog.done("Rendered floor plan")
	printFile(out)
	return nil
}
