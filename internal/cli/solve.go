package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	output    string // layout path, "-" for stdout
	format    string // json or yaml
	config    string // solver config (TOML)
	svg       string // optional floor plan path
	showReach bool
	noCache   bool
	refresh   bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{format: pipeline.FormatJSON, showReach: true}

	cmd := &cobra.Command{
		Use:   "solve [record]",
		Short: "Solve a requirement record into a workcell layout",
		Long: `Solve reads a requirement record (JSON or YAML), places the conveyor and
pallet around the robot pedestal, derives the pick and place targets, and
writes the Layout Result.

Layouts are cached by the content hash of the record and solver config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != pipeline.FormatJSON && opts.format != pipeline.FormatYAML {
				return fmt.Errorf("invalid format: %s (must be 'json' or 'yaml')", opts.format)
			}
			return c.runSolve(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <record>.layout.<format>, '-' for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "layout format: json, yaml")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "solver config file (TOML)")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "also write an SVG floor plan to this path")
	cmd.Flags().BoolVar(&opts.showReach, "reach", opts.showReach, "draw the reach circle on the floor plan")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-solve even when a cached layout exists")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, input string, opts solveOpts) error {
	logger := loggerFromContext(ctx)

	for _, path := range []string{opts.output, opts.svg} {
		if path == "" || path == "-" {
			continue
		}
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
	}

	cfg, err := loadSolverConfig(opts.config)
	if err != nil {
		return err
	}
	req, err := pipeline.LoadRequirement(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	formats := []string{opts.format}
	if opts.svg != "" {
		formats = append(formats, pipeline.FormatSVG)
	}

	prog := newProgress(logger)
	spinner := newSpinner(ctx, os.Stderr, "Solving "+filepath.Base(input), 0)
	spinner.Start()
	result, err := runner.Execute(ctx, req, pipeline.Options{
		Config:    cfg,
		Formats:   formats,
		ShowReach: opts.showReach,
		Refresh:   opts.refresh,
		Logger:    logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Solved layout")

	if opts.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[opts.format])
		return err
	}

	out := opts.output
	if out == "" {
		out = outputPath(input, ".layout."+opts.format)
	}
	if err := os.WriteFile(out, result.Artifacts[opts.format], 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}

	layout := result.Layout
	if layout.OK() {
		printSuccess("Layout solved")
	} else {
		printWarning("Layout failed validation: %s", layout.Status)
	}
	printStats(layout, result.CacheInfo.SolveHit)
	printFile(out)

	if opts.svg != "" {
		if err := os.WriteFile(opts.svg, result.Artifacts[pipeline.FormatSVG], 0644); err != nil {
			return fmt.Errorf("write floor plan: %w", err)
		}
		printFile(opts.svg)
	}

	printNewline()
	printNextStep("Inspect", fmt.Sprintf("%s inspect %s", appName, out))
	return nil
}
