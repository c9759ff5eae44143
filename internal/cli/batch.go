package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/pipeline"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	outDir  string
	config  string
	jobs    int
	noCache bool
}

// batchEntry is one line of the batch manifest.
type batchEntry struct {
	Record     string `json:"record"`
	Layout     string `json:"layout,omitempty"`
	RecordHash string `json:"record_hash,omitempty"`
	Status     string `json:"status,omitempty"`
	Degraded   bool   `json:"degraded,omitempty"`
	Cached     bool   `json:"cached,omitempty"`
	Error      string `json:"error,omitempty"`
}

// batchManifest summarizes one batch run.
type batchManifest struct {
	RunID    string       `json:"run_id"`
	Started  time.Time    `json:"started"`
	Duration string       `json:"duration"`
	Entries  []batchEntry `json:"entries"`
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{jobs: defaultJobs}

	cmd := &cobra.Command{
		Use:   "batch [records...]",
		Short: "Solve many requirement records concurrently",
		Long: `Batch solves each record independently, in parallel, and writes one layout per
record plus a manifest (batch-<run id>.json) listing the outcome of each
record in input order. A failing record does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.jobs < 1 {
				return fmt.Errorf("--jobs must be at least 1, got %d", opts.jobs)
			}
			return c.runBatch(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "solver config file (TOML)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "number of records solved at once")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, records []string, opts batchOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadSolverConfig(opts.config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	manifest := batchManifest{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
		Entries: make([]batchEntry, len(records)),
	}
	logger.Info("starting batch", "run", manifest.RunID, "records", len(records), "jobs", opts.jobs)

	spinner := newSpinner(ctx, os.Stderr, "Solving records", len(records))
	spinner.Start()

	outputs := layoutPaths(records, opts.outDir)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for i, path := range records {
		g.Go(func() error {
			manifest.Entries[i] = solveOne(gctx, runner, path, outputs[i], pipeline.Options{
				Config: cfg,
				Logger: logger.With("run", manifest.RunID[:8], "record", filepath.Base(path)),
			})
			spinner.Advance()
			return nil
		})
	}
	_ = g.Wait()

	if spinner.Cancelled() {
		spinner.StopWithError("Batch interrupted after %d of %d records", spinner.Done(), len(records))
		return ctx.Err()
	}

	failed := 0
	for _, e := range manifest.Entries {
		if e.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		spinner.StopWithError("Solved %d of %d records", len(records)-failed, len(records))
	} else {
		spinner.StopWithSuccess("Solved %d records", len(records))
	}

	manifest.Duration = time.Since(manifest.Started).Round(time.Millisecond).String()
	manifestPath := filepath.Join(opts.outDir, "batch-"+manifest.RunID+".json")
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	for _, e := range manifest.Entries {
		switch {
		case e.Error != "":
			printError("%s: %s", e.Record, e.Error)
		case e.Status != "success":
			printWarning("%s: %s", e.Record, e.Status)
		default:
			printDetail("%s", e.Record)
		}
	}
	printFile(manifestPath)

	if failed > 0 {
		return fmt.Errorf("%d of %d records failed", failed, len(records))
	}
	return nil
}

// layoutPaths names one layout file per record in outDir. Records sharing a
// base name get a numeric suffix so no layout overwrites another.
func layoutPaths(records []string, outDir string) []string {
	taken := make(map[string]bool, len(records))
	next := make(map[string]int, len(records))
	paths := make([]string, len(records))
	for i, r := range records {
		base := strings.TrimSuffix(filepath.Base(r), filepath.Ext(r))
		name := base
		for taken[name] {
			next[base]++
			name = fmt.Sprintf("%s-%d", base, next[base])
		}
		taken[name] = true
		paths[i] = filepath.Join(outDir, name+".layout.json")
	}
	return paths
}

// solveOne solves a single record and writes its layout to out. Errors are
// reported in the returned entry.
func solveOne(ctx context.Context, runner *pipeline.Runner, path, out string, opts pipeline.Options) batchEntry {
	entry := batchEntry{Record: path}

	req, err := pipeline.LoadRequirement(path)
	if err != nil {
		entry.Error = errors.UserMessage(err)
		return entry
	}
	res, err := runner.Execute(ctx, req, opts)
	if err != nil {
		entry.Error = errors.UserMessage(err)
		return entry
	}

	if err := os.WriteFile(out, res.Artifacts[pipeline.FormatJSON], 0644); err != nil {
		entry.Error = err.Error()
		return entry
	}

	entry.Layout = out
	entry.RecordHash = res.RecordHash
	entry.Status = res.Layout.Status
	entry.Degraded = res.Layout.Quality.Degraded
	entry.Cached = res.CacheInfo.SolveHit
	return entry
}
