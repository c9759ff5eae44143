package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/workcell/pkg/cache"
	"github.com/matzehuels/workcell/pkg/observability"
	"github.com/matzehuels/workcell/pkg/solver"
	"github.com/matzehuels/workcell/pkg/workcell"
)

const keyTypeResult = "result"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute solves req and renders the requested artifacts.
func (r *Runner) Execute(ctx context.Context, req workcell.Requirement, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	solveStart := time.Now()
	layout, hit, recordHash, err := r.solve(ctx, req, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Layout = layout
	result.RecordHash = recordHash
	result.Stats.SolveTime = time.Since(solveStart)
	result.Stats.Components = len(layout.Components)
	result.Stats.Degraded = layout.Quality.Degraded
	result.CacheInfo.SolveHit = hit

	renderStart := time.Now()
	artifacts, err := Render(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo solves req, serving the layout from cache when an entry
// for the same record and config exists. It reports whether the cache hit.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, req workcell.Requirement, opts Options) (workcell.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return workcell.Result{}, false, err
	}
	res, hit, _, err := r.solve(ctx, req, opts)
	return res, hit, err
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, req workcell.Requirement, opts Options) (workcell.Result, error) {
	res, _, err := r.SolveWithCacheInfo(ctx, req, opts)
	return res, err
}

func (r *Runner) solve(ctx context.Context, req workcell.Requirement, opts Options) (workcell.Result, bool, string, error) {
	if err := ctx.Err(); err != nil {
		return workcell.Result{}, false, "", err
	}
	hooks := observability.Solve()
	start := time.Now()
	hooks.OnSolveStart(ctx)

	recordData, err := workcell.MarshalRequirement(req)
	if err != nil {
		return workcell.Result{}, false, "", fmt.Errorf("serialize record for cache key: %w", err)
	}
	recordHash := cache.Hash(recordData)
	configHash, err := opts.ConfigHash()
	if err != nil {
		return workcell.Result{}, false, "", err
	}
	cacheKey := r.Keyer.ResultKey(recordHash, configHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := workcell.UnmarshalResult(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeResult)
				hooks.OnSolveComplete(ctx, event(cached, true), time.Since(start), nil)
				opts.Logger.Debug("layout served from cache", "record", recordHash[:12])
				return cached, true, recordHash, nil
			}
			// Undecodable entry: fall through and recompute.
		} else if err != nil {
			opts.Logger.Warn("cache lookup failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
	}

	res, err := solver.Solve(req, opts.Config)
	duration := time.Since(start)
	if err != nil {
		hooks.OnSolveComplete(ctx, observability.SolveEvent{}, duration, err)
		return workcell.Result{}, false, recordHash, err
	}
	hooks.OnSolveComplete(ctx, event(res, false), duration, nil)

	logFn := opts.Logger.Info
	if !res.OK() || res.Quality.Degraded {
		logFn = opts.Logger.Warn
	}
	logFn("solved layout",
		"status", res.Status,
		"components", len(res.Components),
		"degraded", res.Quality.Degraded,
		"confidence", res.Quality.Confidence,
		"duration", duration)

	if data, err := workcell.MarshalResult(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ResultTTL); err != nil {
			opts.Logger.Warn("cache store failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeResult, len(data))
		}
	}

	return res, false, recordHash, nil
}

// Validate runs the acceptance checks on an existing layout and records the
// outcome with the observability hooks.
func (r *Runner) Validate(ctx context.Context, res workcell.Result, cfg solver.Config) solver.Report {
	rep := solver.Validate(res, cfg)
	var failed []string
	for _, v := range rep.Violations {
		failed = append(failed, string(v.Rule))
	}
	observability.Solve().OnValidate(ctx, failed)
	r.Logger.Debug("validated layout", "ok", rep.OK(), "violations", len(rep.Violations))
	return rep
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func event(res workcell.Result, cached bool) observability.SolveEvent {
	return observability.SolveEvent{
		Status:     res.Status,
		Components: len(res.Components),
		Degraded:   res.Quality.Degraded,
		Cached:     cached,
	}
}
