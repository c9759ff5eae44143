// Package pipeline provides the load → solve → render pipeline for workcell.
//
// This package wraps the pure solver with everything a caller needs around it:
// content-hash caching, logging, observability hooks and output rendering.
// The CLI and the HTTP server both go through a [Runner], so a record solved
// by either surface produces the same bytes.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a requirement record (JSON or YAML) from disk or bytes
//  2. Solve: Run the solver, or serve the layout from cache
//  3. Render: Produce outputs (JSON, YAML, Graphviz DOT, SVG floor plan)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	req, err := pipeline.LoadRequirement("cell.yaml")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, req, pipeline.Options{
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/workcell/pkg/cache"
	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/solver"
	"github.com/matzehuels/workcell/pkg/workcell"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatYAML: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Config holds the solver tunables. The zero value selects
	// solver.DefaultConfig().
	Config solver.Config

	// Formats lists the artifacts to render. Defaults to [json].
	Formats []string

	// ShowReach draws the reach circle on floor plans.
	ShowReach bool

	// Refresh bypasses the cache lookup (the fresh layout is still stored).
	Refresh bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the solved Layout Result.
	Layout workcell.Result

	// RecordHash is the content hash of the requirement record.
	RecordHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Components int
	Degraded   bool
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit bool // Whether the layout came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, yaml, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config.SearchStep == 0 && o.Config.Defaults.Object == nil {
		o.Config = solver.DefaultConfig()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ConfigHash returns the content hash of the solver config, used in cache keys.
func (o *Options) ConfigHash() (string, error) {
	h, err := cache.HashJSON(o.Config)
	if err != nil {
		return "", fmt.Errorf("hash config: %w", err)
	}
	return h, nil
}
