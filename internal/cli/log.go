// Package cli implements the workcell command-line interface.
//
// This package provides commands for solving requirement records into
// layouts, checking and comparing layouts, rendering floor plans, and
// serving the pipeline over HTTP. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Solve one requirement record into a Layout Result
//   - batch: Solve many records concurrently
//   - validate: Run the acceptance checks on a layout
//   - compare: Compare a layout against a reference layout
//   - render: Draw a layout as a Graphviz floor plan (SVG or DOT)
//   - inspect: Browse a layout interactively
//   - serve: Run the HTTP API
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes level-filtered, timestamped lines ("14:32:01.45 INFO ...")
// to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a command step took, e.g. "Solved layout (12ms)".
// It is not safe for concurrent use; batch workers log through the runner.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

// withLogger attaches l to ctx. The root command does this for every
// subcommand, so pipeline options and server wiring pick up the -v level.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() for contexts built outside the root command (tests, direct
// calls).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
