// Package observability provides hooks for metrics, tracing, and logging.
//
// The solver core stays free of any metrics backend. Instead, the pipeline,
// the cache layer and the HTTP server emit events through the hook interfaces
// defined here, and the binary registers an implementation at startup (the
// Prometheus one lives in internal/metrics).
//
// Every interface has a no-op default, so libraries can call hooks
// unconditionally:
//
//	start := time.Now()
//	observability.Solve().OnSolveStart(ctx)
//	res, err := solver.Solve(req, cfg)
//	observability.Solve().OnSolveComplete(ctx, observability.SolveEvent{...}, time.Since(start), err)
//
// Register hooks once, before serving:
//
//	observability.SetSolveHooks(metrics.New(prometheus.DefaultRegisterer))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solve Hooks
// =============================================================================

// SolveEvent summarizes one finished solve.
type SolveEvent struct {
	Status     string // layout status, empty when the solve failed
	Components int
	Degraded   bool
	Cached     bool // served from cache without running the solver
}

// SolveHooks receives events from the layout pipeline.
type SolveHooks interface {
	OnSolveStart(ctx context.Context)
	OnSolveComplete(ctx context.Context, ev SolveEvent, duration time.Duration, err error)

	// OnValidate records a validation run; failed lists the broken rules.
	OnValidate(ctx context.Context, failed []string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	// OnRequest records an incoming request on a route pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolveHooks is a no-op implementation of SolveHooks.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnSolveStart(context.Context)                                      {}
func (NoopSolveHooks) OnSolveComplete(context.Context, SolveEvent, time.Duration, error) {}
func (NoopSolveHooks) OnValidate(context.Context, []string)                              {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solveHooks  SolveHooks  = NoopSolveHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	serverHooks ServerHooks = NoopServerHooks{}
	hooksMu     sync.RWMutex
)

// SetSolveHooks registers custom solve hooks.
// This should be called once at application startup before any solves.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers custom server hooks.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
