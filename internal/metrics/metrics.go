// Package metrics exports workcell observability events as Prometheus metrics.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/workcell/pkg/observability"
)

// Metrics implements the solve, cache and server hooks on a Prometheus registry.
type Metrics struct {
	solvesInFlight  prometheus.Gauge
	solvesTotal     *prometheus.CounterVec
	solveDuration   *prometheus.HistogramVec
	layoutParts     prometheus.Histogram
	validationsFail *prometheus.CounterVec
	validationsOK   prometheus.Counter

	cacheOps   *prometheus.CounterVec
	cacheBytes prometheus.Counter

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var (
	_ observability.SolveHooks  = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
	_ observability.ServerHooks = (*Metrics)(nil)
)

// New registers the workcell metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		solvesInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "workcell_solves_in_flight",
			Help: "Number of layout solves currently running",
		}),
		solvesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "workcell_solves_total",
			Help: "Total layout solves by outcome",
		}, []string{"outcome", "cached"}),
		solveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workcell_solve_duration_seconds",
			Help:    "Time spent producing a layout",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"cached"}),
		layoutParts: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "workcell_layout_components",
			Help:    "Components per solved layout",
			Buckets: prometheus.LinearBuckets(1, 1, 6),
		}),
		validationsFail: f.NewCounterVec(prometheus.CounterOpts{
			Name: "workcell_validation_failures_total",
			Help: "Failed acceptance checks by rule",
		}, []string{"rule"}),
		validationsOK: f.NewCounter(prometheus.CounterOpts{
			Name: "workcell_validations_passed_total",
			Help: "Layouts that passed every acceptance check",
		}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "workcell_cache_operations_total",
			Help: "Cache lookups and writes by key type and result",
		}, []string{"key_type", "op"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "workcell_cache_written_bytes_total",
			Help: "Bytes written to the layout cache",
		}),
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "workcell_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"method", "route", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workcell_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Register installs m as the process-wide observability hooks.
func (m *Metrics) Register() {
	observability.SetSolveHooks(m)
	observability.SetCacheHooks(m)
	observability.SetServerHooks(m)
}

func (m *Metrics) OnSolveStart(context.Context) { m.solvesInFlight.Inc() }

func (m *Metrics) OnSolveComplete(_ context.Context, ev observability.SolveEvent, d time.Duration, err error) {
	m.solvesInFlight.Dec()
	cached := strconv.FormatBool(ev.Cached)
	m.solvesTotal.WithLabelValues(outcome(ev, err), cached).Inc()
	m.solveDuration.WithLabelValues(cached).Observe(d.Seconds())
	if err == nil {
		m.layoutParts.Observe(float64(ev.Components))
	}
}

func (m *Metrics) OnValidate(_ context.Context, failed []string) {
	if len(failed) == 0 {
		m.validationsOK.Inc()
		return
	}
	for _, rule := range failed {
		m.validationsFail.WithLabelValues(rule).Inc()
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

// OnRequest is a no-op; requests are counted once the status is known.
func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func outcome(ev observability.SolveEvent, err error) string {
	switch {
	case err != nil:
		return "error"
	case ev.Status != "success":
		return "invalid"
	case ev.Degraded:
		return "degraded"
	default:
		return "success"
	}
}
