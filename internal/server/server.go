// Package server exposes the workcell pipeline over HTTP.
//
// Routes:
//
//	POST /v1/solve     requirement record (JSON or YAML) -> Layout Result
//	POST /v1/validate  Layout Result -> validation report
//	POST /v1/compare   {candidate, reference, tolerances} -> comparison
//	GET  /healthz      liveness and build info
//	GET  /metrics      Prometheus exposition
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/workcell/pkg/buildinfo"
	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/pipeline"
	"github.com/matzehuels/workcell/pkg/solver"
)

const (
	maxBodyBytes   = 1 << 20
	requestTimeout = 30 * time.Second

	// HeaderCache reports whether a solve was served from cache ("hit" or "miss").
	HeaderCache = "X-Workcell-Cache"
)

// Server routes HTTP requests to a pipeline Runner.
type Server struct {
	runner   *pipeline.Runner
	config   solver.Config
	logger   *log.Logger
	gatherer prometheus.Gatherer
	router   chi.Router
}

// New creates a server around runner. A nil gatherer serves the default
// Prometheus registry on /metrics.
func New(runner *pipeline.Runner, cfg solver.Config, logger *log.Logger, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		runner:   runner,
		config:   cfg,
		logger:   logger,
		gatherer: gatherer,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Post("/solve", s.handleSolve)
		r.Post("/validate", s.handleValidate)
		r.Post("/compare", s.handleCompare)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Responses
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.IsPrecondition(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: string(code), Message: msg},
		RequestID: RequestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) > maxBodyBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodyBytes)
	}
	return data, nil
}
