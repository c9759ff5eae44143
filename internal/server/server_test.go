package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/workcell/internal/metrics"
	"github.com/matzehuels/workcell/pkg/buildinfo"
	"github.com/matzehuels/workcell/pkg/cache"
	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/observability"
	"github.com/matzehuels/workcell/pkg/pipeline"
	"github.com/matzehuels/workcell/pkg/solver"
	"github.com/matzehuels/workcell/pkg/workcell"
)

const record = `{
  "robot_selection": {"model": "ur5", "reach_m": 0.85},
  "workcell_components": [
    {"name": "infeed", "component_type": "conveyor", "dimensions": [2.0, 0.64, 0.82]},
    {"name": "euro_pallet", "component_type": "pallet", "dimensions": [1.2, 0.8, 0.15]}
  ]
}`

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	mem, err := cache.NewMemoryCache(16)
	require.NoError(t, err)
	logger := log.New(&bytes.Buffer{})
	runner := pipeline.NewRunner(mem, nil, logger)

	reg := prometheus.NewRegistry()
	metrics.New(reg).Register()
	t.Cleanup(observability.Reset)

	return New(runner, solver.DefaultConfig(), logger, reg), reg
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var health healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, buildinfo.Get(), health.Build)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestSolve(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(s, http.MethodPost, "/v1/solve", record)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "miss", rec.Header().Get(HeaderCache))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	res, err := workcell.UnmarshalResult(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, workcell.StatusSuccess, res.Status)
	assert.Equal(t, workcell.V3(1.5, 0, 0), res.Coordinates.ConveyorPos)
	assert.Equal(t, workcell.V3(0, 0.9, 0), res.Coordinates.PalletPos)

	again := do(s, http.MethodPost, "/v1/solve", record)
	assert.Equal(t, "hit", again.Header().Get(HeaderCache))
	assert.Equal(t, rec.Body.String(), again.Body.String())

	fresh := do(s, http.MethodPost, "/v1/solve?refresh=true", record)
	assert.Equal(t, "miss", fresh.Header().Get(HeaderCache))
}

func TestSolveYAMLInOut(t *testing.T) {
	s, _ := newTestServer(t)
	body := "robot_selection:\n  reach_m: 0.85\n"

	rec := do(s, http.MethodPost, "/v1/solve?format=yaml", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "status: success")
}

func TestSolveDOT(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(s, http.MethodPost, "/v1/solve?format=dot", record)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "graph floorplan {"))
}

func TestSolveErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed", "/v1/solve", "{nope", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"empty", "/v1/solve", "", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"missing robot", "/v1/solve", `{"workcell_components": []}`, http.StatusBadRequest, errors.ErrCodeMissingRobot},
		{"zero reach", "/v1/solve", `{"robot_selection": {"reach_m": 0}}`, http.StatusBadRequest, errors.ErrCodeInvalidReach},
		{"bad format", "/v1/solve?format=png", record, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, string(tt.code), body.Error.Code)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	solved := do(s, http.MethodPost, "/v1/solve", record).Body.String()

	rec := do(s, http.MethodPost, "/v1/validate", solved)
	require.Equal(t, http.StatusOK, rec.Code)
	var ok validateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ok))
	assert.True(t, ok.OK)
	assert.Equal(t, workcell.StatusSuccess, ok.Status)
	assert.InDelta(t, 0.919, ok.Separation, 1e-9)

	res, err := workcell.UnmarshalResult([]byte(solved))
	require.NoError(t, err)
	res.MotionTargets.PickTarget = workcell.V3(0.65, 0, 0.1)
	data, err := workcell.MarshalResult(res)
	require.NoError(t, err)

	rec = do(s, http.MethodPost, "/v1/validate", string(data))
	var bad validateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bad))
	assert.False(t, bad.OK)
	require.Len(t, bad.Violations, 1)
	assert.Equal(t, solver.RulePickHeight, bad.Violations[0].Rule)
	assert.Contains(t, bad.Status, "pick target height")
}

func TestCompareEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	solved := do(s, http.MethodPost, "/v1/solve", record).Body.String()

	body := `{"candidate": ` + solved + `, "reference": ` + solved + `}`
	rec := do(s, http.MethodPost, "/v1/compare", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cmp compareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmp))
	assert.True(t, cmp.Pass)
	assert.Equal(t, 4, cmp.WithinTolerance)
	assert.True(t, strings.HasPrefix(cmp.Summary, "PASS"))

	rec = do(s, http.MethodPost, "/v1/compare", `{"candidate": `+solved+`}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDPassthrough(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	do(s, http.MethodPost, "/v1/solve", record)

	rec := do(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "workcell_solves_total")
	assert.Contains(t, rec.Body.String(), `route="/v1/solve"`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(errors.New(errors.ErrCodeInvalidDimensions, "x")))
	assert.Equal(t, http.StatusNotFound, StatusFor(errors.New(errors.ErrCodeFileNotFound, "x")))
	assert.Equal(t, http.StatusGatewayTimeout, StatusFor(context.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New(errors.ErrCodeInternal, "x")))
}

func TestListenAndServeShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
