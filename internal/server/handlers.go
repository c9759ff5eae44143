package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/pipeline"
	"github.com/matzehuels/workcell/pkg/solver"
	"github.com/matzehuels/workcell/pkg/workcell"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatYAML: "application/yaml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
}

// handleSolve solves the posted requirement record. The optional "format"
// query parameter selects json (default), yaml, dot or svg output, and
// "refresh=true" bypasses the cache lookup.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := pipeline.ParseRequirement(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	res, err := s.runner.Execute(r.Context(), req, pipeline.Options{
		Config:    s.config,
		Formats:   []string{format},
		ShowReach: true,
		Refresh:   refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.SolveHit {
		cacheState = "hit"
	}
	w.Header().Set(HeaderCache, cacheState)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

type validateResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
	solver.Report
}

// handleValidate runs the acceptance checks on a posted Layout Result.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := workcell.UnmarshalResult(data)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "layout result"))
		return
	}

	rep := s.runner.Validate(r.Context(), res, s.config)
	writeJSON(w, http.StatusOK, validateResponse{OK: rep.OK(), Status: rep.Status(), Report: rep})
}

type compareRequest struct {
	Candidate         *workcell.Result `json:"candidate"`
	Reference         *workcell.Result `json:"reference"`
	PositionTolerance *float64         `json:"position_tolerance_m,omitempty"`
	MotionTolerance   *float64         `json:"motion_tolerance_m,omitempty"`
	MinMatchFraction  *float64         `json:"min_match_fraction,omitempty"`
}

func (c compareRequest) options() solver.CompareOptions {
	opts := solver.DefaultCompareOptions()
	if c.PositionTolerance != nil {
		opts.PositionTolerance = *c.PositionTolerance
	}
	if c.MotionTolerance != nil {
		opts.MotionTolerance = *c.MotionTolerance
	}
	if c.MinMatchFraction != nil {
		opts.MinMatchFraction = *c.MinMatchFraction
	}
	return opts
}

type compareResponse struct {
	Summary string `json:"summary"`
	solver.Comparison
}

// handleCompare compares a candidate layout against a reference layout.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body compareRequest
	if err := json.Unmarshal(data, &body); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "compare request"))
		return
	}
	if body.Candidate == nil || body.Reference == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "both candidate and reference are required"))
		return
	}

	cmp := solver.Compare(*body.Candidate, *body.Reference, body.options())
	s.logger.Debug("compared layouts", "pass", cmp.Pass, "matched", cmp.Matched, "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, compareResponse{Summary: cmp.Summary(), Comparison: cmp})
}
