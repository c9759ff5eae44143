package solver

import (
	"fmt"
	"strings"

	"github.com/matzehuels/workcell/pkg/geom"
	"github.com/matzehuels/workcell/pkg/workcell"
)

// CompareOptions sets the tolerances used by [Compare].
type CompareOptions struct {
	PositionTolerance float64 // max component position error, meters
	MotionTolerance   float64 // max pick/place target error, meters
	MinMatchFraction  float64 // share of reference components that must match
}

// DefaultCompareOptions returns the tolerances used when none are given.
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{PositionTolerance: 0.5, MotionTolerance: 0.5, MinMatchFraction: 0.5}
}

// ComponentMatch is the comparison outcome for one reference component.
type ComponentMatch struct {
	Reference       string   `json:"reference"`
	Matched         bool     `json:"matched"`
	Error           *float64 `json:"error_m"`
	WithinTolerance bool     `json:"within_tolerance"`
}

// Comparison is the outcome of comparing a candidate layout to a reference.
type Comparison struct {
	Pass            bool             `json:"pass"`
	Matched         int              `json:"matched_components"`
	WithinTolerance int              `json:"components_within_tolerance"`
	ReferenceCount  int              `json:"reference_component_count"`
	MatchFraction   float64          `json:"match_fraction"`
	PickError       *float64         `json:"pick_error_m"`
	PlaceError      *float64         `json:"place_error_m"`
	Components      []ComponentMatch `json:"components"`
	Reasons         []string         `json:"reasons,omitempty"`
}

// Summary returns a one-line description of the comparison.
func (c Comparison) Summary() string {
	if c.Pass {
		return fmt.Sprintf("PASS: %d/%d components within tolerance", c.WithinTolerance, c.ReferenceCount)
	}
	return "FAIL: " + strings.Join(c.Reasons, "; ")
}

// Compare checks a candidate layout against a reference layout. Reference
// components are matched to candidate components by name, then by
// component_type. The candidate passes when enough components land within
// PositionTolerance and both motion targets are within MotionTolerance.
func Compare(candidate, reference workcell.Result, opts CompareOptions) Comparison {
	cmp := Comparison{ReferenceCount: len(reference.Components)}

	if len(candidate.Components) == 0 {
		cmp.Reasons = append(cmp.Reasons, "candidate has no components")
		return cmp
	}

	byName := make(map[string]workcell.PlacedComponent)
	byType := make(map[string]workcell.PlacedComponent)
	for _, c := range candidate.Components {
		if n := normalize(c.Name); n != "" {
			if _, ok := byName[n]; !ok {
				byName[n] = c
			}
		}
		if t := normalize(c.ComponentType); t != "" {
			if _, ok := byType[t]; !ok {
				byType[t] = c
			}
		}
	}

	for _, ref := range reference.Components {
		if !ref.Position.Valid() {
			continue
		}
		m := ComponentMatch{Reference: ref.Name}
		got, ok := byName[normalize(ref.Name)]
		if !ok {
			got, ok = byType[normalize(ref.ComponentType)]
		}
		if ok {
			m.Matched = true
			cmp.Matched++
			if got.Position.Valid() {
				e := geom.Round(got.Position.Distance(ref.Position), coordPlaces)
				m.Error = &e
				m.WithinTolerance = got.Position.Distance(ref.Position) <= opts.PositionTolerance
			}
		}
		if m.WithinTolerance {
			cmp.WithinTolerance++
		}
		cmp.Components = append(cmp.Components, m)
	}

	n := max(cmp.ReferenceCount, 1)
	cmp.MatchFraction = geom.Round(float64(cmp.WithinTolerance)/float64(n), coordPlaces)
	layoutOK := cmp.MatchFraction >= opts.MinMatchFraction
	if !layoutOK {
		cmp.Reasons = append(cmp.Reasons, fmt.Sprintf("only %d/%d components within %.3g m (need %.0f%%)",
			cmp.WithinTolerance, n, opts.PositionTolerance, opts.MinMatchFraction*100))
	}

	pickOK := compareTarget("pick", candidate.MotionTargets.PickTarget, reference.MotionTargets.PickTarget, opts, &cmp.PickError, &cmp.Reasons)
	placeOK := compareTarget("place", candidate.MotionTargets.PlaceTarget, reference.MotionTargets.PlaceTarget, opts, &cmp.PlaceError, &cmp.Reasons)

	cmp.Pass = layoutOK && pickOK && placeOK
	return cmp
}

func compareTarget(label string, got, want workcell.Vec3, opts CompareOptions, errOut **float64, reasons *[]string) bool {
	if !got.Valid() {
		*reasons = append(*reasons, fmt.Sprintf("candidate missing %s target", label))
		return false
	}
	if !want.Valid() {
		*reasons = append(*reasons, fmt.Sprintf("reference missing %s target", label))
		return false
	}
	d := got.Distance(want)
	e := geom.Round(d, coordPlaces)
	*errOut = &e
	if d > opts.MotionTolerance {
		*reasons = append(*reasons, fmt.Sprintf("%s target error %.3f m > %.3g m", label, e, opts.MotionTolerance))
		return false
	}
	return true
}
