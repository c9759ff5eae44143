package solver

import (
	"fmt"

	"github.com/matzehuels/workcell/pkg/geom"
	"github.com/matzehuels/workcell/pkg/workcell"
)

// Rule names one acceptance check.
type Rule string

// Acceptance checks in evaluation order.
const (
	RulePositions  Rule = "positions"
	RuleTargets    Rule = "targets"
	RuleSpread     Rule = "spread"
	RuleSeparation Rule = "separation"
	RulePickHeight Rule = "pick_height"
)

// Violation is one failed acceptance check.
type Violation struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Report is the outcome of validating a Layout Result.
type Report struct {
	Violations []Violation `json:"violations,omitempty"`
	Separation float64     `json:"separation_m"`
	PickHeight float64     `json:"pick_height_m"`
}

// OK reports whether every check passed.
func (r Report) OK() bool { return len(r.Violations) == 0 }

// Status returns "success" or the message of the first failed check.
func (r Report) Status() string {
	if r.OK() {
		return workcell.StatusSuccess
	}
	return r.Violations[0].Message
}

// Apply writes the report's status and violation messages into res.
func (r Report) Apply(res *workcell.Result) {
	res.Status = r.Status()
	res.Violations = nil
	for _, v := range r.Violations {
		res.Violations = append(res.Violations, v.Message)
	}
}

// Validate runs the acceptance checks against a Layout Result. It works on any
// result, including ones read back from disk, and never modifies res.
func Validate(res workcell.Result, cfg Config) Report {
	var rep Report
	fail := func(rule Rule, format string, args ...any) {
		rep.Violations = append(rep.Violations, Violation{Rule: rule, Message: fmt.Sprintf(format, args...)})
	}

	positions := len(res.Components) > 0
	if !positions {
		fail(RulePositions, "layout has no components")
	}
	for _, c := range res.Components {
		if !c.Position.Valid() {
			positions = false
			fail(RulePositions, "component %q has no valid [x, y, z] position", c.Name)
		}
	}

	pick, place := res.MotionTargets.PickTarget, res.MotionTargets.PlaceTarget
	targets := pick.Valid() && place.Valid()
	if !targets {
		fail(RuleTargets, "pick and place targets must both be [x, y, z]")
	}

	if positions && allAtOrigin(res.Components) {
		fail(RuleSpread, "all components are at the origin")
	}

	if targets {
		rep.Separation = geom.Round(geom.Distance2D(pick.XY(), place.XY()), coordPlaces)
		rep.PickHeight = pick.Z()
		if rep.Separation < cfg.MinSeparation {
			fail(RuleSeparation, "pick/place separation %.3f m is below the %.3f m minimum", rep.Separation, cfg.MinSeparation)
		}
		if rep.PickHeight < cfg.MinPickHeight {
			fail(RulePickHeight, "pick target height %.3f m is below the %.3f m minimum", rep.PickHeight, cfg.MinPickHeight)
		}
	}
	return rep
}

func allAtOrigin(components []workcell.PlacedComponent) bool {
	for _, c := range components {
		if !c.Position.IsZero() {
			return false
		}
	}
	return true
}
