package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/workcell/pkg/workcell"
)

func validLayout() workcell.Result {
	return workcell.Result{
		Components: []workcell.PlacedComponent{
			{Name: "pedestal", Kind: workcell.KindPedestal, Position: workcell.V3(0, 0, 0)},
			{Name: "conveyor", Kind: workcell.KindConveyor, Position: workcell.V3(1.5, 0, 0)},
		},
		MotionTargets: workcell.MotionTargets{
			PickTarget:  workcell.V3(0.65, 0, 1.13),
			PlaceTarget: workcell.V3(0, 0.65, 0.46),
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*workcell.Result)
		rules  []Rule
	}{
		{"valid", func(*workcell.Result) {}, nil},
		{"missing position", func(r *workcell.Result) { r.Components[1].Position = nil }, []Rule{RulePositions}},
		{"short position", func(r *workcell.Result) { r.Components[1].Position = workcell.Vec3{1.5, 0} }, []Rule{RulePositions}},
		{"no components", func(r *workcell.Result) { r.Components = nil }, []Rule{RulePositions}},
		{"missing pick", func(r *workcell.Result) { r.MotionTargets.PickTarget = nil }, []Rule{RuleTargets}},
		{"all at origin", func(r *workcell.Result) { r.Components[1].Position = workcell.V3(0, 0, 0) }, []Rule{RuleSpread}},
		{"close targets", func(r *workcell.Result) { r.MotionTargets.PlaceTarget = workcell.V3(0.3, 0.3, 0.46) }, []Rule{RuleSeparation}},
		{"low pick", func(r *workcell.Result) { r.MotionTargets.PickTarget = workcell.V3(0.65, 0, 0.2) }, []Rule{RulePickHeight}},
		{"several", func(r *workcell.Result) {
			r.MotionTargets.PlaceTarget = workcell.V3(0.6, 0.1, 0.46)
			r.MotionTargets.PickTarget = workcell.V3(0.65, 0, 0.1)
		}, []Rule{RuleSeparation, RulePickHeight}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validLayout()
			tt.mutate(&res)
			rep := Validate(res, DefaultConfig())

			var got []Rule
			for _, v := range rep.Violations {
				got = append(got, v.Rule)
			}
			assert.Equal(t, tt.rules, got)
			assert.Equal(t, len(tt.rules) == 0, rep.OK())
		})
	}
}

func TestValidateStatus(t *testing.T) {
	res := validLayout()
	res.MotionTargets.PickTarget = workcell.V3(0.65, 0, 0.1)
	res.MotionTargets.PlaceTarget = workcell.V3(0.6, 0.1, 0.46)

	rep := Validate(res, DefaultConfig())
	rep.Apply(&res)

	require.Len(t, res.Violations, 2)
	assert.Equal(t, res.Violations[0], res.Status)
	assert.Contains(t, res.Status, "separation")
	assert.False(t, res.OK())

	res = validLayout()
	Validate(res, DefaultConfig()).Apply(&res)
	assert.Equal(t, workcell.StatusSuccess, res.Status)
	assert.Nil(t, res.Violations)
}

func TestValidateThresholdsFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSeparation = 2

	rep := Validate(validLayout(), cfg)
	require.Len(t, rep.Violations, 1)
	assert.Equal(t, RuleSeparation, rep.Violations[0].Rule)
	assert.InDelta(t, 0.919, rep.Separation, 1e-9)
}
