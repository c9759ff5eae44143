package solver

import (
	"fmt"
	"strings"

	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/workcell"
)

// keywordTable maps each kind to the substrings that identify it, in
// extraction order. Extraction never matches outside this table.
var keywordTable = []struct {
	kind  workcell.Kind
	words []string
}{
	{workcell.KindPedestal, []string{"pedestal", "base", "mount"}},
	{workcell.KindConveyor, []string{"conveyor", "belt"}},
	{workcell.KindPallet, []string{"pallet", "station"}},
	{workcell.KindObject, []string{"box", "carton", "object"}},
}

// ignoredTypes are component types that describe the robot itself. They are
// never claimed as workcell components even when their name contains a
// keyword (a "ur5_base" robot entry is not the pedestal).
var ignoredTypes = []string{"robot", "manipulator", "gripper", "end_effector"}

// Envelope is the robot's usable reach band, in meters from the robot base.
type Envelope struct {
	Min float64
	Max float64
}

// ComponentSet holds exactly one canonical component per kind.
type ComponentSet struct {
	Pedestal *workcell.Component
	Conveyor *workcell.Component
	Pallet   *workcell.Component
	Object   *workcell.Component
}

// Get returns the component of the given kind.
func (s *ComponentSet) Get(kind workcell.Kind) *workcell.Component {
	switch kind {
	case workcell.KindPedestal:
		return s.Pedestal
	case workcell.KindConveyor:
		return s.Conveyor
	case workcell.KindPallet:
		return s.Pallet
	case workcell.KindObject:
		return s.Object
	}
	return nil
}

func (s *ComponentSet) set(kind workcell.Kind, c *workcell.Component) {
	switch kind {
	case workcell.KindPedestal:
		s.Pedestal = c
	case workcell.KindConveyor:
		s.Conveyor = c
	case workcell.KindPallet:
		s.Pallet = c
	case workcell.KindObject:
		s.Object = c
	}
}

// All returns the components in output order.
func (s *ComponentSet) All() []*workcell.Component {
	return []*workcell.Component{s.Pedestal, s.Conveyor, s.Pallet, s.Object}
}

// =============================================================================
// Preconditions
// =============================================================================

// CheckRequirement rejects records the solver cannot lay out and returns the
// robot's reach envelope. A missing min_reach_m falls back to
// cfg.DefaultMinReach, or to zero when that default would not fit under the
// stated reach.
func CheckRequirement(req workcell.Requirement, cfg Config) (Envelope, error) {
	if req.Robot == nil {
		return Envelope{}, errors.New(errors.ErrCodeMissingRobot, "robot_selection is required")
	}

	env := Envelope{Max: req.Robot.ReachM, Min: cfg.DefaultMinReach}
	if req.Robot.MinReachM != nil {
		env.Min = *req.Robot.MinReachM
	} else if env.Min >= env.Max {
		env.Min = 0
	}
	if err := errors.ValidateReach(env.Min, env.Max); err != nil {
		return Envelope{}, err
	}

	for i, spec := range req.Components {
		what := fmt.Sprintf("workcell_components[%d]", i)
		if spec.Name != "" {
			what = fmt.Sprintf("%s (%s)", what, spec.Name)
		}
		if err := errors.ValidateDimensions(what, spec.Dimensions); err != nil {
			return Envelope{}, err
		}
	}

	if task := req.Task; task != nil {
		if len(task.Dimensions) > 0 {
			if err := errors.ValidateDimensions("task_specification", task.Dimensions); err != nil {
				return Envelope{}, err
			}
		}
		if task.WeightKg != nil {
			if err := errors.ValidateNonNegative("task_specification.weight_kg", *task.WeightKg); err != nil {
				return Envelope{}, err
			}
		}
	}
	return env, nil
}

// =============================================================================
// Extraction
// =============================================================================

// Extract classifies the record's components into exactly one component per
// kind. Kinds with no matching entry are synthesized from cfg.Defaults. The
// record must already have passed [CheckRequirement].
//
// Matching runs in two passes per kind. The first pass accepts entries whose
// component_type equals or starts with a keyword. The second accepts entries
// whose component_type or name contains a keyword, skipping entries another
// kind already claimed by type. Within a pass the first entry in input order
// wins.
func Extract(req workcell.Requirement, cfg Config) *ComponentSet {
	specs := req.Components
	claimed := make([]bool, len(specs))
	set := &ComponentSet{}

	for _, row := range keywordTable {
		idx := matchKind(specs, claimed, row.kind)
		if idx >= 0 {
			claimed[idx] = true
			spec := specs[idx]
			set.set(row.kind, &workcell.Component{
				Kind:       row.kind,
				Dimensions: spec.Dimensions.Clone(),
				Source:     spec,
			})
			continue
		}
		if row.kind == workcell.KindObject {
			if task := req.Task; task != nil && len(task.Dimensions) == 3 {
				name := task.Name
				if name == "" {
					name = string(workcell.KindObject)
				}
				set.Object = &workcell.Component{
					Kind:       workcell.KindObject,
					Dimensions: task.Dimensions.Clone(),
					Source:     workcell.ComponentSpec{Name: name, ComponentType: string(workcell.KindObject)},
				}
				continue
			}
		}
		set.set(row.kind, synthesize(row.kind, cfg))
	}
	return set
}

func synthesize(kind workcell.Kind, cfg Config) *workcell.Component {
	return &workcell.Component{
		Kind:       kind,
		Dimensions: cfg.DefaultFor(kind).Clone(),
		Source: workcell.ComponentSpec{
			Name:          "default_" + string(kind),
			ComponentType: string(kind),
		},
		Synthesized: true,
	}
}

// matchKind returns the index of the entry matched for kind, or -1.
func matchKind(specs []workcell.ComponentSpec, claimed []bool, kind workcell.Kind) int {
	for i, spec := range specs {
		if claimed[i] || ignored(spec) {
			continue
		}
		if k, ok := typeKind(spec); ok && k == kind {
			return i
		}
	}
	for i, spec := range specs {
		if claimed[i] || ignored(spec) {
			continue
		}
		if k, ok := typeKind(spec); ok && k != kind {
			continue
		}
		typ, name := normalize(spec.ComponentType), normalize(spec.Name)
		for _, w := range keywordsFor(kind) {
			if strings.Contains(typ, w) || strings.Contains(name, w) {
				return i
			}
		}
	}
	return -1
}

// typeKind returns the kind whose keyword the entry's type equals or starts
// with. The first kind in table order wins.
func typeKind(spec workcell.ComponentSpec) (workcell.Kind, bool) {
	typ := normalize(spec.ComponentType)
	if typ == "" {
		return "", false
	}
	for _, row := range keywordTable {
		for _, w := range row.words {
			if strings.HasPrefix(typ, w) {
				return row.kind, true
			}
		}
	}
	return "", false
}

func ignored(spec workcell.ComponentSpec) bool {
	typ := normalize(spec.ComponentType)
	for _, t := range ignoredTypes {
		if strings.HasPrefix(typ, t) {
			return true
		}
	}
	return false
}

func keywordsFor(kind workcell.Kind) []string {
	for _, row := range keywordTable {
		if row.kind == kind {
			return row.words
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
