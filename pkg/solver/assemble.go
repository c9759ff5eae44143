package solver

import (
	"github.com/matzehuels/workcell/pkg/geom"
	"github.com/matzehuels/workcell/pkg/workcell"
)

// Assemble packages a placed component set into a Layout Result. Status and
// violations are left empty; [Validate] fills them in.
func Assemble(set *ComponentSet, placements []Placement, t Targets, env Envelope) workcell.Result {
	all := set.All()
	degraded := make(map[workcell.Kind]bool, len(placements))
	for _, p := range placements {
		degraded[p.Kind] = p.Degraded
	}

	components := make([]workcell.PlacedComponent, 0, len(all))
	for _, c := range all {
		components = append(components, workcell.PlacedComponent{
			Name:          c.Name(),
			ComponentType: c.TypeTag(),
			Kind:          c.Kind,
			Position:      c.Position.Rounded(coordPlaces),
			Orientation:   c.Orientation.Rounded(coordPlaces),
			Dimensions:    c.Dimensions.Clone(),
			MJCFPath:      c.Source.MJCFPath,
			Synthesized:   c.Synthesized,
			Degraded:      degraded[c.Kind],
		})
	}

	return workcell.Result{
		Components: components,
		Coordinates: workcell.Coordinates{
			PedestalPos: set.Pedestal.Position.Rounded(coordPlaces),
			RobotPos:    t.Robot.Clone(),
			ConveyorPos: set.Conveyor.Position.Rounded(coordPlaces),
			PalletPos:   set.Pallet.Position.Rounded(coordPlaces),
			BoxSpawnPos: t.Spawn.Clone(),
			PickTarget:  t.Pick.Clone(),
			PlaceTarget: t.Place.Clone(),
		},
		MotionTargets: workcell.MotionTargets{
			RobotPos:    t.Robot.Clone(),
			PickTarget:  t.Pick.Clone(),
			PlaceTarget: t.Place.Clone(),
			BoxSpawnPos: t.Spawn.Clone(),
		},
		Quality: quality(placements, t, env),
	}
}

func quality(placements []Placement, t Targets, env Envelope) workcell.Quality {
	q := workcell.Quality{
		PickPlaceDistance:   geom.Round(t.Pick.Distance(t.Place), coordPlaces),
		PickPlaceHorizontal: geom.Round(geom.Distance2D(t.Pick.XY(), t.Place.XY()), coordPlaces),
		ReachMin:            env.Min,
		ReachMax:            env.Max,
	}
	clean := 0
	for _, p := range placements {
		if p.Degraded {
			q.DegradedComponents = append(q.DegradedComponents, string(p.Kind))
			continue
		}
		clean++
	}
	q.Degraded = len(q.DegradedComponents) > 0
	if len(placements) > 0 {
		q.Confidence = geom.Round(float64(clean)/float64(len(placements)), coordPlaces)
	}
	return q
}
