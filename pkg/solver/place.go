package solver

import (
	"math"

	"github.com/matzehuels/workcell/pkg/geom"
	"github.com/matzehuels/workcell/pkg/workcell"
)

// Placement records how one searched component was placed.
type Placement struct {
	Kind       workcell.Kind
	Axis       geom.Vec2 // unit search direction
	Distance   float64   // accepted radius along Axis
	ReachPoint geom.Vec2 // where the gripper works on the component
	Steps      int       // candidates evaluated
	Degraded   bool      // no candidate satisfied the reach band
}

// searchOrder fixes which component is placed first and along which axis.
// Later components treat earlier ones as obstacles, so the order matters.
var searchOrder = []struct {
	kind workcell.Kind
	axis geom.Vec2
}{
	{workcell.KindConveyor, geom.Vec2{X: 1}},
	{workcell.KindPallet, geom.Vec2{Y: 1}},
}

var origin = geom.Vec2{}

// Place assigns a pose to every component in set. The pedestal goes to the
// origin, the conveyor and pallet are searched outward along their axes, and
// the object is set down on the conveyor at the pick point.
//
// The reach band is tested at each surface's work point (see [DeriveTargets]),
// not at the component center: a long conveyor is accepted when the end
// facing the robot is reachable. Place never relaxes clearance. A component whose reach point cannot be
// brought inside env is placed at the clear spot nearest the robot and
// reported as degraded.
func Place(set *ComponentSet, env Envelope, cfg Config) []Placement {
	zero := workcell.V3(0, 0, 0)

	set.Pedestal.Place(zero, zero)
	obstacles := []*workcell.Component{set.Pedestal}

	inset := objectInset(set.Object)
	placements := make([]Placement, 0, len(searchOrder))
	for _, s := range searchOrder {
		c := set.Get(s.kind)
		p := search(c, s.axis, obstacles, inset, env, cfg)
		c.Place(workcell.V3(s.axis.X*p.Distance, s.axis.Y*p.Distance, 0), zero)
		obstacles = append(obstacles, c)
		placements = append(placements, p)
	}

	pick := workPoint(set.Conveyor, inset)
	set.Object.Place(workcell.V3(pick.X, pick.Y, set.Conveyor.Top()), zero)
	return placements
}

func search(c *workcell.Component, axis geom.Vec2, obstacles []*workcell.Component, inset geom.Vec2, env Envelope, cfg Config) Placement {
	clearAt := clearDistance(c, axis, obstacles, cfg)
	// Past both bounds no candidate can change the outcome.
	bound := max(clearAt, env.Max+halfAlong(c.FootprintAt(origin), axis))
	limit := int(math.Ceil((bound-cfg.SearchStart)/cfg.SearchStep)) + 1

	var fallback *Placement
	for i := 0; i <= limit; i++ {
		r := geom.Round(cfg.SearchStart+float64(i)*cfg.SearchStep, 3)
		box := c.FootprintAt(geom.Vec2{X: axis.X * r, Y: axis.Y * r})
		if collides(c.Kind, box, obstacles, cfg) {
			continue
		}

		reach := workPointOf(c.Kind, box, inset)
		p := Placement{Kind: c.Kind, Axis: axis, Distance: r, ReachPoint: reach, Steps: i + 1}
		if geom.WithinRadialBand(reach, origin, env.Min, env.Max) {
			return p
		}
		if fallback == nil {
			fallback = &p
		}
		if r >= clearAt && geom.Distance2D(reach, origin) > env.Max {
			break
		}
	}

	if fallback == nil {
		// The first step at or past the clear distance is collision-free.
		steps := math.Max(0, math.Ceil((clearAt-cfg.SearchStart)/cfg.SearchStep))
		r := geom.Round(cfg.SearchStart+steps*cfg.SearchStep, 3)
		box := c.FootprintAt(geom.Vec2{X: axis.X * r, Y: axis.Y * r})
		fallback = &Placement{
			Kind:       c.Kind,
			Axis:       axis,
			Distance:   r,
			ReachPoint: workPointOf(c.Kind, box, inset),
			Steps:      limit + 1,
		}
	}
	fallback.Degraded = true
	return *fallback
}

// clearDistance returns the smallest radius along axis at which c cannot
// overlap any obstacle, whatever their extent across the axis.
func clearDistance(c *workcell.Component, axis geom.Vec2, obstacles []*workcell.Component, cfg Config) float64 {
	half := halfAlong(c.FootprintAt(origin), axis)
	var d float64
	for _, o := range obstacles {
		box := o.Footprint()
		far := box.Center.X*axis.X + box.Center.Y*axis.Y + halfAlong(box, axis)
		d = max(d, far+half+2*cfg.PairClearance(c.Kind, o.Kind))
	}
	return d
}

func collides(kind workcell.Kind, box geom.Box, obstacles []*workcell.Component, cfg Config) bool {
	for _, o := range obstacles {
		if geom.Overlap2D(box, o.Footprint(), cfg.PairClearance(kind, o.Kind)) {
			return true
		}
	}
	return false
}

// halfAlong returns the half extent of an axis-aligned box along a unit axis.
func halfAlong(b geom.Box, axis geom.Vec2) float64 {
	return math.Abs(axis.X)*b.Size.X/2 + math.Abs(axis.Y)*b.Size.Y/2
}

// objectInset is the half footprint of the manipulated object. Work points are
// kept this far inside a surface so the object is fully supported.
func objectInset(obj *workcell.Component) geom.Vec2 {
	return geom.Vec2{X: obj.Dimensions.X() / 2, Y: obj.Dimensions.Y() / 2}
}

// workPoint is the point on a placed surface at which the object is picked up
// or set down.
func workPoint(c *workcell.Component, inset geom.Vec2) geom.Vec2 {
	return workPointOf(c.Kind, c.Footprint(), inset)
}

// workPointOf returns the work point for a surface of the given kind occupying
// box. The conveyor is worked at its reachable end, the point of the belt
// nearest the robot that still supports the whole object. The pallet is worked
// at its center pulled toward the robot by half the object footprint.
func workPointOf(kind workcell.Kind, box geom.Box, inset geom.Vec2) geom.Vec2 {
	if kind == workcell.KindPallet {
		return towardRobot(box.Center, inset)
	}
	return geom.NearestInset(box, origin, inset)
}

// towardRobot moves p toward the origin by the object's half extent along that
// direction, stopping at the origin.
func towardRobot(p, inset geom.Vec2) geom.Vec2 {
	d := geom.Distance2D(p, origin)
	if d == 0 {
		return p
	}
	ux, uy := p.X/d, p.Y/d
	off := math.Min(d, math.Abs(ux)*inset.X+math.Abs(uy)*inset.Y)
	return geom.Vec2{X: p.X - ux*off, Y: p.Y - uy*off}
}
