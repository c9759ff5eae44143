package workcell

import (
	"math"
	"strings"

	"github.com/matzehuels/workcell/pkg/geom"
)

// =============================================================================
// Kinds
// =============================================================================

// Kind identifies the role a component plays in the workcell.
type Kind string

// Canonical component kinds. The set is closed.
const (
	KindPedestal Kind = "pedestal"
	KindConveyor Kind = "conveyor"
	KindPallet   Kind = "pallet"
	KindObject   Kind = "object"
)

// Kinds lists every canonical kind in output order.
var Kinds = []Kind{KindPedestal, KindConveyor, KindPallet, KindObject}

// Valid reports whether k is one of the canonical kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPedestal, KindConveyor, KindPallet, KindObject:
		return true
	}
	return false
}

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// =============================================================================
// Vec3
// =============================================================================

// Vec3 is an [x, y, z] triple in meters (positions) or an [L, W, H] triple
// (dimensions). It is a slice so that malformed wire data (missing or short
// arrays) survives decoding and can be rejected explicitly.
type Vec3 []float64

// V3 builds a Vec3 from its components.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Valid reports whether v has exactly three finite entries.
func (v Vec3) Valid() bool {
	if len(v) != 3 {
		return false
	}
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Positive reports whether v is valid and every entry is strictly positive.
func (v Vec3) Positive() bool {
	if !v.Valid() {
		return false
	}
	return v[0] > 0 && v[1] > 0 && v[2] > 0
}

// X returns the first entry, or 0 for a malformed vector.
func (v Vec3) X() float64 { return v.at(0) }

// Y returns the second entry, or 0 for a malformed vector.
func (v Vec3) Y() float64 { return v.at(1) }

// Z returns the third entry, or 0 for a malformed vector.
func (v Vec3) Z() float64 { return v.at(2) }

func (v Vec3) at(i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// XY projects v onto the floor plane.
func (v Vec3) XY() geom.Vec2 { return geom.Vec2{X: v.X(), Y: v.Y()} }

// IsZero reports whether every entry of v is zero.
func (v Vec3) IsZero() bool {
	for _, f := range v {
		if f != 0 {
			return false
		}
	}
	return true
}

// Rounded returns a copy of v with every entry rounded to places decimals.
func (v Vec3) Rounded(places int) Vec3 {
	out := make(Vec3, len(v))
	for i, f := range v {
		out[i] = geom.Round(f, places)
	}
	return out
}

// Clone returns an independent copy of v.
func (v Vec3) Clone() Vec3 {
	if v == nil {
		return nil
	}
	return append(Vec3(nil), v...)
}

// Distance returns the 3D Euclidean distance between v and w.
func (v Vec3) Distance(w Vec3) float64 {
	dx, dy, dz := v.X()-w.X(), v.Y()-w.Y(), v.Z()-w.Z()
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// =============================================================================
// Component - canonical form
// =============================================================================

// Component is the solver's normalized view of one workcell element.
//
// A Component is created once per solve from the requirement record, has its
// pose assigned once by placement, and is discarded after the result has been
// assembled.
type Component struct {
	Kind        Kind
	Dimensions  Vec3
	Position    Vec3 // nil until placed
	Orientation Vec3 // nil until placed
	Source      ComponentSpec
	Synthesized bool // true when built from the default dimension table
}

// Placed reports whether the component has been assigned a pose.
func (c *Component) Placed() bool { return c.Position != nil }

// Place assigns position and orientation.
func (c *Component) Place(position, orientation Vec3) {
	c.Position = position.Clone()
	c.Orientation = orientation.Clone()
}

// Footprint returns the component's floor rectangle at its current position.
// An unplaced component is treated as sitting at the origin.
func (c *Component) Footprint() geom.Box {
	return c.FootprintAt(c.Position.XY())
}

// FootprintAt returns the component's floor rectangle centered at p.
func (c *Component) FootprintAt(p geom.Vec2) geom.Box {
	return geom.NewBox(p.X, p.Y, c.Dimensions.X(), c.Dimensions.Y())
}

// Top returns the height of the component's upper surface.
func (c *Component) Top() float64 {
	return c.Position.Z() + c.Dimensions.Z()
}

// Name returns the source name, falling back to the kind.
func (c *Component) Name() string {
	if c.Source.Name != "" {
		return c.Source.Name
	}
	return string(c.Kind)
}

// TypeTag returns the source component type, falling back to the kind.
func (c *Component) TypeTag() string {
	if t := strings.TrimSpace(c.Source.ComponentType); t != "" {
		return t
	}
	return string(c.Kind)
}
