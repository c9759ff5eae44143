// Package geom provides the planar predicates used to lay out a workcell.
//
// Everything here is a pure function over float64 inputs. Callers are
// responsible for rejecting NaN or negative sizes before they reach this
// package; the predicates do not check for them.
//
// Boxes are axis-aligned and described by their center and full size, which
// matches how components are dimensioned in requirement records ([L, W, H]).
package geom

import "math"

// Vec2 is a point on the floor (X-Y) plane.
type Vec2 struct {
	X, Y float64
}

// Box is an axis-aligned rectangle on the floor plane.
// Center is the footprint center; Size holds the full extents (length along X,
// width along Y).
type Box struct {
	Center Vec2
	Size   Vec2
}

// NewBox creates a box centered at (x, y) with the given extents.
func NewBox(x, y, length, width float64) Box {
	return Box{Center: Vec2{X: x, Y: y}, Size: Vec2{X: length, Y: width}}
}

// Left returns the minimum X coordinate of the box.
func (b Box) Left() float64 { return b.Center.X - b.Size.X/2 }

// Right returns the maximum X coordinate of the box.
func (b Box) Right() float64 { return b.Center.X + b.Size.X/2 }

// Bottom returns the minimum Y coordinate of the box.
func (b Box) Bottom() float64 { return b.Center.Y - b.Size.Y/2 }

// Top returns the maximum Y coordinate of the box.
func (b Box) Top() float64 { return b.Center.Y + b.Size.Y/2 }

// Expand returns b grown by margin on every side.
func (b Box) Expand(margin float64) Box {
	return Box{
		Center: b.Center,
		Size:   Vec2{X: b.Size.X + 2*margin, Y: b.Size.Y + 2*margin},
	}
}

// Overlap2D reports whether a and b intersect once each has been expanded by
// clearance on every side. Touching edges do not count as overlap.
//
// Bounds are rounded to 4 decimals before comparison so that positions reached
// by repeated stepping compare the same way as the literal values would.
// Overlap2D is commutative in a and b.
func Overlap2D(a, b Box, clearance float64) bool {
	ea, eb := a.Expand(clearance), b.Expand(clearance)
	return intersects(ea.Left(), ea.Right(), eb.Left(), eb.Right()) &&
		intersects(ea.Bottom(), ea.Top(), eb.Bottom(), eb.Top())
}

func intersects(min1, max1, min2, max2 float64) bool {
	min1, max1 = Round(min1, 4), Round(max1, 4)
	min2, max2 = Round(min2, 4), Round(max2, 4)
	return !(max1 <= min2 || max2 <= min1)
}

// Distance2D returns the Euclidean distance between p and q.
func Distance2D(p, q Vec2) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// WithinRadialBand reports whether p lies in the annulus around origin with
// inner radius minR and outer radius maxR, both inclusive.
func WithinRadialBand(p, origin Vec2, minR, maxR float64) bool {
	d := Round(Distance2D(p, origin), 6)
	return d >= Round(minR, 6) && d <= Round(maxR, 6)
}

// NearestInset returns the point of b's footprint, shrunk by inset on every
// side, that is closest to target. On an axis where the shrunk interval is
// empty (inset larger than half the extent) the box center is used.
//
// This is where a gripper works on a surface: as close to the robot as
// possible while keeping an object of half-footprint inset fully supported.
func NearestInset(b Box, target Vec2, inset Vec2) Vec2 {
	return Vec2{
		X: clampInset(b.Center.X, b.Size.X/2, inset.X, target.X),
		Y: clampInset(b.Center.Y, b.Size.Y/2, inset.Y, target.Y),
	}
}

func clampInset(center, half, inset, target float64) float64 {
	lo, hi := center-half+inset, center+half-inset
	if lo > hi {
		return center
	}
	return math.Max(lo, math.Min(target, hi))
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // normalize -0
	}
	return r
}
