// Package floorplan renders a solved workcell as a top-down floor plan.
//
// # Overview
//
// Each placed component becomes a fixed-size box at its floor position, drawn
// to scale. The robot base, the pick and place targets, and (optionally) the
// robot's reach envelope are overlaid, so a reviewer can see at a glance
// whether the surfaces sit where the gripper can work on them.
//
// # Usage
//
// Convert a layout to DOT, then render to SVG:
//
//	dot := floorplan.ToDOT(res, floorplan.Options{ShowReach: true})
//	svg, err := floorplan.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The DOT source pins every node with pos="x,y!" and is laid out with neato,
// so Graphviz only draws and never moves anything. It can also be fed to the
// graphviz command-line tools directly:
//
//	neato -n -Tpng plan.dot -o plan.png
package floorplan
