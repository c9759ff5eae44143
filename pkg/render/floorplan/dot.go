package floorplan

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/workcell/pkg/workcell"
)

// DefaultScale is the drawing scale in inches per meter.
const DefaultScale = 2.0

// Options configures floor plan rendering.
type Options struct {
	// Scale is the drawing scale in inches per meter. Zero means DefaultScale.
	Scale float64

	// ShowReach draws the robot's outer reach circle.
	ShowReach bool

	// Title is drawn above the plan when set.
	Title string
}

var fills = map[workcell.Kind]string{
	workcell.KindPedestal: "#9aa5b1",
	workcell.KindConveyor: "#f4c26b",
	workcell.KindPallet:   "#c8a27a",
	workcell.KindObject:   "#7fb77e",
}

// ToDOT converts a layout to Graphviz DOT with every node pinned at its
// scaled floor position. Components without a valid position are skipped.
func ToDOT(res workcell.Result, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	pos := func(v workcell.Vec3) string {
		return fmt.Sprintf("%.3f,%.3f!", v.X()*scale, v.Y()*scale)
	}

	var buf bytes.Buffer
	buf.WriteString("graph floorplan {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=nodesfirst;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%s;\n  labelloc=t;\n", quote(opts.Title))
	}
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, fontsize=10, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	robot := res.Coordinates.RobotPos
	if opts.ShowReach && robot.Valid() && res.Quality.ReachMax > 0 {
		d := 2 * res.Quality.ReachMax * scale
		fmt.Fprintf(&buf, "  reach [shape=circle, style=dashed, label=\"\", width=%.3f, height=%.3f, pos=%q, color=\"#5b8def\"];\n",
			d, d, pos(robot))
	}

	for _, c := range res.Components {
		if !c.Position.Valid() || !c.Dimensions.Valid() {
			continue
		}
		label := c.Name
		if c.Degraded {
			label += "\\n(out of reach)"
		}
		attrs := fmt.Sprintf("label=%s, width=%.3f, height=%.3f, pos=%q, fillcolor=%q",
			quote(label), c.Dimensions.X()*scale, c.Dimensions.Y()*scale, pos(c.Position), fills[c.Kind])
		if c.Kind == workcell.KindObject {
			attrs += ", fontsize=8"
		}
		if c.Degraded {
			attrs += ", color=red, penwidth=2"
		}
		if c.Synthesized {
			attrs += ", style=\"filled,dashed\""
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(c), attrs)
	}

	buf.WriteString("\n")
	markers := []struct {
		id, label, color string
		at               workcell.Vec3
	}{
		{"robot", "robot", "#1f2933", robot},
		{"pick", "pick", "#2e7d32", res.MotionTargets.PickTarget},
		{"place", "place", "#c62828", res.MotionTargets.PlaceTarget},
	}
	for _, m := range markers {
		if !m.at.Valid() {
			continue
		}
		fmt.Fprintf(&buf, "  %s [shape=point, width=0.08, color=%q, xlabel=%q, pos=%q];\n", m.id, m.color, m.label, pos(m.at))
	}
	if robot.Valid() {
		for _, m := range markers[1:] {
			if m.at.Valid() {
				fmt.Fprintf(&buf, "  robot -- %s [style=dashed, color=%q];\n", m.id, m.color)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// quote wraps s as a DOT string. Unlike %q it leaves \n escapes intact.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func nodeID(c workcell.PlacedComponent) string {
	if c.Kind != "" {
		return "c_" + string(c.Kind)
	}
	return "c_" + c.Name
}

// RenderSVG renders floor plan DOT to SVG using the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
