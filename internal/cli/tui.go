package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/workcell/pkg/workcell"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// Floor sketch size in terminal cells.
const (
	sketchWidth  = 48
	sketchHeight = 16
)

// =============================================================================
// InspectModel - Interactive layout browser
// =============================================================================

// InspectModel is the bubbletea model behind "workcell inspect".
type InspectModel struct {
	Result     workcell.Result
	Cursor     int
	ShowSketch bool
	Width      int
}

// NewInspectModel creates an inspector for res.
func NewInspectModel(res workcell.Result) InspectModel {
	return InspectModel{Result: res, ShowSketch: true, Width: 100}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Result.Components)-1 {
				m.Cursor++
			}
		case "s":
			m.ShowSketch = !m.ShowSketch
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder
	res := m.Result

	status := StyleSuccess.Render(res.Status)
	if !res.OK() {
		status = StyleWarning.Render(res.Status)
	}
	b.WriteString(StyleTitle.Render("Workcell Layout") + "  " + status)
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  s toggle sketch  q quit"))
	b.WriteString("\n\n")

	b.WriteString(componentTable(res, m.Cursor))
	b.WriteString("\n")

	panels := []string{panelStyle.Render(m.detail())}
	if m.ShowSketch {
		panels = append(panels, panelStyle.Render(sketch(res, m.Cursor)))
	}
	if m.Width > 0 && m.Width < 90 {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, panels...))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	}
	b.WriteString("\n")
	return b.String()
}

// detail renders the selected component plus the layout-wide targets.
func (m InspectModel) detail() string {
	res := m.Result
	var lines []string
	if m.Cursor < len(res.Components) {
		c := res.Components[m.Cursor]
		lines = append(lines,
			listSelectedStyle.Render(c.Name),
			fmt.Sprintf("type         %s", c.ComponentType),
			fmt.Sprintf("position     %s", formatVec(c.Position)),
			fmt.Sprintf("orientation  %s", formatVec(c.Orientation)),
			fmt.Sprintf("dimensions   %s", formatVec(c.Dimensions)),
		)
		if c.Position.Valid() && c.Dimensions.Valid() {
			lines = append(lines, fmt.Sprintf("top surface  %.3f m", c.Position.Z()+c.Dimensions.Z()))
		}
		if c.Degraded {
			lines = append(lines, StyleWarning.Render("outside reach envelope"))
		}
		lines = append(lines, "")
	}

	mt := res.MotionTargets
	q := res.Quality
	lines = append(lines,
		StyleTitle.Render("Targets"),
		fmt.Sprintf("robot        %s", formatVec(mt.RobotPos)),
		fmt.Sprintf("pick         %s", formatVec(mt.PickTarget)),
		fmt.Sprintf("place        %s", formatVec(mt.PlaceTarget)),
		fmt.Sprintf("spawn        %s", formatVec(mt.BoxSpawnPos)),
		"",
		StyleTitle.Render("Quality"),
		fmt.Sprintf("reach        %.3f – %.3f m", q.ReachMin, q.ReachMax),
		fmt.Sprintf("separation   %.3f m", q.PickPlaceHorizontal),
		fmt.Sprintf("confidence   %.3f", q.Confidence),
	)
	for _, v := range res.Violations {
		lines = append(lines, styleIconError.Render(iconError)+" "+v)
	}
	return strings.Join(lines, "\n")
}

// sketch draws component footprints on a character grid, north up. The
// selected component is drawn in the highlight color; R, P and L mark the
// robot base, pick target and place target.
func sketch(res workcell.Result, selected int) string {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range res.Components {
		if !c.Position.Valid() || !c.Dimensions.Valid() {
			continue
		}
		hx, hy := c.Dimensions.X()/2, c.Dimensions.Y()/2
		minX, maxX = math.Min(minX, c.Position.X()-hx), math.Max(maxX, c.Position.X()+hx)
		minY, maxY = math.Min(minY, c.Position.Y()-hy), math.Max(maxY, c.Position.Y()+hy)
	}
	if math.IsInf(minX, 0) {
		return listDimStyle.Render("nothing to draw")
	}

	// One cell is twice as tall as it is wide.
	sx := float64(sketchWidth-1) / math.Max(maxX-minX, 1e-9)
	sy := float64(sketchHeight-1) / math.Max(maxY-minY, 1e-9)
	s := math.Min(sx, 2*sy)
	col := func(x float64) int { return clamp(int(math.Round((x-minX)*s)), 0, sketchWidth-1) }
	row := func(y float64) int {
		return clamp(sketchHeight-1-int(math.Round((y-minY)*s/2)), 0, sketchHeight-1)
	}

	grid := make([][]rune, sketchHeight)
	owner := make([][]int, sketchHeight)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", sketchWidth))
		owner[r] = make([]int, sketchWidth)
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}

	for i, c := range res.Components {
		if !c.Position.Valid() || !c.Dimensions.Valid() {
			continue
		}
		hx, hy := c.Dimensions.X()/2, c.Dimensions.Y()/2
		mark := []rune(strings.ToLower(c.Name + "?"))[0]
		for r := row(c.Position.Y() + hy); r <= row(c.Position.Y()-hy); r++ {
			for k := col(c.Position.X() - hx); k <= col(c.Position.X()+hx); k++ {
				grid[r][k] = mark
				owner[r][k] = i
			}
		}
	}

	for _, m := range []struct {
		at   workcell.Vec3
		mark rune
	}{
		{res.MotionTargets.RobotPos, 'R'},
		{res.MotionTargets.PickTarget, 'P'},
		{res.MotionTargets.PlaceTarget, 'L'},
	} {
		if m.at.Valid() {
			r, k := row(m.at.Y()), col(m.at.X())
			grid[r][k] = m.mark
			owner[r][k] = -2
		}
	}

	var b strings.Builder
	for r := range grid {
		for k, ch := range grid[r] {
			switch owner[r][k] {
			case -2:
				b.WriteString(StyleHighlight.Bold(true).Render(string(ch)))
			case selected:
				b.WriteString(listSelectedStyle.Render(string(ch)))
			default:
				b.WriteString(listDimStyle.Render(string(ch)))
			}
		}
		if r < len(grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
