package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/workcell/pkg/workcell"
)

func testLayout() workcell.Result {
	return workcell.Result{
		Status: workcell.StatusSuccess,
		Components: []workcell.PlacedComponent{
			{Name: "pedestal", Kind: workcell.KindPedestal, Position: workcell.V3(0, 0, 0), Dimensions: workcell.V3(0.6, 0.6, 0.5)},
			{Name: "conveyor", Kind: workcell.KindConveyor, Position: workcell.V3(1.5, 0, 0), Dimensions: workcell.V3(2, 0.64, 0.82)},
		},
		MotionTargets: workcell.MotionTargets{
			RobotPos:   workcell.V3(0, 0, 0.5),
			PickTarget: workcell.V3(0.65, 0, 1.13),
		},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInspectModelNavigation(t *testing.T) {
	var m tea.Model = NewInspectModel(testLayout())

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j")) // clamped at the last row
	if got := m.(InspectModel).Cursor; got != 1 {
		t.Errorf("Cursor = %d, want 1", got)
	}
	m, _ = m.Update(key("k"))
	if got := m.(InspectModel).Cursor; got != 0 {
		t.Errorf("Cursor = %d, want 0", got)
	}

	m, _ = m.Update(key("s"))
	if m.(InspectModel).ShowSketch {
		t.Error("s should hide the sketch")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestSketchMarks(t *testing.T) {
	out := sketch(testLayout(), 0)
	for _, mark := range []string{"R", "P", "c", "p"} {
		if !strings.Contains(out, mark) {
			t.Errorf("sketch missing %q", mark)
		}
	}
	if got := strings.Count(out, "\n"); got != sketchHeight-1 {
		t.Errorf("sketch has %d lines, want %d", got+1, sketchHeight)
	}

	if got := sketch(workcell.Result{}, 0); !strings.Contains(got, "nothing to draw") {
		t.Errorf("empty sketch = %q", got)
	}
}
