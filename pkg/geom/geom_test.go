package geom

import (
	"math"
	"testing"
)

func TestBoxEdges(t *testing.T) {
	b := NewBox(1.5, 0, 2.0, 0.64)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"left", b.Left(), 0.5},
		{"right", b.Right(), 2.5},
		{"bottom", b.Bottom(), -0.32},
		{"top", b.Top(), 0.32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestOverlap2D(t *testing.T) {
	pedestal := NewBox(0, 0, 0.6, 0.6)

	tests := []struct {
		name      string
		a, b      Box
		clearance float64
		want      bool
	}{
		{
			name: "identical boxes",
			a:    pedestal,
			b:    pedestal,
			want: true,
		},
		{
			name: "disjoint on x",
			a:    pedestal,
			b:    NewBox(2, 0, 1, 1),
			want: false,
		},
		{
			name: "touching edges do not overlap",
			a:    pedestal,
			b:    NewBox(0.8, 0, 1, 1),
			want: false,
		},
		{
			name:      "clearance closes the gap",
			a:         pedestal,
			b:         NewBox(0.85, 0, 1, 1),
			clearance: 0.1,
			want:      true,
		},
		{
			name:      "clearance exactly satisfied",
			a:         pedestal,
			b:         NewBox(1.5, 0, 2.0, 0.64),
			clearance: 0.1,
			want:      false,
		},
		{
			name:      "one step short of clearance",
			a:         pedestal,
			b:         NewBox(1.45, 0, 2.0, 0.64),
			clearance: 0.1,
			want:      true,
		},
		{
			name: "overlap on x only",
			a:    pedestal,
			b:    NewBox(0, 2, 0.6, 0.6),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap2D(tt.a, tt.b, tt.clearance); got != tt.want {
				t.Errorf("Overlap2D(a, b) = %v, want %v", got, tt.want)
			}
			if got := Overlap2D(tt.b, tt.a, tt.clearance); got != tt.want {
				t.Errorf("Overlap2D(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithinRadialBand(t *testing.T) {
	origin := Vec2{}

	tests := []struct {
		name       string
		p          Vec2
		minR, maxR float64
		want       bool
	}{
		{"inside", Vec2{X: 0.5}, 0.2, 0.85, true},
		{"on outer edge", Vec2{X: 0.85}, 0.2, 0.85, true},
		{"on inner edge", Vec2{Y: 0.2}, 0.2, 0.85, true},
		{"too close", Vec2{X: 0.1}, 0.2, 0.85, false},
		{"too far", Vec2{X: 0.6, Y: 0.65}, 0.2, 0.85, false},
		{"diagonal inside", Vec2{X: 0.5, Y: 0.5}, 0.2, 0.85, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinRadialBand(tt.p, origin, tt.minR, tt.maxR); got != tt.want {
				t.Errorf("WithinRadialBand(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestNearestInset(t *testing.T) {
	tests := []struct {
		name   string
		box    Box
		target Vec2
		inset  Vec2
		want   Vec2
	}{
		{
			name:  "conveyor on +x",
			box:   NewBox(1.5, 0, 2.0, 0.64),
			inset: Vec2{X: 0.15, Y: 0.15},
			want:  Vec2{X: 0.65, Y: 0},
		},
		{
			name:  "pallet on +y",
			box:   NewBox(0, 0.9, 1.2, 0.8),
			inset: Vec2{X: 0.15, Y: 0.15},
			want:  Vec2{X: 0, Y: 0.65},
		},
		{
			name:  "inset wider than surface falls back to center",
			box:   NewBox(1, 0, 0.2, 0.2),
			inset: Vec2{X: 0.15, Y: 0.15},
			want:  Vec2{X: 1, Y: 0},
		},
		{
			name:   "target inside the box",
			box:    NewBox(0, 0, 2, 2),
			target: Vec2{X: 0.3, Y: -0.2},
			inset:  Vec2{X: 0.1, Y: 0.1},
			want:   Vec2{X: 0.3, Y: -0.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NearestInset(tt.box, tt.target, tt.inset)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("NearestInset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRound(t *testing.T) {
	if got := Round(0.1+0.2, 3); got != 0.3 {
		t.Errorf("Round(0.1+0.2, 3) = %v, want 0.3", got)
	}
	if got := Round(-0.0001, 3); math.Signbit(got) {
		t.Errorf("Round(-0.0001, 3) = %v, want +0", got)
	}
}
