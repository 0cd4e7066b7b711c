package render

import (
	"testing"

	"collisions/internal/vector"
)

func TestComputeViewport(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          Viewport
	}{
		{"square", 625, 625, Viewport{Left: 0, Top: 0, Width: 625, Height: 625}},
		{"wide", 800, 600, Viewport{Left: 100, Top: 0, Width: 600, Height: 600}},
		{"tall", 400, 700, Viewport{Left: 0, Top: 150, Width: 400, Height: 400}},
		{"odd slack", 801, 600, Viewport{Left: 100, Top: 0, Width: 600, Height: 600}},
		{"minimized", 0, 0, Viewport{}},
		{"negative", -5, 10, Viewport{Left: 0, Top: 5, Width: 0, Height: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeViewport(tt.width, tt.height); got != tt.want {
				t.Fatalf("ComputeViewport(%d, %d) = %+v, want %+v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestToScreen(t *testing.T) {
	v := Viewport{Left: 100, Top: 0, Width: 600, Height: 600}
	tests := []struct {
		p    vector.Vec2
		x, y float32
	}{
		{vector.New(-1, 1), 100, 0},
		{vector.New(1, -1), 700, 600},
		{vector.New(0, 0), 400, 300},
		{vector.New(0.5, 0.5), 550, 150},
	}
	for _, tt := range tests {
		x, y := v.ToScreen(tt.p)
		if x != tt.x || y != tt.y {
			t.Errorf("ToScreen(%v) = (%v, %v), want (%v, %v)", tt.p, x, y, tt.x, tt.y)
		}
	}
	if got := v.Scale(0.1); got < 29.99 || got > 30.01 {
		t.Errorf("Scale(0.1) = %v, want 30", got)
	}
}

func TestColorRGB8(t *testing.T) {
	r, g, b := Color{R: 0, G: 0.5, B: 1.2}.RGB8()
	if r != 0 || g != 128 || b != 255 {
		t.Fatalf("RGB8 = (%d, %d, %d), want (0, 128, 255)", r, g, b)
	}
}
