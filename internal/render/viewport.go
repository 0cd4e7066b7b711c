package render

import "collisions/internal/vector"

// Viewport is a pixel rectangle with its origin at the top-left of the window.
type Viewport struct {
	Left, Top     int
	Width, Height int
}

// ComputeViewport returns the largest square that fits a width×height window, centered on
// the longer axis, so the [-1,1]² scene keeps its aspect ratio.
func ComputeViewport(width, height int) Viewport {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	v := Viewport{Width: width, Height: height}
	if width > height {
		v.Left = (width - height) / 2
		v.Width = height
	} else if width < height {
		v.Top = (height - width) / 2
		v.Height = width
	}
	return v
}

// ToScreen maps a point in normalized device coordinates (y up) to window pixels (y down).
func (v Viewport) ToScreen(p vector.Vec2) (x, y float32) {
	x = float32(v.Left) + (p.X+1)*0.5*float32(v.Width)
	y = float32(v.Top) + (1-p.Y)*0.5*float32(v.Height)
	return x, y
}

// Scale converts a length in normalized units to pixels along the horizontal axis.
func (v Viewport) Scale(length float32) float32 {
	return length * 0.5 * float32(v.Width)
}

// Empty reports whether nothing can be drawn into the viewport.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}
