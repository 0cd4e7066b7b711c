package render

import "collisions/internal/vector"

// Color is an RGB color with channels in [0,1].
type Color struct {
	R, G, B float32
}

// RGB8 returns the channels scaled to 0..255, clamped.
func (c Color) RGB8() (r, g, b uint8) {
	return channel8(c.R), channel8(c.G), channel8(c.B)
}

func channel8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Circle is one body as the renderer sees it: a filled disk with a boundary ring.
// Outline holds ring points relative to Center, in normalized device coordinates.
type Circle struct {
	Center  vector.Vec2
	Radius  float32
	Outline []vector.Vec2
	Color   Color
}

// Renderer draws frames into a viewport. Implementations own the window or terminal.
type Renderer interface {
	// SetViewport sets the pixel rectangle that the normalized [-1,1]² square maps to.
	SetViewport(v Viewport)
	// BeginFrame acquires the drawing target for one frame. Finish must be called on the
	// returned Frame whatever happens while drawing.
	BeginFrame() (Frame, error)
}

// Frame is the drawing target of a single frame.
type Frame interface {
	Clear(c Color)
	DrawCircle(c Circle)
	// Finish flushes and releases the frame.
	Finish() error
}
