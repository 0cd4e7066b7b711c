package graphics

import (
	"context"
	"errors"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"collisions/internal/driver"
	"collisions/internal/render"
	"collisions/internal/vector"
)

// pollSlice caps how long Wait sleeps between input polls, so typing and the close button
// stay responsive at any tick interval.
const pollSlice = 4 * time.Millisecond

// Overlay is drawn over every frame and sees input after every event poll.
type Overlay interface {
	Update()
	Draw()
}

// Options configures the window.
type Options struct {
	Title         string
	Width, Height int
	// Overlays are drawn in order after the scene, before the frame is presented.
	Overlays []Overlay
}

// Window is a resizable raylib window. It is both the driver's event source and its renderer.
// All methods must be called from the goroutine that opened it.
type Window struct {
	overlays []Overlay
	viewport render.Viewport
	width    int
	height   int
	closed   bool
	drawing  bool

	points []rl.Vector2 // triangle fan scratch: center, ring..., first ring point
}

// Open creates the window. Escape does not close it; the close button does.
func Open(opts Options) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("open window: invalid size %dx%d", opts.Width, opts.Height)
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if !rl.IsWindowReady() {
		return nil, errors.New("open window: raylib could not create a window")
	}
	rl.SetExitKey(rl.KeyNull)

	return &Window{
		overlays: opts.Overlays,
		width:    rl.GetScreenWidth(),
		height:   rl.GetScreenHeight(),
	}, nil
}

// AddOverlay appends o to the overlays drawn on every frame.
func (w *Window) AddOverlay(o Overlay) {
	w.overlays = append(w.overlays, o)
}

// Close destroys the window. Further frames fail.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	rl.CloseWindow()
}

// Size returns the current drawable size in pixels.
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// Wait polls input until deadline and reports a tick, or returns early on a size change or a
// close request. Overlays get their Update call after every poll.
func (w *Window) Wait(ctx context.Context, deadline time.Time) driver.Event {
	for {
		if w.closed || ctx.Err() != nil || rl.WindowShouldClose() {
			return driver.Event{Kind: driver.EventClose}
		}
		if width, height := rl.GetScreenWidth(), rl.GetScreenHeight(); width != w.width || height != w.height {
			w.width, w.height = width, height
			return driver.Event{Kind: driver.EventResize, Width: width, Height: height}
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return driver.Event{Kind: driver.EventTick}
		}
		rl.WaitTime(min(remaining, pollSlice).Seconds())
		rl.PollInputEvents()
		w.updateOverlays()
	}
}

func (w *Window) updateOverlays() {
	for _, o := range w.overlays {
		o.Update()
	}
}

// SetViewport sets the square the scene is drawn into.
func (w *Window) SetViewport(v render.Viewport) {
	w.viewport = v
}

// BeginFrame starts drawing. The returned frame must be finished before the next one begins.
func (w *Window) BeginFrame() (render.Frame, error) {
	if w.closed {
		return nil, errors.New("window closed")
	}
	if w.drawing {
		return nil, errors.New("previous frame not finished")
	}
	w.drawing = true
	rl.BeginDrawing()
	return frame{w}, nil
}

type frame struct {
	w *Window
}

func (f frame) Clear(c render.Color) {
	rl.ClearBackground(toRL(c))
}

// DrawCircle fills the body's outline as a triangle fan around its center.
// The outline runs counter-clockwise in scene space, which stays counter-clockwise on screen.
func (f frame) DrawCircle(c render.Circle) {
	w := f.w
	if len(c.Outline) < 3 {
		x, y := w.viewport.ToScreen(c.Center)
		rl.DrawCircleV(rl.NewVector2(x, y), w.viewport.Scale(c.Radius), toRL(c.Color))
		return
	}
	pts := w.points[:0]
	pts = append(pts, w.screenPoint(c.Center))
	for _, o := range c.Outline {
		pts = append(pts, w.screenPoint(vector.Add(c.Center, o)))
	}
	pts = append(pts, pts[1])
	w.points = pts
	rl.DrawTriangleFan(pts, toRL(c.Color))
}

func (w *Window) screenPoint(p vector.Vec2) rl.Vector2 {
	x, y := w.viewport.ToScreen(p)
	return rl.NewVector2(x, y)
}

// Finish draws the overlays and presents the frame. Presenting also polls input, so overlays
// get an Update afterwards.
func (f frame) Finish() error {
	w := f.w
	if !w.drawing {
		return errors.New("frame already finished")
	}
	for _, o := range w.overlays {
		o.Draw()
	}
	rl.EndDrawing()
	w.drawing = false
	w.updateOverlays()
	return nil
}

func toRL(c render.Color) rl.Color {
	r, g, b := c.RGB8()
	return rl.NewColor(r, g, b, 255)
}
