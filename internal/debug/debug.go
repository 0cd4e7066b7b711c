package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 18
	padding    = 10
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Source returns one overlay line, e.g. the simulation or loop counters.
type Source func() string

// Debug draws the FPS counter and statistics lines at the top-right of the window.
// F2 toggles the FPS counter, F3 the statistics.
type Debug struct {
	ShowFPS   bool
	ShowStats bool
	sources   []Source
	font      rl.Font // optional; when set, Draw uses DrawTextEx instead of the default font

	frameCount uint32
	fpsText    string
	statLines  []string
}

// New returns a Debug overlay reading its statistics lines from sources, all overlays hidden.
func New(sources ...Source) *Debug {
	return &Debug{sources: sources}
}

// SetFont sets the font used by Draw. Zero texture ID = raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Update toggles the overlays on F2 and F3.
func (d *Debug) Update() {
	if rl.IsKeyPressed(rl.KeyF2) {
		d.ShowFPS = !d.ShowFPS
		d.fpsText = ""
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		d.ShowStats = !d.ShowStats
		d.statLines = d.statLines[:0]
	}
}

// Draw renders the enabled overlays. Call after the scene so they stay on top.
func (d *Debug) Draw() {
	if !d.ShowFPS && !d.ShowStats {
		return
	}
	d.frameCount++
	if d.stale() {
		d.refresh(rl.GetFPS())
	}

	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	if d.ShowFPS {
		d.text(d.fpsText, screenW, y, rl.DarkGreen)
		y += lineHeight
	}
	if d.ShowStats {
		for _, line := range d.statLines {
			d.text(line, screenW, y, rl.DarkGray)
			y += lineHeight
		}
	}
}

// stale reports whether the cached text must be rebuilt this frame.
func (d *Debug) stale() bool {
	if d.frameCount%updateInterval == 0 {
		return true
	}
	if d.ShowFPS && d.fpsText == "" {
		return true
	}
	return d.ShowStats && len(d.statLines) == 0 && len(d.sources) > 0
}

func (d *Debug) refresh(fps int32) {
	d.fpsText = fmt.Sprintf("FPS: %d", fps)
	d.statLines = d.statLines[:0]
	for _, src := range d.sources {
		d.statLines = append(d.statLines, src())
	}
}

// text draws s right-aligned against screenW.
func (d *Debug) text(s string, screenW, y float32, c rl.Color) {
	if d.font.Texture.ID != 0 {
		w := rl.MeasureTextEx(d.font, s, fontSize, 1).X
		rl.DrawTextEx(d.font, s, rl.NewVector2(screenW-w-padding, y), fontSize, 1, c)
		return
	}
	w := float32(rl.MeasureText(s, fontSize))
	rl.DrawText(s, int32(screenW-w-padding), int32(y), fontSize, c)
}
