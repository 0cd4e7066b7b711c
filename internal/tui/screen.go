package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"

	"collisions/internal/commands"
	"collisions/internal/driver"
	"collisions/internal/logger"
	"collisions/internal/render"
)

// halfBlock paints the top half of a cell in the foreground color and the bottom half in the
// background color, so every cell holds two vertically stacked pixels.
const halfBlock = '▀'

// Screen runs the simulation in a terminal. Each cell is one pixel wide and two pixels tall,
// which keeps the square viewport roughly square on screen. The last row is a status line.
type Screen struct {
	screen tcell.Screen
	reg    *commands.Registry
	log    *logger.Logger
	status func() string

	events chan tcell.Event
	quit   chan struct{}
	closed bool

	cols, rows int
	viewport   render.Viewport
	pix        []tcell.Color // width × height pixels, row-major
	drawing    bool
}

// Open initializes the controlling terminal.
func Open(reg *commands.Registry, log *logger.Logger) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return New(screen, reg, log)
}

// New takes over screen (initializing it) and starts forwarding its events.
func New(screen tcell.Screen, reg *commands.Registry, log *logger.Logger) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.HideCursor()
	s := &Screen{
		screen: screen,
		reg:    reg,
		log:    log,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
	}
	s.cols, s.rows = screen.Size()
	go s.poll()
	return s, nil
}

// poll forwards terminal events until the screen is finalized.
func (s *Screen) poll() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			close(s.events)
			return
		}
		select {
		case s.events <- ev:
		case <-s.quit:
			return
		}
	}
}

// SetStatus sets the source of the status line. Without one the latest log line is shown.
func (s *Screen) SetStatus(status func() string) {
	s.status = status
}

// Close restores the terminal.
func (s *Screen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.quit)
	s.screen.Fini()
}

// Size returns the drawable size in pixels: one per column, two per row above the status line.
func (s *Screen) Size() (int, int) {
	return pixelSize(s.cols, s.rows)
}

func pixelSize(cols, rows int) (int, int) {
	return max(cols, 0), 2 * max(rows-1, 0)
}

// Wait blocks until deadline, a resize, or a close key. Shortcut keys are run as console
// commands while waiting.
func (s *Screen) Wait(ctx context.Context, deadline time.Time) driver.Event {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return driver.Event{Kind: driver.EventClose}
		case <-timer.C:
			return driver.Event{Kind: driver.EventTick}
		case ev, ok := <-s.events:
			if !ok {
				return driver.Event{Kind: driver.EventClose}
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.cols, s.rows = ev.Size()
				w, h := s.Size()
				return driver.Event{Kind: driver.EventResize, Width: w, Height: h}
			case *tcell.EventKey:
				line, quit := keyCommand(ev)
				if quit {
					return driver.Event{Kind: driver.EventClose}
				}
				if line != "" {
					s.submit(line)
				}
			}
		}
	}
}

// keyCommand maps a key press to a console line. Esc, Ctrl-C and q quit.
func keyCommand(ev *tcell.EventKey) (line string, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "", true
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return "", true
		}
		line, _ = commands.Shortcut(ev.Rune())
		return line, false
	}
	return "", false
}

func (s *Screen) submit(line string) {
	s.log.Log("> " + line)
	if _, err := s.reg.Run(line); err != nil {
		s.log.Log(err.Error())
	}
}

// SetViewport sets the pixel square the scene is drawn into.
func (s *Screen) SetViewport(v render.Viewport) {
	s.viewport = v
}

// BeginFrame starts a frame over the current terminal size.
func (s *Screen) BeginFrame() (render.Frame, error) {
	if s.closed {
		return nil, errors.New("terminal closed")
	}
	if s.drawing {
		return nil, errors.New("previous frame not finished")
	}
	s.drawing = true
	w, h := s.Size()
	if cap(s.pix) < w*h {
		s.pix = make([]tcell.Color, w*h)
	}
	s.pix = s.pix[:w*h]
	return frame{s: s, w: w, h: h}, nil
}

type frame struct {
	s    *Screen
	w, h int
}

func (f frame) Clear(c render.Color) {
	bg := toTcell(c)
	for i := range f.s.pix {
		f.s.pix[i] = bg
	}
}

// DrawCircle fills every pixel whose center lies inside the disk.
func (f frame) DrawCircle(c render.Circle) {
	cx, cy := f.s.viewport.ToScreen(c.Center)
	r := f.s.viewport.Scale(c.Radius)
	if r <= 0 {
		return
	}
	col := toTcell(c.Color)
	x0 := max(int(math32.Floor(cx-r)), 0)
	x1 := min(int(math32.Ceil(cx+r)), f.w-1)
	y0 := max(int(math32.Floor(cy-r)), 0)
	y1 := min(int(math32.Ceil(cy+r)), f.h-1)
	for y := y0; y <= y1; y++ {
		dy := float32(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float32(x) + 0.5 - cx
			if dx*dx+dy*dy <= r*r {
				f.s.pix[y*f.w+x] = col
			}
		}
	}
}

// Finish writes the pixels and the status line to the terminal and shows them.
func (f frame) Finish() error {
	s := f.s
	if !s.drawing {
		return errors.New("frame already finished")
	}
	s.drawing = false
	for row := 0; row < f.h/2; row++ {
		for x := 0; x < f.w; x++ {
			top := s.pix[2*row*f.w+x]
			bottom := s.pix[(2*row+1)*f.w+x]
			s.screen.SetContent(x, row, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	s.drawStatus()
	s.screen.Show()
	return nil
}

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(40, 40, 40))

func (s *Screen) drawStatus() {
	if s.rows < 1 {
		return
	}
	text := ""
	if s.status != nil {
		text = s.status()
	} else if lines := s.log.Lines(); len(lines) > 0 {
		text = lines[len(lines)-1]
	}
	runes := []rune(text)
	row := s.rows - 1
	for x := 0; x < s.cols; x++ {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		s.screen.SetContent(x, row, ch, nil, statusStyle)
	}
}

func toTcell(c render.Color) tcell.Color {
	r, g, b := c.RGB8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
