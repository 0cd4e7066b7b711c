package driver

import (
	"context"
	"fmt"
	"time"

	"collisions/internal/logger"
	"collisions/internal/render"
)

// DefaultInterval is the 60 Hz tick period.
const DefaultInterval = 16_666_667 * time.Nanosecond

// EventKind is what an EventSource reports back to the loop.
type EventKind int

const (
	// EventTick means the deadline passed with nothing else to report.
	EventTick EventKind = iota
	// EventResize carries the new window size in Width and Height.
	EventResize
	// EventClose asks the loop to stop.
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventResize:
		return "resize"
	case EventClose:
		return "close"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one window/terminal event.
type Event struct {
	Kind          EventKind
	Width, Height int
}

// EventSource is the window or terminal the loop runs in.
type EventSource interface {
	// Wait blocks until deadline, returning EventTick, or until a resize or close happens
	// first. A cancelled ctx must be reported as EventClose.
	Wait(ctx context.Context, deadline time.Time) Event
	// Size returns the current drawable size.
	Size() (width, height int)
}

// Simulator is what the loop advances and draws.
type Simulator interface {
	// Advance moves the simulation forward by exactly one tick.
	Advance()
	// AppendCircles appends the drawable bodies to dst.
	AppendCircles(dst []render.Circle) []render.Circle
}

// Options configures a Loop. Zero values fall back to defaults.
type Options struct {
	Interval   time.Duration
	Background render.Color
	Clock      Clock
	Log        *logger.Logger
}

// Stats counts what the loop has done so far.
type Stats struct {
	Ticks   uint64 // ticks advanced and drawn
	Skipped uint64 // deadlines passed while the loop was late, coalesced into one tick
	Resizes uint64
}

// Loop runs the fixed-rate simulate-then-draw cycle.
// One tick is processed at a time; rendering a tick happens strictly after its simulation.
type Loop struct {
	sim      Simulator
	renderer render.Renderer
	events   EventSource

	interval   time.Duration
	background render.Color
	clock      Clock
	log        *logger.Logger

	viewport render.Viewport
	circles  []render.Circle
	stats    Stats
}

// NewLoop wires a simulator to a renderer and an event source.
func NewLoop(sim Simulator, renderer render.Renderer, events EventSource, opts Options) *Loop {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	return &Loop{
		sim:        sim,
		renderer:   renderer,
		events:     events,
		interval:   opts.Interval,
		background: opts.Background,
		clock:      opts.Clock,
		log:        opts.Log,
	}
}

// Stats returns a copy of the loop counters.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Viewport returns the viewport last handed to the renderer.
func (l *Loop) Viewport() render.Viewport {
	return l.viewport
}

// Run processes events until the source reports close or ctx is cancelled.
// The first tick is due immediately. After each tick the next deadline is the previous
// one plus the interval; if that is already behind the clock the missed ticks are dropped
// and the deadline restarts one interval from now, so a stall never causes a burst.
// A failed frame stops the loop and is returned.
func (l *Loop) Run(ctx context.Context) error {
	l.resize(l.events.Size())

	deadline := l.clock.Now()
	for {
		if ctx.Err() != nil {
			l.logf("loop: context done after %d ticks", l.stats.Ticks)
			return nil
		}
		ev := l.events.Wait(ctx, deadline)
		switch ev.Kind {
		case EventClose:
			l.logf("loop: close after %d ticks (%d skipped)", l.stats.Ticks, l.stats.Skipped)
			return nil
		case EventResize:
			l.resize(ev.Width, ev.Height)
		case EventTick:
			now := l.clock.Now()
			if now.Before(deadline) {
				continue
			}
			if err := l.tick(); err != nil {
				return fmt.Errorf("tick %d: %w", l.stats.Ticks+1, err)
			}
			deadline = l.reschedule(deadline, now)
		}
	}
}

// reschedule returns the deadline after a tick that was due at deadline and ran at now.
func (l *Loop) reschedule(deadline, now time.Time) time.Time {
	next := deadline.Add(l.interval)
	if !next.Before(now) {
		return next
	}
	missed := uint64(now.Sub(next)/l.interval) + 1
	l.stats.Skipped += missed
	return now.Add(l.interval)
}

// tick advances the simulation once and draws the result.
func (l *Loop) tick() error {
	l.sim.Advance()
	l.circles = l.sim.AppendCircles(l.circles[:0])
	if err := l.draw(); err != nil {
		return err
	}
	l.stats.Ticks++
	return nil
}

// draw renders one frame. The frame is finished on every path, including a failed Clear or
// draw; the first error wins.
func (l *Loop) draw() (err error) {
	frame, err := l.renderer.BeginFrame()
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	defer func() {
		if ferr := frame.Finish(); ferr != nil && err == nil {
			err = fmt.Errorf("finish frame: %w", ferr)
		}
	}()

	frame.Clear(l.background)
	if l.viewport.Empty() {
		return nil
	}
	for _, c := range l.circles {
		frame.DrawCircle(c)
	}
	return nil
}

func (l *Loop) resize(width, height int) {
	l.viewport = render.ComputeViewport(width, height)
	l.renderer.SetViewport(l.viewport)
	l.stats.Resizes++
	l.logf("loop: viewport %dx%d at (%d,%d)", l.viewport.Width, l.viewport.Height, l.viewport.Left, l.viewport.Top)
}

func (l *Loop) logf(format string, args ...any) {
	if l.log != nil {
		l.log.Logf(format, args...)
	}
}
