package sim

import (
	"errors"
	"flag"
	"fmt"

	"collisions/internal/commands"
	"collisions/internal/logger"
	"collisions/internal/physics"
	"collisions/internal/render"
	"collisions/internal/scene"
)

// Stats is a snapshot of the controller state for overlays and the stats command.
type Stats struct {
	Seed   uint64 // layout seed of the current scene
	Bodies int
	Ticks  uint64 // ticks simulated since the last reset or restart
	Paused bool
	Last   physics.StepStats
	Total  physics.StepStats
	Energy float32
}

// Controller owns the running scene and decides whether a driver tick advances it.
// It is driven from a single goroutine: the frame loop and the console run on the same thread.
type Controller struct {
	opts scene.Options
	log  *logger.Logger

	scene   *scene.Scene
	initial *scene.Scene

	paused  bool
	pending int
	ticks   uint64
	last    physics.StepStats
	total   physics.StepStats
}

// New returns a controller running a scene generated from seed (0 = time based).
func New(opts scene.Options, seed uint64, log *logger.Logger) (*Controller, error) {
	c := &Controller{opts: opts, log: log}
	if err := c.Reset(seed); err != nil {
		return nil, err
	}
	return c, nil
}

// Scene returns the scene being simulated.
func (c *Controller) Scene() *scene.Scene {
	return c.scene
}

// Advance runs one simulation step unless the controller is paused with no queued steps.
func (c *Controller) Advance() {
	if c.paused {
		if c.pending == 0 {
			return
		}
		c.pending--
	}
	c.last = c.scene.Step()
	c.total = c.total.Add(c.last)
	c.ticks++
}

// AppendCircles appends the current bodies to dst.
func (c *Controller) AppendCircles(dst []render.Circle) []render.Circle {
	return c.scene.AppendCircles(dst)
}

// Pause stops advancing on ticks. Queued steps are dropped.
func (c *Controller) Pause() {
	c.paused = true
	c.pending = 0
}

// Resume continues advancing on every tick.
func (c *Controller) Resume() {
	c.paused = false
	c.pending = 0
}

// Paused reports whether ticks are currently held back.
func (c *Controller) Paused() bool {
	return c.paused
}

// Step pauses the controller and queues n steps, one per following tick.
func (c *Controller) Step(n int) error {
	if n < 1 {
		return fmt.Errorf("step count must be positive, got %d", n)
	}
	c.paused = true
	c.pending += n
	return nil
}

// Reset replaces the scene with one generated from seed (0 = time based) and makes it the
// new restart point. The pause state is kept.
func (c *Controller) Reset(seed uint64) error {
	s := scene.New(c.opts, seed)
	initial, err := s.Clone()
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	c.scene, c.initial = s, initial
	c.clearCounters()
	c.logf("sim: reset seed=%d bodies=%d radius=%.4f", s.Layout.Seed, s.Len(), s.Layout.Radius)
	return nil
}

// Restart returns to the scene as it was right after the last reset.
func (c *Controller) Restart() error {
	if c.initial == nil {
		return errors.New("restart: no initial scene")
	}
	s, err := c.initial.Clone()
	if err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	c.scene = s
	c.clearCounters()
	c.logf("sim: restart seed=%d", s.Layout.Seed)
	return nil
}

func (c *Controller) clearCounters() {
	c.pending = 0
	c.ticks = 0
	c.last = physics.StepStats{}
	c.total = physics.StepStats{}
}

// Stats returns the current counters and the total kinetic energy.
func (c *Controller) Stats() Stats {
	return Stats{
		Seed:   c.scene.Layout.Seed,
		Bodies: c.scene.Len(),
		Ticks:  c.ticks,
		Paused: c.paused,
		Last:   c.last,
		Total:  c.total,
		Energy: c.scene.World.KineticEnergy(),
	}
}

// String formats the stats on one line.
func (s Stats) String() string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return fmt.Sprintf("seed=%d bodies=%d ticks=%d %s energy=%.6f reflections=%d collisions=%d corrections=%d degenerate=%d",
		s.Seed, s.Bodies, s.Ticks, state, s.Energy,
		s.Total.Reflections, s.Total.Collisions, s.Total.Corrections, s.Total.Degenerate)
}

// Register adds the simulation commands to reg:
// reset [-seed N], restart, pause, resume, step [-n N] and stats.
func (c *Controller) Register(reg *commands.Registry) {
	reg.Register("reset", "regenerate the scene (-seed N, 0 = time based)", func(fs *flag.FlagSet) func() error {
		seed := fs.Uint64("seed", 0, "layout seed")
		return func() error { return c.Reset(*seed) }
	})
	reg.Register("restart", "return to the scene of the last reset", func(*flag.FlagSet) func() error {
		return c.Restart
	})
	reg.Register("pause", "stop advancing", func(*flag.FlagSet) func() error {
		return func() error {
			c.Pause()
			c.logf("sim: paused at tick %d", c.ticks)
			return nil
		}
	})
	reg.Register("resume", "continue advancing", func(*flag.FlagSet) func() error {
		return func() error {
			c.Resume()
			c.logf("sim: resumed at tick %d", c.ticks)
			return nil
		}
	})
	reg.Register("step", "pause and advance -n ticks", func(fs *flag.FlagSet) func() error {
		n := fs.Int("n", 1, "ticks to advance")
		return func() error { return c.Step(*n) }
	})
	reg.Register("stats", "log the simulation counters", func(*flag.FlagSet) func() error {
		return func() error {
			c.logf("sim: %s", c.Stats())
			return nil
		}
	})
}

func (c *Controller) logf(format string, args ...any) {
	if c.log != nil {
		c.log.Logf(format, args...)
	}
}
