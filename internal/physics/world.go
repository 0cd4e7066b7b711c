package physics

import (
	"github.com/chewxy/math32"

	"collisions/internal/vector"
)

// wallExtent is the half size of the normalized viewport; walls sit at ±wallExtent on both axes.
const wallExtent = 1

// DefaultAdjustIterations caps the overlap-correction sweeps of one step. A step usually
// settles in a handful of sweeps; the cap only bounds dense clusters.
const DefaultAdjustIterations = 128

// adjustSlop is the penetration, as a fraction of the contact distance, below which a pair
// counts as touching. It keeps float32 rounding from reporting a settled pair as overlapping.
const adjustSlop = 1e-4

// World holds the bodies of a scene and advances them one tick at a time.
// Bodies are never added or removed by a step; order only breaks ties within the collide and adjust passes.
type World struct {
	Bodies []Body
	// AdjustIterations is how many overlap-correction sweeps a step may run.
	// Sweeps stop as soon as one makes no correction. Values below 1 mean 1.
	AdjustIterations int
}

// StepStats counts what happened during one Step.
type StepStats struct {
	Reflections int // wall velocity flips
	Collisions  int // pairs that received an impulse
	Corrections int // pair separations made by the adjust pass
	Degenerate  int // pairs skipped because their centers coincide
}

// Add returns the element-wise sum of two stats.
func (s StepStats) Add(o StepStats) StepStats {
	return StepStats{
		Reflections: s.Reflections + o.Reflections,
		Collisions:  s.Collisions + o.Collisions,
		Corrections: s.Corrections + o.Corrections,
		Degenerate:  s.Degenerate + o.Degenerate,
	}
}

// NewWorld returns a world owning bodies that adjusts until settled, up to DefaultAdjustIterations sweeps.
func NewWorld(bodies []Body) *World {
	return &World{
		Bodies:           bodies,
		AdjustIterations: DefaultAdjustIterations,
	}
}

// Step advances the world by one tick: integrate, walls, collide, adjust.
// Each pass finishes over every body before the next one starts.
func (w *World) Step() StepStats {
	var st StepStats
	w.Integrate()
	st.Reflections = w.Walls()
	st.Collisions, st.Degenerate = w.Collide()
	corrections, degenerate := w.Adjust()
	st.Corrections = corrections
	st.Degenerate += degenerate
	return st
}

// Integrate moves every body by its velocity. There is no acceleration term.
func (w *World) Integrate() {
	for i := range w.Bodies {
		b := &w.Bodies[i]
		b.Center = vector.Add(b.Center, b.Velocity)
	}
}

// Walls flips the velocity component of every body that has crossed a wall on that axis,
// unless the component already points back toward the interior. Positions are not clamped
// here, so between the wall and adjust passes a body may stick out by at most one tick of travel.
// It returns the number of flips.
func (w *World) Walls() int {
	flips := 0
	for i := range w.Bodies {
		b := &w.Bodies[i]
		if reflectAxis(b.Center.X, &b.Velocity.X, b.Radius) {
			flips++
		}
		if reflectAxis(b.Center.Y, &b.Velocity.Y, b.Radius) {
			flips++
		}
	}
	return flips
}

// reflectAxis negates *vel when the body breaches the wall on this axis and is still heading out.
func reflectAxis(pos float32, vel *float32, radius float32) bool {
	if math32.Abs(pos)+radius <= wallExtent {
		return false
	}
	if headingInward(pos, *vel) {
		return false
	}
	*vel = -*vel
	return true
}

// headingInward reports whether a velocity component points away from the wall the position is near.
// Signs are compared bit-wise so that +0 counts as positive and -0 as negative.
func headingInward(pos, vel float32) bool {
	return math32.Signbit(vel) != math32.Signbit(pos)
}

// Collide applies the equal-mass elastic impulse to every pair whose predicted positions touch.
//
// A pair (i, j) triggers when both dist(c_i+v_i, c_j) and dist(c_j+v_j, c_i) are within
// r_i+r_j. The impulse is
//
//	k    = dot(v_i-v_j, c_i-c_j) / dist(c_i, c_j)²
//	v_i' = v_i - k(c_i-c_j)
//	v_j' = v_j + k(c_i-c_j)
//
// Only pairs closing on each other (k < 0) receive the impulse; an overlapping pair that is
// already separating is left alone so it is not pulled back together.
//
// Each unordered pair is visited once, in index order, and reads the velocities left by the
// pairs before it. Every exchange is elastic on its own, so the pass conserves kinetic energy
// even when a body touches several others in the same tick. Pairs with coincident centers are skipped.
// It returns the number of pairs that received an impulse and the number skipped as degenerate.
func (w *World) Collide() (collisions, degenerate int) {
	n := len(w.Bodies)
	for i := 0; i < n; i++ {
		a := &w.Bodies[i]
		for j := i + 1; j < n; j++ {
			b := &w.Bodies[j]
			if !approaching(a, b) {
				continue
			}
			dist := vector.Dist(a.Center, b.Center)
			if dist == 0 {
				degenerate++
				continue
			}
			line := vector.Sub(a.Center, b.Center)
			k := vector.Dot(vector.Sub(a.Velocity, b.Velocity), line) / (dist * dist)
			if k >= 0 {
				continue
			}
			impulse := vector.Scale(k, line)
			a.Velocity = vector.Sub(a.Velocity, impulse)
			b.Velocity = vector.Add(b.Velocity, impulse)
			collisions++
		}
	}
	return collisions, degenerate
}

// approaching reports whether each body, moved one more tick, would still touch the other's current position.
func approaching(a, b *Body) bool {
	contact := a.Radius + b.Radius
	if vector.Dist(a.Next(), b.Center) > contact {
		return false
	}
	return vector.Dist(b.Next(), a.Center) <= contact
}

// Adjust pushes interpenetrating pairs apart along the line of centers, half the penetration
// each, so the pair ends in contact. Velocities are untouched. Pairs are corrected in index
// order against the current positions, and the sweep repeats until one makes no correction,
// at most AdjustIterations times. Coincident centers have no separating direction and are skipped.
//
// Adjust also keeps every body inside the walls: bodies left outside by the wall pass are
// moved back against the wall first, and a correction that would push a body through a wall
// stops there while its partner takes the rest.
// It returns the number of corrections and of degenerate pairs seen.
func (w *World) Adjust() (corrections, degenerate int) {
	for i := range w.Bodies {
		b := &w.Bodies[i]
		b.Center = inside(b.Center, b.Radius)
	}
	sweeps := w.AdjustIterations
	if sweeps < 1 {
		sweeps = 1
	}
	for s := 0; s < sweeps; s++ {
		c, d := w.adjustSweep()
		corrections += c
		degenerate += d
		if c == 0 {
			break
		}
	}
	return corrections, degenerate
}

func (w *World) adjustSweep() (corrections, degenerate int) {
	n := len(w.Bodies)
	for i := 0; i < n; i++ {
		a := &w.Bodies[i]
		for j := i + 1; j < n; j++ {
			b := &w.Bodies[j]
			contact := a.Radius + b.Radius
			magnitude := vector.Dist(a.Center, b.Center)
			detour := contact - magnitude
			if detour <= contact*adjustSlop {
				continue
			}
			if magnitude == 0 {
				degenerate++
				continue
			}
			separate(a, b, vector.Scale(0.5*detour/magnitude, vector.Sub(a.Center, b.Center)))
			corrections++
		}
	}
	return corrections, degenerate
}

// separate moves a by half and b by -half. When a wall stops one of them short, the other
// takes the remainder so the pair still ends in contact.
func separate(a, b *Body, half vector.Vec2) {
	target := vector.Add(a.Center, half)
	a.Center = inside(target, a.Radius)
	push := vector.Add(half, vector.Sub(target, a.Center))

	target = vector.Sub(b.Center, push)
	b.Center = inside(target, b.Radius)
	a.Center = inside(vector.Add(a.Center, vector.Sub(b.Center, target)), a.Radius)
}

// inside clamps a center so that a body of the given radius lies within the walls.
// A center that is already inside is returned unchanged.
func inside(c vector.Vec2, radius float32) vector.Vec2 {
	limit := wallExtent - radius
	c.X = math32.Max(-limit, math32.Min(limit, c.X))
	c.Y = math32.Max(-limit, math32.Min(limit, c.Y))
	return c
}

// KineticEnergy returns the sum of |v|² over all bodies.
func (w *World) KineticEnergy() float32 {
	var e float32
	for i := range w.Bodies {
		e += w.Bodies[i].KineticEnergy()
	}
	return e
}
