package scene

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jinzhu/copier"

	"collisions/internal/physics"
	"collisions/internal/render"
	"collisions/internal/vector"
)

// DefaultBoundaryVertices is the number of ring points drawn per body.
const DefaultBoundaryVertices = 32

// Options controls scene generation. Zero values fall back to defaults (see sanitize).
type Options struct {
	Palette          []render.Color
	BoundaryVertices int
	AdjustIterations int
}

// DefaultPalette is the seven body tints.
var DefaultPalette = []render.Color{
	{R: 0.70, G: 0.80, B: 0.14},
	{R: 0.09, G: 0.63, B: 0.69},
	{R: 0.76, G: 0.65, B: 0.07},
	{R: 0.06, G: 0.72, B: 0.44},
	{R: 0.38, G: 0.04, B: 0.52},
	{R: 0.70, G: 0.32, B: 0.04},
	{R: 0.69, G: 0.05, B: 0.14},
}

// DefaultOptions returns the default palette, 32 ring points and the physics adjust cap.
func DefaultOptions() Options {
	return Options{
		Palette:          DefaultPalette,
		BoundaryVertices: DefaultBoundaryVertices,
		AdjustIterations: physics.DefaultAdjustIterations,
	}
}

func (o Options) sanitize() Options {
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
	if o.BoundaryVertices < 3 {
		o.BoundaryVertices = DefaultBoundaryVertices
	}
	if o.AdjustIterations < 1 {
		o.AdjustIterations = physics.DefaultAdjustIterations
	}
	return o
}

// Scene is the fixed set of bodies being simulated plus what the renderer needs to draw them.
// Bodies are created once by New and only mutated in place by Step afterwards.
type Scene struct {
	Layout  Layout
	World   *physics.World
	Palette []render.Color
	// Colors holds a palette index per body, parallel to World.Bodies.
	Colors []int
	// Outline is the boundary ring shared by every body (all radii are equal).
	Outline []vector.Vec2
}

// NewRand returns a PCG-backed generator for seed. Seed 0 uses the current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = TimeSeed()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// TimeSeed returns a non-zero seed taken from the current time.
func TimeSeed() uint64 {
	if seed := uint64(time.Now().UnixNano()); seed != 0 {
		return seed
	}
	return 1
}

// New generates the scene for seed: the layout is NewLayout(seed) and each body's velocity
// and color are drawn from NewRand(seed). Seed 0 picks a time-based seed first, so the
// resulting Layout.Seed always reproduces the scene.
func New(opts Options, seed uint64) *Scene {
	if seed == 0 {
		seed = TimeSeed()
	}
	return Generate(NewLayout(seed), opts, NewRand(seed))
}

// Generate builds a scene on layout, drawing velocities and colors from rng.
func Generate(layout Layout, opts Options, rng *rand.Rand) *Scene {
	opts = opts.sanitize()

	world := physics.NewWorld(layout.Bodies(rng))
	world.AdjustIterations = opts.AdjustIterations

	colors := make([]int, len(world.Bodies))
	for i := range colors {
		colors[i] = rng.IntN(len(opts.Palette))
	}

	return &Scene{
		Layout:  layout,
		World:   world,
		Palette: opts.Palette,
		Colors:  colors,
		Outline: Outline(layout.Radius, opts.BoundaryVertices),
	}
}

// Step advances the scene by exactly one tick.
func (s *Scene) Step() physics.StepStats {
	return s.World.Step()
}

// Len returns the number of bodies.
func (s *Scene) Len() int {
	return len(s.World.Bodies)
}

// AppendCircles appends one drawable circle per body to dst and returns the extended slice.
// The Outline slice is shared and must not be modified by the caller.
func (s *Scene) AppendCircles(dst []render.Circle) []render.Circle {
	for i := range s.World.Bodies {
		b := &s.World.Bodies[i]
		dst = append(dst, render.Circle{
			Center:  b.Center,
			Radius:  b.Radius,
			Outline: s.Outline,
			Color:   s.Palette[s.Colors[i]%len(s.Palette)],
		})
	}
	return dst
}

// Clone returns a deep copy that shares no mutable state with s.
func (s *Scene) Clone() (*Scene, error) {
	var out Scene
	if err := copier.CopyWithOption(&out, s, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone scene: %w", err)
	}
	if out.World == nil {
		out.World = physics.NewWorld(nil)
	}
	return &out, nil
}
