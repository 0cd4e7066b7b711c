package scene

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"collisions/internal/physics"
	"collisions/internal/vector"
)

const (
	minAmount     = 8
	amountSpan    = 32 - minAmount
	minRadiusPct  = 20
	radiusPctSpan = 40
	maxSpeedRoll  = 100
)

// Layout is the grid a scene is generated on. It is a pure function of Seed.
// Amount bodies per side, all with Radius, with Padding between neighbours and between
// the outer bodies and the walls, so the grid exactly fills [-1,1]².
type Layout struct {
	Seed    uint64
	Amount  int
	Radius  float32
	Padding float32
}

// NewLayout derives the grid from seed:
// amount = 8 + seed mod 24, radius = (1/amount)·(20 + seed mod 40)/100,
// padding = (2 - 2·radius·amount)/(amount+1).
func NewLayout(seed uint64) Layout {
	amount := minAmount + int(seed%amountSpan)
	n := float32(amount)
	length := 1 / n
	radius := length * float32(minRadiusPct+seed%radiusPctSpan) / 100
	padding := (2 - 2*radius*n) / (n + 1)
	return Layout{
		Seed:    seed,
		Amount:  amount,
		Radius:  radius,
		Padding: padding,
	}
}

// Count returns the number of bodies in the grid.
func (l Layout) Count() int {
	return l.Amount * l.Amount
}

// Center returns the center of the body in the given grid row and column.
func (l Layout) Center(row, col int) vector.Vec2 {
	step := l.Padding + 2*l.Radius
	return vector.Vec2{
		X: step*float32(col+1) - 1 - l.Radius,
		Y: step*float32(row+1) - 1 - l.Radius,
	}
}

// Bodies places every grid cell in row-major order and draws each body's velocity from rng:
// speed = (1 + U{0..99})/100 · radius, direction = a uniform angle in [0, 2π).
func (l Layout) Bodies(rng *rand.Rand) []physics.Body {
	bodies := make([]physics.Body, 0, l.Count())
	for row := 0; row < l.Amount; row++ {
		for col := 0; col < l.Amount; col++ {
			speed := float32(1+rng.IntN(maxSpeedRoll)) / 100 * l.Radius
			theta := rng.Float32() * 2 * math32.Pi
			bodies = append(bodies, physics.NewBody(l.Center(row, col), vector.FromAngle(theta, speed), l.Radius))
		}
	}
	return bodies
}

// Outline returns n points evenly spaced on a circle of the given radius around the origin.
// It is used only for drawing. n below 3 yields 3 points.
func Outline(radius float32, n int) []vector.Vec2 {
	if n < 3 {
		n = 3
	}
	ring := make([]vector.Vec2, n)
	for k := range ring {
		angle := 2 * math32.Pi * float32(k) / float32(n)
		ring[k] = vector.FromAngle(angle, radius)
	}
	return ring
}
