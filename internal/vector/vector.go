package vector

import "github.com/chewxy/math32"

// Vec2 is a 2D vector in normalized device coordinates (or a per-tick displacement).
type Vec2 struct {
	X, Y float32
}

// New returns the vector (x, y).
func New(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns a + b.
func Add(a, b Vec2) Vec2 {
	return Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b.
func Sub(a, b Vec2) Vec2 {
	return Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns s * v. The scalar comes first to match how the collision formulas read.
func Scale(s float32, v Vec2) Vec2 {
	return Vec2{X: s * v.X, Y: s * v.Y}
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec2) float32 {
	return a.X*b.X + a.Y*b.Y
}

// Dist returns the Euclidean distance between a and b.
// The differences are squared by multiplication and summed x first, then y.
func Dist(a, b Vec2) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math32.Sqrt(dx*dx + dy*dy)
}

// Len returns the length of v.
func Len(v Vec2) float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// FromAngle returns a vector of the given length pointing at theta radians.
func FromAngle(theta, length float32) Vec2 {
	return Scale(length, Vec2{X: math32.Cos(theta), Y: math32.Sin(theta)})
}
