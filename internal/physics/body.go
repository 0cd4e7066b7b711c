package physics

import "collisions/internal/vector"

// Body is a circular body in normalized device coordinates.
// Velocity is the displacement applied per tick; Radius never changes after creation.
type Body struct {
	Center   vector.Vec2
	Velocity vector.Vec2
	Radius   float32
}

// NewBody returns a body at center moving with velocity.
func NewBody(center, velocity vector.Vec2, radius float32) Body {
	return Body{
		Center:   center,
		Velocity: velocity,
		Radius:   radius,
	}
}

// Next returns where the body will be after one more tick at its current velocity.
func (b *Body) Next() vector.Vec2 {
	return vector.Add(b.Center, b.Velocity)
}

// KineticEnergy returns |v|² (unit mass, no 1/2 factor).
func (b *Body) KineticEnergy() float32 {
	return vector.Dot(b.Velocity, b.Velocity)
}
