// Package components defines ECS components for the simulation.
package components

// Position represents an entity's world position on the ground plane.
// Y is fixed to the ground; agents move on the X/Z axes.
type Position struct {
	X, Z float32
}

// Velocity represents an entity's velocity on the ground plane.
type Velocity struct {
	X, Z float32
}

// DistSq returns the squared distance to another position.
func (p Position) DistSq(o Position) float32 {
	dx := p.X - o.X
	dz := p.Z - o.Z
	return dx*dx + dz*dz
}

// OriginDistSq returns the squared distance to the world origin (the hill).
func (p Position) OriginDistSq() float32 {
	return p.X*p.X + p.Z*p.Z
}
