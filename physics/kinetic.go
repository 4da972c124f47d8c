package physics

import (
	"github.com/lixenwraith/nbody/core"
	"github.com/lixenwraith/nbody/vmath"
)

// Integrate performs semi-implicit Euler integration: v = v + a*dt; p = p + v*dt
func Integrate(k *core.Kinetic, dt float64) {
	k.Velocity = k.Velocity.Add(k.Acceleration.Scale(dt))
	k.Position = k.Position.Add(k.Velocity.Scale(dt))
}

// ApplyImpulse adds velocity delta
func ApplyImpulse(k *core.Kinetic, dv vmath.Vec2) {
	k.Velocity = k.Velocity.Add(dv)
}

// ApplyForce folds a force directly into velocity scaled by inverse mass
// Acceleration is not touched, the impulse is visible to the next integration through velocity
func ApplyForce(k *core.Kinetic, force vmath.Vec2, mass float64) {
	ApplyImpulse(k, force.Scale(1/mass))
}

// ReflectBounds handles wall contact in a square arena [0, bounds] for a body of given extent
// Each edge test is independent; a hit flips both velocity and acceleration on that axis
// Position is not clamped
func ReflectBounds(k *core.Kinetic, size vmath.Vec2, bounds float64) (rx, ry bool) {
	if k.Position.X+size.X >= bounds {
		flipX(k)
		rx = true
	}
	if k.Position.X <= 0 {
		flipX(k)
		rx = true
	}
	if k.Position.Y+size.Y >= bounds {
		flipY(k)
		ry = true
	}
	if k.Position.Y <= 0 {
		flipY(k)
		ry = true
	}
	return rx, ry
}

func flipX(k *core.Kinetic) {
	k.Velocity.X = -k.Velocity.X
	k.Acceleration.X = -k.Acceleration.X
}

func flipY(k *core.Kinetic) {
	k.Velocity.Y = -k.Velocity.Y
	k.Acceleration.Y = -k.Acceleration.Y
}
