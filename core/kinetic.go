package core

import "github.com/lixenwraith/nbody/vmath"

// Kinetic holds continuous motion state in world units
type Kinetic struct {
	// Position is the top-left corner of the body's square in world coordinates
	Position vmath.Vec2
	// Velocity in world units per second
	Velocity vmath.Vec2
	// Acceleration in world units per second squared, only rewritten by wall reflection
	Acceleration vmath.Vec2
}
