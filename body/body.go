package body

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/nbody/core"
	"github.com/lixenwraith/nbody/physics"
	"github.com/lixenwraith/nbody/vmath"
)

// Body is a point mass with a rendered square extent
// id, mass, size and color are fixed for the body's lifetime
type Body struct {
	id      uint32
	kinetic core.Kinetic
	mass    float64
	size    vmath.Vec2
	color   colorful.Color
	config  Config
}

// Snapshot is the read-only render view of a body
type Snapshot struct {
	ID       uint32
	Position vmath.Vec2
	Size     vmath.Vec2
	Color    colorful.Color
}

// New creates a body from explicit state, acceleration starts at zero
// cfg is validated so size and later respawns derive from sane bounds
func New(id uint32, cfg Config, pos, vel vmath.Vec2, mass float64, color colorful.Color) (Body, error) {
	if err := cfg.Validate(); err != nil {
		return Body{}, fmt.Errorf("body %d: %w", id, err)
	}
	if !(mass > 0) || math.IsInf(mass, 0) {
		return Body{}, fmt.Errorf("%w: body %d mass %v", ErrInvalidMass, id, mass)
	}
	s := cfg.SizeFor(mass)
	return Body{
		id:      id,
		kinetic: core.Kinetic{Position: pos, Velocity: vel},
		mass:    mass,
		size:    vmath.V(s, s),
		color:   color,
		config:  cfg,
	}, nil
}

// Spawn creates a body with a fresh random draw from f
func Spawn(id uint32, f *Factory, color colorful.Color) (Body, error) {
	pos, vel, mass, err := f.Generate()
	if err != nil {
		return Body{}, fmt.Errorf("spawn body %d: %w", id, err)
	}
	return New(id, f.Config(), pos, vel, mass, color)
}

// Read-only accessors, callable on copies
func (b Body) ID() uint32               { return b.id }
func (b Body) Mass() float64            { return b.mass }
func (b Body) Position() vmath.Vec2     { return b.kinetic.Position }
func (b Body) Velocity() vmath.Vec2     { return b.kinetic.Velocity }
func (b Body) Acceleration() vmath.Vec2 { return b.kinetic.Acceleration }
func (b Body) Size() vmath.Vec2         { return b.size }
func (b Body) Color() colorful.Color    { return b.color }
func (b Body) Config() Config           { return b.config }
func (b Body) PointMass() physics.PointMass {
	return physics.PointMass{M: b.mass, P: b.kinetic.Position}
}

// SetAcceleration overrides the acceleration carried into integration
func (b *Body) SetAcceleration(a vmath.Vec2) {
	b.kinetic.Acceleration = a
}

// Snapshot returns the render view
func (b Body) Snapshot() Snapshot {
	return Snapshot{
		ID:       b.id,
		Position: b.kinetic.Position,
		Size:     b.size,
		Color:    b.color,
	}
}

// AddForce applies force as an immediate velocity change of force/mass
func (b *Body) AddForce(force vmath.Vec2) {
	physics.ApplyForce(&b.kinetic, force, b.mass)
}

// Integrate advances velocity then position by dt seconds
func (b *Body) Integrate(dt float64) {
	physics.Integrate(&b.kinetic, dt)
}

// CheckBoundary reflects velocity and acceleration on each axis touching the arena walls
func (b *Body) CheckBoundary(bounds float64) (rx, ry bool) {
	return physics.ReflectBounds(&b.kinetic, b.size, bounds)
}

// CheckDistanceFromCenter respawns position and velocity when farther than threshold from center
// Returns true if the body was respawned
func (b *Body) CheckDistanceFromCenter(center vmath.Vec2, threshold float64, r Respawner) bool {
	if b.kinetic.Position.Sub(center).Length() <= threshold {
		return false
	}
	b.kinetic.Position, b.kinetic.Velocity = r.Respawn(b.config)
	return true
}
