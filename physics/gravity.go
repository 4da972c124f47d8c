package physics

import (
	"errors"
	"math"

	"github.com/lixenwraith/nbody/vmath"
)

// ErrCoincidentBodies is returned when two bodies share a position and force is undefined
var ErrCoincidentBodies = errors.New("physics: coincident bodies")

// Massive is the read-only view the force model needs
type Massive interface {
	Mass() float64
	Position() vmath.Vec2
}

// PointMass is a value snapshot satisfying Massive
type PointMass struct {
	M float64
	P vmath.Vec2
}

func (p PointMass) Mass() float64        { return p.M }
func (p PointMass) Position() vmath.Vec2 { return p.P }

// GravitationalForce returns the attractive force on a and on b
// |F| = g*ma*mb/r², onA points from a toward b, onB is the exact negation of onA
// Zero separation or a non-finite magnitude returns ErrCoincidentBodies with zero forces
func GravitationalForce(a, b Massive, g float64) (onA, onB vmath.Vec2, err error) {
	return PairForce(
		PointMass{M: a.Mass(), P: a.Position()},
		PointMass{M: b.Mass(), P: b.Position()},
		g,
	)
}

// PairForce is GravitationalForce over concrete values for the all-pairs hot path
func PairForce(a, b PointMass, g float64) (onA, onB vmath.Vec2, err error) {
	d := a.P.Sub(b.P)
	r2 := d.Dot(d)
	if r2 == 0 {
		return vmath.Zero, vmath.Zero, ErrCoincidentBodies
	}

	dir, err := d.Normalize()
	if err != nil {
		return vmath.Zero, vmath.Zero, ErrCoincidentBodies
	}

	mag := g * a.M * b.M / r2
	if math.IsInf(mag, 0) || math.IsNaN(mag) {
		return vmath.Zero, vmath.Zero, ErrCoincidentBodies
	}

	// d points from b to a, attraction on a is opposite
	onA = dir.Scale(-mag)
	onB = onA.Neg()
	return onA, onB, nil
}

// PairCount returns the number of unique unordered pairs among n bodies
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
