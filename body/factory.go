package body

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lixenwraith/nbody/parameter"
	"github.com/lixenwraith/nbody/vmath"
)

// ErrInvalidMass is returned for non-positive or non-finite body mass
var ErrInvalidMass = errors.New("invalid body mass")

// Respawner resamples kinematic state for a body leaving the arena
type Respawner interface {
	Respawn(cfg Config) (pos, vel vmath.Vec2)
}

// Factory draws initial body state from the configured distributions
// All draws share one injected source; a Factory is not safe for concurrent use
type Factory struct {
	cfg  Config
	src  rand.Source
	mass distuv.Normal
}

// NewFactory validates cfg and binds the distributions to src
// Invalid distribution parameters are a fatal setup error
func NewFactory(cfg Config, src rand.Source) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	return &Factory{
		cfg:  cfg,
		src:  src,
		mass: distuv.Normal{Mu: cfg.MassMean, Sigma: cfg.MassStd, Src: src},
	}, nil
}

// Config returns the factory's generation parameters
func (f *Factory) Config() Config {
	return f.cfg
}

// Generate draws position, velocity and mass for a new body
// Non-positive mass draws are redrawn up to parameter.MaxMassDraws times
func (f *Factory) Generate() (pos, vel vmath.Vec2, mass float64, err error) {
	pos, vel = f.Respawn(f.cfg)

	for i := 0; i < parameter.MaxMassDraws; i++ {
		mass = f.mass.Rand()
		if mass > 0 && !math.IsInf(mass, 0) {
			return pos, vel, mass, nil
		}
	}
	return pos, vel, 0, fmt.Errorf("%w: no positive draw from normal(%v, %v) in %d attempts",
		ErrInvalidMass, f.cfg.MassMean, f.cfg.MassStd, parameter.MaxMassDraws)
}

// Respawn draws position and velocity only, mass is never resampled
func (f *Factory) Respawn(cfg Config) (pos, vel vmath.Vec2) {
	p := distuv.Uniform{Min: cfg.LowerPosBound, Max: cfg.UpperPosBound, Src: f.src}
	v := distuv.Uniform{Min: -cfg.VelocityBound, Max: cfg.VelocityBound, Src: f.src}

	pos = vmath.V(halfOpen(p), halfOpen(p))
	vel = vmath.V(halfOpen(v), halfOpen(v))
	return pos, vel
}

// halfOpen keeps a uniform draw inside [Min, Max) when rounding lands on Max
func halfOpen(u distuv.Uniform) float64 {
	x := u.Rand()
	if x >= u.Max && u.Max > u.Min {
		return math.Nextafter(u.Max, u.Min)
	}
	return x
}
