package body

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/nbody/parameter"
)

// ErrInvalidConfig marks a fatal generation configuration error
var ErrInvalidConfig = errors.New("invalid body config")

// Config holds immutable generation parameters, copied into each body for respawn sampling
type Config struct {
	LowerPosBound float64 // Generation box lower edge, both axes
	UpperPosBound float64 // Generation box upper edge (exclusive), both axes
	VelocityBound float64 // Velocity components drawn from [-VelocityBound, VelocityBound)
	MassMean      float64 // Normal distribution mean
	MassStd       float64 // Normal distribution standard deviation
	MassToSize    float64 // Rendered square side per unit mass
}

// DefaultConfig returns the stock generation parameters
func DefaultConfig() Config {
	return Config{
		LowerPosBound: parameter.GenLowerPosBound,
		UpperPosBound: parameter.GenUpperPosBound,
		VelocityBound: parameter.GenVelocityBound,
		MassMean:      parameter.GenMassMean,
		MassStd:       parameter.GenMassStd,
		MassToSize:    parameter.GenMassToSize,
	}
}

// NewConfig builds and validates a Config
func NewConfig(lowerPos, upperPos, velocityBound, massMean, massStd, massToSize float64) (Config, error) {
	c := Config{
		LowerPosBound: lowerPos,
		UpperPosBound: upperPos,
		VelocityBound: velocityBound,
		MassMean:      massMean,
		MassStd:       massStd,
		MassToSize:    massToSize,
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects parameters that cannot produce valid bodies, nothing is clamped
func (c Config) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"lower_pos_bound", c.LowerPosBound},
		{"upper_pos_bound", c.UpperPosBound},
		{"velocity_bound", c.VelocityBound},
		{"mass_mean", c.MassMean},
		{"mass_std", c.MassStd},
		{"mass_to_size", c.MassToSize},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}

	if c.LowerPosBound >= c.UpperPosBound {
		return fmt.Errorf("%w: lower_pos_bound %v must be below upper_pos_bound %v", ErrInvalidConfig, c.LowerPosBound, c.UpperPosBound)
	}
	if c.VelocityBound < 0 {
		return fmt.Errorf("%w: velocity_bound must be non-negative, got %v", ErrInvalidConfig, c.VelocityBound)
	}
	if c.MassStd < 0 {
		return fmt.Errorf("%w: mass_std must be non-negative, got %v", ErrInvalidConfig, c.MassStd)
	}
	if c.MassStd == 0 && c.MassMean <= 0 {
		return fmt.Errorf("%w: mass_mean must be positive when mass_std is 0, got %v", ErrInvalidConfig, c.MassMean)
	}
	if c.MassToSize <= 0 {
		return fmt.Errorf("%w: mass_to_size must be positive, got %v", ErrInvalidConfig, c.MassToSize)
	}
	return nil
}

// SizeFor converts mass to the rendered square extent
func (c Config) SizeFor(mass float64) float64 {
	return mass * c.MassToSize
}
