package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/nbody/body"
	"github.com/lixenwraith/nbody/core"
	"github.com/lixenwraith/nbody/parameter"
	"github.com/lixenwraith/nbody/vmath"
)

// ErrInvalidSettings marks a fatal world setup error
var ErrInvalidSettings = errors.New("invalid simulation settings")

// Settings describes the world a Simulation runs in
type Settings struct {
	Bodies           int          // Initial population
	Gravity          float64      // Gravitational constant g
	Bounds           float64      // Square arena side, walls at 0 and Bounds on both axes
	Center           vmath.Vec2   // Reference point for respawn distance
	RespawnThreshold float64      // Distance from Center beyond which bodies respawn
	Palette          core.Palette // Body color assignment
	Generation       body.Config  // Body sampling parameters
}

// DefaultSettings returns the stock world
func DefaultSettings() Settings {
	return Settings{
		Bodies:           parameter.BodyCount,
		Gravity:          parameter.GravitationalConstant,
		Bounds:           parameter.ArenaBounds,
		Center:           vmath.V(parameter.ArenaBounds*0.5, parameter.ArenaBounds*0.5),
		RespawnThreshold: parameter.RespawnThreshold,
		Palette:          core.PaletteMono,
		Generation:       body.DefaultConfig(),
	}
}

// Validate checks world parameters and the generation config
func (s Settings) Validate() error {
	if s.Bodies < 0 {
		return fmt.Errorf("%w: body count must be non-negative, got %d", ErrInvalidSettings, s.Bodies)
	}
	if !finite(s.Gravity) {
		return fmt.Errorf("%w: gravity must be finite, got %v", ErrInvalidSettings, s.Gravity)
	}
	if !finite(s.Bounds) || s.Bounds <= 0 {
		return fmt.Errorf("%w: bounds must be positive, got %v", ErrInvalidSettings, s.Bounds)
	}
	if !s.Center.IsFinite() {
		return fmt.Errorf("%w: center must be finite, got %v", ErrInvalidSettings, s.Center)
	}
	if !finite(s.RespawnThreshold) || s.RespawnThreshold <= 0 {
		return fmt.Errorf("%w: respawn threshold must be positive, got %v", ErrInvalidSettings, s.RespawnThreshold)
	}
	return s.Generation.Validate()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
