package body

import (
	"errors"
	"testing"

	"github.com/lixenwraith/nbody/vmath"
)

func TestNewFactoryRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MassStd = -3

	f, err := NewFactory(cfg, vmath.NewFastRand(1))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
	if f != nil {
		t.Error("Expected nil factory on error")
	}

	if _, err := NewFactory(DefaultConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil source, got %v", err)
	}
}

// TestGenerateRanges verifies draws respect bounds and mass stays positive
func TestGenerateRanges(t *testing.T) {
	cfg, err := NewConfig(100, 200, 1.5, 5, 10, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	f, err := NewFactory(cfg, vmath.NewFastRand(2024))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5000; i++ {
		pos, vel, mass, err := f.Generate()
		if err != nil {
			t.Fatalf("Generate failed at %d: %v", i, err)
		}
		if pos.X < 100 || pos.X >= 200 || pos.Y < 100 || pos.Y >= 200 {
			t.Fatalf("Position out of [100,200): %v", pos)
		}
		if vel.X < -1.5 || vel.X >= 1.5 || vel.Y < -1.5 || vel.Y >= 1.5 {
			t.Fatalf("Velocity out of [-1.5,1.5): %v", vel)
		}
		if mass <= 0 {
			t.Fatalf("Non-positive mass: %v", mass)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := NewFactory(DefaultConfig(), vmath.NewFastRand(9))
	b, _ := NewFactory(DefaultConfig(), vmath.NewFastRand(9))

	for i := 0; i < 50; i++ {
		pa, va, ma, _ := a.Generate()
		pb, vb, mb, _ := b.Generate()
		if pa != pb || va != vb || ma != mb {
			t.Fatalf("Draw %d diverged: (%v %v %v) vs (%v %v %v)", i, pa, va, ma, pb, vb, mb)
		}
	}
}

// TestGenerateExhaustsDraws verifies a distribution with no positive support fails instead of looping
func TestGenerateExhaustsDraws(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MassMean = -1e6
	cfg.MassStd = 1

	f, err := NewFactory(cfg, vmath.NewFastRand(3))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := f.Generate(); !errors.Is(err, ErrInvalidMass) {
		t.Errorf("Expected ErrInvalidMass, got %v", err)
	}
}

func TestGenerateConstantMass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MassStd = 0
	cfg.MassMean = 4

	f, _ := NewFactory(cfg, vmath.NewFastRand(5))
	for i := 0; i < 10; i++ {
		_, _, mass, err := f.Generate()
		if err != nil {
			t.Fatal(err)
		}
		if mass != 4 {
			t.Errorf("Expected constant mass 4, got %v", mass)
		}
	}
}

// TestRespawnUsesGivenConfig verifies respawn samples from the passed config, not the factory's
func TestRespawnUsesGivenConfig(t *testing.T) {
	f, _ := NewFactory(DefaultConfig(), vmath.NewFastRand(11))
	narrow, _ := NewConfig(10, 11, 0, 1, 0, 1)

	for i := 0; i < 100; i++ {
		pos, vel := f.Respawn(narrow)
		if pos.X < 10 || pos.X >= 11 || pos.Y < 10 || pos.Y >= 11 {
			t.Fatalf("Position out of [10,11): %v", pos)
		}
		if vel != vmath.Zero {
			t.Fatalf("Expected zero velocity with zero bound, got %v", vel)
		}
	}
}

func TestHalfOpenNeverReturnsMax(t *testing.T) {
	f, _ := NewFactory(DefaultConfig(), alwaysMax{})
	pos, _ := f.Respawn(DefaultConfig())
	if pos.X >= DefaultConfig().UpperPosBound {
		t.Errorf("Expected position below upper bound, got %v", pos.X)
	}
}

// alwaysMax yields the largest Float64 a math/rand/v2 Rand can produce
type alwaysMax struct{}

func (alwaysMax) Uint64() uint64 { return ^uint64(0) }
