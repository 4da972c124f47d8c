package body

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"Default", func(c *Config) {}, false},
		{"Zero std with positive mean", func(c *Config) { c.MassStd = 0 }, false},
		{"Zero velocity bound", func(c *Config) { c.VelocityBound = 0 }, false},
		{"Negative std", func(c *Config) { c.MassStd = -1 }, true},
		{"NaN std", func(c *Config) { c.MassStd = math.NaN() }, true},
		{"Inf mean", func(c *Config) { c.MassMean = math.Inf(1) }, true},
		{"Zero std non-positive mean", func(c *Config) { c.MassStd = 0; c.MassMean = 0 }, true},
		{"Inverted bounds", func(c *Config) { c.LowerPosBound, c.UpperPosBound = 10, 5 }, true},
		{"Equal bounds", func(c *Config) { c.LowerPosBound, c.UpperPosBound = 5, 5 }, true},
		{"Negative velocity bound", func(c *Config) { c.VelocityBound = -0.1 }, true},
		{"Zero mass to size", func(c *Config) { c.MassToSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	c, err := NewConfig(0, 100, 1, 5, 2, 0.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.UpperPosBound != 100 || c.MassToSize != 0.5 {
		t.Errorf("Fields not set: %+v", c)
	}

	if _, err := NewConfig(0, 100, 1, 5, -2, 0.5); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for negative std, got %v", err)
	}
}
