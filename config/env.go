package config

import (
	"fmt"
	"strconv"
)

// Environment variable names
const (
	EnvBodies  = "NBODY_BODIES"
	EnvGravity = "NBODY_GRAVITY"
	EnvSeed    = "NBODY_SEED"
	EnvSound   = "NBODY_SOUND"
)

// ApplyEnv overrides fields from environment variables, lookup is usually os.LookupEnv
// Malformed values are errors rather than silently ignored
func (f *File) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBodies); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBodies, err)
		}
		f.World.Bodies = n
	}

	if v, ok := lookup(EnvGravity); ok && v != "" {
		g, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGravity, err)
		}
		f.World.Gravity = g
	}

	if v, ok := lookup(EnvSeed); ok && v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		f.World.Seed = s
	}

	if v, ok := lookup(EnvSound); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSound, err)
		}
		f.Run.Sound = b
	}

	return nil
}
