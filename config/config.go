package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/nbody/body"
	"github.com/lixenwraith/nbody/core"
	"github.com/lixenwraith/nbody/parameter"
	"github.com/lixenwraith/nbody/simulation"
	"github.com/lixenwraith/nbody/vmath"
)

var (
	// ErrUnknownKey is returned when a config file contains keys no field consumes
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidRun marks invalid [run] section values
	ErrInvalidRun = errors.New("invalid run config")
)

// Generation is the [generation] section, body sampling parameters
type Generation struct {
	LowerPosBound float64 `toml:"lower_pos_bound"`
	UpperPosBound float64 `toml:"upper_pos_bound"`
	VelocityBound float64 `toml:"velocity_bound"`
	MassMean      float64 `toml:"mass_mean"`
	MassStd       float64 `toml:"mass_std"`
	MassToSize    float64 `toml:"mass_to_size"`
}

// World is the [world] section
type World struct {
	Bodies           int       `toml:"bodies"`
	Gravity          float64   `toml:"gravity"`
	Bounds           float64   `toml:"bounds"`
	Center           []float64 `toml:"center"` // [x, y], empty means arena center
	RespawnThreshold float64   `toml:"respawn_threshold"`
	Seed             uint64    `toml:"seed"` // 0 picks a time-based seed
}

// Run is the [run] section, shell behavior outside the core
type Run struct {
	FPS      int     `toml:"fps"`
	MaxDelta float64 `toml:"max_delta"` // seconds
	Dt       float64 `toml:"dt"`        // headless fixed step, seconds
	Ticks    int     `toml:"ticks"`     // > 0 runs headless
	Sound    bool    `toml:"sound"`
	Palette  string  `toml:"palette"`
}

// File is the full configuration document
type File struct {
	Generation Generation `toml:"generation"`
	World      World      `toml:"world"`
	Run        Run        `toml:"run"`
}

// Default returns stock values for every key
func Default() File {
	g := body.DefaultConfig()
	return File{
		Generation: Generation{
			LowerPosBound: g.LowerPosBound,
			UpperPosBound: g.UpperPosBound,
			VelocityBound: g.VelocityBound,
			MassMean:      g.MassMean,
			MassStd:       g.MassStd,
			MassToSize:    g.MassToSize,
		},
		World: World{
			Bodies:           parameter.BodyCount,
			Gravity:          parameter.GravitationalConstant,
			Bounds:           parameter.ArenaBounds,
			RespawnThreshold: parameter.RespawnThreshold,
		},
		Run: Run{
			FPS:      parameter.FrameRate,
			MaxDelta: parameter.MaxFrameDelta.Seconds(),
			Dt:       parameter.HeadlessDelta,
			Palette:  core.PaletteMono.String(),
		},
	}
}

// Load reads a TOML file over the defaults
func Load(path string) (File, error) {
	f := Default()
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes TOML text over the defaults
func Parse(data string) (File, error) {
	f := Default()
	md, err := toml.Decode(data, &f)
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	return f, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
}

// BodyConfig converts [generation] into a validated body.Config
func (f File) BodyConfig() (body.Config, error) {
	g := f.Generation
	return body.NewConfig(g.LowerPosBound, g.UpperPosBound, g.VelocityBound, g.MassMean, g.MassStd, g.MassToSize)
}

// Settings converts the document into validated simulation settings
func (f File) Settings() (simulation.Settings, error) {
	gen, err := f.BodyConfig()
	if err != nil {
		return simulation.Settings{}, err
	}
	palette, err := core.ParsePalette(f.Run.Palette)
	if err != nil {
		return simulation.Settings{}, fmt.Errorf("%w: %v", ErrInvalidRun, err)
	}

	center := vmath.V(f.World.Bounds*0.5, f.World.Bounds*0.5)
	switch len(f.World.Center) {
	case 0:
	case 2:
		center = vmath.V(f.World.Center[0], f.World.Center[1])
	default:
		return simulation.Settings{}, fmt.Errorf("%w: center needs 2 components, got %d", simulation.ErrInvalidSettings, len(f.World.Center))
	}

	s := simulation.Settings{
		Bodies:           f.World.Bodies,
		Gravity:          f.World.Gravity,
		Bounds:           f.World.Bounds,
		Center:           center,
		RespawnThreshold: f.World.RespawnThreshold,
		Palette:          palette,
		Generation:       gen,
	}
	if err := s.Validate(); err != nil {
		return simulation.Settings{}, err
	}
	return s, nil
}

// Validate checks the whole document
func (f File) Validate() error {
	if _, err := f.Settings(); err != nil {
		return err
	}
	r := f.Run
	if r.FPS <= 0 || r.FPS > parameter.MaxFrameRate {
		return fmt.Errorf("%w: fps must be in [1, %d], got %d", ErrInvalidRun, parameter.MaxFrameRate, r.FPS)
	}
	if !(r.MaxDelta > 0) {
		return fmt.Errorf("%w: max_delta must be positive, got %v", ErrInvalidRun, r.MaxDelta)
	}
	if !(r.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidRun, r.Dt)
	}
	if r.Ticks < 0 {
		return fmt.Errorf("%w: ticks must be non-negative, got %d", ErrInvalidRun, r.Ticks)
	}
	return nil
}

// FrameInterval returns the interactive tick period
func (r Run) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FPS)
}

// MaxFrameDelta returns the dt cap as a duration
func (r Run) MaxFrameDelta() time.Duration {
	return time.Duration(r.MaxDelta * float64(time.Second))
}
