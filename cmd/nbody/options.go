package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/lixenwraith/nbody/config"
)

// options holds flags that live outside the config document
type options struct {
	configPath string
	debug      bool
}

// flagValues mirrors the overridable config keys
type flagValues struct {
	bodies  int
	gravity float64
	seed    uint64
	ticks   int
	dt      float64
	fps     int
	sound   bool
	palette string
}

// resolveConfig layers defaults, the optional file, environment, then explicitly set flags
// Only flags present on the command line override, so file and env values survive flag defaults
func resolveConfig(args []string, lookup func(string) (string, bool), stderr io.Writer) (config.File, options, error) {
	var (
		opts options
		fv   flagValues
	)

	def := config.Default()
	fs := flag.NewFlagSet("nbody", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	fs.BoolVar(&opts.debug, "debug", false, "Write logs to logs/nbody.log")
	fs.IntVar(&fv.bodies, "bodies", def.World.Bodies, "Number of bodies")
	fs.Float64Var(&fv.gravity, "gravity", def.World.Gravity, "Gravitational constant")
	fs.Uint64Var(&fv.seed, "seed", def.World.Seed, "Random seed, 0 for time-based")
	fs.IntVar(&fv.ticks, "ticks", def.Run.Ticks, "Run headless for this many ticks and print a summary")
	fs.Float64Var(&fv.dt, "dt", def.Run.Dt, "Fixed headless tick length in seconds")
	fs.IntVar(&fv.fps, "fps", def.Run.FPS, "Interactive tick rate")
	fs.BoolVar(&fv.sound, "sound", def.Run.Sound, "Play sound cues for bounces and respawns")
	fs.StringVar(&fv.palette, "palette", def.Run.Palette, "Body colors: mono or spectrum")

	if err := fs.Parse(args); err != nil {
		return config.File{}, opts, err
	}
	if fs.NArg() > 0 {
		return config.File{}, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	f := def
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.File{}, opts, err
		}
		f = loaded
	}

	if err := f.ApplyEnv(lookup); err != nil {
		return config.File{}, opts, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "bodies":
			f.World.Bodies = fv.bodies
		case "gravity":
			f.World.Gravity = fv.gravity
		case "seed":
			f.World.Seed = fv.seed
		case "ticks":
			f.Run.Ticks = fv.ticks
		case "dt":
			f.Run.Dt = fv.dt
		case "fps":
			f.Run.FPS = fv.fps
		case "sound":
			f.Run.Sound = fv.sound
		case "palette":
			f.Run.Palette = fv.palette
		}
	})

	if err := f.Validate(); err != nil {
		return config.File{}, opts, err
	}
	return f, opts, nil
}

// resolveSeed returns the configured seed, or a time-based one when unset
func resolveSeed(seed uint64, now func() time.Time) uint64 {
	if seed != 0 {
		return seed
	}
	s := uint64(now().UnixNano())
	if s == 0 {
		s = 1
	}
	return s
}

// isHelp reports whether flag parsing stopped for -h
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
