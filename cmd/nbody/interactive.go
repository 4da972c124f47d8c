package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nbody/audio"
	"github.com/lixenwraith/nbody/body"
	"github.com/lixenwraith/nbody/config"
	"github.com/lixenwraith/nbody/engine"
	"github.com/lixenwraith/nbody/render"
	"github.com/lixenwraith/nbody/simulation"
	"github.com/lixenwraith/nbody/vmath"
)

// command is the loop's reaction to one input event
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdPause
	cmdReseed
	cmdStep
	cmdResize
)

// translateEvent maps terminal events to loop commands
func translateEvent(ev tcell.Event) command {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return cmdResize
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return cmdQuit
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return cmdQuit
			case ' ':
				return cmdPause
			case 'r', 'R':
				return cmdReseed
			case '.':
				return cmdStep
			}
		}
	}
	return cmdNone
}

// session bundles the state one interactive run mutates
type session struct {
	cfg      config.File
	sim      *simulation.Simulation
	renderer *render.TerminalRenderer
	clock    *engine.FrameClock
	sound    *audio.SoundManager

	seed     uint64
	respawns int
	fps      float64
	snaps    []body.Snapshot
	last     simulation.Report
}

// advance steps the simulation by dt, dt == 0 is a no-op
func (s *session) advance(dt float64) {
	if dt <= 0 {
		return
	}
	rep, err := s.sim.Step(dt)
	if err != nil {
		log.Printf("step: %v", err)
		return
	}
	s.last = rep
	s.respawns += rep.Respawns
	if s.sound != nil {
		s.sound.OnTick(rep)
	}

	// Smoothed frame rate from delivered dt
	inst := 1 / dt
	if s.fps == 0 {
		s.fps = inst
	} else {
		s.fps += 0.1 * (inst - s.fps)
	}
}

// reseed regenerates every body from a fresh seed
func (s *session) reseed(seed uint64) {
	if err := s.sim.Reset(vmath.NewFastRand(seed)); err != nil {
		log.Printf("reseed %d: %v", seed, err)
		return
	}
	s.seed = seed
	s.respawns = 0
	s.last = simulation.Report{}
	log.Printf("reseeded with %d", seed)
}

func (s *session) draw() {
	s.snaps = s.sim.Snapshots(s.snaps[:0])
	s.renderer.RenderFrame(s.snaps, render.Status{
		Tick:     s.sim.Tick(),
		Bodies:   s.sim.Len(),
		Pairs:    s.last.Pairs,
		Respawns: s.respawns,
		FPS:      s.fps,
		Seed:     s.seed,
		Paused:   s.clock.IsPaused(),
	})
}

// handle applies a command, returns false to quit
func (s *session) handle(cmd command) bool {
	switch cmd {
	case cmdQuit:
		return false
	case cmdPause:
		s.clock.Toggle()
	case cmdReseed:
		s.reseed(resolveSeed(0, time.Now))
	case cmdStep:
		if s.clock.IsPaused() {
			s.advance(1 / float64(s.cfg.Run.FPS))
		}
	case cmdResize:
		s.renderer.Resize()
	}
	return true
}

// runInteractive drives the simulation at the configured frame rate until quit
func runInteractive(f config.File, seed uint64) error {
	settings, err := f.Settings()
	if err != nil {
		return err
	}
	sim, err := simulation.New(settings, vmath.NewFastRand(seed))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mNBODY CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	s := &session{
		cfg:      f,
		sim:      sim,
		renderer: render.NewTerminalRenderer(screen, settings.Bounds),
		clock:    engine.NewFrameClock(engine.NewMonotonicTimeProvider(), f.Run.MaxFrameDelta()),
		seed:     seed,
		snaps:    make([]body.Snapshot, 0, sim.Len()),
	}

	if f.Run.Sound {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the run continues silently
			log.Printf("Audio initialization failed: %v", err)
		} else {
			s.sound = sm
			defer sm.Cleanup()
		}
	}

	eventChan := make(chan tcell.Event, 64)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(f.Run.FrameInterval())
	defer frameTicker.Stop()

	log.Printf("interactive run: %d bodies, seed %d, %d fps", sim.Len(), seed, f.Run.FPS)
	s.draw()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			cmd := translateEvent(ev)
			if cmd == cmdResize {
				screen.Sync()
			}
			if !s.handle(cmd) {
				return nil
			}
			s.draw()

		case <-frameTicker.C:
			s.advance(s.clock.Tick())
			s.draw()
		}
	}
}
