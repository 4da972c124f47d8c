package main

import (
	"fmt"
	"io"
	"log"

	"github.com/lixenwraith/nbody/config"
	"github.com/lixenwraith/nbody/simulation"
	"github.com/lixenwraith/nbody/vmath"
)

// summary accumulates tick reports over a run
type summary struct {
	ticks       uint64
	pairs       int
	reflections int
	respawns    int
	coincident  int
}

func (s *summary) add(rep simulation.Report) {
	s.ticks = rep.Tick
	s.pairs = rep.Pairs
	s.reflections += rep.Reflections
	s.respawns += rep.Respawns
	s.coincident += rep.Coincident
}

// runHeadless advances the simulation f.Run.Ticks times with the fixed dt and prints a summary
func runHeadless(f config.File, seed uint64, out io.Writer) error {
	settings, err := f.Settings()
	if err != nil {
		return err
	}
	sim, err := simulation.New(settings, vmath.NewFastRand(seed))
	if err != nil {
		return err
	}

	var sum summary
	for i := 0; i < f.Run.Ticks; i++ {
		rep, err := sim.Step(f.Run.Dt)
		if err != nil {
			return fmt.Errorf("tick %d: %w", i+1, err)
		}
		sum.add(rep)
	}
	log.Printf("headless run finished: %d ticks, %d respawns", sum.ticks, sum.respawns)

	com := sim.CenterOfMass()
	p := sim.TotalMomentum()
	fmt.Fprintf(out, "seed:            %d\n", seed)
	fmt.Fprintf(out, "bodies:          %d\n", sim.Len())
	fmt.Fprintf(out, "ticks:           %d (dt %.6fs)\n", sum.ticks, f.Run.Dt)
	fmt.Fprintf(out, "pairs per tick:  %d\n", sum.pairs)
	fmt.Fprintf(out, "reflections:     %d\n", sum.reflections)
	fmt.Fprintf(out, "respawns:        %d\n", sum.respawns)
	fmt.Fprintf(out, "coincident:      %d\n", sum.coincident)
	fmt.Fprintf(out, "center of mass:  (%.3f, %.3f)\n", com.X, com.Y)
	fmt.Fprintf(out, "total momentum:  (%.3f, %.3f)\n", p.X, p.Y)
	return nil
}
