package simulation

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/nbody/body"
	"github.com/lixenwraith/nbody/physics"
	"github.com/lixenwraith/nbody/vmath"
)

// ErrInvalidDelta is returned by Step for negative or non-finite dt
var ErrInvalidDelta = errors.New("simulation: invalid delta time")

// Report summarizes one tick
type Report struct {
	Tick        uint64 // Tick number, starting at 1
	Pairs       int    // Unique pairs evaluated, always n(n-1)/2
	Reflections int    // Bodies that touched a wall on at least one axis
	Respawns    int    // Bodies resampled for drifting past the threshold
	Coincident  int    // Pairs skipped for zero separation
}

// Simulation owns the body arena and advances it one tick at a time
// Not safe for concurrent use; the caller's loop owns it
type Simulation struct {
	settings Settings
	factory  *body.Factory
	bodies   []body.Body
	tick     uint64
}

// New generates settings.Bodies bodies from the injected random source
func New(settings Settings, src rand.Source) (*Simulation, error) {
	s, err := newSimulation(settings, src)
	if err != nil {
		return nil, err
	}
	if err := s.populate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithBodies seeds a simulation from explicit bodies, settings.Bodies is ignored
// src is still required for respawn sampling
func NewWithBodies(settings Settings, src rand.Source, bodies []body.Body) (*Simulation, error) {
	s, err := newSimulation(settings, src)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint32]struct{}, len(bodies))
	for i := range bodies {
		id := bodies[i].ID()
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate body id %d", ErrInvalidSettings, id)
		}
		seen[id] = struct{}{}
	}

	s.bodies = append(make([]body.Body, 0, len(bodies)), bodies...)
	s.settings.Bodies = len(bodies)
	return s, nil
}

func newSimulation(settings Settings, src rand.Source) (*Simulation, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	factory, err := body.NewFactory(settings.Generation, src)
	if err != nil {
		return nil, err
	}
	return &Simulation{
		settings: settings,
		factory:  factory,
	}, nil
}

func (s *Simulation) populate() error {
	bodies := make([]body.Body, 0, s.settings.Bodies)
	for i := 0; i < s.settings.Bodies; i++ {
		id := uint32(i)
		b, err := body.Spawn(id, s.factory, s.settings.Palette.ColorFor(id))
		if err != nil {
			return err
		}
		bodies = append(bodies, b)
	}
	s.bodies = bodies
	return nil
}

// Reset regenerates the population from a new source and restarts the tick counter
func (s *Simulation) Reset(src rand.Source) error {
	factory, err := body.NewFactory(s.settings.Generation, src)
	if err != nil {
		return err
	}
	prev := s.factory
	s.factory = factory
	if err := s.populate(); err != nil {
		s.factory = prev
		return err
	}
	s.tick = 0
	return nil
}

// Step advances the world by dt seconds
// Phase 1 integrates and applies wall/respawn policy to every body; phase 2 then
// accumulates forces over every unique pair using the post-phase-1 positions
func (s *Simulation) Step(dt float64) (Report, error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	s.tick++
	rep := Report{Tick: s.tick}

	bounds := s.settings.Bounds
	center := s.settings.Center
	threshold := s.settings.RespawnThreshold

	for i := range s.bodies {
		b := &s.bodies[i]
		b.Integrate(dt)
		if rx, ry := b.CheckBoundary(bounds); rx || ry {
			rep.Reflections++
		}
		if b.CheckDistanceFromCenter(center, threshold, s.factory) {
			rep.Respawns++
		}
	}

	g := s.settings.Gravity
	ForEachPair(len(s.bodies), func(i, j int) {
		rep.Pairs++
		onI, onJ, err := physics.PairForce(s.bodies[i].PointMass(), s.bodies[j].PointMass(), g)
		if err != nil {
			rep.Coincident++
			log.Printf("tick %d: skipping pair (%d, %d): %v", s.tick, s.bodies[i].ID(), s.bodies[j].ID(), err)
			return
		}
		s.bodies[i].AddForce(onI)
		s.bodies[j].AddForce(onJ)
	})

	return rep, nil
}

// ForEachPair calls fn once for every unordered index pair i < j in [0, n)
func ForEachPair(n int, fn func(i, j int)) {
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			fn(i, j)
		}
	}
}

// Len returns the body count
func (s *Simulation) Len() int {
	return len(s.bodies)
}

// Body returns a copy of the body at index i
func (s *Simulation) Body(i int) body.Body {
	return s.bodies[i]
}

// Snapshots appends the render view of every body to dst and returns it
func (s *Simulation) Snapshots(dst []body.Snapshot) []body.Snapshot {
	for i := range s.bodies {
		dst = append(dst, s.bodies[i].Snapshot())
	}
	return dst
}

// Tick returns the number of completed steps
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Settings returns the world settings
func (s *Simulation) Settings() Settings {
	return s.settings
}

// TotalMomentum returns the sum of mass * velocity
func (s *Simulation) TotalMomentum() vmath.Vec2 {
	var p vmath.Vec2
	for i := range s.bodies {
		p = p.Add(s.bodies[i].Velocity().Scale(s.bodies[i].Mass()))
	}
	return p
}

// CenterOfMass returns the mass-weighted mean position, zero for an empty world
func (s *Simulation) CenterOfMass() vmath.Vec2 {
	var sum vmath.Vec2
	var total float64
	for i := range s.bodies {
		m := s.bodies[i].Mass()
		sum = sum.Add(s.bodies[i].Position().Scale(m))
		total += m
	}
	if total == 0 {
		return vmath.Zero
	}
	return sum.Scale(1 / total)
}
