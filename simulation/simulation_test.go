package simulation

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/nbody/body"
	"github.com/lixenwraith/nbody/core"
	"github.com/lixenwraith/nbody/physics"
	"github.com/lixenwraith/nbody/vmath"
)

// newTestBody builds a body or fails the test
func newTestBody(t testing.TB, id uint32, pos, vel vmath.Vec2, mass float64) body.Body {
	t.Helper()
	b, err := body.New(id, body.DefaultConfig(), pos, vel, mass, core.White)
	if err != nil {
		t.Fatalf("body.New failed: %v", err)
	}
	return b
}

func TestNewDefault(t *testing.T) {
	settings := DefaultSettings()
	sim, err := New(settings, vmath.NewFastRand(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if sim.Len() != settings.Bodies {
		t.Fatalf("Expected %d bodies, got %d", settings.Bodies, sim.Len())
	}

	seen := make(map[uint32]bool)
	for i := 0; i < sim.Len(); i++ {
		b := sim.Body(i)
		if seen[b.ID()] {
			t.Errorf("Duplicate id %d", b.ID())
		}
		seen[b.ID()] = true

		p := b.Position()
		if p.X < 0 || p.X >= settings.Bounds || p.Y < 0 || p.Y >= settings.Bounds {
			t.Errorf("Body %d generated outside arena: %v", b.ID(), p)
		}
		if b.Mass() <= 0 {
			t.Errorf("Body %d has non-positive mass %v", b.ID(), b.Mass())
		}
	}
}

// TestNewFatalConfig verifies invalid distribution parameters abort setup
func TestNewFatalConfig(t *testing.T) {
	settings := DefaultSettings()
	settings.Generation.MassStd = -1

	sim, err := New(settings, vmath.NewFastRand(1))
	if !errors.Is(err, body.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
	if sim != nil {
		t.Error("Expected nil simulation on error")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
	}{
		{"Negative bodies", func(s *Settings) { s.Bodies = -1 }},
		{"Zero bounds", func(s *Settings) { s.Bounds = 0 }},
		{"NaN gravity", func(s *Settings) { s.Gravity = math.NaN() }},
		{"Inf center", func(s *Settings) { s.Center = vmath.V(math.Inf(1), 0) }},
		{"Zero threshold", func(s *Settings) { s.RespawnThreshold = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestNewWithBodiesDuplicateID(t *testing.T) {
	a := newTestBody(t, 1, vmath.V(100, 100), vmath.Zero, 1)
	b := newTestBody(t, 1, vmath.V(200, 200), vmath.Zero, 1)

	if _, err := NewWithBodies(DefaultSettings(), vmath.NewFastRand(1), []body.Body{a, b}); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("Expected ErrInvalidSettings for duplicate ids, got %v", err)
	}
}

// TestForEachPair verifies every unordered pair is visited exactly once
func TestForEachPair(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7, 50} {
		visits := make(map[[2]int]int)
		ForEachPair(n, func(i, j int) {
			if i >= j {
				t.Fatalf("Expected i < j, got (%d, %d)", i, j)
			}
			visits[[2]int{i, j}]++
		})

		if len(visits) != physics.PairCount(n) {
			t.Errorf("n=%d: expected %d pairs, got %d", n, physics.PairCount(n), len(visits))
		}
		for pair, c := range visits {
			if c != 1 {
				t.Errorf("n=%d: pair %v visited %d times", n, pair, c)
			}
		}
	}
}

func TestStepPairCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 100} {
		settings := DefaultSettings()
		settings.Bodies = n
		sim, err := New(settings, vmath.NewFastRand(uint64(n)+1))
		if err != nil {
			t.Fatal(err)
		}
		rep, err := sim.Step(1.0 / 60)
		if err != nil {
			t.Fatal(err)
		}
		if rep.Pairs != n*(n-1)/2 {
			t.Errorf("n=%d: expected %d pairs, got %d", n, n*(n-1)/2, rep.Pairs)
		}
		if rep.Tick != 1 || sim.Tick() != 1 {
			t.Errorf("Expected tick 1, got report %d sim %d", rep.Tick, sim.Tick())
		}
	}
}

func TestStepInvalidDelta(t *testing.T) {
	sim, err := New(DefaultSettings(), vmath.NewFastRand(3))
	if err != nil {
		t.Fatal(err)
	}
	before := sim.Body(0).Position()

	for _, dt := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		if _, err := sim.Step(dt); !errors.Is(err, ErrInvalidDelta) {
			t.Errorf("Expected ErrInvalidDelta for dt=%v, got %v", dt, err)
		}
	}
	if sim.Tick() != 0 || sim.Body(0).Position() != before {
		t.Error("Invalid dt must not mutate state")
	}
}

// TestTwoBodyEndToEnd verifies equal masses approach symmetrically about a fixed midpoint
// Forces from tick 1 land in velocity, positions move on tick 2
func TestTwoBodyEndToEnd(t *testing.T) {
	settings := DefaultSettings()
	settings.Gravity = 1

	a0 := vmath.V(509, 514)
	b0 := vmath.V(519, 514)
	sim, err := NewWithBodies(settings, vmath.NewFastRand(1), []body.Body{
		newTestBody(t, 0, a0, vmath.Zero, 1),
		newTestBody(t, 1, b0, vmath.Zero, 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	mid0 := a0.Add(b0).Scale(0.5)

	rep, err := sim.Step(1)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Pairs != 1 || rep.Reflections != 0 || rep.Respawns != 0 || rep.Coincident != 0 {
		t.Fatalf("Unexpected report: %+v", rep)
	}

	a, b := sim.Body(0), sim.Body(1)
	if a.Position() != a0 || b.Position() != b0 {
		t.Errorf("Positions must not move on tick 1, got %v %v", a.Position(), b.Position())
	}
	if math.Abs(a.Velocity().X-0.01) > 1e-15 || a.Velocity().Y != 0 {
		t.Errorf("Expected a velocity (0.01, 0), got %v", a.Velocity())
	}
	if a.Velocity().X != -b.Velocity().X {
		t.Errorf("Expected opposite velocities, got %v %v", a.Velocity(), b.Velocity())
	}

	if _, err := sim.Step(1); err != nil {
		t.Fatal(err)
	}
	a, b = sim.Body(0), sim.Body(1)

	da := a.Position().Sub(a0)
	db := b.Position().Sub(b0)
	if da.X <= 0 || db.X >= 0 {
		t.Errorf("Bodies must move toward each other, got deltas %v %v", da, db)
	}
	if math.Abs(da.Length()-db.Length()) > 1e-12 {
		t.Errorf("Expected equal displacement, got %v vs %v", da.Length(), db.Length())
	}
	mid := a.Position().Add(b.Position()).Scale(0.5)
	if math.Abs(mid.X-mid0.X) > 1e-9 || math.Abs(mid.Y-mid0.Y) > 1e-9 {
		t.Errorf("Midpoint moved: %v -> %v", mid0, mid)
	}
}

// TestStepForcesUsePostIntegrationPositions verifies phase 2 reads positions after phase 1
func TestStepForcesUsePostIntegrationPositions(t *testing.T) {
	settings := DefaultSettings()
	settings.Gravity = 1

	sim, err := NewWithBodies(settings, vmath.NewFastRand(1), []body.Body{
		newTestBody(t, 0, vmath.V(500, 500), vmath.V(1, 0), 1),
		newTestBody(t, 1, vmath.V(510, 500), vmath.Zero, 1),
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := sim.Step(1); err != nil {
		t.Fatal(err)
	}

	// After integration the separation is 9, not 10
	want := 1.0 / 81
	got := sim.Body(1).Velocity().X
	if math.Abs(got+want) > 1e-15 {
		t.Errorf("Expected velocity -1/81 on body 1, got %v", got)
	}
}

func TestStepMomentumConservedInterior(t *testing.T) {
	settings := DefaultSettings()
	bodies := []body.Body{
		newTestBody(t, 0, vmath.V(400, 400), vmath.V(0.5, -0.2), 3),
		newTestBody(t, 1, vmath.V(600, 450), vmath.V(-0.1, 0.3), 7),
		newTestBody(t, 2, vmath.V(500, 620), vmath.V(0.2, 0.1), 1.5),
	}
	sim, err := NewWithBodies(settings, vmath.NewFastRand(1), bodies)
	if err != nil {
		t.Fatal(err)
	}

	p0 := sim.TotalMomentum()
	for i := 0; i < 10; i++ {
		rep, err := sim.Step(1.0 / 60)
		if err != nil {
			t.Fatal(err)
		}
		if rep.Reflections != 0 || rep.Respawns != 0 {
			t.Fatalf("Test bodies left the interior: %+v", rep)
		}
	}
	p1 := sim.TotalMomentum()

	if math.Abs(p0.X-p1.X) > 1e-12 || math.Abs(p0.Y-p1.Y) > 1e-12 {
		t.Errorf("Momentum drifted: %v -> %v", p0, p1)
	}
}

// TestStepCoincidentPair verifies zero separation is skipped without NaN
func TestStepCoincidentPair(t *testing.T) {
	sim, err := NewWithBodies(DefaultSettings(), vmath.NewFastRand(1), []body.Body{
		newTestBody(t, 0, vmath.V(300, 300), vmath.Zero, 2),
		newTestBody(t, 1, vmath.V(300, 300), vmath.Zero, 2),
	})
	if err != nil {
		t.Fatal(err)
	}

	rep, err := sim.Step(0.1)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Coincident != 1 || rep.Pairs != 1 {
		t.Errorf("Expected one coincident pair, got %+v", rep)
	}
	for i := 0; i < sim.Len(); i++ {
		b := sim.Body(i)
		if !b.Velocity().IsFinite() || b.Velocity() != vmath.Zero {
			t.Errorf("Body %d velocity should stay zero, got %v", i, b.Velocity())
		}
	}
}

func TestStepRespawnAndReflection(t *testing.T) {
	settings := DefaultSettings()
	far := newTestBody(t, 0, vmath.V(-900, -900), vmath.V(-1, -1), 4)
	edge := newTestBody(t, 1, vmath.V(settings.Bounds-0.5, 500), vmath.V(2, 0), 4)

	sim, err := NewWithBodies(settings, vmath.NewFastRand(5), []body.Body{far, edge})
	if err != nil {
		t.Fatal(err)
	}

	rep, err := sim.Step(0)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Respawns != 1 {
		t.Errorf("Expected one respawn, got %d", rep.Respawns)
	}
	if rep.Reflections != 2 {
		t.Errorf("Expected two reflecting bodies, got %d", rep.Reflections)
	}

	respawned := sim.Body(0)
	if respawned.Mass() != 4 {
		t.Errorf("Respawn changed mass to %v", respawned.Mass())
	}
	p := respawned.Position()
	if p.X < 0 || p.X >= settings.Bounds || p.Y < 0 || p.Y >= settings.Bounds {
		t.Errorf("Respawned outside generation box: %v", p)
	}
}

func TestStepDeterministic(t *testing.T) {
	run := func() []body.Snapshot {
		sim, err := New(DefaultSettings(), vmath.NewFastRand(4242))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 200; i++ {
			if _, err := sim.Step(1.0 / 60); err != nil {
				t.Fatal(err)
			}
		}
		return sim.Snapshots(nil)
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Runs diverged at body %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// TestLongRunStaysFinite verifies the respawn policy keeps the system bounded
func TestLongRunStaysFinite(t *testing.T) {
	settings := DefaultSettings()
	settings.Bodies = 40
	sim, err := New(settings, vmath.NewFastRand(8))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2000; i++ {
		if _, err := sim.Step(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}

	for _, s := range sim.Snapshots(nil) {
		if !s.Position.IsFinite() {
			t.Fatalf("Body %d position not finite: %v", s.ID, s.Position)
		}
	}
}

func TestSnapshotsAppend(t *testing.T) {
	settings := DefaultSettings()
	settings.Bodies = 5
	sim, err := New(settings, vmath.NewFastRand(2))
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]body.Snapshot, 0, 8)
	buf = sim.Snapshots(buf)
	if len(buf) != 5 {
		t.Fatalf("Expected 5 snapshots, got %d", len(buf))
	}
	buf = sim.Snapshots(buf[:0])
	if len(buf) != 5 {
		t.Errorf("Expected buffer reuse to yield 5, got %d", len(buf))
	}
	for i, s := range buf {
		if s.ID != uint32(i) {
			t.Errorf("Expected id %d at index %d, got %d", i, i, s.ID)
		}
	}
}

func TestReset(t *testing.T) {
	settings := DefaultSettings()
	settings.Bodies = 10
	sim, err := New(settings, vmath.NewFastRand(1))
	if err != nil {
		t.Fatal(err)
	}
	before := sim.Snapshots(nil)
	sim.Step(0.1)

	if err := sim.Reset(vmath.NewFastRand(2)); err != nil {
		t.Fatal(err)
	}
	if sim.Tick() != 0 || sim.Len() != 10 {
		t.Errorf("Expected fresh world, got tick %d len %d", sim.Tick(), sim.Len())
	}
	after := sim.Snapshots(nil)
	if after[0].Position == before[0].Position {
		t.Error("Expected a different draw after reseeding")
	}
}

func TestCenterOfMass(t *testing.T) {
	sim, err := NewWithBodies(DefaultSettings(), vmath.NewFastRand(1), []body.Body{
		newTestBody(t, 0, vmath.V(0, 0), vmath.Zero, 1),
		newTestBody(t, 1, vmath.V(30, 0), vmath.Zero, 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	if c := sim.CenterOfMass(); c != vmath.V(20, 0) {
		t.Errorf("Expected (20,0), got %v", c)
	}

	empty, _ := NewWithBodies(DefaultSettings(), vmath.NewFastRand(1), nil)
	if c := empty.CenterOfMass(); c != vmath.Zero {
		t.Errorf("Expected zero for empty world, got %v", c)
	}
}

func benchmarkStep(b *testing.B, n int) {
	settings := DefaultSettings()
	settings.Bodies = n
	sim, err := New(settings, vmath.NewFastRand(1))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sim.Step(1.0 / 60)
	}
}

func BenchmarkStep100(b *testing.B)  { benchmarkStep(b, 100) }
func BenchmarkStep1000(b *testing.B) { benchmarkStep(b, 1000) }
