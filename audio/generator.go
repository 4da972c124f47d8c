package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/nbody/vmath"
)

// ClickGenerator generates a short exponentially decaying sine tick
type ClickGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewClickGenerator creates a click generator at freq Hz
func NewClickGenerator(sr beep.SampleRate, freq float64) *ClickGenerator {
	return &ClickGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 90)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}

// WhooshGenerator generates filtered noise with a falling envelope
type WhooshGenerator struct {
	sr   beep.SampleRate
	pos  int
	rng  *vmath.FastRand
	prev float64
}

// NewWhooshGenerator creates a whoosh generator drawing noise from rng
// The generator owns rng once created; the speaker goroutine streams it
func NewWhooshGenerator(sr beep.SampleRate, rng *vmath.FastRand) *WhooshGenerator {
	return &WhooshGenerator{
		sr:  sr,
		rng: rng,
	}
}

func (g *WhooshGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Quick attack, slow release
		envelope := math.Min(t/0.02, 1.0) * math.Exp(-t*10)

		noise := g.rng.Float64()*2 - 1

		// One-pole low-pass smooths the noise into air
		g.prev += 0.15 * (noise - g.prev)
		sample := 0.3 * envelope * g.prev

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *WhooshGenerator) Err() error {
	return nil
}
