package vmath

// FastRand is a xorshift64 generator satisfying math/rand/v2 Source
// Owned by the caller and passed explicitly so runs can be seeded deterministically
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator, seed 0 is remapped to 1 (xorshift fixed point)
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// Uint64 advances the generator
func (r *FastRand) Uint64() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a value in [0, 1) using the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}
