// Package random provides the deterministic PRNG used by judgment.
// Scoring must be reproducible across runs and across ports of the engine,
// so the resilience evaluator never touches a global random source.
package random

// Mulberry32 is a small 32-bit PRNG with a single word of state. The same
// seed always yields the same stream, which is what makes archived scrolls
// re-derivable from a match log.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 creates a stream seeded with seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 advances the stream and returns the next raw 32-bit value.
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6d2b79f5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value scaled to [0, 1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296.0
}

// Intn returns a uniform int in [0, n). Panics when n <= 0.
func (m *Mulberry32) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn with non-positive n")
	}
	return int(m.Float64() * float64(n))
}

// Bool returns true with probability p.
func (m *Mulberry32) Bool(p float64) bool {
	return m.Float64() < p
}
