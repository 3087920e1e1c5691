// Package rng implements the engine's deterministic pseudo-random
// source (§5): a fixed linear congruential generator seeded from
// GameState.RNGSeed, so that two runs started from the same seed and
// fed the same input produce identical outcomes, and a save/restore
// round-trip resumes the exact same sequence.
package rng

import "github.com/nathoo/ifcore/types"

const (
	multiplier uint64 = 6364136223846793005
	increment  uint64 = 1
)

// RNG wraps a GameState's seed and call counter; it never owns state
// of its own so that saving a GameState is all that's needed to
// reproduce the sequence.
type RNG struct {
	s *types.GameState
}

// New wraps a live GameState's RNG fields.
func New(s *types.GameState) *RNG {
	return &RNG{s: s}
}

// next advances the LCG and returns the raw 64-bit output.
func (r *RNG) next() uint64 {
	r.s.RNGSeed = r.s.RNGSeed*multiplier + increment
	r.s.RNGCalls++
	return r.s.RNGSeed
}

// Intn returns a value in [0, n). Panics on n <= 0, mirroring the
// standard library's math/rand contract that this replaces.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(r.next() % uint64(n))
}

// Percent reports a success with probability pct/100 (pct clamped to
// [0, 100]).
func (r *RNG) Percent(pct int) bool {
	if pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return r.Intn(100) < pct
}

// Pick returns a uniformly chosen index into a slice of length n,
// for callers selecting among several narration variants.
func (r *RNG) Pick(n int) int {
	return r.Intn(n)
}
