// Package rngsrc implements the one random source the core engine
// consults, at three points outside the backtracking recursion: the
// catalog's one-shot pile shuffle, the prosperity-rand threshold drawn
// once when the standard constraints are built, and finalisation's
// DarkAges-base roll.
//
// Adapted from the teacher's per-stage derived RNG (pkg/rng in the
// originating repository): kingdomgen only ever needs a single stream, so
// the SHA-256 stage-derivation collapses to direct seeding; the Intn and
// Shuffle methods are kept.
package rngsrc

import (
	"math/rand"
	"time"
)

// RNG is a thin wrapper over a seeded math/rand source.
type RNG struct {
	seed   uint64
	source *rand.Rand
}

// New returns the platform's uniform integer stream, seeded with seed, or
// with the current wall time when seed is zero.
func New(seed uint64) *RNG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RNG{seed: seed, source: rand.New(rand.NewSource(int64(seed)))}
}

// Seed returns the effective seed (after any zero-seed substitution).
func (r *RNG) Seed() uint64 { return r.seed }

// Intn returns a pseudo-random integer in [0, n). It panics if n <= 0.
func (r *RNG) Intn(n int) int { return r.source.Intn(n) }

// Shuffle pseudo-randomises the order of elements via swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) { r.source.Shuffle(n, swap) }

// BadRandStream is the deterministic cross-platform stepper used when
// --badrand is requested: it advances seed by the smallest prime p with
// cap/2 < p < cap, wrapping modulo cap. It exists so generation runs are
// reproducible byte-for-byte across platforms whose math/rand
// implementations may diverge, at the cost of much weaker randomness.
type BadRandStream struct {
	seed uint64
	cap  uint64
	step uint64
}

// NewBadRandStream builds a BadRandStream for the given seed and cap.
func NewBadRandStream(seed uint64, cap uint64) *BadRandStream {
	return &BadRandStream{seed: seed, cap: cap, step: smallestPrimeInRange(cap)}
}

// Next advances the stream and returns the new value, in [0, cap).
func (b *BadRandStream) Next() uint64 {
	b.seed = (b.seed + b.step) % b.cap
	return b.seed
}

// Intn returns Next() reduced into [0, n) via modulo. It panics if n <= 0.
func (b *BadRandStream) Intn(n int) int {
	if n <= 0 {
		panic("rngsrc: Intn argument must be positive")
	}
	return int(b.Next() % uint64(n))
}

// smallestPrimeInRange finds the smallest prime p with cap/2 < p < cap.
func smallestPrimeInRange(cap uint64) uint64 {
	lower := cap / 2
	for p := lower + 1; p < cap; p++ {
		if isPrime(p) {
			return p
		}
	}
	return lower + 1
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for i := uint64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Source is implemented by both RNG and BadRandStream, letting the build
// engine and finalisation pass consume either without caring which was
// configured.
type Source interface {
	Intn(n int) int
}

// GetRandStream returns the configured random source: the deterministic
// stepper when useBadRandom is set, otherwise the platform PRNG seeded per
// New's rules. cap bounds the stepper's modulus; it is ignored by the
// platform PRNG path.
func GetRandStream(seed uint64, cap uint64, useBadRandom bool) Source {
	if useBadRandom {
		return NewBadRandStream(seed, cap)
	}
	return New(seed)
}
