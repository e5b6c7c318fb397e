package rngsrc

import "testing"

func TestNewZeroSeedIsReplaced(t *testing.T) {
	r := New(0)
	if r.Seed() == 0 {
		t.Fatal("expected a zero seed to be replaced by wall-time derived seed")
	}
}

func TestDeterministicGivenSeed(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 50; i++ {
		x := a.Intn(1000)
		y := b.Intn(1000)
		if x != y {
			t.Fatalf("same seed should produce same stream, diverged at draw %d: %d vs %d", i, x, y)
		}
	}
}

func TestBadRandStreamDeterministic(t *testing.T) {
	a := NewBadRandStream(7, 100)
	b := NewBadRandStream(7, 100)
	for i := 0; i < 20; i++ {
		if a.Next() != b.Next() {
			t.Fatal("bad-rand stream must be deterministic given the same seed and cap")
		}
	}
}

func TestBadRandStreamStaysInRange(t *testing.T) {
	s := NewBadRandStream(3, 50)
	for i := 0; i < 200; i++ {
		v := s.Next()
		if v >= 50 {
			t.Fatalf("value %d escaped cap 50", v)
		}
	}
}

func TestSmallestPrimeInRange(t *testing.T) {
	p := smallestPrimeInRange(20)
	if p <= 10 || p >= 20 || !isPrime(p) {
		t.Fatalf("expected a prime strictly between 10 and 20, got %d", p)
	}
}

func TestGetRandStreamSelectsImplementation(t *testing.T) {
	bad := GetRandStream(5, 30, true)
	if _, ok := bad.(*BadRandStream); !ok {
		t.Fatal("expected BadRandStream when useBadRandom is true")
	}
	good := GetRandStream(5, 30, false)
	if _, ok := good.(*RNG); !ok {
		t.Fatal("expected platform RNG when useBadRandom is false")
	}
}
