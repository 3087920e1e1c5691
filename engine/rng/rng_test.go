package rng

import (
	"testing"

	"github.com/nathoo/ifcore/types"
)

func TestDeterministicSequence(t *testing.T) {
	s1 := types.NewGameState()
	s1.RNGSeed = 42
	s2 := types.NewGameState()
	s2.RNGSeed = 42

	r1, r2 := New(s1), New(s2)
	for i := 0; i < 50; i++ {
		a, b := r1.Intn(1000), r2.Intn(1000)
		if a != b {
			t.Fatalf("sequence diverged at call %d: %d != %d", i, a, b)
		}
	}
}

func TestResumeFromSavedSeed(t *testing.T) {
	s := types.NewGameState()
	s.RNGSeed = 7
	r := New(s)
	for i := 0; i < 10; i++ {
		r.Intn(100)
	}
	savedSeed, savedCalls := s.RNGSeed, s.RNGCalls

	// Simulate restoring: a fresh GameState carrying the saved seed
	// continues the identical sequence.
	restored := types.NewGameState()
	restored.RNGSeed = savedSeed
	restored.RNGCalls = savedCalls
	rRestored := New(restored)

	sContinued := &types.GameState{RNGSeed: savedSeed, RNGCalls: savedCalls}
	rContinued := New(sContinued)

	for i := 0; i < 10; i++ {
		a, b := rRestored.Intn(100), rContinued.Intn(100)
		if a != b {
			t.Fatalf("restored sequence diverged at call %d", i)
		}
	}
}

func TestPercentBounds(t *testing.T) {
	s := types.NewGameState()
	r := New(s)
	if r.Percent(0) {
		t.Fatal("Percent(0) should never succeed")
	}
	if !r.Percent(100) {
		t.Fatal("Percent(100) should always succeed")
	}
}
