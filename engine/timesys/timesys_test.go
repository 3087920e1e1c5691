package timesys

import (
	"testing"

	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

func testDefs() *state.Defs {
	bp := types.GameBlueprint{
		InitialPlayerLocation: types.NewLocationID("hall"),
		Locations:             []types.LocationBlueprint{{ID: types.NewLocationID("hall")}},
		Fuses:                 []types.FuseDef{{ID: types.NewFuseID("candle"), InitialTurns: 2, OnExpire: "candle_out"}},
		Daemons:               []types.DaemonDef{{ID: types.NewDaemonID("heartbeat"), Period: 3, OnTick: "pulse"}},
	}
	return state.NewDefs(bp)
}

func TestFuseDecrementsThenExpires(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)
	s.ActiveFuses[types.NewFuseID("candle")] = 2

	firings, changes := Tick(s, defs)
	if len(firings) != 0 {
		t.Fatalf("expected no firing on first tick, got %v", firings)
	}
	if err := state.ApplyAll(s, defs, changes); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s.ActiveFuses[types.NewFuseID("candle")] != 1 {
		t.Fatalf("fuse turns = %d, want 1", s.ActiveFuses[types.NewFuseID("candle")])
	}

	firings, changes = Tick(s, defs)
	if len(firings) != 1 || firings[0].Handler != "candle_out" {
		t.Fatalf("firings = %v, want candle_out", firings)
	}
	if err := state.ApplyAll(s, defs, changes); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, active := s.ActiveFuses[types.NewFuseID("candle")]; active {
		t.Fatal("fuse still active after expiry")
	}
}

func TestDaemonFiresOnPeriod(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)
	s.ActiveDaemons[types.NewDaemonID("heartbeat")] = true

	s.Player.Moves = 0
	firings, _ := Tick(s, defs)
	if len(firings) != 1 {
		t.Fatalf("expected daemon to fire at move 0, got %v", firings)
	}

	s.Player.Moves = 1
	firings, _ = Tick(s, defs)
	if len(firings) != 0 {
		t.Fatalf("expected daemon not to fire at move 1, got %v", firings)
	}

	s.Player.Moves = 3
	firings, _ = Tick(s, defs)
	if len(firings) != 1 || firings[0].Handler != "pulse" {
		t.Fatalf("expected daemon to fire at move 3, got %v", firings)
	}
}
