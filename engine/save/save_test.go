package save

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

func testDefs() *state.Defs {
	bp := types.GameBlueprint{
		InitialPlayerLocation: types.NewLocationID("cellar"),
		InitialCapacity:       5,
		Locations: []types.LocationBlueprint{
			{ID: types.NewLocationID("cellar"), Props: map[types.PropertyID]types.Value{types.PropInherentlyLit: types.BoolValue(false)}},
		},
		Items: []types.ItemBlueprint{
			{ID: types.NewItemID("lamp"), Parent: types.LocationParent(types.NewLocationID("cellar")), Props: map[types.PropertyID]types.Value{
				types.PropLightSource: types.BoolValue(true),
				types.PropOn:          types.BoolValue(false),
			}},
		},
		Fuses: []types.FuseDef{{ID: types.NewFuseID("timer"), InitialTurns: 10, OnExpire: "expire"}},
	}
	return state.NewDefs(bp)
}

func TestRoundTrip(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)
	lamp := types.NewItemID("lamp")

	if err := state.Apply(s, defs, types.StateChange{
		Target:   types.ItemParentKey(lamp),
		NewValue: types.ParentValue(types.PlayerParent()),
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := state.Apply(s, defs, types.StateChange{
		Target:   types.ItemPropertyKey(lamp, types.PropOn),
		NewValue: types.BoolValue(true),
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := state.Apply(s, defs, types.StateChange{
		Target:   types.PropertyKey{Kind: types.KeyAddFuse, Fuse: types.NewFuseID("timer")},
		NewValue: types.IntValue(3),
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	s.Player.Score = 15
	s.Player.Moves = 7
	s.GlobalFlags["met_wizard"] = types.BoolValue(true)
	s.Pronouns["it"] = lamp
	s.RNGSeed = 999

	d := FromGameState(s, "Test Game")
	raw, err := Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	restoredData, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	fresh := state.NewState(defs)
	if err := ApplyTo(fresh, restoredData); err != nil {
		t.Fatalf("apply to: %v", err)
	}

	if diff := deep.Equal(fresh.Items[lamp].Parent, s.Items[lamp].Parent); diff != nil {
		t.Errorf("parent mismatch: %v", diff)
	}
	if !fresh.Items[lamp].Props[types.PropOn].Equal(s.Items[lamp].Props[types.PropOn]) {
		t.Error("lamp on-ness did not round-trip")
	}
	if fresh.Player.Score != 15 || fresh.Player.Moves != 7 {
		t.Errorf("player fields did not round-trip: %+v", fresh.Player)
	}
	if fresh.ActiveFuses[types.NewFuseID("timer")] != 3 {
		t.Errorf("fuse turns did not round-trip: %d", fresh.ActiveFuses[types.NewFuseID("timer")])
	}
	if !fresh.GlobalFlags["met_wizard"].Bool() {
		t.Error("global flag did not round-trip")
	}
	if fresh.Pronouns["it"] != lamp {
		t.Error("pronoun binding did not round-trip")
	}
	if fresh.RNGSeed != 999 {
		t.Error("rng seed did not round-trip")
	}
}

func TestUnmarshalRejectsWrongVersion(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version": 999}`))
	if err == nil {
		t.Fatal("expected version mismatch to be rejected")
	}
}

func TestUnmarshalRejectsMalformedJSON(t *testing.T) {
	_, err := Unmarshal([]byte(`not json`))
	if err == nil {
		t.Fatal("expected malformed JSON to be rejected")
	}
}
