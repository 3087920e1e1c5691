package actions

import (
	"testing"

	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

func newWorld() (*types.GameState, *state.Defs) {
	bp := types.GameBlueprint{
		InitialPlayerLocation: types.NewLocationID("room"),
		Locations: []types.LocationBlueprint{
			{ID: types.NewLocationID("room"), Props: map[types.PropertyID]types.Value{types.PropInherentlyLit: types.BoolValue(true)}},
		},
		Items: []types.ItemBlueprint{
			{ID: types.NewItemID("coin"), Parent: types.LocationParent(types.NewLocationID("room")), Props: map[types.PropertyID]types.Value{
				types.PropTakable: types.BoolValue(true),
			}},
			{ID: types.NewItemID("chest"), Parent: types.LocationParent(types.NewLocationID("room")), Props: map[types.PropertyID]types.Value{
				types.PropContainer: types.BoolValue(true),
				types.PropOpenable:  types.BoolValue(true),
				types.PropOpen:      types.BoolValue(false),
				types.PropLockable:  types.BoolValue(true),
				types.PropLocked:    types.BoolValue(true),
				types.PropLockKey:   types.ItemIDValue(types.NewItemID("key")),
			}},
			{ID: types.NewItemID("key"), Parent: types.LocationParent(types.NewLocationID("room")), Props: map[types.PropertyID]types.Value{
				types.PropTakable: types.BoolValue(true),
			}},
		},
	}
	defs := state.NewDefs(bp)
	return state.NewState(defs), defs
}

func apply(t *testing.T, s *types.GameState, defs *state.Defs, result types.ActionResult) {
	t.Helper()
	if err := state.ApplyAll(s, defs, result.Changes); err != nil {
		t.Fatalf("apply changes: %v", err)
	}
}

func TestTakeHandler(t *testing.T) {
	s, defs := newWorld()
	coin := types.NewItemID("coin")
	r := NewRegistry()
	h, _ := r.Get(types.NewVerbID("take"))
	cmd := types.Command{Verb: types.NewVerbID("take"), DirectObjects: []types.ItemID{coin}}

	if err := h.Validate(s, defs, cmd); err != nil {
		t.Fatalf("validate: %v", err)
	}
	result, err := h.Process(s, defs, cmd)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	apply(t, s, defs, result)
	if !state.HasItem(s, coin) {
		t.Fatal("coin not in inventory after take")
	}
}

func TestTakeAlreadyHeldRejected(t *testing.T) {
	s, defs := newWorld()
	coin := types.NewItemID("coin")
	r := NewRegistry()
	h, _ := r.Get(types.NewVerbID("take"))
	cmd := types.Command{Verb: types.NewVerbID("take"), DirectObjects: []types.ItemID{coin}}
	apply(t, s, defs, mustProcess(t, h, s, defs, cmd))

	if err := h.Validate(s, defs, cmd); err == nil || err.Kind != types.ErrAlreadyHeld {
		t.Fatalf("expected ErrAlreadyHeld, got %v", err)
	}
}

func mustProcess(t *testing.T, h Handler, s *types.GameState, defs *state.Defs, cmd types.Command) types.ActionResult {
	t.Helper()
	if err := h.Validate(s, defs, cmd); err != nil {
		t.Fatalf("validate: %v", err)
	}
	result, err := h.Process(s, defs, cmd)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	return result
}

func TestUnlockWrongKeyRejected(t *testing.T) {
	s, defs := newWorld()
	chest, wrongKey := types.NewItemID("chest"), types.NewItemID("coin")
	r := NewRegistry()
	h, _ := r.Get(types.NewVerbID("unlock"))
	cmd := types.Command{Verb: types.NewVerbID("unlock"), DirectObjects: []types.ItemID{chest}, IndirectObjects: []types.ItemID{wrongKey}}
	if err := h.Validate(s, defs, cmd); err == nil {
		t.Fatal("expected wrong-key rejection")
	}
}

func TestUnlockWithNoKeyRejected(t *testing.T) {
	s, defs := newWorld()
	chest := types.NewItemID("chest")
	r := NewRegistry()
	h, _ := r.Get(types.NewVerbID("unlock"))
	cmd := types.Command{Verb: types.NewVerbID("unlock"), DirectObjects: []types.ItemID{chest}}
	if err := h.Validate(s, defs, cmd); err == nil {
		t.Fatal("expected rejection when unlocking with no key specified")
	}
}

func TestUnlockThenOpen(t *testing.T) {
	s, defs := newWorld()
	chest, key := types.NewItemID("chest"), types.NewItemID("key")
	r := NewRegistry()

	unlock, _ := r.Get(types.NewVerbID("unlock"))
	cmd := types.Command{Verb: types.NewVerbID("unlock"), DirectObjects: []types.ItemID{chest}, IndirectObjects: []types.ItemID{key}}
	apply(t, s, defs, mustProcess(t, unlock, s, defs, cmd))
	if state.GetItemProp(s, defs, chest, types.PropLocked).Bool() {
		t.Fatal("chest still locked")
	}

	open, _ := r.Get(types.NewVerbID("open"))
	openCmd := types.Command{Verb: types.NewVerbID("open"), DirectObjects: []types.ItemID{chest}}
	apply(t, s, defs, mustProcess(t, open, s, defs, openCmd))
	if !state.GetItemProp(s, defs, chest, types.PropOpen).Bool() {
		t.Fatal("chest did not open")
	}
}

func TestPutInClosedContainerRejected(t *testing.T) {
	s, defs := newWorld()
	coin, chest := types.NewItemID("coin"), types.NewItemID("chest")
	// unlock but leave closed
	state.Apply(s, defs, types.StateChange{Target: types.ItemPropertyKey(chest, types.PropLocked), NewValue: types.BoolValue(false)})

	r := NewRegistry()
	take, _ := r.Get(types.NewVerbID("take"))
	apply(t, s, defs, mustProcess(t, take, s, defs, types.Command{Verb: types.NewVerbID("take"), DirectObjects: []types.ItemID{coin}}))

	put, _ := r.Get(types.NewVerbID("put_in"))
	cmd := types.Command{Verb: types.NewVerbID("put_in"), DirectObjects: []types.ItemID{coin}, IndirectObjects: []types.ItemID{chest}, Preposition: "in"}
	if err := put.Validate(s, defs, cmd); err == nil || err.Kind != types.ErrContainerClosed {
		t.Fatalf("expected ErrContainerClosed, got %v", err)
	}
}
