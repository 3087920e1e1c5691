package actions

import (
	"sort"
	"strconv"

	"github.com/nathoo/ifcore/engine/resolve"
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

func lookHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		loc := s.Player.Location
		if !resolve.IsLit(s, defs, loc) {
			return types.ActionResult{Message: "look.dark_room"}, nil
		}
		changes := []types.StateChange{{
			Target:   types.LocationPropertyKey(loc, types.PropVisited),
			NewValue: types.BoolValue(true),
		}}
		return types.ActionResult{Message: describeRoom(s, defs, loc), Changes: changes}, nil
	}}
}

func describeRoom(s *types.GameState, defs *state.Defs, loc types.LocationID) string {
	desc := state.GetLocationProp(s, defs, loc, types.PropLongDescription).String()
	if !state.GetLocationProp(s, defs, loc, types.PropVisited).Bool() {
		if first := state.GetLocationProp(s, defs, loc, types.PropFirstDescription).String(); first != "" {
			desc = first
		}
	}
	return desc
}

func examineHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			return requireSingleReachable(s, defs, cmd)
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{
				Target:   types.ItemPropertyKey(id, types.PropTouched),
				NewValue: types.BoolValue(true),
			}}
			desc := state.GetItemProp(s, defs, id, types.PropLongDescription).String()
			if desc == "" {
				desc = state.GetItemProp(s, defs, id, types.PropShortDescription).String()
			}
			return types.ActionResult{Message: desc, Changes: changes}, nil
		},
	}
}

func inventoryHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		items := state.PlayerInventory(s)
		if len(items) == 0 {
			return types.ActionResult{Message: "inventory.empty"}, nil
		}
		return types.ActionResult{Message: "inventory.header"}, nil
	}}
}

func scoreHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		return types.ActionResult{Message: "Your score is " + strconv.Itoa(s.Player.Score) + " out of " +
			strconv.Itoa(defs.Blueprint.MaximumScore) + ", in " + strconv.Itoa(s.Player.Moves) + " moves."}, nil
	}}
}

func waitHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		return types.ActionResult{Message: "Time passes."}, nil
	}}
}

func thinkAboutHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		if len(cmd.DirectObjects) == 0 {
			return types.ActionResult{Message: "You consider your situation."}, nil
		}
		return types.ActionResult{Message: "You don't reach any conclusion."}, nil
	}}
}

// requireSingleReachable is the common validate step shared by every
// handler that needs exactly one reachable direct object.
func requireSingleReachable(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
	if cmd.IsAll {
		return nil
	}
	if len(cmd.DirectObjects) != 1 {
		return types.NewActionError(types.ErrNotReachable)
	}
	scope := resolve.ScopeSet(s, defs)
	if !scope[cmd.DirectObjects[0]] {
		return types.NewActionError(types.ErrNotReachable)
	}
	return nil
}

// expandAll resolves an "all"/"everything" command into the concrete
// item list a verb should act on: every reachable item for which
// predicate holds, sorted for determinism.
func expandAll(s *types.GameState, defs *state.Defs, predicate func(types.ItemID) bool) []types.ItemID {
	var out []types.ItemID
	for _, id := range resolve.ReachableByPlayer(s, defs) {
		if predicate(id) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
