package actions

import (
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

func takeHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if cmd.IsAll {
				return nil
			}
			if err := requireSingleReachable(s, defs, cmd); err != nil {
				return err
			}
			id := cmd.DirectObjects[0]
			if state.HasItem(s, id) {
				return types.NewActionError(types.ErrAlreadyHeld)
			}
			if !state.GetItemProp(s, defs, id, types.PropTakable).Bool() {
				return types.NewActionError(types.ErrNotTakable)
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			targets := cmd.DirectObjects
			if cmd.IsAll {
				targets = expandAll(s, defs, func(id types.ItemID) bool {
					return !state.HasItem(s, id) && state.GetItemProp(s, defs, id, types.PropTakable).Bool()
				})
				if len(targets) == 0 {
					return types.ActionResult{Message: "take.nothing_here"}, nil
				}
			}
			var changes []types.StateChange
			for _, id := range targets {
				changes = append(changes, types.StateChange{
					Target:   types.ItemParentKey(id),
					NewValue: types.ParentValue(types.PlayerParent()),
				})
			}
			return types.ActionResult{Message: "take.done", Changes: changes}, nil
		},
	}
}

func dropHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if cmd.IsAll {
				return nil
			}
			if len(cmd.DirectObjects) != 1 {
				return types.NewActionError(types.ErrNotReachable)
			}
			if !state.HasItem(s, cmd.DirectObjects[0]) {
				return types.CustomActionError("drop.not_held")
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			targets := cmd.DirectObjects
			if cmd.IsAll {
				targets = state.PlayerInventory(s)
				if len(targets) == 0 {
					return types.ActionResult{Message: "inventory.empty"}, nil
				}
			}
			var changes []types.StateChange
			for _, id := range targets {
				changes = append(changes, types.StateChange{
					Target:   types.ItemParentKey(id),
					NewValue: types.ParentValue(types.LocationParent(s.Player.Location)),
				})
			}
			return types.ActionResult{Message: "drop.done", Changes: changes}, nil
		},
	}
}

// putHandler serves both "put X in Y" and "put X on Y": the
// preposition alone decides whether Y must be a container or a
// surface, per the Open Question resolving them to one shared handler.
func putHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if len(cmd.DirectObjects) != 1 || len(cmd.IndirectObjects) != 1 {
				return types.NewActionError(types.ErrNotReachable)
			}
			if !state.HasItem(s, cmd.DirectObjects[0]) {
				return types.CustomActionError("put.not_held")
			}
			target := cmd.IndirectObjects[0]
			switch cmd.Preposition {
			case "on", "onto":
				if !state.GetItemProp(s, defs, target, types.PropSurface).Bool() {
					return types.CustomActionError("put.not_surface")
				}
			default:
				if !state.GetItemProp(s, defs, target, types.PropContainer).Bool() {
					return types.CustomActionError("put.not_container")
				}
				if state.GetItemProp(s, defs, target, types.PropOpenable).Bool() &&
					!state.GetItemProp(s, defs, target, types.PropOpen).Bool() {
					return types.NewActionError(types.ErrContainerClosed)
				}
			}
			if target == cmd.DirectObjects[0] {
				return types.CustomActionError("put.self")
			}
			capacity := state.GetItemProp(s, defs, target, types.PropCapacity).Int()
			if capacity > 0 && len(state.ItemsIn(s, types.ItemParent(target))) >= capacity {
				return types.NewActionError(types.ErrContainerFull)
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			item, target := cmd.DirectObjects[0], cmd.IndirectObjects[0]
			changes := []types.StateChange{{
				Target:   types.ItemParentKey(item),
				NewValue: types.ParentValue(types.ItemParent(target)),
			}}
			return types.ActionResult{Message: "put.done", Changes: changes}, nil
		},
	}
}

func wearHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if err := requireSingleReachable(s, defs, cmd); err != nil {
				return err
			}
			id := cmd.DirectObjects[0]
			if !state.GetItemProp(s, defs, id, types.PropWearable).Bool() {
				return types.CustomActionError("wear.not_wearable")
			}
			if state.GetItemProp(s, defs, id, types.PropWorn).Bool() {
				return types.CustomActionError("wear.already_worn")
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{
				{Target: types.ItemParentKey(id), NewValue: types.ParentValue(types.PlayerParent())},
				{Target: types.ItemPropertyKey(id, types.PropWorn), NewValue: types.BoolValue(true)},
			}
			return types.ActionResult{Message: "wear.done", Changes: changes}, nil
		},
	}
}

func removeWornHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if len(cmd.DirectObjects) != 1 {
				return types.NewActionError(types.ErrNotReachable)
			}
			id := cmd.DirectObjects[0]
			if !state.GetItemProp(s, defs, id, types.PropWorn).Bool() {
				return types.CustomActionError("remove.not_worn")
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{Target: types.ItemPropertyKey(id, types.PropWorn), NewValue: types.BoolValue(false)}}
			return types.ActionResult{Message: "remove.done", Changes: changes}, nil
		},
	}
}
