package actions

import (
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

func openHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if err := requireSingleReachable(s, defs, cmd); err != nil {
				return err
			}
			id := cmd.DirectObjects[0]
			if !state.GetItemProp(s, defs, id, types.PropOpenable).Bool() {
				return types.CustomActionError("open.not_openable")
			}
			if state.GetItemProp(s, defs, id, types.PropOpen).Bool() {
				return types.CustomActionError("open.already_open")
			}
			if state.GetItemProp(s, defs, id, types.PropLocked).Bool() {
				return types.NewActionError(types.ErrDoorLocked)
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{Target: types.ItemPropertyKey(id, types.PropOpen), NewValue: types.BoolValue(true)}}
			return types.ActionResult{Message: "open.done", Changes: changes}, nil
		},
	}
}

func closeHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if err := requireSingleReachable(s, defs, cmd); err != nil {
				return err
			}
			id := cmd.DirectObjects[0]
			if !state.GetItemProp(s, defs, id, types.PropOpenable).Bool() {
				return types.CustomActionError("close.not_openable")
			}
			if !state.GetItemProp(s, defs, id, types.PropOpen).Bool() {
				return types.CustomActionError("close.already_closed")
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{Target: types.ItemPropertyKey(id, types.PropOpen), NewValue: types.BoolValue(false)}}
			return types.ActionResult{Message: "close.done", Changes: changes}, nil
		},
	}
}

func lockHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if len(cmd.DirectObjects) != 1 {
				return types.NewActionError(types.ErrNotReachable)
			}
			id := cmd.DirectObjects[0]
			if !state.GetItemProp(s, defs, id, types.PropLockable).Bool() {
				return types.NewActionError(types.ErrNotReachable)
			}
			if len(cmd.IndirectObjects) != 1 {
				return types.CustomActionError("unlock.wrong_key")
			}
			key := state.GetItemProp(s, defs, id, types.PropLockKey).ItemID()
			if key != cmd.IndirectObjects[0] {
				return types.CustomActionError("unlock.wrong_key")
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{Target: types.ItemPropertyKey(id, types.PropLocked), NewValue: types.BoolValue(true)}}
			return types.ActionResult{Message: "lock.done", Changes: changes}, nil
		},
	}
}

func unlockHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if len(cmd.DirectObjects) != 1 {
				return types.NewActionError(types.ErrNotReachable)
			}
			id := cmd.DirectObjects[0]
			if !state.GetItemProp(s, defs, id, types.PropLockable).Bool() {
				return types.NewActionError(types.ErrNotReachable)
			}
			if !state.GetItemProp(s, defs, id, types.PropLocked).Bool() {
				return types.CustomActionError("unlock.already_unlocked")
			}
			if len(cmd.IndirectObjects) != 1 {
				return types.CustomActionError("unlock.wrong_key")
			}
			key := state.GetItemProp(s, defs, id, types.PropLockKey).ItemID()
			if key != cmd.IndirectObjects[0] {
				return types.CustomActionError("unlock.wrong_key")
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{Target: types.ItemPropertyKey(id, types.PropLocked), NewValue: types.BoolValue(false)}}
			return types.ActionResult{Message: "unlock.done", Changes: changes}, nil
		},
	}
}

func turnOnHandler() Handler {
	return funcHandler{
		validate: requireSingleReachable,
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{Target: types.ItemPropertyKey(id, types.PropOn), NewValue: types.BoolValue(true)}}
			return types.ActionResult{Message: "turn_on.done", Changes: changes}, nil
		},
	}
}

func turnOffHandler() Handler {
	return funcHandler{
		validate: requireSingleReachable,
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{Target: types.ItemPropertyKey(id, types.PropOn), NewValue: types.BoolValue(false)}}
			return types.ActionResult{Message: "turn_off.done", Changes: changes}, nil
		},
	}
}
