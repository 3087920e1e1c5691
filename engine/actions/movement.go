package actions

import (
	"github.com/nathoo/ifcore/engine/resolve"
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

func goHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if !cmd.HasDirection {
				return types.NewActionError(types.ErrNoSuchExit)
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			loc := s.Player.Location
			exits := state.LocationExitsEffective(s, loc)
			exit, ok := exits[cmd.Direction]
			if !ok {
				return types.ActionResult{}, types.NewActionError(types.ErrNoSuchExit)
			}
			if exit.HasDoor {
				if state.GetItemProp(s, defs, exit.Door, types.PropOpenable).Bool() &&
					!state.GetItemProp(s, defs, exit.Door, types.PropOpen).Bool() {
					return types.ActionResult{}, types.CustomActionError("The way is closed.")
				}
			}
			if !exit.HasDest {
				msg := exit.BlockedMsg
				if msg == "" {
					msg = "You can't go that way."
				}
				return types.ActionResult{}, types.CustomActionError(msg)
			}
			if !resolve.IsLit(s, defs, exit.Destination) && !resolve.IsLit(s, defs, loc) {
				return types.ActionResult{}, types.NewActionError(types.ErrDarkRoom)
			}
			changes := []types.StateChange{{
				Target:         types.PropertyKey{Kind: types.KeyPlayerLocation},
				HasExpectedOld: true,
				ExpectedOld:    types.LocationIDValue(loc),
				NewValue:       types.LocationIDValue(exit.Destination),
			}}
			return types.ActionResult{Message: describeRoom(s, defs, exit.Destination), Changes: changes}, nil
		},
	}
}

func enterHandler() Handler {
	return funcHandler{
		validate: requireSingleReachable,
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			if !state.GetItemProp(s, defs, id, types.PropContainer).Bool() {
				return types.ActionResult{}, types.CustomActionError("You can't get in that.")
			}
			return types.ActionResult{Message: "You get in."}, nil
		},
	}
}

func exitHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		return types.ActionResult{Message: "You get out."}, nil
	}}
}
