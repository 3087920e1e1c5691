package actions

import (
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

// Save and restore are handled by the engine's turn loop directly
// (they touch the filesystem/session, not just GameState), so they are
// not registered here. verbose/brief/superbrief, help and quit are
// ordinary handlers; quit ends the game at once, without asking for
// confirmation.

func displayModeHandler(mode string) Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		changes := []types.StateChange{{
			Target:   types.PropertyKey{Kind: types.KeyPlayerDisplayMode},
			NewValue: types.StringValue(mode),
		}}
		return types.ActionResult{Message: mode + " mode.", Changes: changes}, nil
	}}
}

func helpHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		return types.ActionResult{Message: "Type a verb and, if needed, an object: TAKE LAMP, GO NORTH, EXAMINE DOOR."}, nil
	}}
}

func quitHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		return types.ActionResult{
			Message:     "quit.confirm",
			SideEffects: []types.SideEffect{{Kind: types.SideEffectEndGame}},
		}, nil
	}}
}
