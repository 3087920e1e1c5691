package actions

import (
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

func readHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if err := requireSingleReachable(s, defs, cmd); err != nil {
				return err
			}
			if !state.GetItemProp(s, defs, cmd.DirectObjects[0], types.PropReadable).Bool() {
				return types.CustomActionError("There's nothing written on that.")
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			text := state.GetItemProp(s, defs, cmd.DirectObjects[0], types.PropReadText).String()
			return types.ActionResult{Message: text}, nil
		},
	}
}

func smellHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		return types.ActionResult{Message: "You smell nothing unusual."}, nil
	}}
}

func listenHandler() Handler {
	return funcHandler{process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
		return types.ActionResult{Message: "You hear nothing unusual."}, nil
	}}
}

func touchHandler() Handler {
	return funcHandler{
		validate: requireSingleReachable,
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{Target: types.ItemPropertyKey(id, types.PropTouched), NewValue: types.BoolValue(true)}}
			return types.ActionResult{Message: "You feel nothing special.", Changes: changes}, nil
		},
	}
}

func eatHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if err := requireSingleReachable(s, defs, cmd); err != nil {
				return err
			}
			if !state.GetItemProp(s, defs, cmd.DirectObjects[0], types.PropEdible).Bool() {
				return types.CustomActionError("That's not something you can eat.")
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			id := cmd.DirectObjects[0]
			changes := []types.StateChange{{Target: types.ItemParentKey(id), NewValue: types.ParentValue(types.NowhereParent())}}
			return types.ActionResult{Message: "You eat it. Delicious.", Changes: changes}, nil
		},
	}
}

func drinkHandler() Handler {
	return funcHandler{
		validate: func(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
			if err := requireSingleReachable(s, defs, cmd); err != nil {
				return err
			}
			if !state.GetItemProp(s, defs, cmd.DirectObjects[0], types.PropDrinkable).Bool() {
				return types.CustomActionError("That's not something you can drink.")
			}
			return nil
		},
		process: func(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
			return types.ActionResult{Message: "You drink it."}, nil
		},
	}
}
