package actions

import (
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

// EvalCondition evaluates a single predicate against the current
// GameState. Conditions never mutate.
func EvalCondition(c types.Condition, s *types.GameState, defs *state.Defs) bool {
	switch c.Kind {
	case types.CondHasItem:
		return state.HasItem(s, c.Item)

	case types.CondFlagSet:
		return state.GlobalFlag(s, c.Flag)

	case types.CondFlagNot:
		return !state.GlobalFlag(s, c.Flag)

	case types.CondFlagIs:
		return state.GlobalFlag(s, c.Flag) == c.BoolVal

	case types.CondInLocation:
		return s.Player.Location == c.Location

	case types.CondPropIs:
		var actual types.Value
		if c.PropEntityKind == 1 {
			actual = state.GetLocationProp(s, defs, c.PropLocation, c.Property)
		} else {
			actual = state.GetItemProp(s, defs, c.PropItem, c.Property)
		}
		return actual.Equal(c.ExpectedValue)

	case types.CondCounterGt:
		return state.GameValue(s, c.Counter).Int() > c.Threshold

	case types.CondCounterLt:
		return state.GameValue(s, c.Counter).Int() < c.Threshold

	case types.CondNot:
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, s, defs)

	default:
		return false
	}
}

// EvalAllConditions is the AND of every condition; an empty list is
// vacuously true, matching a hook or fuse/daemon guard with no
// restriction.
func EvalAllConditions(conditions []types.Condition, s *types.GameState, defs *state.Defs) bool {
	for _, c := range conditions {
		if !EvalCondition(c, s, defs) {
			return false
		}
	}
	return true
}
