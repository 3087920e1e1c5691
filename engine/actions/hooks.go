package actions

import (
	"sort"

	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

// FindHook returns the first declared hook on an item or location
// whose Verb matches and When matches, with all Conditions holding.
// Declaration order is the tie-break: the first satisfied hook wins,
// matching the per-entity override rule in §4.5 (a hook pre-empts the
// default handler; it does not stack with it).
func FindHook(hooks []types.HookDef, verb types.VerbID, when string, s *types.GameState, defs *state.Defs) (types.HookDef, bool) {
	for _, h := range hooks {
		if h.Verb != verb || h.When != when {
			continue
		}
		if EvalAllConditions(h.Conditions, s, defs) {
			return h, true
		}
	}
	return types.HookDef{}, false
}

// RunHook compiles a matched hook's effects into an ActionResult, the
// same shape a default handler's Process step returns.
func RunHook(h types.HookDef, s *types.GameState, defs *state.Defs, ctx EffectContext) (types.ActionResult, []types.Event) {
	changes, events, lines := CompileEffects(s, defs, h.Effects, ctx)
	msg := h.Message
	if msg == "" && len(lines) > 0 {
		msg = lines[0]
	}
	return types.ActionResult{Message: msg, Changes: changes}, events
}

// BeforeTurnHooks collects, in ascending id order, every item/location
// hook that fires before the default handler runs for this command:
// the player's location first, then every item in its current room and
// in the player's inventory (§4.5's "location then items" order).
func BeforeTurnHooks(s *types.GameState, defs *state.Defs, verb types.VerbID) []types.HookDef {
	return collectHooksForVerb(s, defs, verb, "before")
}

// AfterTurnHooks mirrors BeforeTurnHooks for the "after" phase.
func AfterTurnHooks(s *types.GameState, defs *state.Defs, verb types.VerbID) []types.HookDef {
	return collectHooksForVerb(s, defs, verb, "after")
}

func collectHooksForVerb(s *types.GameState, defs *state.Defs, verb types.VerbID, when string) []types.HookDef {
	var out []types.HookDef
	if loc, ok := defs.Locations[s.Player.Location]; ok {
		for _, h := range loc.Hooks {
			if h.Verb == verb && h.When == when {
				out = append(out, h)
			}
		}
	}
	items := append(append([]types.ItemID{}, state.ItemsIn(s, types.LocationParent(s.Player.Location))...), state.PlayerInventory(s)...)
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	for _, id := range items {
		if ib, ok := defs.Items[id]; ok {
			for _, h := range ib.Hooks {
				if h.Verb == verb && h.When == when {
					out = append(out, h)
				}
			}
		}
	}
	return out
}
