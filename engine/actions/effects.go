package actions

import (
	"strconv"
	"strings"

	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

// EffectContext carries the resolved command context used to expand
// {verb}/{dobj}/{iobj} template placeholders in effect params and
// narration text, the way a blueprint author writes one hook body that
// applies to whatever the player actually typed.
type EffectContext struct {
	Verb types.VerbID
	DObj types.ItemID
	IObj types.ItemID
}

// CompileEffects translates a blueprint-authored effect list into
// StateChanges (reading current GameState where a change depends on
// live data, e.g. "increment this counter", but never writing it) plus
// any narration lines and events the effects produce. The engine's
// turn loop is the only thing that ever hands the resulting changes to
// the mutation gate.
func CompileEffects(s *types.GameState, defs *state.Defs, effects []types.EffectSpec, ctx EffectContext) ([]types.StateChange, []types.Event, []string) {
	var changes []types.StateChange
	var events []types.Event
	var lines []string

	for _, eff := range effects {
		switch eff.Type {
		case "say":
			lines = append(lines, interpolate(paramStr(eff, "text"), s, defs, ctx))

		case "give_item":
			item := resolveItemParam(eff, "item", ctx)
			changes = append(changes, types.StateChange{
				Target:   types.ItemParentKey(item),
				NewValue: types.ParentValue(types.PlayerParent()),
			})
			events = append(events, types.Event{Type: "item_taken", Data: map[string]any{"item": string(item)}})

		case "remove_item":
			item := resolveItemParam(eff, "item", ctx)
			changes = append(changes, types.StateChange{
				Target:   types.ItemParentKey(item),
				NewValue: types.ParentValue(types.NowhereParent()),
			})
			events = append(events, types.Event{Type: "item_removed", Data: map[string]any{"item": string(item)}})

		case "move_item":
			item := resolveItemParam(eff, "item", ctx)
			changes = append(changes, types.StateChange{
				Target:   types.ItemParentKey(item),
				NewValue: types.ParentValue(parentFromParams(eff)),
			})

		case "move_player":
			loc := types.NewLocationID(paramStr(eff, "location"))
			changes = append(changes, types.StateChange{
				Target:   types.PropertyKey{Kind: types.KeyPlayerLocation},
				NewValue: types.LocationIDValue(loc),
			})
			events = append(events, types.Event{Type: "room_entered", Data: map[string]any{"location": string(loc)}})

		case "set_flag":
			changes = append(changes, types.StateChange{
				Target:   types.GlobalFlagKey(paramStr(eff, "flag")),
				NewValue: types.BoolValue(paramBool(eff, "value")),
			})
			events = append(events, types.Event{Type: "flag_changed", Data: map[string]any{"flag": paramStr(eff, "flag")}})

		case "set_item_prop":
			item := resolveItemParam(eff, "item", ctx)
			prop := types.NewPropertyID(paramStr(eff, "prop"))
			changes = append(changes, types.StateChange{
				Target:   types.ItemPropertyKey(item, prop),
				NewValue: paramValue(eff),
			})

		case "set_location_prop":
			loc := types.NewLocationID(paramStr(eff, "location"))
			prop := types.NewPropertyID(paramStr(eff, "prop"))
			changes = append(changes, types.StateChange{
				Target:   types.LocationPropertyKey(loc, prop),
				NewValue: paramValue(eff),
			})

		case "inc_counter":
			counter := paramStr(eff, "counter")
			current := state.GameValue(s, counter).Int()
			changes = append(changes, types.StateChange{
				Target:   types.GameSpecificKey(counter),
				NewValue: types.IntValue(current + paramInt(eff, "amount")),
			})

		case "set_counter":
			changes = append(changes, types.StateChange{
				Target:   types.GameSpecificKey(paramStr(eff, "counter")),
				NewValue: types.IntValue(paramInt(eff, "value")),
			})

		case "score":
			changes = append(changes, types.StateChange{
				Target:   types.PropertyKey{Kind: types.KeyPlayerScore},
				NewValue: types.IntValue(s.Player.Score + paramInt(eff, "amount")),
			})

		case "bind_pronoun":
			item := resolveItemParam(eff, "item", ctx)
			changes = append(changes, types.StateChange{
				Target:   types.PronounKey(paramStr(eff, "pronoun")),
				NewValue: types.ItemIDValue(item),
			})

		case "add_fuse":
			fuse := types.NewFuseID(paramStr(eff, "fuse"))
			turns := paramInt(eff, "turns")
			if def, ok := defs.Fuses[fuse]; ok && turns == 0 {
				turns = def.InitialTurns
			}
			changes = append(changes, types.StateChange{
				Target:   types.PropertyKey{Kind: types.KeyAddFuse, Fuse: fuse},
				NewValue: types.IntValue(turns),
			})

		case "remove_fuse":
			changes = append(changes, types.StateChange{
				Target: types.PropertyKey{Kind: types.KeyRemoveFuse, Fuse: types.NewFuseID(paramStr(eff, "fuse"))},
			})

		case "add_daemon":
			changes = append(changes, types.StateChange{
				Target:   types.PropertyKey{Kind: types.KeyAddDaemon, Daemon: types.NewDaemonID(paramStr(eff, "daemon"))},
				NewValue: types.BoolValue(true),
			})

		case "remove_daemon":
			changes = append(changes, types.StateChange{
				Target: types.PropertyKey{Kind: types.KeyRemoveDaemon, Daemon: types.NewDaemonID(paramStr(eff, "daemon"))},
			})

		case "emit_event":
			events = append(events, types.Event{Type: paramStr(eff, "event"), Data: map[string]any{"dobj": string(ctx.DObj), "iobj": string(ctx.IObj)}})

		default:
			// Unknown effect types are ignored rather than aborting the
			// whole hook; a typo in one line of blueprint content
			// shouldn't break every other effect in the list.
		}
	}
	return changes, events, lines
}

func parentFromParams(eff types.EffectSpec) types.Parent {
	switch paramStr(eff, "parent_kind") {
	case "location":
		return types.LocationParent(types.NewLocationID(paramStr(eff, "parent")))
	case "item":
		return types.ItemParent(types.NewItemID(paramStr(eff, "parent")))
	case "player":
		return types.PlayerParent()
	default:
		return types.NowhereParent()
	}
}

func resolveItemParam(eff types.EffectSpec, key string, ctx EffectContext) types.ItemID {
	raw := paramStr(eff, key)
	switch raw {
	case "{dobj}":
		return ctx.DObj
	case "{iobj}":
		return ctx.IObj
	default:
		return types.NewItemID(raw)
	}
}

func paramStr(eff types.EffectSpec, key string) string {
	v, _ := eff.Params[key].(string)
	return v
}

func paramBool(eff types.EffectSpec, key string) bool {
	v, _ := eff.Params[key].(bool)
	return v
}

func paramInt(eff types.EffectSpec, key string) int {
	switch n := eff.Params[key].(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}

// paramValue reads a "value" param whose Go type names the Value kind
// to build: bool, int/float64, or string.
func paramValue(eff types.EffectSpec) types.Value {
	switch v := eff.Params["value"].(type) {
	case bool:
		return types.BoolValue(v)
	case int:
		return types.IntValue(v)
	case float64:
		return types.IntValue(int(v))
	case string:
		return types.StringValue(v)
	default:
		return types.Value{}
	}
}

// interpolate expands the small fixed set of template placeholders a
// blueprint's "say" effect text may contain.
func interpolate(text string, s *types.GameState, defs *state.Defs, ctx EffectContext) string {
	r := strings.NewReplacer(
		"{verb}", string(ctx.Verb),
		"{dobj}", nameOf(s, defs, ctx.DObj),
		"{iobj}", nameOf(s, defs, ctx.IObj),
		"{score}", strconv.Itoa(s.Player.Score),
		"{moves}", strconv.Itoa(s.Player.Moves),
	)
	return r.Replace(text)
}

func nameOf(s *types.GameState, defs *state.Defs, id types.ItemID) string {
	if id == "" {
		return ""
	}
	if name := state.GetItemProp(s, defs, id, types.PropName).String(); name != "" {
		return name
	}
	return string(id)
}
