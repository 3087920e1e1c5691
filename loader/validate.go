package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/ifcore/engine/vocabulary"
	"github.com/nathoo/ifcore/types"
)

// ValidationError collects all validation errors and warnings found
// while checking a compiled GameBlueprint's referential integrity.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validEffectTypes mirrors engine/actions.CompileEffects's switch
// one-for-one; an effect type absent here can never fire at runtime,
// it is silently dropped, so a typo must be caught here instead.
var validEffectTypes = map[string]bool{
	"say": true, "give_item": true, "remove_item": true, "move_item": true,
	"move_player": true, "set_flag": true, "set_item_prop": true,
	"set_location_prop": true, "inc_counter": true, "set_counter": true,
	"score": true, "bind_pronoun": true, "add_fuse": true, "remove_fuse": true,
	"add_daemon": true, "remove_daemon": true, "emit_event": true,
}

// knownVerbs is the default verb vocabulary every game starts with.
// Since this loader's DSL has no way to declare new verbs, a hook
// naming anything outside this set can never match a parsed command.
var knownVerbs = func() map[string]bool {
	m := map[string]bool{}
	for _, def := range vocabulary.DefaultVerbs() {
		m[string(def.ID)] = true
		for _, syn := range def.Synonyms {
			m[syn] = true
		}
	}
	return m
}()

// isPlaceholder reports whether an item-valued param names the
// command's direct or indirect object rather than a fixed item id;
// engine/actions.resolveItemParam resolves these at dispatch time, so
// they can never be checked against the item table here.
func isPlaceholder(s string) bool {
	return s == "{dobj}" || s == "{iobj}"
}

// validate checks a compiled GameBlueprint for referential integrity:
// every id a hook, effect, or condition names must resolve to a
// declared item, location, fuse, daemon, or handler.
func validate(bp *types.GameBlueprint) error {
	ve := &ValidationError{}

	if bp.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}

	itemIDs := map[types.ItemID]bool{}
	for _, it := range bp.Items {
		if itemIDs[it.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate item id %q", it.ID))
		}
		itemIDs[it.ID] = true
	}
	locationIDs := map[types.LocationID]bool{}
	for _, loc := range bp.Locations {
		if locationIDs[loc.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate location id %q", loc.ID))
		}
		locationIDs[loc.ID] = true
	}
	fuseIDs := map[types.FuseID]bool{}
	for _, f := range bp.Fuses {
		if fuseIDs[f.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate fuse id %q", f.ID))
		}
		fuseIDs[f.ID] = true
	}
	daemonIDs := map[types.DaemonID]bool{}
	for _, d := range bp.Daemons {
		if daemonIDs[d.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate daemon id %q", d.ID))
		}
		daemonIDs[d.ID] = true
	}
	handlerIDs := map[types.HandlerID]bool{}
	for id := range bp.Handlers {
		handlerIDs[id] = true
	}

	refs := refSets{items: itemIDs, locations: locationIDs, fuses: fuseIDs, daemons: daemonIDs, handlers: handlerIDs}

	if bp.InitialPlayerLocation == "" {
		ve.Errors = append(ve.Errors, "Game.start is required")
	} else if !locationIDs[bp.InitialPlayerLocation] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start location %q not found in defined locations", bp.InitialPlayerLocation))
	}

	for _, loc := range bp.Locations {
		for dir, exit := range loc.Exits {
			if exit.HasDest && !locationIDs[exit.Destination] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"location %q exit %q points to undefined location %q", loc.ID, dir, exit.Destination))
			}
			if exit.HasDoor && !itemIDs[exit.Door] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"location %q exit %q door references undefined item %q", loc.ID, dir, exit.Door))
			}
		}
		for _, scenery := range loc.Scenery {
			if !itemIDs[scenery] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"location %q scenery references undefined item %q", loc.ID, scenery))
			}
		}
		validateHooks(loc.Hooks, refs, fmt.Sprintf("location %q", loc.ID), ve)
	}

	for _, it := range bp.Items {
		switch it.Parent.Kind {
		case types.ParentLocation:
			if !locationIDs[it.Parent.Location] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q parent references undefined location %q", it.ID, it.Parent.Location))
			}
		case types.ParentItem:
			if it.Parent.Item == it.ID {
				ve.Errors = append(ve.Errors, fmt.Sprintf("item %q cannot be its own parent", it.ID))
			} else if !itemIDs[it.Parent.Item] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q parent references undefined item %q", it.ID, it.Parent.Item))
			}
		case types.ParentNowhere:
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"item %q has no parent and will never be reachable in play", it.ID))
		}
		validateHooks(it.Hooks, refs, fmt.Sprintf("item %q", it.ID), ve)
	}

	for _, f := range bp.Fuses {
		if f.OnExpire != "" && !handlerIDs[f.OnExpire] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"fuse %q on_expire references undefined handler %q", f.ID, f.OnExpire))
		}
	}
	for _, d := range bp.Daemons {
		if d.OnTick != "" && !handlerIDs[d.OnTick] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"daemon %q on_tick references undefined handler %q", d.ID, d.OnTick))
		}
	}
	for id, h := range bp.Handlers {
		validateEffects(h.Effects, refs, fmt.Sprintf("handler %q", id), ve)
	}
	for i, eh := range bp.EventHandlers {
		label := fmt.Sprintf("event handler #%d (%q)", i, eh.EventType)
		if eh.EventType == "" {
			ve.Errors = append(ve.Errors, label+" has no event type")
		}
		validateConditions(eh.Conditions, refs, label, ve)
		validateEffects(eh.Effects, refs, label, ve)
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// refSets bundles the declared-id tables validation checks references
// against, so the validate* helpers don't need half a dozen separate
// map parameters each.
type refSets struct {
	items     map[types.ItemID]bool
	locations map[types.LocationID]bool
	fuses     map[types.FuseID]bool
	daemons   map[types.DaemonID]bool
	handlers  map[types.HandlerID]bool
}

func validateHooks(hooks []types.HookDef, refs refSets, owner string, ve *ValidationError) {
	for i, h := range hooks {
		label := fmt.Sprintf("%s hook #%d", owner, i)
		if h.Verb == "" {
			ve.Errors = append(ve.Errors, label+" has no verb")
		} else if !knownVerbs[string(h.Verb)] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s uses unrecognized verb %q", label, h.Verb))
		}
		if h.When != "before" && h.When != "after" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s has invalid when %q, expected before or after", label, h.When))
		}
		validateConditions(h.Conditions, refs, label, ve)
		validateEffects(h.Effects, refs, label, ve)
	}
}

func validateConditions(conditions []types.Condition, refs refSets, owner string, ve *ValidationError) {
	for _, cond := range conditions {
		switch cond.Kind {
		case types.CondHasItem:
			if !refs.items[cond.Item] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: has_item references undefined item %q", owner, cond.Item))
			}
		case types.CondFlagSet, types.CondFlagNot, types.CondFlagIs:
			if cond.Flag == "" {
				ve.Errors = append(ve.Errors, owner+": flag condition has no flag name")
			}
		case types.CondInLocation:
			if !refs.locations[cond.Location] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: in_location references undefined location %q", owner, cond.Location))
			}
		case types.CondPropIs:
			if cond.PropEntityKind == 1 {
				if !refs.locations[cond.PropLocation] {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"%s: prop_is references undefined location %q", owner, cond.PropLocation))
				}
			} else if !refs.items[cond.PropItem] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: prop_is references undefined item %q", owner, cond.PropItem))
			}
		case types.CondCounterGt, types.CondCounterLt:
			if cond.Counter == "" {
				ve.Errors = append(ve.Errors, owner+": counter condition has no counter name")
			}
		case types.CondNot:
			if cond.Inner == nil {
				ve.Errors = append(ve.Errors, owner+": not condition has no inner condition")
			} else {
				validateConditions([]types.Condition{*cond.Inner}, refs, owner, ve)
			}
		}
	}
}

func validateEffects(effects []types.EffectSpec, refs refSets, owner string, ve *ValidationError) {
	for _, eff := range effects {
		if !validEffectTypes[eff.Type] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown effect type %q", owner, eff.Type))
			continue
		}

		item := func(key string) (types.ItemID, bool) {
			s, _ := eff.Params[key].(string)
			return types.NewItemID(s), s != "" && !isPlaceholder(s)
		}

		switch eff.Type {
		case "give_item", "remove_item", "set_item_prop", "bind_pronoun":
			if id, check := item("item"); check && !refs.items[id] {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s references undefined item %q", owner, eff.Type, id))
			}
		case "move_item":
			if id, check := item("item"); check && !refs.items[id] {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: move_item references undefined item %q", owner, id))
			}
			parent, _ := eff.Params["parent"].(string)
			switch kind, _ := eff.Params["parent_kind"].(string); kind {
			case "location":
				if loc := types.NewLocationID(parent); parent != "" && !refs.locations[loc] {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"%s: move_item references undefined location %q", owner, loc))
				}
			case "item":
				if id := types.NewItemID(parent); parent != "" && !refs.items[id] {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"%s: move_item references undefined item %q", owner, id))
				}
			}
		case "move_player", "set_location_prop":
			if loc, _ := eff.Params["location"].(string); loc != "" {
				if id := types.NewLocationID(loc); !refs.locations[id] {
					ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s references undefined location %q", owner, eff.Type, id))
				}
			}
		case "add_fuse", "remove_fuse":
			if fuse, _ := eff.Params["fuse"].(string); fuse != "" {
				if id := types.NewFuseID(fuse); !refs.fuses[id] {
					ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s references undefined fuse %q", owner, eff.Type, id))
				}
			}
		case "add_daemon", "remove_daemon":
			if daemon, _ := eff.Params["daemon"].(string); daemon != "" {
				if id := types.NewDaemonID(daemon); !refs.daemons[id] {
					ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s references undefined daemon %q", owner, eff.Type, id))
				}
			}
		}
	}
}
