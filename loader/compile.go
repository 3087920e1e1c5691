package loader

import (
	"github.com/nathoo/ifcore/types"
	lua "github.com/yuin/gopher-lua"
)

// compile turns a collector's raw Lua tables into a GameBlueprint. It
// performs no referential-integrity checking; validate does that pass
// afterward.
func compile(coll *collector) (*types.GameBlueprint, error) {
	bp := &types.GameBlueprint{
		Handlers: map[types.HandlerID]types.ScriptedAction{},
	}

	if coll.game != nil {
		compileGame(coll.game, bp)
	}

	for _, raw := range coll.locations {
		bp.Locations = append(bp.Locations, compileLocation(raw))
	}
	for _, raw := range coll.items {
		bp.Items = append(bp.Items, compileItem(raw))
	}
	for _, raw := range coll.fuses {
		bp.Fuses = append(bp.Fuses, compileFuse(raw))
	}
	for _, raw := range coll.daemons {
		bp.Daemons = append(bp.Daemons, compileDaemon(raw))
	}
	for _, raw := range coll.handlers {
		bp.Handlers[types.HandlerID(raw.id)] = compileHandler(raw.table)
	}
	for _, raw := range coll.eventHandlers {
		bp.EventHandlers = append(bp.EventHandlers, types.EventHandlerDef{
			EventType:  raw.eventType,
			Conditions: compileConditions(getTable(raw.table, "conditions")),
			Effects:    compileEffects(getTable(raw.table, "effects")),
		})
	}

	return bp, nil
}

func compileGame(tbl *lua.LTable, bp *types.GameBlueprint) {
	bp.Title = getString(tbl, "title")
	bp.AbbreviatedTitle = getString(tbl, "abbreviated_title")
	bp.Introduction = getString(tbl, "introduction")
	bp.Release = getString(tbl, "release")
	bp.MaximumScore = getInt(tbl, "max_score")
	bp.InitialPlayerLocation = types.NewLocationID(getString(tbl, "start"))
	bp.InitialCapacity = getInt(tbl, "initial_capacity")
	bp.InitialSheet = tableToIntMap(getTable(tbl, "initial_sheet"))
	bp.Messages = tableToStringMap(getTable(tbl, "messages"))
	bp.RNGSeed = uint64(getInt(tbl, "rng_seed"))
}

func compileLocation(raw rawLocation) types.LocationBlueprint {
	tbl := raw.table
	loc := types.LocationBlueprint{
		ID:    types.NewLocationID(raw.id),
		Props: map[types.PropertyID]types.Value{},
		Exits: map[types.Direction]types.Exit{},
	}
	setStringProp(loc.Props, types.PropName, tbl, "name")
	setStringProp(loc.Props, types.PropLongDescription, tbl, "description")
	setStringProp(loc.Props, types.PropFirstDescription, tbl, "first_description")
	setBoolProp(loc.Props, types.PropInherentlyLit, tbl, "inherently_lit")
	setBoolProp(loc.Props, types.PropOutside, tbl, "outside")
	setBoolProp(loc.Props, types.PropIsWater, tbl, "is_water")
	setBoolProp(loc.Props, types.PropIsLand, tbl, "is_land")
	setBoolProp(loc.Props, types.PropSacred, tbl, "sacred")
	setBoolProp(loc.Props, types.PropOmitArticle, tbl, "omit_article")
	mergeExtraProps(loc.Props, getTable(tbl, "props"))

	if exits := getTable(tbl, "exits"); exits != nil {
		exits.ForEach(func(k, v lua.LValue) {
			dir := types.Direction(k.String())
			switch ev := v.(type) {
			case lua.LString:
				loc.Exits[dir] = types.Exit{Direction: dir, Destination: types.NewLocationID(ev.String()), HasDest: true}
			case *lua.LTable:
				e := types.Exit{Direction: dir}
				if to := getString(ev, "to"); to != "" {
					e.Destination, e.HasDest = types.NewLocationID(to), true
				}
				e.BlockedMsg = getString(ev, "blocked_message")
				if door := getString(ev, "door"); door != "" {
					e.Door, e.HasDoor = types.NewItemID(door), true
				}
				loc.Exits[dir] = e
			}
		})
	}

	for _, id := range tableToStringSlice(getTable(tbl, "scenery")) {
		loc.Scenery = append(loc.Scenery, types.NewItemID(id))
	}
	loc.Hooks = compileHooks(getTable(tbl, "hooks"))
	return loc
}

func compileItem(raw rawItem) types.ItemBlueprint {
	tbl := raw.table
	it := types.ItemBlueprint{
		ID:     types.NewItemID(raw.id),
		Props:  map[types.PropertyID]types.Value{},
		Parent: compileParent(tbl),
	}
	setStringProp(it.Props, types.PropName, tbl, "name")
	setStringSetProp(it.Props, types.PropAdjectives, tbl, "adjectives")
	setStringSetProp(it.Props, types.PropSynonyms, tbl, "synonyms")
	setStringProp(it.Props, types.PropShortDescription, tbl, "short_description")
	setStringProp(it.Props, types.PropLongDescription, tbl, "long_description")
	setStringProp(it.Props, types.PropFirstDescription, tbl, "first_description")
	setStringProp(it.Props, types.PropReadText, tbl, "read_text")
	setIntProp(it.Props, types.PropCapacity, tbl, "capacity")
	setIntProp(it.Props, types.PropSize, tbl, "size")
	if key := getString(tbl, "lock_key"); key != "" {
		it.Props[types.PropLockKey] = types.ItemIDValue(types.NewItemID(key))
	}

	// Item kind flags default to false unless set; "takable" defaults to
	// true so a bare Item{...} with no kind flags is an ordinary
	// carryable object, matching the common case in game content.
	flags := map[types.PropertyID]string{
		types.PropContainer:       "container",
		types.PropSurface:         "surface",
		types.PropOpenable:        "openable",
		types.PropOpen:            "open",
		types.PropLockable:        "lockable",
		types.PropLocked:          "locked",
		types.PropWearable:        "wearable",
		types.PropWorn:            "worn",
		types.PropLightSource:     "light_source",
		types.PropOn:              "on",
		types.PropTransparent:     "transparent",
		types.PropScenery:         "scenery",
		types.PropInvisible:       "invisible",
		types.PropReadable:        "readable",
		types.PropTouched:         "touched",
		types.PropDoor:            "door",
		types.PropPerson:          "person",
		types.PropPlural:          "plural",
		types.PropVowelStart:      "vowel_start",
		types.PropSuppressArticle: "suppress_article",
		types.PropSuppressDesc:    "suppress_description",
		types.PropBurning:         "burning",
		types.PropFlammable:       "flammable",
		types.PropEdible:          "edible",
		types.PropDrinkable:       "drinkable",
		types.PropClimbable:       "climbable",
	}
	for prop, field := range flags {
		setBoolProp(it.Props, prop, tbl, field)
	}
	if _, has := tbl.RawGetString("takable").(lua.LBool); has {
		setBoolProp(it.Props, types.PropTakable, tbl, "takable")
	} else {
		it.Props[types.PropTakable] = types.BoolValue(true)
	}

	mergeExtraProps(it.Props, getTable(tbl, "props"))
	it.Hooks = compileHooks(getTable(tbl, "hooks"))
	return it
}

// compileParent reads an item's "parent" field: a bare string names a
// location, {item="id"} nests it inside another item, {player=true}
// starts it in the player's inventory, and an absent field means
// nowhere (a blueprint must place every reachable item explicitly).
func compileParent(tbl *lua.LTable) types.Parent {
	switch pv := tbl.RawGetString("parent").(type) {
	case lua.LString:
		return types.LocationParent(types.NewLocationID(pv.String()))
	case *lua.LTable:
		if item := getString(pv, "item"); item != "" {
			return types.ItemParent(types.NewItemID(item))
		}
		if getBool(pv, "player") {
			return types.PlayerParent()
		}
	}
	return types.NowhereParent()
}

func compileFuse(raw rawFuse) types.FuseDef {
	return types.FuseDef{
		ID:           types.NewFuseID(raw.id),
		InitialTurns: getInt(raw.table, "turns"),
		OnExpire:     types.HandlerID(getString(raw.table, "on_expire")),
	}
}

func compileDaemon(raw rawDaemon) types.DaemonDef {
	return types.DaemonDef{
		ID:     types.NewDaemonID(raw.id),
		Period: getInt(raw.table, "period"),
		OnTick: types.HandlerID(getString(raw.table, "on_tick")),
	}
}

func compileHandler(tbl *lua.LTable) types.ScriptedAction {
	return types.ScriptedAction{
		Message: getString(tbl, "message"),
		Effects: compileEffects(getTable(tbl, "effects")),
	}
}

func compileHooks(tbl *lua.LTable) []types.HookDef {
	if tbl == nil {
		return nil
	}
	var out []types.HookDef
	tbl.ForEach(func(_, v lua.LValue) {
		h, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		when := getString(h, "when")
		if when == "" {
			when = "before"
		}
		out = append(out, types.HookDef{
			Verb:       types.NewVerbID(getString(h, "verb")),
			Conditions: compileConditions(getTable(h, "conditions")),
			Message:    getString(h, "message"),
			Effects:    compileEffects(getTable(h, "effects")),
			When:       when,
		})
	})
	return out
}

// compileConditions converts a Lua array of condition tables (as built
// by the HasItem/FlagSet/.../Not constructors in api.go) into typed
// Conditions.
func compileConditions(tbl *lua.LTable) []types.Condition {
	if tbl == nil {
		return nil
	}
	var out []types.Condition
	tbl.ForEach(func(_, v lua.LValue) {
		if t, ok := v.(*lua.LTable); ok {
			out = append(out, compileCondition(t))
		}
	})
	return out
}

func compileCondition(tbl *lua.LTable) types.Condition {
	switch getString(tbl, "type") {
	case "has_item":
		return types.Condition{Kind: types.CondHasItem, Item: types.NewItemID(getString(tbl, "item"))}
	case "flag_set":
		return types.Condition{Kind: types.CondFlagSet, Flag: getString(tbl, "flag")}
	case "flag_not":
		return types.Condition{Kind: types.CondFlagNot, Flag: getString(tbl, "flag")}
	case "flag_is":
		return types.Condition{Kind: types.CondFlagIs, Flag: getString(tbl, "flag"), BoolVal: getBool(tbl, "value")}
	case "in_location":
		return types.Condition{Kind: types.CondInLocation, Location: types.NewLocationID(getString(tbl, "location"))}
	case "prop_is":
		c := types.Condition{
			Kind:          types.CondPropIs,
			Property:      types.NewPropertyID(getString(tbl, "prop")),
			ExpectedValue: toValue(tbl.RawGetString("value")),
		}
		if getString(tbl, "kind") == "location" {
			c.PropEntityKind = 1
			c.PropLocation = types.NewLocationID(getString(tbl, "id"))
		} else {
			c.PropItem = types.NewItemID(getString(tbl, "id"))
		}
		return c
	case "counter_gt":
		return types.Condition{Kind: types.CondCounterGt, Counter: getString(tbl, "counter"), Threshold: getInt(tbl, "value")}
	case "counter_lt":
		return types.Condition{Kind: types.CondCounterLt, Counter: getString(tbl, "counter"), Threshold: getInt(tbl, "value")}
	case "not":
		if inner, ok := tbl.RawGetString("inner").(*lua.LTable); ok {
			c := compileCondition(inner)
			return types.Condition{Kind: types.CondNot, Inner: &c}
		}
		return types.Condition{Kind: types.CondNot}
	default:
		return types.Condition{}
	}
}

// compileEffects converts a Lua array of effect tables (as built by
// the Say/GiveItem/.../EmitEvent constructors in api.go) into
// EffectSpecs. Unlike conditions, every effect constructor already
// emits exactly the Type/Params shape engine/actions.CompileEffects
// expects, so this is a direct field copy rather than a per-type
// switch.
func compileEffects(tbl *lua.LTable) []types.EffectSpec {
	if tbl == nil {
		return nil
	}
	var out []types.EffectSpec
	tbl.ForEach(func(_, v lua.LValue) {
		t, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		spec := types.EffectSpec{Type: getString(t, "type"), Params: map[string]any{}}
		t.ForEach(func(k, val lua.LValue) {
			key := k.String()
			if key == "type" {
				return
			}
			spec.Params[key] = toGoValue(val)
		})
		out = append(out, spec)
	})
	return out
}

// --- Lua table field helpers -----------------------------------------

func getString(tbl *lua.LTable, key string) string {
	if tbl == nil {
		return ""
	}
	s, _ := tbl.RawGetString(key).(lua.LString)
	return string(s)
}

func getBool(tbl *lua.LTable, key string) bool {
	if tbl == nil {
		return false
	}
	b, _ := tbl.RawGetString(key).(lua.LBool)
	return bool(b)
}

func getNumber(tbl *lua.LTable, key string) float64 {
	if tbl == nil {
		return 0
	}
	n, _ := tbl.RawGetString(key).(lua.LNumber)
	return float64(n)
}

func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if tbl == nil {
		return nil
	}
	t, _ := tbl.RawGetString(key).(*lua.LTable)
	return t
}

func setStringProp(props map[types.PropertyID]types.Value, prop types.PropertyID, tbl *lua.LTable, key string) {
	if s := getString(tbl, key); s != "" {
		props[prop] = types.StringValue(s)
	}
}

func setBoolProp(props map[types.PropertyID]types.Value, prop types.PropertyID, tbl *lua.LTable, key string) {
	if getBool(tbl, key) {
		props[prop] = types.BoolValue(true)
	}
}

func setIntProp(props map[types.PropertyID]types.Value, prop types.PropertyID, tbl *lua.LTable, key string) {
	if n := getNumber(tbl, key); n != 0 {
		props[prop] = types.IntValue(int(n))
	}
}

func setStringSetProp(props map[types.PropertyID]types.Value, prop types.PropertyID, tbl *lua.LTable, key string) {
	if words := tableToStringSlice(getTable(tbl, key)); len(words) > 0 {
		props[prop] = types.StringSetValue(words...)
	}
}

// mergeExtraProps lets content declare arbitrary additional properties
// (props = { my_custom_flag = true, ... }) beyond the well-known ones
// this file names explicitly.
func mergeExtraProps(props map[types.PropertyID]types.Value, tbl *lua.LTable) {
	if tbl == nil {
		return
	}
	tbl.ForEach(func(k, v lua.LValue) {
		props[types.NewPropertyID(k.String())] = toValue(v)
	})
}

func tableToStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.Len(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

func tableToIntMap(tbl *lua.LTable) map[string]int {
	if tbl == nil {
		return nil
	}
	out := map[string]int{}
	tbl.ForEach(func(k, v lua.LValue) {
		if n, ok := v.(lua.LNumber); ok {
			out[k.String()] = int(n)
		}
	})
	return out
}

func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	out := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out[k.String()] = string(s)
		}
	})
	return out
}

// toValue converts a raw Lua scalar into the typed Value a Condition's
// ExpectedValue or a property's stored value needs.
func toValue(v lua.LValue) types.Value {
	switch lv := v.(type) {
	case lua.LBool:
		return types.BoolValue(bool(lv))
	case lua.LNumber:
		return types.IntValue(int(lv))
	case lua.LString:
		return types.StringValue(string(lv))
	default:
		return types.Value{}
	}
}

// toGoValue converts a raw Lua scalar into the any an EffectSpec.Params
// entry holds; engine/actions.CompileEffects's paramStr/paramBool/
// paramInt helpers already know how to read these Go types back out.
func toGoValue(v lua.LValue) any {
	switch lv := v.(type) {
	case lua.LBool:
		return bool(lv)
	case lua.LNumber:
		return float64(lv)
	case lua.LString:
		return string(lv)
	default:
		return nil
	}
}
