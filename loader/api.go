package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI installs every Lua constructor and helper function this
// package's content DSL exposes, as globals on a freshly sandboxed
// state.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Location("id") { ... } — curried: Location("id") returns a
	// function taking the property table.
	L.SetGlobal("Location", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.locations = append(coll.locations, rawLocation{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Item("id") { ... } — curried.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.items = append(coll.items, rawItem{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Fuse("id") { turns = N, on_expire = "handler_id" } — curried.
	L.SetGlobal("Fuse", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.fuses = append(coll.fuses, rawFuse{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Daemon("id") { period = N, on_tick = "handler_id" } — curried.
	L.SetGlobal("Daemon", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.daemons = append(coll.daemons, rawDaemon{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Handler("id") { message = "...", effects = {...} } — curried. A
	// fuse's on_expire, a daemon's on_tick, and an EmitEvent effect all
	// name a Handler id.
	L.SetGlobal("Handler", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.handlers = append(coll.handlers, rawHandlerDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// On("event_type") { conditions = {...}, effects = {...} }.
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		eventType := L.CheckString(1)
		tbl := L.CheckTable(2)
		coll.eventHandlers = append(coll.eventHandlers, rawEventHandler{eventType: eventType, table: tbl})
		return 0
	}))

	// Hook { verb = "...", when = "before"|"after", conditions = {...},
	// message = "...", effects = {...} } — pass-through, returns the
	// table unchanged so it can be placed directly in a Location/Item's
	// hooks = { ... } list.
	L.SetGlobal("Hook", L.NewFunction(func(L *lua.LState) int {
		L.Push(L.CheckTable(1))
		return 1
	}))
}

func registerConditionHelpers(L *lua.LState) {
	cond := func(kind string, fields map[string]lua.LValue) *lua.LTable {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(kind))
		for k, v := range fields {
			tbl.RawSetString(k, v)
		}
		return tbl
	}

	// HasItem("key")
	L.SetGlobal("HasItem", L.NewFunction(func(L *lua.LState) int {
		L.Push(cond("has_item", map[string]lua.LValue{"item": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// FlagSet("flag")
	L.SetGlobal("FlagSet", L.NewFunction(func(L *lua.LState) int {
		L.Push(cond("flag_set", map[string]lua.LValue{"flag": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// FlagNot("flag")
	L.SetGlobal("FlagNot", L.NewFunction(func(L *lua.LState) int {
		L.Push(cond("flag_not", map[string]lua.LValue{"flag": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// FlagIs("flag", value)
	L.SetGlobal("FlagIs", L.NewFunction(func(L *lua.LState) int {
		flag, value := L.CheckString(1), L.CheckBool(2)
		L.Push(cond("flag_is", map[string]lua.LValue{"flag": lua.LString(flag), "value": lua.LBool(value)}))
		return 1
	}))

	// InLocation("location_id")
	L.SetGlobal("InLocation", L.NewFunction(func(L *lua.LState) int {
		L.Push(cond("in_location", map[string]lua.LValue{"location": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// PropIs("item"|"location", "id", "prop", value)
	L.SetGlobal("PropIs", L.NewFunction(func(L *lua.LState) int {
		kind, id, prop, value := L.CheckString(1), L.CheckString(2), L.CheckString(3), L.Get(4)
		L.Push(cond("prop_is", map[string]lua.LValue{
			"kind": lua.LString(kind), "id": lua.LString(id), "prop": lua.LString(prop), "value": value,
		}))
		return 1
	}))

	// CounterGt("counter", n)
	L.SetGlobal("CounterGt", L.NewFunction(func(L *lua.LState) int {
		counter, n := L.CheckString(1), L.CheckNumber(2)
		L.Push(cond("counter_gt", map[string]lua.LValue{"counter": lua.LString(counter), "value": n}))
		return 1
	}))

	// CounterLt("counter", n)
	L.SetGlobal("CounterLt", L.NewFunction(func(L *lua.LState) int {
		counter, n := L.CheckString(1), L.CheckNumber(2)
		L.Push(cond("counter_lt", map[string]lua.LValue{"counter": lua.LString(counter), "value": n}))
		return 1
	}))

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		inner := L.CheckTable(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("not"))
		tbl.RawSetString("inner", inner)
		L.Push(tbl)
		return 1
	}))
}

// registerEffectHelpers mirrors engine/actions.CompileEffects's switch
// one-for-one: every effect type that function recognizes has exactly
// one Lua constructor here producing the matching Type/Params shape.
func registerEffectHelpers(L *lua.LState) {
	eff := func(kind string, fields map[string]lua.LValue) *lua.LTable {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(kind))
		for k, v := range fields {
			tbl.RawSetString(k, v)
		}
		return tbl
	}

	// Say("text")
	L.SetGlobal("Say", L.NewFunction(func(L *lua.LState) int {
		L.Push(eff("say", map[string]lua.LValue{"text": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// GiveItem("item")
	L.SetGlobal("GiveItem", L.NewFunction(func(L *lua.LState) int {
		L.Push(eff("give_item", map[string]lua.LValue{"item": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// RemoveItem("item")
	L.SetGlobal("RemoveItem", L.NewFunction(func(L *lua.LState) int {
		L.Push(eff("remove_item", map[string]lua.LValue{"item": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// MoveItem("item", "location"|"item"|"player"|"nowhere", "parent_id")
	L.SetGlobal("MoveItem", L.NewFunction(func(L *lua.LState) int {
		item, kind := L.CheckString(1), L.CheckString(2)
		parent := ""
		if L.GetTop() >= 3 {
			parent = L.CheckString(3)
		}
		L.Push(eff("move_item", map[string]lua.LValue{
			"item": lua.LString(item), "parent_kind": lua.LString(kind), "parent": lua.LString(parent),
		}))
		return 1
	}))

	// MovePlayer("location")
	L.SetGlobal("MovePlayer", L.NewFunction(func(L *lua.LState) int {
		L.Push(eff("move_player", map[string]lua.LValue{"location": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// SetFlag("flag", value)
	L.SetGlobal("SetFlag", L.NewFunction(func(L *lua.LState) int {
		flag, value := L.CheckString(1), L.CheckBool(2)
		L.Push(eff("set_flag", map[string]lua.LValue{"flag": lua.LString(flag), "value": lua.LBool(value)}))
		return 1
	}))

	// SetItemProp("item", "prop", value)
	L.SetGlobal("SetItemProp", L.NewFunction(func(L *lua.LState) int {
		item, prop, value := L.CheckString(1), L.CheckString(2), L.Get(3)
		L.Push(eff("set_item_prop", map[string]lua.LValue{"item": lua.LString(item), "prop": lua.LString(prop), "value": value}))
		return 1
	}))

	// SetLocationProp("location", "prop", value)
	L.SetGlobal("SetLocationProp", L.NewFunction(func(L *lua.LState) int {
		loc, prop, value := L.CheckString(1), L.CheckString(2), L.Get(3)
		L.Push(eff("set_location_prop", map[string]lua.LValue{"location": lua.LString(loc), "prop": lua.LString(prop), "value": value}))
		return 1
	}))

	// IncCounter("counter", amount)
	L.SetGlobal("IncCounter", L.NewFunction(func(L *lua.LState) int {
		counter, amount := L.CheckString(1), L.CheckNumber(2)
		L.Push(eff("inc_counter", map[string]lua.LValue{"counter": lua.LString(counter), "amount": amount}))
		return 1
	}))

	// SetCounter("counter", value)
	L.SetGlobal("SetCounter", L.NewFunction(func(L *lua.LState) int {
		counter, value := L.CheckString(1), L.CheckNumber(2)
		L.Push(eff("set_counter", map[string]lua.LValue{"counter": lua.LString(counter), "value": value}))
		return 1
	}))

	// Score(amount)
	L.SetGlobal("Score", L.NewFunction(func(L *lua.LState) int {
		L.Push(eff("score", map[string]lua.LValue{"amount": L.CheckNumber(1)}))
		return 1
	}))

	// BindPronoun("pronoun", "item")
	L.SetGlobal("BindPronoun", L.NewFunction(func(L *lua.LState) int {
		pronoun, item := L.CheckString(1), L.CheckString(2)
		L.Push(eff("bind_pronoun", map[string]lua.LValue{"pronoun": lua.LString(pronoun), "item": lua.LString(item)}))
		return 1
	}))

	// AddFuse("fuse") or AddFuse("fuse", turns) — omitted turns falls
	// back to the Fuse's own declared InitialTurns.
	L.SetGlobal("AddFuse", L.NewFunction(func(L *lua.LState) int {
		fuse := L.CheckString(1)
		turns := 0
		if L.GetTop() >= 2 {
			turns = int(L.CheckNumber(2))
		}
		L.Push(eff("add_fuse", map[string]lua.LValue{"fuse": lua.LString(fuse), "turns": lua.LNumber(turns)}))
		return 1
	}))

	// RemoveFuse("fuse")
	L.SetGlobal("RemoveFuse", L.NewFunction(func(L *lua.LState) int {
		L.Push(eff("remove_fuse", map[string]lua.LValue{"fuse": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// AddDaemon("daemon")
	L.SetGlobal("AddDaemon", L.NewFunction(func(L *lua.LState) int {
		L.Push(eff("add_daemon", map[string]lua.LValue{"daemon": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// RemoveDaemon("daemon")
	L.SetGlobal("RemoveDaemon", L.NewFunction(func(L *lua.LState) int {
		L.Push(eff("remove_daemon", map[string]lua.LValue{"daemon": lua.LString(L.CheckString(1))}))
		return 1
	}))

	// EmitEvent("event_type")
	L.SetGlobal("EmitEvent", L.NewFunction(func(L *lua.LState) int {
		L.Push(eff("emit_event", map[string]lua.LValue{"event": lua.LString(L.CheckString(1))}))
		return 1
	}))
}
