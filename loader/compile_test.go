package loader

import (
	"testing"

	"github.com/nathoo/ifcore/types"
	lua "github.com/yuin/gopher-lua"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a
// fresh collector.
func newTestVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func TestCompileGame(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		return {
			title = "Test Game",
			start = "hall",
			max_score = 50,
			initial_sheet = { strength = 3 },
		}
	`); err != nil {
		t.Fatal(err)
	}

	bp := &types.GameBlueprint{}
	compileGame(L.CheckTable(-1), bp)

	if bp.Title != "Test Game" {
		t.Errorf("Title = %q, want %q", bp.Title, "Test Game")
	}
	if bp.InitialPlayerLocation != "hall" {
		t.Errorf("InitialPlayerLocation = %q, want hall", bp.InitialPlayerLocation)
	}
	if bp.MaximumScore != 50 {
		t.Errorf("MaximumScore = %d, want 50", bp.MaximumScore)
	}
	if bp.InitialSheet["strength"] != 3 {
		t.Errorf("InitialSheet[strength] = %d, want 3", bp.InitialSheet["strength"])
	}
}

func TestCompileItem_DefaultsAndParent(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		return {
			name = "lamp",
			light_source = true,
			parent = "hall",
		}
	`); err != nil {
		t.Fatal(err)
	}

	it := compileItem(rawItem{id: "lamp", table: L.CheckTable(-1)})
	if it.ID != "lamp" {
		t.Errorf("ID = %q, want lamp", it.ID)
	}
	if !it.Props[types.PropTakable].Bool() {
		t.Error("takable should default to true")
	}
	if !it.Props[types.PropLightSource].Bool() {
		t.Error("light_source should be true")
	}
	if it.Parent.Kind != types.ParentLocation || it.Parent.Location != "hall" {
		t.Errorf("Parent = %+v, want location hall", it.Parent)
	}
}

func TestCompileItem_ExplicitTakableFalse(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`return { name = "statue", takable = false }`); err != nil {
		t.Fatal(err)
	}
	it := compileItem(rawItem{id: "statue", table: L.CheckTable(-1)})
	if it.Props[types.PropTakable].Bool() {
		t.Error("takable should be false when explicitly set")
	}
}

func TestCompileItem_ItemParent(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`return { name = "key", parent = { item = "chest" } }`); err != nil {
		t.Fatal(err)
	}
	it := compileItem(rawItem{id: "key", table: L.CheckTable(-1)})
	if it.Parent.Kind != types.ParentItem || it.Parent.Item != "chest" {
		t.Errorf("Parent = %+v, want item chest", it.Parent)
	}
}

func TestCompileItem_PlayerParent(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`return { name = "coin", parent = { player = true } }`); err != nil {
		t.Fatal(err)
	}
	it := compileItem(rawItem{id: "coin", table: L.CheckTable(-1)})
	if it.Parent.Kind != types.ParentPlayer {
		t.Errorf("Parent.Kind = %v, want ParentPlayer", it.Parent.Kind)
	}
}

func TestCompileLocation_ExitsAndScenery(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		return {
			name = "Hall",
			description = "A hall.",
			scenery = { "mural" },
			exits = {
				north = "courtyard",
				down = { to = "cellar", door = "trapdoor", blocked_message = "It's shut." },
			},
		}
	`); err != nil {
		t.Fatal(err)
	}

	loc := compileLocation(rawLocation{id: "hall", table: L.CheckTable(-1)})
	if loc.Props[types.PropLongDescription].String() != "A hall." {
		t.Errorf("description = %q", loc.Props[types.PropLongDescription].String())
	}
	if len(loc.Scenery) != 1 || loc.Scenery[0] != "mural" {
		t.Errorf("Scenery = %v, want [mural]", loc.Scenery)
	}
	north, ok := loc.Exits[types.North]
	if !ok || north.Destination != "courtyard" || !north.HasDest {
		t.Errorf("north exit = %+v", north)
	}
	down, ok := loc.Exits[types.Down]
	if !ok || down.Destination != "cellar" || down.Door != "trapdoor" || !down.HasDoor || down.BlockedMsg != "It's shut." {
		t.Errorf("down exit = %+v", down)
	}
}

func TestCompileCondition_Kinds(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	cases := []struct {
		name   string
		script string
		check  func(t *testing.T, c types.Condition)
	}{
		{"has_item", `return HasItem("key")`, func(t *testing.T, c types.Condition) {
			if c.Kind != types.CondHasItem || c.Item != "key" {
				t.Errorf("got %+v", c)
			}
		}},
		{"flag_is", `return FlagIs("lit", true)`, func(t *testing.T, c types.Condition) {
			if c.Kind != types.CondFlagIs || c.Flag != "lit" || !c.BoolVal {
				t.Errorf("got %+v", c)
			}
		}},
		{"in_location", `return InLocation("hall")`, func(t *testing.T, c types.Condition) {
			if c.Kind != types.CondInLocation || c.Location != "hall" {
				t.Errorf("got %+v", c)
			}
		}},
		{"prop_is_item", `return PropIs("item", "lamp", "on", true)`, func(t *testing.T, c types.Condition) {
			if c.Kind != types.CondPropIs || c.PropEntityKind != 0 || c.PropItem != "lamp" || !c.ExpectedValue.Bool() {
				t.Errorf("got %+v", c)
			}
		}},
		{"prop_is_location", `return PropIs("location", "hall", "sacred", true)`, func(t *testing.T, c types.Condition) {
			if c.PropEntityKind != 1 || c.PropLocation != "hall" {
				t.Errorf("got %+v", c)
			}
		}},
		{"counter_gt", `return CounterGt("score", 10)`, func(t *testing.T, c types.Condition) {
			if c.Kind != types.CondCounterGt || c.Counter != "score" || c.Threshold != 10 {
				t.Errorf("got %+v", c)
			}
		}},
		{"not", `return Not(FlagSet("dead"))`, func(t *testing.T, c types.Condition) {
			if c.Kind != types.CondNot || c.Inner == nil || c.Inner.Kind != types.CondFlagSet || c.Inner.Flag != "dead" {
				t.Errorf("got %+v", c)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := L.DoString(tc.script); err != nil {
				t.Fatal(err)
			}
			tc.check(t, compileCondition(L.CheckTable(-1)))
			L.Pop(1)
		})
	}
}

func TestCompileEffects_RoundTripsParams(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		return {
			GiveItem("lamp"),
			Score(5),
			SetItemProp("lamp", "on", true),
			AddFuse("timer", 10),
		}
	`); err != nil {
		t.Fatal(err)
	}

	specs := compileEffects(L.CheckTable(-1))
	if len(specs) != 4 {
		t.Fatalf("expected 4 effects, got %d", len(specs))
	}
	if specs[0].Type != "give_item" || specs[0].Params["item"] != "lamp" {
		t.Errorf("specs[0] = %+v", specs[0])
	}
	if specs[1].Type != "score" || specs[1].Params["amount"].(float64) != 5 {
		t.Errorf("specs[1] = %+v", specs[1])
	}
	if specs[2].Params["prop"] != "on" || specs[2].Params["value"] != true {
		t.Errorf("specs[2] = %+v", specs[2])
	}
	if specs[3].Params["fuse"] != "timer" || specs[3].Params["turns"].(float64) != 10 {
		t.Errorf("specs[3] = %+v", specs[3])
	}
}
