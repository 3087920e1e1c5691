// Package state owns the Defs (compiled, immutable game content) and
// the single mutation gate over GameState: GameState.Apply is never
// called directly by handlers — only the engine's turn loop calls it,
// with the validated StateChange lists handlers return.
package state

import (
	"github.com/nathoo/ifcore/types"
)

// ComputedPropertyFunc computes a property value on demand instead of
// reading it from the stored property bag. Registered per (entity,
// property) at blueprint-compile time.
type ComputedPropertyFunc func(s *types.GameState, defs *Defs) types.Value

// Defs holds the immutable content compiled from a GameBlueprint: the
// vocabulary's raw material, item/location/fuse/daemon definitions,
// scripted handlers, and the message catalogue overrides.
type Defs struct {
	Blueprint types.GameBlueprint

	Items     map[types.ItemID]types.ItemBlueprint
	Locations map[types.LocationID]types.LocationBlueprint
	Verbs     map[types.VerbID]types.VerbDef
	Fuses     map[types.FuseID]types.FuseDef
	Daemons   map[types.DaemonID]types.DaemonDef

	Handlers      map[types.HandlerID]types.ScriptedAction
	EventHandlers []types.EventHandlerDef
	Messages      map[string]string

	itemComputers     map[types.ItemID]map[types.PropertyID]ComputedPropertyFunc
	locationComputers map[types.LocationID]map[types.PropertyID]ComputedPropertyFunc
}

// NewDefs compiles a GameBlueprint into Defs. It performs no
// referential-integrity validation; that is the loader's job (so a
// hand-built Defs used in tests need not go through the Lua pipeline).
func NewDefs(bp types.GameBlueprint) *Defs {
	d := &Defs{
		Blueprint:         bp,
		Items:             map[types.ItemID]types.ItemBlueprint{},
		Locations:         map[types.LocationID]types.LocationBlueprint{},
		Verbs:             map[types.VerbID]types.VerbDef{},
		Fuses:             map[types.FuseID]types.FuseDef{},
		Daemons:           map[types.DaemonID]types.DaemonDef{},
		Handlers:          bp.Handlers,
		EventHandlers:     bp.EventHandlers,
		Messages:          bp.Messages,
		itemComputers:     map[types.ItemID]map[types.PropertyID]ComputedPropertyFunc{},
		locationComputers: map[types.LocationID]map[types.PropertyID]ComputedPropertyFunc{},
	}
	if d.Handlers == nil {
		d.Handlers = map[types.HandlerID]types.ScriptedAction{}
	}
	if d.Messages == nil {
		d.Messages = map[string]string{}
	}
	for _, it := range bp.Items {
		d.Items[it.ID] = it
	}
	for _, loc := range bp.Locations {
		d.Locations[loc.ID] = loc
	}
	for _, v := range bp.Verbs {
		d.Verbs[v.ID] = v
	}
	for _, f := range bp.Fuses {
		d.Fuses[f.ID] = f
	}
	for _, dm := range bp.Daemons {
		d.Daemons[dm.ID] = dm
	}
	return d
}

// RegisterItemComputer installs a computed-property callback for an
// item, overriding the stored value whenever that property is read.
func (d *Defs) RegisterItemComputer(id types.ItemID, prop types.PropertyID, fn ComputedPropertyFunc) {
	m, ok := d.itemComputers[id]
	if !ok {
		m = map[types.PropertyID]ComputedPropertyFunc{}
		d.itemComputers[id] = m
	}
	m[prop] = fn
}

// RegisterLocationComputer installs a computed-property callback for a
// location.
func (d *Defs) RegisterLocationComputer(id types.LocationID, prop types.PropertyID, fn ComputedPropertyFunc) {
	m, ok := d.locationComputers[id]
	if !ok {
		m = map[types.PropertyID]ComputedPropertyFunc{}
		d.locationComputers[id] = m
	}
	m[prop] = fn
}

// inProgressKey identifies one (entity, property) evaluation in flight,
// used by the computed-property re-entrancy guard.
type inProgressKey struct {
	isLocation bool
	id         string
	prop       types.PropertyID
}

// guard tracks in-flight computed-property evaluations per GameState so
// that a computer which reads its own property falls back to the
// stored value instead of recursing forever. Keyed by GameState pointer
// since a process may hold more than one GameState (e.g. a snapshot
// used for scope resolution alongside the live state).
var guards = map[*types.GameState]map[inProgressKey]bool{}

func guardFor(s *types.GameState) map[inProgressKey]bool {
	g, ok := guards[s]
	if !ok {
		g = map[inProgressKey]bool{}
		guards[s] = g
	}
	return g
}

// NewState creates a fresh GameState from Defs: every blueprint item
// and location becomes a live entity; the player starts at the
// blueprint's initial location.
func NewState(defs *Defs) *types.GameState {
	s := types.NewGameState()
	for id, ib := range defs.Items {
		props := make(map[types.PropertyID]types.Value, len(ib.Props))
		for k, v := range ib.Props {
			props[k] = v.Clone()
		}
		s.Items[id] = &types.Item{ID: id, Parent: ib.Parent, Props: props}
	}
	for id, lb := range defs.Locations {
		props := make(map[types.PropertyID]types.Value, len(lb.Props))
		for k, v := range lb.Props {
			props[k] = v.Clone()
		}
		exits := make(map[types.Direction]types.Exit, len(lb.Exits))
		for k, v := range lb.Exits {
			exits[k] = v
		}
		s.Locations[id] = &types.Location{ID: id, Props: props, Exits: exits, Scenery: append([]types.ItemID(nil), lb.Scenery...)}
	}
	s.Player = types.Player{
		Location:    defs.Blueprint.InitialPlayerLocation,
		Capacity:    defs.Blueprint.InitialCapacity,
		Sheet:       copyIntMap(defs.Blueprint.InitialSheet),
		DisplayMode: "verbose",
	}
	s.RNGSeed = defs.Blueprint.RNGSeed
	return s
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// --- Read views -----------------------------------------------------

// ItemExists reports whether id currently names a live item.
func ItemExists(s *types.GameState, id types.ItemID) bool {
	_, ok := s.Items[id]
	return ok
}

// LocationExists reports whether id currently names a live location.
func LocationExists(s *types.GameState, id types.LocationID) bool {
	_, ok := s.Locations[id]
	return ok
}

// ItemLocation returns the current Parent of an item.
func ItemLocation(s *types.GameState, id types.ItemID) types.Parent {
	it, ok := s.Items[id]
	if !ok {
		return types.NowhereParent()
	}
	return it.Parent
}

// ItemsIn returns, in id order, every item whose current Parent equals
// parent.
func ItemsIn(s *types.GameState, parent types.Parent) []types.ItemID {
	var out []types.ItemID
	for id, it := range s.Items {
		if it.Parent.Equal(parent) {
			out = append(out, id)
		}
	}
	sortItemIDs(out)
	return out
}

// PlayerInventory returns the items the player currently carries.
func PlayerInventory(s *types.GameState) []types.ItemID {
	return ItemsIn(s, types.PlayerParent())
}

// GetItemProp returns an item's property value, honoring a registered
// computed-property callback (with re-entrancy fallback to the stored
// value) ahead of the stored value.
func GetItemProp(s *types.GameState, defs *Defs, id types.ItemID, prop types.PropertyID) types.Value {
	if fn, ok := defs.itemComputers[id][prop]; ok {
		key := inProgressKey{id: string(id), prop: prop}
		g := guardFor(s)
		if !g[key] {
			g[key] = true
			v := fn(s, defs)
			delete(g, key)
			return v
		}
	}
	if it, ok := s.Items[id]; ok {
		if v, ok := it.Props[prop]; ok {
			return v
		}
	}
	return types.Value{}
}

// GetLocationProp returns a location's property value, honoring a
// registered computed-property callback.
func GetLocationProp(s *types.GameState, defs *Defs, id types.LocationID, prop types.PropertyID) types.Value {
	if fn, ok := defs.locationComputers[id][prop]; ok {
		key := inProgressKey{isLocation: true, id: string(id), prop: prop}
		g := guardFor(s)
		if !g[key] {
			g[key] = true
			v := fn(s, defs)
			delete(g, key)
			return v
		}
	}
	if loc, ok := s.Locations[id]; ok {
		if v, ok := loc.Props[prop]; ok {
			return v
		}
	}
	return types.Value{}
}

// LocationExitsEffective returns a location's exits with runtime
// overrides (opened/closed by StateChanges targeting the exit set)
// already applied. Base exits come from the blueprint at NewState time
// and are mutated in place by Apply, so this is a direct read.
func LocationExitsEffective(s *types.GameState, id types.LocationID) map[types.Direction]types.Exit {
	loc, ok := s.Locations[id]
	if !ok {
		return nil
	}
	return loc.Exits
}

// GlobalFlag returns a global flag's value; unset flags are false.
func GlobalFlag(s *types.GameState, name string) bool {
	return s.GlobalFlags[name].Bool()
}

// GameValue returns a game-specific value; unset keys yield the zero
// (Undefined) Value.
func GameValue(s *types.GameState, name string) types.Value {
	return s.GameValues[name]
}

// HasItem reports whether the player currently carries id.
func HasItem(s *types.GameState, id types.ItemID) bool {
	it, ok := s.Items[id]
	return ok && it.Parent.Kind == types.ParentPlayer
}

func sortItemIDs(ids []types.ItemID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
