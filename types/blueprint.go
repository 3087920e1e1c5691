package types

// ItemBlueprint is the declarative, immutable definition of an item,
// compiled once from game content at startup. Runtime mutation happens
// only through GameState.Items / StateChange, never here.
type ItemBlueprint struct {
	ID       ItemID
	Props    map[PropertyID]Value
	Parent   Parent
	Hooks    []HookDef
}

// LocationBlueprint is the declarative, immutable definition of a
// location.
type LocationBlueprint struct {
	ID      LocationID
	Props   map[PropertyID]Value
	Exits   map[Direction]Exit
	Scenery []ItemID
	Hooks   []HookDef
}

// GameBlueprint is supplied once at startup (§6): the full declarative
// content of a game, plus the collaborators the core calls out to
// (message provider, RNG seed).
type GameBlueprint struct {
	Title            string
	AbbreviatedTitle string
	Introduction     string
	Release          string
	MaximumScore     int

	InitialPlayerLocation LocationID
	InitialCapacity       int
	InitialSheet          map[string]int

	Items     []ItemBlueprint
	Locations []LocationBlueprint

	Verbs []VerbDef

	Fuses   []FuseDef
	Daemons []DaemonDef

	// Handlers maps a HandlerID (referenced by a fuse's OnExpire, a
	// daemon's OnTick, or an EmitEvent effect) to its scripted action.
	Handlers map[HandlerID]ScriptedAction

	// EventHandlers fire once per emitted event of the matching type,
	// in declaration order, mirroring Fuses/Daemons: conditions gate,
	// effects produce further StateChanges. Not re-dispatched.
	EventHandlers []EventHandlerDef

	// Messages seeds the default message.Provider; any key absent here
	// falls back to the built-in default text.
	Messages map[string]string

	RNGSeed uint64
}

// EventHandlerDef is a rule triggered by an emitted event rather than a
// player command.
type EventHandlerDef struct {
	EventType  string
	Conditions []Condition
	Effects    []EffectSpec
}

// Event is emitted by effect application (e.g. "item_taken",
// "room_entered") and dispatched once, single-pass, against
// EventHandlers.
type Event struct {
	Type string
	Data map[string]any
}
