package types

// ChangeLogEntry records one accepted StateChange, in order. The log is
// append-only during a turn and is the basis for undo/replay and for
// turn rollback (rewinding to a saved length).
type ChangeLogEntry struct {
	Change StateChange
	Prior  Value
	HadPrior bool
}

// GameState is the central, authoritative store of all mutable world
// data: items, locations, the player, global flags, pronoun bindings,
// active fuses, active daemons, the game-specific key/value store, and
// the append-only change log. GameState itself is plain data; the sole
// mutation gate (Apply) lives in engine/state so that every write goes
// through one validated path.
type GameState struct {
	Items     map[ItemID]*Item
	Locations map[LocationID]*Location
	Player    Player

	GlobalFlags map[string]Value
	GameValues  map[string]Value
	Pronouns    map[string]ItemID

	ActiveFuses   map[FuseID]int
	ActiveDaemons map[DaemonID]bool

	ChangeLog []ChangeLogEntry

	RNGSeed  uint64
	RNGCalls uint64
}

// NewGameState allocates an empty GameState with initialized maps. The
// blueprint compiler populates Items/Locations/Player from the
// declarative blueprint at game start.
func NewGameState() *GameState {
	return &GameState{
		Items:         map[ItemID]*Item{},
		Locations:     map[LocationID]*Location{},
		GlobalFlags:   map[string]Value{},
		GameValues:    map[string]Value{},
		Pronouns:      map[string]ItemID{},
		ActiveFuses:   map[FuseID]int{},
		ActiveDaemons: map[DaemonID]bool{},
	}
}
