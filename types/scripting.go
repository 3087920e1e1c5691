package types

// ConditionKind is the closed set of predicates a blueprint hook or
// fuse/daemon guard can test against the current GameState.
type ConditionKind int

const (
	CondHasItem ConditionKind = iota
	CondFlagSet
	CondFlagNot
	CondFlagIs
	CondInLocation
	CondPropIs
	CondCounterGt
	CondCounterLt
	CondNot
)

// Condition is a predicate evaluated against a GameState snapshot.
// Conditions never mutate; they are pure reads.
type Condition struct {
	Kind ConditionKind

	Item     ItemID     // CondHasItem
	Flag     string     // CondFlagSet, CondFlagNot, CondFlagIs
	BoolVal  bool       // CondFlagIs
	Location LocationID // CondInLocation

	PropEntityKind int // 0 = item, 1 = location — for CondPropIs
	PropItem       ItemID
	PropLocation   LocationID
	Property       PropertyID
	ExpectedValue  Value

	Counter   string // CondCounterGt, CondCounterLt (backed by GameValues)
	Threshold int

	Inner *Condition // CondNot
}

// EffectSpec is one instruction in a blueprint-authored effect list
// (the "Then" block of a rule, a fuse's on_expire, a daemon's on_tick,
// or a hook's effects). It is the data the Lua loader compiles Then{}
// tables into; engine/actions.CompileEffects translates an EffectSpec list into
// StateChanges at the point it fires, since the resulting values (e.g.
// the player's current score) can only be computed against live state.
type EffectSpec struct {
	Type   string
	Params map[string]any
}

// HookDef is a per-item or per-location beforeTurn/afterTurn handler:
// when Verb matches and all Conditions hold, it pre-empts the default
// handler by producing an ActionResult from Message+Effects instead.
type HookDef struct {
	Verb       VerbID
	Conditions []Condition
	Message    string
	Effects    []EffectSpec
	When       string // "before" or "after"
}

// ScriptedAction is a canned ActionResult-producing script: the body
// of a fuse's on_expire, a daemon's on_tick, or an event handler.
type ScriptedAction struct {
	Message string
	Effects []EffectSpec
}
