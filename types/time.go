package types

// HandlerID names an on_expire/on_tick action registered at blueprint
// time. The time system only carries the id; the engine resolves it to
// an executable closure through the blueprint's handler table.
type HandlerID string

// FuseDef is a one-shot countdown routine, registered at blueprint
// time and activated at runtime by an add-fuse StateChange.
type FuseDef struct {
	ID           FuseID
	InitialTurns int
	OnExpire     HandlerID
}

// DaemonDef is a periodic background routine, registered at blueprint
// time and activated at runtime by an add-daemon StateChange.
type DaemonDef struct {
	ID     DaemonID
	Period int
	OnTick HandlerID
}

// ActiveFuse is a runtime entry: id plus turns remaining. Turns is
// strictly positive while active; the fuse is removed the instant it
// reaches zero.
type ActiveFuse struct {
	ID    FuseID
	Turns int
}

// ActiveDaemon is a runtime entry: a daemon currently ticking.
type ActiveDaemon struct {
	ID DaemonID
}
