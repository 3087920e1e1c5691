// Package timesys drives the turn clock's fuses and daemons (§4.4):
// one-shot countdowns and periodic routines ticked once per turn,
// after every action's StateChanges have committed.
package timesys

import (
	"sort"

	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

// Firing is one fuse or daemon whose handler should run this tick.
type Firing struct {
	Handler types.HandlerID
	FuseID  types.FuseID  // set when this firing is a fuse expiring
	DaemonID types.DaemonID // set when this firing is a daemon ticking
}

// Tick advances every active fuse by one turn and checks every active
// daemon's period against the player's move counter, in ascending id
// order for determinism. It returns the handlers that should run and
// the StateChanges needed to record the tick itself (fuse decrements,
// fuse removal on expiry) — the caller applies those through the
// mutation gate and then invokes each returned handler, so
// on_expire/on_tick bodies see the state after the tick's own changes;
// any changes a handler produces cannot add or remove firings from this
// tick, since the firing list is fixed before any handler runs.
func Tick(s *types.GameState, defs *state.Defs) ([]Firing, []types.StateChange) {
	var firings []Firing
	var changes []types.StateChange

	var fuseIDs []types.FuseID
	for id := range s.ActiveFuses {
		fuseIDs = append(fuseIDs, id)
	}
	sort.Slice(fuseIDs, func(i, j int) bool { return fuseIDs[i] < fuseIDs[j] })

	for _, id := range fuseIDs {
		turns := s.ActiveFuses[id]
		remaining := turns - 1
		if remaining <= 0 {
			changes = append(changes, types.StateChange{
				Target: types.PropertyKey{Kind: types.KeyRemoveFuse, Fuse: id},
			})
			if def, ok := defs.Fuses[id]; ok {
				firings = append(firings, Firing{Handler: def.OnExpire, FuseID: id})
			}
		} else {
			changes = append(changes, types.StateChange{
				Target:         types.PropertyKey{Kind: types.KeyUpdateFuseTurns, Fuse: id},
				HasExpectedOld: true,
				ExpectedOld:    types.IntValue(turns),
				NewValue:       types.IntValue(remaining),
			})
		}
	}

	var daemonIDs []types.DaemonID
	for id, active := range s.ActiveDaemons {
		if active {
			daemonIDs = append(daemonIDs, id)
		}
	}
	sort.Slice(daemonIDs, func(i, j int) bool { return daemonIDs[i] < daemonIDs[j] })

	for _, id := range daemonIDs {
		def, ok := defs.Daemons[id]
		if !ok || def.Period <= 0 {
			continue
		}
		if s.Player.Moves%def.Period == 0 {
			firings = append(firings, Firing{Handler: def.OnTick, DaemonID: id})
		}
	}

	return firings, changes
}
