package state

import (
	"fmt"

	"github.com/nathoo/ifcore/types"
)

// Apply is the sole mutation gate (§4.1, §9): every StateChange the
// engine ever applies passes through here. The five-step contract is:
// look up the current value, check it against ExpectedOld when the
// caller asserted one, check NewValue's kind is compatible, check
// referential integrity, then write and append to the change log. A
// rejected change leaves GameState untouched.
func Apply(s *types.GameState, defs *Defs, change types.StateChange) error {
	current, existed := lookup(s, change.Target)

	if change.HasExpectedOld && !current.Equal(change.ExpectedOld) {
		return &types.MutationError{
			Kind:   types.ErrOldValueMismatch,
			Detail: fmt.Sprintf("target %s: expected %#v, found %#v", describeTarget(change.Target), change.ExpectedOld, current),
		}
	}

	if err := checkKind(change.Target, current, existed, change.NewValue); err != nil {
		return err
	}

	if err := checkReferentialIntegrity(s, defs, change.Target, change.NewValue); err != nil {
		return err
	}

	write(s, change.Target, change.NewValue)
	s.ChangeLog = append(s.ChangeLog, types.ChangeLogEntry{
		Change:   change,
		Prior:    current,
		HadPrior: existed,
	})
	return nil
}

// ApplyAll applies changes in order, stopping and rolling back every
// change already applied in this batch the instant one is rejected —
// a turn either fully commits or leaves no trace.
func ApplyAll(s *types.GameState, defs *Defs, changes []types.StateChange) error {
	mark := len(s.ChangeLog)
	for i, c := range changes {
		if err := Apply(s, defs, c); err != nil {
			Rollback(s, mark)
			return fmt.Errorf("change %d/%d rejected: %w", i+1, len(changes), err)
		}
	}
	return nil
}

// Rollback rewinds the change log to length mark, undoing every change
// recorded after it in reverse order. Used both for ApplyAll's
// all-or-nothing guarantee and for turn-level rollback on a later
// action error.
func Rollback(s *types.GameState, mark int) {
	for i := len(s.ChangeLog) - 1; i >= mark; i-- {
		entry := s.ChangeLog[i]
		if entry.HadPrior {
			write(s, entry.Change.Target, entry.Prior)
		} else {
			clear(s, entry.Change.Target)
		}
	}
	s.ChangeLog = s.ChangeLog[:mark]
}

func describeTarget(k types.PropertyKey) string {
	switch k.Kind {
	case types.KeyItemParent:
		return fmt.Sprintf("item_parent(%s)", k.Item)
	case types.KeyItemProperty:
		return fmt.Sprintf("item_property(%s,%s)", k.Item, k.Property)
	case types.KeyLocationProperty:
		return fmt.Sprintf("location_property(%s,%s)", k.Location, k.Property)
	case types.KeyGlobalFlag:
		return fmt.Sprintf("global_flag(%s)", k.Name)
	case types.KeyGameSpecific:
		return fmt.Sprintf("game_specific(%s)", k.Name)
	case types.KeyPronounReference:
		return fmt.Sprintf("pronoun(%s)", k.Pronoun)
	case types.KeyAddFuse, types.KeyRemoveFuse, types.KeyUpdateFuseTurns:
		return fmt.Sprintf("fuse(%s)", k.Fuse)
	case types.KeyAddDaemon, types.KeyRemoveDaemon:
		return fmt.Sprintf("daemon(%s)", k.Daemon)
	default:
		return "player_field"
	}
}

// lookup reads the current Value at a target, as if every field of
// GameState were addressed through the uniform property-key/Value
// interface.
func lookup(s *types.GameState, k types.PropertyKey) (types.Value, bool) {
	switch k.Kind {
	case types.KeyItemParent:
		it, ok := s.Items[k.Item]
		if !ok {
			return types.Value{}, false
		}
		return types.ParentValue(it.Parent), true
	case types.KeyItemProperty:
		it, ok := s.Items[k.Item]
		if !ok {
			return types.Value{}, false
		}
		v, ok := it.Props[k.Property]
		return v, ok
	case types.KeyLocationProperty:
		loc, ok := s.Locations[k.Location]
		if !ok {
			return types.Value{}, false
		}
		v, ok := loc.Props[k.Property]
		return v, ok
	case types.KeyPlayerScore:
		return types.IntValue(s.Player.Score), true
	case types.KeyPlayerMoves:
		return types.IntValue(s.Player.Moves), true
	case types.KeyPlayerCapacity:
		return types.IntValue(s.Player.Capacity), true
	case types.KeyPlayerLocation:
		return types.LocationIDValue(s.Player.Location), true
	case types.KeyPlayerDisplayMode:
		return types.StringValue(s.Player.DisplayMode), true
	case types.KeyGlobalFlag:
		v, ok := s.GlobalFlags[k.Name]
		return v, ok
	case types.KeyGameSpecific:
		v, ok := s.GameValues[k.Name]
		return v, ok
	case types.KeyPronounReference:
		id, ok := s.Pronouns[k.Pronoun]
		if !ok {
			return types.Value{}, false
		}
		return types.ItemIDValue(id), true
	case types.KeyAddFuse, types.KeyUpdateFuseTurns:
		turns, ok := s.ActiveFuses[k.Fuse]
		if !ok {
			return types.Value{}, false
		}
		return types.IntValue(turns), true
	case types.KeyRemoveFuse:
		_, ok := s.ActiveFuses[k.Fuse]
		if !ok {
			return types.Value{}, false
		}
		return types.IntValue(s.ActiveFuses[k.Fuse]), true
	case types.KeyAddDaemon, types.KeyRemoveDaemon:
		active, ok := s.ActiveDaemons[k.Daemon]
		return types.BoolValue(active), ok
	default:
		return types.Value{}, false
	}
}

// write commits a validated new value to its target.
func write(s *types.GameState, k types.PropertyKey, v types.Value) {
	switch k.Kind {
	case types.KeyItemParent:
		if it, ok := s.Items[k.Item]; ok {
			it.Parent = v.Parent()
		}
	case types.KeyItemProperty:
		if it, ok := s.Items[k.Item]; ok {
			it.Props[k.Property] = v.Clone()
		}
	case types.KeyLocationProperty:
		if loc, ok := s.Locations[k.Location]; ok {
			loc.Props[k.Property] = v.Clone()
		}
	case types.KeyPlayerScore:
		s.Player.Score = v.Int()
	case types.KeyPlayerMoves:
		s.Player.Moves = v.Int()
	case types.KeyPlayerCapacity:
		s.Player.Capacity = v.Int()
	case types.KeyPlayerLocation:
		s.Player.Location = v.LocationID()
	case types.KeyPlayerDisplayMode:
		s.Player.DisplayMode = v.String()
	case types.KeyGlobalFlag:
		s.GlobalFlags[k.Name] = v.Clone()
	case types.KeyGameSpecific:
		s.GameValues[k.Name] = v.Clone()
	case types.KeyPronounReference:
		s.Pronouns[k.Pronoun] = v.ItemID()
	case types.KeyAddFuse, types.KeyUpdateFuseTurns:
		s.ActiveFuses[k.Fuse] = v.Int()
	case types.KeyRemoveFuse:
		delete(s.ActiveFuses, k.Fuse)
	case types.KeyAddDaemon:
		s.ActiveDaemons[k.Daemon] = true
	case types.KeyRemoveDaemon:
		delete(s.ActiveDaemons, k.Daemon)
	}
}

// clear removes a target entirely, used when rolling back a change
// that created an entry where none existed before.
func clear(s *types.GameState, k types.PropertyKey) {
	switch k.Kind {
	case types.KeyItemProperty:
		if it, ok := s.Items[k.Item]; ok {
			delete(it.Props, k.Property)
		}
	case types.KeyLocationProperty:
		if loc, ok := s.Locations[k.Location]; ok {
			delete(loc.Props, k.Property)
		}
	case types.KeyGlobalFlag:
		delete(s.GlobalFlags, k.Name)
	case types.KeyGameSpecific:
		delete(s.GameValues, k.Name)
	case types.KeyPronounReference:
		delete(s.Pronouns, k.Pronoun)
	case types.KeyAddFuse, types.KeyUpdateFuseTurns:
		delete(s.ActiveFuses, k.Fuse)
	case types.KeyAddDaemon:
		delete(s.ActiveDaemons, k.Daemon)
	default:
		write(s, k, types.Value{})
	}
}

// checkKind enforces that a change's NewValue is of a kind consistent
// with what that target already holds. A target with no prior value
// (existed == false) accepts any kind on first write, since property
// bags are sparse by design.
func checkKind(k types.PropertyKey, current types.Value, existed bool, newValue types.Value) error {
	if k.Kind == types.KeyRemoveFuse || k.Kind == types.KeyRemoveDaemon {
		return nil
	}
	expected, ok := fixedKind(k)
	if ok {
		if newValue.Kind() != expected {
			return &types.MutationError{
				Kind:   types.ErrTypeMismatch,
				Detail: fmt.Sprintf("target %s requires %s, got %s", describeTarget(k), expected, newValue.Kind()),
			}
		}
		return nil
	}
	if existed && current.Kind() != types.KindUndefined && newValue.Kind() != current.Kind() {
		return &types.MutationError{
			Kind:   types.ErrTypeMismatch,
			Detail: fmt.Sprintf("target %s: changing kind from %s to %s", describeTarget(k), current.Kind(), newValue.Kind()),
		}
	}
	return nil
}

// fixedKind reports the Value kind a target's Kind enforces by
// construction, for the targets whose shape isn't a free-form property.
func fixedKind(k types.PropertyKey) (types.ValueKind, bool) {
	switch k.Kind {
	case types.KeyItemParent:
		return types.KindParent, true
	case types.KeyPlayerScore, types.KeyPlayerMoves, types.KeyPlayerCapacity:
		return types.KindInt, true
	case types.KeyPlayerLocation:
		return types.KindLocationID, true
	case types.KeyPlayerDisplayMode:
		return types.KindString, true
	case types.KeyGlobalFlag:
		return types.KindBool, true
	case types.KeyPronounReference:
		return types.KindItemID, true
	case types.KeyAddFuse, types.KeyUpdateFuseTurns:
		return types.KindInt, true
	default:
		return types.KindUndefined, false
	}
}

// checkReferentialIntegrity enforces the invariants listed in §8 that
// Apply itself must guard: a parent must name a live location/item, the
// player's location must exist, and fuse/daemon ids must be declared.
func checkReferentialIntegrity(s *types.GameState, defs *Defs, k types.PropertyKey, newValue types.Value) error {
	switch k.Kind {
	case types.KeyItemParent:
		p := newValue.Parent()
		switch p.Kind {
		case types.ParentLocation:
			if !LocationExists(s, p.Location) {
				return invariantErr("item parent names unknown location %s", p.Location)
			}
		case types.ParentItem:
			if !ItemExists(s, p.Item) {
				return invariantErr("item parent names unknown item %s", p.Item)
			}
			if p.Item == k.Item {
				return invariantErr("item %s cannot contain itself", k.Item)
			}
			if wouldCycle(s, k.Item, p.Item) {
				return invariantErr("item parent change would create a containment cycle at %s", k.Item)
			}
		}
	case types.KeyPlayerLocation:
		if !LocationExists(s, newValue.LocationID()) {
			return invariantErr("player location names unknown location %s", newValue.LocationID())
		}
	case types.KeyAddFuse:
		if _, ok := defs.Fuses[k.Fuse]; !ok {
			return invariantErr("fuse %s is not declared", k.Fuse)
		}
	case types.KeyAddDaemon:
		if _, ok := defs.Daemons[k.Daemon]; !ok {
			return invariantErr("daemon %s is not declared", k.Daemon)
		}
	}
	return nil
}

// wouldCycle reports whether making container the parent of item would
// put item inside its own containment chain, walking up from
// container toward the root.
func wouldCycle(s *types.GameState, item, container types.ItemID) bool {
	seen := map[types.ItemID]bool{}
	cur := container
	for {
		if cur == item {
			return true
		}
		if seen[cur] {
			return false // already-malformed chain elsewhere; not this change's fault
		}
		seen[cur] = true
		it, ok := s.Items[cur]
		if !ok || it.Parent.Kind != types.ParentItem {
			return false
		}
		cur = it.Parent.Item
	}
}

func invariantErr(format string, args ...any) *types.MutationError {
	return &types.MutationError{Kind: types.ErrInvariantViolation, Detail: fmt.Sprintf(format, args...)}
}
