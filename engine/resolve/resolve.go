// Package resolve is the scope resolver (§4.3): pure functions over a
// GameState snapshot that answer what the player can see and reach,
// and that turn a parsed noun phrase into a specific item.
package resolve

import (
	"sort"

	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

// IsLit reports whether a location currently has light: inherently lit,
// runtime-lit (a prior effect flipped is_lit), or a lit light source is
// present either on the player or resident in the room.
func IsLit(s *types.GameState, defs *state.Defs, loc types.LocationID) bool {
	if state.GetLocationProp(s, defs, loc, types.PropInherentlyLit).Bool() {
		return true
	}
	if state.GetLocationProp(s, defs, loc, types.PropRuntimeLit).Bool() {
		return true
	}
	for _, id := range presentItems(s, loc) {
		if isLitSource(s, defs, id) {
			return true
		}
	}
	return false
}

func isLitSource(s *types.GameState, defs *state.Defs, id types.ItemID) bool {
	return state.GetItemProp(s, defs, id, types.PropLightSource).Bool() &&
		state.GetItemProp(s, defs, id, types.PropOn).Bool()
}

// presentItems returns items directly in the room or carried/worn by
// the player, i.e. the set whose light can reach the room.
func presentItems(s *types.GameState, loc types.LocationID) []types.ItemID {
	var out []types.ItemID
	out = append(out, state.ItemsIn(s, types.LocationParent(loc))...)
	out = append(out, state.PlayerInventory(s)...)
	return out
}

// VisibleItemsIn returns the items visible in a location: empty if the
// room is dark, otherwise every non-invisible item whose parent is that
// location, sorted by id.
func VisibleItemsIn(s *types.GameState, defs *state.Defs, loc types.LocationID) []types.ItemID {
	if !IsLit(s, defs, loc) {
		return nil
	}
	var out []types.ItemID
	for _, id := range state.ItemsIn(s, types.LocationParent(loc)) {
		if !state.GetItemProp(s, defs, id, types.PropInvisible).Bool() {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ReachableByPlayer returns every item the player can currently refer
// to by touch: held items, visible room items, and (recursively) the
// contents of open or transparent containers and the contents of
// surfaces, anywhere in that closure. A processed-containers set
// prevents infinite recursion on a malformed containment graph.
func ReachableByPlayer(s *types.GameState, defs *state.Defs) []types.ItemID {
	loc := s.Player.Location
	seedSet := map[types.ItemID]bool{}
	var seeds []types.ItemID
	for _, id := range state.PlayerInventory(s) {
		if !seedSet[id] {
			seedSet[id] = true
			seeds = append(seeds, id)
		}
	}
	if IsLit(s, defs, loc) {
		for _, id := range VisibleItemsIn(s, defs, loc) {
			if !seedSet[id] {
				seedSet[id] = true
				seeds = append(seeds, id)
			}
		}
	}

	result := map[types.ItemID]bool{}
	processed := map[types.ItemID]bool{}
	var queue []types.ItemID
	for _, id := range seeds {
		result[id] = true
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if processed[id] {
			continue
		}
		processed[id] = true

		isContainer := state.GetItemProp(s, defs, id, types.PropContainer).Bool()
		isOpen := !state.GetItemProp(s, defs, id, types.PropOpenable).Bool() ||
			state.GetItemProp(s, defs, id, types.PropOpen).Bool()
		isTransparent := state.GetItemProp(s, defs, id, types.PropTransparent).Bool()
		isSurface := state.GetItemProp(s, defs, id, types.PropSurface).Bool()

		if isContainer && (isOpen || isTransparent) {
			for _, child := range state.ItemsIn(s, types.ItemParent(id)) {
				if !result[child] {
					result[child] = true
					queue = append(queue, child)
				}
			}
		}
		if isSurface {
			for _, child := range state.ItemsIn(s, types.ItemParent(id)) {
				if !result[child] {
					result[child] = true
					queue = append(queue, child)
				}
			}
		}
	}

	out := make([]types.ItemID, 0, len(result))
	for id := range result {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MatchKind ranks how strongly a candidate matched a noun phrase, used
// to break ties when more than one item satisfies the words typed.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchSynonym
	MatchExactName
)

// Candidate is one item considered for a noun phrase, with its match
// strength and scope.
type Candidate struct {
	ID         types.ItemID
	Match      MatchKind
	InScope    bool
	InInventory bool
}

// ResolveNounPhrase narrows a noun-word's index candidates to those
// reachable by the player and consistent with every adjective typed,
// then picks the single best match: exact name beats synonym,
// inventory beats the rest of scope. On a tie it returns an empty id
// together with the tied candidates, which the caller reports as
// ambiguous.
func ResolveNounPhrase(s *types.GameState, defs *state.Defs, noun string, adjectives []string, nounCandidates, adjCandidateSets [][]types.ItemID, allScope map[types.ItemID]bool) (types.ItemID, []types.ItemID) {
	scored := map[types.ItemID]*Candidate{}
	for _, id := range nounCandidates[0] {
		if !allScope[id] {
			continue
		}
		scored[id] = &Candidate{ID: id, InScope: true}
	}
	for _, set := range adjCandidateSets {
		allowed := map[types.ItemID]bool{}
		for _, id := range set {
			allowed[id] = true
		}
		for id := range scored {
			if !allowed[id] {
				delete(scored, id)
			}
		}
	}
	if len(scored) == 0 {
		return "", nil
	}

	inv := map[types.ItemID]bool{}
	for _, id := range state.PlayerInventory(s) {
		inv[id] = true
	}
	for id, c := range scored {
		if state.GetItemProp(s, defs, id, types.PropName).String() == noun {
			c.Match = MatchExactName
		} else {
			c.Match = MatchSynonym
		}
		c.InInventory = inv[id]
	}

	var ordered []types.ItemID
	for id := range scored {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := scored[ordered[i]], scored[ordered[j]]
		if a.Match != b.Match {
			return a.Match > b.Match
		}
		if a.InInventory != b.InInventory {
			return a.InInventory
		}
		return ordered[i] < ordered[j]
	})

	if len(ordered) == 1 {
		return ordered[0], nil
	}
	// Ambiguous only when the top two candidates tie on every
	// tiebreaker; otherwise the ranking above already picked a winner.
	best, second := scored[ordered[0]], scored[ordered[1]]
	if best.Match == second.Match && best.InInventory == second.InInventory {
		return "", ordered
	}
	return ordered[0], nil
}

// ScopeSet returns ReachableByPlayer as a membership set, for callers
// that only need containment tests.
func ScopeSet(s *types.GameState, defs *state.Defs) map[types.ItemID]bool {
	set := map[types.ItemID]bool{}
	for _, id := range ReachableByPlayer(s, defs) {
		set[id] = true
	}
	return set
}
