package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

// roomDisplayName derives a human-readable name from a room ID.
// "great_hall" -> "Great Hall", "castle_gates" -> "Castle Gates".
func roomDisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing
// current room, exits, inventory, and turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	roomName := roomDisplayName(string(s.Player.Location))

	exits := state.LocationExitsEffective(s, s.Player.Location)
	dirs := make([]string, 0, len(exits))
	for dir := range exits {
		dirs = append(dirs, string(dir))
	}
	sort.Strings(dirs)
	exitStr := strings.Join(dirs, ",")

	inventory := state.PlayerInventory(s)
	invCount := len(inventory)

	left := fmt.Sprintf(" %s | Exits: %s", roomName, exitStr)
	right := fmt.Sprintf("M:%d ", s.Player.Moves)

	// Show inventory items if they fit, otherwise just count.
	if invCount > 0 {
		var names []string
		for _, id := range inventory {
			name := string(id)
			if n := state.GetItemProp(s, m.defs, id, types.PropName); n.Kind() == types.KindString {
				name = n.String()
			}
			names = append(names, name)
		}
		invStr := strings.Join(names, ", ")
		candidate := fmt.Sprintf("Inv: %s | M:%d ", invStr, s.Player.Moves)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | M:%d ", invCount, s.Player.Moves)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
