// Package message provides the catalogue of player-facing text keyed
// by a stable message key, so a game's blueprint can override a
// catalogued line without touching Go code. Parser failures, action
// errors and handler messages that name a key are rendered through it.
// It is not the only source of text: many handlers return literal
// narration ("Time passes.", "You get out."), which the engine passes
// through unchanged and which blueprint overrides cannot reach.
package message

import "strings"

// Provider resolves a message key (optionally with substitution
// parameters) to display text.
type Provider interface {
	Message(key string, params map[string]string) string
}

// defaults holds the built-in English text for every key the core
// itself references. A blueprint's Messages map overrides these.
var defaults = map[string]string{
	"look.dark_room":          "It is pitch dark, and you can't see a thing.",
	"look.no_exit":            "You can't go that way.",
	"look.exit_blocked":       "{reason}",
	"take.not_reachable":      "You can't see any such thing.",
	"take.not_takable":        "You can't take that.",
	"take.already_held":       "You already have that.",
	"take.done":               "Taken.",
	"take.nothing_here":       "There is nothing here to take.",
	"drop.not_held":           "You aren't carrying that.",
	"drop.done":               "Dropped.",
	"put.not_held":            "You aren't carrying that.",
	"put.not_surface":         "You can't put anything on that.",
	"put.not_container":       "You can't put anything in that.",
	"put.self":                "You can't put something inside itself.",
	"put.container_closed":    "That's closed.",
	"put.container_full":      "There's no room for that.",
	"put.done":                "Done.",
	"open.not_openable":       "You can't open that.",
	"open.already_open":       "That's already open.",
	"open.locked":             "It's locked.",
	"open.done":               "Opened.",
	"close.not_openable":      "You can't close that.",
	"close.already_closed":    "That's already closed.",
	"close.done":              "Closed.",
	"lock.not_lockable":       "That's not something you can lock.",
	"lock.done":               "Locked.",
	"unlock.wrong_key":        "That key doesn't fit.",
	"unlock.already_unlocked": "That's already unlocked.",
	"unlock.done":             "Unlocked.",
	"turn_on.done":            "Done.",
	"turn_off.done":           "Done.",
	"wear.not_wearable":       "You can't wear that.",
	"wear.already_worn":       "You're already wearing that.",
	"wear.done":               "You put it on.",
	"remove.not_worn":         "You aren't wearing that.",
	"remove.done":             "You take it off.",
	"go.requires_light":       "You can't see where you're going.",
	"score.report":            "Your score is {score} out of {max}, in {moves} moves.",
	"inventory.empty":         "You are empty-handed.",
	"inventory.header":        "You are carrying:",
	"parse.unknown_word":      "I don't know the word \"{word}\".",
	"parse.no_verb":           "I didn't understand that.",
	"parse.no_syntax":         "I didn't understand that sentence.",
	"parse.ambiguous":         "Which {noun} do you mean?",
	"parse.pronoun_unbound":   "I don't know what \"{pronoun}\" refers to.",
	"parse.not_in_scope":      "You can't see any {word} here.",
	"quit.confirm":            "Thanks for playing.",
	"save.ok":                 "Game saved.",
	"save.failed":             "Your game could not be saved.",
	"restore.ok":              "Game restored.",
	"restore.failed":          "That save file couldn't be restored.",
	"game.over":               "The game is over. You may RESTART, RESTORE a saved game, or QUIT.",
}

// Default is a Provider that looks a key up in the blueprint's
// overrides first and then in the built-in defaults.
type Default struct {
	overrides map[string]string
}

// NewDefault builds a Provider seeded from a blueprint's Messages
// overrides layered over the built-in defaults.
func NewDefault(overrides map[string]string) *Default {
	return &Default{overrides: overrides}
}

func (d *Default) Message(key string, params map[string]string) string {
	text, ok := d.overrides[key]
	if !ok {
		text, ok = defaults[key]
	}
	if !ok {
		text = "[missing message: " + key + "]"
	}
	return substitute(text, params)
}

func substitute(text string, params map[string]string) string {
	for k, v := range params {
		text = strings.ReplaceAll(text, "{"+k+"}", v)
	}
	return text
}
