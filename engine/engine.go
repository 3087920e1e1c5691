// Package engine wires the parser, scope resolver, action-handler
// pipeline, and time system into the single Step() turn loop (§4): one
// call per player command, returning the narration and flags the
// frontend needs (game-over, save/restore requested).
package engine

import (
	"github.com/nathoo/ifcore/engine/actions"
	"github.com/nathoo/ifcore/engine/message"
	"github.com/nathoo/ifcore/engine/parser"
	"github.com/nathoo/ifcore/engine/resolve"
	"github.com/nathoo/ifcore/engine/rng"
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/engine/timesys"
	"github.com/nathoo/ifcore/engine/vocabulary"
	"github.com/nathoo/ifcore/types"
)

// Engine holds one game's compiled content, its live state, and the
// collaborators (vocabulary, handler registry, message provider, RNG)
// the turn loop consults.
type Engine struct {
	Defs     *state.Defs
	State    *types.GameState
	Vocab    *vocabulary.Vocabulary
	Registry *actions.Registry
	Messages message.Provider
	RNG      *rng.RNG

	gameOver    bool
	turnAborted bool // set by runTurn when a turn is rolled back or hits an internal invariant
}

// New compiles a fresh Engine from a blueprint's Defs: a new GameState
// at the initial player location, the full vocabulary index, the
// default handler registry, and the message provider seeded from the
// blueprint's overrides.
func New(defs *state.Defs) *Engine {
	s := state.NewState(defs)
	return &Engine{
		Defs:     defs,
		State:    s,
		Vocab:    vocabulary.Build(defs),
		Registry: actions.NewRegistry(),
		Messages: message.NewDefault(defs.Messages),
		RNG:      rng.New(s),
	}
}

// Result is everything the frontend needs after one Step call.
type Result struct {
	Lines           []string
	GameOver        bool
	RequiresSave    bool
	RequiresRestore bool
}

// Step parses and executes one player command end to end (§4's turn
// cycle): parse, before-turn hooks, validate/process, apply with
// rollback on failure, after-turn hooks, the time-system tick, then the
// move counter and visited flag. The clock advances on every
// handled command except one that was rolled back or hit an internal
// invariant; parse failures return before it.
func (e *Engine) Step(input string) Result {
	if e.gameOver {
		return Result{Lines: []string{e.Messages.Message("game.over", nil)}, GameOver: true}
	}

	cmd, failure := parser.Parse(e.State, e.Defs, e.Vocab, input)
	if failure != nil {
		return Result{Lines: []string{e.renderParseFailure(failure)}}
	}
	if cmd.Verb == "" {
		return Result{Lines: []string{e.Messages.Message("parse.no_verb", nil)}}
	}

	switch cmd.Verb {
	case types.NewVerbID("save"):
		return Result{RequiresSave: true}
	case types.NewVerbID("restore"):
		return Result{RequiresRestore: true}
	}

	verbDef := e.Vocab.Verbs[cmd.Verb]
	if verbDef.RequiresLight && !resolve.IsLit(e.State, e.Defs, e.State.Player.Location) {
		return Result{Lines: []string{e.Messages.Message("go.requires_light", nil)}}
	}

	e.turnAborted = false
	lines, gameOver := e.runTurn(cmd)
	if gameOver {
		e.gameOver = true
	}

	if e.turnAborted {
		return Result{Lines: lines, GameOver: e.gameOver}
	}

	lines = append(lines, e.advanceClock()...)
	return Result{Lines: lines, GameOver: e.gameOver}
}

// runTurn evaluates before-turn hooks, then either the first matching
// hook's effects or the registered default handler, then after-turn
// hooks, applying every StateChange through the single mutation gate
// and rolling back the whole turn if any step is rejected.
func (e *Engine) runTurn(cmd types.Command) ([]string, bool) {
	mark := len(e.State.ChangeLog)
	var lines []string
	gameOver := false

	ctx := actions.EffectContext{Verb: cmd.Verb}
	if len(cmd.DirectObjects) > 0 {
		ctx.DObj = cmd.DirectObjects[0]
	}
	if len(cmd.IndirectObjects) > 0 {
		ctx.IObj = cmd.IndirectObjects[0]
	}

	if hook, ok := actions.FindHook(actions.BeforeTurnHooks(e.State, e.Defs, cmd.Verb), cmd.Verb, "before", e.State, e.Defs); ok {
		result, events := actions.RunHook(hook, e.State, e.Defs, ctx)
		if err := state.ApplyAll(e.State, e.Defs, result.Changes); err != nil {
			state.Rollback(e.State, mark)
			e.turnAborted = true
			return []string{err.Error()}, false
		}
		if result.Message != "" {
			lines = append(lines, e.render(result.Message))
		}
		e.dispatchEvents(events)
	} else if handler, ok := e.Registry.Get(cmd.Verb); ok {
		if aerr := handler.Validate(e.State, e.Defs, cmd); aerr != nil {
			return []string{e.renderActionError(aerr)}, false
		}
		result, aerr := handler.Process(e.State, e.Defs, cmd)
		if aerr != nil {
			return []string{e.renderActionError(aerr)}, false
		}
		if err := state.ApplyAll(e.State, e.Defs, result.Changes); err != nil {
			state.Rollback(e.State, mark)
			e.turnAborted = true
			return []string{err.Error()}, false
		}
		if result.Message != "" {
			lines = append(lines, e.render(result.Message))
		}
		var taken []types.Event
		for _, c := range result.Changes {
			if c.Target.Kind == types.KeyItemParent && c.NewValue.Parent().Kind == types.ParentPlayer {
				taken = append(taken, types.Event{Type: "item_taken", Data: map[string]any{"item": string(c.Target.Item)}})
			}
		}
		e.dispatchEvents(taken)
		for _, se := range result.SideEffects {
			l, over := e.applySideEffect(se)
			if l != "" {
				lines = append(lines, l)
			}
			gameOver = gameOver || over
		}
	} else {
		return []string{e.Messages.Message("parse.no_syntax", nil)}, false
	}

	// Unlike a before-turn hook, an after-turn hook never pre-empts
	// anything (the default handler has already run), so every matching
	// hook whose conditions hold fires, not just the first.
	for _, h := range actions.AfterTurnHooks(e.State, e.Defs, cmd.Verb) {
		if !actions.EvalAllConditions(h.Conditions, e.State, e.Defs) {
			continue
		}
		result, events := actions.RunHook(h, e.State, e.Defs, ctx)
		if err := state.ApplyAll(e.State, e.Defs, result.Changes); err != nil {
			state.Rollback(e.State, mark)
			e.turnAborted = true
			return []string{err.Error()}, false
		}
		if result.Message != "" {
			lines = append(lines, e.render(result.Message))
		}
		e.dispatchEvents(events)
	}

	return lines, gameOver
}

func (e *Engine) advanceClock() []string {
	e.State.Player.Moves++
	loc := e.State.Player.Location
	state.Apply(e.State, e.Defs, types.StateChange{
		Target:   types.LocationPropertyKey(loc, types.PropVisited),
		NewValue: types.BoolValue(true),
	})

	firings, changes := timesys.Tick(e.State, e.Defs)
	if err := state.ApplyAll(e.State, e.Defs, changes); err != nil {
		return nil
	}
	var out []string
	for _, f := range firings {
		action, ok := e.Defs.Handlers[f.Handler]
		if !ok {
			continue
		}
		ctx := actions.EffectContext{}
		hookChanges, events, lines := actions.CompileEffects(e.State, e.Defs, action.Effects, ctx)
		if action.Message != "" {
			out = append(out, e.render(action.Message))
		}
		out = append(out, lines...)
		state.ApplyAll(e.State, e.Defs, hookChanges)
		e.dispatchEvents(events)
	}
	return out
}

// dispatchEvents runs every EventHandler matching an emitted event's
// type, once, in declaration order; handler-produced events are not
// themselves re-dispatched within the same turn.
func (e *Engine) dispatchEvents(events []types.Event) {
	for _, ev := range events {
		for _, eh := range e.Defs.EventHandlers {
			if eh.EventType != ev.Type {
				continue
			}
			if !actions.EvalAllConditions(eh.Conditions, e.State, e.Defs) {
				continue
			}
			changes, _, _ := actions.CompileEffects(e.State, e.Defs, eh.Effects, actions.EffectContext{})
			state.ApplyAll(e.State, e.Defs, changes)
		}
	}
}

func (e *Engine) applySideEffect(se types.SideEffect) (string, bool) {
	switch se.Kind {
	case types.SideEffectScoreDelta:
		state.Apply(e.State, e.Defs, types.StateChange{
			Target:   types.PropertyKey{Kind: types.KeyPlayerScore},
			NewValue: types.IntValue(e.State.Player.Score + se.ScoreDelta),
		})
	case types.SideEffectScheduleFuse:
		state.Apply(e.State, e.Defs, types.StateChange{
			Target:   types.PropertyKey{Kind: types.KeyAddFuse, Fuse: se.Fuse},
			NewValue: types.IntValue(se.FuseTurns),
		})
	case types.SideEffectCancelFuse:
		state.Apply(e.State, e.Defs, types.StateChange{
			Target: types.PropertyKey{Kind: types.KeyRemoveFuse, Fuse: se.Fuse},
		})
	case types.SideEffectActivateDaemon:
		state.Apply(e.State, e.Defs, types.StateChange{
			Target:   types.PropertyKey{Kind: types.KeyAddDaemon, Daemon: se.Daemon},
			NewValue: types.BoolValue(true),
		})
	case types.SideEffectDeactivateDaemon:
		state.Apply(e.State, e.Defs, types.StateChange{
			Target: types.PropertyKey{Kind: types.KeyRemoveDaemon, Daemon: se.Daemon},
		})
	case types.SideEffectPrintExtraLine:
		return se.Line, false
	case types.SideEffectEndGame:
		return "", true
	}
	return "", false
}

func (e *Engine) renderParseFailure(f *types.ParseFailure) string {
	switch f.Kind {
	case types.FailUnknownWord:
		return e.Messages.Message("parse.unknown_word", map[string]string{"word": f.Word})
	case types.FailNoVerb:
		return e.Messages.Message("parse.no_verb", nil)
	case types.FailNoMatchingSyntax:
		return e.Messages.Message("parse.no_syntax", nil)
	case types.FailAmbiguousReference:
		return e.Messages.Message("parse.ambiguous", map[string]string{"noun": f.NounWord})
	case types.FailPronounUnbound:
		return e.Messages.Message("parse.pronoun_unbound", map[string]string{"pronoun": f.Pronoun})
	case types.FailObjectNotInScope:
		return e.Messages.Message("parse.not_in_scope", map[string]string{"word": f.Word})
	default:
		return e.Messages.Message("parse.no_syntax", nil)
	}
}

func (e *Engine) renderActionError(err *types.ActionError) string {
	switch err.Kind {
	case types.ErrNotReachable:
		return e.Messages.Message("take.not_reachable", nil)
	case types.ErrNotTakable:
		return e.Messages.Message("take.not_takable", nil)
	case types.ErrAlreadyHeld:
		return e.Messages.Message("take.already_held", nil)
	case types.ErrContainerClosed:
		return e.Messages.Message("put.container_closed", nil)
	case types.ErrContainerFull:
		return e.Messages.Message("put.container_full", nil)
	case types.ErrDoorLocked:
		return e.Messages.Message("open.locked", nil)
	case types.ErrDarkRoom:
		return e.Messages.Message("look.dark_room", nil)
	case types.ErrRequiresLight:
		return e.Messages.Message("go.requires_light", nil)
	case types.ErrNoSuchExit:
		return e.Messages.Message("look.no_exit", nil)
	case types.ErrCustomMessage, types.ErrInternalInvariant:
		e.turnAborted = e.turnAborted || err.Kind == types.ErrInternalInvariant
		return e.render(err.Message)
	default:
		return err.Error()
	}
}

// render resolves text the way narration is authored throughout this
// package: a handler or hook can write either a message-catalogue key
// ("look.dark_room") or display text directly ("You get out."). If the
// text resolves as a known key, use the catalogue's text; otherwise
// the text itself is the narration.
func (e *Engine) render(text string) string {
	rendered := e.Messages.Message(text, nil)
	if rendered == "[missing message: "+text+"]" {
		return text
	}
	return rendered
}
