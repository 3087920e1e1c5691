// Package actions implements the validate/process handler pipeline
// (§4.5): one Handler per verb, a registry blueprints can override per
// verb, and the hook/effect machinery that lets per-item and
// per-location content pre-empt the default handler.
package actions

import (
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

// Handler implements one verb's behavior. Validate checks
// preconditions and returns an ActionError without touching state;
// Process computes the resulting ActionResult — narration, the
// StateChanges to apply, and side effects — but does not apply them
// itself. Only the engine's turn loop calls GameState.Apply.
type Handler interface {
	Validate(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError
	Process(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError)
}

// Registry maps a VerbID to its Handler. The engine checks the
// per-entity hook first, then a registered Handler, in that order.
// Only Go Handlers are registered here: Defs.Handlers is consulted for
// fuse and daemon firings, never by verb, so a blueprint cannot
// replace a verb's default handler through it.
type Registry struct {
	handlers map[types.VerbID]Handler
}

// NewRegistry builds a Registry pre-populated with every built-in verb
// handler.
func NewRegistry() *Registry {
	r := &Registry{handlers: map[types.VerbID]Handler{}}
	registerDefaults(r)
	return r
}

func (r *Registry) Register(verb types.VerbID, h Handler) {
	r.handlers[verb] = h
}

func (r *Registry) Get(verb types.VerbID) (Handler, bool) {
	h, ok := r.handlers[verb]
	return h, ok
}

// funcHandler adapts two plain functions to the Handler interface, for
// the common case of a handler with no extra fields.
type funcHandler struct {
	validate func(*types.GameState, *state.Defs, types.Command) *types.ActionError
	process  func(*types.GameState, *state.Defs, types.Command) (types.ActionResult, *types.ActionError)
}

func (f funcHandler) Validate(s *types.GameState, defs *state.Defs, cmd types.Command) *types.ActionError {
	if f.validate == nil {
		return nil
	}
	return f.validate(s, defs, cmd)
}

func (f funcHandler) Process(s *types.GameState, defs *state.Defs, cmd types.Command) (types.ActionResult, *types.ActionError) {
	return f.process(s, defs, cmd)
}
