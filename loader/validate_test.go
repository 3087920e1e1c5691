package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/ifcore/types"
)

// validBlueprint returns a minimal valid GameBlueprint for testing.
func validBlueprint() *types.GameBlueprint {
	return &types.GameBlueprint{
		Title:                 "Test",
		InitialPlayerLocation: "hall",
		Locations: []types.LocationBlueprint{
			{ID: "hall", Props: map[types.PropertyID]types.Value{}, Exits: map[types.Direction]types.Exit{}},
		},
		Handlers: map[types.HandlerID]types.ScriptedAction{},
	}
}

func assertContains(t *testing.T, strs []string, substr string) {
	t.Helper()
	for _, s := range strs {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("expected one of %v to contain %q", strs, substr)
}

func asValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve
}

func TestValidate_ValidBlueprint(t *testing.T) {
	if err := validate(validBlueprint()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_EmptyTitle(t *testing.T) {
	bp := validBlueprint()
	bp.Title = ""
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	assertContains(t, asValidationError(t, err).Errors, "title")
}

func TestValidate_MissingStartLocation(t *testing.T) {
	bp := validBlueprint()
	bp.InitialPlayerLocation = "nonexistent"
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for missing start location")
	}
	assertContains(t, asValidationError(t, err).Errors, "start location")
}

func TestValidate_InvalidExitTarget(t *testing.T) {
	bp := validBlueprint()
	bp.Locations[0].Exits[types.North] = types.Exit{Direction: types.North, Destination: "void", HasDest: true}
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for invalid exit target")
	}
	assertContains(t, asValidationError(t, err).Errors, "undefined location")
}

func TestValidate_DuplicateItemID(t *testing.T) {
	bp := validBlueprint()
	item := types.ItemBlueprint{ID: "key", Parent: types.LocationParent("hall")}
	bp.Items = []types.ItemBlueprint{item, item}
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for duplicate item id")
	}
	assertContains(t, asValidationError(t, err).Errors, "duplicate item id")
}

func TestValidate_UnknownEffectType(t *testing.T) {
	bp := validBlueprint()
	bp.Handlers["h"] = types.ScriptedAction{Effects: []types.EffectSpec{{Type: "explode"}}}
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for unknown effect type")
	}
	assertContains(t, asValidationError(t, err).Errors, "unknown effect type")
}

func TestValidate_UndefinedItemInEffect(t *testing.T) {
	bp := validBlueprint()
	bp.Handlers["h"] = types.ScriptedAction{
		Effects: []types.EffectSpec{{Type: "give_item", Params: map[string]any{"item": "ghost"}}},
	}
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for undefined item in effect")
	}
	assertContains(t, asValidationError(t, err).Errors, "undefined item")
}

func TestValidate_PlaceholderRefNotFlagged(t *testing.T) {
	bp := validBlueprint()
	bp.Handlers["h"] = types.ScriptedAction{
		Effects: []types.EffectSpec{{Type: "give_item", Params: map[string]any{"item": "{dobj}"}}},
	}
	if err := validate(bp); err != nil {
		t.Fatalf("placeholder refs should not be flagged, got: %v", err)
	}
}

func TestValidate_UndefinedItemInCondition(t *testing.T) {
	bp := validBlueprint()
	bp.EventHandlers = []types.EventHandlerDef{
		{EventType: "foo", Conditions: []types.Condition{{Kind: types.CondHasItem, Item: "ghost"}}},
	}
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for undefined item in condition")
	}
	assertContains(t, asValidationError(t, err).Errors, "undefined item")
}

func TestValidate_FuseReferencesUndefinedHandler(t *testing.T) {
	bp := validBlueprint()
	bp.Fuses = []types.FuseDef{{ID: "f1", InitialTurns: 5, OnExpire: "missing"}}
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for fuse referencing undefined handler")
	}
	assertContains(t, asValidationError(t, err).Errors, "undefined handler")
}

func TestValidate_DaemonReferencesUndefinedHandler(t *testing.T) {
	bp := validBlueprint()
	bp.Daemons = []types.DaemonDef{{ID: "d1", Period: 3, OnTick: "missing"}}
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for daemon referencing undefined handler")
	}
	assertContains(t, asValidationError(t, err).Errors, "undefined handler")
}

func TestValidate_UnrecognizedVerb_WarningOnly(t *testing.T) {
	bp := validBlueprint()
	bp.Locations[0].Hooks = []types.HookDef{{Verb: "yeet", When: "before"}}
	if err := validate(bp); err != nil {
		t.Fatalf("unrecognized verb should be warning only, got error: %v", err)
	}
}

func TestValidate_NowhereParent_WarningOnly(t *testing.T) {
	bp := validBlueprint()
	bp.Items = []types.ItemBlueprint{{ID: "ghost"}}
	if err := validate(bp); err != nil {
		t.Fatalf("nowhere parent should be warning only, got error: %v", err)
	}
}

func TestValidate_InvalidHookWhen(t *testing.T) {
	bp := validBlueprint()
	bp.Locations[0].Hooks = []types.HookDef{{Verb: "look", When: "sometimes"}}
	err := validate(bp)
	if err == nil {
		t.Fatal("expected error for invalid hook when")
	}
	assertContains(t, asValidationError(t, err).Errors, "invalid when")
}
