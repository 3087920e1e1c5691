package parser

import (
	"testing"

	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/engine/vocabulary"
	"github.com/nathoo/ifcore/types"
)

func newTestWorld() (*types.GameState, *state.Defs, *vocabulary.Vocabulary) {
	bp := types.GameBlueprint{
		InitialPlayerLocation: types.NewLocationID("kitchen"),
		Locations: []types.LocationBlueprint{
			{ID: types.NewLocationID("kitchen"), Props: map[types.PropertyID]types.Value{types.PropInherentlyLit: types.BoolValue(true)}},
		},
		Items: []types.ItemBlueprint{
			{
				ID:     types.NewItemID("brass_lamp"),
				Parent: types.LocationParent(types.NewLocationID("kitchen")),
				Props: map[types.PropertyID]types.Value{
					types.PropName:       types.StringValue("lamp"),
					types.PropAdjectives: types.StringSetValue("brass"),
					types.PropTakable:    types.BoolValue(true),
				},
			},
			{
				ID:     types.NewItemID("silver_lamp"),
				Parent: types.LocationParent(types.NewLocationID("kitchen")),
				Props: map[types.PropertyID]types.Value{
					types.PropName:       types.StringValue("lamp"),
					types.PropAdjectives: types.StringSetValue("silver"),
					types.PropTakable:    types.BoolValue(true),
				},
			},
		},
		Verbs: []types.VerbDef{
			{ID: types.NewVerbID("take"), Synonyms: []string{"get"}},
			{ID: types.NewVerbID("go")},
			{ID: types.NewVerbID("look"), Synonyms: []string{"l"}},
			{
				ID: types.NewVerbID("put"),
				Syntax: []types.SyntaxRule{{Tokens: []types.SyntaxToken{
					{Slot: types.SlotDirectObject},
					{Slot: types.SlotPreposition, Literal: "in"},
					{Slot: types.SlotIndirectObject},
				}}},
			},
		},
	}
	defs := state.NewDefs(bp)
	s := state.NewState(defs)
	return s, defs, vocabulary.Build(defs)
}

func TestParseBareDirection(t *testing.T) {
	s, defs, vocab := newTestWorld()
	cmd, fail := Parse(s, defs, vocab, "north")
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if !cmd.HasDirection || cmd.Direction != types.North || cmd.Verb != types.NewVerbID("go") {
		t.Fatalf("cmd = %+v, want go north", cmd)
	}
}

func TestParseVerbSynonym(t *testing.T) {
	s, defs, vocab := newTestWorld()
	cmd, fail := Parse(s, defs, vocab, "l")
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if cmd.Verb != types.NewVerbID("look") {
		t.Fatalf("verb = %s, want look", cmd.Verb)
	}
}

func TestParseUnknownVerb(t *testing.T) {
	s, defs, vocab := newTestWorld()
	_, fail := Parse(s, defs, vocab, "xyzzy")
	if fail == nil || fail.Kind != types.FailUnknownWord {
		t.Fatalf("fail = %v, want FailUnknownWord", fail)
	}
}

func TestParseAmbiguousNoun(t *testing.T) {
	s, defs, vocab := newTestWorld()
	_, fail := Parse(s, defs, vocab, "take lamp")
	if fail == nil || fail.Kind != types.FailAmbiguousReference {
		t.Fatalf("fail = %v, want FailAmbiguousReference", fail)
	}
}

func TestParseAdjectiveDisambiguates(t *testing.T) {
	s, defs, vocab := newTestWorld()
	cmd, fail := Parse(s, defs, vocab, "take brass lamp")
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if len(cmd.DirectObjects) != 1 || cmd.DirectObjects[0] != types.NewItemID("brass_lamp") {
		t.Fatalf("direct objects = %v, want [brass_lamp]", cmd.DirectObjects)
	}
}

func TestParseTakeAll(t *testing.T) {
	s, defs, vocab := newTestWorld()
	cmd, fail := Parse(s, defs, vocab, "take all")
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if !cmd.IsAll {
		t.Fatal("expected IsAll to be set")
	}
}

func TestParsePutInPreposition(t *testing.T) {
	s, defs, vocab := newTestWorld()
	cmd, fail := Parse(s, defs, vocab, "put brass lamp in silver lamp")
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if cmd.Preposition != "in" {
		t.Fatalf("preposition = %q, want in", cmd.Preposition)
	}
	if len(cmd.DirectObjects) != 1 || cmd.DirectObjects[0] != types.NewItemID("brass_lamp") {
		t.Fatalf("direct objects = %v", cmd.DirectObjects)
	}
	if len(cmd.IndirectObjects) != 1 || cmd.IndirectObjects[0] != types.NewItemID("silver_lamp") {
		t.Fatalf("indirect objects = %v", cmd.IndirectObjects)
	}
}
