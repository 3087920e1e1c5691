package vocabulary

import "github.com/nathoo/ifcore/types"

// DefaultVerbs is the canonical verb table every game starts from: the
// standard command set (§3's handler list), its surface synonyms, and
// the syntax rules the parser needs for anything beyond a single bare
// object. A blueprint's own Verbs entries are layered on top by Build
// and win on id collision, so content can extend synonyms or add a
// syntax rule without touching this table.
func DefaultVerbs() []types.VerbDef {
	tok := func(slot types.SyntaxSlot) types.SyntaxToken { return types.SyntaxToken{Slot: slot} }
	lit := func(slot types.SyntaxSlot, word string) types.SyntaxToken {
		return types.SyntaxToken{Slot: slot, Literal: word}
	}
	rule := func(toks ...types.SyntaxToken) types.SyntaxRule { return types.SyntaxRule{Tokens: toks} }

	return []types.VerbDef{
		{ID: types.NewVerbID("look"), Synonyms: []string{"l"}},
		{ID: types.NewVerbID("examine"), Synonyms: []string{"x", "inspect"}, RequiresLight: true},
		{ID: types.NewVerbID("inventory"), Synonyms: []string{"i"}},
		{ID: types.NewVerbID("score")},
		{ID: types.NewVerbID("wait"), Synonyms: []string{"z"}},
		{ID: types.NewVerbID("think_about"), Synonyms: []string{"think"}, Syntax: []types.SyntaxRule{
			rule(lit(types.SlotParticle, "about"), tok(types.SlotDirectObject)),
		}},

		{ID: types.NewVerbID("go"), Syntax: []types.SyntaxRule{
			rule(tok(types.SlotDirection)),
		}},
		{ID: types.NewVerbID("enter"), RequiresLight: true},
		{ID: types.NewVerbID("exit"), Synonyms: []string{"leave"}},

		{ID: types.NewVerbID("take"), Synonyms: []string{"get", "grab"}, RequiresLight: true},
		{ID: types.NewVerbID("drop"), RequiresLight: true},
		{ID: types.NewVerbID("put_in"), Synonyms: []string{"put"}, RequiresLight: true, Syntax: []types.SyntaxRule{
			rule(tok(types.SlotDirectObject), lit(types.SlotPreposition, "in"), tok(types.SlotIndirectObject)),
			rule(tok(types.SlotDirectObject), lit(types.SlotPreposition, "into"), tok(types.SlotIndirectObject)),
			rule(tok(types.SlotDirectObject), lit(types.SlotPreposition, "on"), tok(types.SlotIndirectObject)),
			rule(tok(types.SlotDirectObject), lit(types.SlotPreposition, "onto"), tok(types.SlotIndirectObject)),
		}},
		{ID: types.NewVerbID("put_on"), RequiresLight: true},
		{ID: types.NewVerbID("wear"), Synonyms: []string{"don"}, RequiresLight: true},
		{ID: types.NewVerbID("remove"), Synonyms: []string{"doff"}, RequiresLight: true},

		{ID: types.NewVerbID("open"), RequiresLight: true},
		{ID: types.NewVerbID("close"), Synonyms: []string{"shut"}, RequiresLight: true},
		{ID: types.NewVerbID("lock"), RequiresLight: true, Syntax: []types.SyntaxRule{
			rule(tok(types.SlotDirectObject)),
			rule(tok(types.SlotDirectObject), lit(types.SlotPreposition, "with"), tok(types.SlotIndirectObject)),
		}},
		{ID: types.NewVerbID("unlock"), RequiresLight: true, Syntax: []types.SyntaxRule{
			rule(tok(types.SlotDirectObject)),
			rule(tok(types.SlotDirectObject), lit(types.SlotPreposition, "with"), tok(types.SlotIndirectObject)),
		}},
		{ID: types.NewVerbID("turn_on"), Synonyms: []string{"light"}, RequiresLight: true},
		{ID: types.NewVerbID("turn_off"), Synonyms: []string{"extinguish"}, RequiresLight: true},

		{ID: types.NewVerbID("read"), RequiresLight: true},
		{ID: types.NewVerbID("smell"), Synonyms: []string{"sniff"}},
		{ID: types.NewVerbID("listen"), Syntax: []types.SyntaxRule{
			rule(tok(types.SlotDirectObject)),
			rule(lit(types.SlotParticle, "to"), tok(types.SlotDirectObject)),
		}},
		{ID: types.NewVerbID("touch"), Synonyms: []string{"feel"}},
		{ID: types.NewVerbID("eat"), RequiresLight: true},
		{ID: types.NewVerbID("drink"), RequiresLight: true},

		{ID: types.NewVerbID("verbose")},
		{ID: types.NewVerbID("brief")},
		{ID: types.NewVerbID("superbrief")},
		{ID: types.NewVerbID("help")},
		{ID: types.NewVerbID("quit"), Synonyms: []string{"q"}},
		{ID: types.NewVerbID("save")},
		{ID: types.NewVerbID("restore"), Synonyms: []string{"load"}},
	}
}
