package types

// Command is the parser's output: a verb plus resolved direct/indirect
// objects, the preposition that split them, an optional direction, and
// the "all"/"everything" aggregate flag.
type Command struct {
	Verb           VerbID
	DirectObjects  []ItemID
	IndirectObjects []ItemID
	DObjModifiers  []string // adjective tokens used to resolve DirectObjects
	IObjModifiers  []string
	Preposition    string
	Direction      Direction
	HasDirection   bool
	IsAll          bool
	RawInput       string
}

// ParseFailureKind tags the closed set of parser failures (§4.3).
type ParseFailureKind int

const (
	FailUnknownWord ParseFailureKind = iota
	FailNoVerb
	FailNoMatchingSyntax
	FailAmbiguousReference
	FailPronounUnbound
	FailObjectNotInScope
)

// ParseFailure is returned verbatim to the engine, which renders it
// through the message catalogue.
type ParseFailure struct {
	Kind       ParseFailureKind
	Word       string   // for FailUnknownWord, FailObjectNotInScope
	Pronoun    string   // for FailPronounUnbound
	Candidates []ItemID // for FailAmbiguousReference
	NounWord   string   // the noun text the candidates were resolved from
}

func (f *ParseFailure) Error() string {
	switch f.Kind {
	case FailUnknownWord:
		return "unknown word: " + f.Word
	case FailNoVerb:
		return "no verb"
	case FailNoMatchingSyntax:
		return "no matching syntax"
	case FailAmbiguousReference:
		return "ambiguous reference: " + f.NounWord
	case FailPronounUnbound:
		return "pronoun unbound: " + f.Pronoun
	case FailObjectNotInScope:
		return "object not in scope: " + f.Word
	default:
		return "parse failure"
	}
}

// SyntaxSlot identifies one matcher position within a verb's syntax rule.
type SyntaxSlot int

const (
	SlotVerb SyntaxSlot = iota
	SlotDirectObject
	SlotIndirectObject
	SlotPreposition
	SlotParticle
	SlotDirection
)

// SyntaxToken is one matcher in a verb's syntax rule.
type SyntaxToken struct {
	Slot SyntaxSlot
	// Literal is required for SlotPreposition/SlotParticle: the token
	// text must equal this exactly.
	Literal string
	// RequireContainer/RequireReachable constrain an object slot.
	RequireContainer bool
	RequireReachable bool
}

// SyntaxRule is one accepted word-order pattern for a verb.
type SyntaxRule struct {
	Tokens []SyntaxToken
}

// VerbDef is a vocabulary entry: a canonical verb plus the surface
// words that resolve to it, its accepted syntax rules, and whether it
// requires a lit location to execute.
type VerbDef struct {
	ID            VerbID
	Synonyms      []string
	Syntax        []SyntaxRule
	RequiresLight bool
}
