// Package vocabulary builds the word indices the parser consults:
// verb synonyms, noun/adjective tables per item, direction words, the
// fixed preposition and noise-word sets, and pronoun bindings. It
// contains no parsing logic of its own — engine/parser walks these
// tables.
package vocabulary

import (
	"strings"

	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/types"
)

// Vocabulary is the compiled word index for one game, built once from
// Defs at startup.
type Vocabulary struct {
	// VerbBySynonym maps every lower-cased synonym word to the verb it
	// names. A verb's own id is always included as a synonym of itself.
	VerbBySynonym map[string]types.VerbID
	Verbs         map[types.VerbID]types.VerbDef

	// NounIndex maps a lower-cased noun word to the items it can name.
	// Multiple items can share a noun ("door" on two different doors);
	// the resolver disambiguates by scope and adjectives.
	NounIndex map[string][]types.ItemID

	// AdjectiveIndex maps a lower-cased adjective word to the items it
	// can qualify.
	AdjectiveIndex map[string][]types.ItemID

	// DirectionWords maps every direction synonym ("n", "north") to its
	// canonical Direction.
	DirectionWords map[string]types.Direction

	Prepositions map[string]bool
	NoiseWords   map[string]bool
	Pronouns     map[string]bool
}

var directionSynonyms = map[string]types.Direction{
	"north": types.North, "n": types.North,
	"south": types.South, "s": types.South,
	"east": types.East, "e": types.East,
	"west": types.West, "w": types.West,
	"northeast": types.Northeast, "ne": types.Northeast,
	"northwest": types.Northwest, "nw": types.Northwest,
	"southeast": types.Southeast, "se": types.Southeast,
	"southwest": types.Southwest, "sw": types.Southwest,
	"up": types.Up, "u": types.Up,
	"down": types.Down, "d": types.Down,
	"in": types.In, "inside": types.In,
	"out": types.Out, "outside": types.Out,
}

var defaultPrepositions = []string{
	"in", "into", "inside", "on", "onto", "under", "behind",
	"with", "using", "to", "at", "from", "through", "about",
}

var defaultNoiseWords = []string{
	"the", "a", "an", "of", "please",
}

var defaultPronouns = []string{"it", "him", "her", "them"}

// Build compiles a Vocabulary from Defs's verb list and item/location
// name/adjective/synonym properties.
func Build(defs *state.Defs) *Vocabulary {
	v := &Vocabulary{
		VerbBySynonym:  map[string]types.VerbID{},
		Verbs:          map[types.VerbID]types.VerbDef{},
		NounIndex:      map[string][]types.ItemID{},
		AdjectiveIndex: map[string][]types.ItemID{},
		DirectionWords: map[string]types.Direction{},
		Prepositions:   map[string]bool{},
		NoiseWords:     map[string]bool{},
		Pronouns:       map[string]bool{},
	}

	addVerb := func(def types.VerbDef) {
		v.Verbs[def.ID] = def
		v.VerbBySynonym[strings.ToLower(string(def.ID))] = def.ID
		for _, syn := range def.Synonyms {
			v.VerbBySynonym[strings.ToLower(syn)] = def.ID
		}
	}

	// The standard verb set is always present; a blueprint's own Verbs
	// entries are layered on top and win on id collision, so content can
	// extend a default verb's synonyms/syntax without redeclaring it.
	for _, def := range DefaultVerbs() {
		addVerb(def)
	}
	for _, def := range defs.Verbs {
		addVerb(def)
	}

	for id, item := range defs.Items {
		if name := item.Props[types.PropName].String(); name != "" {
			v.addNoun(strings.ToLower(name), id)
		}
		for _, syn := range item.Props[types.PropSynonyms].StringSet() {
			v.addNoun(strings.ToLower(syn), id)
		}
		for _, adj := range item.Props[types.PropAdjectives].StringSet() {
			v.addAdjective(strings.ToLower(adj), id)
		}
	}

	for word, dir := range directionSynonyms {
		v.DirectionWords[word] = dir
	}
	for _, p := range defaultPrepositions {
		v.Prepositions[p] = true
	}
	for _, n := range defaultNoiseWords {
		v.NoiseWords[n] = true
	}
	for _, p := range defaultPronouns {
		v.Pronouns[p] = true
	}
	return v
}

func (v *Vocabulary) addNoun(word string, id types.ItemID) {
	v.NounIndex[word] = append(v.NounIndex[word], id)
}

func (v *Vocabulary) addAdjective(word string, id types.ItemID) {
	v.AdjectiveIndex[word] = append(v.AdjectiveIndex[word], id)
}

// ResolveVerb looks up a word as a verb synonym.
func (v *Vocabulary) ResolveVerb(word string) (types.VerbID, bool) {
	id, ok := v.VerbBySynonym[strings.ToLower(word)]
	return id, ok
}

// ResolveDirection looks up a word as a direction synonym.
func (v *Vocabulary) ResolveDirection(word string) (types.Direction, bool) {
	d, ok := v.DirectionWords[strings.ToLower(word)]
	return d, ok
}

// IsNoise reports whether word should be skipped entirely when parsing.
func (v *Vocabulary) IsNoise(word string) bool {
	return v.NoiseWords[strings.ToLower(word)]
}

// IsPreposition reports whether word is one of the fixed prepositions.
func (v *Vocabulary) IsPreposition(word string) bool {
	return v.Prepositions[strings.ToLower(word)]
}

// IsPronoun reports whether word is a tracked pronoun.
func (v *Vocabulary) IsPronoun(word string) bool {
	return v.Pronouns[strings.ToLower(word)]
}

// CandidatesFor returns every item a noun word could name.
func (v *Vocabulary) CandidatesFor(word string) []types.ItemID {
	return v.NounIndex[strings.ToLower(word)]
}

// CandidatesForAdjective returns every item an adjective word could
// qualify.
func (v *Vocabulary) CandidatesForAdjective(word string) []types.ItemID {
	return v.AdjectiveIndex[strings.ToLower(word)]
}
