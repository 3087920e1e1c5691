// Package parser converts raw command text into a types.Command,
// consulting the vocabulary for word meaning and the scope resolver
// for what the player can currently refer to. It is intentionally
// dumb: fixed syntax rules per verb, no statistical NLU (§1 Non-goals).
package parser

import (
	"strings"

	"github.com/nathoo/ifcore/engine/resolve"
	"github.com/nathoo/ifcore/engine/state"
	"github.com/nathoo/ifcore/engine/vocabulary"
	"github.com/nathoo/ifcore/types"
)

// Parse converts raw input into a Command against the given snapshot,
// or reports the closed set of ParseFailureKind reasons it couldn't.
func Parse(s *types.GameState, defs *state.Defs, vocab *vocabulary.Vocabulary, input string) (types.Command, *types.ParseFailure) {
	raw := strings.TrimSpace(input)
	words := strings.Fields(strings.ToLower(raw))
	if len(words) == 0 {
		return types.Command{}, &types.ParseFailure{Kind: types.FailNoVerb}
	}

	// Bare direction shortcut: "north", "n" alone means "go north".
	if len(words) == 1 {
		if dir, ok := vocab.ResolveDirection(words[0]); ok {
			return types.Command{Verb: types.NewVerbID("go"), Direction: dir, HasDirection: true, RawInput: raw}, nil
		}
	}

	verbID, ok := vocab.ResolveVerb(words[0])
	restStart := 1
	if !ok && len(words) > 1 {
		// Two-word verbs ("turn on") resolve through their joined id.
		verbID, ok = vocab.ResolveVerb(words[0] + "_" + words[1])
		restStart = 2
	}
	if !ok {
		return types.Command{}, &types.ParseFailure{Kind: types.FailUnknownWord, Word: words[0]}
	}
	verbDef := vocab.Verbs[verbID]
	rest := filterNoise(vocab, words[restStart:])

	cmd := types.Command{Verb: verbID, RawInput: raw}

	if len(rest) == 0 {
		return cmd, nil
	}

	if len(verbDef.Syntax) == 0 {
		return matchFreeform(s, defs, vocab, cmd, rest)
	}

	for _, rule := range verbDef.Syntax {
		if matched, ok := matchRule(s, defs, vocab, cmd, rule, rest); ok {
			return matched, nil
		}
	}
	return types.Command{}, &types.ParseFailure{Kind: types.FailNoMatchingSyntax}
}

func filterNoise(vocab *vocabulary.Vocabulary, words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !vocab.IsNoise(w) {
			out = append(out, w)
		}
	}
	return out
}

// matchFreeform handles verbs with no declared syntax rule: everything
// after the verb is one object phrase (direct object only), or the
// literal all/everything.
func matchFreeform(s *types.GameState, defs *state.Defs, vocab *vocabulary.Vocabulary, cmd types.Command, words []string) (types.Command, *types.ParseFailure) {
	if isAllPhrase(words) {
		cmd.IsAll = true
		return cmd, nil
	}
	ids, mods, fail := resolveObjectPhrase(s, defs, vocab, words)
	if fail != nil {
		return types.Command{}, fail
	}
	cmd.DirectObjects = ids
	cmd.DObjModifiers = mods
	return cmd, nil
}

func isAllPhrase(words []string) bool {
	return len(words) == 1 && (words[0] == "all" || words[0] == "everything")
}

// matchRule attempts one SyntaxRule against the word stream following
// the verb. A rule fails (returns ok=false) without side effects so
// the caller can try the next declared rule.
func matchRule(s *types.GameState, defs *state.Defs, vocab *vocabulary.Vocabulary, cmd types.Command, rule types.SyntaxRule, words []string) (types.Command, bool) {
	pos := 0
	for i, tok := range rule.Tokens {
		switch tok.Slot {
		case types.SlotVerb:
			continue
		case types.SlotPreposition, types.SlotParticle:
			if pos >= len(words) || words[pos] != tok.Literal {
				return types.Command{}, false
			}
			cmd.Preposition = tok.Literal
			pos++
		case types.SlotDirection:
			if pos >= len(words) {
				return types.Command{}, false
			}
			dir, ok := vocab.ResolveDirection(words[pos])
			if !ok {
				return types.Command{}, false
			}
			cmd.Direction = dir
			cmd.HasDirection = true
			pos++
		case types.SlotDirectObject, types.SlotIndirectObject:
			span, next := takeObjectSpan(words, pos, rule.Tokens[i+1:])
			if len(span) == 0 {
				return types.Command{}, false
			}
			if isAllPhrase(span) {
				cmd.IsAll = true
				pos = next
				continue
			}
			ids, mods, fail := resolveObjectPhrase(s, defs, vocab, span)
			if fail != nil {
				return types.Command{}, false
			}
			if tok.Slot == types.SlotDirectObject {
				cmd.DirectObjects = ids
				cmd.DObjModifiers = mods
			} else {
				cmd.IndirectObjects = ids
				cmd.IObjModifiers = mods
			}
			pos = next
		}
	}
	if pos != len(words) {
		return types.Command{}, false
	}
	return cmd, true
}

// takeObjectSpan consumes words greedily until the next required
// literal token in the remainder of the rule (a preposition/particle),
// or the end of input.
func takeObjectSpan(words []string, start int, remaining []types.SyntaxToken) ([]string, int) {
	stop := len(words)
	for i := start; i < len(words); i++ {
		for _, tok := range remaining {
			if (tok.Slot == types.SlotPreposition || tok.Slot == types.SlotParticle) && words[i] == tok.Literal {
				stop = i
			}
		}
		if stop != len(words) {
			break
		}
	}
	return words[start:stop], stop
}

// resolveObjectPhrase splits a word span into leading adjectives and a
// trailing noun, resolving pronouns directly and everything else
// through the vocabulary and scope resolver.
func resolveObjectPhrase(s *types.GameState, defs *state.Defs, vocab *vocabulary.Vocabulary, words []string) ([]types.ItemID, []string, *types.ParseFailure) {
	if len(words) == 1 && vocab.IsPronoun(words[0]) {
		id, ok := s.Pronouns[words[0]]
		if !ok {
			return nil, nil, &types.ParseFailure{Kind: types.FailPronounUnbound, Pronoun: words[0]}
		}
		return []types.ItemID{id}, nil, nil
	}

	noun := words[len(words)-1]
	adjectives := words[:len(words)-1]

	if len(vocab.CandidatesFor(noun)) == 0 {
		return nil, nil, &types.ParseFailure{Kind: types.FailUnknownWord, Word: noun}
	}

	var adjSets [][]types.ItemID
	for _, adj := range adjectives {
		set := vocab.CandidatesForAdjective(adj)
		if len(set) == 0 {
			return nil, nil, &types.ParseFailure{Kind: types.FailUnknownWord, Word: adj}
		}
		adjSets = append(adjSets, set)
	}

	scope := resolve.ScopeSet(s, defs)
	id, candidates := resolve.ResolveNounPhrase(s, defs, noun, adjectives, [][]types.ItemID{vocab.CandidatesFor(noun)}, adjSets, scope)
	if id == "" {
		if len(candidates) > 1 {
			return nil, nil, &types.ParseFailure{Kind: types.FailAmbiguousReference, Candidates: candidates, NounWord: noun}
		}
		return nil, nil, &types.ParseFailure{Kind: types.FailObjectNotInScope, Word: noun}
	}
	return []types.ItemID{id}, adjectives, nil
}
