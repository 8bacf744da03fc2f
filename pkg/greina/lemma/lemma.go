// Package lemma implements simple lemmatization of token sequences
// without parsing: each text token (word, person name, entity name) maps
// to its lexicon lemma and category.
package lemma

import (
	"sort"

	"github.com/teksti/greina/pkg/greina/config"
	"github.com/teksti/greina/pkg/greina/token"
)

// Pair is one lemmatization result.
type Pair struct {
	Lemma string `json:"lemma"`
	Cat   string `json:"cat"`
}

// SortKey orders the readings of a single token when all lemmas are
// requested.
type SortKey func(Pair) string

// Lemmatize returns one (lemma, category) pair per text token, using the
// primary lexicon reading. Punctuation, numbers, dates and other
// non-text tokens are skipped. Unknown words are returned with their
// surface text and an empty category.
func Lemmatize(toks token.Sequence, lex *config.Lexicon) []Pair {
	var out []Pair
	for _, t := range toks {
		pairs := readings(t, lex)
		if len(pairs) > 0 {
			out = append(out, pairs[0])
		}
	}
	return out
}

// LemmatizeAll returns every possible (lemma, category) pair per text
// token. When key is non-nil, each token's readings are sorted by it.
func LemmatizeAll(toks token.Sequence, lex *config.Lexicon, key SortKey) [][]Pair {
	var out [][]Pair
	for _, t := range toks {
		pairs := readings(t, lex)
		if len(pairs) == 0 {
			continue
		}
		if key != nil {
			sort.SliceStable(pairs, func(i, j int) bool {
				return key(pairs[i]) < key(pairs[j])
			})
		}
		out = append(out, pairs)
	}
	return out
}

// readings returns the candidate pairs for one token, or nil when the
// token kind is not lemmatized.
func readings(t token.Token, lex *config.Lexicon) []Pair {
	switch t.Kind {
	case token.Person:
		return []Pair{{Lemma: t.Val, Cat: "person"}}
	case token.Entity:
		return []Pair{{Lemma: t.Text, Cat: "entity"}}
	case token.Word:
		entries := lex.Lookup(t.Text)
		if len(entries) == 0 {
			return []Pair{{Lemma: t.Text}}
		}
		pairs := make([]Pair, 0, len(entries))
		seen := make(map[Pair]struct{}, len(entries))
		for _, e := range entries {
			p := Pair{Lemma: e.Lemma, Cat: e.Cat}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			pairs = append(pairs, p)
		}
		return pairs
	}
	return nil
}
