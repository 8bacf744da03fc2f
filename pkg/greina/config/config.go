// Package config loads the language resources that drive the pipeline:
// the lexicon (surface forms with lemmas, categories, grammatical variants
// and inflection tables), the context-free grammar, and the abbreviation
// list used during sentence segmentation.
package config

import (
	"fmt"
	"sort"
	"strings"
)

// Entry describes one reading of a surface form in the lexicon.
// A surface form may have several entries (homonyms).
type Entry struct {
	Lemma    string            `yaml:"lemma"`
	Cat      string            `yaml:"cat"`
	Variants []string          `yaml:"variants,omitempty"`
	Forms    map[string]string `yaml:"forms,omitempty"`
}

// Lexicon maps lowercased surface forms to their readings.
type Lexicon struct {
	Entries map[string][]Entry `yaml:"entries"`
}

// Grammar is a context-free grammar: a start symbol and, per nonterminal,
// a list of alternative right-hand sides. Symbols that have no rules are
// terminal symbols matched against the lexicon (category, optionally
// followed by underscore-separated variant requirements, e.g. "no_et").
type Grammar struct {
	Start string                `yaml:"start"`
	Rules map[string][][]string `yaml:"rules"`
}

// Language bundles all resources for one language.
type Language struct {
	Grammar       Grammar  `yaml:"grammar"`
	Lexicon       Lexicon  `yaml:"lexicon"`
	Abbreviations []string `yaml:"abbreviations,omitempty"`
}

// Lookup returns the lexicon entries for a surface form, trying the exact
// form first and then its lowercased version (sentence-initial words are
// capitalized without being proper names).
func (l *Lexicon) Lookup(word string) []Entry {
	if l == nil || l.Entries == nil {
		return nil
	}
	if e, ok := l.Entries[word]; ok {
		return e
	}
	if lower := strings.ToLower(word); lower != word {
		return l.Entries[lower]
	}
	return nil
}

// HasVariant reports whether the entry carries the given variant.
func (e Entry) HasVariant(v string) bool {
	for _, ev := range e.Variants {
		if ev == v {
			return true
		}
	}
	return false
}

// caseVariants are the four Icelandic cases, in canonical order.
var caseVariants = []string{"nf", "þf", "þgf", "ef"}

// numberVariants are the grammatical numbers, in canonical order.
var numberVariants = []string{"et", "ft"}

// FormKey builds the canonical key into an Entry.Forms table from a set of
// requested variants: the case first, then the number, joined by "_".
func FormKey(variants []string) string {
	var parts []string
	for _, c := range caseVariants {
		if containsString(variants, c) {
			parts = append(parts, c)
			break
		}
	}
	for _, n := range numberVariants {
		if containsString(variants, n) {
			parts = append(parts, n)
			break
		}
	}
	return strings.Join(parts, "_")
}

// Inflect returns the surface form of the given lemma inflected to the
// requested variants, consulting the Forms tables in the lexicon.
// It reports false when the lemma is unknown or has no matching form.
func (l *Lexicon) Inflect(lemma, cat string, variants []string) (string, bool) {
	if l == nil || l.Entries == nil {
		return "", false
	}
	key := FormKey(variants)
	if key == "" {
		return "", false
	}
	// Collect all entries sharing the lemma and category; any of them may
	// carry the forms table.
	for _, form := range sortedForms(l.Entries) {
		for _, e := range l.Entries[form] {
			if e.Lemma != lemma || e.Cat != cat || len(e.Forms) == 0 {
				continue
			}
			if f, ok := e.Forms[key]; ok {
				return f, true
			}
			// Fall back to a case-only key when the number is not tabled.
			if i := strings.IndexByte(key, '_'); i > 0 {
				if f, ok := e.Forms[key[:i]]; ok {
					return f, true
				}
			}
		}
	}
	return "", false
}

// Validate checks that every symbol referenced by a grammar rule is either
// another nonterminal or a plausible terminal symbol, and that the start
// symbol has rules.
func (g *Grammar) Validate() error {
	if g.Start == "" {
		return fmt.Errorf("grammar has no start symbol")
	}
	if _, ok := g.Rules[g.Start]; !ok {
		return fmt.Errorf("start symbol %q has no rules", g.Start)
	}
	for nt, alts := range g.Rules {
		if len(alts) == 0 {
			return fmt.Errorf("nonterminal %q has no alternatives", nt)
		}
		for _, alt := range alts {
			if len(alt) == 0 {
				return fmt.Errorf("nonterminal %q has an empty alternative", nt)
			}
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedForms(m map[string][]Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
