package tree

import "strings"

// Inflector looks up the surface form of a lemma under the requested
// grammatical variants. The lexicon of the language configuration
// implements this.
type Inflector interface {
	Inflect(lemma, cat string, variants []string) (string, bool)
}

// Categories whose terminals are re-inflected when a noun phrase is
// moved to another case.
var declinable = map[string]bool{
	"no":     true,
	"lo":     true,
	"fn":     true,
	"pfn":    true,
	"gr":     true,
	"person": true,
}

// NominativeNP renders the phrase with declinable terminals moved to the
// nominative case. The result still needs spacing correction.
func NominativeNP(t *Tree, inf Inflector) string {
	return inflectNP(t, inf, "nf", "", false)
}

// AccusativeNP renders the phrase in the accusative case.
func AccusativeNP(t *Tree, inf Inflector) string {
	return inflectNP(t, inf, "þf", "", false)
}

// DativeNP renders the phrase in the dative case.
func DativeNP(t *Tree, inf Inflector) string {
	return inflectNP(t, inf, "þgf", "", false)
}

// GenitiveNP renders the phrase in the genitive case.
func GenitiveNP(t *Tree, inf Inflector) string {
	return inflectNP(t, inf, "ef", "", false)
}

// IndefiniteNP renders the phrase in the nominative without articles.
func IndefiniteNP(t *Tree, inf Inflector) string {
	return inflectNP(t, inf, "nf", "", true)
}

// CanonicalNP renders the phrase in the nominative singular without
// articles, the canonical dictionary form.
func CanonicalNP(t *Tree, inf Inflector) string {
	return inflectNP(t, inf, "nf", "et", true)
}

func inflectNP(t *Tree, inf Inflector, caseVar, forceNumber string, dropArticle bool) string {
	if t == nil {
		return ""
	}
	var parts []string
	for _, n := range t.Terminals() {
		if dropArticle && n.Cat == "gr" {
			continue
		}
		parts = append(parts, inflectTerminal(n, inf, caseVar, forceNumber))
	}
	return strings.Join(parts, " ")
}

func inflectTerminal(n *Node, inf Inflector, caseVar, forceNumber string) string {
	if inf == nil || !declinable[n.Cat] {
		return n.Text
	}
	number := forceNumber
	if number == "" {
		number = numberVariant(n.Variants)
	}
	want := []string{caseVar}
	if number != "" {
		want = append(want, number)
	}
	if form, ok := inf.Inflect(n.Lemma, n.Cat, want); ok {
		return form
	}
	return n.Text
}

func numberVariant(variants []string) string {
	for _, v := range variants {
		if v == "et" || v == "ft" {
			return v
		}
	}
	return ""
}
