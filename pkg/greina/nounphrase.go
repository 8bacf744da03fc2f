package greina

import (
	"fmt"

	"github.com/teksti/greina/pkg/greina/internalerr"
	"github.com/teksti/greina/pkg/greina/token"
	"github.com/teksti/greina/pkg/greina/tree"
)

// NounPhrase wraps a sentence parsed with a noun-phrase grammar root and
// exposes its case-inflected surface forms. Each form is computed at
// most once and cached.
type NounPhrase struct {
	*Sentence

	inf tree.Inflector

	nom, acc, dat, gen, ind, can npForm
}

type npForm struct {
	text string
	ok   bool
	done bool
}

// nounPhraseRoot maps a number restriction to the grammar root used for
// the noun-phrase job. Unrecognized values are a configuration error,
// raised before any tokenization or parsing.
func nounPhraseRoot(forceNumber string) (string, error) {
	switch forceNumber {
	case "":
		return "Nl", nil
	case "et", "singular":
		return "Nl_et", nil
	case "ft", "plural":
		return "Nl_ft", nil
	}
	return "", fmt.Errorf("%w: unexpected force number %q", internalerr.ErrInvalidConfig, forceNumber)
}

// Nominative returns the nominative form, or false when the phrase did
// not parse.
func (np *NounPhrase) Nominative() (string, bool) {
	return np.form(&np.nom, tree.NominativeNP)
}

// Accusative returns the accusative form.
func (np *NounPhrase) Accusative() (string, bool) {
	return np.form(&np.acc, tree.AccusativeNP)
}

// Dative returns the dative form.
func (np *NounPhrase) Dative() (string, bool) {
	return np.form(&np.dat, tree.DativeNP)
}

// Genitive returns the genitive form.
func (np *NounPhrase) Genitive() (string, bool) {
	return np.form(&np.gen, tree.GenitiveNP)
}

// Indefinite returns the nominative form without articles.
func (np *NounPhrase) Indefinite() (string, bool) {
	return np.form(&np.ind, tree.IndefiniteNP)
}

// Canonical returns the nominative singular form without articles.
func (np *NounPhrase) Canonical() (string, bool) {
	return np.form(&np.can, tree.CanonicalNP)
}

func (np *NounPhrase) form(c *npForm, render func(*tree.Tree, tree.Inflector) string) (string, bool) {
	if !c.done {
		c.done = true
		if t := np.Tree(); t != nil {
			c.text = token.CorrectSpacing(render(t, np.inf))
			c.ok = true
		}
	}
	return c.text, c.ok
}
