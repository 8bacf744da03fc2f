// Package cfg implements the grammar and reduction engines over a
// context-free grammar declared in the language configuration. The parser
// derives every combination of lexicon readings and rule alternatives for
// a token span; the reducer picks the highest-scoring derivation.
package cfg

import (
	"fmt"
	"strings"

	"github.com/teksti/greina/pkg/greina/config"
	"github.com/teksti/greina/pkg/greina/engine"
	"github.com/teksti/greina/pkg/greina/internalerr"
	"github.com/teksti/greina/pkg/greina/token"
)

// maxDerivations caps the number of derivations kept per span, keeping
// pathological grammars from exploding the forest.
const maxDerivations = 1024

// Engine is a chart parser over a configured grammar and lexicon.
// It is stateless between calls and safe for concurrent use.
type Engine struct {
	start string
	rules map[string][][]string
	lex   *config.Lexicon
}

// New compiles the grammar of lang into an engine.
func New(lang *config.Language) (*Engine, error) {
	if lang == nil {
		return nil, fmt.Errorf("%w: no language configured", internalerr.ErrInvalidConfig)
	}
	if err := lang.Grammar.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return &Engine{
		start: lang.Grammar.Start,
		rules: lang.Grammar.Rules,
		lex:   &lang.Lexicon,
	}, nil
}

// Factory returns a registry factory building the parser/reducer pair
// for lang. Both engines share the compiled grammar.
func Factory(lang *config.Language) engine.Factory {
	return func() (engine.Parser, engine.Reducer, error) {
		e, err := New(lang)
		if err != nil {
			return nil, nil, err
		}
		return e, Reducer{}, nil
	}
}

// node implements engine.Node for both terminals and nonterminals.
type node struct {
	label    string
	children []*node
	tokIndex int
	lemma    string
	cat      string
	variants []string
}

func (n *node) Label() string { return n.label }
func (n *node) Children() []engine.Node {
	out := make([]engine.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}
func (n *node) TokenIndex() int    { return n.tokIndex }
func (n *node) Lemma() string      { return n.lemma }
func (n *node) Category() string   { return n.cat }
func (n *node) Variants() []string { return n.variants }

type tree struct{ root *node }

func (t tree) Root() engine.Node { return t.root }

// forest holds every derivation of the full span from the requested root.
type forest struct{ derivs []*node }

func (f *forest) Combinations() int64 { return int64(len(f.derivs)) }
func (f *forest) Unique() engine.Tree { return tree{f.derivs[0]} }

// Parse implements engine.Parser.
func (e *Engine) Parse(toks token.Sequence, root string) (engine.Forest, error) {
	if root == "" {
		root = e.start
	}
	if _, ok := e.rules[root]; !ok {
		return nil, fmt.Errorf("%w: unknown grammar root %q", internalerr.ErrInvalidConfig, root)
	}
	st := &parseState{e: e, toks: toks, memo: make(map[spanKey][]*node), active: make(map[spanKey]bool)}
	derivs := st.derive(root, 0, len(toks))
	if len(derivs) == 0 {
		errIndex := st.maxMatched
		if errIndex >= len(toks) {
			errIndex = len(toks) - 1
		}
		return nil, engine.NewParseError(internalerr.ErrNoParse, errIndex,
			"no valid derivation from %s (error at token %d)", root, errIndex)
	}
	return &forest{derivs: derivs}, nil
}

type spanKey struct {
	sym  string
	i, j int
}

type parseState struct {
	e    *Engine
	toks token.Sequence
	memo map[spanKey][]*node
	// active guards against unary rule cycles re-entering the same span.
	active map[spanKey]bool
	// maxMatched tracks the furthest token boundary any terminal reached,
	// reported as the error index when no derivation exists.
	maxMatched int
}

// derive returns all derivations of sym over the token span [i, j).
func (s *parseState) derive(sym string, i, j int) []*node {
	alts, isNonterminal := s.e.rules[sym]
	if !isNonterminal {
		if j-i != 1 {
			return nil
		}
		return s.matchTerminal(sym, i)
	}
	key := spanKey{sym, i, j}
	if d, ok := s.memo[key]; ok {
		return d
	}
	if s.active[key] {
		return nil
	}
	s.active[key] = true
	var derivs []*node
	for _, alt := range alts {
		for _, children := range s.deriveSeq(alt, i, j) {
			derivs = append(derivs, &node{label: sym, children: children, tokIndex: -1})
			if len(derivs) >= maxDerivations {
				break
			}
		}
		if len(derivs) >= maxDerivations {
			break
		}
	}
	delete(s.active, key)
	s.memo[key] = derivs
	return derivs
}

// deriveSeq returns all ways a symbol sequence can cover [i, j), as child
// slices. Every symbol must consume at least one token.
func (s *parseState) deriveSeq(symbols []string, i, j int) [][]*node {
	if len(symbols) == 1 {
		var out [][]*node
		for _, d := range s.derive(symbols[0], i, j) {
			out = append(out, []*node{d})
		}
		return out
	}
	var out [][]*node
	for k := i + 1; k <= j-(len(symbols)-1); k++ {
		heads := s.derive(symbols[0], i, k)
		if len(heads) == 0 {
			continue
		}
		tails := s.deriveSeq(symbols[1:], k, j)
		for _, h := range heads {
			for _, t := range tails {
				children := append([]*node{h}, t...)
				out = append(out, children)
				if len(out) >= maxDerivations {
					return out
				}
			}
		}
	}
	return out
}

// matchTerminal matches a terminal symbol ("cat" or "cat_var1_var2...")
// against the token at index i, producing one leaf per matching lexicon
// reading.
func (s *parseState) matchTerminal(sym string, i int) []*node {
	tok := s.toks[i]
	parts := strings.Split(sym, "_")
	cat, want := parts[0], parts[1:]

	var out []*node
	add := func(lemma string, category string, variants []string) {
		out = append(out, &node{
			label:    sym,
			tokIndex: i,
			lemma:    lemma,
			cat:      category,
			variants: variants,
		})
	}

	switch tok.Kind {
	case token.Word, token.Person:
		for _, e := range s.e.lex.Lookup(tok.Text) {
			if e.Cat != cat {
				continue
			}
			if !hasAllVariants(e, want) {
				continue
			}
			add(e.Lemma, e.Cat, e.Variants)
		}
	case token.Entity:
		if cat == "entity" && len(want) == 0 {
			add(tok.Text, "entity", nil)
		}
	case token.Number:
		if cat == "to" && len(want) == 0 {
			add(tok.Text, "to", nil)
		}
	case token.Punctuation:
		// Grammars may reference literal punctuation.
		if sym == tok.Text {
			add(tok.Text, "p", nil)
		}
	}
	if len(out) > 0 && i+1 > s.maxMatched {
		s.maxMatched = i + 1
	}
	return out
}

func hasAllVariants(e config.Entry, want []string) bool {
	for _, v := range want {
		if !e.HasVariant(v) {
			return false
		}
	}
	return true
}

// Reducer selects the best-scoring derivation from a cfg forest.
type Reducer struct{}

// Reduce implements engine.Reducer. The score prefers derivations whose
// terminals match more specific lexicon readings, penalizing tree size.
func (Reducer) Reduce(f engine.Forest) (engine.Tree, int, error) {
	ff, ok := f.(*forest)
	if !ok {
		return nil, 0, fmt.Errorf("%w: forest was not produced by this engine", internalerr.ErrInvalidInput)
	}
	if len(ff.derivs) == 0 {
		return nil, 0, fmt.Errorf("%w: empty forest", internalerr.ErrInvalidInput)
	}
	best := ff.derivs[0]
	bestScore := score(best)
	for _, d := range ff.derivs[1:] {
		if sc := score(d); sc > bestScore {
			best, bestScore = d, sc
		}
	}
	return tree{best}, bestScore, nil
}

func score(n *node) int {
	if n.tokIndex >= 0 {
		return 1 + 2*len(n.variants)
	}
	total := -1
	for _, c := range n.children {
		total += score(c)
	}
	return total
}
