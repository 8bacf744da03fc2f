// Package tree provides the simplified, query-friendly view over a
// reduced derivation: descendant traversal, terminal accessors, a flat
// text form, and a serializable head record that round-trips without
// re-parsing.
package tree

import (
	"strings"

	"github.com/teksti/greina/pkg/greina/engine"
	"github.com/teksti/greina/pkg/greina/token"
)

// Node is one node of a simplified tree. Terminal nodes carry the
// lexical fields; nonterminal nodes only a tag and children. The JSON
// shape is the persisted head record of the tree.
type Node struct {
	Tag      string   `json:"k"`
	Text     string   `json:"x,omitempty"`
	Lemma    string   `json:"s,omitempty"`
	Cat      string   `json:"c,omitempty"`
	Variants []string `json:"v,omitempty"`
	Index    int      `json:"ix,omitempty"`
	Terminal bool     `json:"t,omitempty"`
	Children []*Node  `json:"p,omitempty"`
}

// Tree is a simplified parse tree.
type Tree struct {
	root *Node
}

// FromDeep builds a simplified tree from a reduced derivation and the
// original token sequence it derives.
func FromDeep(dt engine.Tree, toks token.Sequence) *Tree {
	if dt == nil {
		return nil
	}
	return &Tree{root: convert(dt.Root(), toks)}
}

// FromHead reconstructs a tree from a persisted head record.
func FromHead(root *Node) *Tree {
	if root == nil {
		return nil
	}
	return &Tree{root: root}
}

func convert(n engine.Node, toks token.Sequence) *Node {
	if idx := n.TokenIndex(); idx >= 0 {
		text := ""
		if idx < len(toks) {
			text = toks[idx].Text
		}
		lemma := n.Lemma()
		if lemma == "" && idx < len(toks) {
			lemma = toks[idx].Val
		}
		if lemma == "" {
			lemma = text
		}
		return &Node{
			Tag:      n.Label(),
			Text:     text,
			Lemma:    lemma,
			Cat:      n.Category(),
			Variants: n.Variants(),
			Index:    idx,
			Terminal: true,
		}
	}
	out := &Node{Tag: n.Label()}
	for _, c := range n.Children() {
		out.Children = append(out.Children, convert(c, toks))
	}
	return out
}

// Head returns the serializable head record of the tree.
func (t *Tree) Head() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Descendants returns every node below the root, in left-to-right
// depth-first order.
func (t *Tree) Descendants() []*Node {
	if t == nil || t.root == nil {
		return nil
	}
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// Terminals returns the terminal nodes in left-to-right order.
func (t *Tree) Terminals() []*Node {
	var out []*Node
	if t == nil || t.root == nil {
		return out
	}
	if t.root.IsTerminal() {
		return []*Node{t.root}
	}
	for _, d := range t.Descendants() {
		if d.IsTerminal() {
			out = append(out, d)
		}
	}
	return out
}

// Flat returns a one-line bracketed representation of the tree.
func (t *Tree) Flat() string {
	if t == nil || t.root == nil {
		return ""
	}
	var b strings.Builder
	flatten(t.root, &b)
	return b.String()
}

func flatten(n *Node, b *strings.Builder) {
	if n.IsTerminal() {
		b.WriteString(n.Text)
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Tag)
	for _, c := range n.Children {
		b.WriteByte(' ')
		flatten(c, b)
	}
	b.WriteByte(')')
}

// IsTerminal reports whether the node is a terminal (leaf matching one
// input token).
func (n *Node) IsTerminal() bool { return n.Terminal }

// TerminalCategory returns the category part of the terminal symbol the
// node matched ("no" for "no_et"), or "" for nonterminal nodes.
func (n *Node) TerminalCategory() string {
	if !n.Terminal {
		return ""
	}
	if i := strings.IndexByte(n.Tag, '_'); i > 0 {
		return n.Tag[:i]
	}
	return n.Tag
}

// LemmaCategory returns the category used for topic indexing: person and
// entity terminals keep their kind, other terminals their lexicon
// category.
func (n *Node) LemmaCategory() string {
	return n.Cat
}

// IFDTag returns the "cat_variant1_variant2" frequency-dictionary tag of
// a terminal node, or "" for nonterminal nodes.
func (n *Node) IFDTag() string {
	if !n.Terminal {
		return ""
	}
	parts := append([]string{n.Cat}, n.Variants...)
	return strings.Join(parts, "_")
}
