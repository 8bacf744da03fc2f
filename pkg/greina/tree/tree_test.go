package tree

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/teksti/greina/pkg/greina/engine"
	"github.com/teksti/greina/pkg/greina/token"
)

// fakeNode implements engine.Node for tree construction tests.
type fakeNode struct {
	label    string
	children []*fakeNode
	tokIndex int
	lemma    string
	cat      string
	variants []string
}

func (n *fakeNode) Label() string { return n.label }
func (n *fakeNode) Children() []engine.Node {
	out := make([]engine.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}
func (n *fakeNode) TokenIndex() int    { return n.tokIndex }
func (n *fakeNode) Lemma() string      { return n.lemma }
func (n *fakeNode) Category() string   { return n.cat }
func (n *fakeNode) Variants() []string { return n.variants }

type fakeTree struct{ root *fakeNode }

func (t fakeTree) Root() engine.Node { return t.root }

func nonterm(label string, children ...*fakeNode) *fakeNode {
	return &fakeNode{label: label, children: children, tokIndex: -1}
}

func term(label string, idx int, lemma, cat string, variants ...string) *fakeNode {
	return &fakeNode{label: label, tokIndex: idx, lemma: lemma, cat: cat, variants: variants}
}

func sampleTree() (*Tree, token.Sequence) {
	toks := token.Sequence{
		{Kind: token.Word, Text: "hestur", Val: "hestur"},
		{Kind: token.Word, Text: "kom", Val: "koma"},
	}
	dt := fakeTree{nonterm("S",
		nonterm("Nl", term("no_et", 0, "hestur", "no", "kk", "et", "nf")),
		term("so", 1, "koma", "so"),
	)}
	return FromDeep(dt, toks), toks
}

func TestFromDeep(t *testing.T) {
	tr, _ := sampleTree()
	root := tr.Root()
	if root.Tag != "S" || root.IsTerminal() {
		t.Fatalf("root = %+v", root)
	}
	terms := tr.Terminals()
	if len(terms) != 2 {
		t.Fatalf("terminals = %d", len(terms))
	}
	if terms[0].Text != "hestur" || terms[0].Lemma != "hestur" || terms[0].Index != 0 {
		t.Errorf("first terminal = %+v", terms[0])
	}
	if terms[1].Text != "kom" || terms[1].Lemma != "koma" {
		t.Errorf("second terminal = %+v", terms[1])
	}
}

func TestFromDeepLemmaFallback(t *testing.T) {
	toks := token.Sequence{
		{Kind: token.Word, Text: "orðið", Val: "orð"},
		{Kind: token.Word, Text: "hitt"},
	}
	dt := fakeTree{nonterm("S",
		term("no", 0, "", ""), // engine supplied no lemma: token value wins
		term("no", 1, "", ""), // neither: surface text wins
	)}
	terms := FromDeep(dt, toks).Terminals()
	if terms[0].Lemma != "orð" {
		t.Errorf("lemma = %q, want token value", terms[0].Lemma)
	}
	if terms[1].Lemma != "hitt" {
		t.Errorf("lemma = %q, want surface text", terms[1].Lemma)
	}
}

func TestFromDeepNil(t *testing.T) {
	if FromDeep(nil, nil) != nil {
		t.Error("nil derivation should give nil tree")
	}
	if FromHead(nil) != nil {
		t.Error("nil head should give nil tree")
	}
}

func TestDescendantsOrder(t *testing.T) {
	tr, _ := sampleTree()
	var tags []string
	for _, n := range tr.Descendants() {
		tags = append(tags, n.Tag)
	}
	want := []string{"Nl", "no_et", "so"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("descendants = %v, want %v", tags, want)
	}
}

func TestFlat(t *testing.T) {
	tr, _ := sampleTree()
	want := "(S (Nl hestur) kom)"
	if got := tr.Flat(); got != want {
		t.Errorf("Flat = %q, want %q", got, want)
	}
	var nilTree *Tree
	if nilTree.Flat() != "" {
		t.Error("nil tree should flatten to empty string")
	}
}

func TestHeadRoundTrip(t *testing.T) {
	tr, _ := sampleTree()
	b, err := json.Marshal(tr.Head())
	if err != nil {
		t.Fatal(err)
	}
	var head Node
	if err := json.Unmarshal(b, &head); err != nil {
		t.Fatal(err)
	}
	back := FromHead(&head)
	if back.Flat() != tr.Flat() {
		t.Errorf("round trip changed the tree: %q vs %q", back.Flat(), tr.Flat())
	}
	if !reflect.DeepEqual(back.Terminals()[0].Variants, tr.Terminals()[0].Variants) {
		t.Error("round trip lost variants")
	}
}

func TestTerminalCategory(t *testing.T) {
	n := &Node{Tag: "no_et_nf", Terminal: true}
	if got := n.TerminalCategory(); got != "no" {
		t.Errorf("TerminalCategory = %q", got)
	}
	bare := &Node{Tag: "so", Terminal: true}
	if got := bare.TerminalCategory(); got != "so" {
		t.Errorf("TerminalCategory = %q", got)
	}
	nt := &Node{Tag: "Nl"}
	if nt.TerminalCategory() != "" {
		t.Error("nonterminal should have no terminal category")
	}
}

func TestIFDTag(t *testing.T) {
	n := &Node{Tag: "no_et", Cat: "no", Variants: []string{"kk", "et", "nf"}, Terminal: true}
	if got := n.IFDTag(); got != "no_kk_et_nf" {
		t.Errorf("IFDTag = %q", got)
	}
	nt := &Node{Tag: "Nl"}
	if nt.IFDTag() != "" {
		t.Error("nonterminal should have no tag")
	}
}
