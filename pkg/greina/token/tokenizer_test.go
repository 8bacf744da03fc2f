package token

import (
	"testing"

	"github.com/teksti/greina/pkg/greina/config"
)

func testLanguage() *config.Language {
	return &config.Language{
		Lexicon: config.Lexicon{Entries: map[string][]config.Entry{
			"hestur": {{Lemma: "hestur", Cat: "no", Variants: []string{"kk", "et", "nf"}}},
			"kom":    {{Lemma: "koma", Cat: "so"}},
			"jón":    {{Lemma: "Jón", Cat: "person"}},
		}},
		Abbreviations: []string{"t.d.", "hr."},
	}
}

func collect(tok *Tokenizer, text string) []Token {
	var out []Token
	for t := range tok.Tokenize(text) {
		out = append(out, t)
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tok := NewTokenizer(testLanguage())
	cases := []struct {
		text string
		kind Kind
		val  string
	}{
		{"hestur", Word, "hestur"},
		{"Hestur", Word, "hestur"}, // sentence-initial capitalization
		{"Jón", Person, "Jón"},
		{"Reykjavík", Entity, "Reykjavík"}, // capitalized, not in lexicon
		{"óþekkt", Word, ""},               // lowercase unknown word
		{"42", Number, ""},
		{"3,14", Number, ""},
		{"17.6.2026", Date, ""},
		{"jon@example.com", Email, ""},
		{"https://example.com/x", URL, ""},
		{"www.example.com", URL, ""},
	}
	for _, c := range cases {
		toks := collect(tok, c.text)
		if len(toks) != 1 {
			t.Fatalf("%q: expected 1 token, got %d (%v)", c.text, len(toks), toks)
		}
		if toks[0].Kind != c.kind {
			t.Errorf("%q: kind = %v, want %v", c.text, toks[0].Kind, c.kind)
		}
		if toks[0].Val != c.val {
			t.Errorf("%q: val = %q, want %q", c.text, toks[0].Val, c.val)
		}
	}
}

func TestTokenizePeelsPunctuation(t *testing.T) {
	tok := NewTokenizer(testLanguage())
	toks := collect(tok, "(hestur).")
	want := []Token{
		{Kind: Punctuation, Text: "("},
		{Kind: Word, Text: "hestur", Val: "hestur"},
		{Kind: Punctuation, Text: ")"},
		{Kind: Punctuation, Text: "."},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, toks[i], want[i])
		}
	}
}

func TestTokenizeGroupsEllipsis(t *testing.T) {
	tok := NewTokenizer(testLanguage())
	toks := collect(tok, "kom...")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(toks), toks)
	}
	if toks[1].Kind != Punctuation || toks[1].Text != "..." {
		t.Errorf("trailing periods should collapse into one token, got %+v", toks[1])
	}
}

func TestTokenizeAbbreviation(t *testing.T) {
	tok := NewTokenizer(testLanguage())
	toks := collect(tok, "t.d. hestur")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(toks), toks)
	}
	// The abbreviation stays one word token; its period does not split off.
	if toks[0].Kind != Word || toks[0].Text != "t.d." {
		t.Errorf("abbreviation token = %+v", toks[0])
	}
}

func TestTokenizeParagraphMarkers(t *testing.T) {
	tok := NewTokenizer(testLanguage())
	toks := collect(tok, "[[ hestur ]]")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(toks), toks)
	}
	if toks[0].Kind != ParagraphBegin || toks[2].Kind != ParagraphEnd {
		t.Errorf("expected paragraph markers, got %v and %v", toks[0].Kind, toks[2].Kind)
	}
}

func TestMarkParagraphs(t *testing.T) {
	if got := MarkParagraphs("no newline here"); got != "no newline here" {
		t.Errorf("single-line text should pass through, got %q", got)
	}
	got := MarkParagraphs("first line\n\nsecond line\n")
	want := "[[ first line ]] [[ second line ]]"
	if got != want {
		t.Errorf("MarkParagraphs = %q, want %q", got, want)
	}
}

func TestKindString(t *testing.T) {
	if Word.String() != "word" {
		t.Errorf("Word.String() = %q", Word.String())
	}
	if Kind(99).String() != "invalid" {
		t.Errorf("out-of-range kind should be invalid, got %q", Kind(99).String())
	}
}
