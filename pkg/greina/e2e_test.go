package greina

import (
	"reflect"
	"strings"
	"testing"

	"github.com/teksti/greina/pkg/greina/lemma"
)

// These tests run the whole pipeline against the embedded default
// language.

func defaultGreina(t *testing.T) *Greina {
	t.Helper()
	g, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestParseDefaultLanguage(t *testing.T) {
	g := defaultGreina(t)
	res, err := g.Parse("Jón sá konu í húsi. María kom.", SubmitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.NumSentences != 2 || res.NumParsed != 2 {
		t.Fatalf("sentences = %d parsed = %d", res.NumSentences, res.NumParsed)
	}
	// The prepositional phrase attaches two ways; the second sentence is
	// unambiguous.
	if n, ok := res.Sentences[0].Combinations(); !ok || n != 2 {
		t.Errorf("first sentence combinations = %d, %v", n, ok)
	}
	if n, ok := res.Sentences[1].Combinations(); !ok || n != 1 {
		t.Errorf("second sentence combinations = %d, %v", n, ok)
	}
	if res.NumCombinations != 3 {
		t.Errorf("total combinations = %d", res.NumCombinations)
	}
	if res.Ambiguity <= 1.0 {
		t.Errorf("ambiguity = %g, want > 1 for an ambiguous text", res.Ambiguity)
	}

	s := res.Sentences[1]
	if got := s.TidyText(); got != "María kom." {
		t.Errorf("tidy text = %q", got)
	}
	if got := s.Lemmas(); !reflect.DeepEqual(got, []string{"María", "koma", "."}) {
		t.Errorf("lemmas = %v", got)
	}
	if got := s.Categories(); !reflect.DeepEqual(got, []string{"person", "so", "p"}) {
		t.Errorf("categories = %v", got)
	}
	if !strings.HasPrefix(s.FlatTree(), "(S0 ") {
		t.Errorf("flat tree = %q", s.FlatTree())
	}
}

func TestReducedTreeIsDeterministic(t *testing.T) {
	g := defaultGreina(t)
	first, err := g.ParseSingle("Jón sá konu í húsi.", 0)
	if err != nil || first == nil || !first.Parse() {
		t.Fatalf("parse: %v", err)
	}
	again, _ := g.ParseSingle("Jón sá konu í húsi.", 0)
	if first.FlatTree() != again.FlatTree() {
		t.Errorf("reduction not stable: %q vs %q", first.FlatTree(), again.FlatTree())
	}
}

func TestParseSingle(t *testing.T) {
	g := defaultGreina(t)
	s, err := g.ParseSingle("Jón kom. María kom.", 0)
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.Text() != "Jón kom ." {
		t.Fatalf("first sentence = %v", s)
	}
	if !s.Parse() {
		t.Error("parse failed")
	}
	empty, err := g.ParseSingle("   ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if empty != nil {
		t.Error("blank input should yield no sentence")
	}
}

func TestParseFailurePositions(t *testing.T) {
	g := defaultGreina(t)
	// "hestar sá" is not derivable: the verb phrase match stops after the
	// subject.
	s, err := g.ParseSingle("hestar sá hestar kaffi", 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Parse() {
		t.Fatal("expected parse failure")
	}
	if s.Error() == nil {
		t.Fatal("no error recorded")
	}
	if idx := s.ErrIndex(); idx < 0 || idx >= s.Len() {
		t.Errorf("error index %d out of range", idx)
	}
}

func TestForeignSentenceDefaultLanguage(t *testing.T) {
	g := defaultGreina(t)
	s, err := g.ParseSingle("This is plainly some other language.", 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Parse() {
		t.Fatal("foreign sentence should not parse")
	}
	if s.ErrIndex() != 0 {
		t.Errorf("error index = %d, want 0", s.ErrIndex())
	}
}

func TestNounPhraseCases(t *testing.T) {
	g := defaultGreina(t)
	np, err := g.ParseNounPhrase("rauður hestur", "")
	if err != nil {
		t.Fatal(err)
	}
	if np == nil || !np.Parse() {
		t.Fatal("noun phrase did not parse")
	}
	cases := []struct {
		name string
		get  func() (string, bool)
		want string
	}{
		{"nominative", np.Nominative, "rauður hestur"},
		{"accusative", np.Accusative, "rauðan hest"},
		{"dative", np.Dative, "rauðum hesti"},
		{"genitive", np.Genitive, "rauðs hests"},
		{"indefinite", np.Indefinite, "rauður hestur"},
		{"canonical", np.Canonical, "rauður hestur"},
	}
	for _, c := range cases {
		got, ok := c.get()
		if !ok || got != c.want {
			t.Errorf("%s = %q, %v; want %q", c.name, got, ok, c.want)
		}
	}
}

func TestNounPhraseNumberRestriction(t *testing.T) {
	g := defaultGreina(t)
	// Singular phrase under a plural-only root: the job runs, the parse
	// fails, and the case forms report false.
	np, err := g.ParseNounPhrase("rauður hestur", "ft")
	if err != nil {
		t.Fatal(err)
	}
	if np == nil {
		t.Fatal("expected a noun phrase object")
	}
	if np.Parse() {
		t.Error("singular phrase should not satisfy the plural root")
	}
	if _, ok := np.Accusative(); ok {
		t.Error("case form should report false without a parse")
	}

	plural, err := g.ParseNounPhrase("rauðir hestar", "ft")
	if err != nil {
		t.Fatal(err)
	}
	if plural == nil || !plural.Parse() {
		t.Fatal("plural phrase should parse under the plural root")
	}
	if got, ok := plural.Accusative(); !ok || got != "rauða hesta" {
		t.Errorf("plural accusative = %q, %v", got, ok)
	}
}

func TestNounPhraseEmptyInput(t *testing.T) {
	g := defaultGreina(t)
	np, err := g.ParseNounPhrase("", "")
	if err != nil {
		t.Fatal(err)
	}
	if np != nil {
		t.Error("empty input should yield no phrase")
	}
}

func TestLemmatizeFacade(t *testing.T) {
	g := defaultGreina(t)
	got := g.Lemmatize("Jón sá hest")
	want := []lemma.Pair{
		{Lemma: "Jón", Cat: "person"},
		{Lemma: "sjá", Cat: "so"},
		{Lemma: "hestur", Cat: "no"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lemmatize = %v, want %v", got, want)
	}
	all := g.LemmatizeAll("sá", func(p lemma.Pair) string { return p.Cat })
	if len(all) != 1 || len(all[0]) == 0 {
		t.Errorf("LemmatizeAll = %v", all)
	}
}

func TestSubmitHTML(t *testing.T) {
	g := defaultGreina(t)
	doc := `<html><head><style>p{color:red}</style></head><body>
		<p>Jón kom.</p>
		<p>María kom.</p>
		<script>ignored();</script>
	</body></html>`
	job, err := g.SubmitHTML(strings.NewReader(doc), SubmitOptions{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	var parsed int
	for s := range job.Sentences() {
		if s.Parse() {
			parsed++
		}
	}
	if job.NumSentences() != 2 || parsed != 2 {
		t.Errorf("sentences = %d parsed = %d", job.NumSentences(), parsed)
	}
}

func TestExtractText(t *testing.T) {
	got, err := ExtractText(strings.NewReader("<p>fyrsta</p><p>önnur</p>"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "fyrsta") || !strings.Contains(got, "\n") {
		t.Errorf("extracted = %q", got)
	}
}

func TestDumpSingleRoundTrip(t *testing.T) {
	g := defaultGreina(t)
	s, err := g.ParseSingle("María kom.", 0)
	if err != nil || !s.Parse() {
		t.Fatalf("parse: %v", err)
	}
	data, err := g.DumpSingle(s)
	if err != nil {
		t.Fatal(err)
	}
	back, err := g.LoadSingle(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.TidyText() != s.TidyText() {
		t.Errorf("tidy text = %q, want %q", back.TidyText(), s.TidyText())
	}
	if !reflect.DeepEqual(back.Tags(), s.Tags()) {
		t.Errorf("tags = %v, want %v", back.Tags(), s.Tags())
	}
}

func TestSplitParagraphs(t *testing.T) {
	g := defaultGreina(t)
	job, err := g.Submit("Jón kom.\n\nMaría kom.", SubmitOptions{Parse: true, SplitParagraphs: true})
	if err != nil {
		t.Fatal(err)
	}
	var paras int
	for p := range job.Paragraphs() {
		paras++
		for range p.Sentences() {
		}
	}
	if paras != 2 {
		t.Errorf("paragraphs = %d, want 2", paras)
	}
	if job.NumSentences() != 2 {
		t.Errorf("sentences = %d", job.NumSentences())
	}
}
