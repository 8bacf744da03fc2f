package greina

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/teksti/greina/pkg/greina/engine"
	"github.com/teksti/greina/pkg/greina/internalerr"
	"github.com/teksti/greina/pkg/greina/lemma"
	"github.com/teksti/greina/pkg/greina/token"
	"github.com/teksti/greina/pkg/greina/tree"
)

// Terminal describes one terminal node of a parsed sentence: the matched
// token text, the lemma, the terminal category, the grammatical variant
// set, and the token position.
type Terminal struct {
	Text     string   `json:"text"`
	Lemma    string   `json:"lemma"`
	Category string   `json:"category"`
	Variants []string `json:"variants,omitempty"`
	Index    int      `json:"index"`
}

// Sentence holds one segmented sentence. Parsing happens on demand (or
// eagerly, per job configuration) and is idempotent: the first call to
// Parse fixes the outcome, and every derived view is computed at most
// once and cached.
type Sentence struct {
	job  *Job
	toks token.Sequence

	// detached marks a sentence reconstructed from persisted data; it
	// has no job, no error state, and cannot be re-parsed.
	detached bool

	parsed   bool
	deep     engine.Tree
	simple   *tree.Tree
	num      int64
	score    int
	perr     *engine.ParseError
	errIndex int

	text          string
	textDone      bool
	terminals     []Terminal
	terminalsDone bool
}

func newSentence(j *Job, toks token.Sequence) *Sentence {
	s := &Sentence{job: j, toks: toks, errIndex: -1}
	if j.parseNow {
		s.Parse()
	}
	return s
}

// Len returns the number of tokens in the sentence.
func (s *Sentence) Len() int { return len(s.toks) }

// Tokens returns the sentence tokens.
func (s *Sentence) Tokens() token.Sequence { return s.toks }

// Parse parses the sentence through the owning job, reporting whether a
// valid derivation exists. Once a verdict is reached the call is a
// no-op returning the same verdict; the engines are not invoked again.
func (s *Sentence) Parse() bool {
	if s.parsed {
		if s.detached {
			return s.simple != nil
		}
		return s.num > 0
	}
	dt, num, score, perr := s.job.parse(s.toks)
	if perr != nil {
		s.perr = perr
		idx := perr.TokenIndex
		if idx < 0 {
			idx = len(s.toks) - 1
		}
		s.errIndex = idx
	}
	s.deep = dt
	if dt != nil {
		s.simple = tree.FromDeep(dt, s.toks)
	}
	s.num = num
	s.score = score
	s.parsed = true
	return num > 0
}

// Error returns the parse error recorded for this sentence, or nil.
func (s *Sentence) Error() *engine.ParseError { return s.perr }

// ErrIndex returns the token index of the parse error, or -1 when no
// error was recorded.
func (s *Sentence) ErrIndex() int { return s.errIndex }

// Combinations returns the parse forest combination count. It reports
// false until the sentence has been parsed, and for detached sentences,
// where the count was not persisted.
func (s *Sentence) Combinations() (int64, bool) {
	if !s.parsed || s.detached {
		return 0, false
	}
	return s.num, true
}

// Score returns the score of the best parse tree. It reports false
// until the sentence has been parsed, and for detached sentences.
func (s *Sentence) Score() (int, bool) {
	if !s.parsed || s.detached {
		return 0, false
	}
	return s.score, true
}

// Tree returns the simplified parse tree, or nil before a successful
// parse.
func (s *Sentence) Tree() *tree.Tree { return s.simple }

// DeepTree returns the derivation as constructed by the grammar engine,
// or nil. Detached sentences have no deep tree.
func (s *Sentence) DeepTree() engine.Tree { return s.deep }

// FlatTree returns the one-line bracketed form of the simplified tree,
// or "" before a successful parse.
func (s *Sentence) FlatTree() string { return s.simple.Flat() }

// IsForeign classifies the sentence tokens as foreign-language using
// the same ratio test as the job's parse-time filter. minRatio <= 0
// selects the default threshold.
func (s *Sentence) IsForeign(minRatio float64) bool {
	return token.AreForeign(s.toks, minRatio)
}

// Text returns the sentence text with single spaces between tokens.
// Available before parsing.
func (s *Sentence) Text() string {
	if !s.textDone {
		s.text = s.toks.Text()
		s.textDone = true
	}
	return s.text
}

// String implements fmt.Stringer.
func (s *Sentence) String() string { return s.Text() }

// TidyText returns a correctly spaced text representation. After a
// successful parse it is rebuilt from the terminal texts; otherwise it
// falls back to Text.
func (s *Sentence) TidyText() string {
	terminals := s.Terminals()
	if terminals == nil {
		return token.CorrectSpacing(s.Text())
	}
	parts := make([]string, len(terminals))
	for i, t := range terminals {
		parts[i] = t.Text
	}
	return token.CorrectSpacing(strings.Join(parts, " "))
}

// Terminals returns one Terminal per terminal node of the simplified
// tree, in left-to-right order, or nil before a successful parse.
func (s *Sentence) Terminals() []Terminal {
	if s.simple == nil {
		return nil
	}
	if !s.terminalsDone {
		nodes := s.simple.Terminals()
		s.terminals = make([]Terminal, len(nodes))
		for i, n := range nodes {
			s.terminals[i] = Terminal{
				Text:     n.Text,
				Lemma:    n.Lemma,
				Category: n.TerminalCategory(),
				Variants: n.Variants,
				Index:    n.Index,
			}
		}
		s.terminalsDone = true
	}
	return s.terminals
}

// TerminalNodes returns the terminal nodes of the simplified tree, or
// an empty slice before a successful parse.
func (s *Sentence) TerminalNodes() []*tree.Node {
	if s.simple == nil {
		return nil
	}
	return s.simple.Terminals()
}

// Lemmas returns the terminal lemmas, or nil before a successful parse.
func (s *Sentence) Lemmas() []string {
	t := s.Terminals()
	if t == nil {
		return nil
	}
	out := make([]string, len(t))
	for i, term := range t {
		out[i] = term.Lemma
	}
	return out
}

// Categories returns the lexicon category of each terminal, or nil
// before a successful parse.
func (s *Sentence) Categories() []string {
	if s.simple == nil {
		return nil
	}
	nodes := s.simple.Terminals()
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Cat
	}
	return out
}

// LemmasAndCats returns (lemma, lemma category) pairs suitable for topic
// indexing, or nil before a successful parse.
func (s *Sentence) LemmasAndCats() []lemma.Pair {
	if s.simple == nil {
		return nil
	}
	nodes := s.simple.Terminals()
	out := make([]lemma.Pair, len(nodes))
	for i, n := range nodes {
		out[i] = lemma.Pair{Lemma: n.Lemma, Cat: n.LemmaCategory()}
	}
	return out
}

// Tags returns the frequency-dictionary style tag of each terminal, or
// nil before a successful parse.
func (s *Sentence) Tags() []string {
	if s.simple == nil {
		return nil
	}
	nodes := s.simple.Terminals()
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.IFDTag()
	}
	return out
}

// Record is the persisted form of a sentence: the token triples and the
// simplified tree head (null when the sentence was never parsed
// successfully).
type Record struct {
	Tokens []token.Token `json:"tokens"`
	Tree   *tree.Node    `json:"tree"`
}

// Dump produces the structural record for serialization.
func (s *Sentence) Dump() Record {
	toks := make(token.Sequence, len(s.toks))
	copy(toks, s.toks)
	return Record{Tokens: toks, Tree: s.simple.Head()}
}

// DumpJSON serializes the sentence record as JSON.
func (s *Sentence) DumpJSON() (string, error) {
	b, err := json.Marshal(s.Dump())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// LoadSentence reconstructs a detached sentence from a persisted record:
// it has no owning job, no error state, and - when a tree was persisted -
// a simplified tree rebuilt without re-parsing.
func LoadSentence(rec Record) (*Sentence, error) {
	if len(rec.Tokens) == 0 {
		return nil, fmt.Errorf("%w: sentence record has no tokens", internalerr.ErrInvalidInput)
	}
	return &Sentence{
		toks:     rec.Tokens,
		detached: true,
		parsed:   true,
		simple:   tree.FromHead(rec.Tree),
		errIndex: -1,
	}, nil
}

// LoadSentenceJSON reconstructs a detached sentence from its JSON form.
func LoadSentenceJSON(data string) (*Sentence, error) {
	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return LoadSentence(rec)
}
