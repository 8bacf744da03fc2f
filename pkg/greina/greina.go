// Package greina turns raw text into parsed sentences: it segments a
// token stream into paragraphs and sentences, drives each sentence
// through shared grammar and reduction engines, tracks per-job
// statistics with a monotonic progress contract, and caches the derived
// views of every parse result.
//
// Typical usage:
//
//	g, err := greina.New(greina.Options{})
//	job, err := g.Submit(myText, greina.SubmitOptions{})
//	for sent := range job.Sentences() {
//		if sent.Parse() {
//			fmt.Println(sent.FlatTree())
//		} else {
//			// the error token index is at sent.ErrIndex()
//		}
//	}
//	// After processing, job.NumSentences(), job.NumParsed(),
//	// job.Ambiguity() and job.ParseTime() summarize the run.
package greina

import (
	"crypto/rand"
	"iter"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/teksti/greina/pkg/greina/config"
	"github.com/teksti/greina/pkg/greina/engine"
	"github.com/teksti/greina/pkg/greina/engine/cfg"
	"github.com/teksti/greina/pkg/greina/lemma"
	"github.com/teksti/greina/pkg/greina/token"
)

// Options configures a Greina instance.
type Options struct {
	// Language supplies the lexicon, grammar and abbreviations. Nil
	// selects the embedded default language.
	Language *config.Language
	// Registry supplies the shared engine pair. Nil selects a fresh
	// registry building the configured CFG engine.
	Registry *engine.Registry
	// ParseForeignSentences disables the foreign-sentence gate, so that
	// parsing is attempted even for foreign-looking sentences.
	ParseForeignSentences bool
	// MinNativeRatio overrides the foreign classification threshold;
	// 0 selects the default.
	MinNativeRatio float64
}

// Greina is the entry point of the pipeline: it wires a tokenizer and
// the shared engines into parsing jobs.
type Greina struct {
	registry     *engine.Registry
	lang         *config.Language
	tok          *token.Tokenizer
	parseForeign bool
	nativeRatio  float64

	idMu      sync.Mutex
	idEntropy *ulid.MonotonicEntropy
}

// New creates a Greina instance.
func New(opts Options) (*Greina, error) {
	lang := opts.Language
	if lang == nil {
		var err error
		lang, err = config.Default()
		if err != nil {
			return nil, err
		}
	}
	registry := opts.Registry
	if registry == nil {
		registry = engine.NewRegistry(cfg.Factory(lang))
	}
	ratio := opts.MinNativeRatio
	if ratio <= 0 {
		ratio = token.DefaultNativeRatio
	}
	return &Greina{
		registry:     registry,
		lang:         lang,
		tok:          token.NewTokenizer(lang),
		parseForeign: opts.ParseForeignSentences,
		nativeRatio:  ratio,
		idEntropy:    ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// SubmitOptions configures one parsing job.
type SubmitOptions struct {
	// Parse makes every sentence parse eagerly on creation.
	Parse bool
	// SplitParagraphs treats newlines in the input as paragraph
	// boundaries.
	SplitParagraphs bool
	// Progress, when non-nil, switches the job into pre-counting mode
	// and receives monotonically increasing progress fractions.
	Progress ProgressFunc
	// MaxSentTokens caps the sentence length attempted by the parser:
	// 0 selects DefaultMaxSentTokens, NoSentenceLimit disables the cap.
	MaxSentTokens int
}

// Tokenize runs the configured tokenizer over text.
func (g *Greina) Tokenize(text string) iter.Seq[token.Token] {
	return g.tok.Tokenize(text)
}

// Submit tokenizes a text and returns the job through which its
// paragraphs and sentences are iterated and parsed.
func (g *Greina) Submit(text string, opts SubmitOptions) (*Job, error) {
	if opts.SplitParagraphs {
		text = token.MarkParagraphs(text)
	}
	return g.newJob(g.Tokenize(text), opts.Parse, "", opts.Progress, opts.MaxSentTokens)
}

// newJob acquires the shared engines and builds a job around a token
// stream. Engine construction failures propagate to the caller.
func (g *Greina) newJob(tokens iter.Seq[token.Token], parseNow bool, root string, progress ProgressFunc, maxSentTokens int) (*Job, error) {
	parser, reducer, err := g.registry.Acquire()
	if err != nil {
		return nil, err
	}
	return &Job{
		g:             g,
		parser:        parser,
		reducer:       reducer,
		tokens:        tokens,
		parseNow:      parseNow,
		root:          root,
		progress:      progress,
		maxSentTokens: resolveMaxTokens(maxSentTokens),
	}, nil
}

// Result summarizes a completed parse of a whole text.
type Result struct {
	Sentences       []*Sentence
	NumSentences    int
	NumParsed       int
	NumTokens       int
	NumCombinations int64
	Ambiguity       float64
	ParseTime       time.Duration
	ReduceTime      time.Duration
}

// Parse tokenizes and parses text synchronously, returning all
// sentences and the accumulated statistics.
func (g *Greina) Parse(text string, opts SubmitOptions) (*Result, error) {
	opts.Parse = true
	job, err := g.Submit(text, opts)
	if err != nil {
		return nil, err
	}
	var sentences []*Sentence
	for s := range job.Sentences() {
		sentences = append(sentences, s)
	}
	return &Result{
		Sentences:       sentences,
		NumSentences:    job.NumSentences(),
		NumParsed:       job.NumParsed(),
		NumTokens:       job.NumTokens(),
		NumCombinations: job.NumCombinations(),
		Ambiguity:       job.Ambiguity(),
		ParseTime:       job.ParseTime(),
		ReduceTime:      job.ReduceTime(),
	}, nil
}

// ParseSingle parses the first sentence of a text, or returns nil when
// the text contains none.
func (g *Greina) ParseSingle(text string, maxSentTokens int) (*Sentence, error) {
	job, err := g.newJob(g.Tokenize(text), true, "", nil, maxSentTokens)
	if err != nil {
		return nil, err
	}
	return firstSentence(job), nil
}

// ParseTokens parses the first sentence of an already tokenized stream,
// or returns nil when the stream contains none.
func (g *Greina) ParseTokens(tokens iter.Seq[token.Token], maxSentTokens int) (*Sentence, error) {
	job, err := g.newJob(tokens, true, "", nil, maxSentTokens)
	if err != nil {
		return nil, err
	}
	return firstSentence(job), nil
}

// ParseNounPhrase parses a text as a noun phrase. forceNumber may be
// "" (no restriction), "et"/"singular" or "ft"/"plural"; any other
// value is a configuration error raised before tokenization. Returns
// nil when no phrase could be extracted.
func (g *Greina) ParseNounPhrase(text string, forceNumber string) (*NounPhrase, error) {
	root, err := nounPhraseRoot(forceNumber)
	if err != nil {
		return nil, err
	}
	job, err := g.newJob(g.Tokenize(text), true, root, nil, 0)
	if err != nil {
		return nil, err
	}
	s := firstSentence(job)
	if s == nil {
		return nil, nil
	}
	return &NounPhrase{Sentence: s, inf: &g.lang.Lexicon}, nil
}

// Lemmatize returns one (lemma, category) pair per text token of the
// input, without parsing. Punctuation, numbers, dates and similar
// tokens are skipped.
func (g *Greina) Lemmatize(text string) []lemma.Pair {
	return lemma.Lemmatize(g.collect(text), &g.lang.Lexicon)
}

// LemmatizeAll returns every possible (lemma, category) pair per text
// token, each token's readings sorted by key when key is non-nil.
func (g *Greina) LemmatizeAll(text string, key lemma.SortKey) [][]lemma.Pair {
	return lemma.LemmatizeAll(g.collect(text), &g.lang.Lexicon, key)
}

func (g *Greina) collect(text string) token.Sequence {
	var seq token.Sequence
	for t := range g.Tokenize(text) {
		seq = append(seq, t)
	}
	return seq
}

// DumpSingle serializes a sentence to its JSON record.
func (g *Greina) DumpSingle(s *Sentence) (string, error) {
	return s.DumpJSON()
}

// LoadSingle reconstructs a detached sentence from its JSON record.
func (g *Greina) LoadSingle(data string) (*Sentence, error) {
	return LoadSentenceJSON(data)
}

// Cleanup releases the shared engines; the next job reconstructs them
// from scratch. Safe to call at any time, including repeatedly.
func (g *Greina) Cleanup() {
	g.registry.Release()
}

// newID generates a monotonic ULID for persisted records.
func (g *Greina) newID() string {
	g.idMu.Lock()
	defer g.idMu.Unlock()
	return ulid.MustNew(ulid.Now(), g.idEntropy).String()
}

func firstSentence(j *Job) *Sentence {
	for s := range j.Sentences() {
		return s
	}
	return nil
}
