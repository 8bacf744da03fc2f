package greina

import (
	"iter"
	"math"
	"time"

	"github.com/teksti/greina/pkg/greina/engine"
	"github.com/teksti/greina/pkg/greina/internalerr"
	"github.com/teksti/greina/pkg/greina/token"
)

// ProgressFunc receives parsing progress as a fraction in (0, 1]. Values
// are strictly increasing; for a job that runs to completion the final
// call passes exactly 1.0.
type ProgressFunc func(progress float64)

// DefaultMaxSentTokens is the default ceiling on sentence length, in
// tokens, beyond which parsing is not attempted.
const DefaultMaxSentTokens = 90

// NoSentenceLimit disables the sentence length ceiling.
const NoSentenceLimit = -1

// Job drives the parsing of one token stream: it segments the stream
// into paragraphs and sentences, parses sentences through the shared
// engines, and accumulates corpus statistics. A Job is single-pass and
// not safe for concurrent use; concurrency happens across jobs, which
// share the engine pair.
type Job struct {
	g       *Greina
	parser  engine.Parser
	reducer engine.Reducer
	tokens  iter.Seq[token.Token]

	parseNow      bool
	root          string
	progress      ProgressFunc
	maxSentTokens int // resolved: 0 means unlimited

	// cntSent is the pre-counted sentence total plus one (the extra
	// step reports tokenization itself); only set in progress mode.
	cntSent int

	numSent         int
	numParsed       int
	numTokens       int
	numCombinations int64
	totalAmbig      float64
	totalTokens     int
	parseTime       time.Duration
	reduceTime      time.Duration
}

// resolveMaxTokens maps the public option encoding (0 = default,
// negative = unlimited) to the internal one (0 = unlimited).
func resolveMaxTokens(n int) int {
	switch {
	case n == 0:
		return DefaultMaxSentTokens
	case n < 0:
		return 0
	}
	return n
}

// Paragraph is a lazy grouping of the sentences belonging to one
// paragraph of the token stream.
type Paragraph struct {
	job   *Job
	sents []token.SentenceTokens
}

// Sentences yields the paragraph's sentences in source order.
func (p *Paragraph) Sentences() iter.Seq[*Sentence] {
	return func(yield func(*Sentence) bool) {
		for _, st := range p.sents {
			if !yield(newSentence(p.job, st.Tokens)) {
				return
			}
		}
	}
}

// Paragraphs yields the paragraphs of the token stream. Without a
// progress callback segmentation streams lazily; with one, the whole
// segmentation is materialized first so that the total sentence count is
// known, and the callback immediately receives 1/(total+1) to signal
// that tokenization is complete.
func (j *Job) Paragraphs() iter.Seq[*Paragraph] {
	if j.progress != nil {
		return j.precountedParagraphs()
	}
	return j.streamingParagraphs()
}

func (j *Job) streamingParagraphs() iter.Seq[*Paragraph] {
	return func(yield func(*Paragraph) bool) {
		for group := range token.Segment(j.tokens) {
			if !yield(&Paragraph{job: j, sents: group}) {
				return
			}
		}
	}
}

func (j *Job) precountedParagraphs() iter.Seq[*Paragraph] {
	var groups [][]token.SentenceTokens
	total := 0
	for group := range token.Segment(j.tokens) {
		groups = append(groups, group)
		total += len(group)
	}
	j.cntSent = total + 1
	j.progress(1 / float64(j.cntSent))
	return func(yield func(*Paragraph) bool) {
		for _, group := range groups {
			if !yield(&Paragraph{job: j, sents: group}) {
				return
			}
		}
	}
}

// Sentences flattens Paragraphs into a single lazy sentence sequence.
func (j *Job) Sentences() iter.Seq[*Sentence] {
	return func(yield func(*Sentence) bool) {
		for p := range j.Paragraphs() {
			for s := range p.Sentences() {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// parse runs one sentence through the engines: length and foreign gates
// first, then the grammar engine, then - for ambiguous forests - the
// reducer. Statistics and the progress callback fire regardless of the
// outcome.
func (j *Job) parse(toks token.Sequence) (dt engine.Tree, num int64, score int, perr *engine.ParseError) {
	start := time.Now()
	afterParse := start
	defer func() {
		now := time.Now()
		j.addSentence(len(toks), num, now.Sub(start), now.Sub(afterParse))
	}()

	if j.maxSentTokens > 0 && len(toks) > j.maxSentTokens {
		perr = engine.NewParseError(internalerr.ErrTooLong, j.maxSentTokens,
			"sentence is longer than %d tokens", j.maxSentTokens)
		return
	}
	if !j.g.parseForeign && token.AreForeign(toks, j.g.nativeRatio) {
		perr = engine.NewParseError(internalerr.ErrForeign, 0,
			"sentence is probably not in the target language")
		return
	}

	forest, err := j.parser.Parse(toks, j.root)
	afterParse = time.Now()
	if err != nil {
		perr = engine.AsParseError(err)
		return
	}
	if forest == nil {
		// The engine found no derivation but reported no error.
		return
	}
	num = forest.Combinations()
	switch {
	case num > 1:
		t, s, err := j.reducer.Reduce(forest)
		if err != nil {
			num = 0
			perr = engine.AsParseError(err)
			return
		}
		dt, score = t, s
	case num == 1:
		// The unique derivation is its own reduction; the score keeps
		// its default.
		dt = forest.Unique()
	}
	return
}

// addSentence folds one processed sentence into the job statistics and
// fires the progress callback.
func (j *Job) addSentence(slen int, num int64, parseTime, reduceTime time.Duration) {
	j.numSent++
	j.numTokens += slen
	if num > 0 {
		j.numParsed++
		j.numCombinations += num
		ambig := math.Pow(float64(num), 1/float64(slen))
		j.totalAmbig += ambig * float64(slen)
		j.totalTokens += slen
	}
	j.parseTime += parseTime
	j.reduceTime += reduceTime
	if j.progress != nil && j.cntSent > 0 {
		// One extra initial step was reported after tokenization, hence
		// the +1 offset against the pre-counted total.
		j.progress(float64(j.numSent+1) / float64(j.cntSent))
	}
}

// NumSentences returns the number of sentences processed so far.
func (j *Job) NumSentences() int { return j.numSent }

// NumParsed returns the number of sentences parsed successfully.
func (j *Job) NumParsed() int { return j.numParsed }

// NumTokens returns the total token count of processed sentences.
func (j *Job) NumTokens() int { return j.numTokens }

// NumCombinations returns the summed parse forest combination counts of
// successfully parsed sentences.
func (j *Job) NumCombinations() int64 { return j.numCombinations }

// Ambiguity returns the length-weighted average ambiguity factor of the
// parsed sentences, or exactly 1.0 when nothing parsed.
func (j *Job) Ambiguity() float64 {
	if j.totalTokens > 0 {
		return j.totalAmbig / float64(j.totalTokens)
	}
	return 1.0
}

// ParseTime returns the total wall-clock time spent in the engines,
// including reduction.
func (j *Job) ParseTime() time.Duration { return j.parseTime }

// ReduceTime returns the share of ParseTime spent on forest reduction.
func (j *Job) ReduceTime() time.Duration { return j.reduceTime }
