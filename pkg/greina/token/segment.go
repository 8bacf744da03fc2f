package token

import "iter"

// SentenceTokens is one segmented sentence: the index of its first token
// within the stream and the tokens themselves (paragraph markers excluded).
type SentenceTokens struct {
	Index  int
	Tokens Sequence
}

// sentenceEnders terminate a sentence when seen as punctuation.
var sentenceEnders = map[string]bool{
	".":   true,
	"!":   true,
	"?":   true,
	"…":   true,
	"...": true,
}

// Segment groups a lazy token stream into paragraphs of sentences.
// Paragraph boundaries come from ParagraphBegin/ParagraphEnd tokens; a
// stream without markers forms a single paragraph. Sentences end at
// sentence-final punctuation. Empty sentences and paragraphs are dropped.
//
// The returned sequence is lazy across paragraphs; each paragraph's
// sentences are materialized when the paragraph is produced. It is
// single-pass unless the underlying token stream can be restarted.
func Segment(tokens iter.Seq[Token]) iter.Seq[[]SentenceTokens] {
	return func(yield func([]SentenceTokens) bool) {
		var para []SentenceTokens
		var sent Sequence
		index := 0
		sentStart := 0

		flushSentence := func() {
			if len(sent) > 0 {
				para = append(para, SentenceTokens{Index: sentStart, Tokens: sent})
				sent = nil
			}
		}
		flushParagraph := func() bool {
			flushSentence()
			if len(para) == 0 {
				return true
			}
			p := para
			para = nil
			return yield(p)
		}

		for tok := range tokens {
			switch tok.Kind {
			case ParagraphBegin, ParagraphEnd:
				if !flushParagraph() {
					return
				}
			case Punctuation:
				if len(sent) == 0 {
					// Stray punctuation between sentences is dropped.
					index++
					continue
				}
				sent = append(sent, tok)
				if sentenceEnders[tok.Text] {
					flushSentence()
				}
			default:
				if len(sent) == 0 {
					sentStart = index
				}
				sent = append(sent, tok)
			}
			index++
		}
		flushParagraph()
	}
}
