package token

import (
	"iter"
	"regexp"
	"strings"
	"unicode"

	"github.com/teksti/greina/pkg/greina/config"
)

// Paragraph boundary markers inserted by MarkParagraphs and recognized
// by the tokenizer.
const (
	paragraphBeginMark = "[["
	paragraphEndMark   = "]]"
)

var (
	reDate  = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{2,4}$`)
	reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Tokenizer splits text into tokens, consulting the lexicon to classify
// words and attach lemma values.
type Tokenizer struct {
	lex     *config.Lexicon
	abbrevs map[string]struct{}
}

// NewTokenizer creates a tokenizer for the given language resources.
// lang may be nil, in which case all words are treated as unknown.
func NewTokenizer(lang *config.Language) *Tokenizer {
	t := &Tokenizer{abbrevs: make(map[string]struct{})}
	if lang != nil {
		t.lex = &lang.Lexicon
		for _, a := range lang.Abbreviations {
			t.abbrevs[strings.ToLower(a)] = struct{}{}
		}
	}
	return t
}

// MarkParagraphs inserts paragraph boundary markers at newlines, so that
// the tokenizer emits ParagraphBegin/ParagraphEnd tokens. Text without
// newlines is returned unchanged.
func MarkParagraphs(text string) string {
	if !strings.ContainsRune(text, '\n') {
		return text
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, paragraphBeginMark+" "+line+" "+paragraphEndMark)
	}
	return strings.Join(lines, " ")
}

// Tokenize splits text into a lazy stream of tokens.
func (t *Tokenizer) Tokenize(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		fields := strings.Fields(text)
		for _, chunk := range fields {
			for _, tok := range t.splitChunk(chunk) {
				if !yield(tok) {
					return
				}
			}
		}
	}
}

// splitChunk turns one whitespace-delimited chunk into tokens, peeling
// leading and trailing punctuation off the core token.
func (t *Tokenizer) splitChunk(chunk string) []Token {
	switch chunk {
	case paragraphBeginMark:
		return []Token{{Kind: ParagraphBegin, Text: chunk}}
	case paragraphEndMark:
		return []Token{{Kind: ParagraphEnd, Text: chunk}}
	}
	// Whole-chunk matches that may legitimately contain punctuation.
	if _, ok := t.abbrevs[strings.ToLower(chunk)]; ok {
		return []Token{{Kind: Word, Text: chunk, Val: strings.TrimSuffix(strings.ToLower(chunk), ".")}}
	}
	if reEmail.MatchString(chunk) {
		return []Token{{Kind: Email, Text: chunk}}
	}
	if strings.HasPrefix(chunk, "http://") || strings.HasPrefix(chunk, "https://") || strings.HasPrefix(chunk, "www.") {
		return []Token{{Kind: URL, Text: chunk}}
	}

	runes := []rune(chunk)
	start, end := 0, len(runes)
	for start < end && isPunctRune(runes[start]) {
		start++
	}
	for end > start && isPunctRune(runes[end-1]) {
		end--
	}

	var out []Token
	out = append(out, punctTokens(runes[:start])...)
	if start < end {
		out = append(out, t.classifyCore(string(runes[start:end])))
	}
	out = append(out, punctTokens(runes[end:])...)
	return out
}

// classifyCore classifies a chunk stripped of surrounding punctuation.
func (t *Tokenizer) classifyCore(core string) Token {
	if isNumeric(core) {
		if reDate.MatchString(core) {
			return Token{Kind: Date, Text: core}
		}
		return Token{Kind: Number, Text: core}
	}
	entries := t.lex.Lookup(core)
	for _, e := range entries {
		if e.Cat == "person" {
			return Token{Kind: Person, Text: core, Val: e.Lemma}
		}
	}
	if len(entries) > 0 {
		return Token{Kind: Word, Text: core, Val: entries[0].Lemma}
	}
	first := []rune(core)[0]
	if unicode.IsUpper(first) {
		return Token{Kind: Entity, Text: core, Val: core}
	}
	return Token{Kind: Word, Text: core}
}

// punctTokens converts a run of punctuation runes into tokens, collapsing
// consecutive periods into a single ellipsis-like token.
func punctTokens(runes []rune) []Token {
	var out []Token
	for i := 0; i < len(runes); {
		if runes[i] == '.' {
			j := i
			for j < len(runes) && runes[j] == '.' {
				j++
			}
			out = append(out, Token{Kind: Punctuation, Text: string(runes[i:j])})
			i = j
			continue
		}
		out = append(out, Token{Kind: Punctuation, Text: string(runes[i])})
		i++
	}
	return out
}

func isPunctRune(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// isNumeric reports whether s consists of digits with optional internal
// separators (decimal comma/point, date periods, slashes, colons).
func isNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',' || r == '/' || r == ':':
		default:
			return false
		}
	}
	return digits > 0
}
