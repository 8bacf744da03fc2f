// Package token implements the lexical layer of the pipeline: the token
// model, the tokenizer, paragraph/sentence segmentation over a lazy token
// stream, spacing correction and foreign-language classification.
package token

import "strings"

// Kind classifies a token.
type Kind int

const (
	Unknown Kind = iota
	Word
	Punctuation
	Number
	Date
	Email
	URL
	Person
	Entity
	ParagraphBegin
	ParagraphEnd
)

var kindNames = map[Kind]string{
	Unknown:        "unknown",
	Word:           "word",
	Punctuation:    "punctuation",
	Number:         "number",
	Date:           "date",
	Email:          "email",
	URL:            "url",
	Person:         "person",
	Entity:         "entity",
	ParagraphBegin: "p_begin",
	ParagraphEnd:   "p_end",
}

// String returns a readable name for the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Token is an atomic lexical unit. Val carries an optional semantic value;
// for recognized words it is the lemma of the primary lexicon reading.
// Tokens are immutable once created.
type Token struct {
	Kind Kind   `json:"k"`
	Text string `json:"t"`
	Val  string `json:"v,omitempty"`
}

// Sequence is an ordered, non-empty list of tokens making up one sentence.
// Empty sequences are filtered out during segmentation, so a zero-length
// Sequence reaching the parser is a caller error.
type Sequence []Token

// Text joins the surface forms of the tokens with single spaces.
func (s Sequence) Text() string {
	var parts []string
	for _, t := range s {
		if t.Text != "" {
			parts = append(parts, t.Text)
		}
	}
	return strings.Join(parts, " ")
}
