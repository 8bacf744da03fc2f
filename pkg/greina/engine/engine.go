// Package engine defines the contracts between the parsing pipeline and
// the grammar/reduction engines, and the registry that shares one engine
// pair across jobs.
package engine

import (
	"errors"
	"fmt"

	"github.com/teksti/greina/pkg/greina/internalerr"
	"github.com/teksti/greina/pkg/greina/token"
)

// Parser builds a parse forest for a token sequence under a grammar root.
// Implementations must be safe for concurrent use.
type Parser interface {
	// Parse returns the forest of all valid derivations, or a *ParseError
	// when the sequence has none. An empty root selects the grammar's
	// default start symbol.
	Parse(tokens token.Sequence, root string) (Forest, error)
}

// Reducer selects a single best derivation from a forest and scores it.
// Implementations must be safe for concurrent use.
type Reducer interface {
	Reduce(f Forest) (Tree, int, error)
}

// Forest represents all valid derivations of a token sequence.
type Forest interface {
	// Combinations returns the number of derivations in the forest.
	Combinations() int64
	// Unique returns the first derivation. It is meaningful when
	// Combinations() == 1, where the unique derivation is its own
	// reduction.
	Unique() Tree
}

// Tree is a single derivation.
type Tree interface {
	Root() Node
}

// Node is one node of a derivation tree. Terminal nodes reference the
// input token they matched; nonterminal nodes have children.
type Node interface {
	// Label returns the grammar symbol of the node (a terminal symbol
	// such as "no_et" for leaves, a nonterminal name otherwise).
	Label() string
	Children() []Node
	// TokenIndex returns the index of the matched token, or -1 for
	// nonterminal nodes.
	TokenIndex() int
	// Lemma, Category and Variants describe the lexicon reading a
	// terminal node matched; they are empty for nonterminal nodes.
	Lemma() string
	Category() string
	Variants() []string
}

// ParseError reports why a token sequence could not be parsed.
// TokenIndex is the position of the offending token, or -1 when the
// engine could not pinpoint one.
type ParseError struct {
	Msg        string
	TokenIndex int
	Err        error
}

// NewParseError creates a ParseError wrapping a sentinel cause.
func NewParseError(cause error, tokenIndex int, format string, args ...any) *ParseError {
	return &ParseError{
		Msg:        fmt.Sprintf(format, args...),
		TokenIndex: tokenIndex,
		Err:        cause,
	}
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// AsParseError converts any error returned by an engine into a
// *ParseError, wrapping unknown errors as a syntax error with an
// unspecified token index.
func AsParseError(err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return &ParseError{Msg: err.Error(), TokenIndex: -1, Err: internalerr.ErrNoParse}
}
