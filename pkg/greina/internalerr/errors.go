package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrTooLong       = errors.New("sentence too long")
	ErrForeign       = errors.New("sentence is foreign")
	ErrNoParse       = errors.New("no parse")
	ErrInvalidConfig = errors.New("invalid configuration")
)
