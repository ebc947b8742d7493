package expression

import (
	"errors"
	"fmt"
)

// The parse failure taxonomy. Every error returned by Parse wraps exactly
// one of these, so callers can classify failures with errors.Is.
var (
	ErrUnbalancedParenthesis = errors.New("unbalanced parenthesis")
	ErrUnterminatedString    = errors.New("unterminated string literal")
	ErrInvalidNumber         = errors.New("invalid number literal")
	ErrUnknownFunction       = errors.New("unknown function")
	ErrEmptyFunctionName     = errors.New("empty function name")
	ErrRecursionLimit        = errors.New("expression nesting exceeds recursion limit")
)

// ParseError describes why an expression string could not be parsed
type ParseError struct {
	Err   error  // one of the taxonomy errors above
	Token string // the offending token, when there is one
	Input string // the full expression being parsed
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%v: %q in expression %q", e.Err, e.Token, e.Input)
	}
	return fmt.Sprintf("%v in expression %q", e.Err, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AsParseError unwraps err to the *ParseError in its chain, if any
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
