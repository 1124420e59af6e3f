package parser

import "fmt"

// ParseError reports malformed or out-of-range input. Input holds the
// fragment that could not be parsed, Err the underlying cause if any.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Reason, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(input, reason string) *ParseError {
	return &ParseError{Input: input, Reason: reason}
}
