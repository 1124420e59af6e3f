package formatter

import (
	"errors"
	"fmt"
)

// Common formatting errors.
var (
	ErrNoValue               = errors.New("no value provided")
	ErrNoFormatType          = errors.New("no format type provided")
	ErrUnsupportedFormatType = errors.New("unsupported format type")
	ErrWrongKind             = errors.New("angle has the wrong kind")
)

// FormatError reports a value or format type the formatter cannot handle.
type FormatError struct {
	Op  string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
