package compiler

import (
	"errors"
	"fmt"
)

// ParseError reports a source file that is not syntactically valid.
type ParseError struct {
	File    string
	Line    int // 1-based, 0 if unknown
	Column  int // 1-based, 0 if unknown
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// IsParseError reports whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
