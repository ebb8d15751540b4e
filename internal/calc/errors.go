package calc

import (
	"errors"
	"strings"
)

// InvalidSyntax is the only failure text of the arithmetic evaluator.
const InvalidSyntax = "Error: Invalid Syntax"

// errorPrefix starts every failure line of the calculus dispatcher.
const errorPrefix = "Error: "

var (
	ErrParse          = errors.New("parse error")
	ErrLimit          = errors.New("invalid integration limit")
	ErrKernel         = errors.New("symbolic engine failure")
	ErrDivisionByZero = errors.New("division by zero")
)

// Kind classifies failures along the calculator's error taxonomy.
type Kind string

const (
	KindParse  Kind = "parse"
	KindLimit  Kind = "limit"
	KindKernel Kind = "kernel"
	KindInput  Kind = "input_capture"
	KindOutput Kind = "output"
)

// Error carries a Kind next to the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the Kind of err, or "" when err is not a classified failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// errorLine renders a failure as "Error: <cause>".
func errorLine(err error) string {
	return errorPrefix + err.Error()
}

// IsErrorLine reports whether a display line is a failure line.
func IsErrorLine(line string) bool {
	return strings.HasPrefix(line, errorPrefix)
}
