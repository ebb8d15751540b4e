package symbolic

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned by Parse for malformed input.
	ErrSyntax = errors.New("invalid expression")
	// ErrDivisionByZero is raised by constructors on 1/0 style arithmetic.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNotIntegrable is returned when no integration rule matches.
	ErrNotIntegrable = errors.New("cannot integrate")
	// ErrNotNumeric is returned when an expression has free symbols where a number is required.
	ErrNotNumeric = errors.New("expression is not numeric")
	// ErrUndefined is returned when numeric evaluation leaves the real line or overflows.
	ErrUndefined = errors.New("undefined value")
)

// KernelError is the panic payload of the constructors.
type KernelError struct {
	Err    error
	Detail string
}

func (e *KernelError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *KernelError) Unwrap() error { return e.Err }

func raise(err error, detail string) {
	panic(&KernelError{Err: err, Detail: detail})
}

// guard converts a constructor panic into an error. Foreign panics are re-raised.
func guard(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if ke, ok := r.(*KernelError); ok {
		*err = ke
		return
	}
	panic(r)
}
