package engine

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrArityMismatch   = errors.New("arity mismatch")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrStackOverflow   = errors.New("stack overflow")

	ErrDuplicateFunction = errors.New("duplicate function")
	ErrInvalidMarks      = errors.New("invalid marks")
)

// RuntimeError is a failure raised while evaluating Func. It is created
// by the innermost failing function and passed through its callers as is.
type RuntimeError struct {
	Func string
	Err  error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Func, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func failIn(fn string, err error) error {
	var re *RuntimeError
	if errors.As(err, &re) {
		return err
	}
	return &RuntimeError{Func: fn, Err: err}
}

func typeMismatch(what string, want string, got fmt.Stringer) error {
	return fmt.Errorf("%w: %s expects %s, got %s", ErrTypeMismatch, what, want, got)
}
