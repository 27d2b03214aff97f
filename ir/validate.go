package ir

import (
	"errors"
	"fmt"
)

var ErrInvalidFunction = errors.New("invalid function")

// Validate checks that fn is well formed: named, with a body, every node
// non-nil where required and every local slot inside the frame.
func Validate(fn *Function) error {
	if fn == nil {
		return fmt.Errorf("%w: nil function", ErrInvalidFunction)
	}
	if fn.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFunction)
	}
	if fn.Body == nil {
		return fmt.Errorf("%w: %s has no body", ErrInvalidFunction, fn.Name)
	}
	v := validator{fn: fn, slots: fn.Slots()}
	return v.expr(fn.Body)
}

type validator struct {
	fn    *Function
	slots int
}

func (v validator) fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidFunction, v.fn.Name, fmt.Sprintf(format, args...))
}

func (v validator) slot(n int) error {
	if n < 0 || n >= v.slots {
		return v.fail("slot %d outside frame of %d", n, v.slots)
	}
	return nil
}

func (v validator) exprs(es []Expr) error {
	for _, e := range es {
		if err := v.expr(e); err != nil {
			return err
		}
	}
	return nil
}

func (v validator) expr(e Expr) error {
	switch e := e.(type) {
	case nil:
		return v.fail("nil expression")
	case *Const:
		return nil
	case *Local:
		return v.slot(e.Slot)
	case *Assign:
		if err := v.slot(e.Slot); err != nil {
			return err
		}
		return v.expr(e.Value)
	case *If:
		if err := v.expr(e.Cond); err != nil {
			return err
		}
		if err := v.expr(e.Then); err != nil {
			return err
		}
		if e.Else == nil {
			return nil
		}
		return v.expr(e.Else)
	case *Block:
		return v.exprs(e.Body)
	case *Return:
		if e.Value == nil {
			return nil
		}
		return v.expr(e.Value)
	case *While:
		if err := v.expr(e.Cond); err != nil {
			return err
		}
		return v.expr(e.Body)
	case *Call:
		if e.Func == "" {
			return v.fail("call without a target")
		}
		return v.exprs(e.Args)
	case *SelfTailCall:
		if e.Func != v.fn.Name {
			return v.fail("tail call to %s is not a self call", e.Func)
		}
		if len(e.Args) != v.fn.Arity() {
			return v.fail("tail call with %d arguments, want %d", len(e.Args), v.fn.Arity())
		}
		return v.exprs(e.Args)
	case *Binary:
		if err := v.expr(e.Left); err != nil {
			return err
		}
		return v.expr(e.Right)
	case *Not:
		return v.expr(e.Operand)
	default:
		panic(fmt.Errorf("invalid expression type: %T", e))
	}
}
