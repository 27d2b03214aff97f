// Package ir is the tree form the engine executes.
//
// There is no parser: callers build functions out of Expr nodes, usually
// through the XxxOf helpers. Every Expr evaluates to a value.Value;
// statements such as Assign or While evaluate to Void.
//
//	fib := &ir.Function{
//	    Name:   "fib",
//	    Params: []string{"n"},
//	    Body: ir.IfOf(ir.Le(ir.LocalOf(0), ir.IntOf(1)),
//	        ir.LocalOf(0),
//	        ir.Add(
//	            ir.CallOf("fib", ir.Sub(ir.LocalOf(0), ir.IntOf(1))),
//	            ir.CallOf("fib", ir.Sub(ir.LocalOf(0), ir.IntOf(2))),
//	        )),
//	}
package ir

import (
	"github.com/on-the-ground/rvm_ive_go/value"
)

// Expr is a sealed interface; only the node types of this package
// implement it.
type Expr interface {
	sealedExpr()
}

var _ Expr = (*Const)(nil)

// Const yields a fixed value. Text constants are static and own no heap
// slot.
type Const struct {
	Value value.Value
}

func (*Const) sealedExpr() {}

var _ Expr = (*Local)(nil)

// Local reads a local slot. Parameters occupy the first slots.
type Local struct {
	Slot int
}

func (*Local) sealedExpr() {}

var _ Expr = (*Assign)(nil)

// Assign stores into a local slot and yields Void.
type Assign struct {
	Slot  int
	Value Expr
}

func (*Assign) sealedExpr() {}

var _ Expr = (*If)(nil)

// If yields the value of the taken branch. A nil Else yields Void.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*If) sealedExpr() {}

var _ Expr = (*Block)(nil)

// Block evaluates its body in order and yields the last value, or Void
// when empty.
type Block struct {
	Body []Expr
}

func (*Block) sealedExpr() {}

var _ Expr = (*Return)(nil)

// Return leaves the function with the value of Value (Void when nil).
type Return struct {
	Value Expr
}

func (*Return) sealedExpr() {}

var _ Expr = (*While)(nil)

// While repeats Body while Cond is true and yields Void.
type While struct {
	Cond Expr
	Body Expr
}

func (*While) sealedExpr() {}

var _ Expr = (*Call)(nil)

// Call invokes a registered function or native by name.
type Call struct {
	Func string
	Args []Expr
}

func (*Call) sealedExpr() {}

var _ Expr = (*SelfTailCall)(nil)

// SelfTailCall replaces a direct self-call in tail position. The engine
// evaluates Args, rebinds the parameters and restarts the body in the same
// frame. Only the tailcall rewriter produces it.
type SelfTailCall struct {
	Func string
	Args []Expr
}

func (*SelfTailCall) sealedExpr() {}

var _ Expr = (*Binary)(nil)

type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (*Binary) sealedExpr() {}

var _ Expr = (*Not)(nil)

type Not struct {
	Operand Expr
}

func (*Not) sealedExpr() {}

// Function is a named body with positional parameters. Locals is the
// total number of slots, parameters included; it is raised to
// len(Params) when smaller.
type Function struct {
	Name   string
	Params []string
	Locals int
	Body   Expr
}

func (f *Function) Arity() int { return len(f.Params) }

// Slots is the frame size the function needs.
func (f *Function) Slots() int {
	if f.Locals < len(f.Params) {
		return len(f.Params)
	}
	return f.Locals
}
