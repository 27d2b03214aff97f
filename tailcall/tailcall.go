// Package tailcall turns direct self-calls in tail position into loop
// jumps.
//
// A call is in tail position when its value is returned as is: the body
// itself, the branches of an If in tail position, the last expression of
// a Block in tail position, and the operand of any Return. Such a call to
// the function being rewritten becomes an ir.SelfTailCall, which the
// engine executes by evaluating all arguments against the current
// bindings, rebinding the parameters and restarting the body in the same
// frame. Everything else is left alone: self-calls whose value is still
// used (fib(n-1) + fib(n-2)), calls to other functions, and mutual
// recursion.
package tailcall

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/rvm_ive_go/ir"
)

var ErrArityMismatch = errors.New("tail call arity mismatch")

// Report tells what Rewrite did to one function.
type Report struct {
	Function string
	// Rewritten counts self-call sites turned into loop jumps.
	Rewritten int
	// NonTail counts self-call sites that stay ordinary calls.
	NonTail int
}

// Looped reports whether the rewritten function runs in constant frame
// depth for its own recursion.
func (r Report) Looped() bool { return r.NonTail == 0 && r.Rewritten > 0 }

func (r Report) String() string {
	return fmt.Sprintf("%s: %d tail self-calls looped, %d non-tail self-calls", r.Function, r.Rewritten, r.NonTail)
}

// Rewrite returns a rewritten copy of fn. fn itself is not modified.
func Rewrite(fn *ir.Function) (*ir.Function, Report, error) {
	if err := ir.Validate(fn); err != nil {
		return nil, Report{}, err
	}
	rw := &rewriter{fn: fn, report: Report{Function: fn.Name}}
	body, err := rw.expr(fn.Body, true)
	if err != nil {
		return nil, Report{}, err
	}
	out := *fn
	out.Params = append([]string(nil), fn.Params...)
	out.Body = body
	return &out, rw.report, nil
}

type rewriter struct {
	fn     *ir.Function
	report Report
}

func (rw *rewriter) exprs(es []ir.Expr) ([]ir.Expr, error) {
	out := make([]ir.Expr, len(es))
	for i, e := range es {
		r, err := rw.expr(e, false)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (rw *rewriter) expr(e ir.Expr, tail bool) (ir.Expr, error) {
	switch e := e.(type) {
	case nil:
		return nil, nil

	case *ir.Const, *ir.Local:
		return e, nil

	case *ir.Assign:
		v, err := rw.expr(e.Value, false)
		if err != nil {
			return nil, err
		}
		return &ir.Assign{Slot: e.Slot, Value: v}, nil

	case *ir.If:
		cond, err := rw.expr(e.Cond, false)
		if err != nil {
			return nil, err
		}
		then, err := rw.expr(e.Then, tail)
		if err != nil {
			return nil, err
		}
		els, err := rw.expr(e.Else, tail)
		if err != nil {
			return nil, err
		}
		return &ir.If{Cond: cond, Then: then, Else: els}, nil

	case *ir.Block:
		body := make([]ir.Expr, len(e.Body))
		for i, stmt := range e.Body {
			last := i == len(e.Body)-1
			r, err := rw.expr(stmt, tail && last)
			if err != nil {
				return nil, err
			}
			body[i] = r
		}
		return &ir.Block{Body: body}, nil

	case *ir.Return:
		// whatever a Return carries is returned immediately
		v, err := rw.expr(e.Value, true)
		if err != nil {
			return nil, err
		}
		return &ir.Return{Value: v}, nil

	case *ir.While:
		cond, err := rw.expr(e.Cond, false)
		if err != nil {
			return nil, err
		}
		body, err := rw.expr(e.Body, false)
		if err != nil {
			return nil, err
		}
		return &ir.While{Cond: cond, Body: body}, nil

	case *ir.Call:
		args, err := rw.exprs(e.Args)
		if err != nil {
			return nil, err
		}
		if e.Func != rw.fn.Name {
			return &ir.Call{Func: e.Func, Args: args}, nil
		}
		if !tail {
			rw.report.NonTail++
			return &ir.Call{Func: e.Func, Args: args}, nil
		}
		if len(args) != rw.fn.Arity() {
			return nil, fmt.Errorf("%w: %s called with %d arguments, takes %d",
				ErrArityMismatch, rw.fn.Name, len(args), rw.fn.Arity())
		}
		rw.report.Rewritten++
		return &ir.SelfTailCall{Func: e.Func, Args: args}, nil

	case *ir.SelfTailCall:
		args, err := rw.exprs(e.Args)
		if err != nil {
			return nil, err
		}
		rw.report.Rewritten++
		return &ir.SelfTailCall{Func: e.Func, Args: args}, nil

	case *ir.Binary:
		l, err := rw.expr(e.Left, false)
		if err != nil {
			return nil, err
		}
		r, err := rw.expr(e.Right, false)
		if err != nil {
			return nil, err
		}
		return &ir.Binary{Op: e.Op, Left: l, Right: r}, nil

	case *ir.Not:
		operand, err := rw.expr(e.Operand, false)
		if err != nil {
			return nil, err
		}
		return &ir.Not{Operand: operand}, nil

	default:
		panic(fmt.Errorf("invalid expression type: %T", e))
	}
}
