package programs

import "github.com/on-the-ground/rvm_ive_go/ir"

// Fibonacci is the doubly recursive definition:
//
//	f(n) = 0 for n <= 0, 1 for n <= 2, f(n-1) + f(n-2) otherwise
func Fibonacci(name string) *ir.Function {
	const nth = 0
	return &ir.Function{
		Name:   name,
		Params: []string{"nth"},
		Body: ir.BlockOf(
			ir.IfOf(ir.Le(ir.LocalOf(nth), ir.IntOf(0)), ir.ReturnOf(ir.IntOf(0)), nil),
			ir.IfOf(ir.Le(ir.LocalOf(nth), ir.IntOf(2)), ir.ReturnOf(ir.IntOf(1)), nil),
			ir.ReturnOf(ir.Add(
				ir.CallOf(name, ir.Sub(ir.LocalOf(nth), ir.IntOf(1))),
				ir.CallOf(name, ir.Sub(ir.LocalOf(nth), ir.IntOf(2))),
			)),
		),
	}
}

// TailFibonacciStep carries the two previous terms along:
//
//	f(a, b, remaining) = a when remaining <= 0, b when remaining == 1,
//	                     f(b, a+b, remaining-1) otherwise
//
// The last step dumps the runtime state, which shows how deep the stack
// got.
func TailFibonacciStep(name string) *ir.Function {
	const (
		prevPrev = iota
		prev
		remaining
	)
	return &ir.Function{
		Name:   name,
		Params: []string{"prevPrevFib", "prevFib", "remaining"},
		Body: ir.BlockOf(
			ir.IfOf(ir.Le(ir.LocalOf(remaining), ir.IntOf(0)), ir.ReturnOf(ir.LocalOf(prevPrev)), nil),
			ir.IfOf(ir.Eq(ir.LocalOf(remaining), ir.IntOf(1)), ir.BlockOf(
				ir.CallOf("logState"),
				ir.ReturnOf(ir.LocalOf(prev)),
			), nil),
			ir.ReturnOf(ir.CallOf(name,
				ir.LocalOf(prev),
				ir.Add(ir.LocalOf(prevPrev), ir.LocalOf(prev)),
				ir.Sub(ir.LocalOf(remaining), ir.IntOf(1)),
			)),
		),
	}
}

// TailFibonacci starts step at the first two terms.
func TailFibonacci(name, step string) *ir.Function {
	return &ir.Function{
		Name:   name,
		Params: []string{"nth"},
		Body:   ir.CallOf(step, ir.IntOf(0), ir.IntOf(1), ir.LocalOf(0)),
	}
}
