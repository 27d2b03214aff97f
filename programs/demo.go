package programs

import (
	"fmt"

	"github.com/on-the-ground/rvm_ive_go/engine"
	"github.com/on-the-ground/rvm_ive_go/ir"
	"github.com/on-the-ground/rvm_ive_go/value"
)

const (
	NaiveFibonacci    = "naiveFibonacci"
	NaiveFibonacciMem = "naiveFibonacciMem"
	MemorizeMain      = "memorize"

	CountAllocateName     = "countAllocate"
	CountAllocateAutoFree = "countAllocateAutoFree"
	AutoFreeMain          = "autoFree"

	TailCallFibonacci              = "tailCallFibonacci"
	TailCallFibonacciStep          = "tailCallFibonacciStep"
	TailCallFibonacciOptimized     = "tailCallFibonacciOptimized"
	TailCallFibonacciOptimizedStep = "tailCallFibonacciOptimizedStep"
	TailRecursionMain              = "tailRecursion"
)

// Def is a function together with the marks it is registered with.
type Def struct {
	Fn    *ir.Function
	Marks engine.Marks
}

type Demo struct {
	// Name is the command that runs the demo.
	Name    string
	Summary string
	// Main takes one int argument, DefaultN unless told otherwise.
	Main     string
	DefaultN int64
	Defs     []Def
}

func (d Demo) Install(rt *engine.Runtime) error {
	for _, def := range d.Defs {
		if err := rt.Define(def.Fn, def.Marks); err != nil {
			return fmt.Errorf("install %s: %w", d.Name, err)
		}
	}
	return nil
}

// Run installs the demo and calls its main with n.
func (d Demo) Run(rt *engine.Runtime, n int64) (value.Value, error) {
	if err := d.Install(rt); err != nil {
		return value.Void(), err
	}
	return rt.Call(d.Main, value.Int(n))
}

func Memorize() Demo {
	return Demo{
		Name:     "memorize",
		Summary:  "Naive Fibonacci with and without memoization",
		Main:     MemorizeMain,
		DefaultN: 30,
		Defs: []Def{
			{Fn: Fibonacci(NaiveFibonacci)},
			{Fn: Fibonacci(NaiveFibonacciMem), Marks: engine.Memoize},
			{Fn: compareMain(MemorizeMain, NaiveFibonacci, NaiveFibonacciMem, "memoization", true)},
		},
	}
}

func AutoFree() Demo {
	return Demo{
		Name:     "autofree",
		Summary:  "Heap growth of an allocation loop with and without auto-free",
		Main:     AutoFreeMain,
		DefaultN: 100,
		Defs: []Def{
			{Fn: CountAllocate(CountAllocateName)},
			{Fn: CountAllocate(CountAllocateAutoFree), Marks: engine.AutoFree},
			{Fn: autoFreeMain()},
		},
	}
}

func TailRecursion() Demo {
	return Demo{
		Name:     "tailrec",
		Summary:  "Tail-recursive Fibonacci with and without the loop rewrite",
		Main:     TailRecursionMain,
		DefaultN: 40,
		Defs: []Def{
			{Fn: TailFibonacciStep(TailCallFibonacciStep)},
			{Fn: TailFibonacci(TailCallFibonacci, TailCallFibonacciStep)},
			{Fn: TailFibonacciStep(TailCallFibonacciOptimizedStep), Marks: engine.TailOptimize},
			{Fn: TailFibonacci(TailCallFibonacciOptimized, TailCallFibonacciOptimizedStep)},
			{Fn: compareMain(TailRecursionMain, TailCallFibonacci, TailCallFibonacciOptimized, "optimization", false)},
		},
	}
}

func All() []Demo {
	return []Demo{Memorize(), AutoFree(), TailRecursion()}
}

// compareMain times plain(n) and then fast(n), prints both results and
// returns the second.
func compareMain(name, plain, fast, feature string, dump bool) *ir.Function {
	const (
		n = iota
		start
		plainRes
		fastRes
	)
	timed := func(slot int, fn, label string) []ir.Expr {
		return []ir.Expr{
			ir.AssignOf(start, ir.CallOf("tick")),
			ir.AssignOf(slot, ir.CallOf(fn, ir.LocalOf(n))),
			ir.CallOf("print",
				ir.TextOf(label+" = "),
				ir.LocalOf(slot),
				ir.TextOf(" (took "),
				ir.Sub(ir.CallOf("tick"), ir.LocalOf(start)),
				ir.TextOf("ms)\n"),
			),
		}
	}
	var body []ir.Expr
	body = append(body, timed(plainRes, plain, "Fibonacci without "+feature)...)
	body = append(body, timed(fastRes, fast, "Fibonacci with "+feature)...)
	if dump {
		body = append(body, ir.CallOf("logState"))
	}
	body = append(body, ir.ReturnOf(ir.LocalOf(fastRes)))
	return &ir.Function{
		Name:   name,
		Params: []string{"n"},
		Locals: 4,
		Body:   ir.BlockOf(body...),
	}
}

// autoFreeMain measures the heap growth of both allocation variants and
// returns how many objects auto-free saved.
func autoFreeMain() *ir.Function {
	const (
		count = iota
		heap1
		heap2
		heap3
	)
	heap := func(slot int) ir.Expr {
		return ir.AssignOf(slot, ir.CallOf("heapSize"))
	}
	plainDelta := ir.Sub(ir.LocalOf(heap2), ir.LocalOf(heap1))
	freeDelta := ir.Sub(ir.LocalOf(heap3), ir.LocalOf(heap2))
	return &ir.Function{
		Name:   AutoFreeMain,
		Params: []string{"count"},
		Locals: 4,
		Body: ir.BlockOf(
			ir.CallOf("logState"),
			heap(heap1),
			ir.CallOf(CountAllocateName, ir.LocalOf(count)),
			ir.CallOf("logState"),
			heap(heap2),
			ir.CallOf(CountAllocateAutoFree, ir.LocalOf(count)),
			ir.CallOf("logState"),
			heap(heap3),
			ir.CallOf("print",
				ir.TextOf("Allocated without auto-free "), plainDelta,
				ir.TextOf(" values, with auto-free - "), freeDelta,
				ir.TextOf(" values"),
			),
			ir.CallOf("println"),
			ir.ReturnOf(ir.Sub(plainDelta, freeDelta)),
		),
	}
}
