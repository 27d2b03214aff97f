package engine_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/on-the-ground/rvm_ive_go/engine"
	"github.com/on-the-ground/rvm_ive_go/ir"
	"github.com/on-the-ground/rvm_ive_go/memo"
	"github.com/on-the-ground/rvm_ive_go/tailcall"
	"github.com/on-the-ground/rvm_ive_go/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:generate mockgen -destination mock_instrument_test.go -package engine_test -write_package_comment=false github.com/on-the-ground/rvm_ive_go/instrument Clock

// harness is a runtime with a "bump" native that counts how often it ran.
type harness struct {
	rt    *engine.Runtime
	out   *bytes.Buffer
	bumps int
}

func newHarness(t *testing.T, opts ...engine.Option) *harness {
	t.Helper()
	h := &harness{out: &bytes.Buffer{}}
	opts = append([]engine.Option{
		engine.WithOutput(h.out),
		engine.WithProcessStats(func() (uint64, error) { return 0, nil }),
	}, opts...)
	h.rt = engine.New(opts...)
	require.NoError(t, h.rt.RegisterNative("bump", 0, engine.None, func(*engine.Runtime, value.Tuple) (value.Value, error) {
		h.bumps++
		return value.Void(), nil
	}))
	return h
}

func (h *harness) define(t *testing.T, fn *ir.Function, marks engine.Marks) {
	t.Helper()
	require.NoError(t, h.rt.Define(fn, marks))
}

func (h *harness) call(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	res, err := h.rt.Call(name, args...)
	require.NoError(t, err)
	return res
}

var bump = ir.CallOf("bump")

// square(x) = bump(); x * x
func square() *ir.Function {
	return &ir.Function{
		Name:   "square",
		Params: []string{"x"},
		Body:   ir.BlockOf(bump, ir.Mul(ir.LocalOf(0), ir.LocalOf(0))),
	}
}

// countdown(n) = bump(); if n <= 0 then 0 else countdown(n - 1)
func countdown(name string) *ir.Function {
	return &ir.Function{
		Name:   name,
		Params: []string{"n"},
		Body: ir.BlockOf(bump, ir.IfOf(ir.Le(ir.LocalOf(0), ir.IntOf(0)),
			ir.IntOf(0),
			ir.CallOf(name, ir.Sub(ir.LocalOf(0), ir.IntOf(1))))),
	}
}

// sumTo(n, acc) = bump(); if n <= 0 then acc else sumTo(n - 1, acc + n)
func sumTo() *ir.Function {
	return &ir.Function{
		Name:   "sumTo",
		Params: []string{"n", "acc"},
		Body: ir.BlockOf(bump, ir.IfOf(ir.Le(ir.LocalOf(0), ir.IntOf(0)),
			ir.LocalOf(1),
			ir.CallOf("sumTo",
				ir.Sub(ir.LocalOf(0), ir.IntOf(1)),
				ir.Add(ir.LocalOf(1), ir.LocalOf(0))))),
	}
}

func TestCall_UnknownFunction(t *testing.T) {
	h := newHarness(t)
	_, err := h.rt.Call("missing")

	var re *engine.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "missing", re.Func)
	assert.ErrorIs(t, err, engine.ErrUnknownFunction)
}

func TestCall_UnknownCalleeIsReportedByCaller(t *testing.T) {
	h := newHarness(t)
	h.define(t, &ir.Function{Name: "caller", Body: ir.CallOf("nowhere")}, engine.None)

	_, err := h.rt.Call("caller")
	var re *engine.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "caller", re.Func)
	assert.ErrorIs(t, err, engine.ErrUnknownFunction)
	assert.EqualError(t, err, "caller: unknown function: nowhere")
}

func TestCall_ArityMismatch(t *testing.T) {
	h := newHarness(t)
	h.define(t, square(), engine.Memoize)

	_, err := h.rt.Call("square", value.Int(1), value.Int(2))
	assert.ErrorIs(t, err, engine.ErrArityMismatch)
	_, err = h.rt.Call("square")
	assert.ErrorIs(t, err, engine.ErrArityMismatch)
	assert.Zero(t, h.bumps)
}

func TestDefine_Rejects(t *testing.T) {
	h := newHarness(t)
	h.define(t, square(), engine.None)

	assert.ErrorIs(t, h.rt.Define(square(), engine.None), engine.ErrDuplicateFunction)
	assert.ErrorIs(t, h.rt.Define(&ir.Function{Name: "print", Body: ir.IntOf(0)}, engine.None), engine.ErrDuplicateFunction)
	assert.ErrorIs(t, h.rt.Define(countdown("c"), engine.Marks(0x80)), engine.ErrInvalidMarks)
	assert.ErrorIs(t, h.rt.Define(&ir.Function{Name: "empty"}, engine.None), ir.ErrInvalidFunction)

	badTail := &ir.Function{Name: "bad", Params: []string{"a"}, Body: ir.CallOf("bad")}
	require.NoError(t, ir.Validate(badTail))
	assert.ErrorIs(t, h.rt.Define(badTail, engine.TailOptimize), tailcall.ErrArityMismatch)
	_, ok := h.rt.TailReport("bad")
	assert.False(t, ok)
}

func TestRegisterNative_Rejects(t *testing.T) {
	h := newHarness(t)
	noop := func(*engine.Runtime, value.Tuple) (value.Value, error) { return value.Void(), nil }

	assert.ErrorIs(t, h.rt.RegisterNative("n", 0, engine.TailOptimize, noop), engine.ErrInvalidMarks)
	assert.ErrorIs(t, h.rt.RegisterNative("bump", 0, engine.None, noop), engine.ErrDuplicateFunction)
	assert.ErrorIs(t, h.rt.RegisterNative("", 0, engine.None, noop), ir.ErrInvalidFunction)
	assert.ErrorIs(t, h.rt.RegisterNative("n", -2, engine.None, noop), ir.ErrInvalidFunction)
	assert.ErrorIs(t, h.rt.RegisterNative("n", 0, engine.None, nil), ir.ErrInvalidFunction)
}

func TestMemoize_RepeatedCallSkipsBody(t *testing.T) {
	h := newHarness(t)
	h.define(t, square(), engine.Memoize)

	assert.Equal(t, value.Int(9), h.call(t, "square", value.Int(3)))
	assert.Equal(t, value.Int(9), h.call(t, "square", value.Int(3)))
	assert.Equal(t, 1, h.bumps)

	assert.Equal(t, value.Int(16), h.call(t, "square", value.Int(4)))
	assert.Equal(t, 2, h.bumps)
	assert.Equal(t, memo.Stats{Entries: 2, Hits: 1, Misses: 2}, h.rt.Stats().Memo["square"])
}

func TestMemoize_UnmarkedFunctionRunsEveryTime(t *testing.T) {
	h := newHarness(t)
	h.define(t, square(), engine.None)

	h.call(t, "square", value.Int(3))
	h.call(t, "square", value.Int(3))
	assert.Equal(t, 2, h.bumps)
	assert.Empty(t, h.rt.Stats().Memo)
}

func TestMemoize_MatchesByValueNotIdentity(t *testing.T) {
	h := newHarness(t)
	h.define(t, &ir.Function{
		Name:   "echo",
		Params: []string{"s"},
		Body:   ir.BlockOf(bump, ir.LocalOf(0)),
	}, engine.Memoize)

	h.call(t, "echo", value.Str("ab"))
	heapText, err := h.rt.Alloc(value.NewText("ab"))
	require.NoError(t, err)
	res := h.call(t, "echo", heapText)

	assert.Equal(t, 1, h.bumps)
	assert.True(t, value.Equal(value.Str("ab"), res))
}

func TestMemoize_FailuresAreNotCached(t *testing.T) {
	h := newHarness(t)
	h.define(t, &ir.Function{
		Name:   "div",
		Params: []string{"a", "b"},
		Body:   ir.BlockOf(bump, ir.BinaryOf(ir.OpDiv, ir.LocalOf(0), ir.LocalOf(1))),
	}, engine.Memoize)

	for i := 0; i < 2; i++ {
		_, err := h.rt.Call("div", value.Int(1), value.Int(0))
		assert.ErrorIs(t, err, engine.ErrDivisionByZero)
	}
	assert.Equal(t, 2, h.bumps)
	assert.Zero(t, h.rt.Stats().Memo["div"].Entries)

	assert.Equal(t, value.Int(3), h.call(t, "div", value.Int(7), value.Int(2)))
}

func TestMemoize_VectorGrownAfterCallIsANewKey(t *testing.T) {
	for name, indexed := range map[string]bool{"chain": false, "indexed": true} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, engine.WithMemoIndex(indexed))
			h.define(t, &ir.Function{
				Name:   "size",
				Params: []string{"v"},
				Body:   ir.BlockOf(bump, ir.CallOf("vectorSize", ir.LocalOf(0))),
			}, engine.Memoize)

			vec := h.call(t, "vector", value.Int(1))
			assert.Equal(t, value.Int(0), h.call(t, "size", vec))

			h.call(t, "vectorAdd", vec, value.Int(7))
			assert.Equal(t, value.Int(1), h.call(t, "size", vec))

			fresh := h.call(t, "vector", value.Int(3))
			h.call(t, "vectorAdd", fresh, value.Int(7))
			assert.Equal(t, value.Int(1), h.call(t, "size", fresh))
			assert.Equal(t, 2, h.bumps)
		})
	}
}

func TestMemoize_VariadicArgumentsNeverMatchAcrossArity(t *testing.T) {
	h := newHarness(t)
	calls := 0
	require.NoError(t, h.rt.RegisterNative("sum", engine.Variadic, engine.Memoize,
		func(_ *engine.Runtime, args value.Tuple) (value.Value, error) {
			calls++
			var total int64
			for _, a := range args {
				n, _ := a.AsInt()
				total += n
			}
			return value.Int(total), nil
		}))

	assert.Equal(t, value.Int(1), h.call(t, "sum", value.Int(1)))
	assert.Equal(t, value.Int(3), h.call(t, "sum", value.Int(1), value.Int(2)))
	assert.Equal(t, value.Int(0), h.call(t, "sum"))
	assert.Equal(t, 3, calls)

	assert.Equal(t, value.Int(1), h.call(t, "sum", value.Int(1)))
	assert.Equal(t, 3, calls)
}

func TestTailOptimize_EvaluatesAllArgumentsBeforeRebinding(t *testing.T) {
	h := newHarness(t)
	// swap(a, b, n) = if n <= 0 then a*10 + b else swap(b, a, n - 1)
	h.define(t, &ir.Function{
		Name:   "swap",
		Params: []string{"a", "b", "n"},
		Body: ir.IfOf(ir.Le(ir.LocalOf(2), ir.IntOf(0)),
			ir.Add(ir.Mul(ir.LocalOf(0), ir.IntOf(10)), ir.LocalOf(1)),
			ir.CallOf("swap", ir.LocalOf(1), ir.LocalOf(0), ir.Sub(ir.LocalOf(2), ir.IntOf(1)))),
	}, engine.TailOptimize)

	assert.Equal(t, value.Int(21), h.call(t, "swap", value.Int(1), value.Int(2), value.Int(1)))
	assert.Equal(t, value.Int(12), h.call(t, "swap", value.Int(1), value.Int(2), value.Int(2)))
}

func TestTailOptimize_SideEffectsRunOncePerStep(t *testing.T) {
	h := newHarness(t)
	h.define(t, countdown("countdown"), engine.TailOptimize)

	assert.Equal(t, value.Int(0), h.call(t, "countdown", value.Int(5)))
	assert.Equal(t, 6, h.bumps)

	stats := h.rt.Stats()
	assert.Equal(t, 1, stats.MaxDepth)
	assert.Equal(t, 5, stats.TailSteps)
	assert.Equal(t, 0, stats.Depth)
}

func TestTailOptimize_DepthIndependentOfInput(t *testing.T) {
	depth := func(marks engine.Marks, n int64) int {
		h := newHarness(t)
		h.define(t, countdown("countdown"), marks)
		h.call(t, "countdown", value.Int(n))
		return h.rt.Stats().MaxDepth
	}

	assert.Equal(t, depth(engine.TailOptimize, 40), depth(engine.TailOptimize, 4000))
	assert.Equal(t, 41, depth(engine.None, 40))
	assert.Equal(t, 4001, depth(engine.None, 4000))
}

func TestTailOptimize_LoopsPastTheFrameLimit(t *testing.T) {
	h := newHarness(t, engine.WithMaxDepth(50))
	h.define(t, countdown("plain"), engine.None)
	h.define(t, countdown("looped"), engine.TailOptimize)

	_, err := h.rt.Call("plain", value.Int(100))
	assert.ErrorIs(t, err, engine.ErrStackOverflow)
	assert.Equal(t, 0, h.rt.Stats().Depth)

	assert.Equal(t, value.Int(0), h.call(t, "looped", value.Int(100_000)))
}

func TestTailOptimize_ReportIsKept(t *testing.T) {
	h := newHarness(t)
	h.define(t, countdown("countdown"), engine.TailOptimize)

	report, ok := h.rt.TailReport("countdown")
	require.True(t, ok)
	assert.Equal(t, 1, report.Rewritten)
	assert.True(t, report.Looped())
}

func TestMemoizeAndTailOptimize_EveryStepIsCached(t *testing.T) {
	h := newHarness(t)
	h.define(t, sumTo(), engine.Memoize|engine.TailOptimize)

	assert.Equal(t, value.Int(55), h.call(t, "sumTo", value.Int(10), value.Int(0)))
	assert.Equal(t, 11, h.bumps)
	assert.Equal(t, 11, h.rt.Stats().Memo["sumTo"].Entries)

	// (5, 40) was a step of the first call
	assert.Equal(t, value.Int(55), h.call(t, "sumTo", value.Int(5), value.Int(40)))
	assert.Equal(t, 11, h.bumps)

	// (11, -11) steps into (10, 0), which is cached
	assert.Equal(t, value.Int(55), h.call(t, "sumTo", value.Int(11), value.Int(-11)))
	assert.Equal(t, 12, h.bumps)
	assert.Equal(t, 12, h.rt.Stats().Memo["sumTo"].Entries)
}

func TestStackOverflow_ConfiguredLimit(t *testing.T) {
	h := newHarness(t, engine.WithMaxDepth(5))
	h.define(t, countdown("countdown"), engine.None)

	h.call(t, "countdown", value.Int(4))
	_, err := h.rt.Call("countdown", value.Int(5))

	var re *engine.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "countdown", re.Func)
	assert.True(t, errors.Is(err, engine.ErrStackOverflow))
}

func TestEval_TypeMismatch(t *testing.T) {
	h := newHarness(t)
	h.define(t, &ir.Function{Name: "badIf", Body: ir.IfOf(ir.IntOf(1), ir.IntOf(2), nil)}, engine.None)
	h.define(t, &ir.Function{Name: "badAdd", Body: ir.Add(ir.IntOf(1), ir.BoolOf(true))}, engine.None)
	h.define(t, &ir.Function{Name: "badNot", Body: ir.NotOf(ir.TextOf("x"))}, engine.None)

	for _, name := range []string{"badIf", "badAdd", "badNot"} {
		_, err := h.rt.Call(name)
		assert.ErrorIs(t, err, engine.ErrTypeMismatch, name)
	}
}

func TestEval_Operators(t *testing.T) {
	cases := []struct {
		expr ir.Expr
		want value.Value
	}{
		{ir.Sub(ir.IntOf(2), ir.IntOf(5)), value.Int(-3)},
		{ir.BinaryOf(ir.OpDiv, ir.IntOf(7), ir.IntOf(2)), value.Int(3)},
		{ir.BinaryOf(ir.OpRem, ir.IntOf(7), ir.IntOf(2)), value.Int(1)},
		{ir.BinaryOf(ir.OpGt, ir.IntOf(2), ir.IntOf(1)), value.Bool(true)},
		{ir.BinaryOf(ir.OpGe, ir.IntOf(1), ir.IntOf(2)), value.Bool(false)},
		{ir.BinaryOf(ir.OpNe, ir.TextOf("a"), ir.TextOf("a")), value.Bool(false)},
		{ir.Eq(ir.NullOf(), ir.NullOf()), value.Bool(true)},
		{ir.Eq(ir.IntOf(0), ir.BoolOf(false)), value.Bool(false)},
		// the right side would fail if it ran
		{ir.BinaryOf(ir.OpAnd, ir.BoolOf(false), ir.IntOf(1)), value.Bool(false)},
		{ir.BinaryOf(ir.OpOr, ir.BoolOf(true), ir.IntOf(1)), value.Bool(true)},
		{ir.BinaryOf(ir.OpAnd, ir.BoolOf(true), ir.BoolOf(true)), value.Bool(true)},
		{ir.BlockOf(), value.Void()},
	}
	for _, c := range cases {
		t.Run(ir.Format(c.expr), func(t *testing.T) {
			h := newHarness(t)
			h.define(t, &ir.Function{Name: "f", Body: c.expr}, engine.None)
			assert.Equal(t, c.want, h.call(t, "f"))
		})
	}
}

func TestEval_LoopWithLocals(t *testing.T) {
	h := newHarness(t)
	// triangle(n): i = 0; acc = 0; while i < n { i = i + 1; acc = acc + i }; acc
	h.define(t, &ir.Function{
		Name:   "triangle",
		Params: []string{"n"},
		Locals: 3,
		Body: ir.BlockOf(
			ir.AssignOf(1, ir.IntOf(0)),
			ir.AssignOf(2, ir.IntOf(0)),
			ir.WhileOf(ir.Lt(ir.LocalOf(1), ir.LocalOf(0)), ir.BlockOf(
				ir.AssignOf(1, ir.Add(ir.LocalOf(1), ir.IntOf(1))),
				ir.AssignOf(2, ir.Add(ir.LocalOf(2), ir.LocalOf(1))),
			)),
			ir.LocalOf(2),
		),
	}, engine.None)

	assert.Equal(t, value.Int(5050), h.call(t, "triangle", value.Int(100)))
}
