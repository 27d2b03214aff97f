package engine

import (
	"fmt"

	"github.com/on-the-ground/rvm_ive_go/memo"
	"github.com/on-the-ground/rvm_ive_go/value"
	"go.uber.org/zap"
)

type frame struct {
	fn     *function
	locals []value.Value
	// next holds the arguments of a pending tail jump.
	next  value.Tuple
	steps int
}

func (f *frame) rebind(args value.Tuple) {
	clear(f.locals)
	copy(f.locals, args)
}

// dispatch is the single entry for every call, from Call and from inside
// function bodies alike.
func (rt *Runtime) dispatch(fn *function, args value.Tuple) (value.Value, error) {
	if fn.arity != Variadic && len(args) != fn.arity {
		return value.Void(), &RuntimeError{
			Func: fn.name,
			Err:  fmt.Errorf("%w: takes %d arguments, got %d", ErrArityMismatch, fn.arity, len(args)),
		}
	}
	rt.calls++

	var table *memo.Table
	if fn.marks.Has(Memoize) {
		table = rt.memo.For(fn.name)
		if res, ok := table.Lookup(args); ok {
			rt.log.Debug("memo hit", zap.String("func", fn.name), zap.Stringer("args", args))
			return res, nil
		}
	}

	if fn.marks.Has(AutoFree) {
		scope := rt.heap.Enter()
		defer func() {
			n := scope.Close()
			rt.log.Debug("scope exit",
				zap.String("func", fn.name), zap.Int("reclaimed", n), zap.Int("heap", rt.heap.Live()))
		}()
	}

	var (
		res  value.Value
		keys []value.Tuple
		err  error
	)
	if fn.native != nil {
		res, err = fn.native(rt, args)
		if err != nil {
			err = failIn(fn.name, err)
		}
		keys = []value.Tuple{args}
	} else {
		res, keys, err = rt.run(fn, args, table)
	}
	if err != nil {
		return value.Void(), err
	}

	if table != nil {
		for _, k := range keys {
			table.Insert(k, res)
		}
	}
	return res, nil
}

// run evaluates an interpreted body in a new frame. A tail jump restarts
// the body in the same frame; with table set each step's arguments are
// looked up first and collected in keys, to be stored with the final
// result.
func (rt *Runtime) run(fn *function, args value.Tuple, table *memo.Table) (value.Value, []value.Tuple, error) {
	if len(rt.frames) >= rt.maxDepth {
		return value.Void(), nil, &RuntimeError{
			Func: fn.name,
			Err:  fmt.Errorf("%w: more than %d frames", ErrStackOverflow, rt.maxDepth),
		}
	}
	f := rt.push(fn, args)
	defer rt.pop()

	var keys []value.Tuple
	if table != nil {
		keys = append(keys, args)
	}
	for {
		res, fl, err := rt.eval(f, fn.def.Body)
		if err != nil {
			return value.Void(), nil, failIn(fn.name, err)
		}
		if fl != flowJump {
			return res, keys, nil
		}

		next := f.next
		f.next = nil
		f.steps++
		rt.tailSteps++
		rt.log.Debug("tail jump", zap.String("func", fn.name), zap.Stringer("args", next), zap.Int("step", f.steps))
		if table != nil {
			if hit, ok := table.Lookup(next); ok {
				return hit, keys, nil
			}
			keys = append(keys, next)
		}
		f.rebind(next)
	}
}

func (rt *Runtime) push(fn *function, args value.Tuple) *frame {
	f := &frame{fn: fn, locals: make([]value.Value, fn.def.Slots())}
	copy(f.locals, args)
	rt.frames = append(rt.frames, f)
	if len(rt.frames) > rt.peakDepth {
		rt.peakDepth = len(rt.frames)
	}
	return f
}

func (rt *Runtime) pop() {
	n := len(rt.frames)
	rt.frames[n-1] = nil
	rt.frames = rt.frames[:n-1]
}
