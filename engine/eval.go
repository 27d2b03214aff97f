package engine

import (
	"fmt"

	"github.com/on-the-ground/rvm_ive_go/ir"
	"github.com/on-the-ground/rvm_ive_go/value"
)

// flow tells the enclosing expression how evaluation left a node.
type flow uint8

const (
	flowNext flow = iota
	// flowReturn unwinds to the function boundary with a result.
	flowReturn
	// flowJump unwinds to the function boundary to restart the body with
	// frame.next.
	flowJump
)

// eval evaluates e in f. Whenever the returned flow is not flowNext the
// caller must stop and pass the flow up unchanged.
func (rt *Runtime) eval(f *frame, e ir.Expr) (value.Value, flow, error) {
	switch e := e.(type) {
	case nil:
		return value.Void(), flowNext, nil

	case *ir.Const:
		return e.Value, flowNext, nil

	case *ir.Local:
		return f.locals[e.Slot], flowNext, nil

	case *ir.Assign:
		v, fl, err := rt.eval(f, e.Value)
		if err != nil || fl != flowNext {
			return v, fl, err
		}
		f.locals[e.Slot] = v
		return value.Void(), flowNext, nil

	case *ir.If:
		ok, v, fl, err := rt.test(f, e.Cond, "if")
		if err != nil || fl != flowNext {
			return v, fl, err
		}
		if ok {
			return rt.eval(f, e.Then)
		}
		return rt.eval(f, e.Else)

	case *ir.Block:
		res := value.Void()
		for _, stmt := range e.Body {
			v, fl, err := rt.eval(f, stmt)
			if err != nil || fl != flowNext {
				return v, fl, err
			}
			res = v
		}
		return res, flowNext, nil

	case *ir.Return:
		v, fl, err := rt.eval(f, e.Value)
		if err != nil || fl != flowNext {
			return v, fl, err
		}
		return v, flowReturn, nil

	case *ir.While:
		for {
			ok, v, fl, err := rt.test(f, e.Cond, "while")
			if err != nil || fl != flowNext {
				return v, fl, err
			}
			if !ok {
				return value.Void(), flowNext, nil
			}
			v, fl, err = rt.eval(f, e.Body)
			if err != nil || fl != flowNext {
				return v, fl, err
			}
		}

	case *ir.Call:
		args, v, fl, err := rt.args(f, e.Args)
		if err != nil || fl != flowNext {
			return v, fl, err
		}
		callee, ok := rt.funcs[e.Func]
		if !ok {
			return value.Void(), flowNext, fmt.Errorf("%w: %s", ErrUnknownFunction, e.Func)
		}
		res, err := rt.dispatch(callee, args)
		return res, flowNext, err

	case *ir.SelfTailCall:
		// every argument is computed against the old bindings before any
		// parameter changes
		args, v, fl, err := rt.args(f, e.Args)
		if err != nil || fl != flowNext {
			return v, fl, err
		}
		f.next = args
		return value.Void(), flowJump, nil

	case *ir.Binary:
		if e.Op.ShortCircuit() {
			return rt.logic(f, e)
		}
		l, fl, err := rt.eval(f, e.Left)
		if err != nil || fl != flowNext {
			return l, fl, err
		}
		r, fl, err := rt.eval(f, e.Right)
		if err != nil || fl != flowNext {
			return r, fl, err
		}
		res, err := binary(e.Op, l, r)
		return res, flowNext, err

	case *ir.Not:
		ok, v, fl, err := rt.test(f, e.Operand, "!")
		if err != nil || fl != flowNext {
			return v, fl, err
		}
		return value.Bool(!ok), flowNext, nil

	default:
		panic("exhaustive match")
	}
}

func (rt *Runtime) args(f *frame, es []ir.Expr) (value.Tuple, value.Value, flow, error) {
	args := make(value.Tuple, len(es))
	for i, e := range es {
		v, fl, err := rt.eval(f, e)
		if err != nil || fl != flowNext {
			return nil, v, fl, err
		}
		args[i] = v
	}
	return args, value.Void(), flowNext, nil
}

// test evaluates a condition, which must be a bool.
func (rt *Runtime) test(f *frame, e ir.Expr, what string) (bool, value.Value, flow, error) {
	v, fl, err := rt.eval(f, e)
	if err != nil || fl != flowNext {
		return false, v, fl, err
	}
	b, ok := v.AsBool()
	if !ok {
		return false, v, flowNext, typeMismatch(what, "bool", v.Kind())
	}
	return b, v, flowNext, nil
}

func (rt *Runtime) logic(f *frame, e *ir.Binary) (value.Value, flow, error) {
	l, v, fl, err := rt.test(f, e.Left, e.Op.String())
	if err != nil || fl != flowNext {
		return v, fl, err
	}
	if (e.Op == ir.OpAnd && !l) || (e.Op == ir.OpOr && l) {
		return value.Bool(l), flowNext, nil
	}
	r, v, fl, err := rt.test(f, e.Right, e.Op.String())
	if err != nil || fl != flowNext {
		return v, fl, err
	}
	return value.Bool(r), flowNext, nil
}

func binary(op ir.Op, l, r value.Value) (value.Value, error) {
	switch op {
	case ir.OpEq:
		return value.Bool(value.Equal(l, r)), nil
	case ir.OpNe:
		return value.Bool(!value.Equal(l, r)), nil
	}

	a, lok := l.AsInt()
	b, rok := r.AsInt()
	if !lok || !rok {
		return value.Void(), fmt.Errorf("%w: %s %s %s", ErrTypeMismatch, l.Kind(), op, r.Kind())
	}
	switch op {
	case ir.OpAdd:
		return value.Int(a + b), nil
	case ir.OpSub:
		return value.Int(a - b), nil
	case ir.OpMul:
		return value.Int(a * b), nil
	case ir.OpDiv:
		if b == 0 {
			return value.Void(), ErrDivisionByZero
		}
		return value.Int(a / b), nil
	case ir.OpRem:
		if b == 0 {
			return value.Void(), ErrDivisionByZero
		}
		return value.Int(a % b), nil
	case ir.OpLt:
		return value.Bool(a < b), nil
	case ir.OpLe:
		return value.Bool(a <= b), nil
	case ir.OpGt:
		return value.Bool(a > b), nil
	case ir.OpGe:
		return value.Bool(a >= b), nil
	default:
		panic("exhaustive match")
	}
}
