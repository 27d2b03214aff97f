package engine

import "github.com/on-the-ground/rvm_ive_go/value"

var builtins = []struct {
	name  string
	arity int
	fn    NativeFunc
}{
	{"print", Variadic, nativePrint},
	{"println", 0, nativePrintln},
	{"logState", 0, nativeLogState},
	{"tick", 0, nativeTick},
	{"heapSize", 0, nativeHeapSize},
	{"vector", 1, nativeVector},
	{"vectorAdd", 2, nativeVectorAdd},
	{"vectorGet", 2, nativeVectorGet},
	{"vectorSize", 1, nativeVectorSize},
	{"str", 1, nativeStr},
	{"concat", 2, nativeConcat},
	{"free", 1, nativeFree},
}

func nativePrint(rt *Runtime, args value.Tuple) (value.Value, error) {
	return value.Void(), rt.printer.Print(args...)
}

func nativePrintln(rt *Runtime, _ value.Tuple) (value.Value, error) {
	return value.Void(), rt.printer.Println()
}

func nativeLogState(rt *Runtime, _ value.Tuple) (value.Value, error) {
	rt.LogState()
	return value.Void(), nil
}

func nativeTick(rt *Runtime, _ value.Tuple) (value.Value, error) {
	return value.Int(rt.Tick()), nil
}

func nativeHeapSize(rt *Runtime, _ value.Tuple) (value.Value, error) {
	return value.Int(int64(rt.HeapSize())), nil
}

func nativeVector(rt *Runtime, args value.Tuple) (value.Value, error) {
	n, ok := args[0].AsInt()
	if !ok {
		return value.Void(), typeMismatch("vector", "int", args[0].Kind())
	}
	vec, err := value.NewVector(int(n))
	if err != nil {
		return value.Void(), err
	}
	return rt.Alloc(vec)
}

func vectorArg(native string, v value.Value) (*value.Vector, error) {
	vec, ok := v.AsVector()
	if !ok {
		return nil, typeMismatch(native, "vector", v.Kind())
	}
	return vec, nil
}

func nativeVectorAdd(_ *Runtime, args value.Tuple) (value.Value, error) {
	vec, err := vectorArg("vectorAdd", args[0])
	if err != nil {
		return value.Void(), err
	}
	return value.Void(), vec.Add(args[1])
}

func nativeVectorGet(_ *Runtime, args value.Tuple) (value.Value, error) {
	vec, err := vectorArg("vectorGet", args[0])
	if err != nil {
		return value.Void(), err
	}
	idx, ok := args[1].AsInt()
	if !ok {
		return value.Void(), typeMismatch("vectorGet", "int index", args[1].Kind())
	}
	return vec.Get(int(idx))
}

func nativeVectorSize(_ *Runtime, args value.Tuple) (value.Value, error) {
	vec, err := vectorArg("vectorSize", args[0])
	if err != nil {
		return value.Void(), err
	}
	return value.Int(int64(vec.Len())), nil
}

// nativeStr renders any value as a new heap text.
func nativeStr(rt *Runtime, args value.Tuple) (value.Value, error) {
	return rt.Alloc(value.NewText(args[0].String()))
}

func nativeConcat(rt *Runtime, args value.Tuple) (value.Value, error) {
	return rt.Alloc(value.NewText(args[0].String() + args[1].String()))
}

func nativeFree(rt *Runtime, args value.Tuple) (value.Value, error) {
	return value.Bool(rt.Free(args[0])), nil
}
