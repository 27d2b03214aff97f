package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/on-the-ground/rvm_ive_go/arena"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindVoid Kind = iota
	KindNull
	KindInt
	KindBool
	KindText
	KindVector
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindVector:
		return "vector"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged union. The zero Value is Void.
type Value struct {
	kind Kind
	num  int64
	obj  Object
	ref  arena.Handle
}

// Void is the result of functions that return nothing.
func Void() Value { return Value{} }

// Null is the absent reference.
func Null() Value { return Value{kind: KindNull} }

func Int(n int64) Value { return Value{kind: KindInt, num: n} }

func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

// Str returns a static text value. Static text owns no heap slot, like a
// constant-pool string. Each call makes a new body, so compare text with
// Equal, never by identity.
func Str(s string) Value {
	return Value{kind: KindText, obj: NewText(s)}
}

// FromObject wraps a heap object. ref is the arena slot backing it, or
// arena.NoHandle for objects the arena does not track.
func FromObject(obj Object, ref arena.Handle) Value {
	if obj == nil {
		return Null()
	}
	return Value{kind: obj.Kind(), obj: obj, ref: ref}
}

func (v Value) Kind() Kind { return v.kind }

// Handle returns the arena slot backing v, or arena.NoHandle.
func (v Value) Handle() arena.Handle { return v.ref }

// IsHeap reports whether v refers to an arena-tracked object.
func (v Value) IsHeap() bool { return v.ref != arena.NoHandle }

func (v Value) AsInt() (int64, bool) {
	return v.num, v.kind == KindInt
}

func (v Value) AsBool() (bool, bool) {
	return v.num != 0, v.kind == KindBool
}

func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.obj.(*Text).s, true
}

func (v Value) AsVector() (*Vector, bool) {
	if v.kind != KindVector {
		return nil, false
	}
	return v.obj.(*Vector), true
}

// Object returns the heap object v refers to, or nil for primitives.
func (v Value) Object() Object { return v.obj }

// String renders v the way print does.
func (v Value) String() string {
	switch v.kind {
	case KindVoid:
		return ""
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	case KindText, KindVector:
		return v.obj.String()
	default:
		panic("exhaustive match")
	}
}

// Short renders v as a fixed-width cell for state dumps.
func (v Value) Short() string {
	switch v.kind {
	case KindVoid:
		return " ---- "
	case KindNull:
		return "P null"
	case KindInt:
		return fmt.Sprintf("i%5d", v.num)
	case KindBool:
		if v.num != 0 {
			return "true  "
		}
		return "false "
	case KindText:
		s := strings.ReplaceAll(v.obj.(*Text).s, "\n", "\\n")
		if r := []rune(s); len(r) > 6 {
			s = string(r[:6])
		}
		return fmt.Sprintf("%-6s", s)
	case KindVector:
		return fmt.Sprintf("V%5d", v.obj.(*Vector).Len())
	default:
		panic("exhaustive match")
	}
}

// GoString makes %#v output readable in test failures.
func (v Value) GoString() string {
	switch v.kind {
	case KindText:
		return "value.Str(" + strconv.Quote(v.String()) + ")"
	case KindVoid, KindNull:
		return "value." + v.kind.String()
	default:
		return "value." + v.kind.String() + "(" + v.String() + ")"
	}
}
