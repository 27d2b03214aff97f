package value

import "github.com/on-the-ground/rvm_ive_go/arena"

// Freeze returns a copy of v that later changes to v cannot reach. Vectors
// are copied deeply into vectors whose capacity equals their size, so Add
// on a frozen vector always fails. Text is immutable and stays shared.
// The copy is not backed by an arena slot.
func Freeze(v Value) Value {
	return freeze(v, nil)
}

// Freeze returns a tuple of frozen copies of t's elements.
func (t Tuple) Freeze() Tuple {
	out := make(Tuple, len(t))
	var done map[*Vector]*Vector
	for i, v := range t {
		if v.kind == KindVector && done == nil {
			done = map[*Vector]*Vector{}
		}
		out[i] = freeze(v, done)
	}
	return out
}

// freeze maps every source vector to its copy, so shared and
// self-containing vectors keep their shape.
func freeze(v Value, done map[*Vector]*Vector) Value {
	if v.kind != KindVector {
		return v
	}
	src := v.obj.(*Vector)
	if done == nil {
		done = map[*Vector]*Vector{}
	}
	if cp, ok := done[src]; ok {
		return Value{kind: KindVector, obj: cp, ref: arena.NoHandle}
	}
	cp := &Vector{items: make([]Value, src.size), size: src.size}
	done[src] = cp
	for i, item := range src.items[:src.size] {
		cp.items[i] = freeze(item, done)
	}
	return Value{kind: KindVector, obj: cp, ref: arena.NoHandle}
}
