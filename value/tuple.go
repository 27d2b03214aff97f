package value

import "strings"

// Tuple is the ordered list of actual arguments of one call.
type Tuple []Value

// Equal reports whether t and o have the same arity and pairwise equal
// elements. A shorter tuple never matches a longer one by prefix.
func (t Tuple) Equal(o Tuple) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !Equal(t[i], o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not share the backing array with t.
func (t Tuple) Clone() Tuple {
	if t == nil {
		return Tuple{}
	}
	out := make(Tuple, len(t))
	copy(out, t)
	return out
}

func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
