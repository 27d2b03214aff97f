package value

// Equal compares a and b structurally. Values of different kinds are never
// equal; vectors compare element by element up to their size, so two
// vectors with different capacities but the same contents are equal.
func Equal(a, b Value) bool {
	return equal(a, b, nil)
}

type vectorPair struct{ a, b *Vector }

// equal tracks the vector pairs already being compared, so a vector that
// contains itself does not recurse forever.
func equal(a, b Value, open map[vectorPair]bool) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindVoid, KindNull:
		return true
	case KindInt, KindBool:
		return a.num == b.num
	case KindText:
		return a.obj.(*Text).s == b.obj.(*Text).s
	case KindVector:
		va, vb := a.obj.(*Vector), b.obj.(*Vector)
		if va == vb {
			return true
		}
		if va.size != vb.size {
			return false
		}
		pair := vectorPair{va, vb}
		if open[pair] {
			return true
		}
		if open == nil {
			open = map[vectorPair]bool{}
		}
		open[pair] = true
		defer delete(open, pair)
		for i := 0; i < va.size; i++ {
			if !equal(va.items[i], vb.items[i], open) {
				return false
			}
		}
		return true
	default:
		panic("exhaustive match")
	}
}
