package value

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash writes a canonical encoding of v into d.
// Equal values always produce the same bytes.
func Hash(d *xxhash.Digest, v Value) {
	hash(d, v, true)
}

// HashTuple fingerprints an argument tuple including its arity.
func HashTuple(t Tuple) uint64 {
	d := xxhash.New()
	writeUint(d, uint64(len(t)))
	for _, v := range t {
		hash(d, v, true)
	}
	return d.Sum64()
}

// hash descends one level into vectors. Nested vectors contribute their
// length only, which keeps the encoding finite for self-containing vectors
// and still agrees with Equal.
func hash(d *xxhash.Digest, v Value, descend bool) {
	_, _ = d.Write([]byte{byte(v.kind)})
	switch v.kind {
	case KindVoid, KindNull:
	case KindInt, KindBool:
		writeUint(d, uint64(v.num))
	case KindText:
		s := v.obj.(*Text).s
		writeUint(d, uint64(len(s)))
		_, _ = d.WriteString(s)
	case KindVector:
		vec := v.obj.(*Vector)
		writeUint(d, uint64(vec.size))
		if !descend {
			return
		}
		for _, item := range vec.items[:vec.size] {
			hash(d, item, false)
		}
	default:
		panic("exhaustive match")
	}
}

func writeUint(d *xxhash.Digest, n uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	_, _ = d.Write(buf[:])
}
