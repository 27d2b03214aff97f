package value

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVectorFull      = errors.New("vector is full")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNegativeCap     = errors.New("negative vector capacity")
	ErrCapTooLarge     = errors.New("vector capacity too large")
)

// MaxVectorCap bounds the capacity a single vector may ask for.
const MaxVectorCap = 1 << 24

// Object is a heap-allocated value body.
// Only the types in this package implement it.
type Object interface {
	Kind() Kind
	String() string
	sealedObject()
}

var _ Object = (*Text)(nil)

// Text is an immutable string body.
type Text struct {
	s string
}

func NewText(s string) *Text { return &Text{s: s} }

func (*Text) Kind() Kind       { return KindText }
func (t *Text) String() string { return t.s }
func (*Text) sealedObject()    {}

var _ Object = (*Vector)(nil)

// Vector is a fixed-capacity, append-only indexed container.
type Vector struct {
	items []Value
	size  int
}

func NewVector(capacity int) (*Vector, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCap, capacity)
	}
	if capacity > MaxVectorCap {
		return nil, fmt.Errorf("%w: %d, limit %d", ErrCapTooLarge, capacity, MaxVectorCap)
	}
	return &Vector{items: make([]Value, capacity)}, nil
}

func (*Vector) Kind() Kind    { return KindVector }
func (*Vector) sealedObject() {}

// Add appends v. It fails once the vector reached its capacity.
func (vec *Vector) Add(v Value) error {
	if vec.size == len(vec.items) {
		return fmt.Errorf("%w: capacity %d", ErrVectorFull, len(vec.items))
	}
	vec.items[vec.size] = v
	vec.size++
	return nil
}

func (vec *Vector) Get(idx int) (Value, error) {
	if idx < 0 || idx >= vec.size {
		return Value{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, vec.size)
	}
	return vec.items[idx], nil
}

func (vec *Vector) Len() int { return vec.size }

func (vec *Vector) Cap() int { return len(vec.items) }

// Items returns a copy of the filled part of the vector.
func (vec *Vector) Items() []Value {
	out := make([]Value, vec.size)
	copy(out, vec.items[:vec.size])
	return out
}

func (vec *Vector) String() string {
	var sb strings.Builder
	vec.render(&sb, map[*Vector]bool{})
	return sb.String()
}

func (vec *Vector) render(sb *strings.Builder, open map[*Vector]bool) {
	if open[vec] {
		sb.WriteString("[...]")
		return
	}
	open[vec] = true
	defer delete(open, vec)

	sb.WriteByte('[')
	for i, item := range vec.items[:vec.size] {
		if i > 0 {
			sb.WriteString(", ")
		}
		if inner, ok := item.AsVector(); ok {
			inner.render(sb, open)
			continue
		}
		sb.WriteString(item.String())
	}
	sb.WriteByte(']')
}
