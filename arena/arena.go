// Package arena provides the bump allocator behind auto-free calls.
//
// Objects are appended at a cursor. A scope saves the cursor when it opens
// and, when it closes, reclaims every slot allocated since then in one
// step. There is no collector sweep: anything allocated outside of a scope
// lives until it is freed explicitly.
//
// The arena cannot tell whether an object allocated inside a scope is still
// referenced after the scope closes. Callers must not let scope-local
// objects escape; an escaped object is reclaimed from the arena's point of
// view all the same.
//
// An Arena is not safe for concurrent use.
package arena

import (
	"errors"
	"fmt"
)

// Handle addresses one slot. Slot 0 is reserved so that the zero Handle
// means "no slot".
type Handle int

const NoHandle Handle = 0

var (
	ErrScopeImbalance = errors.New("scope imbalance")
	ErrOutOfMemory    = errors.New("arena capacity exhausted")
)

type slot struct {
	obj  any
	live bool
}

// Marker is a saved cursor position. Markers must be released in the
// reverse order they were taken.
type Marker struct {
	cursor int
	depth  int
	seq    uint64
}

func (m Marker) Cursor() int { return m.cursor }

func (m Marker) Depth() int { return m.depth }

type Stats struct {
	Live          int
	Slots         int
	Peak          int
	Allocs        int
	Frees         int
	Reclaimed     int
	ScopesEntered int
	ScopeDepth    int
}

type Arena struct {
	slots   []slot
	live    int
	scopes  []Marker
	seq     uint64
	limit   int
	stats   Stats
	reclaim func(Handle, any)
}

type Option func(*Arena)

// WithLimit caps the number of live objects. Zero means unlimited.
func WithLimit(n int) Option {
	return func(a *Arena) {
		if n > 0 {
			a.limit = n
		}
	}
}

// WithReclaimHook registers fn to observe every object the arena reclaims,
// whether by scope exit or by Free.
func WithReclaimHook(fn func(h Handle, obj any)) Option {
	return func(a *Arena) {
		a.reclaim = fn
	}
}

func New(opts ...Option) *Arena {
	a := &Arena{slots: make([]slot, 1, 64)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Alloc places obj at the cursor and returns its handle.
func (a *Arena) Alloc(obj any) (Handle, error) {
	if a.limit > 0 && a.live >= a.limit {
		return NoHandle, fmt.Errorf("%w: %d live objects", ErrOutOfMemory, a.live)
	}
	a.slots = append(a.slots, slot{obj: obj, live: true})
	a.live++
	a.stats.Allocs++
	if a.live > a.stats.Peak {
		a.stats.Peak = a.live
	}
	return Handle(len(a.slots) - 1), nil
}

// Get returns the object at h if the slot is still live.
func (a *Arena) Get(h Handle) (any, bool) {
	if h <= NoHandle || int(h) >= len(a.slots) || !a.slots[h].live {
		return nil, false
	}
	return a.slots[h].obj, true
}

// Free reclaims a single slot. Trailing dead slots are trimmed, but never
// below the cursor saved by the innermost open scope.
func (a *Arena) Free(h Handle) bool {
	if _, ok := a.Get(h); !ok {
		return false
	}
	a.release(h)
	a.stats.Frees++

	floor := 1
	if n := len(a.scopes); n > 0 {
		floor = a.scopes[n-1].cursor
	}
	end := len(a.slots)
	for end > floor && !a.slots[end-1].live {
		end--
	}
	clear(a.slots[end:])
	a.slots = a.slots[:end]
	return true
}

// Live is the heap counter: the number of objects allocated and not yet
// reclaimed.
func (a *Arena) Live() int { return a.live }

// Cursor is the index the next allocation will take.
func (a *Arena) Cursor() int { return len(a.slots) }

// Depth is the number of open scopes.
func (a *Arena) Depth() int { return len(a.scopes) }

// EnterScope saves the cursor. Everything allocated until the matching
// ExitScope belongs to the new scope.
func (a *Arena) EnterScope() Marker {
	a.seq++
	m := Marker{cursor: len(a.slots), depth: len(a.scopes) + 1, seq: a.seq}
	a.scopes = append(a.scopes, m)
	a.stats.ScopesEntered++
	return m
}

// ExitScope reclaims every live slot allocated since m was taken and
// restores the cursor. It returns the number of reclaimed objects.
//
// m must be the innermost open scope. Anything else leaves the arena in a
// state the engine cannot reason about, so it panics.
func (a *Arena) ExitScope(m Marker) int {
	n := len(a.scopes)
	if n == 0 {
		panic(fmt.Errorf("%w: exit of scope %d at depth %d without open scope", ErrScopeImbalance, m.seq, m.depth))
	}
	if top := a.scopes[n-1]; top != m {
		panic(fmt.Errorf("%w: exit of scope %d at depth %d while scope %d at depth %d is innermost",
			ErrScopeImbalance, m.seq, m.depth, top.seq, top.depth))
	}

	reclaimed := 0
	for i := len(a.slots) - 1; i >= m.cursor; i-- {
		if a.slots[i].live {
			a.release(Handle(i))
			reclaimed++
		}
	}
	clear(a.slots[m.cursor:])
	a.slots = a.slots[:m.cursor]
	a.scopes = a.scopes[:n-1]
	a.stats.Reclaimed += reclaimed
	return reclaimed
}

func (a *Arena) release(h Handle) {
	s := &a.slots[h]
	s.live = false
	a.live--
	if a.reclaim != nil {
		a.reclaim(h, s.obj)
	}
	s.obj = nil
}

// Each visits every slot after the reserved one, dead or alive, in
// allocation order.
func (a *Arena) Each(fn func(h Handle, obj any, live bool)) {
	for i := 1; i < len(a.slots); i++ {
		fn(Handle(i), a.slots[i].obj, a.slots[i].live)
	}
}

func (a *Arena) Stats() Stats {
	s := a.stats
	s.Live = a.live
	s.Slots = len(a.slots) - 1
	s.ScopeDepth = len(a.scopes)
	return s
}
