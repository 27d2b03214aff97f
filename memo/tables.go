package memo

import (
	"sort"

	"github.com/on-the-ground/rvm_ive_go/value"
)

// Tables keeps one Table per memoized function, created on first use.
type Tables struct {
	indexed bool
	byName  map[string]*Table
}

func NewTables(indexed bool) *Tables {
	return &Tables{indexed: indexed, byName: make(map[string]*Table)}
}

// For returns the table of the named function, creating it if needed.
func (ts *Tables) For(name string) *Table {
	t, ok := ts.byName[name]
	if !ok {
		t = NewTable(name, ts.indexed)
		ts.byName[name] = t
	}
	return t
}

// Lookup returns the table of the named function without creating it.
func (ts *Tables) Lookup(name string) (*Table, bool) {
	t, ok := ts.byName[name]
	return t, ok
}

func (ts *Tables) Len() int { return len(ts.byName) }

// Each visits tables in name order.
func (ts *Tables) Each(fn func(*Table)) {
	names := make([]string, 0, len(ts.byName))
	for name := range ts.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fn(ts.byName[name])
	}
}

// Func is the shape of a call the cache can sit in front of.
type Func func(args value.Tuple) (value.Value, error)

// Wrap puts t in front of fn: a hit returns the stored result without
// calling fn, a miss calls fn and stores what it returned. Failed calls
// are not stored.
//
//	var fib memo.Func
//	fib = memo.Wrap(table, func(args value.Tuple) (value.Value, error) {
//	    ... fib(value.Tuple{value.Int(n - 1)}) ...
//	})
func Wrap(t *Table, fn Func) Func {
	return func(args value.Tuple) (value.Value, error) {
		if res, ok := t.Lookup(args); ok {
			return res, nil
		}
		res, err := fn(args)
		if err != nil {
			return res, err
		}
		t.Insert(args, res)
		return res, nil
	}
}
