package memo

import (
	"github.com/on-the-ground/rvm_ive_go/value"
)

// Entry is one cached call. The argument tuple is a frozen private copy.
type Entry struct {
	args   value.Tuple
	result value.Value
	next   *Entry
}

func (e *Entry) Args() value.Tuple { return e.args.Clone() }

func (e *Entry) Result() value.Value { return e.result }

// Next is the entry inserted before e, or nil at the end of the chain.
func (e *Entry) Next() *Entry { return e.next }

func (e *Entry) matches(args value.Tuple) bool {
	// a different arity is "no match, keep going", not an error
	if len(e.args) != len(args) {
		return false
	}
	return e.args.Equal(args)
}

type Stats struct {
	Entries int
	Hits    int
	Misses  int
}

// Table is the cache of a single function.
type Table struct {
	name  string
	head  *Entry
	size  int
	index map[uint64][]*Entry

	hits   int
	misses int
}

// NewTable creates an empty table. With indexed set, entries are also
// bucketed by tuple fingerprint; lookups then compare only the tuples in
// one bucket, newest first, and return what the chain walk would.
func NewTable(name string, indexed bool) *Table {
	t := &Table{name: name}
	if indexed {
		t.index = make(map[uint64][]*Entry)
	}
	return t
}

func (t *Table) Name() string { return t.name }

// Lookup returns the result stored for the newest entry whose tuple equals
// args.
func (t *Table) Lookup(args value.Tuple) (value.Value, bool) {
	if e := t.find(args); e != nil {
		t.hits++
		return e.result, true
	}
	t.misses++
	return value.Value{}, false
}

func (t *Table) find(args value.Tuple) *Entry {
	if t.index != nil {
		bucket := t.index[value.HashTuple(args)]
		for i := len(bucket) - 1; i >= 0; i-- {
			if bucket[i].matches(args) {
				return bucket[i]
			}
		}
		return nil
	}
	for e := t.head; e != nil; e = e.next {
		if e.matches(args) {
			return e
		}
	}
	return nil
}

// Insert links a new entry at the head of the chain. Duplicates are not
// checked for; a later lookup finds the newer one first.
func (t *Table) Insert(args value.Tuple, result value.Value) {
	e := &Entry{args: args.Freeze(), result: result, next: t.head}
	t.head = e
	t.size++
	if t.index != nil {
		h := value.HashTuple(e.args)
		t.index[h] = append(t.index[h], e)
	}
}

// Head is the newest entry.
func (t *Table) Head() *Entry { return t.head }

func (t *Table) Len() int { return t.size }

func (t *Table) Stats() Stats {
	return Stats{Entries: t.size, Hits: t.hits, Misses: t.misses}
}
