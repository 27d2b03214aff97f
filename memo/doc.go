// Package memo holds the result cache of memoized functions.
//
// Each function gets one Table: a singly linked chain of entries, newest
// first. A lookup walks the chain and compares argument tuples by value;
// tuples of another arity are skipped, never matched by prefix. The walk is
// linear in the number of distinct tuples seen. That is the known scaling
// limit of the chain, so a Table may also keep a fingerprint index that
// gives the same answers in fewer comparisons.
//
// Tables never expire entries and never signal errors: a tuple that does
// not match anything is simply a miss.
//
// WARNING: memoize only functions whose result depends on nothing but
// their arguments. A cache hit skips the body and every side effect in it.
package memo
