// Package programs holds the demo programs shipped with rvm, written
// directly as ir trees: a memoized naive Fibonacci, an allocation loop run
// with and without auto-free, and a tail-recursive Fibonacci run with and
// without the loop rewrite.
//
// Each demo has a main function that times or measures both variants with
// tick and heapSize, prints a one-line summary and dumps the runtime state.
package programs
