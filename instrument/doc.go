// Package instrument holds the passive diagnostics a runtime exposes to the
// code it runs: a millisecond clock, a printer for program output and the
// state snapshot written by logState.
//
// Nothing in this package changes the heap counter or moves the clock when
// it is read.
package instrument
