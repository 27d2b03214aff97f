// Package engine runs ir functions and adds the behaviors their marks ask
// for.
//
// Every call goes through the same dispatch. For a function marked
// Memoize the cache is consulted first and a hit returns without running
// the body. For AutoFree a heap scope is opened around the whole call,
// loop steps included, and closed on every way out. For TailOptimize the
// body was rewritten at registration; its tail self-calls restart the body
// in the same frame, and when the function is also memoized every step
// consults the cache and the final result is stored under every step's
// arguments.
//
//	rt := engine.New(engine.WithLogger(logger))
//	if err := rt.Define(fib, engine.Memoize); err != nil {
//	    ...
//	}
//	res, err := rt.Call("fib", value.Int(30))
//
// A Runtime is single threaded. It must not be used from more than one
// goroutine at a time.
package engine
