// Package value defines the tagged values the runtime passes around.
//
// A Value is either a primitive (void, null, int, bool, static text) held
// inline, or a reference to a heap object (*Text, *Vector) that the engine
// has registered with an arena. Equality is always structural:
//
//	Equal(Int(3), Int(3))                     // true
//	Equal(Str("a"), FromObject(NewText("a"), h)) // true, text compares by content
//
// Memo lookups depend on this, so there is no identity comparison anywhere
// in the package.
package value
