package arena

// Scope ties a marker to its arena so it can be released with a deferred
// Close.
//
// A Scope belongs to the call that opened it. It is not meant to be handed
// to another call or goroutine.
type Scope struct {
	arena     *Arena
	marker    Marker
	reclaimed int
	closed    bool
}

// Enter opens a scope on a.
//
//	scope := a.Enter()
//	defer scope.Close()
func (a *Arena) Enter() *Scope {
	return &Scope{arena: a, marker: a.EnterScope()}
}

func (s *Scope) Marker() Marker { return s.marker }

// Close releases the scope once. Later calls return the count of the first.
func (s *Scope) Close() int {
	if !s.closed {
		s.reclaimed = s.arena.ExitScope(s.marker)
		s.closed = true
	}
	return s.reclaimed
}
