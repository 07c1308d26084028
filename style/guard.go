package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "sync"

// Guard protects the shared stylesheet data (rules and declaration blocks).
// Styling traversals hold a read guard for their whole duration; stylesheet
// edits hold the write guard. Traversals and edits are therefore mutually
// exclusive phases.
//
// Functions taking a *Guard expect the appropriate side to be held by the
// caller; the guard parameter is the caller's proof of that.
type Guard struct {
	mu sync.RWMutex
}

// NewGuard creates a guard for one document's stylesheet data.
func NewGuard() *Guard {
	return &Guard{}
}

// Read acquires the read side. Multiple readers may hold it concurrently.
func (g *Guard) Read() *Guard {
	g.mu.RLock()
	return g
}

// Done releases the read side.
func (g *Guard) Done() {
	g.mu.RUnlock()
}

// Write acquires the exclusive write side, used for stylesheet edits.
func (g *Guard) Write() *Guard {
	g.mu.Lock()
	return g
}

// EndWrite releases the write side.
func (g *Guard) EndWrite() {
	g.mu.Unlock()
}
