package engine

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "strings"

// TraversalFlags is a bit-set of independent toggles for one traversal
// invocation. Any combination is legal; the flags are read-only for the
// duration of the traversal.
type TraversalFlags uint32

const (
	// AnimationOnly restricts the traversal to animation restyles.
	AnimationOnly TraversalFlags = 1 << iota

	// ForCSSRuleChanges marks a traversal triggered by stylesheet edits.
	// Cached applicable declarations are dropped up front, since the rules
	// they were computed from may have changed.
	ForCSSRuleChanges

	// FinalAnimationTraversal marks the last animation traversal of a tick.
	FinalAnimationTraversal

	// ParallelTraversal requests distribution of the work across the pool's
	// workers. Without it (or on a pool without workers) the traversal runs
	// sequentially.
	ParallelTraversal

	// FlushThrottledAnimations forces throttled animations to be flushed.
	FlushThrottledAnimations
)

// Contains checks whether all bits of other are set in f.
func (f TraversalFlags) Contains(other TraversalFlags) bool {
	return f&other == other
}

func (f TraversalFlags) String() string {
	var names []string
	for _, b := range [...]struct {
		flag TraversalFlags
		name string
	}{
		{AnimationOnly, "animation-only"},
		{ForCSSRuleChanges, "for-css-rule-changes"},
		{FinalAnimationTraversal, "final-animation-traversal"},
		{ParallelTraversal, "parallel"},
		{FlushThrottledAnimations, "flush-throttled-animations"},
	} {
		if f.Contains(b.flag) {
			names = append(names, b.name)
		}
	}
	if len(names) == 0 {
		return "[]"
	}
	return "[" + strings.Join(names, "|") + "]"
}
