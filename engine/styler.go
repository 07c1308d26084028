package engine

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/cascade/cssom"
	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/styledtree"
	"github.com/npillmayer/cascade/tree"
)

// Styler bundles everything one document needs for styling: the worker
// pool, the rule tree, the stylesheet guard, the device, and the stylist.
// It wires the device's resize notification to the pool's cache eviction.
type Styler struct {
	pool    *Pool
	rules   *ruletree.Tree
	stylist Stylist
	device  *cssom.Device
	guard   *style.Guard
}

// NewStyler creates a styler for one document. The device may be nil for
// media-independent styling (no resize eviction is wired then).
func NewStyler(pool *Pool, device *cssom.Device, guard *style.Guard, stylist Stylist) *Styler {
	s := &Styler{
		pool:    pool,
		rules:   ruletree.New(),
		stylist: stylist,
		device:  device,
		guard:   guard,
	}
	if device != nil {
		device.NotifyOnResize(pool.EvictCaches)
	}
	return s
}

// RuleTree returns the document's rule tree.
func (s *Styler) RuleTree() *ruletree.Tree {
	return s.rules
}

// Pool returns the styler's worker pool.
func (s *Styler) Pool() *Pool {
	return s.pool
}

// Style runs one styling traversal over the element tree below root. It
// takes the read guard over the stylesheet data for the duration of the
// traversal, making styling and stylesheet edits mutually exclusive phases.
func (s *Styler) Style(root *tree.Node[*styledtree.StyNode], flags TraversalFlags) error {
	g := s.guard.Read()
	defer g.Done()
	return s.pool.Traverse(flags, root, s.stylist, s.rules, g)
}
