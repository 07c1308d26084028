package engine

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/cascade/style"
)

// Size of the bounded window of style sharing candidates per worker.
const styleSharingCandidateCacheSize = 31

// workerCache is one slot of the scoped per-worker cache array. Each worker
// owns exactly one slot, accessed through its stable worker index, so slots
// are never contended. Slots initialize lazily on first use within a
// traversal.
type workerCache struct {
	decls   *ApplicableDeclarationsCache
	sharing *StyleSharingCandidateCache
}

// ensureWorkerCache returns the cache slot for a worker, initializing it on
// first use.
func (p *Pool) ensureWorkerCache(wno int) *workerCache {
	c := &p.caches[wno]
	if c.decls == nil {
		c.decls = &ApplicableDeclarationsCache{}
		c.sharing = &StyleSharingCandidateCache{}
	}
	return c
}

func (c *workerCache) evict() {
	if c.decls != nil {
		c.decls.EvictAll()
		c.sharing.clear()
	}
}

// ApplicableDeclarationsCache maps a rule node to the property map
// materialized from its cascade chain. Identical rule nodes resolve to
// identical cascades, so the map may be reused verbatim (modulo
// inheritance, which is handled by the sharing cache on top).
//
// A miss is never an error; the fallback recomputes from the rule tree.
type ApplicableDeclarationsCache struct {
	entries map[*ruletree.Node]*style.PropertyMap
}

// Lookup returns the cached property map for a rule node, or nil.
func (c *ApplicableDeclarationsCache) Lookup(rnode *ruletree.Node) *style.PropertyMap {
	return c.entries[rnode]
}

// Insert caches the property map for a rule node.
func (c *ApplicableDeclarationsCache) Insert(rnode *ruletree.Node, styles *style.PropertyMap) {
	if c.entries == nil {
		c.entries = make(map[*ruletree.Node]*style.PropertyMap)
	}
	c.entries[rnode] = styles
}

// EvictAll drops every cached entry. Called on viewport resize, when cached
// declarations may embed stale viewport-relative lengths.
func (c *ApplicableDeclarationsCache) EvictAll() {
	c.entries = nil
}

// StyleSharingCandidateCache holds a bounded window of recently styled
// elements. A newly matched element with an identical rule node and an
// identical inheritance-relevant parent style may reuse a candidate's
// computed style wholesale, skipping property computation.
//
// Candidates have, by the breadth-first scheduling contract, been styled
// strictly before the element under consideration, so their styles are
// fully computed.
type StyleSharingCandidateCache struct {
	candidates [styleSharingCandidateCacheSize]sharingCandidate
	next       int
	filled     int
}

type sharingCandidate struct {
	rnode        *ruletree.Node
	parentStyles *style.PropertyMap
	styles       *style.PropertyMap
}

// Lookup searches the window for a candidate with the same rule node and
// the same parent style. Returns the shareable computed style or nil.
func (c *StyleSharingCandidateCache) Lookup(rnode *ruletree.Node, parentStyles *style.PropertyMap) *style.PropertyMap {
	for i := 0; i < c.filled; i++ {
		cand := &c.candidates[i]
		if cand.rnode == rnode && cand.parentStyles == parentStyles {
			return cand.styles
		}
	}
	return nil
}

// Insert records a styled element as a sharing candidate, evicting the
// oldest entry once the window is full.
func (c *StyleSharingCandidateCache) Insert(rnode *ruletree.Node, parentStyles, styles *style.PropertyMap) {
	c.candidates[c.next] = sharingCandidate{rnode: rnode, parentStyles: parentStyles, styles: styles}
	c.next = (c.next + 1) % styleSharingCandidateCacheSize
	if c.filled < styleSharingCandidateCacheSize {
		c.filled++
	}
}

func (c *StyleSharingCandidateCache) clear() {
	c.next, c.filled = 0, 0
}
