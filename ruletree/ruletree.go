package ruletree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync"
	"sync/atomic"

	"github.com/npillmayer/cascade/style"
)

// Tree is the rule tree of one document. It is shared, mutable and
// concurrently accessed: styling workers insert cascade paths while other
// workers do the same. All mutation goes through the insert-or-get protocol
// of Insert; nothing else writes to the tree during a traversal.
type Tree struct {
	root *Node
}

// New creates a rule tree, consisting of just the root node. The root
// represents "no rules matched" and carries no style source.
func New() *Tree {
	t := &Tree{}
	t.root = &Node{}
	return t
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Node is a node of the rule tree. The path root→node is a cascade chain;
// the node's style source is the rule (or declaration block) this node adds
// on top of its parent's chain.
//
// Nodes are jointly owned by their children (every non-root node holds one
// strong reference to its parent) and by every element handle currently
// pointing at them. A node whose reference count drops to zero is unlinked
// from its parent eagerly and will not be returned by later lookups.
type Node struct {
	parent   *Node
	source   StyleSource
	mu       sync.Mutex          // guards children
	children map[sourceKey]*Node // child dedup map, keyed by source identity
	refs     int32               // atomic; element handles + child nodes + insertion pins
}

// Insert resolves an ordered list of style sources (cascade order, least to
// most specific) to the rule node representing exactly that chain. Starting
// at the root, each source either descends to an existing child or links a
// new one in; concurrent insertion of the same suffix from several workers
// yields the same nodes.
//
// The returned node carries one reference owned by the caller, to be given
// up with Release. Inserting an empty list returns the root.
func (t *Tree) Insert(sources []StyleSource) *Node {
	cur := t.root
	cur.Retain()
	for _, s := range sources {
		if s.IsNull() {
			panic("ruletree: cannot insert null style source")
		}
		next := cur.ensureChild(s) // returned pinned
		cur.Release()
		cur = next
	}
	return cur
}

// ensureChild is the insert-or-get primitive of the tree, the one place
// where true concurrent mutation happens. The child map is protected by a
// per-node lock, held for the duration of one map access only.
//
// The returned child is pinned (its count incremented) while still under
// the lock, so a concurrent Release of its last reference cannot unlink it
// between lookup and use.
func (node *Node) ensureChild(s StyleSource) *Node {
	key := s.key()
	node.mu.Lock()
	defer node.mu.Unlock()
	if node.children == nil {
		node.children = make(map[sourceKey]*Node)
	}
	if ch, ok := node.children[key]; ok {
		atomic.AddInt32(&ch.refs, 1) // pin
		return ch
	}
	ch := &Node{parent: node, source: s, refs: 1} // born pinned
	node.children[key] = ch
	atomic.AddInt32(&node.refs, 1) // child holds a strong reference to its parent
	tracer().Debugf("rule tree grows by node for %v", s)
	return ch
}

// Retain takes one reference to the node.
func (node *Node) Retain() *Node {
	atomic.AddInt32(&node.refs, 1)
	return node
}

// Release gives up one reference to the node. When the last reference is
// gone the node is pruned: unlinked from its parent's child map, which in
// turn releases the parent. Pruning is eager, but a pruned node is inert;
// holders of stale pointers see an empty subtree, never a recycled node.
func (node *Node) Release() {
	refs := atomic.AddInt32(&node.refs, -1)
	if refs < 0 {
		panic("ruletree: released an unreferenced rule node")
	}
	if refs == 0 {
		node.prune()
	}
}

// prune unlinks a dead node from its parent. The parent's child-map lock
// serializes pruning against ensureChild: if a concurrent insertion revived
// the node since the count dropped to zero, pruning backs off.
func (node *Node) prune() {
	parent := node.parent
	if parent == nil {
		return // the root is never pruned
	}
	unlinked := false
	parent.mu.Lock()
	if atomic.LoadInt32(&node.refs) == 0 {
		delete(parent.children, node.source.key())
		unlinked = true
	}
	parent.mu.Unlock()
	if unlinked {
		tracer().Debugf("rule tree pruned node for %v", node.source)
		parent.Release() // give up the child→parent reference
	}
}

// Parent returns the parent node, or nil for the root.
func (node *Node) Parent() *Node {
	return node.parent
}

// Source returns the style source this node adds on top of its parent.
// The root's source is the null source.
func (node *Node) Source() StyleSource {
	return node.source
}

// IsRoot is true for the root node of a tree.
func (node *Node) IsRoot() bool {
	return node.parent == nil
}

// ChildCount returns the current number of children of the node.
func (node *Node) ChildCount() int {
	node.mu.Lock()
	defer node.mu.Unlock()
	return len(node.children)
}

// Property reads the computed value for a property key from the cascade
// chain of the node.
//
// The walk is leaf→root in two passes: first over the important partition,
// then over the normal one. The first hit wins per pass, and the important
// pass wins over the normal pass. Within one pass, leaf-ward nodes are
// later in the cascade and override root-ward ones.
func (node *Node) Property(key string, g *style.Guard) (style.Property, bool) {
	for _, important := range [2]bool{true, false} {
		for n := node; n != nil && !n.source.IsNull(); n = n.parent {
			if p, ok := n.source.Read(g).Lookup(key, important); ok {
				return p, true
			}
		}
	}
	return style.NullStyle, false
}

// CascadedProperties materializes the full property map of the node's
// cascade chain, resolving every key declared anywhere on the path with the
// same partition rules as Property.
func (node *Node) CascadedProperties(g *style.Guard) *style.PropertyMap {
	var path []*Node
	for n := node; n != nil && !n.source.IsNull(); n = n.parent {
		path = append(path, n)
	}
	pmap := style.NewPropertyMap()
	for _, important := range [2]bool{false, true} {
		for i := len(path) - 1; i >= 0; i-- { // root→leaf, later wins
			decls := path[i].source.Read(g)
			for _, key := range decls.Properties() {
				if p, ok := decls.Lookup(key, important); ok {
					pmap.Set(key, p)
				}
			}
		}
	}
	return pmap
}
