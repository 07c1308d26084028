package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync/atomic"

	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/tree"
	"golang.org/x/net/html"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	htmlNode            *html.Node
	ruleNode            *ruletree.Node // owned reference into the rule tree
	computedStyles      *style.PropertyMap
	flags               uint32 // atomic ElementFlags bits
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(html *html.Node) *tree.Node[*StyNode] {
	sn := &StyNode{}
	sn.Payload = sn // Payload will always reference the node itself
	sn.htmlNode = html
	return &sn.Node
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// ParentNode returns the styled node of the parent element, or nil for the
// root of the styled tree.
func (sn *StyNode) ParentNode() *StyNode {
	p := sn.Parent()
	if p == nil {
		return nil
	}
	return p.Payload
}

// IsStyled returns true once a traversal has assigned a style to the node.
func (sn *StyNode) IsStyled() bool {
	return sn.computedStyles != nil
}

// Styles returns the resolved styling properties of a styled node.
//
// Requesting styles before any traversal assigned them is a broken
// invariant, not recoverable input, and panics.
func (sn *StyNode) Styles() *style.PropertyMap {
	if sn.computedStyles == nil {
		panic("styledtree: computed style requested before style was assigned")
	}
	return sn.computedStyles
}

// RuleNode returns the rule-tree node the element's matched rules resolved
// to. It is nil before the first styling.
func (sn *StyNode) RuleNode() *ruletree.Node {
	return sn.ruleNode
}

// SetStyles stores the outcome of styling one element: the rule node (the
// reference is handed over to the styled node) and the materialized
// property map. A previously held rule node is released.
func (sn *StyNode) SetStyles(rnode *ruletree.Node, styles *style.PropertyMap) {
	old := sn.ruleNode
	sn.ruleNode = rnode
	sn.computedStyles = styles
	if old != nil {
		old.Release()
	}
}

// Flags returns the element's current invalidation flags.
func (sn *StyNode) Flags() ElementFlags {
	return ElementFlags(atomic.LoadUint32(&sn.flags))
}

// AddFlags merges flags onto the element. The merge is an atomic
// read-modify-write: during a parallel traversal a parent element receives
// flag merges concurrently from sibling sub-trees, and a lost update here
// silently breaks future incremental invalidation.
func (sn *StyNode) AddFlags(f ElementFlags) {
	if f == 0 {
		return
	}
	for {
		old := atomic.LoadUint32(&sn.flags)
		if old&uint32(f) == uint32(f) {
			return
		}
		if atomic.CompareAndSwapUint32(&sn.flags, old, old|uint32(f)) {
			return
		}
	}
}

// Unstyle clears the node's style, flags and rule-node reference, and does
// so recursively for the whole subtree. Individual flags are never cleared;
// this bulk teardown is the only way flags go away.
func (sn *StyNode) Unstyle() {
	atomic.StoreUint32(&sn.flags, 0)
	sn.computedStyles = nil
	if sn.ruleNode != nil {
		sn.ruleNode.Release()
		sn.ruleNode = nil
	}
	for _, ch := range sn.Children(true) {
		ch.Payload.Unstyle()
	}
}
