package ruletree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync/atomic"

	tp "github.com/xlab/treeprint"
)

// DebugString renders the current shape of the rule tree, including
// reference counts, for debugging and test output.
func (t *Tree) DebugString() string {
	p := tp.New()
	ppn(p, t.root)
	return p.String()
}

func ppn(p tp.Tree, node *Node) {
	node.mu.Lock()
	children := make([]*Node, 0, len(node.children))
	for _, ch := range node.children {
		children = append(children, ch)
	}
	node.mu.Unlock()
	if len(children) == 0 {
		p.AddNode(nodeLabel(node))
		return
	}
	branch := p.AddBranch(nodeLabel(node))
	for _, ch := range children {
		ppn(branch, ch)
	}
}

func nodeLabel(node *Node) string {
	if node.IsRoot() {
		return fmt.Sprintf("root ⟨%d⟩", atomic.LoadInt32(&node.refs))
	}
	return fmt.Sprintf("%v ⟨%d⟩", node.source, atomic.LoadInt32(&node.refs))
}
