package styledtree_test

import (
	"testing"

	"github.com/npillmayer/cascade/styledtree"
	"github.com/npillmayer/cascade/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func elem(name string) *tree.Node[*styledtree.StyNode] {
	return styledtree.NewNodeForHTMLNode(&html.Node{Type: html.ElementNode, Data: name})
}

func buildParentWithChildren(n int) (*styledtree.StyNode, []*styledtree.StyNode) {
	p := elem("ul")
	children := make([]*styledtree.StyNode, n)
	for i := 0; i < n; i++ {
		ch := elem("li")
		p.AddChild(ch)
		children[i] = ch.Payload
	}
	return p.Payload, children
}

func contains(nodes []*styledtree.StyNode, sn *styledtree.StyNode) bool {
	for _, n := range nodes {
		if n == sn {
			return true
		}
	}
	return false
}

func TestChildMutationSlowSelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.styledtree")
	defer teardown()
	parent, children := buildParentWithChildren(4)
	parent.AddFlags(styledtree.HasSlowSelector)
	restyle := styledtree.ChildInsertedOrRemoved(parent, 2)
	if len(restyle) != 4 {
		t.Fatalf("expected all 4 children to restyle, got %d", len(restyle))
	}
	for _, ch := range children {
		if !contains(restyle, ch) {
			t.Error("expected every child in the restyle set")
		}
	}
}

func TestChildMutationLaterSiblings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.styledtree")
	defer teardown()
	parent, children := buildParentWithChildren(4)
	parent.AddFlags(styledtree.HasSlowSelectorLaterSiblings)
	restyle := styledtree.ChildInsertedOrRemoved(parent, 2)
	if contains(restyle, children[0]) || contains(restyle, children[1]) {
		t.Error("expected earlier siblings to be untouched")
	}
	if !contains(restyle, children[2]) || !contains(restyle, children[3]) {
		t.Error("expected later siblings in the restyle set")
	}
}

func TestChildMutationEdgeChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.styledtree")
	defer teardown()
	parent, children := buildParentWithChildren(4)
	parent.AddFlags(styledtree.HasEdgeChildSelector)
	restyle := styledtree.ChildInsertedOrRemoved(parent, 1)
	if len(restyle) != 2 {
		t.Fatalf("expected exactly first and last child, got %d nodes", len(restyle))
	}
	if !contains(restyle, children[0]) || !contains(restyle, children[3]) {
		t.Error("expected first and last child in the restyle set")
	}
}

func TestChildMutationEmptySelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.styledtree")
	defer teardown()
	parent, _ := buildParentWithChildren(1)
	parent.AddFlags(styledtree.HasEmptySelector)
	restyle := styledtree.ChildInsertedOrRemoved(parent, 0)
	if !contains(restyle, parent) {
		t.Error("expected the element itself to restyle when matched via :empty")
	}
}

func TestChildMutationNoFlags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.styledtree")
	defer teardown()
	parent, _ := buildParentWithChildren(3)
	if restyle := styledtree.ChildInsertedOrRemoved(parent, 0); len(restyle) != 0 {
		t.Errorf("expected no restyles without flags, got %d", len(restyle))
	}
}

func TestUnstyleClearsSubtree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.styledtree")
	defer teardown()
	parent, children := buildParentWithChildren(2)
	parent.AddFlags(styledtree.HasSlowSelector)
	children[0].AddFlags(styledtree.HasEmptySelector)
	parent.Unstyle()
	if parent.Flags() != 0 || children[0].Flags() != 0 {
		t.Error("expected bulk unstyle to clear all flags in the subtree")
	}
	if parent.IsStyled() {
		t.Error("expected unstyled node to report no styles")
	}
}
