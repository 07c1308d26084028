package styledtree_test

import (
	"sync"
	"testing"

	"github.com/npillmayer/cascade/styledtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func TestFlagsFromRelationsTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.styledtree")
	defer teardown()
	cases := []struct {
		name   string
		rel    styledtree.SelectorRelations
		child  styledtree.ElementFlags
		parent styledtree.ElementFlags
	}{
		{"empty", styledtree.AffectedByEmpty, styledtree.HasEmptySelector, 0},
		{"nth-last-child", styledtree.AffectedByNthLastChild, 0, styledtree.HasSlowSelector},
		{"last-of-type", styledtree.AffectedByLastOfType, 0, styledtree.HasSlowSelector},
		{"nth-last-of-type", styledtree.AffectedByNthLastOfType, 0, styledtree.HasSlowSelector},
		{"only-of-type", styledtree.AffectedByOnlyOfType, 0, styledtree.HasSlowSelector},
		{"first-child", styledtree.AffectedByFirstChild, 0, styledtree.HasEdgeChildSelector},
		{"last-child", styledtree.AffectedByLastChild, 0, styledtree.HasEdgeChildSelector},
		{"only-child", styledtree.AffectedByOnlyChild, 0, styledtree.HasEdgeChildSelector},
		{"nth-child", styledtree.AffectedByNthChild, 0, styledtree.HasSlowSelectorLaterSiblings},
		{"first-of-type", styledtree.AffectedByFirstOfType, 0, styledtree.HasSlowSelectorLaterSiblings},
		{"nth-of-type", styledtree.AffectedByNthOfType, 0, styledtree.HasSlowSelectorLaterSiblings},
	}
	for _, c := range cases {
		child, parent := styledtree.FlagsFromRelations(c.rel)
		if child != c.child {
			t.Errorf("%s: expected child flags %s, got %s", c.name, c.child, child)
		}
		if parent != c.parent {
			t.Errorf("%s: expected parent flags %s, got %s", c.name, c.parent, parent)
		}
		if rel := styledtree.RelationsForPseudoClass(c.name); rel != c.rel {
			t.Errorf("%s: expected relation bit roundtrip, got %#x", c.name, rel)
		}
	}
	// relations combine; the flag sets stay disjoint
	child, parent := styledtree.FlagsFromRelations(styledtree.AffectedByEmpty | styledtree.AffectedByNthChild)
	if child != styledtree.HasEmptySelector || parent != styledtree.HasSlowSelectorLaterSiblings {
		t.Errorf("combined relations map wrongly: child %s, parent %s", child, parent)
	}
}

func TestAddFlagsIsAtomic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.styledtree")
	defer teardown()
	sn := styledtree.Node(styledtree.NewNodeForHTMLNode(&html.Node{Type: html.ElementNode, Data: "div"}))
	flags := []styledtree.ElementFlags{
		styledtree.HasSlowSelector,
		styledtree.HasSlowSelectorLaterSiblings,
		styledtree.HasEdgeChildSelector,
		styledtree.HasEmptySelector,
	}
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		f := flags[i%len(flags)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			sn.AddFlags(f)
		}()
	}
	wg.Wait()
	for _, f := range flags {
		if !sn.Flags().Contains(f) {
			t.Errorf("lost flag update for %s", f)
		}
	}
}

func TestStylesPanicsWhenUnstyled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.styledtree")
	defer teardown()
	defer func() {
		if recover() == nil {
			t.Error("expected Styles() on an unstyled node to panic")
		}
	}()
	sn := styledtree.Node(styledtree.NewNodeForHTMLNode(&html.Node{Type: html.ElementNode, Data: "div"}))
	sn.Styles()
}
