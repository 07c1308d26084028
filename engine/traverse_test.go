package engine

import (
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/cascade/cssom"
	"github.com/npillmayer/cascade/cssom/douceuradapter"
	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/styledtree"
	"github.com/npillmayer/cascade/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"golang.org/x/net/html"
)

// nullStylist matches nothing; every element resolves to the rule-tree root.
type nullStylist struct{}

func (nullStylist) MatchStyles(sn *styledtree.StyNode, g *style.Guard) (
	[]ruletree.StyleSource, styledtree.SelectorRelations) {
	return nil, 0
}

func elemNode(name string) *tree.Node[*styledtree.StyNode] {
	return styledtree.NewNodeForHTMLNode(&html.Node{Type: html.ElementNode, Data: name})
}

// buildThreeLevels returns a tree root → 2 children → 4 grandchildren.
func buildThreeLevels() *tree.Node[*styledtree.StyNode] {
	root := elemNode("root")
	for i := 0; i < 2; i++ {
		ch := elemNode("child")
		root.AddChild(ch)
		for j := 0; j < 2; j++ {
			ch.AddChild(elemNode("grandchild"))
		}
	}
	return root
}

func TestTraverseEmptyTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.engine")
	defer teardown()
	pool := EnsurePool(2)
	err := pool.Traverse(0, nil, nullStylist{}, ruletree.New(), style.NewGuard())
	if err != ErrEmptyTree {
		t.Errorf("expected ErrEmptyTree, got %v", err)
	}
}

func TestTraverseBreadthFirstScheduling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.engine")
	defer teardown()
	pool := EnsurePool(2)
	if pool.Workers() != 2 {
		t.Fatalf("expected a 2-worker pool, got %d", pool.Workers())
	}
	var mu sync.Mutex
	var started []int // depths, in styling start order
	pool.visited = func(depth, wno int, sn *styledtree.StyNode) {
		mu.Lock()
		started = append(started, depth)
		mu.Unlock()
	}
	root := buildThreeLevels()
	err := pool.Traverse(ParallelTraversal, root, nullStylist{}, ruletree.New(), style.NewGuard())
	if err != nil {
		t.Fatalf("traversal failed: %v", err)
	}
	if len(started) != 7 {
		t.Fatalf("expected 7 styled elements, got %d", len(started))
	}
	levelOneStarted := 0
	for _, depth := range started {
		if depth == 2 && levelOneStarted < 2 {
			t.Fatalf("a grandchild started styling before both children did (order: %v)", started)
		}
		if depth == 1 {
			levelOneStarted++
		}
	}
}

func TestTraverseSequentialFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.engine")
	defer teardown()
	pool := EnsurePool(1) // degrades to zero workers
	root := buildThreeLevels()
	// ParallelTraversal requested, but the pool has no workers
	err := pool.Traverse(ParallelTraversal, root, nullStylist{}, ruletree.New(), style.NewGuard())
	if err != nil {
		t.Fatalf("traversal failed: %v", err)
	}
	for _, n := range root.Children(true) {
		if !n.Payload.IsStyled() {
			t.Error("expected every element to be styled by the sequential fallback")
		}
	}
}

func TestTraverseSharesIdenticalStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.engine")
	defer teardown()
	doc, err := html.Parse(strings.NewReader(
		`<html><body><ul><li>a</li><li>b</li><li>c</li></ul></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	root := styledtree.TreeFromHTML(doc)
	guard := style.NewGuard()
	device := cssom.NewDevice(800*dimen.PT, 600*dimen.PT)
	set := cssom.NewStylesheetSet(cssom.OriginAuthor)
	sheet, err := douceuradapter.Parse("li { color: green; margin-top: 1px; }")
	if err != nil {
		t.Fatal(err)
	}
	set.Append(nil, sheet, guard)
	matcher := cssom.NewMatcher(device, set)
	if err := matcher.Compile(guard); err != nil {
		t.Fatal(err)
	}
	styler := NewStyler(EnsurePool(2), device, guard, matcher)
	if err := styler.Style(root, ParallelTraversal); err != nil {
		t.Fatalf("styling failed: %v", err)
	}
	var lis []*styledtree.StyNode
	collectElements(root, "li", &lis)
	if len(lis) != 3 {
		t.Fatalf("expected 3 li elements, got %d", len(lis))
	}
	for _, li := range lis {
		if p, _ := li.Styles().Property("color"); p != "green" {
			t.Errorf("expected li color green, got %q", p)
		}
		if li.RuleNode() != lis[0].RuleNode() {
			t.Error("expected identical match lists to resolve to the same rule node")
		}
	}
}

func TestStylerEvictsCachesOnResize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.engine")
	defer teardown()
	guard := style.NewGuard()
	device := cssom.NewDevice(800*dimen.PT, 600*dimen.PT)
	pool := EnsurePool(2)
	NewStyler(pool, device, guard, nullStylist{})
	cache := pool.ensureWorkerCache(0)
	cache.decls.Insert(nil, nil)
	device.SetViewport(400*dimen.PT, 300*dimen.PT)
	if cache.decls.entries != nil {
		t.Error("expected viewport change to evict the declarations caches")
	}
}

func TestSharingCandidateCacheWindow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.engine")
	defer teardown()
	cache := &StyleSharingCandidateCache{}
	rt := ruletree.New()
	styles := style.NewPropertyMap()
	cache.Insert(rt.Root(), nil, styles)
	if got := cache.Lookup(rt.Root(), nil); got != styles {
		t.Error("expected a fresh candidate to be found")
	}
	if got := cache.Lookup(rt.Root(), styles); got != nil {
		t.Error("expected a different parent style to miss")
	}
	// overflow the window; the oldest candidate gets evicted
	for i := 0; i < styleSharingCandidateCacheSize; i++ {
		cache.Insert(rt.Root(), style.NewPropertyMap(), style.NewPropertyMap())
	}
	if got := cache.Lookup(rt.Root(), nil); got != nil {
		t.Error("expected the oldest candidate to be evicted from the window")
	}
}

func collectElements(n *tree.Node[*styledtree.StyNode], name string, out *[]*styledtree.StyNode) {
	if n == nil {
		return
	}
	if h := n.Payload.HTMLNode(); h != nil && h.Data == name {
		*out = append(*out, n.Payload)
	}
	for _, ch := range n.Children(true) {
		collectElements(ch, name, out)
	}
}
