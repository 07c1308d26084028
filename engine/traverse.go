package engine

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"sync"

	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/styledtree"
	"github.com/npillmayer/cascade/tree"
)

// ErrEmptyTree is thrown if a traversal is started on an empty tree.
var ErrEmptyTree = errors.New("cannot traverse empty tree")

// Stylist is the selector-matching collaborator. For an element it yields
// the ordered sequence of style sources (least to most specific, ready for
// rule-tree insertion) plus the selector relations of the match.
//
// cssom.Matcher is the default implementation.
type Stylist interface {
	MatchStyles(sn *styledtree.StyNode, g *style.Guard) ([]ruletree.StyleSource, styledtree.SelectorRelations)
}

// Traverse styles the element tree below root (inclusive).
//
// When flags contains ParallelTraversal and the pool has workers, elements
// are distributed breadth-first: every element of depth d is styled before
// any element of depth d+1 is dequeued. Completion order within one depth
// level is unspecified. A traversal cannot be cancelled mid-flight.
//
// The caller holds the read guard g over the stylesheet data for the whole
// traversal.
func (p *Pool) Traverse(flags TraversalFlags, root *tree.Node[*styledtree.StyNode],
	stylist Stylist, rules *ruletree.Tree, g *style.Guard) error {
	//
	if root == nil {
		return ErrEmptyTree
	}
	p.acquire()
	defer p.release()
	tracer().Debugf("styling traversal starts, flags %s, %d workers", flags, p.workers)
	if flags.Contains(ForCSSRuleChanges) {
		// the rules behind cached declarations may have changed
		for i := range p.caches {
			if p.caches[i].decls != nil {
				p.caches[i].decls.EvictAll()
			}
		}
	}
	parallel := flags.Contains(ParallelTraversal) && p.workers > 0
	level := []*tree.Node[*styledtree.StyNode]{root}
	for depth := 0; len(level) > 0; depth++ {
		if parallel {
			level = p.styleLevelParallel(depth, level, stylist, rules, g)
		} else {
			level = p.styleLevelSequential(depth, level, stylist, rules, g)
		}
	}
	return nil
}

// styleLevelSequential styles one depth level on the calling goroutine,
// through cache slot 0, and collects the next level.
func (p *Pool) styleLevelSequential(depth int, level []*tree.Node[*styledtree.StyNode],
	stylist Stylist, rules *ruletree.Tree, g *style.Guard) []*tree.Node[*styledtree.StyNode] {
	//
	cache := p.ensureWorkerCache(0)
	var next []*tree.Node[*styledtree.StyNode]
	for _, n := range level {
		p.styleOne(n, depth, 0, cache, stylist, rules, g)
		next = append(next, n.Children(true)...)
	}
	return next
}

// styleLevelParallel distributes one depth level over the pool's workers.
// The level channel is fully populated before the workers start draining
// it, and the next level is assembled only after all workers finished, so
// no element of the next depth can start early.
func (p *Pool) styleLevelParallel(depth int, level []*tree.Node[*styledtree.StyNode],
	stylist Stylist, rules *ruletree.Tree, g *style.Guard) []*tree.Node[*styledtree.StyNode] {
	//
	input := make(chan *tree.Node[*styledtree.StyNode], len(level))
	for _, n := range level {
		input <- n
	}
	close(input)
	perWorker := make([][]*tree.Node[*styledtree.StyNode], p.workers)
	var wg sync.WaitGroup
	wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		wno := i
		go func() {
			defer wg.Done()
			cache := p.ensureWorkerCache(wno)
			for n := range input { // get workpackages until drained
				p.styleOne(n, depth, wno, cache, stylist, rules, g)
				perWorker[wno] = append(perWorker[wno], n.Children(true)...)
			}
		}()
	}
	wg.Wait()
	var next []*tree.Node[*styledtree.StyNode]
	for _, part := range perWorker {
		next = append(next, part...)
	}
	return next
}

// styleOne performs the single-threaded work for one element: selector
// matching, rule-tree insertion, style computation or sharing, flag
// writeback. Only the rule-tree insert and the parent flag merge touch
// shared state.
func (p *Pool) styleOne(n *tree.Node[*styledtree.StyNode], depth int, wno int, cache *workerCache,
	stylist Stylist, rules *ruletree.Tree, g *style.Guard) {
	//
	sn := n.Payload
	if p.visited != nil {
		p.visited(depth, wno, sn)
	}
	sources, relations := stylist.MatchStyles(sn, g)
	rnode := rules.Insert(sources)
	var parentStyles *style.PropertyMap
	parent := sn.ParentNode()
	if parent != nil && parent.IsStyled() {
		parentStyles = parent.Styles()
	}
	styles := cache.sharing.Lookup(rnode, parentStyles)
	if styles != nil {
		tracer().Debugf("worker %d shares style for %v", wno, sn.HTMLNode())
	} else {
		if styles = cache.decls.Lookup(rnode); styles == nil {
			styles = rnode.CascadedProperties(g)
			cache.decls.Insert(rnode, styles)
		}
		cache.sharing.Insert(rnode, parentStyles, styles)
	}
	sn.SetStyles(rnode, styles)
	childFlags, parentFlags := styledtree.FlagsFromRelations(relations)
	sn.AddFlags(childFlags)
	if parent != nil {
		parent.AddFlags(parentFlags) // atomic merge, parent is shared between sibling sub-trees
	}
}
