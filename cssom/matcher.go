package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sort"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/styledtree"
	"golang.org/x/net/html"
)

// Matcher performs selector matching for the styling traversal. Given an
// element, it yields the ordered list of style sources which apply to it
// (least to most specific, ready for insertion into the rule tree), plus
// the selector relations driving incremental invalidation.
//
// A matcher is compiled once from the document's stylesheet sets (and
// recompiled after stylesheet edits); matching itself is read-only and may
// run concurrently from all traversal workers.
type Matcher struct {
	device *Device
	sets   []*StylesheetSet
	rules  []compiledRule
	inline inlineCache
}

// compiledRule is one style rule with its selector group parsed and its
// cascade sort keys precomputed.
type compiledRule struct {
	sels      cascadia.SelectorGroup
	source    *ruletree.StyleRule
	relations styledtree.SelectorRelations
	origin    Origin
	order     int // source order over all sheets of the origin
}

// inlineCache keeps the declaration-block handle for a style="…" attribute
// stable across re-matches of the same element. Style source identity is
// handle identity; handing out a fresh block on every match would defeat
// rule-tree sharing.
type inlineCache struct {
	mu      sync.Mutex
	entries map[*html.Node]*inlineEntry
}

type inlineEntry struct {
	text  string
	decls *style.Declarations
}

// NewMatcher creates a matcher over the given stylesheet sets for a device.
// Call Compile before matching.
func NewMatcher(device *Device, sets ...*StylesheetSet) *Matcher {
	return &Matcher{device: device, sets: sets}
}

// Compile parses the selectors of every rule of every sheet and fixes the
// cascade order. Rules with unparsable selectors are dropped (they can
// match nothing). The caller holds the read guard g.
func (m *Matcher) Compile(g *style.Guard) error {
	m.rules = m.rules[:0]
	for _, set := range m.sets {
		order := 0
		for _, sheet := range set.Sheets() {
			for _, rule := range sheet.Rules() {
				group, err := cascadia.ParseGroup(rule.Selector())
				if err != nil {
					tracer().Infof("dropping rule with unparsable selector %q: %v", rule.Selector(), err)
					continue
				}
				m.rules = append(m.rules, compiledRule{
					sels:      group,
					source:    compileRule(rule),
					relations: relationsForSelector(rule.Selector()),
					origin:    set.Origin(),
					order:     order,
				})
				order++
			}
		}
	}
	tracer().Debugf("matcher compiled %d rules from %d sets", len(m.rules), len(m.sets))
	return nil
}

// compileRule converts an interface rule into the parsed-rule handle the
// rule tree keys its edges by.
func compileRule(rule Rule) *ruletree.StyleRule {
	decls := style.NewDeclarations()
	for _, key := range rule.Properties() {
		decls.Add(key, rule.Value(key), rule.IsImportant(key))
	}
	return &ruletree.StyleRule{
		Selectors:    rule.Selector(),
		Declarations: decls,
	}
}

// MatchStyles finds all style sources applying to an element, ordered by
// origin, then specificity, then source order. An inline style="…"
// attribute contributes a bare declaration block at the strong end. The
// caller holds the read guard g.
func (m *Matcher) MatchStyles(sn *styledtree.StyNode, g *style.Guard) ([]ruletree.StyleSource, styledtree.SelectorRelations) {
	h := sn.HTMLNode()
	if h == nil || h.Type != html.ElementNode {
		return nil, 0
	}
	type match struct {
		rule *compiledRule
		spec cascadia.Specificity
	}
	var matches []match
	var relations styledtree.SelectorRelations
	for i := range m.rules {
		rule := &m.rules[i]
		if ok, spec := matchWithSpecificity(rule.sels, h); ok {
			matches = append(matches, match{rule: rule, spec: spec})
			relations |= rule.relations
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.rule.origin != b.rule.origin {
			return a.rule.origin < b.rule.origin // document before author
		}
		if a.spec != b.spec {
			return lessSpecific(a.spec, b.spec)
		}
		return a.rule.order < b.rule.order
	})
	sources := make([]ruletree.StyleSource, 0, len(matches)+1)
	for _, mt := range matches {
		sources = append(sources, ruletree.SourceFromRule(mt.rule.source))
	}
	if decls := m.inlineDeclarations(h); decls != nil {
		sources = append(sources, ruletree.SourceFromDeclarations(decls))
	}
	return sources, relations
}

// matchWithSpecificity matches a selector group against an element and
// reports the greatest specificity among the matching sub-selectors, per
// the specificity rules for selector lists.
func matchWithSpecificity(sels cascadia.SelectorGroup, h *html.Node) (bool, cascadia.Specificity) {
	var maxSpec cascadia.Specificity
	found := false
	for _, sel := range sels {
		if sel.Match(h) {
			if !found || lessSpecific(maxSpec, sel.Specificity()) {
				maxSpec = sel.Specificity()
			}
			found = true
		}
	}
	return found, maxSpec
}

// lessSpecific is a strict less-than over specificity triples [A,B,C].
func lessSpecific(a, b cascadia.Specificity) bool {
	for i := range a {
		if a[i] < b[i] {
			return true
		}
		if a[i] > b[i] {
			return false
		}
	}
	return false
}

// structuralPseudoClasses are the pseudo-class names which feed selector
// relations; see styledtree.FlagsFromRelations for the flag mapping.
var structuralPseudoClasses = [...]string{
	"empty",
	"nth-last-child",
	"last-of-type",
	"nth-last-of-type",
	"only-of-type",
	"first-child",
	"last-child",
	"only-child",
	"nth-child",
	"first-of-type",
	"nth-of-type",
}

func relationsForSelector(selText string) styledtree.SelectorRelations {
	var rel styledtree.SelectorRelations
	for _, name := range structuralPseudoClasses {
		if strings.Contains(selText, ":"+name) {
			rel |= styledtree.RelationsForPseudoClass(name)
		}
	}
	return rel
}

// inlineDeclarations returns the declaration block for an element's
// style="…" attribute, or nil. The handle is cached per element and
// re-parsed only when the attribute text changed.
func (m *Matcher) inlineDeclarations(h *html.Node) *style.Declarations {
	var text string
	for _, attr := range h.Attr {
		if attr.Key == "style" {
			text = attr.Val
			break
		}
	}
	if text == "" {
		return nil
	}
	m.inline.mu.Lock()
	defer m.inline.mu.Unlock()
	if entry, ok := m.inline.entries[h]; ok && entry.text == text {
		return entry.decls
	}
	parsed, err := parser.ParseDeclarations(text)
	if err != nil {
		tracer().Infof("unparsable style attribute %q: %v", text, err)
		return nil
	}
	decls := style.NewDeclarations()
	for _, d := range parsed {
		decls.Add(d.Property, style.Property(d.Value), d.Important)
	}
	if m.inline.entries == nil {
		m.inline.entries = make(map[*html.Node]*inlineEntry)
	}
	m.inline.entries[h] = &inlineEntry{text: text, decls: decls}
	return decls
}
