package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "strings"

// ElementFlags is a bit-set of independent per-element invalidation flags.
// Any combination is legal; the bits carry no state-machine semantics.
//
// Flags are monotonically added over an element's life and cleared in bulk
// only when the element's subtree is destroyed or fully unstyled.
type ElementFlags uint32

const (
	// HasSlowSelector marks an element whose children must all be
	// re-matched on any child add/remove.
	HasSlowSelector ElementFlags = 1 << iota

	// HasSlowSelectorLaterSiblings marks an element for which all siblings
	// after a mutated position must be re-matched on child add/remove.
	HasSlowSelectorLaterSiblings

	// HasEdgeChildSelector marks an element whose first/last child must be
	// re-matched on child add/remove.
	HasEdgeChildSelector

	// HasEmptySelector is set on an element itself when it was matched via
	// ':empty'.
	HasEmptySelector
)

// Contains checks whether all bits of other are set in f.
func (f ElementFlags) Contains(other ElementFlags) bool {
	return f&other == other
}

func (f ElementFlags) String() string {
	var names []string
	for _, b := range [...]struct {
		flag ElementFlags
		name string
	}{
		{HasSlowSelector, "slow-selector"},
		{HasSlowSelectorLaterSiblings, "slow-selector-later-siblings"},
		{HasEdgeChildSelector, "edge-child-selector"},
		{HasEmptySelector, "empty-selector"},
	} {
		if f.Contains(b.flag) {
			names = append(names, b.name)
		}
	}
	if len(names) == 0 {
		return "[]"
	}
	return "[" + strings.Join(names, "|") + "]"
}

// SelectorRelations is a bit-set describing which structural pseudo-classes
// took part in matching an element. It is produced by the selector-matching
// collaborator and consumed by FlagsFromRelations.
type SelectorRelations uint32

const (
	// AffectedByEmpty: the element was matched via ':empty'.
	AffectedByEmpty SelectorRelations = 1 << iota
	// AffectedByNthLastChild: matching involved ':nth-last-child'.
	AffectedByNthLastChild
	// AffectedByLastOfType: matching involved ':last-of-type'.
	AffectedByLastOfType
	// AffectedByNthLastOfType: matching involved ':nth-last-of-type'.
	AffectedByNthLastOfType
	// AffectedByOnlyOfType: matching involved ':only-of-type'.
	AffectedByOnlyOfType
	// AffectedByFirstChild: matching involved ':first-child'.
	AffectedByFirstChild
	// AffectedByLastChild: matching involved ':last-child'.
	AffectedByLastChild
	// AffectedByOnlyChild: matching involved ':only-child'.
	AffectedByOnlyChild
	// AffectedByNthChild: matching involved ':nth-child'.
	AffectedByNthChild
	// AffectedByFirstOfType: matching involved ':first-of-type'.
	AffectedByFirstOfType
	// AffectedByNthOfType: matching involved ':nth-of-type'.
	AffectedByNthOfType
)

// Contains checks whether all bits of other are set in r.
func (r SelectorRelations) Contains(other SelectorRelations) bool {
	return r&other == other
}

// FlagsFromRelations translates the relations reported for one matched
// element into the flag set for the element itself (child flags) and the
// flag set to be merged onto its parent (parent flags). The two sets are
// disjoint.
//
// The mapping is a fixed table:
//
//     :empty                                     → child:  HasEmptySelector
//     :nth-last-child, :last-of-type,
//     :nth-last-of-type, :only-of-type           → parent: HasSlowSelector
//     :first-child, :last-child, :only-child     → parent: HasEdgeChildSelector
//     :nth-child, :first-of-type, :nth-of-type   → parent: HasSlowSelectorLaterSiblings
func FlagsFromRelations(rel SelectorRelations) (childFlags ElementFlags, parentFlags ElementFlags) {
	if rel.Contains(AffectedByEmpty) {
		childFlags |= HasEmptySelector
	}
	if rel&(AffectedByNthLastChild|AffectedByLastOfType|AffectedByNthLastOfType|AffectedByOnlyOfType) != 0 {
		parentFlags |= HasSlowSelector
	}
	if rel&(AffectedByFirstChild|AffectedByLastChild|AffectedByOnlyChild) != 0 {
		parentFlags |= HasEdgeChildSelector
	}
	if rel&(AffectedByNthChild|AffectedByFirstOfType|AffectedByNthOfType) != 0 {
		parentFlags |= HasSlowSelectorLaterSiblings
	}
	return childFlags, parentFlags
}

// RelationsForPseudoClass maps a structural pseudo-class name (without the
// leading colon, e.g. "nth-last-child") to its relation bit. Unknown names
// map to zero.
func RelationsForPseudoClass(name string) SelectorRelations {
	switch name {
	case "empty":
		return AffectedByEmpty
	case "nth-last-child":
		return AffectedByNthLastChild
	case "last-of-type":
		return AffectedByLastOfType
	case "nth-last-of-type":
		return AffectedByNthLastOfType
	case "only-of-type":
		return AffectedByOnlyOfType
	case "first-child":
		return AffectedByFirstChild
	case "last-child":
		return AffectedByLastChild
	case "only-child":
		return AffectedByOnlyChild
	case "nth-child":
		return AffectedByNthChild
	case "first-of-type":
		return AffectedByFirstOfType
	case "nth-of-type":
		return AffectedByNthOfType
	}
	return 0
}
