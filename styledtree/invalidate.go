package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// ChildInsertedOrRemoved is to be called by the DOM-mutation collaborator
// after a child of parent has been inserted at or removed from position at.
// It consults the parent's invalidation flags and returns the styled nodes
// whose style must be re-matched. The returned set is conservative: flags
// only ever widen it, and an element listed twice is listed once.
func ChildInsertedOrRemoved(parent *StyNode, at int) []*StyNode {
	if parent == nil {
		return nil
	}
	flags := parent.Flags()
	tracer().Debugf("child mutation below %v at %d, flags %s", parent.HTMLNode(), at, flags)
	seen := make(map[*StyNode]bool)
	var restyle []*StyNode
	add := func(sn *StyNode) {
		if sn != nil && !seen[sn] {
			seen[sn] = true
			restyle = append(restyle, sn)
		}
	}
	children := parent.Children(true)
	if flags.Contains(HasEmptySelector) {
		add(parent) // ':empty' may have toggled on the element itself
	}
	if flags.Contains(HasSlowSelector) {
		for _, ch := range children {
			add(ch.Payload)
		}
		return restyle
	}
	if flags.Contains(HasSlowSelectorLaterSiblings) {
		for i := at; i < len(children); i++ {
			add(children[i].Payload)
		}
	}
	if flags.Contains(HasEdgeChildSelector) && len(children) > 0 {
		add(children[0].Payload)
		add(children[len(children)-1].Payload)
	}
	return restyle
}
