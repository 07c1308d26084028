package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/cascade/tree"
	"golang.org/x/net/html"
)

// TreeFromHTML builds the styled-tree skeleton for an HTML parse tree,
// one styled node per element node (text, comments etc. carry no style of
// their own). The returned node corresponds to the first element below
// doc, usually <html>.
func TreeFromHTML(doc *html.Node) *tree.Node[*StyNode] {
	root := firstElement(doc)
	if root == nil {
		return nil
	}
	sn := NewNodeForHTMLNode(root)
	buildChildren(sn, root)
	return sn
}

func firstElement(h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.Type == html.ElementNode {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := firstElement(ch); r != nil {
			return r
		}
	}
	return nil
}

func buildChildren(parent *tree.Node[*StyNode], h *html.Node) {
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		sn := NewNodeForHTMLNode(ch)
		parent.AddChild(sn)
		buildChildren(sn, ch)
	}
}
