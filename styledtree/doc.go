/*
Package styledtree implements the styled tree: DOM element nodes decorated
with their resolved style.

A styled node links an HTML element to the rule-tree node its matched rules
resolved to, to the materialized property map layout reads, and to a set of
invalidation flags. The flags record which structural pseudo-class
categories the element (or its children) are sensitive to, so that DOM
mutation can decide which elements need re-matching without re-running
selector matching for everyone.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'cascade.styledtree'
func tracer() tracing.Trace {
	return tracing.Select("cascade.styledtree")
}
