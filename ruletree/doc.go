/*
Package ruletree implements the rule tree: a reference-counted DAG whose
root-to-node paths represent cascade chains of style sources.

Every element which has been styled points at one node of the rule tree.
The path from the root down to that node is the ordered list of style rules
and declaration blocks which matched the element, in cascade order (origin,
then specificity, then source order). Two elements with identical ordered
match lists resolve to the very same node, so the memory and the cascade
work for them is shared. This sharing is a guarantee, not an optimization:
the style sharing caches of the traversal engine rely on node identity to
detect equal styles.

Nodes are created on demand by Tree.Insert and reclaimed by reference
counting; see Node.Retain and Node.Release.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ruletree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'cascade.ruletree'
func tracer() tracing.Trace {
	return tracing.Select("cascade.ruletree")
}
