/*
Package engine implements the parallel styling traversal.

Styling visits the element tree breadth-first across a fixed-size worker
pool: all elements at one tree depth have their styling started before any
element of the next depth is dequeued. The per-worker style sharing caches
reuse the computed style of recently styled sibling/cousin elements, and a
candidate is only safe to reuse if it was styled strictly before the current
element in the global visitation order. The level ordering guarantees that;
depth-first or LIFO work-stealing order would not.

Each worker owns one slot of a scoped cache array (applicable declarations
plus style sharing candidates), indexed by its stable worker number, so
cache access is never contended.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'cascade.engine'
func tracer() tracing.Trace {
	return tracing.Select("cascade.engine")
}
