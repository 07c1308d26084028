/*
Package cssom manages the stylesheets of a document and turns them into
per-element cascade input.

The package contains the origin-scoped stylesheet sets (with their
invalidation bookkeeping), the Device describing the viewport/media context,
and a selector matcher which produces, for every element, the ordered list
of style sources feeding the rule tree, plus the selector relations feeding
incremental invalidation.

Stylesheet implementations are abstracted behind interface StyleSheet, so
clients may plug in any CSS parser; package douceuradapter provides a
ready-made implementation on top of the douceur parser. Selector matching
relies on just one non-standard external library: cascadia.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'cascade.cssom'
func tracer() tracing.Trace {
	return tracing.Select("cascade.cssom")
}
