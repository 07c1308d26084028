/*
Package tree implements a general purpose tree of mutable nodes.

Styling and layout of HTML/CSS involves a lot of operations on different
trees. We implement the various trees on top of this general purpose tree
type, which offers concurrency-safe operations to manipulate tree nodes.

In a fully object oriented programming language we would subclass this
tree type for every type of tree in use (styled tree, layout tree,
render tree), but in Go we resort to composition, thus including a
generic tree node in every node (sub-)type.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree
