package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// A Declarations block is an ordered list of CSS property declarations, as
// they appear between the braces of a style rule or within a style="…"
// attribute. Every declaration may carry the "!important" marker, which
// puts it into the important partition of the cascade.
//
// Declaration blocks are immutable once handed to the rule tree: a
// stylesheet edit swaps in a fresh block (and a fresh style source identity)
// rather than mutating one in place.
type Declarations struct {
	decls []declaration
}

type declaration struct {
	key       string
	value     Property
	important bool
}

// NewDeclarations creates an empty declarations block.
func NewDeclarations() *Declarations {
	return &Declarations{}
}

// Add appends a declaration to the block. Within one block, a later
// declaration for the same key shadows an earlier one of the same
// importance.
func (d *Declarations) Add(key string, value Property, important bool) *Declarations {
	d.decls = append(d.decls, declaration{key: key, value: value, important: important})
	return d
}

// Size returns the number of declarations in the block.
func (d *Declarations) Size() int {
	if d == nil {
		return 0
	}
	return len(d.decls)
}

// Properties returns the property keys of the block, in declaration order.
func (d *Declarations) Properties() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.decls))
	for _, dd := range d.decls {
		keys = append(keys, dd.key)
	}
	return keys
}

// Lookup finds the winning declaration for key within the requested
// partition of the block. The last declaration of the partition wins.
func (d *Declarations) Lookup(key string, important bool) (Property, bool) {
	if d == nil {
		return NullStyle, false
	}
	p, found := NullStyle, false
	for _, dd := range d.decls {
		if dd.key == key && dd.important == important {
			p, found = dd.value, true
		}
	}
	return p, found
}

// Value returns the value for a property key, ignoring the importance
// partition (an important declaration shadows a normal one for the same
// key).
func (d *Declarations) Value(key string) Property {
	if p, ok := d.Lookup(key, true); ok {
		return p
	}
	p, _ := d.Lookup(key, false)
	return p
}

// IsImportant returns true if the winning declaration for a key is marked
// as important ("!").
func (d *Declarations) IsImportant(key string) bool {
	_, ok := d.Lookup(key, true)
	return ok
}

// HasImportant returns true if any declaration of the block is marked
// important.
func (d *Declarations) HasImportant() bool {
	if d == nil {
		return false
	}
	for _, dd := range d.decls {
		if dd.important {
			return true
		}
	}
	return false
}
