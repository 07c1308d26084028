package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "fmt"

// PropertyMap holds the resolved properties for a styled element. It is the
// value the layout collaborator reads, next to the opaque rule-node handle.
//
// Once computed, a PropertyMap is treated as immutable and may be shared
// between elements which resolved to the same cascade (style sharing).
type PropertyMap struct {
	m map[string]Property
}

// NewPropertyMap creates an empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{m: make(map[string]Property)}
}

// Property returns the value for a property key.
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	if pmap == nil || pmap.m == nil {
		return NullStyle, false
	}
	p, ok := pmap.m[key]
	return p, ok
}

// Set overwrites the value for a property key. Set is only to be called
// while the map is being built; shared maps are never written to.
func (pmap *PropertyMap) Set(key string, value Property) {
	if pmap.m == nil {
		pmap.m = make(map[string]Property)
	}
	pmap.m[key] = value
}

// Size returns the number of properties set.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// Properties returns all key/value pairs of the map (unordered).
func (pmap *PropertyMap) Properties() []KeyValue {
	if pmap == nil {
		return nil
	}
	r := make([]KeyValue, 0, len(pmap.m))
	for k, v := range pmap.m {
		r = append(r, KeyValue{k, v})
	}
	return r
}

// Stringer for property maps; used for debugging.
func (pmap *PropertyMap) String() string {
	s := "Styles:\n"
	for k, v := range pmap.m {
		s += fmt.Sprintf("  %s = %s\n", k, v)
	}
	return s
}
