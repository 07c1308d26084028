package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/cascade/style"
	"golang.org/x/net/html"
)

// Origin is the cascade origin class of a stylesheet set. There are exactly
// two variants; StylesheetSet dispatches on the discriminant where the
// variants differ.
type Origin uint8

const (
	// OriginDocument holds document/user-agent level stylesheets. They sit
	// at the weak end of the cascade.
	OriginDocument Origin = iota
	// OriginAuthor holds author stylesheets. They override document-origin
	// rules.
	OriginAuthor
)

func (o Origin) String() string {
	if o == OriginAuthor {
		return "author"
	}
	return "document"
}

// StylesheetSet is an ordered sequence of stylesheets of one origin class.
// Insertion position matters for cascade order. A set is owned by one
// document or shadow tree and is mutated only through Append, InsertBefore
// and Remove; mutation and styling traversals are mutually exclusive phases
// (the caller holds the write guard for mutation).
type StylesheetSet struct {
	origin Origin
	sheets []StyleSheet
}

// NewStylesheetSet creates an empty set for an origin class.
func NewStylesheetSet(origin Origin) *StylesheetSet {
	return &StylesheetSet{origin: origin}
}

// Origin returns the origin class of the set.
func (set *StylesheetSet) Origin() Origin {
	return set.origin
}

// Sheets returns the stylesheets of the set in cascade order.
func (set *StylesheetSet) Sheets() []StyleSheet {
	return set.sheets
}

// Len returns the number of stylesheets in the set.
func (set *StylesheetSet) Len() int {
	return len(set.sheets)
}

// Clear drops all sheets of the set. Called on document teardown.
func (set *StylesheetSet) Clear() {
	set.sheets = nil
}

// Append adds a stylesheet at the end of the set.
//
// When device is non-nil, an invalidation description for the change is
// computed and returned; a nil device skips invalidation computation (used
// during bulk construction before first paint). The caller holds the write
// guard g.
func (set *StylesheetSet) Append(device *Device, sheet StyleSheet, g *style.Guard) Invalidation {
	set.sheets = append(set.sheets, sheet)
	tracer().Debugf("appended sheet to %s set, now %d sheets", set.origin, len(set.sheets))
	return set.invalidationFor(device, sheet)
}

// InsertBefore adds a stylesheet in front of an already present one.
// Naming a before-sheet which is not in the set is a programmer error and
// panics. The caller holds the write guard g.
func (set *StylesheetSet) InsertBefore(device *Device, sheet StyleSheet, before StyleSheet, g *style.Guard) Invalidation {
	at := set.indexOf(before)
	if at < 0 {
		panic(fmt.Sprintf("cssom: insert-before anchor not in %s stylesheet set", set.origin))
	}
	set.sheets = append(set.sheets, nil)
	copy(set.sheets[at+1:], set.sheets[at:])
	set.sheets[at] = sheet
	tracer().Debugf("inserted sheet into %s set at %d, now %d sheets", set.origin, at, len(set.sheets))
	return set.invalidationFor(device, sheet)
}

// Remove drops a stylesheet from the set. Naming a sheet which is not in
// the set is a programmer error and panics. The caller holds the write
// guard g.
func (set *StylesheetSet) Remove(device *Device, sheet StyleSheet, g *style.Guard) Invalidation {
	at := set.indexOf(sheet)
	if at < 0 {
		panic(fmt.Sprintf("cssom: sheet to remove not in %s stylesheet set", set.origin))
	}
	set.sheets = append(set.sheets[:at], set.sheets[at+1:]...)
	tracer().Debugf("removed sheet from %s set, now %d sheets", set.origin, len(set.sheets))
	return set.invalidationFor(device, sheet)
}

func (set *StylesheetSet) indexOf(sheet StyleSheet) int {
	for i, s := range set.sheets {
		if s == sheet {
			return i
		}
	}
	return -1
}

// invalidationFor computes the invalidation description for adding or
// removing one sheet. Granularity differs by origin variant: author sheets
// yield a per-selector description, document-origin sheets invalidate
// everything, since their device-relative defaults reach elements no
// selector names.
func (set *StylesheetSet) invalidationFor(device *Device, sheet StyleSheet) Invalidation {
	if device == nil {
		return Invalidation{skipped: true}
	}
	inv := Invalidation{origin: set.origin}
	switch set.origin {
	case OriginDocument:
		inv.full = true
	case OriginAuthor:
		for _, rule := range sheet.Rules() {
			group, err := cascadia.ParseGroup(rule.Selector())
			if err != nil {
				// cannot reason about the selector, fall back to restyling everything
				tracer().Infof("unparsable selector %q, invalidating fully", rule.Selector())
				inv.full = true
				inv.selectors = nil
				return inv
			}
			inv.selectors = append(inv.selectors, group)
		}
	}
	return inv
}

// Invalidation describes which already-styled elements may need re-matching
// after one stylesheet-set operation. It is conservative: it may name
// elements whose style did not actually change, never the other way around.
type Invalidation struct {
	origin    Origin
	selectors []cascadia.SelectorGroup
	full      bool
	skipped   bool
}

// Skipped is true when the operation was performed without a device and no
// invalidation was computed.
func (inv Invalidation) Skipped() bool {
	return inv.skipped
}

// IsFull is true when the whole document has to be restyled.
func (inv Invalidation) IsFull() bool {
	return inv.full
}

// Origin returns the origin class the mutated set belongs to.
func (inv Invalidation) Origin() Origin {
	return inv.origin
}

// InvalidatesElement decides whether an element's style may be affected by
// the described change.
func (inv Invalidation) InvalidatesElement(h *html.Node) bool {
	if inv.skipped {
		return false
	}
	if inv.full {
		return true
	}
	for _, group := range inv.selectors {
		if group.Match(h) {
			return true
		}
	}
	return false
}
