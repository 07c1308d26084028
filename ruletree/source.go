package ruletree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/cascade/style"
)

// A StyleRule is a parsed style rule: a selector list plus a declaration
// block. Rules are created by a stylesheet adapter (see package
// cssom/douceuradapter) and referenced by rule-tree edges.
type StyleRule struct {
	Selectors    string             // the prelude / selectors of the rule
	Declarations *style.Declarations // the declaration block of the rule
}

// A StyleSource labels an edge of the rule tree. It refers either to a
// style rule or to a bare declaration block (as used for style="…"
// attributes).
//
// Identity of a StyleSource is handle identity, not structural equality:
// two textually identical rules at different stylesheet positions are
// distinct sources and produce distinct tree nodes. A stylesheet edit must
// therefore replace a source (new handle), never mutate the referenced rule
// under the rule tree's feet.
type StyleSource struct {
	rule  *StyleRule
	decls *style.Declarations
}

// sourceKey is the identity of a StyleSource, used as the key of a node's
// child map. It compares the underlying handles.
type sourceKey struct {
	rule  *StyleRule
	decls *style.Declarations
}

// SourceFromRule wraps a style rule into a StyleSource.
func SourceFromRule(rule *StyleRule) StyleSource {
	if rule == nil {
		panic("ruletree: style source for nil rule")
	}
	return StyleSource{rule: rule}
}

// SourceFromDeclarations wraps a bare declaration block into a StyleSource.
func SourceFromDeclarations(decls *style.Declarations) StyleSource {
	if decls == nil {
		panic("ruletree: style source for nil declaration block")
	}
	return StyleSource{decls: decls}
}

// IsNull returns true for the zero StyleSource, which labels no edge. Only
// the root node of a rule tree carries a null source.
func (s StyleSource) IsNull() bool {
	return s.rule == nil && s.decls == nil
}

// Read returns the declaration block of the source. The caller holds the
// read guard over the stylesheet data; the guard parameter is its proof.
func (s StyleSource) Read(g *style.Guard) *style.Declarations {
	if s.rule != nil {
		return s.rule.Declarations
	}
	return s.decls
}

// AsRule returns the underlying style rule, if this source wraps one.
func (s StyleSource) AsRule() (*StyleRule, bool) {
	return s.rule, s.rule != nil
}

// AsDeclarations returns the underlying bare declaration block, if this
// source wraps one.
func (s StyleSource) AsDeclarations() (*style.Declarations, bool) {
	if s.rule != nil {
		return nil, false
	}
	return s.decls, s.decls != nil
}

func (s StyleSource) key() sourceKey {
	return sourceKey{rule: s.rule, decls: s.decls}
}

func (s StyleSource) String() string {
	switch {
	case s.rule != nil:
		return fmt.Sprintf("rule(%s)", s.rule.Selectors)
	case s.decls != nil:
		return fmt.Sprintf("decls(#%d)", s.decls.Size())
	}
	return "∅"
}
