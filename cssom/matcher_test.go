package cssom_test

import (
	"testing"

	"github.com/npillmayer/cascade/cssom"
	"github.com/npillmayer/cascade/cssom/douceuradapter"
	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/styledtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func styledNodeFor(h *html.Node) *styledtree.StyNode {
	return styledtree.Node(styledtree.NewNodeForHTMLNode(h))
}

func testDevice() *cssom.Device {
	return cssom.NewDevice(800*dimen.PT, 600*dimen.PT)
}

func TestMatcherOriginOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	g := style.NewGuard()
	docSet := cssom.NewStylesheetSet(cssom.OriginDocument)
	docSet.Append(nil, mustSheet(t, "p { color: black; }"), g)
	authorSet := cssom.NewStylesheetSet(cssom.OriginAuthor)
	authorSet.Append(nil, mustSheet(t, "p { color: green; }"), g)

	matcher := cssom.NewMatcher(testDevice(), docSet, authorSet)
	require.NoError(t, matcher.Compile(g))

	doc := parseHTML(t, `<html><body><p>hi</p></body></html>`)
	sources, _ := matcher.MatchStyles(styledNodeFor(findHTMLElement(doc, "p")), g)
	require.Len(t, sources, 2)
	// least to most specific: document origin first, author origin last
	require.Equal(t, style.Property("black"), sources[0].Read(g).Value("color"))
	require.Equal(t, style.Property("green"), sources[1].Read(g).Value("color"))
}

func TestMatcherSpecificityOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	g := style.NewGuard()
	set := cssom.NewStylesheetSet(cssom.OriginAuthor)
	// source order deliberately runs against specificity order
	set.Append(nil, mustSheet(t, `.hint { color: blue; }
p { color: black; }`), g)

	matcher := cssom.NewMatcher(testDevice(), set)
	require.NoError(t, matcher.Compile(g))

	doc := parseHTML(t, `<html><body><p class="hint">hi</p></body></html>`)
	sources, _ := matcher.MatchStyles(styledNodeFor(findHTMLElement(doc, "p")), g)
	require.Len(t, sources, 2)
	require.Equal(t, style.Property("black"), sources[0].Read(g).Value("color"), "type selector is least specific")
	require.Equal(t, style.Property("blue"), sources[1].Read(g).Value("color"), "class selector wins")
}

func TestMatcherSourceOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	g := style.NewGuard()
	set := cssom.NewStylesheetSet(cssom.OriginAuthor)
	set.Append(nil, mustSheet(t, `p { color: black; }
p { color: green; }`), g)

	matcher := cssom.NewMatcher(testDevice(), set)
	require.NoError(t, matcher.Compile(g))

	doc := parseHTML(t, `<html><body><p>hi</p></body></html>`)
	sources, _ := matcher.MatchStyles(styledNodeFor(findHTMLElement(doc, "p")), g)
	require.Len(t, sources, 2)
	require.Equal(t, style.Property("black"), sources[0].Read(g).Value("color"))
	require.Equal(t, style.Property("green"), sources[1].Read(g).Value("color"), "later rule of equal specificity wins")
}

func TestMatcherStableSources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	g := style.NewGuard()
	set := cssom.NewStylesheetSet(cssom.OriginAuthor)
	set.Append(nil, mustSheet(t, "p { color: green; }"), g)
	matcher := cssom.NewMatcher(testDevice(), set)
	require.NoError(t, matcher.Compile(g))

	doc := parseHTML(t, `<html><body><p>one</p><p>two</p></body></html>`)
	p1 := findHTMLElement(doc, "p")
	p2 := findHTMLElement(doc, "body").LastChild
	s1, _ := matcher.MatchStyles(styledNodeFor(p1), g)
	s2, _ := matcher.MatchStyles(styledNodeFor(p2), g)
	require.Len(t, s1, 1)
	require.Len(t, s2, 1)
	r1, _ := s1[0].AsRule()
	r2, _ := s2[0].AsRule()
	if r1 != r2 {
		t.Error("expected both <p> elements to see the identical rule handle")
	}
}

func TestMatcherRelations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	g := style.NewGuard()
	set := cssom.NewStylesheetSet(cssom.OriginAuthor)
	set.Append(nil, mustSheet(t, "li:first-child { color: red; } li:nth-child(2) { color: blue; }"), g)
	matcher := cssom.NewMatcher(testDevice(), set)
	require.NoError(t, matcher.Compile(g))

	doc := parseHTML(t, `<html><body><ul><li>a</li><li>b</li></ul></body></html>`)
	first := findHTMLElement(doc, "li")
	_, rel := matcher.MatchStyles(styledNodeFor(first), g)
	require.True(t, rel.Contains(styledtree.AffectedByFirstChild))
	require.False(t, rel.Contains(styledtree.AffectedByNthChild), "the nth-child rule did not match the first li")

	second := first.NextSibling
	for second != nil && second.Type != html.ElementNode {
		second = second.NextSibling
	}
	_, rel = matcher.MatchStyles(styledNodeFor(second), g)
	require.True(t, rel.Contains(styledtree.AffectedByNthChild))
}

func TestMatcherInlineStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	g := style.NewGuard()
	set := cssom.NewStylesheetSet(cssom.OriginAuthor)
	set.Append(nil, mustSheet(t, "p { color: green; }"), g)
	matcher := cssom.NewMatcher(testDevice(), set)
	require.NoError(t, matcher.Compile(g))

	doc := parseHTML(t, `<html><body><p style="color: purple">hi</p></body></html>`)
	p := findHTMLElement(doc, "p")
	sources, _ := matcher.MatchStyles(styledNodeFor(p), g)
	require.Len(t, sources, 2)
	last := sources[len(sources)-1]
	decls, ok := last.AsDeclarations()
	require.True(t, ok, "inline style contributes a bare declaration block at the strong end")
	require.Equal(t, style.Property("purple"), decls.Value("color"))

	// the inline block handle must be stable across re-matches
	again, _ := matcher.MatchStyles(styledNodeFor(p), g)
	decls2, _ := again[len(again)-1].AsDeclarations()
	if decls != decls2 {
		t.Error("expected the same declaration-block handle on re-match")
	}
}

func TestExtractStyleElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	doc := parseHTML(t, `<html><head><style>p { color: red; }</style></head><body></body></html>`)
	sheets := douceuradapter.ExtractStyleElements(doc)
	require.Len(t, sheets, 1)
	require.False(t, sheets[0].Empty())
}
