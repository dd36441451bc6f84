package debuginfo

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vellumlang/vellum/types"
)

// testItems is a map-backed ItemProvider.
type testItems map[types.ItemID]types.ItemKey

func (m testItems) Key(id types.ItemID) types.ItemKey {
	key, ok := m[id]
	if !ok {
		panic(fmt.Sprintf("test item provider: unknown item %s", id))
	}
	return key
}

// testLayouts is a map-backed LayoutProvider keyed by the enum's item.
type testLayouts map[types.ItemID]types.EnumLayout

func (m testLayouts) EnumLayout(adt types.Adt) types.EnumLayout { return m[adt.Item] }

// itemTree builds item paths for tests.
type itemTree struct {
	items testItems
	next  uint32
}

func newItemTree(crate string) (*itemTree, types.ItemID) {
	tree := &itemTree{items: make(testItems), next: 1}
	root := types.ItemID{Crate: 1, Index: 0}
	tree.items[root] = types.ItemKey{Segment: types.PathSegment{Kind: types.SegmentCrateRoot, Name: crate}}
	return tree, root
}

func (t *itemTree) add(parent types.ItemID, seg types.PathSegment) types.ItemID {
	id := types.ItemID{Crate: parent.Crate, Index: t.next}
	t.next++
	p := parent
	t.items[id] = types.ItemKey{Parent: &p, Segment: seg}
	return id
}

func (t *itemTree) named(parent types.ItemID, name string) types.ItemID {
	return t.add(parent, types.PathSegment{Kind: types.SegmentNamed, Name: name})
}

func (t *itemTree) anon(parent types.ItemID, label string, disambiguator uint32) types.ItemID {
	return t.add(parent, types.PathSegment{Kind: types.SegmentAnon, Name: label, Disambiguator: disambiguator})
}

func (t *itemTree) body(parent types.ItemID, kind types.BodyKind, disambiguator uint32) types.ItemID {
	return t.add(parent, types.PathSegment{Kind: types.SegmentBody, Body: kind, Disambiguator: disambiguator})
}

func (t *itemTree) contexts(layouts LayoutProvider) (native, cpp *Context) {
	return NewContext(DialectNative, t.items, layouts), NewContext(DialectCPP, t.items, layouts)
}

// checkBalanced asserts that every bracket pair in name is balanced. The
// native return arrow is not a bracket.
func checkBalanced(t *testing.T, name string) {
	t.Helper()
	s := strings.ReplaceAll(name, " -> ", " ")
	for _, pair := range [][2]rune{{'<', '>'}, {'(', ')'}, {'[', ']'}, {'{', '}'}} {
		nopen := strings.Count(s, string(pair[0]))
		nclose := strings.Count(s, string(pair[1]))
		assert.Equal(t, nopen, nclose, "unbalanced %c%c in %q", pair[0], pair[1], name)
	}
}

// checkCPPParseable asserts the debugger-native hazards of an
// expression-parsing debugger are absent.
func checkCPPParseable(t *testing.T, name string) {
	t.Helper()
	assert.NotContains(t, name, ">>", "unseparated >> in %q", name)
	assert.NotContains(t, name, "#", "macro character in %q", name)
	assert.False(t, strings.HasPrefix(name, "{") || strings.HasPrefix(name, "<"),
		"leading operator character in %q", name)
}
