package path

import (
	"testing"

	"github.com/scene-xyz/go-scene/node"
)

// buildGraph returns root -> [a, b, c], a -> [a0, a1].
func buildGraph() (root, a, b, c, a0, a1 *node.Group) {
	root = node.NewGroup()
	a, b, c = node.NewGroup(), node.NewGroup(), node.NewGroup()
	a0, a1 = node.NewGroup(), node.NewGroup()
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	a.AddChild(a0)
	a.AddChild(a1)
	return
}

func pathTo(head node.Node, indices ...int) *Path {
	p := NewFromHead(head)
	for _, i := range indices {
		p.Append(i)
	}
	return p
}

func TestPathBasics(t *testing.T) {
	root, a, _, _, _, a1 := buildGraph()
	p := pathTo(root, 0, 1)

	if p.Length() != 3 {
		t.Fatalf("expected length 3, got %d", p.Length())
	}
	if p.Head() != node.Node(root) || p.Tail() != node.Node(a1) {
		t.Error("head/tail wrong")
	}
	if p.Node(1) != node.Node(a) || p.Index(1) != 0 || p.Index(2) != 1 {
		t.Error("steps resolved incorrectly")
	}
	if p.Index(0) != -1 {
		t.Error("head index should be -1")
	}

	p.Pop()
	if p.Length() != 2 || p.Tail() != node.Node(a) {
		t.Error("pop should drop the last step")
	}
}

func TestPathPinsNodes(t *testing.T) {
	root, a, _, _, _, a1 := buildGraph()
	p := pathTo(root, 0, 1)

	// One ref from the parent group, one from the path.
	if a1.RefCount() != 2 {
		t.Errorf("path should ref nodes, got %d", a1.RefCount())
	}
	p.Truncate(1)
	if a1.RefCount() != 1 || a.RefCount() != 1 {
		t.Error("truncate should release refs")
	}
	_ = p
}

func TestTempPathDoesNotPin(t *testing.T) {
	root, a, _, _, _, _ := buildGraph()
	p := NewTemp()
	p.SetHead(root)
	p.Append(0)
	if a.RefCount() != 1 {
		t.Errorf("temp path should not ref, got %d", a.RefCount())
	}
}

func TestSetHeadTruncates(t *testing.T) {
	root, _, b, _, _, _ := buildGraph()
	p := pathTo(root, 0, 1)
	p.SetHead(b)
	if p.Length() != 1 || p.Head() != node.Node(b) {
		t.Error("SetHead should restart the path")
	}
}

func TestContainsPath(t *testing.T) {
	root, _, _, _, _, _ := buildGraph()

	full := pathTo(root, 0, 1)
	prefix := pathTo(root, 0)
	headOnly := pathTo(root)
	sibling := pathTo(root, 1)

	if !full.ContainsPath(prefix) || !full.ContainsPath(headOnly) {
		t.Error("prefixes should be contained")
	}
	if !full.ContainsPath(full) {
		t.Error("a path contains itself")
	}
	if prefix.ContainsPath(full) {
		t.Error("a prefix does not contain its extension")
	}
	if full.ContainsPath(sibling) {
		t.Error("diverging paths are not contained")
	}
	if full.ContainsPath(NewTemp()) {
		t.Error("the empty path is contained in nothing")
	}
}

func TestCompareOrdering(t *testing.T) {
	root, _, _, _, _, _ := buildGraph()

	p01 := pathTo(root, 0, 1)
	p0 := pathTo(root, 0)
	p1 := pathTo(root, 1)

	if p0.Compare(p01) >= 0 {
		t.Error("a prefix should sort before its extension")
	}
	if p01.Compare(p1) >= 0 {
		t.Error("indices should order lexicographically")
	}
	if p01.Compare(p01.Copy()) != 0 {
		t.Error("equal paths should compare equal")
	}

	other := node.NewGroup()
	q := pathTo(other)
	// Different heads order consistently in both directions.
	if (p0.Compare(q) < 0) == (q.Compare(p0) < 0) {
		t.Error("head ordering should be antisymmetric")
	}
}

func TestListSortUniquify(t *testing.T) {
	root, _, _, _, _, _ := buildGraph()

	l := NewList()
	l.Append(pathTo(root, 0, 1))
	l.Append(pathTo(root, 0))
	l.Append(pathTo(root, 0, 1))
	l.Append(pathTo(root, 1))

	l.Sort()
	l.Uniquify()

	if l.Len() != 2 {
		t.Fatalf("expected 2 survivors, got %d", l.Len())
	}
	if l.At(0).Length() != 2 || l.At(0).Index(1) != 0 {
		t.Error("the prefix path should subsume its extensions")
	}
	if l.At(1).Index(1) != 1 {
		t.Error("sibling path should survive")
	}

	// Idempotence.
	before := make([]*Path, l.Len())
	for i := range before {
		before[i] = l.At(i)
	}
	l.Sort()
	l.Uniquify()
	if l.Len() != len(before) {
		t.Fatal("sort+uniquify should be idempotent")
	}
	for i, p := range before {
		if l.At(i) != p {
			t.Error("idempotent run should not reorder")
		}
	}

	// No survivor is a prefix of another.
	for i := 0; i < l.Len(); i++ {
		for j := 0; j < l.Len(); j++ {
			if i != j && l.At(i).ContainsPath(l.At(j)) {
				t.Error("uniquified list should hold no prefix pairs")
			}
		}
	}
}

func TestListFind(t *testing.T) {
	root, _, _, _, _, _ := buildGraph()
	l := NewList()
	p := pathTo(root, 0)
	l.Append(p)

	if l.Find(pathTo(root, 0)) != 0 {
		t.Error("Find should match by content")
	}
	if l.Find(pathTo(root, 1)) != -1 {
		t.Error("Find should miss absent paths")
	}
}

func TestMultiHeadSortGroupsHeads(t *testing.T) {
	root1, _, _, _, _, _ := buildGraph()
	root2 := node.NewGroup()
	root2.AddChild(node.NewCube())

	l := NewList()
	l.Append(pathTo(root1, 0))
	l.Append(pathTo(root2, 0))
	l.Append(pathTo(root1, 1))
	l.Sort()

	// After sorting, paths sharing a head are adjacent.
	heads := []node.Node{l.At(0).Head(), l.At(1).Head(), l.At(2).Head()}
	if heads[0] == heads[1] && heads[1] == heads[2] {
		t.Fatal("test graph should have two distinct heads")
	}
	if heads[0] != heads[1] && heads[1] != heads[2] {
		t.Error("sort should group paths by head")
	}
}
