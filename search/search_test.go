package search_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scene-xyz/go-scene/node"
	"github.com/scene-xyz/go-scene/path"
	"github.com/scene-xyz/go-scene/search"
)

// buildGraph returns root -> [g1, cube1, sw], g1 -> [cube2, sphere],
// sw -> [cube3] with the switch turned off.
func buildGraph() (root, g1 *node.Group, sw *node.Switch, cube1, cube2, cube3 *node.Cube, sphere *node.Sphere) {
	root = node.NewGroup()
	root.SetName("root")
	g1 = node.NewGroup()
	g1.SetName("g1")
	sw = node.NewSwitch()
	sw.SetName("sw")
	cube1, cube2, cube3 = node.NewCube(), node.NewCube(), node.NewCube()
	cube1.SetName("cube1")
	cube2.SetName("cube2")
	cube3.SetName("cube3")
	sphere = node.NewSphere()
	sphere.SetName("sphere")

	root.AddChild(g1)
	root.AddChild(cube1)
	root.AddChild(sw)
	g1.AddChild(cube2)
	g1.AddChild(sphere)
	sw.AddChild(cube3)
	root.Ref()
	return
}

func pathNames(p *path.Path) []string {
	var names []string
	for i := 0; i < p.Length(); i++ {
		names = append(names, p.Node(i).Name())
	}
	return names
}

func TestFindFirstByType(t *testing.T) {
	root, _, _, _, _, _, _ := buildGraph()

	s := search.New()
	s.SetType(node.CubeType, false)
	s.Apply(root)

	if !s.IsFound() {
		t.Fatal("search should find a cube")
	}
	// Depth-first, left-to-right: cube2 inside g1 comes before cube1.
	want := []string{"root", "g1", "cube2"}
	if diff := cmp.Diff(want, pathNames(s.Path())); diff != "" {
		t.Errorf("first match path mismatch (-want +got):\n%s", diff)
	}
	if s.Path().Index(1) != 0 || s.Path().Index(2) != 0 {
		t.Error("match path indices wrong")
	}
}

func TestFindAllByTypeSkipsSwitchedOff(t *testing.T) {
	root, _, _, _, _, _, _ := buildGraph()

	s := search.New()
	s.SetType(node.CubeType, false)
	s.SetInterest(search.All)
	s.Apply(root)

	var tails []string
	for i := 0; i < s.Paths().Len(); i++ {
		tails = append(tails, s.Paths().At(i).Tail().Name())
	}
	want := []string{"cube2", "cube1"}
	if diff := cmp.Diff(want, tails); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchingAllEntersSwitches(t *testing.T) {
	root, _, _, _, _, _, _ := buildGraph()

	s := search.New()
	s.SetType(node.CubeType, false)
	s.SetInterest(search.All)
	s.SetSearchingAll(true)
	s.Apply(root)

	if s.Paths().Len() != 3 {
		t.Errorf("searching all should see the switched-off cube, got %d matches", s.Paths().Len())
	}
}

func TestFindByDerivedType(t *testing.T) {
	root, _, _, _, _, _, _ := buildGraph()

	s := search.New()
	s.SetType(node.ShapeType, true)
	s.SetInterest(search.All)
	s.Apply(root)

	if s.Paths().Len() != 3 {
		t.Errorf("expected cubes and sphere via derived match, got %d", s.Paths().Len())
	}

	s.Reset()
	s.SetType(node.ShapeType, false)
	s.SetInterest(search.All)
	s.Apply(root)
	if s.IsFound() {
		t.Error("exact-type search for an abstract type should find nothing")
	}
}

func TestFindByName(t *testing.T) {
	root, _, _, _, _, _, sphere := buildGraph()

	s := search.New()
	s.SetName("sphere")
	s.Apply(root)

	if !s.IsFound() || s.Path().Tail() != node.Node(sphere) {
		t.Error("search by name should find the sphere")
	}
}

func TestFindByNode(t *testing.T) {
	root, _, _, cube1, _, _, _ := buildGraph()

	s := search.New()
	s.SetNode(cube1)
	s.Apply(root)

	if !s.IsFound() {
		t.Fatal("search by node should succeed")
	}
	want := []string{"root", "cube1"}
	if diff := cmp.Diff(want, pathNames(s.Path())); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestInterestLast(t *testing.T) {
	root, _, _, cube1, _, _, _ := buildGraph()

	s := search.New()
	s.SetType(node.CubeType, false)
	s.SetInterest(search.Last)
	s.Apply(root)

	if s.Path().Tail() != node.Node(cube1) {
		t.Errorf("last match should be cube1, got %q", s.Path().Tail().Name())
	}
	if s.Paths().Len() != 1 {
		t.Error("interest Last should keep a single path")
	}
}

func TestFirstTerminates(t *testing.T) {
	root, _, _, _, _, _, _ := buildGraph()

	s := search.New()
	s.SetType(node.GroupType, false)
	s.Apply(root)

	if !s.HasTerminated() {
		t.Error("first-interest search should terminate on match")
	}
	if s.Path().Tail() != node.Node(root) {
		t.Error("root itself should match first")
	}
}

func TestResultPathsArePinned(t *testing.T) {
	root, g1, _, _, cube2, _, _ := buildGraph()

	s := search.New()
	s.SetNode(cube2)
	s.Apply(root)

	// Refs: parent group + result path.
	if cube2.RefCount() != 2 {
		t.Errorf("result path should pin its nodes, got %d refs", cube2.RefCount())
	}

	// Detaching the node from the graph keeps the path entries valid.
	g1.RemoveChildNode(cube2)
	if cube2.RefCount() != 1 {
		t.Errorf("expected one remaining ref from the path, got %d", cube2.RefCount())
	}
	if s.Path().Tail() != node.Node(cube2) {
		t.Error("path should still resolve the detached node")
	}
}

func TestSearchAppliedToPath(t *testing.T) {
	root, _, _, _, _, _, _ := buildGraph()

	// Restrict the search to the subtree along root -> g1.
	p := path.NewFromHead(root)
	p.Append(0)

	s := search.New()
	s.SetType(node.CubeType, false)
	s.SetInterest(search.All)
	s.ApplyPath(p)

	if s.Paths().Len() != 1 || s.Paths().At(0).Tail().Name() != "cube2" {
		t.Errorf("path-restricted search should only see cube2, got %d matches", s.Paths().Len())
	}
}
