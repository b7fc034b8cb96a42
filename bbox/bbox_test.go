package bbox_test

import (
	"math"
	"testing"

	"github.com/scene-xyz/go-scene/bbox"
	"github.com/scene-xyz/go-scene/cache"
	"github.com/scene-xyz/go-scene/geom"
	"github.com/scene-xyz/go-scene/node"
	"github.com/scene-xyz/go-scene/path"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func translated(x float64) *node.Transform {
	tr := node.NewTransform()
	tr.Translation = geom.Vec3{X: x}
	return tr
}

func TestSingleCube(t *testing.T) {
	root := node.NewGroup()
	root.AddChild(node.NewCube())
	root.Ref()

	b := bbox.New()
	b.Apply(root)

	box := b.Box()
	if box.IsEmpty() {
		t.Fatal("box should not be empty")
	}
	if !almost(box.Min.X, -1) || !almost(box.Max.X, 1) {
		t.Errorf("default cube should span -1..1, got %v %v", box.Min, box.Max)
	}
	if !almost(b.Center().X, 0) {
		t.Errorf("center should be at origin, got %v", b.Center())
	}
}

func TestTransformMovesShapes(t *testing.T) {
	root := node.NewGroup()
	root.AddChild(translated(5))
	root.AddChild(node.NewCube())
	root.Ref()

	b := bbox.New()
	b.Apply(root)

	box := b.Box()
	if !almost(box.Min.X, 4) || !almost(box.Max.X, 6) {
		t.Errorf("translated cube should span 4..6, got %v %v", box.Min, box.Max)
	}
}

func TestSeparatorConfinesTransform(t *testing.T) {
	root := node.NewGroup()
	sep := node.NewSeparator()
	sep.AddChild(translated(100))
	sep.AddChild(node.NewCube())
	root.AddChild(sep)
	root.AddChild(node.NewCube())
	root.Ref()

	b := bbox.New()
	b.Apply(root)

	box := b.Box()
	if !almost(box.Min.X, -1) || !almost(box.Max.X, 101) {
		t.Errorf("expected union of origin cube and moved cube, got %v %v", box.Min, box.Max)
	}
}

func TestScaledSphere(t *testing.T) {
	root := node.NewGroup()
	tr := node.NewTransform()
	tr.ScaleFactor = 3
	root.AddChild(tr)
	root.AddChild(node.NewSphere())
	root.Ref()

	b := bbox.New()
	b.Apply(root)

	box := b.Box()
	if !almost(box.Min.X, -3) || !almost(box.Max.Z, 3) {
		t.Errorf("scaled sphere should span -3..3, got %v %v", box.Min, box.Max)
	}
}

func TestAppliedToPath(t *testing.T) {
	root := node.NewGroup()
	left := node.NewCube()
	rightTr := translated(50)
	sep := node.NewSeparator()
	sep.AddChild(rightTr)
	sep.AddChild(node.NewCube())
	root.AddChild(left)
	root.AddChild(sep)
	root.Ref()

	p := path.NewFromHead(root)
	p.Append(0)

	b := bbox.New()
	b.ApplyPath(p)

	box := b.Box()
	if !almost(box.Max.X, 1) {
		t.Errorf("path-restricted box should only cover the left cube, got %v %v", box.Min, box.Max)
	}
}

func TestResetBetweenApplies(t *testing.T) {
	big := node.NewGroup()
	tr := node.NewTransform()
	tr.ScaleFactor = 10
	big.AddChild(tr)
	big.AddChild(node.NewCube())
	big.Ref()

	small := node.NewGroup()
	small.AddChild(node.NewCube())
	small.Ref()

	b := bbox.New()
	b.Apply(big)
	b.Apply(small)

	if !almost(b.Box().Max.X, 1) {
		t.Errorf("second apply should not accumulate into the first, got %v", b.Box().Max)
	}
}

// A shared separator instanced under different transforms must produce
// correct boxes from the cache, since cached boxes are separator-local.
func TestCachedSeparatorUnderDifferentTransforms(t *testing.T) {
	sep := node.NewSeparator()
	sep.AddChild(node.NewCube())

	root := node.NewGroup()
	root.AddChild(translated(5))
	root.AddChild(sep)
	root.AddChild(translated(7)) // accumulates to x=12
	root.AddChild(sep)
	root.Ref()

	plain := bbox.New()
	plain.Apply(root)

	boxCache := cache.NewBoxCache(16)
	cached := bbox.New()
	cached.SetCache(boxCache)
	cached.Apply(root)

	if cached.Box() != plain.Box() {
		t.Errorf("cached result should match uncached: %v vs %v", cached.Box(), plain.Box())
	}
	stats := boxCache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("second instance should hit the cache, got %+v", stats)
	}

	// A second apply hits for every instance.
	cached.Apply(root)
	if got := boxCache.Stats().Hits; got != 3 {
		t.Errorf("expected 3 cumulative hits, got %d", got)
	}
	if cached.Box() != plain.Box() {
		t.Error("fully cached apply should still match")
	}
}

func TestCacheInvalidatedByFieldChange(t *testing.T) {
	sep := node.NewSeparator()
	c := node.NewCube()
	sep.AddChild(c)
	root := node.NewGroup()
	root.AddChild(sep)
	root.Ref()

	boxCache := cache.NewBoxCache(16)
	b := bbox.New()
	b.SetCache(boxCache)

	b.Apply(root)
	first := b.Box()

	c.Width = 10
	b.Apply(root)
	second := b.Box()

	if first == second {
		t.Error("changing the cube should change the fingerprint and recompute")
	}
	if !almost(second.Max.X, 5) {
		t.Errorf("widened cube should span -5..5, got %v", second)
	}
}
