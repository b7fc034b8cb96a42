package cache

import (
	"testing"

	"github.com/scene-xyz/go-scene/fingerprint"
	"github.com/scene-xyz/go-scene/geom"
	"github.com/scene-xyz/go-scene/node"
)

func fpOfCube(width float64) fingerprint.Fingerprint {
	c := node.NewCube()
	c.Width = width
	return fingerprint.Of(c)
}

func TestNewBoxCache(t *testing.T) {
	c := NewBoxCache(100)
	if c.Size() != 0 {
		t.Error("new cache should be empty")
	}
}

func TestPutGet(t *testing.T) {
	c := NewBoxCache(100)
	fp := fpOfCube(2)
	box := geom.NewBox3(geom.Vec3{X: -1, Y: -1, Z: -1}, geom.Vec3{X: 1, Y: 1, Z: 1})

	c.Put(fp, box)

	got, ok := c.Get(fp)
	if !ok || got != box {
		t.Error("should retrieve the stored box")
	}

	if _, ok := c.Get(fpOfCube(3)); ok {
		t.Error("different fingerprint should miss")
	}
}

func TestEviction(t *testing.T) {
	c := NewBoxCache(2)
	c.Put(fpOfCube(1), geom.Box3{})
	c.Put(fpOfCube(2), geom.Box3{})
	c.Put(fpOfCube(3), geom.Box3{})

	if c.Size() > 2 {
		t.Errorf("cache size should be <= 2, got %d", c.Size())
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", c.Stats().Evictions)
	}
}

func TestGetOrCompute(t *testing.T) {
	c := NewBoxCache(100)
	fp := fpOfCube(4)

	computeCount := 0
	compute := func() geom.Box3 {
		computeCount++
		return geom.NewBox3(geom.Vec3{}, geom.Vec3{X: 4})
	}

	b1 := c.GetOrCompute(fp, compute)
	if computeCount != 1 {
		t.Error("should compute on first call")
	}
	b2 := c.GetOrCompute(fp, compute)
	if computeCount != 1 {
		t.Error("should not compute on second call")
	}
	if b1 != b2 {
		t.Error("should return the cached box")
	}
}

func TestStats(t *testing.T) {
	c := NewBoxCache(100)
	fp := fpOfCube(5)
	c.Put(fp, geom.Box3{})

	c.Get(fp)          // hit
	c.Get(fpOfCube(6)) // miss

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("expected 0.5 hit rate, got %f", stats.HitRate)
	}
}

func TestClear(t *testing.T) {
	c := NewBoxCache(100)
	c.Put(fpOfCube(1), geom.Box3{})
	c.Put(fpOfCube(2), geom.Box3{})

	c.Clear()
	if c.Size() != 0 {
		t.Error("cache should be empty after clear")
	}
}
