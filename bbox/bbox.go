// Package bbox implements the bounding-box action: it computes the
// world-space bounding box and center of everything a traversal reaches.
// Separator subtrees can be memoized through a fingerprint-keyed box
// cache; cached boxes are stored in separator-local coordinates, so a hit
// is valid wherever the subtree appears and under any ancestor transform.
package bbox

import (
	"github.com/scene-xyz/go-scene/action"
	"github.com/scene-xyz/go-scene/cache"
	"github.com/scene-xyz/go-scene/element"
	"github.com/scene-xyz/go-scene/fingerprint"
	"github.com/scene-xyz/go-scene/geom"
	"github.com/scene-xyz/go-scene/methods"
	"github.com/scene-xyz/go-scene/node"
)

// Class is the bounding-box action's class record.
var Class *action.Class

func init() {
	Class = action.NewClass("GetBoundingBoxAction", nil)
	Class.EnableElement(element.MatrixElementType, element.MatrixStackIndex())
	Class.Methods().Add(node.GroupType, methods.Group)
	Class.Methods().Add(node.SwitchType, methods.Switch)
	Class.Methods().Add(node.TransformType, methods.Transform)
	Class.Methods().Add(node.SeparatorType, separatorMethod)
	Class.Methods().Add(node.ShapeType, shapeMethod)
}

// boxer is satisfied by shapes with an intrinsic object-space box.
type boxer interface {
	Box() geom.Box3
}

// Action accumulates a bounding box over a traversal.
type Action struct {
	action.Action

	box         geom.Box3
	centerSum   geom.Vec3
	centerCount int

	boxCache *cache.BoxCache
}

// New creates a bounding-box action without caching.
func New() *Action {
	b := &Action{}
	b.Init(b, Class)
	return b
}

// SetCache installs a box cache consulted at separator boundaries. Pass
// nil to disable caching.
func (b *Action) SetCache(c *cache.BoxCache) {
	b.boxCache = c
}

// Box returns the accumulated bounding box.
func (b *Action) Box() geom.Box3 {
	return b.box
}

// Center returns the average of the shape centers seen by the traversal,
// or the box center when no shape center was recorded. With a cache
// installed, shapes beneath separators record no center, whether the
// separator's box came from the cache or was measured on a miss.
func (b *Action) Center() geom.Vec3 {
	if b.centerCount == 0 {
		return b.box.Center()
	}
	return b.centerSum.Scale(1 / float64(b.centerCount))
}

// BeginTraversal resets the accumulators, then traverses inside a state
// scope of its own, so matrix changes made during one apply do not carry
// over into the next apply of the same action.
func (b *Action) BeginTraversal(n node.Node) {
	b.box = geom.Box3{}
	b.centerSum = geom.Vec3{}
	b.centerCount = 0
	st := b.State()
	st.Push()
	b.Traverse(n)
	st.Pop()
}

func (b *Action) extendBy(box geom.Box3) {
	b.box = b.box.ExtendByBox(box)
}

func shapeMethod(a action.Actor, n node.Node) {
	b := a.(*Action)
	shape, ok := n.(boxer)
	if !ok {
		return
	}
	world := shape.Box().Transform(element.GetMatrix(b.State()))
	b.extendBy(world)
	b.centerSum = b.centerSum.Add(world.Center())
	b.centerCount++
}

// separatorMethod measures the subtree in separator-local coordinates so
// the result can be cached, then folds it into the accumulated box under
// the matrix in force outside the separator.
func separatorMethod(a action.Actor, n node.Node) {
	b := a.(*Action)
	st := b.State()
	outer := element.GetMatrix(st)

	if b.boxCache == nil {
		// No cache: measure in place, in world coordinates.
		st.Push()
		methods.Group(a, n)
		st.Pop()
		return
	}

	fp := fingerprint.Of(n)
	if local, ok := b.boxCache.Get(fp); ok {
		b.extendBy(local.Transform(outer))
		return
	}

	savedBox := b.box
	savedSum, savedCount := b.centerSum, b.centerCount
	b.box = geom.Box3{}

	st.Push()
	element.SetMatrix(st, geom.Identity())
	methods.Group(a, n)
	st.Pop()

	local := b.box
	b.boxCache.Put(fp, local)

	b.box = savedBox
	b.centerSum, b.centerCount = savedSum, savedCount
	b.extendBy(local.Transform(outer))
}
