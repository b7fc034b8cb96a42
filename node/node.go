// Package node defines scene-graph nodes: the Node interface, the
// embeddable Base implementation, the process-wide node-type registry that
// assigns action-method indices, and the built-in node classes (groups,
// separators, transforms, switches and shapes).
//
// Nodes are reference counted. An action pins the head node of each
// traversal for the duration of an apply, groups hold a reference to every
// child, and ref-pinning paths pin every node they pass through, so user
// code releasing a node mid-traversal never leaves a dangling entry.
package node

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scene-xyz/go-scene/sgtype"
)

// Node is a vertex of the scene graph.
type Node interface {
	TypeId() sgtype.TypeId

	// ID is the node's stable identity, used for path ordering and
	// serialization.
	ID() uuid.UUID

	Name() string
	SetName(name string)

	Ref()
	Unref()
	// UnrefNoDestroy decrements the reference count without triggering
	// destruction at zero. Used by traversal internals that pin and unpin
	// nodes they do not own.
	UnrefNoDestroy()
	RefCount() int

	// AffectsState reports whether traversing this node can change the
	// traversal state observed by its siblings. Off-path traversal skips
	// nodes for which this is false.
	AffectsState() bool
}

// Parent is implemented by group-like nodes with an ordered child list.
type Parent interface {
	Node
	NumChildren() int
	Child(i int) Node
}

// Fielded is implemented by nodes that expose serializable field values.
type Fielded interface {
	Fields() map[string]any
}

// Base is the embeddable core of every node implementation.
type Base struct {
	typeId    sgtype.TypeId
	id        uuid.UUID
	name      string
	refs      atomic.Int32
	onDestroy func()
}

// NewBase returns an initialized Base for the given node type. The
// reference count starts at zero; the creator is expected to Ref the node
// if it intends to keep it.
func NewBase(typeId sgtype.TypeId) Base {
	return Base{typeId: typeId, id: uuid.New()}
}

// TypeId returns the node's registered type.
func (b *Base) TypeId() sgtype.TypeId { return b.typeId }

// ID returns the node's unique identity.
func (b *Base) ID() uuid.UUID { return b.id }

// Name returns the node's name, empty by default.
func (b *Base) Name() string { return b.name }

// SetName assigns the node's name.
func (b *Base) SetName(name string) { b.name = name }

// Ref increments the reference count.
func (b *Base) Ref() {
	b.refs.Add(1)
}

// Unref decrements the reference count. When the count reaches zero the
// node releases its resources (a group unrefs its children).
func (b *Base) Unref() {
	n := b.refs.Add(-1)
	if n < 0 {
		logrus.Warnf("node: unref of %q below zero", b.typeId.Name())
		return
	}
	if n == 0 && b.onDestroy != nil {
		b.onDestroy()
	}
}

// UnrefNoDestroy decrements the reference count without destruction.
func (b *Base) UnrefNoDestroy() {
	if b.refs.Add(-1) < 0 {
		logrus.Warnf("node: unref of %q below zero", b.typeId.Name())
	}
}

// RefCount returns the current reference count.
func (b *Base) RefCount() int {
	return int(b.refs.Load())
}

// AffectsState reports true; node classes that leave the traversal state
// untouched override this.
func (b *Base) AffectsState() bool { return true }

// setOnDestroy installs the hook run when the reference count reaches zero.
func (b *Base) setOnDestroy(f func()) { b.onDestroy = f }

// ----------------------------------------------------------------------
// Node-type registry
// ----------------------------------------------------------------------

var (
	regMu      sync.RWMutex
	methodIdx  = map[sgtype.TypeId]int{}
	typeOrder  []sgtype.TypeId
	regVersion int64
)

// Register records a node class and assigns its dense action-method index.
// Dispatch tables are sized from NumTypes and indexed by MethodIndex.
// Registration is idempotent by type name.
func Register(parent sgtype.TypeId, name string, factory func() any) sgtype.TypeId {
	typeId := sgtype.CreateTypeWithFactory(parent, name, factory)

	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := methodIdx[typeId]; ok {
		return typeId
	}
	methodIdx[typeId] = len(typeOrder)
	typeOrder = append(typeOrder, typeId)
	regVersion++
	return typeId
}

// MethodIndex returns the action-method index for a node type, or -1 if
// the type was never registered as a node class.
func MethodIndex(typeId sgtype.TypeId) int {
	regMu.RLock()
	defer regMu.RUnlock()
	if idx, ok := methodIdx[typeId]; ok {
		return idx
	}
	return -1
}

// NumTypes returns the number of registered node classes.
func NumTypes() int {
	regMu.RLock()
	defer regMu.RUnlock()
	return len(typeOrder)
}

// TypeAt returns the node type holding the given action-method index.
func TypeAt(index int) sgtype.TypeId {
	regMu.RLock()
	defer regMu.RUnlock()
	return typeOrder[index]
}

// RegistryVersion returns a counter incremented on every node-class
// registration. Dispatch tables compare it to detect staleness.
func RegistryVersion() int64 {
	regMu.RLock()
	defer regMu.RUnlock()
	return regVersion
}

// Built-in node types, registered at package load.
var (
	NodeType      sgtype.TypeId
	GroupType     sgtype.TypeId
	SeparatorType sgtype.TypeId
	TransformType sgtype.TypeId
	SwitchType    sgtype.TypeId
	ShapeType     sgtype.TypeId
	CubeType      sgtype.TypeId
	SphereType    sgtype.TypeId
)

func init() {
	NodeType = Register(sgtype.BadType(), "Node", nil)
	GroupType = Register(NodeType, "Group", func() any { return NewGroup() })
	SeparatorType = Register(GroupType, "Separator", func() any { return NewSeparator() })
	SwitchType = Register(GroupType, "Switch", func() any { return NewSwitch() })
	TransformType = Register(NodeType, "Transform", func() any { return NewTransform() })
	ShapeType = Register(NodeType, "Shape", nil)
	CubeType = Register(ShapeType, "Cube", func() any { return NewCube() })
	SphereType = Register(ShapeType, "Sphere", func() any { return NewSphere() })
}
