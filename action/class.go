// Package action implements the traversal kernel: action classes with
// per-node-type dispatch tables, enabled-element sets, the apply entry
// points for nodes, paths and path lists, the path-code state machine used
// while descending into children, and the reentry primitives that let a
// node method run a nested traversal and resume cleanly.
package action

import (
	"sync"
	"sync/atomic"

	"github.com/scene-xyz/go-scene/element"
	"github.com/scene-xyz/go-scene/sgtype"
	"github.com/scene-xyz/go-scene/state"
)

// Class is the per-action-class registration record: the action's type,
// its dispatch table and the set of elements its traversals need. Classes
// form a tree mirroring the action type hierarchy; method registrations
// and enabled elements are inherited from ancestors.
type Class struct {
	typeId   sgtype.TypeId
	parent   *Class
	methods  *MethodList
	elements *EnabledElements
}

var baseClass *Class

func init() {
	baseClass = &Class{
		typeId:   sgtype.CreateType(sgtype.BadType(), "Action"),
		methods:  newMethodList(nil),
		elements: newEnabledElements(nil),
	}
	// The override element is used by every action class.
	baseClass.EnableElement(element.OverrideElementType, element.OverrideStackIndex())
}

// BaseClass returns the root action class.
func BaseClass() *Class {
	return baseClass
}

// NewClass registers an action class under the given name, deriving from
// parent (nil means the base class).
func NewClass(name string, parent *Class) *Class {
	if parent == nil {
		parent = baseClass
	}
	return &Class{
		typeId:   sgtype.CreateType(parent.typeId, name),
		parent:   parent,
		methods:  newMethodList(parent.methods),
		elements: newEnabledElements(parent.elements),
	}
}

// TypeId returns the action class's type.
func (c *Class) TypeId() sgtype.TypeId { return c.typeId }

// Parent returns the parent class, nil for the base class.
func (c *Class) Parent() *Class { return c.parent }

// Methods returns the class's dispatch table for registration.
func (c *Class) Methods() *MethodList { return c.methods }

// EnableElement declares that traversals of this action class need the
// element registered under typeId at the given stack index. Enabling is
// cumulative down the class tree. Enabling an unregistered element class,
// or one whose stack index disagrees with the registry, panics.
func (c *Class) EnableElement(typeId sgtype.TypeId, stackIndex int) {
	c.elements.enable(typeId, stackIndex)
}

// ----------------------------------------------------------------------
// Enabled elements
// ----------------------------------------------------------------------

// elementsCounter increments whenever any class enables a new element.
// Actions compare it against the value cached with their state to detect
// that the state must be rebuilt.
var elementsCounter atomic.Int64

// EnabledElements is the per-class set of element types required during
// traversal. The effective set of a class is the union of its own set and
// every ancestor's.
type EnabledElements struct {
	mu        sync.Mutex
	parent    *EnabledElements
	factories []state.Factory // sparse, by stack index
	cached    []state.Factory
	cachedAt  int64
}

func newEnabledElements(parent *EnabledElements) *EnabledElements {
	return &EnabledElements{parent: parent, cachedAt: -1}
}

func (e *EnabledElements) enable(typeId sgtype.TypeId, stackIndex int) {
	factory, registered, ok := state.FactoryFor(typeId)
	if !ok {
		panic("action: enabling unregistered element class " + typeId.Name())
	}
	if registered != stackIndex {
		panic("action: stack index mismatch for element class " + typeId.Name())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for len(e.factories) <= stackIndex {
		e.factories = append(e.factories, nil)
	}
	if e.factories[stackIndex] == nil {
		e.factories[stackIndex] = factory
		elementsCounter.Add(1)
	}
}

// Factories returns the effective enabled set as a factory slice indexed
// by stack index, nil for disabled slots. The result is cached until any
// class enables a new element.
func (e *EnabledElements) Factories() []state.Factory {
	counter := elementsCounter.Load()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cached != nil && e.cachedAt == counter {
		return e.cached
	}

	merged := make([]state.Factory, state.NumStackIndices())
	e.mergeInto(merged)
	e.cached = merged
	e.cachedAt = counter
	return merged
}

func (e *EnabledElements) mergeInto(dst []state.Factory) {
	if e.parent != nil {
		e.parent.mu.Lock()
		e.parent.mergeInto(dst)
		e.parent.mu.Unlock()
	}
	for i, f := range e.factories {
		if f != nil {
			dst[i] = f
		}
	}
}
