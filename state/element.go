// Package state implements the traversal state: a stack of elements that
// behaves as if lexically scoped while actions descend through a scene
// graph. Each element class registers once and receives a dense stack index
// used for O(1) lookup; writes inside a deeper scope transparently push a
// copy of the element, and closing the scope restores the previous top.
package state

import (
	"fmt"
	"sync"

	"github.com/scene-xyz/go-scene/sgtype"
)

// Element is a stackable unit of traversal context.
//
// Init is called when the element is first instantiated for a state.
// Push is called on a freshly copied element when a deeper scope writes it.
// Pop is called on the element being restored as top when a scope closes,
// with prev set to the element being discarded; side-effect elements use it
// to re-issue their value to an external device instead of restoring exact
// device state.
type Element interface {
	StackIndex() int
	TypeId() sgtype.TypeId
	Init(st *State)
	Push(st *State)
	Pop(st *State, prev Element)
	Matches(other Element) bool
	Copy() Element
}

// Factory creates a fresh element instance for a state.
type Factory func() Element

type elemClass struct {
	typeId  sgtype.TypeId
	factory Factory
}

var (
	regMu       sync.RWMutex
	elemClasses []elemClass
	elemByType  = map[sgtype.TypeId]int{}
)

// RegisterElement registers an element class under the given name and
// returns its TypeId together with the stack index assigned to it. The
// stack index is dense and stable for the lifetime of the process.
// Registration is idempotent by type name.
func RegisterElement(parent sgtype.TypeId, name string, factory Factory) (sgtype.TypeId, int) {
	typeId := sgtype.CreateType(parent, name)

	regMu.Lock()
	defer regMu.Unlock()
	if idx, ok := elemByType[typeId]; ok {
		return typeId, idx
	}
	idx := len(elemClasses)
	elemClasses = append(elemClasses, elemClass{typeId: typeId, factory: factory})
	elemByType[typeId] = idx
	return typeId, idx
}

// NumStackIndices returns the number of registered element classes.
func NumStackIndices() int {
	regMu.RLock()
	defer regMu.RUnlock()
	return len(elemClasses)
}

// FactoryFor returns the factory and stack index registered for the given
// element type.
func FactoryFor(typeId sgtype.TypeId) (Factory, int, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	idx, ok := elemByType[typeId]
	if !ok {
		return nil, 0, false
	}
	return elemClasses[idx].factory, idx, true
}

// BaseElement carries the class identity shared by all instances of an
// element class. Concrete elements embed it and call SetClass from their
// factory.
type BaseElement struct {
	typeId     sgtype.TypeId
	stackIndex int
}

// SetClass records the element's type and stack index.
func (e *BaseElement) SetClass(typeId sgtype.TypeId, stackIndex int) {
	e.typeId = typeId
	e.stackIndex = stackIndex
}

// StackIndex returns the stack index assigned at class registration.
func (e *BaseElement) StackIndex() int { return e.stackIndex }

// TypeId returns the element's class type.
func (e *BaseElement) TypeId() sgtype.TypeId { return e.typeId }

// Init does nothing. Concrete elements override it to set defaults.
func (e *BaseElement) Init(st *State) {}

// Push does nothing. The state has already copied the previous top's
// content into the new element before calling it.
func (e *BaseElement) Push(st *State) {}

// Pop does nothing.
func (e *BaseElement) Pop(st *State, prev Element) {}

func elementName(index int) string {
	regMu.RLock()
	defer regMu.RUnlock()
	if index >= 0 && index < len(elemClasses) {
		return elemClasses[index].typeId.Name()
	}
	return fmt.Sprintf("stack index %d", index)
}
