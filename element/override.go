package element

import (
	"github.com/scene-xyz/go-scene/sgtype"
	"github.com/scene-xyz/go-scene/state"
)

// Override flags. A set flag marks the corresponding traversal aspect as
// pinned by an ancestor, which descendants are expected to respect.
const (
	OverrideTransform uint32 = 1 << iota
	OverrideViewport
)

// OverrideElementType identifies the override element class. It is enabled
// for every action class at the root of the class tree.
var (
	OverrideElementType sgtype.TypeId
	overrideStackIndex  int
)

// OverrideElement carries the bitmask of active override flags.
type OverrideElement struct {
	state.BaseElement
	flags uint32
}

func init() {
	OverrideElementType, overrideStackIndex = state.RegisterElement(ElementType, "OverrideElement",
		func() state.Element {
			e := &OverrideElement{}
			e.SetClass(OverrideElementType, overrideStackIndex)
			return e
		})
}

// OverrideStackIndex returns the element's stack index.
func OverrideStackIndex() int { return overrideStackIndex }

// Init clears all flags.
func (e *OverrideElement) Init(st *state.State) {
	e.flags = 0
}

// Matches reports whether the other element carries the same flags.
func (e *OverrideElement) Matches(other state.Element) bool {
	o, ok := other.(*OverrideElement)
	return ok && o.flags == e.flags
}

// Copy returns an element carrying the same flags.
func (e *OverrideElement) Copy() state.Element {
	c := *e
	return &c
}

// GetOverrides returns the active override flags.
func GetOverrides(st *state.State) uint32 {
	return st.Get(overrideStackIndex).(*OverrideElement).flags
}

// SetOverride sets or clears a flag in the current scope.
func SetOverride(st *state.State, flag uint32, on bool) {
	e := st.GetWritable(overrideStackIndex).(*OverrideElement)
	if on {
		e.flags |= flag
	} else {
		e.flags &^= flag
	}
}
