package element

import (
	"github.com/scene-xyz/go-scene/sgtype"
	"github.com/scene-xyz/go-scene/state"
)

// Region is a viewport rectangle in device coordinates.
type Region struct {
	X, Y, Width, Height int
}

// DeviceHook receives every viewport region issued to the device.
type DeviceHook func(Region)

// ViewportElementType identifies the viewport element class.
var (
	ViewportElementType sgtype.TypeId
	viewportStackIndex  int
	deviceHook          DeviceHook
)

// SetDeviceHook installs the process-wide callback invoked whenever the
// viewport element issues its value to the rendering device. Install it
// during initialization, before traversals begin.
func SetDeviceHook(hook DeviceHook) {
	deviceHook = hook
}

// ViewportElement carries the current viewport region. Unlike pure-data
// elements it talks to an external device: a change issues the region
// immediately, and popping a scope re-issues the restored region rather
// than restoring device state bit-exactly.
type ViewportElement struct {
	state.BaseElement
	region Region
}

func init() {
	ViewportElementType, viewportStackIndex = state.RegisterElement(ElementType, "ViewportElement",
		func() state.Element {
			e := &ViewportElement{}
			e.SetClass(ViewportElementType, viewportStackIndex)
			return e
		})
}

// ViewportStackIndex returns the element's stack index.
func ViewportStackIndex() int { return viewportStackIndex }

// Init sets an empty region without touching the device.
func (e *ViewportElement) Init(st *state.State) {
	e.region = Region{}
}

// Pop re-issues the restored region if the discarded scope had changed it.
func (e *ViewportElement) Pop(st *state.State, prev state.Element) {
	if p, ok := prev.(*ViewportElement); ok && p.region != e.region {
		issue(e.region)
	}
}

// Matches reports whether the other element carries the same region.
func (e *ViewportElement) Matches(other state.Element) bool {
	o, ok := other.(*ViewportElement)
	return ok && o.region == e.region
}

// Copy returns an element carrying the same region.
func (e *ViewportElement) Copy() state.Element {
	c := *e
	return &c
}

// GetViewport returns the current viewport region.
func GetViewport(st *state.State) Region {
	return st.Get(viewportStackIndex).(*ViewportElement).region
}

// SetViewport sets the region in the current scope and issues it to the
// device if it changed.
func SetViewport(st *state.State, r Region) {
	e := st.GetWritable(viewportStackIndex).(*ViewportElement)
	if e.region == r {
		return
	}
	e.region = r
	issue(r)
}

func issue(r Region) {
	if deviceHook != nil {
		deviceHook(r)
	}
}
