// Package callback implements the callback action: a generic traversal
// that hands every node to user callbacks, before and after its children.
// It is the extension point for one-off graph walks that do not warrant an
// action class of their own, and the hook the trace log uses to record
// traversals.
package callback

import (
	"github.com/scene-xyz/go-scene/action"
	"github.com/scene-xyz/go-scene/element"
	"github.com/scene-xyz/go-scene/methods"
	"github.com/scene-xyz/go-scene/node"
	"github.com/scene-xyz/go-scene/sgtype"
)

// Response tells the action how to continue after a callback.
type Response int

const (
	// Continue proceeds normally.
	Continue Response = iota
	// Prune skips the node's children; traversal continues with its
	// siblings and the post callbacks still run.
	Prune
	// Abort terminates the whole traversal.
	Abort
)

// Callback receives the action and the node being traversed.
type Callback func(a *Action, n node.Node) Response

// Class is the callback action's class record. It enables the matrix and
// viewport elements so callbacks can query the traversal state.
var Class *action.Class

func init() {
	Class = action.NewClass("CallbackAction", nil)
	Class.EnableElement(element.MatrixElementType, element.MatrixStackIndex())
	Class.EnableElement(element.ViewportElementType, element.ViewportStackIndex())
	Class.Methods().Add(node.NodeType, leafMethod)
	Class.Methods().Add(node.GroupType, groupMethod)
	Class.Methods().Add(node.SeparatorType, separatorMethod)
	Class.Methods().Add(node.SwitchType, switchMethod)
	Class.Methods().Add(node.TransformType, transformMethod)
}

type registered struct {
	typeId sgtype.TypeId
	cb     Callback
}

// Action traverses a graph invoking registered callbacks.
type Action struct {
	action.Action
	pre  []registered
	post []registered
}

// New creates a callback action with no callbacks.
func New() *Action {
	c := &Action{}
	c.Init(c, Class)
	return c
}

// AddPreCallback runs cb before nodes of the given type (including derived
// types) are traversed.
func (c *Action) AddPreCallback(typeId sgtype.TypeId, cb Callback) {
	c.pre = append(c.pre, registered{typeId: typeId, cb: cb})
}

// AddPostCallback runs cb after nodes of the given type (including derived
// types) are traversed.
func (c *Action) AddPostCallback(typeId sgtype.TypeId, cb Callback) {
	c.post = append(c.post, registered{typeId: typeId, cb: cb})
}

// invoke runs the matching callbacks from the list and folds their
// responses: Abort dominates, then Prune.
func (c *Action) invoke(list []registered, n node.Node) Response {
	response := Continue
	for _, r := range list {
		if !n.TypeId().IsDerivedFrom(r.typeId) {
			continue
		}
		switch r.cb(c, n) {
		case Abort:
			return Abort
		case Prune:
			response = Prune
		}
	}
	return response
}

// around wraps a node's traversal body in the pre and post callbacks.
func (c *Action) around(n node.Node, body func()) {
	switch c.invoke(c.pre, n) {
	case Abort:
		c.SetTerminated(true)
		return
	case Continue:
		if body != nil {
			body()
		}
	}
	if c.HasTerminated() {
		return
	}
	if c.invoke(c.post, n) == Abort {
		c.SetTerminated(true)
	}
}

func leafMethod(a action.Actor, n node.Node) {
	a.(*Action).around(n, nil)
}

func groupMethod(a action.Actor, n node.Node) {
	c := a.(*Action)
	c.around(n, func() { methods.Group(a, n) })
}

func separatorMethod(a action.Actor, n node.Node) {
	c := a.(*Action)
	st := c.State()
	st.Push()
	c.around(n, func() { methods.Group(a, n) })
	st.Pop()
}

func switchMethod(a action.Actor, n node.Node) {
	c := a.(*Action)
	c.around(n, func() { methods.Switch(a, n) })
}

func transformMethod(a action.Actor, n node.Node) {
	c := a.(*Action)
	c.around(n, func() { methods.Transform(a, n) })
}
