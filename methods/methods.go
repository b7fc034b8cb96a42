// Package methods provides the default per-node-type traversal methods
// shared by the concrete action classes: path-code aware group descent,
// separator state scoping, transform accumulation and switch child
// selection. Action classes register these against their dispatch tables
// and override only where their semantics differ.
package methods

import (
	"github.com/scene-xyz/go-scene/action"
	"github.com/scene-xyz/go-scene/element"
	"github.com/scene-xyz/go-scene/node"
)

// Group traverses a group's children, honoring the current path code.
func Group(a action.Actor, n node.Node) {
	g := n.(node.Parent)
	if code, indices := a.Kernel().PathCode(); code == action.InPath {
		action.TraverseInPath(a, g, indices)
	} else {
		action.TraverseChildren(a, g)
	}
}

// Separator traverses like Group inside its own state scope, so element
// writes beneath it never leak to siblings.
func Separator(a action.Actor, n node.Node) {
	st := a.Kernel().State()
	st.Push()
	Group(a, n)
	st.Pop()
}

// Transform multiplies the node's matrix into the model-matrix element,
// unless an ancestor pinned the transform via the override element.
func Transform(a action.Actor, n node.Node) {
	st := a.Kernel().State()
	if element.GetOverrides(st)&element.OverrideTransform != 0 {
		return
	}
	t := n.(*node.Transform)
	element.MultMatrix(st, t.Matrix())
}

// Switch traverses the child selected by the switch node: none, one, or
// all. Single-child descent goes through the ranged traversal so path
// codes stay correct.
func Switch(a action.Actor, n node.Node) {
	sw := n.(*node.Switch)
	switch which := sw.WhichChild; which {
	case node.SwitchNone:
		// nothing to traverse
	case node.SwitchAll:
		Group(a, n)
	default:
		if which >= 0 && which < sw.NumChildren() {
			action.TraverseChildRange(a, sw, which, which)
		}
	}
}

// RegisterDefaults adds the default group, separator, switch and
// transform methods to an action class's dispatch table. Actions needing
// the model matrix must also enable the matrix element.
func RegisterDefaults(c *action.Class) {
	c.Methods().Add(node.GroupType, Group)
	c.Methods().Add(node.SeparatorType, Separator)
	c.Methods().Add(node.SwitchType, Switch)
	c.Methods().Add(node.TransformType, Transform)
}
