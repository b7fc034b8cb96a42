package action

import "github.com/scene-xyz/go-scene/node"

// TraverseChildren traverses every child of a group-like node, honoring
// the current path code and the termination flag.
func TraverseChildren(a Actor, parent node.Parent) {
	if parent.NumChildren() > 0 {
		TraverseChildRange(a, parent, 0, parent.NumChildren()-1)
	}
}

// TraverseChildRange traverses the children in [first, last]. The path
// code decides how:
//
//   - NoPath/BelowPath: every child, via a placeholder path entry since
//     the code cannot change.
//   - InPath: every child, each descent re-evaluating the code; children
//     that land off every path are entered only if they affect state.
//   - OffPath: only state-affecting children.
func TraverseChildRange(a Actor, parent node.Parent, first, last int) {
	k := a.Kernel()
	code := k.CurPathCode()

	switch code {
	case NoPath, BelowPath:
		k.PushCurPathAll()
		for i := first; i <= last && !k.HasTerminated(); i++ {
			child := parent.Child(i)
			k.PopPushCurPath(i, child)
			k.Traverse(child)
		}
		k.PopCurPathAll()

	case InPath:
		for i := first; i <= last && !k.HasTerminated(); i++ {
			child := parent.Child(i)
			k.PushCurPath(i, child)
			if k.CurPathCode() != OffPath || child.AffectsState() {
				k.Traverse(child)
			}
			k.PopCurPath(code)
		}

	case OffPath:
		for i := first; i <= last && !k.HasTerminated(); i++ {
			child := parent.Child(i)
			if !child.AffectsState() {
				continue
			}
			k.PushCurPath(i, child)
			k.Traverse(child)
			k.PopCurPath(code)
		}
	}
}

// TraverseInPath traverses the children that continue the applied paths,
// as listed by PathCode, visiting state-affecting off-path children first
// so on-path siblings observe correct state. Children after the last
// on-path index are not visited.
func TraverseInPath(a Actor, parent node.Parent, indices []int) {
	k := a.Kernel()
	code := k.CurPathCode()

	childIdx := 0
	for _, stop := range indices {
		if k.HasTerminated() {
			return
		}
		for ; childIdx < stop && !k.HasTerminated(); childIdx++ {
			child := parent.Child(childIdx)
			if !child.AffectsState() {
				continue
			}
			k.PushCurPath(childIdx, child)
			k.Traverse(child)
			k.PopCurPath(code)
		}
		if k.HasTerminated() {
			return
		}
		child := parent.Child(childIdx)
		k.PushCurPath(childIdx, child)
		k.Traverse(child)
		k.PopCurPath(code)
		childIdx++
	}
}
