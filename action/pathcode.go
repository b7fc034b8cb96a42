package action

import (
	"github.com/scene-xyz/go-scene/node"
	"github.com/scene-xyz/go-scene/path"
)

// PushCurPath records descent into the childIndex'th child and updates the
// path code. Use it whenever the code might change as a result of the
// descent; pair it with PopCurPath.
func (a *Action) PushCurPath(childIndex int, child node.Node) {
	a.currentPath.AppendNode(child, childIndex)
	if a.currentPathCode != InPath {
		return
	}
	curlen := a.currentPath.Length()

	if a.appliedCode == AppliedPath {
		target := a.appliedPath
		switch {
		case a.currentPath.Index(curlen-1) != target.Index(curlen-1):
			a.currentPathCode = OffPath
		case curlen == target.Length():
			a.currentPathCode = BelowPath
		}
		return
	}

	// Path list: find any path that contains the current path. None
	// found means the descent left every path; a containing path ending
	// exactly here puts the traversal below it. Containment is a linear
	// scan; list traversal is not applied to lists large enough for a
	// compacted representation to pay off.
	l := a.appliedList
	foundLen := -1
	for i := 0; i < l.Len(); i++ {
		p := l.At(i)
		if p.Length() >= curlen && p.ContainsPath(a.currentPath) {
			foundLen = p.Length()
			break
		}
	}
	switch {
	case foundLen < 0:
		a.currentPathCode = OffPath
	case foundLen == curlen:
		a.currentPathCode = BelowPath
	}
}

// PopCurPath undoes a PushCurPath, restoring the code recorded before it.
func (a *Action) PopCurPath(prev PathCode) {
	a.currentPath.Pop()
	a.currentPathCode = prev
}

// PushCurPathAll pushes a placeholder entry. Use it before traversing all
// children uniformly, when the path code cannot change; advance between
// siblings with PopPushCurPath and finish with PopCurPathAll.
func (a *Action) PushCurPathAll() {
	a.currentPath.AppendNode(nil, -1)
}

// PopPushCurPath replaces the tail entry with the childIndex'th child,
// moving between siblings without a code check.
func (a *Action) PopPushCurPath(childIndex int, child node.Node) {
	a.currentPath.Pop()
	a.currentPath.AppendNode(child, childIndex)
}

// PopCurPathAll pops the entry pushed by PushCurPathAll.
func (a *Action) PopCurPathAll() {
	a.currentPath.Pop()
}

// PathCode returns the current path code and, when InPath, the child
// indices at the current depth that continue any relevant path, in
// traversal order without duplicates. The slice is a per-depth scratch
// buffer owned by the action: it is valid until the next PathCode call at
// the same depth.
func (a *Action) PathCode() (PathCode, []int) {
	if a.currentPathCode != InPath {
		return a.currentPathCode, nil
	}

	curlen := a.currentPath.Length()
	for len(a.pathScratch) < curlen {
		a.pathScratch = append(a.pathScratch, nil)
	}
	buf := a.pathScratch[curlen-1][:0]

	if a.appliedCode == AppliedPathList {
		l := a.appliedList
		prev := -1
		for i := 0; i < l.Len(); i++ {
			p := l.At(i)
			if p.Length() > curlen && p.ContainsPath(a.currentPath) {
				if idx := p.Index(curlen); idx != prev {
					buf = append(buf, idx)
					prev = idx
				}
			}
		}
	} else {
		buf = append(buf, a.appliedPath.Index(curlen))
	}

	a.pathScratch[curlen-1] = buf
	return InPath, buf
}

// SwitchToPathTraversal saves the traversal position, traverses the given
// path, then restores the position so the outer traversal can continue.
// BeginTraversal is deliberately not called: user overrides perform
// one-time setup that must not recur mid-traversal.
func (a *Action) SwitchToPathTraversal(p *path.Path) {
	saved := a.saveApplied()

	a.appliedCode = AppliedPath
	a.appliedPath = p
	if p.Length() > 1 {
		a.currentPathCode = InPath
	} else {
		a.currentPathCode = BelowPath
	}
	a.currentPath.SetHead(p.Node(0))
	a.Traverse(p.Node(0))

	a.restoreApplied(saved)
}

// SwitchToNodeTraversal saves the traversal position, traverses the graph
// rooted at n as if the action had been applied to it, then restores the
// position. BeginTraversal is not called, as with SwitchToPathTraversal.
func (a *Action) SwitchToNodeTraversal(n node.Node) {
	saved := a.saveApplied()

	a.appliedCode = AppliedNode
	a.appliedNode = n
	a.currentPathCode = NoPath
	a.currentPath.SetHead(n)
	a.Traverse(n)

	a.restoreApplied(saved)
}
