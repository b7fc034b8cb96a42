package action

import (
	"github.com/sirupsen/logrus"

	"github.com/scene-xyz/go-scene/node"
	"github.com/scene-xyz/go-scene/path"
	"github.com/scene-xyz/go-scene/state"
)

// AppliedCode says what an action is currently applied to.
type AppliedCode int

const (
	AppliedNode AppliedCode = iota
	AppliedPath
	AppliedPathList
)

// PathCode describes where the current traversal position lies relative to
// the path(s) the action was applied to.
type PathCode int

const (
	// NoPath: the action was applied to a whole graph.
	NoPath PathCode = iota
	// InPath: the current node is on a path, above its end point.
	InPath
	// BelowPath: the current node is at or below the end of every
	// relevant path; everything beneath it is visited unconditionally.
	BelowPath
	// OffPath: the current node is on no path. Group nodes skip children
	// whose traversal would have no effect, but state-affecting nodes are
	// still entered so siblings that are on a path see correct state.
	OffPath
)

// String returns the path code's name.
func (c PathCode) String() string {
	switch c {
	case NoPath:
		return "NO_PATH"
	case InPath:
		return "IN_PATH"
	case BelowPath:
		return "BELOW_PATH"
	case OffPath:
		return "OFF_PATH"
	}
	return "INVALID"
}

// Actor is implemented by every concrete action. The kernel calls the
// traversal hooks through it so actions can override them; methods in a
// dispatch table type-assert it to reach action-specific state.
type Actor interface {
	Kernel() *Action
	// BeginTraversal runs the traversal of the applied head. Overrides
	// performing one-time setup must end by calling Kernel().Traverse.
	BeginTraversal(n node.Node)
	// EndTraversal runs after the traversal of the applied head.
	EndTraversal(n node.Node)
}

// Action is the traversal kernel embedded by every concrete action. Zero
// value is not usable: call Init with the concrete action and its class
// before the first apply.
type Action struct {
	self  Actor
	class *Class

	st          *state.State
	stElemsSeen int64

	appliedCode AppliedCode
	appliedNode node.Node
	appliedPath *path.Path
	appliedList *path.List
	appliedOrig *path.List

	currentPath     *path.Path
	currentPathCode PathCode
	terminated      bool

	pathScratch [][]int
}

// Init wires the kernel to its concrete action and class.
func (a *Action) Init(self Actor, class *Class) {
	a.self = self
	a.class = class
	a.currentPath = path.NewTemp()
}

// Kernel returns the kernel itself.
func (a *Action) Kernel() *Action { return a }

// BeginTraversal is the default traversal hook: it traverses the node.
func (a *Action) BeginTraversal(n node.Node) {
	a.Traverse(n)
}

// EndTraversal is the default post-traversal hook: it does nothing.
func (a *Action) EndTraversal(n node.Node) {}

// Class returns the action's class record.
func (a *Action) Class() *Class { return a.class }

type savedApplied struct {
	code     AppliedCode
	node     node.Node
	path     *path.Path
	list     *path.List
	orig     *path.List
	pathCode PathCode
	curPath  *path.Path
}

func (a *Action) saveApplied() savedApplied {
	return savedApplied{
		code:     a.appliedCode,
		node:     a.appliedNode,
		path:     a.appliedPath,
		list:     a.appliedList,
		orig:     a.appliedOrig,
		pathCode: a.currentPathCode,
		curPath:  a.currentPath.CopyTemp(),
	}
}

func (a *Action) restoreApplied(s savedApplied) {
	a.appliedCode = s.code
	a.appliedNode = s.node
	a.appliedPath = s.path
	a.appliedList = s.list
	a.appliedOrig = s.orig
	a.currentPathCode = s.pathCode
	a.currentPath = s.curPath
}

// Apply traverses the graph rooted at root. Applying to nil is a no-op.
// The applied fields are saved and restored around the traversal, so a
// node method may re-apply the action to another subgraph and the outer
// traversal resumes correctly.
func (a *Action) Apply(root node.Node) {
	if root == nil {
		return
	}
	a.mustInit()
	saved := a.saveApplied()
	defer a.restoreApplied(saved)

	a.class.methods.SetUp()
	a.terminated = false

	a.appliedCode = AppliedNode
	a.appliedNode = root
	a.currentPathCode = NoPath

	if root.RefCount() == 0 {
		logrus.Warnf("action: applying %s to a node with zero reference count", a.class.typeId.Name())
	}
	root.Ref()
	defer root.UnrefNoDestroy()

	a.currentPath.SetHead(root)
	a.ensureState()
	a.self.BeginTraversal(root)
	a.self.EndTraversal(root)
}

// ApplyPath traverses the graph along the given path: nodes on the path
// and below its end point are visited, off-path siblings only insofar as
// they affect traversal state.
func (a *Action) ApplyPath(p *path.Path) {
	if p == nil || p.Length() == 0 {
		return
	}
	a.mustInit()
	saved := a.saveApplied()
	defer a.restoreApplied(saved)

	a.class.methods.SetUp()
	a.terminated = false

	a.appliedCode = AppliedPath
	a.appliedPath = p
	if p.Length() > 1 {
		a.currentPathCode = InPath
	} else {
		a.currentPathCode = BelowPath
	}

	head := p.Node(0)
	head.Ref()
	defer head.UnrefNoDestroy()

	a.currentPath.SetHead(head)
	a.ensureState()
	a.self.BeginTraversal(head)
	a.self.EndTraversal(head)
}

// ApplyPathList traverses the graphs covered by the list. With obeysRules
// the caller asserts the list already has a shared head, is sorted in
// traversal order, holds no duplicates and no path extending another; the
// list is then used as-is. Otherwise a sorted, uniquified copy is built
// and, if heads differ, one traversal runs per head in sorted order,
// stopping early once the action terminates.
func (a *Action) ApplyPathList(l *path.List, obeysRules bool) {
	if l == nil || l.Len() == 0 {
		return
	}
	a.mustInit()
	saved := a.saveApplied()
	defer a.restoreApplied(saved)

	a.class.methods.SetUp()
	a.terminated = false
	a.ensureState()
	a.appliedOrig = l

	if obeysRules {
		a.traverseListGroup(l)
		return
	}

	sorted := l.Copy()
	sorted.Sort()
	sorted.Uniquify()
	n := sorted.Len()

	if sorted.At(0).Head() == sorted.At(n-1).Head() {
		a.traverseListGroup(sorted)
		return
	}

	// One pass per head node; the sorted list keeps each head's paths
	// adjacent.
	i := 0
	for i < n && !a.terminated {
		head := sorted.At(i).Head()
		group := path.NewList()
		for i < n && sorted.At(i).Head() == head {
			group.Append(sorted.At(i))
			i++
		}
		a.traverseListGroup(group)
	}
}

// traverseListGroup traverses one shared-head group of paths.
func (a *Action) traverseListGroup(l *path.List) {
	a.appliedCode = AppliedPathList
	a.appliedList = l
	if l.At(0).Length() > 1 {
		a.currentPathCode = InPath
	} else {
		a.currentPathCode = BelowPath
	}

	head := l.At(0).Head()
	head.Ref()
	defer head.UnrefNoDestroy()

	a.currentPath.SetHead(head)
	a.self.BeginTraversal(head)
	a.self.EndTraversal(head)
}

// Traverse dispatches the node to this action class's method for the
// node's type.
func (a *Action) Traverse(n node.Node) {
	idx := node.MethodIndex(n.TypeId())
	if idx < 0 {
		logrus.Warnf("action: node type %q is not registered, using null action", n.TypeId().Name())
		return
	}
	a.class.methods.Get(idx)(a.self, n)
}

// mustInit panics if Init was never called.
func (a *Action) mustInit() {
	if a.class == nil {
		panic("action: Apply before Init")
	}
}

// ensureState creates the traversal state on first use and recreates it
// when any action class has enabled a new element since the state was
// built.
func (a *Action) ensureState() {
	counter := elementsCounter.Load()
	if a.st == nil || a.stElemsSeen != counter {
		a.st = state.New(a.class.elements.Factories())
		a.stElemsSeen = counter
	}
}

// State returns the action's traversal state, creating it if needed.
func (a *Action) State() *state.State {
	a.ensureState()
	return a.st
}

// InvalidateState discards the state so the next apply starts fresh.
func (a *Action) InvalidateState() {
	a.st = nil
}

// HasTerminated reports whether the action was terminated early.
func (a *Action) HasTerminated() bool { return a.terminated }

// SetTerminated sets the termination flag. Group methods stop traversing
// siblings once it is set; multi-head path list traversal stops at the
// next head boundary.
func (a *Action) SetTerminated(flag bool) { a.terminated = flag }

// WhatAppliedTo returns what the action is currently applied to.
func (a *Action) WhatAppliedTo() AppliedCode { return a.appliedCode }

// NodeAppliedTo returns the applied node, nil unless applied to a node.
func (a *Action) NodeAppliedTo() node.Node {
	if a.appliedCode != AppliedNode {
		return nil
	}
	return a.appliedNode
}

// PathAppliedTo returns the applied path, nil unless applied to a path.
func (a *Action) PathAppliedTo() *path.Path {
	if a.appliedCode != AppliedPath {
		return nil
	}
	return a.appliedPath
}

// PathListAppliedTo returns the path list the action is traversing, nil
// unless applied to a path list. It need not be the list apply was called
// with: the kernel may have normalized it.
func (a *Action) PathListAppliedTo() *path.List {
	if a.appliedCode != AppliedPathList {
		return nil
	}
	return a.appliedList
}

// OriginalPathListAppliedTo returns the list apply was called with, nil
// unless applied to a path list.
func (a *Action) OriginalPathListAppliedTo() *path.List {
	if a.appliedCode != AppliedPathList {
		return nil
	}
	return a.appliedOrig
}

// CurPath returns the path from the applied head to the node currently
// being traversed. The kernel owns it; callers must copy it to keep it.
func (a *Action) CurPath() *path.Path { return a.currentPath }

// CurPathTail returns the node currently being traversed.
func (a *Action) CurPathTail() node.Node { return a.currentPath.Tail() }

// CurPathCode returns the current path code.
func (a *Action) CurPathCode() PathCode { return a.currentPathCode }
