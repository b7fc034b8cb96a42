// Package search implements the search action: a traversal that finds
// nodes by identity, type or name and reports where they live as paths.
package search

import (
	"github.com/scene-xyz/go-scene/action"
	"github.com/scene-xyz/go-scene/methods"
	"github.com/scene-xyz/go-scene/node"
	"github.com/scene-xyz/go-scene/path"
	"github.com/scene-xyz/go-scene/sgtype"
)

// LookingFor selects the match criteria. Criteria combine as alternatives:
// a node matches if any selected criterion matches.
type LookingFor uint32

const (
	// LookNode matches a specific node by identity.
	LookNode LookingFor = 1 << iota
	// LookType matches nodes by type, exactly or including derived types.
	LookType
	// LookName matches nodes by name.
	LookName
)

// Interest selects which matches the search keeps.
type Interest int

const (
	// First keeps the first match and terminates the traversal.
	First Interest = iota
	// Last keeps the last match, traversing everything.
	Last
	// All keeps every match.
	All
)

// Class is the search action's class record.
var Class *action.Class

func init() {
	Class = action.NewClass("SearchAction", nil)
	Class.Methods().Add(node.NodeType, searchNode)
	Class.Methods().Add(node.GroupType, searchGroup)
	Class.Methods().Add(node.SwitchType, searchSwitch)
}

// Action searches a graph, a path or a path list.
type Action struct {
	action.Action

	lookingFor LookingFor
	wantNode   node.Node
	wantType   sgtype.TypeId
	derivedOk  bool
	wantName   string
	interest   Interest

	// searchingAll makes the traversal enter children that are switched
	// off, so hidden parts of the graph are searched too.
	searchingAll bool

	found *path.List
}

// New creates a search action with no criteria, keeping the first match.
func New() *Action {
	s := &Action{found: path.NewList()}
	s.Init(s, Class)
	return s
}

// SetNode makes the search look for the given node.
func (s *Action) SetNode(n node.Node) {
	s.wantNode = n
	s.lookingFor |= LookNode
}

// SetType makes the search look for nodes of the given type. With
// derivedOk, nodes of derived types match too.
func (s *Action) SetType(t sgtype.TypeId, derivedOk bool) {
	s.wantType = t
	s.derivedOk = derivedOk
	s.lookingFor |= LookType
}

// SetName makes the search look for nodes with the given name.
func (s *Action) SetName(name string) {
	s.wantName = name
	s.lookingFor |= LookName
}

// SetInterest selects which matches to keep.
func (s *Action) SetInterest(i Interest) {
	s.interest = i
}

// SetSearchingAll makes the traversal descend into switched-off children.
func (s *Action) SetSearchingAll(all bool) {
	s.searchingAll = all
}

// Reset clears the criteria and any previous results, so the action can
// be reused.
func (s *Action) Reset() {
	s.lookingFor = 0
	s.wantNode = nil
	s.wantType = sgtype.TypeId{}
	s.derivedOk = false
	s.wantName = ""
	s.interest = First
	s.searchingAll = false
	s.found = path.NewList()
}

// IsFound reports whether the search has matched anything.
func (s *Action) IsFound() bool {
	return s.found.Len() > 0
}

// Path returns the kept match: the first or last found depending on the
// interest, nil if nothing matched. With interest All, use Paths.
func (s *Action) Path() *path.Path {
	if s.found.Len() == 0 {
		return nil
	}
	return s.found.At(s.found.Len() - 1)
}

// Paths returns every kept match.
func (s *Action) Paths() *path.List {
	return s.found
}

func (s *Action) match(n node.Node) bool {
	if s.lookingFor&LookNode != 0 && n == s.wantNode {
		return true
	}
	if s.lookingFor&LookType != 0 {
		if s.derivedOk && n.TypeId().IsDerivedFrom(s.wantType) {
			return true
		}
		if !s.derivedOk && n.TypeId() == s.wantType {
			return true
		}
	}
	if s.lookingFor&LookName != 0 && n.Name() == s.wantName {
		return true
	}
	return false
}

func (s *Action) visit(n node.Node) {
	if !s.match(n) {
		return
	}
	hit := s.CurPath().CopyPinned()
	switch s.interest {
	case First:
		if s.found.Len() == 0 {
			s.found.Append(hit)
			s.SetTerminated(true)
		}
	case Last:
		s.found.Truncate(0)
		s.found.Append(hit)
	case All:
		s.found.Append(hit)
	}
}

func searchNode(a action.Actor, n node.Node) {
	a.(*Action).visit(n)
}

func searchGroup(a action.Actor, n node.Node) {
	s := a.(*Action)
	s.visit(n)
	if s.HasTerminated() {
		return
	}
	methods.Group(a, n)
}

func searchSwitch(a action.Actor, n node.Node) {
	s := a.(*Action)
	s.visit(n)
	if s.HasTerminated() {
		return
	}
	if s.searchingAll {
		methods.Group(a, n)
	} else {
		methods.Switch(a, n)
	}
}
