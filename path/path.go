// Package path implements paths through a scene graph: ordered chains of
// (node, child-index) pairs rooted at a head node, plus sortable path
// lists. A path records the resolved node at every step, so nodes detached
// from their parents mid-traversal never need to be looked up again.
package path

import (
	"bytes"

	"github.com/scene-xyz/go-scene/node"
)

type entry struct {
	node  node.Node
	index int // child index within the parent; -1 for the head
}

// Path is a position in the graph: a head node followed by child-index
// steps. A regular path refs every node it passes through for as long as
// the node stays on the path; a temp path (see NewTemp) skips the ref
// traffic and is what actions use for their rapidly changing current path.
type Path struct {
	entries []entry
	pin     bool
}

// New creates an empty ref-pinning path.
func New() *Path {
	return &Path{pin: true}
}

// NewFromHead creates a ref-pinning path starting at head.
func NewFromHead(head node.Node) *Path {
	p := New()
	p.SetHead(head)
	return p
}

// NewTemp creates a path that does not ref its nodes.
func NewTemp() *Path {
	return &Path{}
}

// Length returns the number of steps including the head. An empty path has
// length zero.
func (p *Path) Length() int {
	return len(p.entries)
}

// Head returns the path's first node, or nil for an empty path.
func (p *Path) Head() node.Node {
	if len(p.entries) == 0 {
		return nil
	}
	return p.entries[0].node
}

// Tail returns the path's last node, or nil for an empty path.
func (p *Path) Tail() node.Node {
	if len(p.entries) == 0 {
		return nil
	}
	return p.entries[len(p.entries)-1].node
}

// Node returns the resolved node at step i. Node(0) is the head.
func (p *Path) Node(i int) node.Node {
	return p.entries[i].node
}

// Index returns the child index at step i. The head's index is -1.
func (p *Path) Index(i int) int {
	return p.entries[i].index
}

// SetHead empties the path and restarts it at head.
func (p *Path) SetHead(head node.Node) {
	p.Truncate(0)
	p.AppendNode(head, -1)
}

// AppendNode extends the path with an explicitly resolved child and the
// index it occupies in its parent. The node may be nil: traversal pushes a
// placeholder entry when descending uniformly into all children.
func (p *Path) AppendNode(n node.Node, index int) {
	if p.pin && n != nil {
		n.Ref()
	}
	p.entries = append(p.entries, entry{node: n, index: index})
}

// Append extends the path with the index'th child of the current tail.
func (p *Path) Append(index int) {
	parent, ok := p.Tail().(node.Parent)
	if !ok {
		panic("path: appending below a non-group node")
	}
	p.AppendNode(parent.Child(index), index)
}

// Pop removes the last step.
func (p *Path) Pop() {
	p.Truncate(len(p.entries) - 1)
}

// Truncate shortens the path to length steps.
func (p *Path) Truncate(length int) {
	if p.pin {
		for i := len(p.entries) - 1; i >= length; i-- {
			if n := p.entries[i].node; n != nil {
				n.Unref()
			}
		}
	}
	p.entries = p.entries[:length]
}

// Copy returns an independent copy of the path. The copy pins nodes iff
// the original does.
func (p *Path) Copy() *Path {
	c := &Path{entries: make([]entry, len(p.entries)), pin: p.pin}
	copy(c.entries, p.entries)
	if c.pin {
		for _, e := range c.entries {
			if e.node != nil {
				e.node.Ref()
			}
		}
	}
	return c
}

// CopyPinned returns a ref-pinning copy of the path, whatever the
// original is. Use it to keep a snapshot of an action's current path
// beyond the traversal.
func (p *Path) CopyPinned() *Path {
	c := &Path{entries: make([]entry, len(p.entries)), pin: true}
	copy(c.entries, p.entries)
	for _, e := range c.entries {
		if e.node != nil {
			e.node.Ref()
		}
	}
	return c
}

// CopyTemp returns a non-pinning copy of the path.
func (p *Path) CopyTemp() *Path {
	c := &Path{entries: make([]entry, len(p.entries))}
	copy(c.entries, p.entries)
	return c
}

// ContainsPath reports whether other is a prefix of p, compared on
// (node, child-index) pairs starting at the head. Equal paths contain each
// other.
func (p *Path) ContainsPath(other *Path) bool {
	if other.Length() == 0 || other.Length() > p.Length() {
		return false
	}
	for i := 0; i < other.Length(); i++ {
		if p.entries[i].node != other.entries[i].node {
			return false
		}
		if i > 0 && p.entries[i].index != other.entries[i].index {
			return false
		}
	}
	return true
}

// Equal reports whether the two paths describe the same position.
func (p *Path) Equal(other *Path) bool {
	return p.Length() == other.Length() && p.ContainsPath(other)
}

// Compare orders paths for traversal: first by head identity (the node's
// registered id), then lexicographically by child indices, shorter paths
// first. The result is a strict weak order usable for sorting.
func (p *Path) Compare(other *Path) int {
	switch {
	case p.Length() == 0 && other.Length() == 0:
		return 0
	case p.Length() == 0:
		return -1
	case other.Length() == 0:
		return 1
	}
	if p.Head() != other.Head() {
		a, b := p.Head().ID(), other.Head().ID()
		return bytes.Compare(a[:], b[:])
	}
	n := p.Length()
	if other.Length() < n {
		n = other.Length()
	}
	for i := 1; i < n; i++ {
		if d := p.entries[i].index - other.entries[i].index; d != 0 {
			return d
		}
	}
	return p.Length() - other.Length()
}
