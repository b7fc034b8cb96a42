package node

// Group holds an ordered list of children traversed left to right. The
// group refs every child it holds and unrefs children it releases.
type Group struct {
	Base
	children []Node
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	g := &Group{Base: NewBase(GroupType)}
	g.setOnDestroy(g.RemoveAllChildren)
	return g
}

// NumChildren returns the number of children.
func (g *Group) NumChildren() int { return len(g.children) }

// Child returns the i'th child.
func (g *Group) Child(i int) Node { return g.children[i] }

// AddChild appends a child to the group.
func (g *Group) AddChild(c Node) {
	c.Ref()
	g.children = append(g.children, c)
}

// InsertChild inserts a child before position i.
func (g *Group) InsertChild(c Node, i int) {
	c.Ref()
	g.children = append(g.children, nil)
	copy(g.children[i+1:], g.children[i:])
	g.children[i] = c
}

// RemoveChild removes the i'th child.
func (g *Group) RemoveChild(i int) {
	c := g.children[i]
	g.children = append(g.children[:i], g.children[i+1:]...)
	c.Unref()
}

// RemoveChildNode removes the first occurrence of c, if present.
func (g *Group) RemoveChildNode(c Node) {
	if i := g.FindChild(c); i >= 0 {
		g.RemoveChild(i)
	}
}

// RemoveAllChildren empties the child list.
func (g *Group) RemoveAllChildren() {
	for _, c := range g.children {
		c.Unref()
	}
	g.children = nil
}

// ReplaceChild swaps the i'th child for c.
func (g *Group) ReplaceChild(i int, c Node) {
	c.Ref()
	old := g.children[i]
	g.children[i] = c
	old.Unref()
}

// FindChild returns the index of c among the children, or -1.
func (g *Group) FindChild(c Node) int {
	for i, child := range g.children {
		if child == c {
			return i
		}
	}
	return -1
}

// Separator is a group that isolates traversal state: actions open a state
// scope before its children and close it after, so element writes inside
// the subtree never leak to siblings.
type Separator struct {
	Group
}

// NewSeparator creates an empty separator.
func NewSeparator() *Separator {
	s := &Separator{}
	s.Base = NewBase(SeparatorType)
	s.setOnDestroy(s.RemoveAllChildren)
	return s
}

// AffectsState reports false: the separator's scope confines everything
// beneath it.
func (s *Separator) AffectsState() bool { return false }

// Sentinel values for Switch.WhichChild.
const (
	// SwitchNone traverses no children.
	SwitchNone = -1
	// SwitchAll traverses every child, like a plain group.
	SwitchAll = -2
)

// Switch traverses none, one, or all of its children depending on
// WhichChild.
type Switch struct {
	Group
	WhichChild int
}

// NewSwitch creates a switch that traverses no children.
func NewSwitch() *Switch {
	s := &Switch{WhichChild: SwitchNone}
	s.Base = NewBase(SwitchType)
	s.setOnDestroy(s.RemoveAllChildren)
	return s
}

// Fields returns the switch's serializable fields.
func (s *Switch) Fields() map[string]any {
	return map[string]any{"whichChild": s.WhichChild}
}
