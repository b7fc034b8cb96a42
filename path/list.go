package path

import "sort"

// List is an ordered container of paths.
type List struct {
	paths []*Path
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// Append adds a path to the end of the list.
func (l *List) Append(p *Path) {
	l.paths = append(l.paths, p)
}

// Len returns the number of paths.
func (l *List) Len() int {
	return len(l.paths)
}

// At returns the i'th path.
func (l *List) At(i int) *Path {
	return l.paths[i]
}

// Truncate shortens the list to length paths.
func (l *List) Truncate(length int) {
	l.paths = l.paths[:length]
}

// Find returns the index of the first path equal to p, or -1.
func (l *List) Find(p *Path) int {
	for i, q := range l.paths {
		if q.Equal(p) {
			return i
		}
	}
	return -1
}

// Copy returns a shallow copy of the list: the paths themselves are shared.
func (l *List) Copy() *List {
	c := &List{paths: make([]*Path, len(l.paths))}
	copy(c.paths, l.paths)
	return c
}

// Sort orders the list by head identity, then lexicographically by child
// indices, which is traversal order within a shared head.
func (l *List) Sort() {
	sort.SliceStable(l.paths, func(i, j int) bool {
		return l.paths[i].Compare(l.paths[j]) < 0
	})
}

// Uniquify removes, from a sorted list, every path that equals or extends
// an earlier retained path. Afterwards the list holds no duplicates and no
// path is a prefix of another.
func (l *List) Uniquify() {
	if len(l.paths) < 2 {
		return
	}
	kept := l.paths[:1]
	for _, p := range l.paths[1:] {
		if !p.ContainsPath(kept[len(kept)-1]) {
			kept = append(kept, p)
		}
	}
	l.paths = kept
}
