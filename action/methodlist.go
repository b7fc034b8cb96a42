package action

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/scene-xyz/go-scene/node"
	"github.com/scene-xyz/go-scene/sgtype"
)

// Method is the per-node-type traversal behavior of an action class. It
// receives the concrete action (type-assert when the method needs more
// than the kernel) and the node being traversed.
type Method func(a Actor, n node.Node)

// NullAction is the no-op method filling every dispatch slot with no
// registration anywhere in the class or node hierarchy.
func NullAction(a Actor, n node.Node) {}

// methodsCounter increments on every method registration anywhere, so
// dispatch tables can detect that an ancestor gained registrations.
var methodsCounter atomic.Int64

// MethodList is an action class's dispatch table, indexed by the dense
// action-method index assigned to each node class. The table is built
// lazily by SetUp and rebuilt when the node-type registry or any
// registration along the ancestor chain changes.
type MethodList struct {
	mu     sync.Mutex
	parent *MethodList
	reg    map[sgtype.TypeId]Method

	table          []Method
	lastAdd        int64
	builtNodeVer   int64
	builtMethodVer int64
}

func newMethodList(parent *MethodList) *MethodList {
	return &MethodList{parent: parent, reg: map[sgtype.TypeId]Method{}}
}

// Add registers the method run for nodes of the given type (and, absent a
// closer registration, for types derived from it) when this action class
// or a descendant traverses them.
func (l *MethodList) Add(nodeType sgtype.TypeId, m Method) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reg[nodeType] = m
	l.lastAdd = methodsCounter.Add(1)
}

// SetUp builds the dispatch table if it is missing or stale. Population
// order: every slot starts as NullAction; registrations apply from the
// root action class down so the closest action class wins; node types
// with no registration inherit from their nearest registered node
// ancestor.
func (l *MethodList) SetUp() {
	nodeVer := node.RegistryVersion()
	methodVer := l.chainVersion()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.table != nil && l.builtNodeVer == nodeVer && l.builtMethodVer == methodVer {
		return
	}

	// Collect the ancestor chain, root first.
	var chain []*MethodList
	for p := l; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	effective := map[sgtype.TypeId]Method{}
	for i := len(chain) - 1; i >= 0; i-- {
		ml := chain[i]
		if ml != l {
			ml.mu.Lock()
		}
		for t, m := range ml.reg {
			effective[t] = m
		}
		if ml != l {
			ml.mu.Unlock()
		}
	}

	table := make([]Method, node.NumTypes())
	for i := range table {
		table[i] = NullAction
		for t := node.TypeAt(i); !t.IsBad(); t = t.Parent() {
			if m, ok := effective[t]; ok {
				table[i] = m
				break
			}
		}
	}

	l.table = table
	l.builtNodeVer = nodeVer
	l.builtMethodVer = methodVer
}

// Get returns the method at the given action-method index. SetUp must
// have run first; out-of-range indices (a node class registered since the
// last build) fall back to NullAction with a warning.
func (l *MethodList) Get(index int) Method {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.table == nil {
		panic("action: dispatch table used before SetUp")
	}
	if index < 0 || index >= len(l.table) {
		logrus.Warnf("action: no dispatch entry for method index %d, using null action", index)
		return NullAction
	}
	return l.table[index]
}

func (l *MethodList) chainVersion() int64 {
	var v int64
	for p := l; p != nil; p = p.parent {
		p.mu.Lock()
		if p.lastAdd > v {
			v = p.lastAdd
		}
		p.mu.Unlock()
	}
	return v
}
