// Package write implements the write action, which serializes a scene
// graph to JSON via traversal, plus the matching reader that rebuilds a
// graph from its JSON form using the node-type factories.
//
// The JSON structure mirrors the graph:
//
//	{
//	  "type": "Separator",
//	  "id": "3f2a...",
//	  "name": "scene",
//	  "children": [
//	    {"type": "Transform", "id": "...", "fields": {"translation": [1, 0, 0], "scale": 2}},
//	    {"type": "Cube", "id": "...", "fields": {"width": 2, "height": 2, "depth": 2}},
//	    {"ref": "..."}
//	  ]
//	}
//
// A node reached more than once is written in full the first time and as a
// {"ref": id} entry thereafter, so shared sub-DAGs round-trip as shared.
package write

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/scene-xyz/go-scene/action"
	"github.com/scene-xyz/go-scene/node"
	"github.com/scene-xyz/go-scene/sgtype"
)

// Errors returned by the reader.
var (
	ErrUnknownType     = errors.New("write: unknown node type")
	ErrUnresolvedRef   = errors.New("write: unresolved node reference")
	ErrNotInstantiable = errors.New("write: node type has no factory")
)

// Class is the write action's class record.
var Class *action.Class

func init() {
	Class = action.NewClass("WriteAction", nil)
	Class.Methods().Add(node.NodeType, leafMethod)
	Class.Methods().Add(node.GroupType, groupMethod)
}

type jsonNode struct {
	Type     string         `json:"type,omitempty"`
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
	Children []*jsonNode    `json:"children,omitempty"`
	Ref      string         `json:"ref,omitempty"`
}

// Action serializes the applied graph to a writer.
type Action struct {
	action.Action

	out io.Writer
	err error

	root  *jsonNode
	stack []*jsonNode
	seen  map[uuid.UUID]bool
}

// New creates a write action targeting out.
func New(out io.Writer) *Action {
	w := &Action{out: out}
	w.Init(w, Class)
	return w
}

// Err returns the first error encountered while writing, nil if none.
func (w *Action) Err() error {
	return w.err
}

// BeginTraversal resets the document being built, then traverses.
func (w *Action) BeginTraversal(n node.Node) {
	w.err = nil
	w.root = nil
	w.stack = nil
	w.seen = map[uuid.UUID]bool{}
	w.Traverse(n)
}

// EndTraversal marshals the document to the writer.
func (w *Action) EndTraversal(n node.Node) {
	if w.err != nil || w.root == nil {
		return
	}
	data, err := json.MarshalIndent(w.root, "", "  ")
	if err != nil {
		w.err = err
		return
	}
	data = append(data, '\n')
	if _, err := w.out.Write(data); err != nil {
		w.err = err
	}
}

// enter appends the node to the document. It returns nil when the node
// was already written and only a reference was emitted.
func (w *Action) enter(n node.Node) *jsonNode {
	var jn *jsonNode
	if w.seen[n.ID()] {
		jn = &jsonNode{Ref: n.ID().String()}
	} else {
		w.seen[n.ID()] = true
		jn = &jsonNode{
			Type: n.TypeId().Name(),
			ID:   n.ID().String(),
			Name: n.Name(),
		}
		if fielded, ok := n.(node.Fielded); ok {
			jn.Fields = fielded.Fields()
		}
	}

	if len(w.stack) == 0 {
		w.root = jn
	} else {
		parent := w.stack[len(w.stack)-1]
		parent.Children = append(parent.Children, jn)
	}
	if jn.Ref != "" {
		return nil
	}
	return jn
}

func leafMethod(a action.Actor, n node.Node) {
	a.(*Action).enter(n)
}

func groupMethod(a action.Actor, n node.Node) {
	w := a.(*Action)
	jn := w.enter(n)
	if jn == nil {
		return
	}
	w.stack = append(w.stack, jn)
	action.TraverseChildren(a, n.(node.Parent))
	w.stack = w.stack[:len(w.stack)-1]
}

// FromJSON rebuilds a graph from the JSON produced by the write action.
// Node identities are freshly assigned; shared structure is preserved via
// the reference entries. The returned node has a zero reference count.
func FromJSON(data []byte) (node.Node, error) {
	var root jsonNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("write: invalid JSON: %w", err)
	}
	byID := map[string]node.Node{}
	return buildNode(&root, byID)
}

func buildNode(jn *jsonNode, byID map[string]node.Node) (node.Node, error) {
	if jn.Ref != "" {
		n, ok := byID[jn.Ref]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedRef, jn.Ref)
		}
		return n, nil
	}

	typeId := sgtype.FromName(jn.Type)
	if typeId.IsBad() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, jn.Type)
	}
	created := typeId.Create()
	if created == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotInstantiable, jn.Type)
	}
	n, ok := created.(node.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a node type", ErrUnknownType, jn.Type)
	}

	n.SetName(jn.Name)
	if jn.ID != "" {
		byID[jn.ID] = n
	}
	applyFields(n, jn.Fields)

	if len(jn.Children) > 0 {
		adder, ok := n.(interface{ AddChild(node.Node) })
		if !ok {
			return nil, fmt.Errorf("write: node type %q cannot hold children", jn.Type)
		}
		for _, cj := range jn.Children {
			child, err := buildNode(cj, byID)
			if err != nil {
				return nil, err
			}
			adder.AddChild(child)
		}
	}
	return n, nil
}

func applyFields(n node.Node, fields map[string]any) {
	if len(fields) == 0 {
		return
	}
	switch t := n.(type) {
	case *node.Transform:
		if v, ok := asFloats(fields["translation"]); ok && len(v) == 3 {
			t.Translation.X, t.Translation.Y, t.Translation.Z = v[0], v[1], v[2]
		}
		if s, ok := asFloat(fields["scale"]); ok {
			t.ScaleFactor = s
		}
	case *node.Cube:
		if v, ok := asFloat(fields["width"]); ok {
			t.Width = v
		}
		if v, ok := asFloat(fields["height"]); ok {
			t.Height = v
		}
		if v, ok := asFloat(fields["depth"]); ok {
			t.Depth = v
		}
	case *node.Sphere:
		if v, ok := asFloat(fields["radius"]); ok {
			t.Radius = v
		}
	case *node.Switch:
		if v, ok := asFloat(fields["whichChild"]); ok {
			t.WhichChild = int(v)
		}
	}
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

func asFloats(v any) ([]float64, bool) {
	switch x := v.(type) {
	case []float64:
		return x, true
	case []any:
		out := make([]float64, 0, len(x))
		for _, xi := range x {
			f, ok := asFloat(xi)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	}
	return nil, false
}
