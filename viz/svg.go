// Package viz renders a scene graph's structure as SVG: one box per node,
// edges from parents to children, rows by traversal depth. Shared
// sub-DAGs are drawn once and pick up an edge from every parent. The
// diagram is produced by a callback-action traversal, so it shows exactly
// what a traversal of the graph reaches.
package viz

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/scene-xyz/go-scene/callback"
	"github.com/scene-xyz/go-scene/node"
)

// Visual constants for rendering.
const (
	nodeWidth  = 110.0
	nodeHeight = 34.0
	hGap       = 24.0
	vGap       = 46.0
	margin     = 20.0
	fontSize   = 12.0
	cornerR    = 5.0
)

// Options controls rendering.
type Options struct {
	// ShowTypes appends the node type to the label of named nodes, as
	// "name : Type". Unnamed nodes are labeled by their type either way.
	ShowTypes bool
}

type layoutNode struct {
	id    string
	label string
	fill  string
	row   int
	col   int
}

type edge struct {
	from, to string
}

// RenderSVG renders the graph rooted at root to an SVG document.
func RenderSVG(root node.Node, opts Options) (string, error) {
	if root == nil {
		return "", fmt.Errorf("viz: nil root")
	}

	nodes := map[string]*layoutNode{}
	var order []string
	edgeSeen := map[edge]bool{}
	var edges []edge
	rowWidth := map[int]int{}

	ca := callback.New()
	ca.AddPreCallback(node.NodeType, func(a *callback.Action, n node.Node) callback.Response {
		p := a.CurPath()
		id := n.ID().String()

		if p.Length() > 1 {
			e := edge{from: p.Node(p.Length() - 2).ID().String(), to: id}
			if !edgeSeen[e] {
				edgeSeen[e] = true
				edges = append(edges, e)
			}
		}

		if _, ok := nodes[id]; ok {
			// Shared sub-DAG: already laid out, only the edge was new.
			return callback.Prune
		}

		row := p.Length() - 1
		nodes[id] = &layoutNode{
			id:    id,
			label: nodeLabel(n, opts),
			fill:  nodeFill(n),
			row:   row,
			col:   rowWidth[row],
		}
		rowWidth[row]++
		order = append(order, id)
		return callback.Continue
	})

	root.Ref()
	ca.Apply(root)
	root.UnrefNoDestroy()

	return emitSVG(nodes, order, edges, rowWidth), nil
}

// SaveSVG renders the graph and writes the SVG to a file.
func SaveSVG(root node.Node, filename string, opts Options) error {
	svg, err := RenderSVG(root, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(svg), 0644)
}

func nodeLabel(n node.Node, opts Options) string {
	label := n.Name()
	if label == "" {
		label = n.TypeId().Name()
	} else if opts.ShowTypes {
		label = fmt.Sprintf("%s : %s", label, n.TypeId().Name())
	}
	return label
}

func nodeFill(n node.Node) string {
	switch {
	case n.TypeId().IsDerivedFrom(node.ShapeType):
		return "#cde8c9"
	case n.TypeId().IsDerivedFrom(node.GroupType):
		return "#c9dcf0"
	default:
		return "#f0e4c0"
	}
}

func emitSVG(nodes map[string]*layoutNode, order []string, edges []edge, rowWidth map[int]int) string {
	maxCols, maxRow := 0, 0
	for row, width := range rowWidth {
		if width > maxCols {
			maxCols = width
		}
		if row > maxRow {
			maxRow = row
		}
	}
	width := margin*2 + float64(maxCols)*nodeWidth + float64(maxCols-1)*hGap
	height := margin*2 + float64(maxRow+1)*nodeHeight + float64(maxRow)*vGap

	center := func(ln *layoutNode) (float64, float64) {
		x := margin + float64(ln.col)*(nodeWidth+hGap) + nodeWidth/2
		y := margin + float64(ln.row)*(nodeHeight+vGap) + nodeHeight/2
		return x, y
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height)

	for _, e := range edges {
		from, to := nodes[e.from], nodes[e.to]
		x1, y1 := center(from)
		x2, y2 := center(to)
		fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888" stroke-width="1.2"/>`+"\n",
			x1, y1+nodeHeight/2, x2, y2-nodeHeight/2)
	}

	for _, id := range order {
		ln := nodes[id]
		cx, cy := center(ln)
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" rx="%.0f" fill="%s" stroke="#444"/>`+"\n",
			cx-nodeWidth/2, cy-nodeHeight/2, nodeWidth, nodeHeight, cornerR, ln.fill)
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			cx, cy, fontSize, escape(ln.label))
	}

	buf.WriteString("</svg>\n")
	return buf.String()
}

// escape performs minimal escaping for SVG text content.
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
