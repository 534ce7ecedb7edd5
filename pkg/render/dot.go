// Package render exports composed views as Graphviz DOT and renders them to
// SVG. Only graph-shaped styles (canvas and tree) have a DOT form; the
// remaining styles are consumed as JSON by interactive frontends.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/flowboardhq/flowboard/pkg/compose"
	"github.com/flowboardhq/flowboard/pkg/errors"
	"github.com/flowboardhq/flowboard/pkg/tree"
	"github.com/flowboardhq/flowboard/pkg/view"
)

// Options configures DOT export.
type Options struct {
	// Detailed includes node type and status in labels.
	// When false, only the title is shown.
	Detailed bool
}

// ToDOT converts a composed view to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(data *compose.ViewData, opts Options) (string, error) {
	switch data.Style {
	case view.StyleCanvas:
		return canvasDOT(data.Canvas, opts), nil
	case view.StyleTree:
		return treeDOT(data.Tree, opts), nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "no DOT form for %s views", data.Style)
	}
}

func writeHeader(buf *bytes.Buffer) {
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
}

func canvasDOT(c *compose.CanvasData, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf)

	for _, pn := range c.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", pn.Node.ID, nodeLabel(pn.Node.Title, pn.Node.Type, pn.Node.Status, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, e := range c.Edges {
		if e.Type != "" && opts.Detailed {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.FromNodeID, e.ToNodeID, e.Type)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.FromNodeID, e.ToNodeID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func treeDOT(t *compose.TreeData, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf)

	var writeNodes func(n *tree.Node)
	writeNodes = func(n *tree.Node) {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.Node.ID, nodeLabel(n.Node.Title, n.Node.Type, n.Node.Status, opts.Detailed))
		for _, child := range n.Children {
			writeNodes(child)
		}
	}
	for _, root := range t.Roots {
		writeNodes(root)
	}

	buf.WriteString("\n")
	var writeEdges func(n *tree.Node)
	writeEdges = func(n *tree.Node) {
		for _, child := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.Node.ID, child.Node.ID)
			writeEdges(child)
		}
	}
	for _, root := range t.Roots {
		writeEdges(root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(title, nodeType, status string, detailed bool) string {
	if title == "" {
		title = "(untitled)"
	}
	if !detailed {
		return title
	}
	var parts []string
	if nodeType != "" {
		parts = append(parts, "type: "+nodeType)
	}
	if status != "" {
		parts = append(parts, "status: "+status)
	}
	if len(parts) == 0 {
		return title
	}
	return title + "\n" + strings.Join(parts, "\n")
}
