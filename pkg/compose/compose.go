// Package compose turns a graph snapshot plus a view configuration into a
// derived view model. It is the single entry point the CLI and the API
// server share: filtering, grouping, layout and sorting all run here, so
// callers never reimplement view semantics.
package compose

import (
	"context"
	"fmt"
	"time"

	"github.com/flowboardhq/flowboard/pkg/board"
	"github.com/flowboardhq/flowboard/pkg/field"
	"github.com/flowboardhq/flowboard/pkg/hops"
	"github.com/flowboardhq/flowboard/pkg/layout"
	"github.com/flowboardhq/flowboard/pkg/model"
	"github.com/flowboardhq/flowboard/pkg/observability"
	"github.com/flowboardhq/flowboard/pkg/table"
	"github.com/flowboardhq/flowboard/pkg/timeline"
	"github.com/flowboardhq/flowboard/pkg/tree"
	"github.com/flowboardhq/flowboard/pkg/view"
)

// Compose validates the inputs and builds the view model for cfg's style.
//
// The snapshot is read-only: no function downstream mutates nodes or edges.
// When the view names a focal node, the snapshot is first restricted to the
// hop-limited neighborhood around it.
func Compose(ctx context.Context, snap model.Snapshot, cfg view.Config) (*ViewData, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	nodes, edges := snap.Nodes, snap.Edges
	if cfg.FocalNodeID != "" {
		filterStart := time.Now()
		observability.Compose().OnFilterStart(ctx, cfg.FocalNodeID, cfg.MaxHops)
		keep := hops.Nodes(cfg.FocalNodeID, edges, cfg.MaxHops)
		nodes = hops.Filter(nodes, keep)
		edges = hops.FilterEdges(edges, keep)
		observability.Compose().OnFilterComplete(ctx, cfg.FocalNodeID, len(nodes), time.Since(filterStart))
	}

	fctx := field.Context{Edges: edges, Nodes: indexNodes(nodes)}

	composeStart := time.Now()
	observability.Compose().OnComposeStart(ctx, string(cfg.Style), len(nodes))

	data := &ViewData{Style: cfg.Style}
	switch cfg.Style {
	case view.StyleKanban:
		data.Board = composeBoard(nodes, cfg, fctx)
	case view.StyleTree:
		data.Tree = composeTree(nodes, edges, cfg)
	case view.StyleGantt:
		data.Gantt = composeGantt(nodes, edges, cfg, fctx)
	case view.StyleTable:
		data.Table = composeTable(nodes, cfg, fctx)
	case view.StyleCanvas:
		data.Canvas = composeCanvas(nodes, edges, cfg)
	}

	if cfg.ColorField != "" {
		data.ColorKeys = colorKeys(nodes, cfg.ColorField, fctx)
	}

	observability.Compose().OnComposeComplete(ctx, string(cfg.Style), time.Since(composeStart), nil)
	return data, nil
}

func composeBoard(nodes []model.Node, cfg view.Config, fctx field.Context) *BoardData {
	lanes := board.GroupNodes(nodes, cfg.Column, cfg.Swimlane, board.Options{
		ColumnOrder:         cfg.ColumnOrder,
		SwimlaneOrder:       cfg.SwimlaneOrder,
		PruneEmptyColumns:   cfg.PruneEmptyColumns,
		PruneEmptySwimlanes: cfg.PruneEmptySwimlanes,
	}, fctx)
	return &BoardData{Swimlanes: lanes}
}

func composeTree(nodes []model.Node, edges []model.Edge, cfg view.Config) *TreeData {
	roots := tree.BuildForest(nodes, edgesOfType(edges, cfg.EdgeType))
	return &TreeData{Roots: roots, Total: tree.CountForest(roots)}
}

func composeGantt(nodes []model.Node, edges []model.Edge, cfg view.Config, fctx field.Context) *GanttData {
	tasks := timeline.Tasks(nodes, cfg.StartField, cfg.EndField, fctx)
	data := &GanttData{Scale: cfg.Scale}

	minDate, maxDate, ok := timeline.Span(tasks)
	if !ok {
		return data
	}
	data.Columns = timeline.BuildTimeColumns(minDate, maxDate, cfg.Scale)

	colWidth := cfg.Scale.ColWidth()
	barByNode := make(map[string]timeline.Bar, len(tasks))
	data.Rows = make([]GanttRow, len(tasks))
	for i, task := range tasks {
		pos := timeline.BarPosition(task.Start, task.End, minDate, colWidth, cfg.Scale)
		bar := timeline.Bar{
			X:      pos.Left,
			Y:      float64(i)*GanttRowHeight + (GanttRowHeight-GanttBarHeight)/2,
			Width:  pos.Width,
			Height: GanttBarHeight,
		}
		barByNode[task.Node.ID] = bar
		data.Rows[i] = GanttRow{Node: task.Node, Start: task.Start, End: task.End, Bar: bar}
	}

	// Dependency arrows only connect tasks that made it onto the chart.
	if cfg.EdgeType != "" {
		for _, e := range edgesOfType(edges, cfg.EdgeType) {
			from, okFrom := barByNode[e.FromNodeID]
			to, okTo := barByNode[e.ToNodeID]
			if !okFrom || !okTo {
				continue
			}
			data.Dependencies = append(data.Dependencies, GanttDependency{
				FromNodeID: e.FromNodeID,
				ToNodeID:   e.ToNodeID,
				Path:       timeline.RouteDependency(from, to),
			})
		}
	}
	return data
}

func composeTable(nodes []model.Node, cfg view.Config, fctx field.Context) *TableData {
	if cfg.SortField.IsZero() {
		out := make([]model.Node, len(nodes))
		copy(out, nodes)
		return &TableData{Nodes: out}
	}
	return &TableData{Nodes: table.SortNodes(nodes, cfg.SortField, cfg.SortDirection, fctx)}
}

func composeCanvas(nodes []model.Node, edges []model.Edge, cfg view.Config) *CanvasData {
	positioned := layout.Arrange(withStoredPositions(nodes), edges, layout.Options{
		Strategy: cfg.Layout,
		Axis:     cfg.Axis,
		Seed:     cfg.Seed,
	})
	return &CanvasData{Nodes: positioned, Edges: edges}
}

// withStoredPositions lifts nodes into positioned nodes, seeding x/y from
// node properties when present. Nodes the layout never reaches (cycles)
// keep these positions.
func withStoredPositions(nodes []model.Node) []layout.PositionedNode {
	out := layout.Wrap(nodes)
	for i := range nodes {
		if x, ok := numericProperty(&nodes[i], "x"); ok {
			out[i].X = x
		}
		if y, ok := numericProperty(&nodes[i], "y"); ok {
			out[i].Y = y
		}
	}
	return out
}

func numericProperty(n *model.Node, key string) (float64, bool) {
	v, ok := n.Property(key)
	if !ok {
		return 0, false
	}
	switch x := model.Unwrap(v).(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

// colorKeys resolves the color field for every node and returns the bucket
// key per node ID. Nodes with no value fall into the sentinel bucket.
func colorKeys(nodes []model.Node, key string, fctx field.Context) map[string]string {
	out := make(map[string]string, len(nodes))
	ref := field.Ref{Key: key}
	for i := range nodes {
		out[nodes[i].ID] = board.GroupKey(&nodes[i], ref, fctx)
	}
	return out
}

func edgesOfType(edges []model.Edge, edgeType string) []model.Edge {
	if edgeType == "" {
		return edges
	}
	var out []model.Edge
	for _, e := range edges {
		if e.Type == edgeType {
			out = append(out, e)
		}
	}
	return out
}

func indexNodes(nodes []model.Node) model.NodeIndex {
	idx := make(model.NodeIndex, len(nodes))
	for i := range nodes {
		idx[nodes[i].ID] = &nodes[i]
	}
	return idx
}
