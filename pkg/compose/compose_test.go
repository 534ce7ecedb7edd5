package compose

import (
	"context"
	"strings"
	"testing"

	"github.com/flowboardhq/flowboard/pkg/field"
	"github.com/flowboardhq/flowboard/pkg/model"
	"github.com/flowboardhq/flowboard/pkg/table"
	"github.com/flowboardhq/flowboard/pkg/timeline"
	"github.com/flowboardhq/flowboard/pkg/view"
)

// testSnapshot builds a small project graph: three tasks and one person.
// Alpha is assigned to Sam, blocks Beta, and has subtask Gamma.
func testSnapshot() model.Snapshot {
	return model.Snapshot{
		Nodes: []model.Node{
			{ID: "t1", Type: "task", Title: "Alpha", Status: "Draft", Properties: map[string]any{
				"start": "2024-01-01", "end": "2024-01-03", "priority": 2,
			}},
			{ID: "t2", Type: "task", Title: "Beta", Status: "Done", Properties: map[string]any{
				"start": "2024-01-02", "end": "2024-01-04", "priority": 1,
			}},
			{ID: "t3", Type: "task", Title: "Gamma", Properties: map[string]any{
				"priority": 3,
			}},
			{ID: "p1", Type: "person", Title: "Sam"},
		},
		Edges: []model.Edge{
			{ID: "e1", Type: "assignment", FromNodeID: "t1", ToNodeID: "p1"},
			{ID: "e2", Type: "blocks", FromNodeID: "t1", ToNodeID: "t2"},
			{ID: "e3", Type: "subtask", FromNodeID: "t1", ToNodeID: "t3"},
		},
	}
}

func TestComposeKanban(t *testing.T) {
	data, err := Compose(context.Background(), testSnapshot(), view.Config{
		Style:      view.StyleKanban,
		ColorField: "status",
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if data.Style != view.StyleKanban || data.Board == nil {
		t.Fatalf("expected board payload, got %+v", data)
	}
	lanes := data.Board.Swimlanes
	if len(lanes) != 1 || !lanes[0].Implicit() {
		t.Fatalf("lanes = %+v, want single implicit lane", lanes)
	}

	var ids []string
	for _, col := range lanes[0].Columns {
		ids = append(ids, col.ID)
	}
	want := []string{"Draft", "Done", "Unassigned"}
	if len(ids) != len(want) {
		t.Fatalf("columns = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("column[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if data.ColorKeys["t2"] != "Done" || data.ColorKeys["t3"] != "Unassigned" {
		t.Errorf("color keys = %v", data.ColorKeys)
	}
}

func TestComposeTree(t *testing.T) {
	data, err := Compose(context.Background(), testSnapshot(), view.Config{
		Style:    view.StyleTree,
		EdgeType: "subtask",
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if data.Tree == nil {
		t.Fatal("expected tree payload")
	}
	if data.Tree.Total != 4 {
		t.Errorf("total = %d, want 4", data.Tree.Total)
	}
	// Roots sorted by title: Alpha, Beta, Sam. Gamma is Alpha's child.
	if len(data.Tree.Roots) != 3 {
		t.Fatalf("roots = %d, want 3", len(data.Tree.Roots))
	}
	if got := data.Tree.Roots[0].Node.Title; got != "Alpha" {
		t.Errorf("first root = %q, want Alpha", got)
	}
	if len(data.Tree.Roots[0].Children) != 1 || data.Tree.Roots[0].Children[0].Node.Title != "Gamma" {
		t.Errorf("Alpha children = %+v", data.Tree.Roots[0].Children)
	}
}

func TestComposeGantt(t *testing.T) {
	data, err := Compose(context.Background(), testSnapshot(), view.Config{
		Style:      view.StyleGantt,
		StartField: field.Ref{Key: "start"},
		EndField:   field.Ref{Key: "end"},
		Scale:      timeline.ScaleDay,
		EdgeType:   "blocks",
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	g := data.Gantt
	if g == nil {
		t.Fatal("expected gantt payload")
	}
	// Jan 1 through Jan 4 at day scale.
	if len(g.Columns) != 4 {
		t.Errorf("columns = %d, want 4", len(g.Columns))
	}
	// Only the two dated tasks appear, in input order.
	if len(g.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(g.Rows))
	}
	if g.Rows[0].Node.ID != "t1" || g.Rows[1].Node.ID != "t2" {
		t.Errorf("row order = %s, %s", g.Rows[0].Node.ID, g.Rows[1].Node.ID)
	}
	if g.Rows[0].Bar.X != 0 || g.Rows[0].Bar.Width != 80 {
		t.Errorf("t1 bar = %+v, want X=0 Width=80", g.Rows[0].Bar)
	}
	if g.Rows[1].Bar.X != 40 {
		t.Errorf("t2 bar X = %v, want 40", g.Rows[1].Bar.X)
	}
	if g.Rows[1].Bar.Y <= g.Rows[0].Bar.Y {
		t.Error("rows should stack vertically")
	}

	if len(g.Dependencies) != 1 {
		t.Fatalf("dependencies = %d, want 1", len(g.Dependencies))
	}
	dep := g.Dependencies[0]
	if dep.FromNodeID != "t1" || dep.ToNodeID != "t2" {
		t.Errorf("dependency = %+v", dep)
	}
	// Beta starts before Alpha's bar ends, so the arrow detours.
	if !strings.Contains(dep.Path, "L") {
		t.Errorf("path = %q, want right-angle detour", dep.Path)
	}
}

func TestComposeGanttNoDates(t *testing.T) {
	snap := model.Snapshot{Nodes: []model.Node{{ID: "a", Title: "A"}}}
	data, err := Compose(context.Background(), snap, view.Config{
		Style:      view.StyleGantt,
		StartField: field.Ref{Key: "start"},
		EndField:   field.Ref{Key: "end"},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(data.Gantt.Rows) != 0 || len(data.Gantt.Columns) != 0 {
		t.Errorf("expected empty gantt, got %+v", data.Gantt)
	}
}

func TestComposeTable(t *testing.T) {
	data, err := Compose(context.Background(), testSnapshot(), view.Config{
		Style:         view.StyleTable,
		SortField:     field.Ref{Key: "priority"},
		SortDirection: table.Ascending,
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	var ids []string
	for _, n := range data.Table.Nodes {
		ids = append(ids, n.ID)
	}
	// Priority 1, 2, 3, then the person with no priority.
	want := []string{"t2", "t1", "t3", "p1"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

func TestComposeTableNoSortKeepsOrder(t *testing.T) {
	data, err := Compose(context.Background(), testSnapshot(), view.Config{Style: view.StyleTable})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if data.Table.Nodes[0].ID != "t1" || data.Table.Nodes[3].ID != "p1" {
		t.Errorf("order changed without a sort field")
	}
}

func TestComposeCanvas(t *testing.T) {
	data, err := Compose(context.Background(), testSnapshot(), view.Config{Style: view.StyleCanvas})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	c := data.Canvas
	if c == nil || len(c.Nodes) != 4 {
		t.Fatalf("canvas = %+v", c)
	}
	pos := make(map[string][2]float64)
	for _, pn := range c.Nodes {
		pos[pn.Node.ID] = [2]float64{pn.X, pn.Y}
	}
	// Alpha is the only source, so everything else sits a layer below.
	for _, id := range []string{"t2", "t3", "p1"} {
		if pos[id][1] <= pos["t1"][1] {
			t.Errorf("%s should be below t1: %v vs %v", id, pos[id], pos["t1"])
		}
	}
	if len(c.Edges) != 3 {
		t.Errorf("edges = %d, want 3", len(c.Edges))
	}
}

func TestComposeHopFilter(t *testing.T) {
	data, err := Compose(context.Background(), testSnapshot(), view.Config{
		Style:       view.StyleTable,
		FocalNodeID: "p1",
		MaxHops:     1,
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(data.Table.Nodes) != 2 {
		t.Fatalf("nodes = %d, want focal plus one neighbor", len(data.Table.Nodes))
	}
	ids := map[string]bool{}
	for _, n := range data.Table.Nodes {
		ids[n.ID] = true
	}
	if !ids["p1"] || !ids["t1"] {
		t.Errorf("kept = %v, want p1 and t1", ids)
	}
}

func TestComposeRejectsInvalidInput(t *testing.T) {
	t.Run("BadView", func(t *testing.T) {
		_, err := Compose(context.Background(), testSnapshot(), view.Config{Style: "spiral"})
		if err == nil {
			t.Error("expected error for unknown style")
		}
	})
	t.Run("BadSnapshot", func(t *testing.T) {
		snap := model.Snapshot{Nodes: []model.Node{{ID: "a"}, {ID: "a"}}}
		_, err := Compose(context.Background(), snap, view.Config{Style: view.StyleTable})
		if err == nil {
			t.Error("expected error for duplicate node IDs")
		}
	})
}

func TestComposeStoredPositionsSurviveCycles(t *testing.T) {
	snap := model.Snapshot{
		Nodes: []model.Node{
			{ID: "a", Title: "A", Properties: map[string]any{"x": 400.0, "y": 400.0}},
			{ID: "b", Title: "B", Properties: map[string]any{"x": 500.0, "y": 500.0}},
		},
		Edges: []model.Edge{
			{ID: "e1", FromNodeID: "a", ToNodeID: "b"},
			{ID: "e2", FromNodeID: "b", ToNodeID: "a"},
		},
	}
	data, err := Compose(context.Background(), snap, view.Config{Style: view.StyleCanvas})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for _, pn := range data.Canvas.Nodes {
		if pn.Node.ID == "a" && (pn.X != 400 || pn.Y != 400) {
			t.Errorf("a moved to (%v, %v)", pn.X, pn.Y)
		}
	}
}
