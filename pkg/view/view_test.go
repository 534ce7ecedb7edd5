package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowboardhq/flowboard/pkg/field"
	"github.com/flowboardhq/flowboard/pkg/layout"
	"github.com/flowboardhq/flowboard/pkg/table"
	"github.com/flowboardhq/flowboard/pkg/timeline"
)

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		in      Config
		wantErr bool
		check   func(t *testing.T, c Config)
	}{
		{
			name: "EmptyStyleDefaultsToTable",
			in:   Config{},
			check: func(t *testing.T, c Config) {
				if c.Style != StyleTable {
					t.Errorf("style = %q, want table", c.Style)
				}
				if c.SortDirection != table.Ascending {
					t.Errorf("sort_direction = %q, want asc", c.SortDirection)
				}
			},
		},
		{
			name:    "UnknownStyle",
			in:      Config{Style: "pivot"},
			wantErr: true,
		},
		{
			name: "KanbanDefaultsColumnToStatus",
			in:   Config{Style: StyleKanban},
			check: func(t *testing.T, c Config) {
				if c.Column.Key != "status" {
					t.Errorf("column = %+v, want status key", c.Column)
				}
			},
		},
		{
			name:    "GanttRequiresDateFields",
			in:      Config{Style: StyleGantt},
			wantErr: true,
		},
		{
			name: "GanttDefaultsScale",
			in: Config{
				Style:      StyleGantt,
				StartField: field.Ref{Key: "start"},
				EndField:   field.Ref{Key: "end"},
			},
			check: func(t *testing.T, c Config) {
				if c.Scale != timeline.ScaleWeek {
					t.Errorf("scale = %q, want week", c.Scale)
				}
			},
		},
		{
			name: "GanttRejectsBadScale",
			in: Config{
				Style:      StyleGantt,
				StartField: field.Ref{Key: "start"},
				EndField:   field.Ref{Key: "end"},
				Scale:      "fortnight",
			},
			wantErr: true,
		},
		{
			name:    "TreeRequiresEdgeType",
			in:      Config{Style: StyleTree},
			wantErr: true,
		},
		{
			name: "CanvasDefaults",
			in:   Config{Style: StyleCanvas},
			check: func(t *testing.T, c Config) {
				if c.Layout != layout.StrategyHierarchy || c.Axis != layout.AxisTopDown {
					t.Errorf("layout = %q axis = %q, want hierarchy/top-down", c.Layout, c.Axis)
				}
				if c.Seed != DefaultSeed {
					t.Errorf("seed = %d, want %d", c.Seed, DefaultSeed)
				}
			},
		},
		{
			name:    "KanbanRejectsMalformedColumnKey",
			in:      Config{Style: StyleKanban, Column: field.Ref{Key: "bad key!"}},
			wantErr: true,
		},
		{
			name:    "TableRejectsMalformedSortKey",
			in:      Config{Style: StyleTable, SortField: field.Ref{Key: "1priority"}},
			wantErr: true,
		},
		{
			name:    "RejectsMalformedColorField",
			in:      Config{Style: StyleCanvas, ColorField: "a/b"},
			wantErr: true,
		},
		{
			name: "RelationalSwimlaneTargetFieldChecked",
			in: Config{
				Style:    StyleKanban,
				Swimlane: &field.Ref{Path: &field.Path{EdgeType: "assignment", TargetField: "no\x00pe"}},
			},
			wantErr: true,
		},
		{
			name: "NegativeMaxHopsClamped",
			in:   Config{Style: StyleTable, MaxHops: -3},
			check: func(t *testing.T, c Config) {
				if c.MaxHops != 0 {
					t.Errorf("max_hops = %d, want 0", c.MaxHops)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.in
			err := c.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if tt.check != nil && err == nil {
				tt.check(t, c)
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	src := `
name = "Sprint Board"
style = "kanban"
column_order = ["Draft", "Review", "Done"]
prune_empty_swimlanes = true

[column]
key = "status"

[swimlane]
[swimlane.path]
edge_type = "assignment"
direction = "outgoing"
target_type = "person"
target_field = "title"
`
	c, err := Load([]byte(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Name != "Sprint Board" || c.Style != StyleKanban {
		t.Errorf("got name=%q style=%q", c.Name, c.Style)
	}
	if c.Swimlane == nil || !c.Swimlane.IsRelational() {
		t.Fatalf("swimlane = %+v, want relational ref", c.Swimlane)
	}
	if c.Swimlane.Path.TargetType != "person" {
		t.Errorf("target_type = %q", c.Swimlane.Path.TargetType)
	}
	if len(c.ColumnOrder) != 3 || c.ColumnOrder[1] != "Review" {
		t.Errorf("column_order = %v", c.ColumnOrder)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gantt.toml")
	src := `
name = "Roadmap"
style = "gantt"
scale = "month"

[start_field]
key = "start_date"

[end_field]
key = "due_date"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Scale != timeline.ScaleMonth {
		t.Errorf("scale = %q, want month", c.Scale)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(bad, []byte("style = ["), 0o644)
	if _, err := LoadFile(bad); err == nil {
		t.Error("expected parse error")
	}
}
