package compose

import (
	"time"

	"github.com/flowboardhq/flowboard/pkg/board"
	"github.com/flowboardhq/flowboard/pkg/layout"
	"github.com/flowboardhq/flowboard/pkg/model"
	"github.com/flowboardhq/flowboard/pkg/timeline"
	"github.com/flowboardhq/flowboard/pkg/tree"
	"github.com/flowboardhq/flowboard/pkg/view"
)

// =============================================================================
// Composed View Model
// =============================================================================

// ViewData is the tagged union returned by Compose. Exactly one of the
// style payloads is non-nil, matching Style.
type ViewData struct {
	Style view.Style `json:"style" bson:"style"`

	Board  *BoardData  `json:"board,omitempty" bson:"board,omitempty"`
	Tree   *TreeData   `json:"tree,omitempty" bson:"tree,omitempty"`
	Gantt  *GanttData  `json:"gantt,omitempty" bson:"gantt,omitempty"`
	Table  *TableData  `json:"table,omitempty" bson:"table,omitempty"`
	Canvas *CanvasData `json:"canvas,omitempty" bson:"canvas,omitempty"`

	// ColorKeys maps node IDs to their color bucket key when the view
	// configures a color field. Resolving a key to a concrete color is the
	// renderer's responsibility.
	ColorKeys map[string]string `json:"color_keys,omitempty" bson:"color_keys,omitempty"`
}

// BoardData is the kanban payload: swimlanes of columns of cards.
type BoardData struct {
	Swimlanes []board.Swimlane `json:"swimlanes" bson:"swimlanes"`
}

// TreeData is the hierarchical payload.
type TreeData struct {
	Roots []*tree.Node `json:"roots" bson:"roots"`
	Total int          `json:"total" bson:"total"`
}

// Gantt row geometry. Bars are vertically centered within their row.
const (
	GanttRowHeight = 36.0
	GanttBarHeight = 20.0
)

// GanttRow is one task row with its bar geometry.
type GanttRow struct {
	Node  model.Node   `json:"node" bson:"node"`
	Start time.Time    `json:"start" bson:"start"`
	End   time.Time    `json:"end" bson:"end"`
	Bar   timeline.Bar `json:"bar" bson:"bar"`
}

// GanttDependency is a routed arrow between two task bars.
type GanttDependency struct {
	FromNodeID string `json:"from_node_id" bson:"from_node_id"`
	ToNodeID   string `json:"to_node_id" bson:"to_node_id"`
	Path       string `json:"path" bson:"path"`
}

// GanttData is the timeline payload: the time axis, one row per task with
// parseable dates, and routed dependency arrows.
type GanttData struct {
	Scale        timeline.Scale        `json:"scale" bson:"scale"`
	Columns      []timeline.TimeColumn `json:"columns" bson:"columns"`
	Rows         []GanttRow            `json:"rows" bson:"rows"`
	Dependencies []GanttDependency     `json:"dependencies,omitempty" bson:"dependencies,omitempty"`
}

// TableData is the flat sorted payload.
type TableData struct {
	Nodes []model.Node `json:"nodes" bson:"nodes"`
}

// CanvasData is the 2D layout payload.
type CanvasData struct {
	Nodes []layout.PositionedNode `json:"nodes" bson:"nodes"`
	Edges []model.Edge            `json:"edges" bson:"edges"`
}
