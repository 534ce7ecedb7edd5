package board

import (
	"fmt"

	"github.com/flowboardhq/flowboard/pkg/field"
	"github.com/flowboardhq/flowboard/pkg/model"
)

// =============================================================================
// Output Shapes
// =============================================================================

// Column is one bucket of the primary grouping dimension.
type Column struct {
	ID    string       `json:"id" bson:"id"`
	Label string       `json:"label" bson:"label"`
	Nodes []model.Node `json:"nodes" bson:"nodes"`
}

// Swimlane is one bucket of the secondary (row) grouping dimension. When no
// swimlane spec is configured, a single implicit swimlane with an empty ID
// wraps all columns and no swimlane header should be rendered.
type Swimlane struct {
	ID         string   `json:"id" bson:"id"`
	Label      string   `json:"label" bson:"label"`
	Columns    []Column `json:"columns" bson:"columns"`
	TotalCount int      `json:"total_count" bson:"total_count"`
}

// Implicit reports whether this is the degenerate single swimlane that wraps
// a one-dimensional board.
func (s *Swimlane) Implicit() bool { return s.ID == "" }

// Options parameterizes grouping. The zero value retains empty buckets in
// both dimensions - structure visibility wins over compactness by default.
type Options struct {
	// ColumnOrder is the caller-declared column order. Keys observed in the
	// node set but absent here are appended in first-seen order.
	ColumnOrder []string

	// SwimlaneOrder is the caller-declared swimlane order, same rules as
	// ColumnOrder.
	SwimlaneOrder []string

	// PruneEmptyColumns drops columns that end up with zero nodes.
	PruneEmptyColumns bool

	// PruneEmptySwimlanes drops swimlanes that end up with zero nodes.
	PruneEmptySwimlanes bool
}

// =============================================================================
// Grouping
// =============================================================================

// GroupNodes buckets nodes along one or two dimensions.
//
// Every node lands in exactly one (column, swimlane) pair. Nodes whose key
// cannot be resolved land in the sentinel bucket - that bucket is legitimate
// output, not an error. Column and swimlane ordering is the explicit order
// from opts first, then observed keys in first-seen order; nothing is sorted.
//
// When swimlaneRef is nil (or empty), the result is a single implicit
// swimlane whose columns are exactly the one-dimensional grouping.
func GroupNodes(nodes []model.Node, columnRef field.Ref, swimlaneRef *field.Ref, opts Options, ctx field.Context) []Swimlane {
	laneKeyFn := func(*model.Node) string { return "" }
	swimlaneOrder := opts.SwimlaneOrder
	if swimlaneRef != nil && !swimlaneRef.IsZero() {
		ref := *swimlaneRef
		laneKeyFn = func(n *model.Node) string { return GroupKey(n, ref, ctx) }
	} else {
		// One-dimensional board: a leftover declared order must not
		// fabricate lanes beside the implicit one.
		swimlaneOrder = nil
	}

	laneOrder := newBucketOrder(swimlaneOrder)
	colOrder := newBucketOrder(opts.ColumnOrder)

	// node assignment: lane key -> column key -> nodes
	byLane := make(map[string]map[string][]model.Node)
	for i := range nodes {
		n := &nodes[i]
		lane := laneKeyFn(n)
		col := GroupKey(n, columnRef, ctx)
		laneOrder.observe(lane)
		colOrder.observe(col)
		if byLane[lane] == nil {
			byLane[lane] = make(map[string][]model.Node)
		}
		byLane[lane][col] = append(byLane[lane][col], *n)
	}

	lanes := laneOrder.keys()
	if len(lanes) == 0 {
		lanes = []string{""} // implicit swimlane even for an empty node set
	}

	out := make([]Swimlane, 0, len(lanes))
	for _, laneKey := range lanes {
		lane := Swimlane{ID: laneKey, Label: laneLabel(laneKey)}
		for _, colKey := range colOrder.keys() {
			colNodes := byLane[laneKey][colKey]
			if len(colNodes) == 0 && opts.PruneEmptyColumns {
				continue
			}
			lane.Columns = append(lane.Columns, Column{
				ID:    colKey,
				Label: colKey,
				Nodes: colNodes,
			})
			lane.TotalCount += len(colNodes)
		}
		if lane.TotalCount == 0 && opts.PruneEmptySwimlanes && !lane.Implicit() {
			continue
		}
		out = append(out, lane)
	}
	return out
}

// GroupKey resolves a node's bucket key for a grouping reference.
// Unresolvable keys (nil, empty string) collapse into the sentinel bucket.
func GroupKey(n *model.Node, ref field.Ref, ctx field.Context) string {
	v := field.Resolve(n, ref, ctx)
	if v == nil {
		return model.SentinelUnassigned
	}
	s := fmt.Sprintf("%v", v)
	if s == "" {
		return model.SentinelUnassigned
	}
	return s
}

// laneLabel maps the sentinel to its row-dimension label. Other keys label
// themselves.
func laneLabel(key string) string {
	if key == model.SentinelUnassigned {
		return model.SentinelUngrouped
	}
	return key
}

// =============================================================================
// Bucket Ordering
// =============================================================================

// bucketOrder tracks bucket keys as explicit-order-first, then first-seen.
type bucketOrder struct {
	order []string
	seen  map[string]struct{}
}

func newBucketOrder(explicit []string) *bucketOrder {
	b := &bucketOrder{seen: make(map[string]struct{}, len(explicit))}
	for _, k := range explicit {
		if _, dup := b.seen[k]; dup {
			continue
		}
		b.seen[k] = struct{}{}
		b.order = append(b.order, k)
	}
	return b
}

func (b *bucketOrder) observe(key string) {
	if _, ok := b.seen[key]; ok {
		return
	}
	b.seen[key] = struct{}{}
	b.order = append(b.order, key)
}

func (b *bucketOrder) keys() []string { return b.order }
