// Package layout assigns 2D coordinates to graph nodes for canvas views.
//
// Two interchangeable strategies share one signature: a hierarchical layered
// layout for dependency-shaped graphs, and a clustering layout that places
// nodes of the same type in loose grids. Both are pure functions of
// (nodes, edges); selecting between them is a caller-supplied enum.
//
// Coordinates are the top-left corner of a fixed-size node box - callers
// render boxes anchored at top-left, so the algorithms compute centers
// internally and subtract half the box size on output.
package layout

import "github.com/flowboardhq/flowboard/pkg/model"

// Strategy selects a positioning algorithm.
type Strategy string

// Available strategies.
const (
	StrategyHierarchy Strategy = "hierarchy"
	StrategyCluster   Strategy = "cluster"
)

// Axis is the growth direction of the hierarchical layout.
type Axis string

// Hierarchical layout axes.
const (
	AxisTopDown     Axis = "top-down"
	AxisLeftToRight Axis = "left-right"
)

// Node box and spacing constants shared by both strategies.
const (
	BoxWidth  = 160.0
	BoxHeight = 48.0

	// LayerSep is the gap between consecutive layers in hierarchical layout.
	LayerSep = 90.0
	// NodeSep is the gap between adjacent nodes within a layer.
	NodeSep = 40.0

	// ClusterGap is the horizontal gap between type clusters.
	ClusterGap = 60.0
	// ClusterJitter is the maximum per-node offset applied inside a cluster.
	ClusterJitter = 10.0
)

// PositionedNode is a node plus its assigned top-left canvas coordinates.
type PositionedNode struct {
	Node model.Node `json:"node" bson:"node"`
	X    float64    `json:"x" bson:"x"`
	Y    float64    `json:"y" bson:"y"`
}

// Options parameterizes a layout run.
type Options struct {
	// Strategy picks the algorithm. Defaults to StrategyHierarchy.
	Strategy Strategy

	// Axis sets the hierarchical growth direction. Defaults to AxisTopDown.
	Axis Axis

	// Seed drives the cluster layout's jitter. The same seed produces
	// identical positions.
	Seed uint64
}

// Arrange positions the given nodes using the selected strategy.
// An empty node list is returned unchanged for either strategy.
func Arrange(nodes []PositionedNode, edges []model.Edge, opts Options) []PositionedNode {
	if len(nodes) == 0 {
		return nodes
	}
	switch opts.Strategy {
	case StrategyCluster:
		return Cluster(nodes, opts.Seed)
	default:
		return Hierarchy(nodes, edges, opts.Axis)
	}
}

// Wrap lifts plain nodes into positioned nodes at the origin.
func Wrap(nodes []model.Node) []PositionedNode {
	out := make([]PositionedNode, len(nodes))
	for i, n := range nodes {
		out[i] = PositionedNode{Node: n}
	}
	return out
}
