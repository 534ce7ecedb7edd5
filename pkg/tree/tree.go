// Package tree reconstructs parent/child forests from an arbitrary, possibly
// cyclic, edge set.
//
// Each edge (from, to) is read as "from is parent of to", restricted to the
// node subset handed in - edges touching nodes outside the subset are ignored.
// Roots are the nodes that are never the target of a qualifying edge. Cycles
// are cut with a per-path visited set: a branch aborts when it would re-enter
// a node already on the current root-to-here path, while a node may still
// appear under multiple distinct parents (diamond shapes are legitimate).
//
// A fully cyclic component with no in-degree-0 entry point yields zero roots.
// That component simply does not appear in the forest; callers that expect
// cycles should pair the forest with the flat node list rather than relying
// on tree output alone.
package tree

import (
	"sort"

	"github.com/flowboardhq/flowboard/pkg/model"
)

// Node is one node of the forest, annotated with its depth below its root.
// Depth of a root is 0; each expansion level adds 1.
type Node struct {
	Node     model.Node `json:"node" bson:"node"`
	Children []*Node    `json:"children,omitempty" bson:"children,omitempty"`
	Depth    int        `json:"depth" bson:"depth"`
}

// Count returns the number of nodes in this subtree, including the receiver.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// BuildForest builds the forest for the given node subset and edge set.
//
// Roots are sorted by title for deterministic display order; children keep
// edge iteration order. A node with no qualifying edges at all becomes a
// single-node root.
func BuildForest(nodes []model.Node, edges []model.Edge) []*Node {
	byID := make(map[string]*model.Node, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	// children and in-degree, restricted to the subset
	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, e := range edges {
		if byID[e.FromNodeID] == nil || byID[e.ToNodeID] == nil {
			continue
		}
		children[e.FromNodeID] = append(children[e.FromNodeID], e.ToNodeID)
		hasParent[e.ToNodeID] = true
	}

	var roots []*Node
	for i := range nodes {
		if hasParent[nodes[i].ID] {
			continue
		}
		roots = append(roots, expand(nodes[i].ID, 0, byID, children, map[string]bool{}))
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].Node.Title < roots[j].Node.Title
	})
	return roots
}

// expand builds the subtree rooted at id. onPath is copied on descend so the
// guard only blocks revisits along the current path, not across siblings.
func expand(id string, depth int, byID map[string]*model.Node, children map[string][]string, onPath map[string]bool) *Node {
	n := &Node{Node: *byID[id], Depth: depth}

	path := make(map[string]bool, len(onPath)+1)
	for k := range onPath {
		path[k] = true
	}
	path[id] = true

	for _, childID := range children[id] {
		if path[childID] {
			continue // cycle: already on this path
		}
		n.Children = append(n.Children, expand(childID, depth+1, byID, children, path))
	}
	return n
}

// CountForest returns the total node count across all roots, descendants
// included. Useful for asserting that tree building neither duplicates nor
// drops nodes on plain trees.
func CountForest(roots []*Node) int {
	total := 0
	for _, r := range roots {
		total += r.Count()
	}
	return total
}
