// Package hops restricts the visible node set to a hop-limited neighborhood
// around a focal node. Edges are treated as undirected for this purpose: a
// node one "blocks" edge away is a neighbor regardless of which side of the
// edge the focal node sits on.
package hops

import "github.com/flowboardhq/flowboard/pkg/model"

// Set is a node-ID set. No iteration order is promised to callers.
type Set map[string]struct{}

// Contains reports whether the set includes the given node ID.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Nodes returns the focal node and every node reachable within maxHops
// undirected edge traversals. The focal node is always included, even when it
// has no edges. A maxHops of zero or less returns only the focal node.
//
// The adjacency index is built once in O(E) per call; the walk visits each
// reachable node at most once and terminates early when a round's frontier
// is empty.
func Nodes(focalID string, edges []model.Edge, maxHops int) Set {
	visited := Set{focalID: {}}
	if maxHops <= 0 {
		return visited
	}

	adjacency := make(map[string][]string)
	for _, e := range edges {
		adjacency[e.FromNodeID] = append(adjacency[e.FromNodeID], e.ToNodeID)
		adjacency[e.ToNodeID] = append(adjacency[e.ToNodeID], e.FromNodeID)
	}

	frontier := []string{focalID}
	for hop := 0; hop < maxHops && len(frontier) > 0; hop++ {
		var next []string
		for _, id := range frontier {
			for _, neighbor := range adjacency[id] {
				if visited.Contains(neighbor) {
					continue
				}
				visited[neighbor] = struct{}{}
				next = append(next, neighbor)
			}
		}
		frontier = next
	}
	return visited
}

// Filter returns the subset of nodes whose IDs are in the set, preserving
// input order.
func Filter(nodes []model.Node, keep Set) []model.Node {
	out := make([]model.Node, 0, len(keep))
	for _, n := range nodes {
		if keep.Contains(n.ID) {
			out = append(out, n)
		}
	}
	return out
}

// FilterEdges returns the subset of edges with both endpoints in the set,
// preserving input order.
func FilterEdges(edges []model.Edge, keep Set) []model.Edge {
	var out []model.Edge
	for _, e := range edges {
		if keep.Contains(e.FromNodeID) && keep.Contains(e.ToNodeID) {
			out = append(out, e)
		}
	}
	return out
}
