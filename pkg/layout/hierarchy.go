package layout

import (
	"sort"

	"github.com/flowboardhq/flowboard/pkg/model"
)

// Hierarchy computes a layered, Sugiyama-style layout.
//
// Nodes are ranked by breadth-first distance from the graph's sources
// (in-degree-0 nodes within the input set). Within a layer, nodes are ordered
// by the mean position of their parents in the layer above, which keeps most
// edges short without a full crossing-minimization pass. Layers are centered
// on the cross axis.
//
// Nodes the ranking never reaches - members of a purely cyclic component with
// no entry point - are left at their original position unchanged rather than
// being dropped.
func Hierarchy(nodes []PositionedNode, edges []model.Edge, axis Axis) []PositionedNode {
	inSet := make(map[string]int, len(nodes))
	for i := range nodes {
		inSet[nodes[i].Node.ID] = i
	}

	out := make(map[string][]string)
	indegree := make(map[string]int)
	for _, e := range edges {
		if _, ok := inSet[e.FromNodeID]; !ok {
			continue
		}
		if _, ok := inSet[e.ToNodeID]; !ok {
			continue
		}
		out[e.FromNodeID] = append(out[e.FromNodeID], e.ToNodeID)
		indegree[e.ToNodeID]++
	}

	// Rank by BFS rounds from the sources, in input order.
	var frontier []string
	for i := range nodes {
		if indegree[nodes[i].Node.ID] == 0 {
			frontier = append(frontier, nodes[i].Node.ID)
		}
	}

	rank := make(map[string]int)
	var layers [][]string
	for len(frontier) > 0 {
		layers = append(layers, frontier)
		depth := len(layers)
		var next []string
		for _, id := range frontier {
			for _, child := range out[id] {
				if _, seen := rank[child]; seen {
					continue
				}
				rank[child] = depth
				next = append(next, child)
			}
		}
		for _, id := range frontier {
			rank[id] = depth - 1
		}
		frontier = next
	}

	// Regroup: a node first reached at depth d may have been re-ranked by a
	// later frontier entry; rebuild layers from the final rank map.
	layers = layers[:0]
	for i := range nodes {
		id := nodes[i].Node.ID
		r, ok := rank[id]
		if !ok {
			continue // unreachable: keeps its original position
		}
		for len(layers) <= r {
			layers = append(layers, nil)
		}
		layers[r] = append(layers[r], id)
	}

	orderLayers(layers, out)
	result := make([]PositionedNode, len(nodes))
	copy(result, nodes)

	// Spacing along the main axis uses the box dimension the layers advance
	// over; the cross axis uses the other one.
	mainStep, crossStep := BoxHeight+LayerSep, BoxWidth+NodeSep
	if axis == AxisLeftToRight {
		mainStep, crossStep = BoxWidth+LayerSep, BoxHeight+NodeSep
	}

	// Widest layer fixes the cross-axis extent; each layer is centered in it.
	maxLen := 0
	for _, l := range layers {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	extent := float64(maxLen-1) * crossStep

	halfW, halfH := BoxWidth/2, BoxHeight/2
	for r, layer := range layers {
		offset := (extent - float64(len(layer)-1)*crossStep) / 2
		for i, id := range layer {
			idx := inSet[id]
			if axis == AxisLeftToRight {
				centerX := float64(r)*mainStep + halfW
				centerY := offset + float64(i)*crossStep + halfH
				result[idx].X = centerX - halfW
				result[idx].Y = centerY - halfH
			} else {
				centerX := offset + float64(i)*crossStep + halfW
				centerY := float64(r)*mainStep + halfH
				result[idx].X = centerX - halfW
				result[idx].Y = centerY - halfH
			}
		}
	}
	return result
}

// orderLayers sorts each layer below the first by the mean index of each
// node's parents in the layer above. The sort is stable, so nodes without
// parents in the previous layer keep their first-seen order.
func orderLayers(layers [][]string, out map[string][]string) {
	for r := 1; r < len(layers); r++ {
		prevPos := make(map[string]int, len(layers[r-1]))
		for i, id := range layers[r-1] {
			prevPos[id] = i
		}

		parentMean := make(map[string]float64, len(layers[r]))
		for _, parent := range layers[r-1] {
			for _, child := range out[parent] {
				parentMean[child] += float64(prevPos[parent])
			}
		}
		counts := make(map[string]int)
		for _, parent := range layers[r-1] {
			for _, child := range out[parent] {
				counts[child]++
			}
		}
		for id, sum := range parentMean {
			parentMean[id] = sum / float64(counts[id])
		}

		sort.SliceStable(layers[r], func(i, j int) bool {
			return parentMean[layers[r][i]] < parentMean[layers[r][j]]
		})
	}
}
