package layout

import (
	"math"
	"math/rand/v2"
)

// Cluster groups nodes by their type and lays each group out as a roughly
// square grid, advancing a horizontal cursor past each cluster so clusters
// never overlap.
//
// This is an approximation of a force-directed clustering, not a physical
// simulation: placement is fully deterministic for a given seed, with a small
// per-node jitter for a hand-placed feel. Tests should assert bounding-box
// separation between clusters rather than exact pixel positions.
func Cluster(nodes []PositionedNode, seed uint64) []PositionedNode {
	// type buckets in first-seen order
	var order []string
	byType := make(map[string][]int)
	for i := range nodes {
		t := nodes[i].Node.Type
		if _, seen := byType[t]; !seen {
			order = append(order, t)
		}
		byType[t] = append(byType[t], i)
	}

	result := make([]PositionedNode, len(nodes))
	copy(result, nodes)

	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	cursorX := 0.0
	for _, t := range order {
		members := byType[t]
		cols := int(math.Ceil(math.Sqrt(float64(len(members)))))

		for i, idx := range members {
			row := i / cols
			col := i % cols
			jx := (rng.Float64()*2 - 1) * ClusterJitter
			jy := (rng.Float64()*2 - 1) * ClusterJitter
			result[idx].X = cursorX + float64(col)*(BoxWidth+NodeSep) + jx
			result[idx].Y = float64(row)*(BoxHeight+NodeSep) + jy
		}

		clusterWidth := float64(cols)*(BoxWidth+NodeSep) + ClusterJitter
		cursorX += clusterWidth + ClusterGap
	}
	return result
}
