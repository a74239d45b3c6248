package nav

// Edge weights are the "ant colony" reinforcement signal: every step of
// every liked journey increments the weight of the edge it crossed. The
// table is recomputed from the raw (unsquashed) like paths on every
// call; the squashed path is persisted with each record but deliberately
// not used for weighting.
//
// Each traversed step increments both the forward and reverse keys
// because the rendered graph is undirected, so weight(u,v) == weight(v,u)
// always holds for a table derived from one like set.

// EdgeWeights recomputes the full edge-weight table from all like records.
func (t *Tracker) EdgeWeights() map[EdgeKey]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	weights, _ := t.computeWeightsLocked()
	return weights
}

// EdgeWeight returns the weight of a single directed edge from a freshly
// computed table.
func (t *Tracker) EdgeWeight(from, to string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	weights, _ := t.computeWeightsLocked()
	return weights[EdgeKey{From: from, To: to}]
}

// computeWeightsLocked derives the table and the order in which keys
// were first seen. The order makes tie-breaks deterministic: likes are
// walked in insertion order and steps left to right.
func (t *Tracker) computeWeightsLocked() (map[EdgeKey]int, []EdgeKey) {
	weights := make(map[EdgeKey]int)
	var order []EdgeKey

	bump := func(key EdgeKey) {
		if _, seen := weights[key]; !seen {
			order = append(order, key)
		}
		weights[key]++
	}

	for _, id := range t.likeOrder {
		path := t.likes[id].Path
		for i := 0; i+1 < len(path); i++ {
			step := EdgeKey{From: path[i], To: path[i+1]}
			bump(step)
			bump(step.Reverse())
		}
	}

	return weights, order
}

// Statistics summarizes the like set: totals, mean raw-path length,
// distinct edge keys, the highest-weight edge (first seen wins ties),
// and like counts grouped by metadata type.
func (t *Tracker) Statistics() Statistics {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := Statistics{
		TotalLikes:  len(t.likeOrder),
		LikesByType: make(map[string]int),
	}

	totalLength := 0
	for _, id := range t.likeOrder {
		record := t.likes[id]
		totalLength += len(record.Path)
		stats.LikesByType[record.Metadata.Type()]++
	}
	if stats.TotalLikes > 0 {
		stats.AveragePathLength = float64(totalLength) / float64(stats.TotalLikes)
	}

	weights, order := t.computeWeightsLocked()
	stats.DistinctEdges = len(weights)
	for _, key := range order {
		if stats.TopEdge == nil || weights[key] > stats.TopEdge.Weight {
			stats.TopEdge = &EdgeStat{Key: key, Weight: weights[key]}
		}
	}

	return stats
}
