package graph

import (
	"time"

	"github.com/polarismusic/navigator/nav"
)

// baseLinkWeight is the weight of a link no liked journey has crossed.
const baseLinkWeight = 1.0

// ApplyReinforcement projects the tracker's liked-path signal onto a
// graph: every link crossed by liked journeys gains weight proportional
// to its traversal count, and liked nodes are flagged for the renderer.
// Links are matched in either direction since the weight table is
// symmetric.
func ApplyReinforcement(g *Graph, tracker *nav.Tracker) {
	weights := tracker.EdgeWeights()

	for i := range g.Links {
		link := &g.Links[i]
		weight := weights[nav.EdgeKey{From: link.Source, To: link.Target}]
		link.Weight = baseLinkWeight + float64(weight)
	}

	for i := range g.Nodes {
		g.Nodes[i].Liked = tracker.IsLiked(g.Nodes[i].ID)
	}

	g.Meta.GeneratedAt = time.Now()
	g.Meta.Stats = Stats{
		TotalNodes: len(g.Nodes),
		TotalEdges: len(g.Links),
		TotalLikes: tracker.Statistics().TotalLikes,
	}
}
