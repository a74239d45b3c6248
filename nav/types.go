// Package nav tracks a user's traversal through the music graph: the
// live path, browse history, liked nodes with their path snapshots, and
// the edge-weight reinforcement signal derived from liked journeys.
package nav

import "time"

// Path and history bounds. The path is a sliding window of recent
// traversal, not a full session log.
const (
	MaxPathLength    = 100
	MaxHistoryLength = 200
)

// Metadata carries free-form node details captured alongside visits and
// likes. "type" and "name" are the conventional keys.
type Metadata map[string]interface{}

// Type returns the node type recorded in the metadata, or "" when absent.
func (m Metadata) Type() string {
	if s, ok := m["type"].(string); ok {
		return s
	}
	return ""
}

// Name returns the display name recorded in the metadata, or "" when absent.
func (m Metadata) Name() string {
	if s, ok := m["name"].(string); ok {
		return s
	}
	return ""
}

// LikeRecord captures a liked node together with the traversal that led
// to it. At most one record exists per node; re-liking refreshes the
// snapshot.
type LikeRecord struct {
	NodeID       string   `json:"nodeId"`
	Path         []string `json:"path"`
	SquashedPath []string `json:"squashedPath"`
	StartNode    string   `json:"startNode"`
	LikedAt      int64    `json:"likedAtEpochMs"`
	Metadata     Metadata `json:"metadata,omitempty"`
}

// BrowseEntry is one row of the newest-first browse history.
type BrowseEntry struct {
	NodeID      string `json:"nodeId"`
	DisplayName string `json:"displayName"`
	NodeType    string `json:"nodeType"`
	VisitedAt   int64  `json:"visitedAtEpochMs"`
}

// EdgeKey identifies a directed step between two adjacent nodes in a
// liked path. The rendered graph is undirected, so weights are always
// written under both directions of a step.
type EdgeKey struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Reverse returns the opposite-direction key.
func (k EdgeKey) Reverse() EdgeKey {
	return EdgeKey{From: k.To, To: k.From}
}

func (k EdgeKey) String() string {
	return k.From + "->" + k.To
}

// EdgeStat pairs an edge key with its derived weight.
type EdgeStat struct {
	Key    EdgeKey `json:"key"`
	Weight int     `json:"weight"`
}

// Statistics summarizes the like set and its derived weights.
type Statistics struct {
	TotalLikes        int            `json:"totalLikes"`
	AveragePathLength float64        `json:"averagePathLength"`
	DistinctEdges     int            `json:"distinctEdges"`
	TopEdge           *EdgeStat      `json:"topEdge,omitempty"`
	LikesByType       map[string]int `json:"likesByType"`
}

func epochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
