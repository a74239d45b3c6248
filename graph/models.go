// Package graph defines the structures the renderer consumes and the
// overlay that projects liked-path reinforcement weights onto links.
package graph

import (
	"time"
)

// Graph represents the complete graph structure for visualization
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
	Meta  Meta   `json:"meta"`
}

// Node represents an entity in the graph
type Node struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"` // "group", "person", "release", "track", or "root"
	Label    string                 `json:"label"`
	Liked    bool                   `json:"liked,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Link represents a relationship between nodes
type Link struct {
	Source string  `json:"source"` // Node ID
	Target string  `json:"target"` // Node ID
	Type   string  `json:"type"`
	Weight float64 `json:"value"` // Link strength/weight (D3 uses "value")
	Label  string  `json:"label,omitempty"`
}

// Meta contains metadata about the graph
type Meta struct {
	GeneratedAt time.Time `json:"generated_at"`
	Stats       Stats     `json:"stats"`
}

// Stats provides graph statistics
type Stats struct {
	TotalNodes int `json:"total_nodes,omitempty"`
	TotalEdges int `json:"total_edges,omitempty"`
	TotalLikes int `json:"total_likes,omitempty"`
}
