package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// StatsCmd summarizes the like set and its reinforcement weights.
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show like and edge-weight statistics",
	Long: `Summarize the liked-node set: totals, average traversal length,
distinct reinforced edges, and the strongest edge.`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, database, sess, err := openSession()
	if err != nil {
		return err
	}
	defer database.Close()

	stats := sess.Tracker.Statistics()

	fmt.Printf("Like Statistics\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Database Path:       %s\n", cfg.Database.Path)
	fmt.Printf("Total Likes:         %d\n", stats.TotalLikes)
	fmt.Printf("Avg Path Length:     %.1f\n", stats.AveragePathLength)
	fmt.Printf("Distinct Edge Keys:  %d\n", stats.DistinctEdges)
	if stats.TopEdge != nil {
		fmt.Printf("Strongest Edge:      %s (weight %d)\n", stats.TopEdge.Key, stats.TopEdge.Weight)
	}

	if len(stats.LikesByType) > 0 {
		fmt.Printf("\nLikes by type:\n")
		for nodeType, count := range stats.LikesByType {
			if nodeType == "" {
				nodeType = "(untyped)"
			}
			fmt.Printf("  %-10s %d\n", nodeType, count)
		}
	}

	return nil
}
