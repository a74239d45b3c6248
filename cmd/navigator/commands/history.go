package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// HistoryCmd shows the persisted browse history.
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent browse history",
	RunE:  runHistory,
}

var historyLimitFlag int

func init() {
	HistoryCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, database, sess, err := openSession()
	if err != nil {
		return err
	}
	defer database.Close()

	history := sess.Tracker.BrowseHistory()
	if len(history) == 0 {
		fmt.Println("No browse history.")
		return nil
	}
	if historyLimitFlag > 0 && len(history) > historyLimitFlag {
		history = history[:historyLimitFlag]
	}

	for _, entry := range history {
		visited := time.UnixMilli(entry.VisitedAt).Format("2006-01-02 15:04:05")
		name := entry.DisplayName
		if name == "" {
			name = entry.NodeID
		}
		fmt.Printf("%s  %-10s %s\n", visited, entry.NodeType, name)
	}
	return nil
}
