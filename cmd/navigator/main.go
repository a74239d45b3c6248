// Command navigator is the operator CLI for the Polaris graph
// navigator: inspect like statistics, manage the deferred submission
// queue, and run maintenance against the local database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polarismusic/navigator/cmd/navigator/commands"
	"github.com/polarismusic/navigator/config"
	"github.com/polarismusic/navigator/logger"
)

var rootCmd = &cobra.Command{
	Use:   "navigator",
	Short: "Polaris graph navigator - path tracking and ledger relay",
	Long: `Polaris graph navigator - traversal path tracking and deferred
ledger submission for the music registry graph.

Available commands:
  stats    - Show like and edge-weight statistics
  pending  - Inspect or flush the deferred submission queue
  history  - Show recent browse history
  version  - Show version information

Examples:
  navigator stats              # Summarize likes and reinforcement weights
  navigator pending list       # Show queued submissions
  navigator pending flush      # Replay the queue through the wallet
  navigator history --limit 20 # Show recent browse history`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := logger.Initialize(cfg.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commands.StatsCmd)
	rootCmd.AddCommand(commands.PendingCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
