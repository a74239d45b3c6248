package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// PendingCmd manages the deferred submission queue.
var PendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Inspect or flush the deferred submission queue",
	Long: `Inspect likes that were recorded while no wallet session was
available, or replay them through the wallet.

Examples:
  navigator pending list    # Show queued submissions
  navigator pending flush   # Replay the queue in FIFO order`,
}

var pendingListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show queued submissions",
	RunE:  runPendingList,
}

var pendingFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Replay the queue through the wallet",
	Long: `Submit every queued like in FIFO order. Per-item failures are
reported but do not stop the replay; the queue is cleared afterwards
either way, so failed items must be re-liked to retry.`,
	RunE: runPendingFlush,
}

func init() {
	PendingCmd.AddCommand(pendingListCmd)
	PendingCmd.AddCommand(pendingFlushCmd)
}

func runPendingList(cmd *cobra.Command, args []string) error {
	_, database, sess, err := openSession()
	if err != nil {
		return err
	}
	defer database.Close()

	pending := sess.Relay.PendingSubmissions()
	if len(pending) == 0 {
		fmt.Println("No pending submissions.")
		return nil
	}

	fmt.Printf("%d pending submission(s):\n\n", len(pending))
	for i, item := range pending {
		queued := time.UnixMilli(item.QueuedAt).Format(time.RFC3339)
		fmt.Printf("%3d. %s  (path %d nodes, queued %s)\n", i+1, item.NodeID, len(item.Path), queued)
	}
	return nil
}

func runPendingFlush(cmd *cobra.Command, args []string) error {
	_, database, sess, err := openSession()
	if err != nil {
		return err
	}
	defer database.Close()

	count := sess.Relay.PendingCount()
	if count == 0 {
		fmt.Println("No pending submissions.")
		return nil
	}

	fmt.Printf("Replaying %d pending submission(s)...\n", count)
	results, err := sess.Relay.SubmitPendingLikes(context.Background())
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Err != nil {
			fmt.Printf("  ✗ %s: %v\n", result.NodeID, result.Err)
			continue
		}
		fmt.Printf("  ✓ %s: %s\n", result.NodeID, result.TransactionID)
	}
	return nil
}
