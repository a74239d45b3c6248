package nav

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/polarismusic/navigator/errors"
	"github.com/polarismusic/navigator/kv"
)

func newTestTracker(t *testing.T) (*Tracker, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	return NewTracker(store, zaptest.NewLogger(t).Sugar()), store
}

func TestVisitNode(t *testing.T) {
	t.Run("first visit seeds the start node", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		tracker.VisitNode("group:pink-floyd", Metadata{"type": "group", "name": "Pink Floyd"})

		assert.Equal(t, "group:pink-floyd", tracker.StartNode())
		assert.Equal(t, []string{"group:pink-floyd"}, tracker.CurrentPath())
	})

	t.Run("revisiting the current node leaves the path unchanged", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		tracker.SetStartNode("root")
		tracker.VisitNode("a", nil)
		tracker.VisitNode("a", nil)

		assert.Equal(t, []string{"root", "a"}, tracker.CurrentPath())
	})

	t.Run("path slides past the window bound", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		tracker.SetStartNode("n0")
		for i := 1; i <= MaxPathLength+25; i++ {
			tracker.VisitNode(fmt.Sprintf("n%d", i), nil)
		}

		path := tracker.CurrentPath()
		require.Len(t, path, MaxPathLength)
		// Oldest entries evicted, newest preserved
		assert.Equal(t, "n26", path[0])
		assert.Equal(t, "n125", path[len(path)-1])
	})

	t.Run("returned path is a copy", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		tracker.SetStartNode("root")
		path := tracker.CurrentPath()
		path[0] = "mutated"

		assert.Equal(t, []string{"root"}, tracker.CurrentPath())
	})
}

func TestBrowseHistory(t *testing.T) {
	t.Run("records newest first with metadata", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		tracker.VisitNode("a", Metadata{"type": "group", "name": "ABBA"})
		tracker.VisitNode("b", Metadata{"type": "release", "name": "Arrival"})

		history := tracker.BrowseHistory()
		require.Len(t, history, 2)
		assert.Equal(t, "b", history[0].NodeID)
		assert.Equal(t, "Arrival", history[0].DisplayName)
		assert.Equal(t, "release", history[0].NodeType)
		assert.Equal(t, "a", history[1].NodeID)
	})

	t.Run("head duplicate is suppressed and keeps first timestamp", func(t *testing.T) {
		tracker, _ := newTestTracker(t)
		current := time.UnixMilli(1_700_000_000_000)
		tracker.now = func() time.Time { return current }

		tracker.VisitNode("a", nil)
		first := tracker.BrowseHistory()[0].VisitedAt

		current = current.Add(5 * time.Second)
		tracker.VisitNode("a", nil)

		history := tracker.BrowseHistory()
		require.Len(t, history, 1)
		assert.Equal(t, first, history[0].VisitedAt)
	})

	t.Run("non-adjacent repeats are re-recorded", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		tracker.VisitNode("a", nil)
		tracker.VisitNode("b", nil)
		tracker.VisitNode("a", nil)

		history := tracker.BrowseHistory()
		require.Len(t, history, 3)
		assert.Equal(t, "a", history[0].NodeID)
	})

	t.Run("history is capped", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		for i := 0; i < MaxHistoryLength+40; i++ {
			tracker.VisitNode(fmt.Sprintf("n%d", i), nil)
		}

		history := tracker.BrowseHistory()
		require.Len(t, history, MaxHistoryLength)
		assert.Equal(t, fmt.Sprintf("n%d", MaxHistoryLength+39), history[0].NodeID)
	})
}

func TestLikes(t *testing.T) {
	t.Run("record like snapshots the current path", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		tracker.SetStartNode("root")
		tracker.VisitNode("a", nil)
		tracker.VisitNode("b", nil)

		record := tracker.RecordLike("b", Metadata{"type": "track", "name": "Money"})
		require.NotNil(t, record)
		assert.Equal(t, []string{"root", "a", "b"}, record.Path)
		assert.Equal(t, "root", record.StartNode)

		// Later path mutations must not leak into the stored snapshot
		tracker.VisitNode("c", nil)
		stored, ok := tracker.GetLike("b")
		require.True(t, ok)
		assert.Equal(t, []string{"root", "a", "b"}, stored.Path)
	})

	t.Run("re-liking refreshes the snapshot without duplicating", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		tracker.SetStartNode("root")
		tracker.VisitNode("a", nil)
		tracker.RecordLike("a", nil)

		tracker.VisitNode("b", nil)
		tracker.VisitNode("a", nil)
		tracker.RecordLike("a", nil)

		likes := tracker.AllLikes()
		require.Len(t, likes, 1)
		assert.Equal(t, []string{"root", "a", "b", "a"}, likes[0].Path)
	})

	t.Run("remove like reports existence", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		tracker.SetStartNode("a")
		tracker.RecordLike("a", nil)

		assert.True(t, tracker.IsLiked("a"))
		assert.True(t, tracker.RemoveLike("a"))
		assert.False(t, tracker.IsLiked("a"))
		assert.False(t, tracker.RemoveLike("a"))
	})

	t.Run("clear all likes removes the durable entry", func(t *testing.T) {
		tracker, store := newTestTracker(t)

		tracker.SetStartNode("a")
		tracker.RecordLike("a", nil)
		_, ok, err := store.Get("likes")
		require.NoError(t, err)
		require.True(t, ok)

		tracker.ClearAllLikes()
		assert.Empty(t, tracker.AllLikes())
		_, ok, err = store.Get("likes")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPersistence(t *testing.T) {
	t.Run("likes and history survive reconstruction", func(t *testing.T) {
		store := kv.NewMemoryStore()
		logger := zaptest.NewLogger(t).Sugar()

		tracker := NewTracker(store, logger)
		tracker.SetStartNode("root")
		tracker.VisitNode("a", Metadata{"type": "person", "name": "Nick Mason"})
		tracker.RecordLike("a", Metadata{"type": "person", "name": "Nick Mason"})

		reloaded := NewTracker(store, logger)
		likes := reloaded.AllLikes()
		require.Len(t, likes, 1)
		assert.Equal(t, "a", likes[0].NodeID)
		assert.Equal(t, []string{"root", "a"}, likes[0].Path)

		history := reloaded.BrowseHistory()
		require.Len(t, history, 1)
		assert.Equal(t, "Nick Mason", history[0].DisplayName)
	})

	t.Run("corrupt stored likes load as empty", func(t *testing.T) {
		store := kv.NewMemoryStore()
		require.NoError(t, store.Set("likes", "{not json"))

		tracker := NewTracker(store, zaptest.NewLogger(t).Sugar())
		assert.Empty(t, tracker.AllLikes())
	})

	t.Run("schema version mismatch loads as empty", func(t *testing.T) {
		store := kv.NewMemoryStore()
		doc, err := json.Marshal(likesDocument{
			Version: likesSchemaVersion + 1,
			Records: []LikeRecord{{NodeID: "a", Path: []string{"a"}}},
		})
		require.NoError(t, err)
		require.NoError(t, store.Set("likes", string(doc)))

		tracker := NewTracker(store, zaptest.NewLogger(t).Sugar())
		assert.Empty(t, tracker.AllLikes())
	})

	t.Run("write failures are absorbed and memory stays authoritative", func(t *testing.T) {
		store := kv.NewMemoryStore()
		store.FailWrites = errors.New("disk full")

		tracker := NewTracker(store, zaptest.NewLogger(t).Sugar())
		tracker.SetStartNode("root")
		tracker.VisitNode("a", nil)
		record := tracker.RecordLike("a", nil)

		require.NotNil(t, record)
		assert.True(t, tracker.IsLiked("a"))
		assert.Len(t, tracker.BrowseHistory(), 1)
	})
}

func TestClearCurrentPath(t *testing.T) {
	tracker, _ := newTestTracker(t)

	tracker.SetStartNode("root")
	tracker.VisitNode("a", nil)
	tracker.ClearCurrentPath()

	assert.Empty(t, tracker.CurrentPath())
	assert.Equal(t, "", tracker.StartNode())

	// Next visit re-seeds the session
	tracker.VisitNode("b", nil)
	assert.Equal(t, "b", tracker.StartNode())
	assert.Equal(t, []string{"b"}, tracker.CurrentPath())
}
