package nav

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/polarismusic/navigator/kv"
)

// Tracker owns the live traversal path, browse history, and like records
// for one visualization session. All methods are synchronous: each call
// fully completes, including its persistence write, before returning, so
// UI event handlers can call freely without interleaving corruption.
//
// Like records and browse history are reloaded from the store on
// construction and persisted fail-soft on every mutation; the current
// path is session-only state.
type Tracker struct {
	mu    sync.Mutex
	store kv.Store
	log   *zap.SugaredLogger
	now   func() time.Time

	startNode string
	path      []string
	history   []BrowseEntry // newest first
	likes     map[string]*LikeRecord
	likeOrder []string // insertion order of like records
}

// NewTracker creates a tracker bound to the given store, loading any
// previously persisted likes and browse history. Corrupt or
// version-mismatched stored state is treated as empty, never fatal.
func NewTracker(store kv.Store, logger *zap.SugaredLogger) *Tracker {
	t := &Tracker{
		store: store,
		log:   logger.Named("nav.tracker"),
		now:   time.Now,
		likes: make(map[string]*LikeRecord),
	}
	t.loadLikes()
	t.loadHistory()
	return t
}

// SetStartNode resets the traversal path to the given node. Called once
// per exploration session, or implicitly by the first VisitNode.
func (t *Tracker) SetStartNode(nodeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setStartNodeLocked(nodeID)
}

func (t *Tracker) setStartNodeLocked(nodeID string) {
	t.startNode = nodeID
	t.path = []string{nodeID}
}

// VisitNode records a node visit. Revisiting the current node leaves the
// path unchanged; otherwise the node is appended and the oldest entry
// evicted once the path exceeds MaxPathLength. Every visit records a
// browse-history entry unless the node is already at the history head.
func (t *Tracker) VisitNode(nodeID string, metadata Metadata) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.startNode == "" {
		t.setStartNodeLocked(nodeID)
	} else if last := t.path[len(t.path)-1]; last != nodeID {
		t.path = append(t.path, nodeID)
		if len(t.path) > MaxPathLength {
			t.path = t.path[len(t.path)-MaxPathLength:]
		}
	}

	t.recordHistoryLocked(nodeID, metadata)
	t.persistHistory()
}

func (t *Tracker) recordHistoryLocked(nodeID string, metadata Metadata) {
	// Head-duplicate suppression: the timestamp of first visit is kept
	if len(t.history) > 0 && t.history[0].NodeID == nodeID {
		return
	}

	entry := BrowseEntry{
		NodeID:      nodeID,
		DisplayName: metadata.Name(),
		NodeType:    metadata.Type(),
		VisitedAt:   epochMillis(t.now()),
	}
	t.history = append([]BrowseEntry{entry}, t.history...)
	if len(t.history) > MaxHistoryLength {
		t.history = t.history[:MaxHistoryLength]
	}
}

// StartNode returns the current session's start node, or "" if unset.
func (t *Tracker) StartNode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startNode
}

// CurrentPath returns a copy of the live traversal path.
func (t *Tracker) CurrentPath() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyPath(t.path)
}

// SquashedCurrentPath returns the loop-eliminated form of the live path.
func (t *Tracker) SquashedCurrentPath() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Squash(t.path)
}

// BrowseHistory returns a copy of the newest-first browse history.
func (t *Tracker) BrowseHistory() []BrowseEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]BrowseEntry, len(t.history))
	copy(out, t.history)
	return out
}

// RecordLike snapshots the current path into a like record for nodeID,
// replacing any prior record for that node. Calling it twice simply
// refreshes the snapshot.
func (t *Tracker) RecordLike(nodeID string, metadata Metadata) *LikeRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := &LikeRecord{
		NodeID:       nodeID,
		Path:         copyPath(t.path),
		SquashedPath: Squash(t.path),
		StartNode:    t.startNode,
		LikedAt:      epochMillis(t.now()),
		Metadata:     metadata,
	}

	if _, exists := t.likes[nodeID]; !exists {
		t.likeOrder = append(t.likeOrder, nodeID)
	}
	t.likes[nodeID] = record
	t.persistLikes()

	return record.clone()
}

// IsLiked reports whether a like record exists for nodeID.
func (t *Tracker) IsLiked(nodeID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.likes[nodeID]
	return ok
}

// GetLike returns a copy of the like record for nodeID, if any.
func (t *Tracker) GetLike(nodeID string) (*LikeRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	record, ok := t.likes[nodeID]
	if !ok {
		return nil, false
	}
	return record.clone(), true
}

// RemoveLike deletes the like record for nodeID and reports whether one
// existed. The store is updated only on successful removal.
func (t *Tracker) RemoveLike(nodeID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.likes[nodeID]; !ok {
		return false
	}
	delete(t.likes, nodeID)
	for i, id := range t.likeOrder {
		if id == nodeID {
			t.likeOrder = append(t.likeOrder[:i], t.likeOrder[i+1:]...)
			break
		}
	}
	t.persistLikes()
	return true
}

// AllLikes returns copies of every like record in insertion order.
func (t *Tracker) AllLikes() []*LikeRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*LikeRecord, 0, len(t.likeOrder))
	for _, id := range t.likeOrder {
		out = append(out, t.likes[id].clone())
	}
	return out
}

// ClearCurrentPath resets the traversal path and start node. Likes and
// browse history are untouched.
func (t *Tracker) ClearCurrentPath() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startNode = ""
	t.path = nil
}

// ClearAllLikes removes every like record and its durable store entry.
func (t *Tracker) ClearAllLikes() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.likes = make(map[string]*LikeRecord)
	t.likeOrder = nil
	if err := t.store.Remove(storageKeyLikes); err != nil {
		t.log.Warnw("Failed to clear persisted likes", "error", err)
	}
}

// ClearBrowseHistory removes the browse history and its durable store entry.
func (t *Tracker) ClearBrowseHistory() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = nil
	if err := t.store.Remove(storageKeyHistory); err != nil {
		t.log.Warnw("Failed to clear persisted browse history", "error", err)
	}
}

func (r *LikeRecord) clone() *LikeRecord {
	out := *r
	out.Path = copyPath(r.Path)
	out.SquashedPath = copyPath(r.SquashedPath)
	return &out
}

func copyPath(path []string) []string {
	out := make([]string, len(path))
	copy(out, path)
	return out
}
