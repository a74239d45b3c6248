package ledger

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/polarismusic/navigator/errors"
	"github.com/polarismusic/navigator/kv"
	"github.com/polarismusic/navigator/nav"
)

// storageKeyPending is the durable namespace for the pending queue.
// Stable name, part of the persisted contract.
const storageKeyPending = "pendingSubmissions"

const pendingSchemaVersion = 1

// PendingSubmission is a like awaiting ledger submission because no
// signer was available at like time. Entries replay in FIFO order.
type PendingSubmission struct {
	ID       string   `json:"id"`
	NodeID   string   `json:"nodeId"`
	Path     []string `json:"truncatedPath"`
	QueuedAt int64    `json:"queuedAtEpochMs"`
}

type pendingDocument struct {
	Version int                 `json:"version"`
	Items   []PendingSubmission `json:"items"`
}

// LikeResult reports the outcome of a like/unlike call. The local like
// state is authoritative and never rolled back on submission failure, so
// Liked can be true while Submitted is false.
type LikeResult struct {
	NodeID        string
	Liked         bool
	Submitted     bool
	Deferred      bool
	TransactionID string
}

// PendingResult is the per-item outcome of a queue replay.
type PendingResult struct {
	NodeID        string
	TransactionID string
	Err           error
}

// Relay owns the decision of when and how a like becomes a ledger
// action. It holds a read-only view of the tracker for path data and
// mutates it only through the same public like calls the renderer uses.
//
// Queue replay is strictly sequential and guarded against concurrent
// replays; a second SubmitPendingLikes while one is in flight returns
// ErrReplayInProgress rather than risking double submission.
type Relay struct {
	mu        sync.Mutex
	tracker   *nav.Tracker
	signer    Signer
	store     kv.Store
	log       *zap.SugaredLogger
	events    *emitter
	contract  string
	digest    Digest
	now       func() time.Time
	pending   []PendingSubmission
	replaying bool
}

// NewRelay creates a relay for the given tracker and signer, reloading
// any persisted pending submissions. A nil digest selects SHA256Digest;
// pass FallbackDigest only on runtimes without a crypto facility.
func NewRelay(tracker *nav.Tracker, signer Signer, store kv.Store, contract string, digest Digest, logger *zap.SugaredLogger) *Relay {
	if digest == nil {
		digest = SHA256Digest
	}
	r := &Relay{
		tracker:  tracker,
		signer:   signer,
		store:    store,
		log:      logger.Named("ledger.relay"),
		events:   newEmitter(logger.Named("ledger.events")),
		contract: contract,
		digest:   digest,
		now:      time.Now,
	}
	r.loadPending()
	return r
}

// On registers a callback for EventSuccess or EventError and returns a
// subscription id. Callbacks run synchronously in registration order;
// each is isolated so one faulty listener cannot break the others.
func (r *Relay) On(event Event, fn Callback) string {
	return r.events.on(event, fn)
}

// Off removes a subscription by id, reporting whether it existed.
func (r *Relay) Off(id string) bool {
	return r.events.off(id)
}

// ToggleLike flips the like state of a node. Unliking is local-only:
// ledger actions are immutable and never retracted on-chain. Liking
// records locally and attempts immediate submission.
func (r *Relay) ToggleLike(ctx context.Context, nodeID string, metadata nav.Metadata) (*LikeResult, error) {
	if r.tracker.IsLiked(nodeID) {
		return r.UnlikeNode(nodeID), nil
	}
	return r.LikeNode(ctx, nodeID, metadata, true)
}

// UnlikeNode removes the local like record for a node. The on-chain
// action, if one was submitted, stays on the ledger.
func (r *Relay) UnlikeNode(nodeID string) *LikeResult {
	removed := r.tracker.RemoveLike(nodeID)
	r.log.Debugw("Unliked node locally", "node_id", nodeID, "existed", removed)
	return &LikeResult{NodeID: nodeID, Liked: false}
}

// LikeNode records the like locally, then either submits it to the
// ledger (when submitImmediately is set and a signer is connected) or
// appends it to the durable pending queue. The local like always
// succeeds and is never rolled back; a submission failure is returned
// alongside the result so the UI can show "liked, submission failed".
func (r *Relay) LikeNode(ctx context.Context, nodeID string, metadata nav.Metadata, submitImmediately bool) (*LikeResult, error) {
	record := r.tracker.RecordLike(nodeID, metadata)
	result := &LikeResult{NodeID: nodeID, Liked: true}

	if submitImmediately && r.signer.IsConnected() {
		receipt, err := r.SubmitToLedger(ctx, nodeID, record.Path)
		if err != nil {
			return result, err
		}
		result.Submitted = true
		if receipt != nil {
			result.TransactionID = receipt.TransactionID
		}
		return result, nil
	}

	r.QueueSubmission(nodeID, record.Path)
	result.Deferred = true
	return result, nil
}

// SubmitToLedger submits a single like action for nodeID along the given
// path. Fails with ErrSignerUnavailable when no session is active, and
// performs no queue mutation in that case. Submission failures are
// surfaced both through the EventError callback and the returned error.
func (r *Relay) SubmitToLedger(ctx context.Context, nodeID string, path []string) (*Receipt, error) {
	if !r.signer.IsConnected() {
		return nil, errors.Wrapf(errors.ErrSignerUnavailable, "cannot submit like for %s", nodeID)
	}

	identity, err := r.signer.CurrentIdentity()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to resolve signing identity"), errors.ErrSignerUnavailable)
	}

	truncated := TruncateForLedger(path, nodeID)
	nodePath := make([]string, len(truncated))
	for i, id := range truncated {
		nodePath[i] = NormalizeLedgerID(id, r.digest)
	}

	action := Action{
		Account: r.contract,
		Name:    LikeActionName,
		Authorization: []Authorization{
			{Actor: identity.Actor, Permission: identity.Permission},
		},
		Data: LikeActionData{
			Account:  identity.Actor,
			NodeID:   NormalizeLedgerID(nodeID, r.digest),
			NodePath: nodePath,
		},
	}

	receipt, err := r.signer.Submit(ctx, []Action{action})
	if err != nil {
		wrapped := errors.Mark(errors.Wrapf(err, "ledger rejected like for %s", nodeID), errors.ErrLedgerRejected)
		r.log.Warnw("Ledger submission failed",
			"node_id", nodeID,
			"actor", identity.Actor,
			"error", err,
		)
		r.events.emit(EventError, ErrorPayload{NodeID: nodeID, Err: wrapped})
		return nil, wrapped
	}

	r.log.Infow("Like submitted to ledger",
		"node_id", nodeID,
		"actor", identity.Actor,
		"transaction_id", receipt.TransactionID,
		"path_length", len(nodePath),
	)
	r.events.emit(EventSuccess, SuccessPayload{NodeID: nodeID, Receipt: receipt})
	return receipt, nil
}

// QueueSubmission appends a pending submission and persists the whole
// queue replace-on-write. Persistence failures are absorbed: the
// in-memory queue stays authoritative for this session.
func (r *Relay) QueueSubmission(nodeID string, path []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, PendingSubmission{
		ID:       uuid.NewString(),
		NodeID:   nodeID,
		Path:     TruncateForLedger(path, nodeID),
		QueuedAt: r.now().UnixMilli(),
	})
	r.persistPendingLocked()

	r.log.Infow("Queued like for deferred submission",
		"node_id", nodeID,
		"pending", len(r.pending),
	)
}

// PendingCount returns the number of queued submissions.
func (r *Relay) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// PendingSubmissions returns a copy of the queue in FIFO order.
func (r *Relay) PendingSubmissions() []PendingSubmission {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]PendingSubmission, len(r.pending))
	copy(out, r.pending)
	return out
}

// SubmitPendingLikes replays the queue in FIFO order, strictly
// sequentially. Per-item failures are collected into the result list so
// one bad entry cannot block the rest. On completion the entire queue is
// cleared regardless of individual failures: the design favors bounded
// queue growth over guaranteed eventual delivery, and leaves retries to
// the caller based on the returned results.
func (r *Relay) SubmitPendingLikes(ctx context.Context) ([]PendingResult, error) {
	if !r.signer.IsConnected() {
		return nil, errors.Wrap(errors.ErrSignerUnavailable, "cannot replay pending likes")
	}

	r.mu.Lock()
	if r.replaying {
		r.mu.Unlock()
		return nil, errors.WithStack(errors.ErrReplayInProgress)
	}
	r.replaying = true
	batch := make([]PendingSubmission, len(r.pending))
	copy(batch, r.pending)
	r.mu.Unlock()

	results := make([]PendingResult, 0, len(batch))
	for _, item := range batch {
		receipt, err := r.SubmitToLedger(ctx, item.NodeID, item.Path)
		result := PendingResult{NodeID: item.NodeID, Err: err}
		if receipt != nil {
			result.TransactionID = receipt.TransactionID
		}
		results = append(results, result)
	}

	r.mu.Lock()
	r.pending = nil
	r.replaying = false
	if err := r.store.Remove(storageKeyPending); err != nil {
		r.log.Warnw("Failed to clear persisted pending queue", "error", err)
	}
	r.mu.Unlock()

	r.log.Infow("Pending replay complete",
		"attempted", len(results),
		"failed", countFailed(results),
	)
	return results, nil
}

func countFailed(results []PendingResult) int {
	n := 0
	for _, result := range results {
		if result.Err != nil {
			n++
		}
	}
	return n
}

func (r *Relay) persistPendingLocked() {
	doc := pendingDocument{Version: pendingSchemaVersion, Items: r.pending}
	payload, err := json.Marshal(doc)
	if err != nil {
		r.log.Warnw("Failed to encode pending queue for persistence", "error", err)
		return
	}
	if err := r.store.Set(storageKeyPending, string(payload)); err != nil {
		r.log.Warnw("Failed to persist pending queue",
			"error", err,
			"pending", len(r.pending),
		)
	}
}

func (r *Relay) loadPending() {
	raw, ok, err := r.store.Get(storageKeyPending)
	if err != nil {
		r.log.Warnw("Failed to load persisted pending queue", "error", err)
		return
	}
	if !ok {
		return
	}

	var doc pendingDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		r.log.Warnw("Persisted pending queue is corrupt, starting empty", "error", err)
		return
	}
	if doc.Version != pendingSchemaVersion {
		r.log.Warnw("Persisted pending queue has unexpected schema version, starting empty",
			"found", doc.Version,
			"expected", pendingSchemaVersion,
		)
		return
	}

	r.pending = doc.Items
}
