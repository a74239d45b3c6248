package nav

import (
	"encoding/json"
)

// Storage namespace keys. Stable names, part of the persisted contract.
const (
	storageKeyLikes   = "likes"
	storageKeyHistory = "browseHistory"
)

// Persisted document schema versions. Loaders reset to empty state on
// any mismatch rather than attempting partial migration.
const (
	likesSchemaVersion   = 1
	historySchemaVersion = 1
)

type likesDocument struct {
	Version int          `json:"version"`
	Records []LikeRecord `json:"records"`
}

type historyDocument struct {
	Version int           `json:"version"`
	Entries []BrowseEntry `json:"entries"`
}

// persistLikes writes the like set. Failures are logged and swallowed:
// in-memory state stays authoritative even when it cannot be saved.
func (t *Tracker) persistLikes() {
	doc := likesDocument{Version: likesSchemaVersion}
	for _, id := range t.likeOrder {
		doc.Records = append(doc.Records, *t.likes[id])
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		t.log.Warnw("Failed to encode likes for persistence", "error", err)
		return
	}
	if err := t.store.Set(storageKeyLikes, string(payload)); err != nil {
		t.log.Warnw("Failed to persist likes",
			"error", err,
			"likes", len(doc.Records),
		)
	}
}

func (t *Tracker) persistHistory() {
	doc := historyDocument{Version: historySchemaVersion, Entries: t.history}

	payload, err := json.Marshal(doc)
	if err != nil {
		t.log.Warnw("Failed to encode browse history for persistence", "error", err)
		return
	}
	if err := t.store.Set(storageKeyHistory, string(payload)); err != nil {
		t.log.Warnw("Failed to persist browse history",
			"error", err,
			"entries", len(doc.Entries),
		)
	}
}

func (t *Tracker) loadLikes() {
	raw, ok, err := t.store.Get(storageKeyLikes)
	if err != nil {
		t.log.Warnw("Failed to load persisted likes", "error", err)
		return
	}
	if !ok {
		return
	}

	var doc likesDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.log.Warnw("Persisted likes are corrupt, starting empty", "error", err)
		return
	}
	if doc.Version != likesSchemaVersion {
		t.log.Warnw("Persisted likes have unexpected schema version, starting empty",
			"found", doc.Version,
			"expected", likesSchemaVersion,
		)
		return
	}

	for i := range doc.Records {
		record := doc.Records[i]
		if record.NodeID == "" {
			continue
		}
		if _, exists := t.likes[record.NodeID]; !exists {
			t.likeOrder = append(t.likeOrder, record.NodeID)
		}
		t.likes[record.NodeID] = &record
	}
}

func (t *Tracker) loadHistory() {
	raw, ok, err := t.store.Get(storageKeyHistory)
	if err != nil {
		t.log.Warnw("Failed to load persisted browse history", "error", err)
		return
	}
	if !ok {
		return
	}

	var doc historyDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.log.Warnw("Persisted browse history is corrupt, starting empty", "error", err)
		return
	}
	if doc.Version != historySchemaVersion {
		t.log.Warnw("Persisted browse history has unexpected schema version, starting empty",
			"found", doc.Version,
			"expected", historySchemaVersion,
		)
		return
	}

	t.history = doc.Entries
	if len(t.history) > MaxHistoryLength {
		t.history = t.history[:MaxHistoryLength]
	}
}
