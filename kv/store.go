// Package kv provides the durable key-value store backing path-tracker
// and relay persistence. Values are whole JSON documents written
// replace-on-write under a small set of namespace keys.
//
// The store is scoped per database file; it offers no cross-process
// locking, so concurrent writers against the same file may clobber each
// other's state. Callers treat every value as disposable: a corrupt or
// missing value is loaded as empty state, never a fatal error.
package kv

import (
	"database/sql"
	"time"

	"github.com/polarismusic/navigator/errors"
)

// Store is the durable key-value contract consumed by the tracker and relay.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// SQLiteStore persists values in the kv_store table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store over an already-migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the stored value for key.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read key %q", key)
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value.
func (s *SQLiteStore) Set(key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, key, value, time.Now().UTC()); err != nil {
		return errors.Wrapf(err, "failed to write key %q", key)
	}
	return nil
}

// Remove deletes key from the store.
func (s *SQLiteStore) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return errors.Wrapf(err, "failed to remove key %q", key)
	}
	return nil
}
