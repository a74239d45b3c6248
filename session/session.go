// Package session wires a visualization session: one tracker and one
// relay over a shared store, owned explicitly by the caller rather than
// held in package-level singletons.
package session

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/polarismusic/navigator/config"
	"github.com/polarismusic/navigator/kv"
	"github.com/polarismusic/navigator/ledger"
	"github.com/polarismusic/navigator/nav"
)

// Session bundles the per-session components. Collaborators receive
// these by reference; nothing here is process-global.
type Session struct {
	Tracker *nav.Tracker
	Relay   *ledger.Relay
	Signer  ledger.Signer
}

// New creates a session over an already-migrated database, using the
// configured wallet daemon as the signer.
func New(cfg *config.Config, database *sql.DB, logger *zap.SugaredLogger) *Session {
	signer := ledger.NewWalletSession(
		cfg.Wallet.URL,
		time.Duration(cfg.Wallet.TimeoutSeconds)*time.Second,
		logger,
	)
	return NewWithSigner(cfg, database, signer, logger)
}

// NewWithSigner creates a session with a caller-provided signer.
func NewWithSigner(cfg *config.Config, database *sql.DB, signer ledger.Signer, logger *zap.SugaredLogger) *Session {
	store := kv.NewSQLiteStore(database)
	tracker := nav.NewTracker(store, logger)
	relay := ledger.NewRelay(tracker, signer, store, cfg.Ledger.Contract, nil, logger)

	return &Session{
		Tracker: tracker,
		Relay:   relay,
		Signer:  signer,
	}
}
