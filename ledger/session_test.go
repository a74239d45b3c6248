package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newWalletServer(t *testing.T, hasSession bool, transact http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/session", func(w http.ResponseWriter, r *http.Request) {
		if !hasSession {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(sessionResponse{Actor: "alice", Permission: "active"})
	})
	if transact != nil {
		mux.HandleFunc("/v1/transact", transact)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestWalletSession(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()

	t.Run("connected when daemon reports a session", func(t *testing.T) {
		server := newWalletServer(t, true, nil)
		session := NewWalletSession(server.URL, time.Second, logger)

		assert.True(t, session.IsConnected())

		identity, err := session.CurrentIdentity()
		require.NoError(t, err)
		assert.Equal(t, Identity{Actor: "alice", Permission: "active"}, identity)
	})

	t.Run("disconnected when daemon has no session", func(t *testing.T) {
		server := newWalletServer(t, false, nil)
		session := NewWalletSession(server.URL, time.Second, logger)

		assert.False(t, session.IsConnected())
		_, err := session.CurrentIdentity()
		require.Error(t, err)
	})

	t.Run("disconnected when daemon is unreachable", func(t *testing.T) {
		session := NewWalletSession("http://127.0.0.1:1", time.Second, logger)
		assert.False(t, session.IsConnected())
	})

	t.Run("submit posts actions and decodes the receipt", func(t *testing.T) {
		var received transactRequest
		server := newWalletServer(t, true, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			json.NewEncoder(w).Encode(Receipt{TransactionID: "tx-abc", BlockNum: 42})
		})
		session := NewWalletSession(server.URL, time.Second, logger)

		actions := []Action{{
			Account:       "polaris.music",
			Name:          LikeActionName,
			Authorization: []Authorization{{Actor: "alice", Permission: "active"}},
			Data:          LikeActionData{Account: "alice", NodeID: "aa", NodePath: []string{"aa"}},
		}}
		receipt, err := session.Submit(context.Background(), actions)
		require.NoError(t, err)
		assert.Equal(t, "tx-abc", receipt.TransactionID)
		assert.Equal(t, uint32(42), receipt.BlockNum)

		require.Len(t, received.Actions, 1)
		assert.Equal(t, "polaris.music", received.Actions[0].Account)
		assert.Equal(t, LikeActionName, received.Actions[0].Name)
	})

	t.Run("submit surfaces non-200 responses", func(t *testing.T) {
		server := newWalletServer(t, true, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "expired session", http.StatusUnauthorized)
		})
		session := NewWalletSession(server.URL, time.Second, logger)

		_, err := session.Submit(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})
}
