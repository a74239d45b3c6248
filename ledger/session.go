package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/polarismusic/navigator/errors"
	"github.com/polarismusic/navigator/internal/httpclient"
)

// WalletSession is a Signer backed by a local wallet daemon's HTTP API.
// The daemon holds the user's keys; this client only asks it whether a
// session is active and hands it fully-formed actions to sign and push.
type WalletSession struct {
	client  *httpclient.Client
	baseURL string
	log     *zap.SugaredLogger
}

// NewWalletSession creates a session client against the daemon at baseURL.
func NewWalletSession(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *WalletSession {
	return &WalletSession{
		client:  httpclient.New(timeout),
		baseURL: baseURL,
		log:     logger.Named("ledger.session"),
	}
}

type sessionResponse struct {
	Actor      string `json:"actor"`
	Permission string `json:"permission"`
}

type transactRequest struct {
	Actions []Action `json:"actions"`
}

// IsConnected reports whether the daemon has an active signing session.
func (s *WalletSession) IsConnected() bool {
	_, err := s.fetchSession()
	if err != nil {
		s.log.Debugw("Wallet session unavailable", "error", err)
		return false
	}
	return true
}

// CurrentIdentity returns the active signing identity.
func (s *WalletSession) CurrentIdentity() (Identity, error) {
	session, err := s.fetchSession()
	if err != nil {
		return Identity{}, err
	}
	return Identity{Actor: session.Actor, Permission: session.Permission}, nil
}

// Submit hands the actions to the daemon for signing and submission.
func (s *WalletSession) Submit(ctx context.Context, actions []Action) (*Receipt, error) {
	body, err := json.Marshal(transactRequest{Actions: actions})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode transact request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/transact", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transact request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "wallet transact request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("wallet returned status %d for transact", resp.StatusCode)
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, errors.Wrap(err, "failed to decode transact receipt")
	}
	return &receipt, nil
}

func (s *WalletSession) fetchSession() (*sessionResponse, error) {
	resp, err := s.client.Get(s.baseURL + "/v1/session")
	if err != nil {
		return nil, errors.Wrap(err, "wallet session request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("wallet returned status %d for session", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.Wrap(err, "failed to decode wallet session")
	}
	if session.Actor == "" {
		return nil, errors.New("wallet session has no actor")
	}
	return &session, nil
}
