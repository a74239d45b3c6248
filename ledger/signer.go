// Package ledger relays liked-node events to the on-chain music
// registry: it normalizes identifiers to the contract's shape, truncates
// paths to the contract's structural limit, submits through an external
// signer session when one is available, and defers submissions to a
// durable queue when one is not.
package ledger

import "context"

// Contract structural limits and action names, matching the registry
// contract's like action: like(account, node_id, node_path) with
// node_path capped at 20 entries ending at the liked node.
const (
	LikeActionName      = "like"
	MaxLedgerPathLength = 20

	// EventTypeLike is the registry's event-type code for likes.
	EventTypeLike = 41
)

// Identity is the signing account behind an active wallet session.
type Identity struct {
	Actor      string `json:"actor"`
	Permission string `json:"permission"`
}

// Authorization is one authorization entry on an action.
type Authorization struct {
	Actor      string `json:"actor"`
	Permission string `json:"permission"`
}

// Action is a single contract action ready for signing and submission.
type Action struct {
	Account       string          `json:"account"`
	Name          string          `json:"name"`
	Authorization []Authorization `json:"authorization"`
	Data          interface{}     `json:"data"`
}

// LikeActionData is the payload of the registry's like action.
type LikeActionData struct {
	Account  string   `json:"account"`
	NodeID   string   `json:"node_id"`
	NodePath []string `json:"node_path"`
}

// Receipt is the signer's response to a successful submission.
type Receipt struct {
	TransactionID string `json:"transaction_id"`
	BlockNum      uint32 `json:"block_num,omitempty"`
}

// Signer is the wallet/session collaborator that holds the user's
// identity and authorizes ledger actions. Submit is the only suspension
// point in the subsystem; timeouts are the signer's responsibility.
type Signer interface {
	// IsConnected reports whether an identity is available for signing.
	IsConnected() bool

	// CurrentIdentity returns the active signing identity.
	CurrentIdentity() (Identity, error)

	// Submit signs and submits the actions, returning the chain receipt.
	Submit(ctx context.Context, actions []Action) (*Receipt, error)
}
