package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelChecks(t *testing.T) {
	t.Run("detects wrapped signer unavailable", func(t *testing.T) {
		err := Wrap(ErrSignerUnavailable, "submitting like for node abc")
		assert.True(t, IsSignerUnavailable(err))
		assert.False(t, IsLedgerRejected(err))
	})

	t.Run("detects wrapped ledger rejection", func(t *testing.T) {
		err := Wrapf(ErrLedgerRejected, "transact failed after %d actions", 1)
		assert.True(t, IsLedgerRejected(err))
		assert.False(t, IsSignerUnavailable(err))
	})

	t.Run("nil is never a sentinel", func(t *testing.T) {
		assert.False(t, IsSignerUnavailable(nil))
		assert.False(t, IsLedgerRejected(nil))
		assert.False(t, IsNotFoundError(nil))
	})

	t.Run("not found helper preserves sentinel", func(t *testing.T) {
		err := NewNotFoundError("like record for node %q", "band:pink-floyd")
		assert.True(t, IsNotFoundError(err))
		assert.Contains(t, err.Error(), "band:pink-floyd")
	})

	t.Run("replay guard sentinel survives detail annotations", func(t *testing.T) {
		err := WithDetail(Wrap(ErrReplayInProgress, "submit pending likes"), "queue length: 3")
		assert.True(t, Is(err, ErrReplayInProgress))
	})
}
