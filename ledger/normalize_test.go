package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLedgerID(t *testing.T) {
	hexID := strings.Repeat("AB", 32)

	t.Run("ledger-shaped ids are lower-cased unchanged", func(t *testing.T) {
		assert.Equal(t, strings.ToLower(hexID), NormalizeLedgerID(hexID, SHA256Digest))
	})

	t.Run("other ids are digested", func(t *testing.T) {
		sum := sha256.Sum256([]byte("group:pink-floyd"))
		expected := hex.EncodeToString(sum[:])

		got := NormalizeLedgerID("group:pink-floyd", SHA256Digest)
		assert.Equal(t, expected, got)
		assert.Len(t, got, 64)
	})

	t.Run("63 or 65 hex chars are not ledger-shaped", func(t *testing.T) {
		for _, id := range []string{hexID[:63], hexID + "a"} {
			got := NormalizeLedgerID(id, SHA256Digest)
			assert.NotEqual(t, strings.ToLower(id), got)
			assert.Len(t, got, 64)
		}
	})

	t.Run("non-hex characters force a digest", func(t *testing.T) {
		almostHex := strings.Repeat("a", 63) + "g"
		got := NormalizeLedgerID(almostHex, SHA256Digest)
		assert.NotEqual(t, almostHex, got)
	})

	t.Run("fallback digest is deterministic and ledger-shaped", func(t *testing.T) {
		a := NormalizeLedgerID("track:money", FallbackDigest)
		b := NormalizeLedgerID("track:money", FallbackDigest)
		c := NormalizeLedgerID("track:time", FallbackDigest)

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
		assert.Len(t, a, 64)
	})
}

func TestTruncateForLedger(t *testing.T) {
	t.Run("short path ending at node is unchanged", func(t *testing.T) {
		path := []string{"root", "a", "b"}
		assert.Equal(t, path, TruncateForLedger(path, "b"))
	})

	t.Run("target appended when path does not end at it", func(t *testing.T) {
		assert.Equal(t, []string{"root", "a", "b"}, TruncateForLedger([]string{"root", "a"}, "b"))
		assert.Equal(t, []string{"b"}, TruncateForLedger(nil, "b"))
	})

	t.Run("oldest prefix dropped past the limit", func(t *testing.T) {
		path := make([]string, 0, 30)
		for i := 0; i < 30; i++ {
			path = append(path, fmt.Sprintf("n%d", i))
		}

		truncated := TruncateForLedger(path, "n29")
		require.Len(t, truncated, MaxLedgerPathLength)
		assert.Equal(t, "n10", truncated[0])
		assert.Equal(t, "n29", truncated[len(truncated)-1])
	})

	t.Run("input path is not mutated", func(t *testing.T) {
		path := []string{"root", "a"}
		_ = TruncateForLedger(path, "b")
		assert.Equal(t, []string{"root", "a"}, path)
	})
}
