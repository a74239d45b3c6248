package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"hash/fnv"
	"strings"
)

// ledgerIDLength is the contract's fixed identifier length: a checksum256
// rendered as 64 lowercase hex characters.
const ledgerIDLength = 64

// Digest maps arbitrary bytes to a 32-byte identifier. The relay uses it
// to shape non-hex node ids into ledger identifiers.
type Digest func(data []byte) [32]byte

// SHA256Digest is the production digest for identifier normalization.
func SHA256Digest(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// FallbackDigest is a deterministic non-cryptographic digest for
// runtimes without a crypto facility. It is unsuitable for integrity or
// on-chain uniqueness guarantees and exists only so the UI can degrade
// gracefully instead of failing outright. Production deployments must
// use SHA256Digest.
func FallbackDigest(data []byte) [32]byte {
	var out [32]byte
	for block := 0; block < 4; block++ {
		h := fnv.New64a()
		h.Write([]byte{byte(block)})
		h.Write(data)
		sum := h.Sum64()
		for i := 0; i < 8; i++ {
			out[block*8+i] = byte(sum >> (8 * uint(i)))
		}
	}
	return out
}

// NormalizeLedgerID maps a node id to the contract's identifier shape.
// Ids that already look like a checksum256 are lower-cased and returned
// unchanged; anything else is digested.
func NormalizeLedgerID(nodeID string, digest Digest) string {
	if isLedgerID(nodeID) {
		return strings.ToLower(nodeID)
	}
	sum := digest([]byte(nodeID))
	return hex.EncodeToString(sum[:])
}

func isLedgerID(s string) bool {
	if len(s) != ledgerIDLength {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// TruncateForLedger prepares a traversal path for the like action: the
// path must end at the liked node and carry at most MaxLedgerPathLength
// entries. The oldest prefix is dropped, never the suffix, so the final
// approach to the liked node is preserved.
func TruncateForLedger(path []string, nodeID string) []string {
	out := make([]string, len(path))
	copy(out, path)

	if len(out) == 0 || out[len(out)-1] != nodeID {
		out = append(out, nodeID)
	}
	if len(out) > MaxLedgerPathLength {
		out = out[len(out)-MaxLedgerPathLength:]
	}
	return out
}
