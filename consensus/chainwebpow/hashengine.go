// Package chainwebpow implements the proof-of-work inner loop of a
// chainweb-style multi-chain miner: the PoW digest itself, the fixed-offset
// header wire layout it mutates in place, a per-parent target cache, and
// the two nonce-stepping search loops that sit on top of both.
package chainwebpow

import (
	"crypto/sha512"
	"hash"

	"github.com/LabMember-001/chainweb-node/types"
	"github.com/LabMember-001/chainweb-node/version"
)

// HashEngine computes the PoW digest of a header's without-hash encoding
// and checks it against a target. The hot path (PowHash) performs no heap
// allocation: callers own the input buffer and the engine's internal
// hash.Hash is reset and reused across calls.
//
// The algorithm is a capability set {reset, update, finalize}; stdlib's
// hash.Hash already satisfies it, so no adapter type is needed. Versions
// under consideration all name sha512-256 (version.HashAlgoSHA512_256); an
// unrecognized algorithm is a fatal configuration error rather than a
// silent fallback (see NewHashEngine).
type HashEngine struct {
	h hash.Hash
}

// NewHashEngine builds the concrete HashEngine for algo. Only
// HashAlgoSHA512_256 is implemented; any other value is a programming error
// since version construction (see package version) only ever names that
// algorithm today, and the open design question in the source spec directs
// implementers to fail closed rather than guess.
func NewHashEngine(algo version.HashAlgorithm) *HashEngine {
	switch algo {
	case version.HashAlgoSHA512_256:
		return &HashEngine{h: sha512.New512_256()}
	default:
		panic("chainwebpow: unsupported hash algorithm " + string(algo))
	}
}

// PowHash returns the PoW digest of buf. It resets the engine's internal
// hash context, so it is safe to call repeatedly on mutated versions of the
// same buffer without allocating.
func (e *HashEngine) PowHash(buf []byte) [32]byte {
	e.h.Reset()
	e.h.Write(buf)
	var out [32]byte
	e.h.Sum(out[:0])
	return out
}

// MeetsTarget reports whether digest, interpreted as a little-endian
// unsigned 256-bit integer, is less than or equal to target. The compare
// walks from the most-significant (last) byte down so the common case —
// a digest far above target — short-circuits after a few byte comparisons,
// without ever allocating a big.Int or uint256.Int on the hot path.
func MeetsTarget(digest [32]byte, target types.HashTarget) bool {
	t := target.Bytes32()
	for i := 31; i >= 0; i-- {
		if digest[i] < t[i] {
			return true
		}
		if digest[i] > t[i] {
			return false
		}
	}
	return true // equal
}
