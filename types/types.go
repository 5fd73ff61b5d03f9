// Package types defines the data model shared by the consensus/chainwebpow
// and core packages: chain identifiers, block headers, cuts and the
// adjacent-parent records that tie them together.
package types

import (
	"fmt"

	"github.com/LabMember-001/chainweb-node/common"
)

// ChainId identifies one chain in a chainweb graph. The set of valid ids for
// a given graph is enumerated by version.Version.Chains.
type ChainId uint32

// BlockHeight is a monotone, non-negative block index on a single chain.
type BlockHeight uint64

// Nonce is the 64-bit opaque value mutated by InnerMiner and encoded
// little-endian at bytes [0,8) of a header's without-hash serialization.
type Nonce uint64

// Time is a microsecond-resolution timestamp encoded little-endian at bytes
// [8,16) of a header's without-hash serialization.
type Time uint64

// BlockHash is the PoW digest identifying a mined header.
type BlockHash = common.Hash

// BlockHashRecord maps a chain id to the hash of the adjacent-parent header
// a block on some other chain depends on. It enumerates the dependencies
// dictated by a version's chain graph.
type BlockHashRecord map[ChainId]BlockHash

// Clone returns a shallow copy safe for a caller to mutate independently.
func (r BlockHashRecord) Clone() BlockHashRecord {
	out := make(BlockHashRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// BlockHeader is the full content of a mined block header, as understood by
// the mining core. Height, parent hash, adjacent-parents record and payload
// hash are fixed before mining begins; only Nonce and CreationTime are
// mutated by InnerMiner.
type BlockHeader struct {
	ChainId         ChainId
	Height          BlockHeight
	ParentHash      BlockHash
	AdjacentParents BlockHashRecord
	PayloadHash     BlockHash
	Nonce           Nonce
	CreationTime    Time
	Target          HashTarget
	Hash            BlockHash // self hash: the PoW hash of the without-hash encoding
}

// Clone returns a deep-enough copy for mutation during a mining attempt:
// the adjacent-parents map is copied so mutating the clone never affects
// the header it was cloned from.
func (h *BlockHeader) Clone() *BlockHeader {
	clone := *h
	clone.AdjacentParents = h.AdjacentParents.Clone()
	return &clone
}

// EqualExceptNonceAndTime reports whether h and other agree on every field except Nonce,
// CreationTime and Hash — the fields InnerMiner is permitted to mutate.
func (h *BlockHeader) EqualExceptNonceAndTime(other *BlockHeader) bool {
	if h.ChainId != other.ChainId || h.Height != other.Height {
		return false
	}
	if h.ParentHash != other.ParentHash || h.PayloadHash != other.PayloadHash {
		return false
	}
	if h.Target != other.Target {
		return false
	}
	if len(h.AdjacentParents) != len(other.AdjacentParents) {
		return false
	}
	for cid, hash := range h.AdjacentParents {
		if other.AdjacentParents[cid] != hash {
			return false
		}
	}
	return true
}

func (h *BlockHeader) String() string {
	return fmt.Sprintf("BlockHeader{chain=%d height=%d hash=%s}", h.ChainId, h.Height, h.Hash.TerminalString())
}

// Cut is a consistent slice across every chain in a version's chain graph:
// exactly one header per chain id.
type Cut map[ChainId]*BlockHeader

// Clone returns a shallow copy of the cut: the map is new, the header
// pointers are shared (headers themselves are never mutated in place once
// published).
func (c Cut) Clone() Cut {
	out := make(Cut, len(c))
	for cid, h := range c {
		out[cid] = h
	}
	return out
}

// Height returns the height of the header on chain cid, or 0 if the chain
// is absent from the cut (used only for genesis/degenerate cuts).
func (c Cut) Height(cid ChainId) BlockHeight {
	if h, ok := c[cid]; ok {
		return h.Height
	}
	return 0
}
