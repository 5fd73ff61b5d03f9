package types

import (
	"github.com/holiman/uint256"
)

// HashTarget is a 256-bit unsigned integer. A digest h meets target t iff
// h, interpreted as a little-endian unsigned integer, is <= t.
type HashTarget struct {
	inner uint256.Int
}

// MaxTarget is the loosest possible target (2^256 - 1): every digest meets it.
func MaxTarget() HashTarget {
	var t HashTarget
	t.inner = *uint256.NewInt(0)
	t.inner.Not(&t.inner) // 0 - 1 wraps to all-ones
	return t
}

// TargetFromUint64 builds a target from a plain uint64 magnitude, mostly
// useful for small test-version targets.
func TargetFromUint64(v uint64) HashTarget {
	var t HashTarget
	t.inner = *uint256.NewInt(v)
	return t
}

// TargetFromBigEndian interprets b as a big-endian magnitude, as produced by
// a difficulty oracle (HeaderDb.HashTarget).
func TargetFromBigEndian(b []byte) HashTarget {
	var t HashTarget
	t.inner.SetBytes(b)
	return t
}

// TargetFromLittleEndian interprets b (expected len 32) as a little-endian
// magnitude, the wire form HeaderCodec stores targets in.
func TargetFromLittleEndian(b []byte) HashTarget {
	be := make([]byte, len(b))
	for i, x := range b {
		be[len(b)-1-i] = x
	}
	var t HashTarget
	t.inner.SetBytes(be)
	return t
}

// Bytes32 returns the target's little-endian byte representation, matching
// the digest encoding MeetsTarget compares against.
func (t HashTarget) Bytes32() [32]byte {
	be := t.inner.Bytes32()
	var le [32]byte
	for i := range be {
		le[i] = be[31-i]
	}
	return le
}

func (t HashTarget) IsZero() bool { return t.inner.IsZero() }

func (t HashTarget) String() string { return t.inner.Hex() }

// Uint256 exposes the underlying big integer for arithmetic (difficulty
// adjustment math lives on the out-of-scope difficulty oracle; this
// accessor exists for tests and for the in-memory reference backend).
func (t HashTarget) Uint256() uint256.Int { return t.inner }
