package chainwebpow

import (
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LabMember-001/chainweb-node/types"
	"github.com/LabMember-001/chainweb-node/version"
)

func TestNewHashEngineUnsupportedAlgorithmPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewHashEngine(version.HashAlgorithm("blake3"))
	})
}

func TestHashEnginePowHashMatchesStdlib(t *testing.T) {
	e := NewHashEngine(version.HashAlgoSHA512_256)
	buf := []byte("chainweb header without hash")

	got := e.PowHash(buf)
	want := sha512.Sum512_256(buf)
	assert.Equal(t, want, got)

	// Reused across calls without cross-contamination.
	got2 := e.PowHash([]byte("a different buffer"))
	want2 := sha512.Sum512_256([]byte("a different buffer"))
	assert.Equal(t, want2, got2)
}

func TestMeetsTargetLittleEndianCompare(t *testing.T) {
	max := types.MaxTarget()
	var anyDigest [32]byte
	anyDigest[31] = 0xFF
	require.True(t, MeetsTarget(anyDigest, max))

	zero := types.TargetFromUint64(0)
	var nonzero [32]byte
	nonzero[0] = 1
	assert.False(t, MeetsTarget(nonzero, zero))

	var zeroDigest [32]byte
	assert.True(t, MeetsTarget(zeroDigest, zero), "zero digest always meets the zero target (equality)")

	// Little-endian: a digest with only its lowest byte set is small
	// regardless of what a big-endian reading would suggest.
	small := types.TargetFromUint64(10)
	var lowByte [32]byte
	lowByte[0] = 5
	assert.True(t, MeetsTarget(lowByte, small))
	lowByte[0] = 20
	assert.False(t, MeetsTarget(lowByte, small))
}
