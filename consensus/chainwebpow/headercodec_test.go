package chainwebpow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LabMember-001/chainweb-node/common"
	"github.com/LabMember-001/chainweb-node/types"
)

func sampleHeader() *types.BlockHeader {
	return &types.BlockHeader{
		ChainId:    3,
		Height:     42,
		ParentHash: common.HexToHash("0xaa"),
		AdjacentParents: types.BlockHashRecord{
			1: common.HexToHash("0xbb"),
			7: common.HexToHash("0xcc"),
		},
		PayloadHash:  common.HexToHash("0xdd"),
		Nonce:        99,
		CreationTime: 1234,
		Target:       types.TargetFromUint64(0xFFFFFFFF),
	}
}

func TestEncodeDecodeWithoutHashRoundTrip(t *testing.T) {
	h := sampleHeader()
	buf := EncodeWithoutHash(h)

	decoded, err := DecodeWithoutHash(buf)
	require.NoError(t, err)

	require.Equal(t, h.ChainId, decoded.ChainId)
	require.Equal(t, h.Height, decoded.Height)
	require.Equal(t, h.ParentHash, decoded.ParentHash)
	require.Equal(t, h.AdjacentParents, decoded.AdjacentParents)
	require.Equal(t, h.PayloadHash, decoded.PayloadHash)
	require.Equal(t, h.Nonce, decoded.Nonce)
	require.Equal(t, h.CreationTime, decoded.CreationTime)
	require.Equal(t, h.Target, decoded.Target)
}

func TestMutatingNonceAndTimeSlotsOnly(t *testing.T) {
	h := sampleHeader()
	buf := EncodeWithoutHash(h)

	WriteNonce(buf, types.Nonce(777))
	WriteTime(buf, types.Time(555))

	decoded, err := DecodeWithoutHash(buf)
	require.NoError(t, err)

	require.True(t, h.EqualExceptNonceAndTime(decoded))
	require.Equal(t, types.Nonce(777), decoded.Nonce)
	require.Equal(t, types.Time(555), decoded.CreationTime)
}

func TestDecodeWithoutHashShortBuffer(t *testing.T) {
	_, err := DecodeWithoutHash([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrShortBuffer)
}

func TestEncodeWithoutHashNoAdjacentParents(t *testing.T) {
	h := sampleHeader()
	h.AdjacentParents = types.BlockHashRecord{}
	buf := EncodeWithoutHash(h)
	decoded, err := DecodeWithoutHash(buf)
	require.NoError(t, err)
	require.Empty(t, decoded.AdjacentParents)
}
