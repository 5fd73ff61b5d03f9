package chainwebpow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LabMember-001/chainweb-node/common"
	"github.com/LabMember-001/chainweb-node/types"
	"github.com/LabMember-001/chainweb-node/version"
)

func stubNow() NowFunc {
	return func() types.Time { return types.Time(1_700_000_000_000_000) }
}

func easyCandidate() *types.BlockHeader {
	return &types.BlockHeader{
		ChainId:         0,
		Height:          1,
		ParentHash:      common.HexToHash("0x01"),
		AdjacentParents: types.BlockHashRecord{},
		PayloadHash:     common.HexToHash("0x02"),
		Nonce:           0,
		CreationTime:    0,
		Target:          types.MaxTarget(),
	}
}

func TestMineTargetCorrectness(t *testing.T) {
	h := easyCandidate()
	mined, err := Mine(context.Background(), h, 0, stubNow())
	require.NoError(t, err)

	digest := mined.Hash
	require.True(t, MeetsTarget(digest, h.Target))
	require.True(t, h.EqualExceptNonceAndTime(mined))
}

func TestMineFastTargetCorrectness(t *testing.T) {
	h := easyCandidate()
	mined, err := MineFast(context.Background(), h, 0, version.HashAlgoSHA512_256, stubNow())
	require.NoError(t, err)

	require.True(t, MeetsTarget(mined.Hash, h.Target))
	require.True(t, h.EqualExceptNonceAndTime(mined))
}

func TestMinePortableFastEquivalence(t *testing.T) {
	h := easyCandidate()
	now := stubNow()

	portable, err := Mine(context.Background(), h, 42, now)
	require.NoError(t, err)

	fast, err := MineFast(context.Background(), h, 42, version.HashAlgoSHA512_256, now)
	require.NoError(t, err)

	require.Equal(t, portable.Nonce, fast.Nonce)
	require.Equal(t, portable.CreationTime, fast.CreationTime)
	require.True(t, MeetsTarget(portable.Hash, h.Target))
	require.True(t, MeetsTarget(fast.Hash, h.Target))
}

func TestMineFastFallsBackToPortableForUnknownAlgorithm(t *testing.T) {
	h := easyCandidate()
	mined, err := MineFast(context.Background(), h, 0, version.HashAlgorithm("unknown"), stubNow())
	require.NoError(t, err)
	require.True(t, MeetsTarget(mined.Hash, h.Target))
}

func TestMineRespectsCancellationAtCheckpoint(t *testing.T) {
	h := easyCandidate()
	h.Target = types.TargetFromUint64(1) // astronomically unlikely to be met

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Mine(ctx, h, 0, stubNow())
	require.ErrorIs(t, err, context.Canceled)
}

func TestMineZeroTargetPanics(t *testing.T) {
	h := easyCandidate()
	h.Target = types.TargetFromUint64(0)
	require.Panics(t, func() {
		_, _ = Mine(context.Background(), h, 0, stubNow())
	})
}
