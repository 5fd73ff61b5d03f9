package core_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LabMember-001/chainweb-node/backend"
	"github.com/LabMember-001/chainweb-node/consensus/chainwebpow"
	"github.com/LabMember-001/chainweb-node/core"
	"github.com/LabMember-001/chainweb-node/types"
	"github.com/LabMember-001/chainweb-node/version"
)

// blockingExecutor lets a test pause CutExtender mid-attempt, exactly at
// the point a real Executor.NewBlock call would suspend (spec §5), so
// cancellation/preemption can be exercised deterministically instead of
// racing wall-clock sleeps against mining speed.
type blockingExecutor struct {
	inner   *backend.Executor
	started chan struct{}
	once    sync.Once
}

func newBlockingExecutor() *blockingExecutor {
	return &blockingExecutor{inner: backend.NewExecutor(), started: make(chan struct{})}
}

func (e *blockingExecutor) NewBlock(ctx context.Context, info core.MinerInfo, parent *types.BlockHeader) (*core.PayloadWithOutputs, error) {
	e.once.Do(func() { close(e.started) })
	<-ctx.Done()
	return nil, ctx.Err()
}

func (e *blockingExecutor) ValidateBlock(ctx context.Context, header *types.BlockHeader, payload *core.PayloadWithOutputs) error {
	return e.inner.ValidateBlock(ctx, header, payload)
}

func TestCutExtenderPreemptionDiscardsWork(t *testing.T) {
	v := version.New("preempt-test", []types.ChainId{0}, nil, 10, types.MaxTarget())
	genesis := types.Cut{0: genesisHeader(0)}

	target := types.MaxTarget()
	db := backend.NewHeaderDb(target)
	dbSet := backend.NewHeaderDbSet(map[types.ChainId]*backend.HeaderDb{0: db})
	payloads := backend.NewPayloadStore()
	executor := newBlockingExecutor()

	extender, err := core.NewCutExtender(v, dbSet, executor, payloads, chainwebpow.NewTargetCache())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	type outcome struct {
		err error
	}
	resultCh := make(chan outcome, 1)
	go func() {
		_, _, err := extender.Extend(ctx, genesis, 0, stubNow())
		resultCh <- outcome{err: err}
	}()

	<-executor.started // the attempt has suspended inside NewBlock, exactly as spec §5 describes
	cancel()            // simulate await_newer winning the race

	res := <-resultCh
	require.ErrorIs(t, res.err, context.Canceled)

	// No write occurred on either side: the target oracle was never
	// consulted (it is looked up only after NewBlock returns) and no
	// payload was stored.
	require.Equal(t, 0, db.Queries)
	require.Equal(t, 0, payloads.Len())
}

func TestMinerLoopNonPoWVersionFailsClosed(t *testing.T) {
	v := version.NewNonPoW("non-pow-test", []types.ChainId{0})
	genesis := types.Cut{0: genesisHeader(0)}

	cutStore := backend.NewCutStore(genesis)
	dbSet := backend.NewHeaderDbSet(map[types.ChainId]*backend.HeaderDb{0: backend.NewHeaderDb(types.MaxTarget())})
	extender, err := core.NewCutExtender(v, dbSet, backend.NewExecutor(), backend.NewPayloadStore(), chainwebpow.NewTargetCache())
	require.NoError(t, err)

	loop := core.NewMinerLoop(v, cutStore, extender, core.MinerConfig{})
	err = loop.Run(context.Background())
	require.ErrorIs(t, err, core.ErrNonPow)
}

func TestMinerLoopRunPublishesMinedBlock(t *testing.T) {
	v := version.New("miner-loop-test", []types.ChainId{0}, nil, 10, types.MaxTarget())
	genesis := types.Cut{0: genesisHeader(0)}

	extender, cutStore, _ := newTestEnv(v, genesis, types.MaxTarget())
	loop := core.NewMinerLoop(v, cutStore, extender, core.MinerConfig{})

	mined := make(chan core.NewMinedBlock, 1)
	loop.OnMinedBlock = func(ev core.NewMinedBlock) { mined <- ev }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	select {
	case ev := <-mined:
		require.Equal(t, types.BlockHeight(1), ev.Header.Height)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for MinerLoop to mine a block")
	}

	require.Equal(t, types.BlockHeight(1), cutStore.Current()[0].Height)
}
