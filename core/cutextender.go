package core

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	mrand "math/rand"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/LabMember-001/chainweb-node/consensus/chainwebpow"
	"github.com/LabMember-001/chainweb-node/types"
	"github.com/LabMember-001/chainweb-node/version"
)

// CutExtender implements the core mining-attempt algorithm: sample a
// chain, resolve its adjacent parents against the current cut, acquire a
// payload and a target, mine a header that satisfies that target, and
// splice it into the cut (spec §4.4).
//
// A CutExtender is owned by exactly one MinerLoop; its PRNG is not safe
// for concurrent use from more than one goroutine at a time (spec §5,
// "owned exclusively by MinerLoop").
type CutExtender struct {
	version      *version.Version
	headerDbSet  HeaderDbSet
	executor     Executor
	payloadStore PayloadStore
	targetCache  *chainwebpow.TargetCache

	rng   *mrand.Rand
	chain []types.ChainId // stable iteration order over version.Chains()
}

// NewCutExtender constructs a CutExtender for v, seeding its chain-selection
// PRNG once from a secure system source (spec §9, "random chain selection
// uses a per-miner PRNG seeded once from a secure system source").
func NewCutExtender(v *version.Version, headerDbSet HeaderDbSet, executor Executor, payloadStore PayloadStore, targetCache *chainwebpow.TargetCache) (*CutExtender, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, errors.Wrap(err, "core: seeding chain-selection PRNG")
	}

	chains := make([]types.ChainId, 0, v.Chains().Cardinality())
	for c := range v.Chains().Iter() {
		chains = append(chains, c.(types.ChainId))
	}

	return &CutExtender{
		version:      v,
		headerDbSet:  headerDbSet,
		executor:     executor,
		payloadStore: payloadStore,
		targetCache:  targetCache,
		rng:          mrand.New(mrand.NewSource(seed.Int64())),
		chain:        chains,
	}, nil
}

func (e *CutExtender) sampleChain() types.ChainId {
	return e.chain[e.rng.Intn(len(e.chain))]
}

// Extend runs CutExtender's algorithm to completion: it loops past blocked
// adjacent-parent configurations (spec §4.4 step 2, §7.1) until either a
// new block is mined and spliced, or ctx is cancelled (preemption, spec
// §5). On cancellation no payload or header write has occurred.
func (e *CutExtender) Extend(ctx context.Context, c types.Cut, nonce0 types.Nonce, now chainwebpow.NowFunc) (*types.BlockHeader, types.Cut, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		cid := e.sampleChain()
		parent, ok := c[cid]
		if !ok {
			return nil, nil, errors.Errorf("core: cut missing chain %d", cid)
		}

		resolved, err := e.resolveAdjacentParents(c, cid, parent)
		if err != nil {
			if errors.Is(err, ErrBlockedChain) {
				// Not an error: yield cooperatively and resample (spec §9
				// open question: avoid busy-looping and starving
				// await_newer on a universally blocked cut).
				runtime.Gosched()
				continue
			}
			return nil, nil, err
		}

		payload, err := e.executor.NewBlock(ctx, MinerInfo{}, parent)
		if err != nil {
			return nil, nil, errors.Wrap(err, "core: Executor.NewBlock")
		}

		target, err := e.lookupOrComputeTarget(ctx, cid, parent)
		if err != nil {
			return nil, nil, errors.Wrap(err, "core: resolving target")
		}

		candidate := &types.BlockHeader{
			ChainId:         cid,
			Height:          parent.Height + 1,
			ParentHash:      parent.Hash,
			AdjacentParents: resolved,
			PayloadHash:     payload.Hash,
			Nonce:           0,
			CreationTime:    types.Time(time.Now().UnixMicro()),
			Target:          target,
		}

		mined, err := chainwebpow.MineFast(ctx, candidate, nonce0, e.version.HashAlgo, now)
		if err != nil {
			return nil, nil, err // includes context.Canceled on preemption
		}

		next, err := MonotonicExtension(c, mined)
		if err != nil {
			return nil, nil, err // fatal: programming-invariant violation
		}

		if err := e.executor.ValidateBlock(ctx, mined, payload); err != nil {
			return nil, nil, errors.Wrap(err, "core: Executor.ValidateBlock")
		}
		if err := e.payloadStore.AddNewPayload(ctx, payload); err != nil {
			return nil, nil, errors.Wrap(err, "core: PayloadStore.AddNewPayload")
		}
		db, ok := e.headerDbSet.ForChain(cid)
		if !ok {
			return nil, nil, errors.Errorf("core: no header db for chain %d", cid)
		}
		if err := db.Insert(ctx, mined); err != nil {
			return nil, nil, errors.Wrap(err, "core: HeaderDb.Insert")
		}

		return mined, next, nil
	}
}

// resolveAdjacentParents implements spec §4.4 step 2: for each chain the
// version's graph makes cid adjacent to, adopt the matching
// header in c at the same height, or its recorded parent hash if it is
// exactly one height ahead; any other configuration is a blocked chain.
func (e *CutExtender) resolveAdjacentParents(c types.Cut, cid types.ChainId, parent *types.BlockHeader) (types.BlockHashRecord, error) {
	resolved := make(types.BlockHashRecord, e.version.AdjacentChains(cid).Cardinality())
	for xc := range e.version.AdjacentChains(cid).Iter() {
		xcid := xc.(types.ChainId)
		b, ok := c[xcid]
		if !ok {
			return nil, errors.Wrapf(ErrBlockedChain, "chain %d has no header for adjacent chain %d", cid, xcid)
		}
		switch {
		case b.Height == parent.Height:
			resolved[xcid] = b.Hash
		case b.Height == parent.Height+1:
			resolved[xcid] = b.ParentHash
		default:
			return nil, errors.Wrapf(ErrBlockedChain, "chain %d blocked on adjacent chain %d at height %d (parent at %d)", cid, xcid, b.Height, parent.Height)
		}
	}
	return resolved, nil
}

// lookupOrComputeTarget implements TargetCache's lookup algorithm (spec
// §4.3): a cache hit returns unchanged; a miss for a chain without a
// header db (degenerate test versions) returns the parent's own target
// unchanged; otherwise the difficulty oracle is consulted and the result
// cached.
func (e *CutExtender) lookupOrComputeTarget(ctx context.Context, cid types.ChainId, parent *types.BlockHeader) (types.HashTarget, error) {
	if t, ok := e.targetCache.Lookup(parent.Hash); ok {
		return t, nil
	}
	db, ok := e.headerDbSet.ForChain(cid)
	if !ok {
		return parent.Target, nil
	}
	t, err := db.HashTarget(ctx, parent)
	if err != nil {
		return types.HashTarget{}, err
	}
	e.targetCache.Insert(parent.Hash, parent.Height, t)
	return t, nil
}

// TargetCacheLen reports the number of entries currently cached, for tests
// and monitoring.
func (e *CutExtender) TargetCacheLen() int {
	return e.targetCache.Len()
}

// PruneTargetCache prunes entries older than tipHeight - window, called by
// MinerLoop after every successful publish (spec §4.6, §5 "target-cache
// pruning follows publish").
func (e *CutExtender) PruneTargetCache(tipHeight types.BlockHeight) {
	if e.version.Window == nil {
		return
	}
	e.targetCache.Prune(tipHeight, *e.version.Window)
}
