package core

import (
	"context"

	"github.com/LabMember-001/chainweb-node/types"
)

// PayloadWithOutputs is the opaque result of Executor.NewBlock: a payload
// and whatever execution outputs the executor attaches to it. The mining
// core never inspects its fields, only its Hash.
type PayloadWithOutputs struct {
	Hash types.BlockHash
	Data interface{}
}

// MinerInfo is the opaque miner identity carried in MinerConfig.
type MinerInfo struct {
	Identity string
}

// MinerConfig enumerates the options consumed by a MinerLoop.
type MinerConfig struct {
	// MinerInfo is stored on the MinerLoop. It does not reach
	// Executor.NewBlock: CutExtender.Extend passes an empty MinerInfo.
	MinerInfo MinerInfo

	// RecommitInterval is retained from the ambient miner-config naming
	// convention (go-quai's Miner.SetRecommitInterval) but is not wired to
	// a ticker: this miner's cadence is cut-driven, not time-sliced (see
	// DESIGN.md).
	RecommitInterval int
}

// CutStore is the out-of-scope collaborator maintaining the canonical
// current cut and publishing updates to subscribers (spec §6).
type CutStore interface {
	// Current returns the present cut.
	Current() types.Cut
	// AwaitNewer blocks until a cut strictly newer than prev exists, then
	// returns it. It must be cancellable via ctx so MinerLoop can abandon
	// the wait when it itself is being shut down.
	AwaitNewer(ctx context.Context, prev types.Cut) (types.Cut, error)
	// Publish records c as the new current cut, notifying any waiters.
	Publish(c types.Cut) error
}

// Executor is the out-of-scope execution service building and validating
// block payloads (spec §6).
type Executor interface {
	NewBlock(ctx context.Context, info MinerInfo, parent *types.BlockHeader) (*PayloadWithOutputs, error)
	ValidateBlock(ctx context.Context, header *types.BlockHeader, payload *PayloadWithOutputs) error
}

// HeaderDb is the per-chain block-header database and difficulty oracle
// (spec §6).
type HeaderDb interface {
	// HashTarget computes the difficulty target that a child of parent
	// must meet, consulting whatever epoch/difficulty-adjustment history
	// the database holds.
	HashTarget(ctx context.Context, parent *types.BlockHeader) (types.HashTarget, error)
	Insert(ctx context.Context, header *types.BlockHeader) error
}

// HeaderDbSet resolves a HeaderDb by chain id (spec §6).
type HeaderDbSet interface {
	ForChain(cid types.ChainId) (HeaderDb, bool)
}

// PayloadStore is the content-addressed payload store (spec §6).
type PayloadStore interface {
	AddNewPayload(ctx context.Context, p *PayloadWithOutputs) error
}
