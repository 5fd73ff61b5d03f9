package backend

import (
	"context"
	"sync"

	"github.com/LabMember-001/chainweb-node/core"
	"github.com/LabMember-001/chainweb-node/types"
)

// HeaderDb is an in-memory per-chain header database. Its difficulty
// oracle is intentionally trivial: a fixed target configured at
// construction time, regardless of parent — enough to exercise
// TargetCache's "consult the oracle once per parent" contract without
// implementing real difficulty adjustment, which is explicitly out of
// scope for the mining core.
type HeaderDb struct {
	mu sync.Mutex

	target  types.HashTarget
	headers map[types.BlockHash]*types.BlockHeader

	// Queries counts calls to HashTarget, so tests can assert the oracle
	// was consulted exactly once per parent (spec §8 "cache reuse"
	// scenario).
	Queries int
}

// NewHeaderDb constructs a HeaderDb that always returns target from
// HashTarget.
func NewHeaderDb(target types.HashTarget) *HeaderDb {
	return &HeaderDb{target: target, headers: make(map[types.BlockHash]*types.BlockHeader)}
}

func (db *HeaderDb) HashTarget(ctx context.Context, parent *types.BlockHeader) (types.HashTarget, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.Queries++
	return db.target, nil
}

func (db *HeaderDb) Insert(ctx context.Context, header *types.BlockHeader) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.headers[header.Hash] = header
	return nil
}

// Get returns the header stored under hash, for tests and the demo CLI.
func (db *HeaderDb) Get(hash types.BlockHash) (*types.BlockHeader, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	h, ok := db.headers[hash]
	return h, ok
}

// HeaderDbSet is an in-memory HeaderDbSet keyed by chain id.
type HeaderDbSet struct {
	dbs map[types.ChainId]*HeaderDb
}

// NewHeaderDbSet constructs a HeaderDbSet from a chain-id -> HeaderDb map.
func NewHeaderDbSet(dbs map[types.ChainId]*HeaderDb) *HeaderDbSet {
	return &HeaderDbSet{dbs: dbs}
}

func (s *HeaderDbSet) ForChain(cid types.ChainId) (core.HeaderDb, bool) {
	db, ok := s.dbs[cid]
	if !ok {
		return nil, false
	}
	return db, true
}
