package core_test

import (
	"github.com/LabMember-001/chainweb-node/backend"
	"github.com/LabMember-001/chainweb-node/common"
	"github.com/LabMember-001/chainweb-node/consensus/chainwebpow"
	"github.com/LabMember-001/chainweb-node/core"
	"github.com/LabMember-001/chainweb-node/types"
	"github.com/LabMember-001/chainweb-node/version"
)

func stubNow() chainwebpow.NowFunc {
	return func() types.Time { return types.Time(1_700_000_000_000_000) }
}

func genesisHeader(cid types.ChainId) *types.BlockHeader {
	return &types.BlockHeader{
		ChainId:         cid,
		Height:          0,
		ParentHash:      common.Hash{},
		AdjacentParents: types.BlockHashRecord{},
		PayloadHash:     common.Hash{},
		Target:          types.MaxTarget(),
		Hash:            common.BytesToHash([]byte{byte(cid), 'g', 'e', 'n'}),
	}
}

// newTestEnv wires a CutExtender against the in-memory backend for a given
// version and genesis cut, with every chain's difficulty oracle returning
// target.
func newTestEnv(v *version.Version, genesis types.Cut, target types.HashTarget) (*core.CutExtender, *backend.CutStore, map[types.ChainId]*backend.HeaderDb) {
	dbs := make(map[types.ChainId]*backend.HeaderDb)
	for cidIface := range v.Chains().Iter() {
		cid := cidIface.(types.ChainId)
		dbs[cid] = backend.NewHeaderDb(target)
	}
	dbSet := backend.NewHeaderDbSet(dbs)
	executor := backend.NewExecutor()
	payloads := backend.NewPayloadStore()
	cutStore := backend.NewCutStore(genesis)

	extender, err := core.NewCutExtender(v, dbSet, executor, payloads, chainwebpow.NewTargetCache())
	if err != nil {
		panic(err)
	}
	return extender, cutStore, dbs
}
