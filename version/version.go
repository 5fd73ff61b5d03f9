// Package version describes a chainweb version: the fixed chain-id set, the
// adjacency graph between chains, the PoW algorithm and the epoch window
// width miners use to prune their target cache.
package version

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/LabMember-001/chainweb-node/types"
)

// HashAlgorithm names the PoW digest algorithm a version mines under. Only
// one concrete engine exists at present (see consensus/chainwebpow), but the
// version-to-algorithm mapping is kept as an explicit indirection per the
// capability-set design: a future version could name a different algorithm
// without touching InnerMiner's call sites.
type HashAlgorithm string

const (
	// HashAlgoSHA512_256 is the only algorithm implemented; every version
	// constructed by this package selects it.
	HashAlgoSHA512_256 HashAlgorithm = "sha512-256"
)

// Version is the immutable set of parameters that determine a chainweb
// graph's shape and mining rules.
type Version struct {
	Name string

	// chains is the fixed finite set of chain ids belonging to this
	// version's graph.
	chains mapset.Set

	// adjacency maps a chain id to the set of chain ids whose headers it
	// references as adjacent parents.
	adjacency map[types.ChainId]mapset.Set

	// Window is the epoch width W used for difficulty averaging and target
	// cache pruning. Nil means "not a PoW version" — running a miner
	// against such a version is a fatal misconfiguration (spec §6, §8
	// scenario 6).
	Window *int

	// HashAlgo is the PoW digest algorithm consumed by chainwebpow.MineFast.
	HashAlgo HashAlgorithm

	// MaxTarget is the loosest target a test version's genesis headers use.
	MaxTarget types.HashTarget
}

// Chains returns the finite chain-id set for this version.
func (v *Version) Chains() mapset.Set {
	return v.chains
}

// AdjacentChains returns the set of chain ids whose headers chain cid
// references as adjacent parents.
func (v *Version) AdjacentChains(cid types.ChainId) mapset.Set {
	if s, ok := v.adjacency[cid]; ok {
		return s
	}
	return mapset.NewSet()
}

// IsPoW reports whether this version mines at all.
func (v *Version) IsPoW() bool {
	return v.Window != nil
}

// New constructs a PoW version from an explicit chain set and adjacency
// map. adjacency need not be symmetric in general, though every concrete
// chainweb graph used in practice is.
func New(name string, chainIds []types.ChainId, adjacency map[types.ChainId][]types.ChainId, window int, maxTarget types.HashTarget) *Version {
	chains := mapset.NewSet()
	for _, cid := range chainIds {
		chains.Add(cid)
	}
	adj := make(map[types.ChainId]mapset.Set, len(adjacency))
	for cid, neighbors := range adjacency {
		s := mapset.NewSet()
		for _, n := range neighbors {
			s.Add(n)
		}
		adj[cid] = s
	}
	w := window
	return &Version{
		Name:      name,
		chains:    chains,
		adjacency: adj,
		Window:    &w,
		HashAlgo:  HashAlgoSHA512_256,
		MaxTarget: maxTarget,
	}
}

// NewNonPoW constructs a version with Window == nil: a MinerLoop built for
// it fails fatally with core.ErrNonPow when Run is called (spec §6
// "window(v): None triggers a fatal error").
func NewNonPoW(name string, chainIds []types.ChainId) *Version {
	chains := mapset.NewSet()
	for _, cid := range chainIds {
		chains.Add(cid)
	}
	return &Version{
		Name:   name,
		chains: chains,
	}
}
