package chainwebpow

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/LabMember-001/chainweb-node/types"
)

// targetCacheSize bounds the underlying LRU so pruning is a backstop, not
// the primary bound: the cache is expected to stay near |Chains|*W through
// Prune, this is just a hard ceiling against runaway growth between prunes.
const targetCacheSize = 4096

// targetEntry is the value stored per parent hash, grounded on
// common/timedcache's timedEntry shape minus its TTL: expiry here is
// driven by block height, not wall-clock time.
type targetEntry struct {
	height types.BlockHeight
	target types.HashTarget
}

// TargetCache memoizes the per-epoch difficulty target for a parent hash,
// so CutExtender only consults the (potentially suspending) difficulty
// oracle once per parent. It is held by pointer by one CutExtender for the
// life of the miner; its methods take an internal mutex, and the embedded
// lru.Cache is itself safe for concurrent use.
type TargetCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewTargetCache constructs an empty cache.
func NewTargetCache() *TargetCache {
	c, err := lru.New(targetCacheSize)
	if err != nil {
		// lru.New only errors on a non-positive size, which is a
		// programming error here, not a runtime condition.
		panic(err)
	}
	return &TargetCache{cache: c}
}

// Lookup returns the cached target for parentHash and true, or the zero
// value and false if no entry exists.
func (tc *TargetCache) Lookup(parentHash types.BlockHash) (types.HashTarget, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	v, ok := tc.cache.Get(parentHash)
	if !ok {
		return types.HashTarget{}, false
	}
	return v.(targetEntry).target, true
}

// Insert records target as the target for the header at (parentHash, height).
func (tc *TargetCache) Insert(parentHash types.BlockHash, height types.BlockHeight, target types.HashTarget) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.cache.Add(parentHash, targetEntry{height: height, target: target})
}

// Prune removes every entry whose stored height is <= tipHeight - window,
// bounding the cache to roughly |Chains| * window entries (spec §3, §8
// "cache bound" invariant). When tipHeight < window nothing is removed;
// when window <= 0 the floor is 0, so only height-0 entries are removed.
func (tc *TargetCache) Prune(tipHeight types.BlockHeight, window int) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	var floor types.BlockHeight
	if window > 0 {
		if types.BlockHeight(window) > tipHeight {
			return // tipHeight - window is negative: every entry is kept
		}
		floor = tipHeight - types.BlockHeight(window)
	}
	for _, key := range tc.cache.Keys() {
		v, ok := tc.cache.Peek(key)
		if !ok {
			continue
		}
		if v.(targetEntry).height <= floor {
			tc.cache.Remove(key)
		}
	}
}

// Len reports the number of entries currently cached.
func (tc *TargetCache) Len() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.cache.Len()
}
