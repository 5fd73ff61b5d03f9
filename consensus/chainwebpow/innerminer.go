package chainwebpow

import (
	"context"
	"crypto/sha512"

	"github.com/LabMember-001/chainweb-node/types"
	"github.com/LabMember-001/chainweb-node/version"
)

// timeRefreshInterval is the iteration count at which both mining variants
// refresh the embedded timestamp and check for cancellation (spec §4.5,
// §5's "bounded cancellation latency" requirement), grounded on
// blake3pow.mine's periodic attempts-counter reset in
// consensus/blake3pow/sealer.go.
const timeRefreshInterval = 100_000

// NowFunc returns the current time as a chainwebpow Time (microseconds
// since epoch). Tests substitute a deterministic stub to exercise the
// portable/fast equivalence invariant.
type NowFunc func() types.Time

// Mine is the portable inner-miner variant. It serializes candidate once,
// then repeatedly overwrites the nonce (and, every timeRefreshInterval
// iterations, the time) slot and recomputes the PoW digest via the stdlib
// one-shot sha512.Sum512_256 convenience function — no persistent hash
// context is kept across iterations, trading a little throughput for a
// simpler, always-correct code path every version can use.
//
// Mine returns the mutated header on success, or ctx.Err() if ctx is
// cancelled before a solution is found.
func Mine(ctx context.Context, candidate *types.BlockHeader, nonce0 types.Nonce, now NowFunc) (*types.BlockHeader, error) {
	if candidate.Target.IsZero() {
		panic("chainwebpow: Mine called with zero target")
	}
	buf := EncodeWithoutHash(candidate)

	n := nonce0
	iter := 0
	for {
		WriteNonce(buf, n)
		digest := sha512.Sum512_256(buf)
		if MeetsTarget(digest, candidate.Target) {
			return decodeMined(buf, digest)
		}
		n++
		iter++
		if iter%timeRefreshInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			WriteTime(buf, now())
		}
	}
}

// MineFast is the optimized inner-miner variant: the serialized buffer and
// a single HashEngine (reset, not reallocated, per iteration) are acquired
// once and reused for the whole attempt. It bypasses generic re-encoding on
// every iteration, so it is gated on the version's hash algorithm matching
// a known-fast engine; for any other algorithm MineFast itself falls back
// to Mine (spec §4.5).
//
// The buffer and hash context are scoped to this call: both are released
// (simply dropped, in Go) on every exit path, including the ctx.Err() path,
// so no mining state leaks across attempts.
func MineFast(ctx context.Context, candidate *types.BlockHeader, nonce0 types.Nonce, algo version.HashAlgorithm, now NowFunc) (*types.BlockHeader, error) {
	if algo != version.HashAlgoSHA512_256 {
		return Mine(ctx, candidate, nonce0, now)
	}
	if candidate.Target.IsZero() {
		panic("chainwebpow: MineFast called with zero target")
	}

	engine := NewHashEngine(algo)
	buf := EncodeWithoutHash(candidate)

	n := nonce0
	iter := 0
	for {
		WriteNonce(buf, n)
		digest := engine.PowHash(buf)
		if MeetsTarget(digest, candidate.Target) {
			return decodeMined(buf, digest)
		}
		n++
		iter++
		if iter%timeRefreshInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			WriteTime(buf, now())
		}
	}
}

// decodeMined decodes the winning buffer back into a header and stamps its
// self hash, satisfying the "target correctness" invariant: the returned
// header equals the candidate except in nonce and time, and its hash
// matches the digest that was checked against target.
func decodeMined(buf []byte, digest [32]byte) (*types.BlockHeader, error) {
	h, err := DecodeWithoutHash(buf)
	if err != nil {
		return nil, err
	}
	h.Hash = digest
	return h, nil
}
