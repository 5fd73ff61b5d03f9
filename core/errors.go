package core

import "github.com/pkg/errors"

// ErrBlockedChain indicates the sampled chain's adjacent parents are not
// yet resolvable against the current cut. It is never surfaced:
// CutExtender.Extend retries with a freshly sampled chain (spec §7.1).
var ErrBlockedChain = errors.New("core: chain blocked on unresolved adjacent parent")

// ErrNonPow is returned (and is fatal) by MinerLoop.Run when the loop was
// built for a version.Version whose Window is nil — "POW miner used with
// non-POW chainweb" (spec §6, §7.4, §8 scenario 6).
var ErrNonPow = errors.New("core: POW miner used with non-POW chainweb version")

// ErrCutInvariant indicates MonotonicExtension was asked to splice a
// header that does not actually extend the cut it was computed against.
// This can only happen if CutExtender's own bookkeeping is wrong, so it is
// treated as a fatal programming-invariant violation (spec §4.4 step 7,
// §7.2), not a retryable condition.
var ErrCutInvariant = errors.New("core: cut invariant violated by extension")
