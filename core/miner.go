package core

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/LabMember-001/chainweb-node/consensus/chainwebpow"
	"github.com/LabMember-001/chainweb-node/log"
	"github.com/LabMember-001/chainweb-node/types"
	"github.com/LabMember-001/chainweb-node/version"
)

// NewMinedBlock is the structured event MinerLoop logs on every success
// (spec §6's logging surface).
type NewMinedBlock struct {
	Header *types.BlockHeader
}

// MinerLoop orchestrates the mine-vs-await-cut race: it reads the current
// cut, races a CutExtender attempt against CutStore.AwaitNewer, and on
// every iteration either restarts with a newer observed cut or publishes a
// freshly mined one, pruning the target cache afterward (spec §4.6).
//
// Grounded on go-quai's core/miner.go start/stop/update state machine,
// generalized from single-chain block production to the cut race.
type MinerLoop struct {
	version  *version.Version
	cutStore CutStore
	extender *CutExtender
	config   MinerConfig
	now      chainwebpow.NowFunc

	// OnMinedBlock, if set, is invoked synchronously after every
	// successful publish with the structured NewMinedBlock event. It
	// exists so the reference backend and tests can observe mined blocks
	// without polling CutStore.
	OnMinedBlock func(NewMinedBlock)
}

// NewMinerLoop constructs a MinerLoop. It does not start running; call Run.
// Instantiating against a version whose Window is nil still succeeds (the
// fatal guard fires from Run, at the first attempt to actually mine,
// matching spec §8 scenario 6's "must terminate the miner with a fatal
// error at first success" — i.e. the first opportunity the loop has to act
// on it).
func NewMinerLoop(v *version.Version, cutStore CutStore, extender *CutExtender, config MinerConfig) *MinerLoop {
	return &MinerLoop{
		version:  v,
		cutStore: cutStore,
		extender: extender,
		config:   config,
		now:      func() types.Time { return types.Time(time.Now().UnixMicro()) },
	}
}

// Run executes the state machine forever, until ctx is cancelled. Per spec
// §4.6's run_forever wrapper, errors surfaced from one iteration are
// logged and the loop restarts from a fresh nonce/cut read; ErrNonPow is
// the one error that terminates Run entirely, since no retry can fix a
// miner pointed at a non-PoW version.
func (m *MinerLoop) Run(ctx context.Context) error {
	if !m.version.IsPoW() {
		return errors.Wrapf(ErrNonPow, "version %q", m.version.Name)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := m.runIteration(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			log.Errorf("chainweb miner loop iteration failed, restarting: %v", err)
			continue
		}
	}
}

type awaitOutcome struct {
	cut types.Cut
	err error
}

type extendOutcome struct {
	header *types.BlockHeader
	cut    types.Cut
	err    error
}

// runIteration implements one pass of the (S0)-(S2) state machine: it
// seeds a nonce and reads the current cut once (S0), then races await-newer
// against CutExtender, restarting the race in place (carrying the same
// nonce and cache) every time a newer cut preempts an in-flight attempt,
// until a block is actually mined and published.
func (m *MinerLoop) runIteration(ctx context.Context) error {
	nonce0, err := randomNonce()
	if err != nil {
		return errors.Wrap(err, "core: seeding mining nonce")
	}
	c := m.cutStore.Current()

	for {
		raceCtx, cancel := context.WithCancel(ctx)

		awaitCh := make(chan awaitOutcome, 1)
		extendCh := make(chan extendOutcome, 1)

		go func() {
			newer, err := m.cutStore.AwaitNewer(raceCtx, c)
			awaitCh <- awaitOutcome{cut: newer, err: err}
		}()
		go func() {
			h, c2, err := m.extender.Extend(raceCtx, c, nonce0, m.now)
			extendCh <- extendOutcome{header: h, cut: c2, err: err}
		}()

		select {
		case a := <-awaitCh:
			// The await branch won: preempt mining and wait for it to
			// unwind before consuming the winner's result (spec §9,
			// "structured cancellation"). No header or payload write can
			// have occurred: CutExtender only writes after Mine succeeds,
			// and cancellation aborts Mine before it returns.
			cancel()
			<-extendCh
			if a.err != nil {
				return errors.Wrap(a.err, "core: CutStore.AwaitNewer")
			}
			c = a.cut
			continue

		case r := <-extendCh:
			cancel()
			<-awaitCh // let the loser unwind; its result is discarded
			if r.err != nil {
				if errors.Is(r.err, context.Canceled) {
					// raceCtx is only cancelled by this function after the
					// select, so this cancellation came from the parent
					// ctx (shutdown); Run observes ctx.Done and returns.
					return nil
				}
				return r.err
			}

			if pubErr := m.cutStore.Publish(r.cut); pubErr != nil {
				return errors.Wrap(pubErr, "core: CutStore.Publish")
			}
			m.extender.PruneTargetCache(r.header.Height)

			log.Infof("created new block %d on chain %d", r.header.Height, r.header.ChainId)
			if m.OnMinedBlock != nil {
				m.OnMinedBlock(NewMinedBlock{Header: r.header})
			}
			return nil
		}
	}
}

// randomNonce seeds a fresh mining nonce from a secure system source, once
// per mining attempt (spec §3 "Nonces are seeded once per attempt from a
// secure RNG").
func randomNonce() (types.Nonce, error) {
	n, err := rand.Int(rand.Reader, new(big.Int).SetUint64(math.MaxUint64))
	if err != nil {
		return 0, err
	}
	return types.Nonce(n.Uint64()), nil
}
