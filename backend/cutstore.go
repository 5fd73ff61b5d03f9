// Package backend provides single-process, in-memory reference
// implementations of the core collaborator interfaces (CutStore, Executor,
// PayloadStore, HeaderDbSet, HeaderDb). Real deployments back these with a
// real cut database, execution service and content-addressed stores; this
// package exists so the mining core is actually runnable — by the CLI's
// demo "start" command and by core's end-to-end scenario tests — despite
// those services being out of scope for the mining core itself.
package backend

import (
	"context"
	"sync"

	"github.com/LabMember-001/chainweb-node/types"
)

// CutStore is an in-memory CutStore backed by a condition variable, so
// AwaitNewer blocks efficiently instead of polling.
type CutStore struct {
	mu      sync.Mutex
	cond    *sync.Cond
	current types.Cut
	version int64
}

// NewCutStore constructs a CutStore whose initial cut is genesis.
func NewCutStore(genesis types.Cut) *CutStore {
	s := &CutStore{current: genesis}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Current returns the present cut.
func (s *CutStore) Current() types.Cut {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Publish records c as current and wakes every AwaitNewer waiter.
func (s *CutStore) Publish(c types.Cut) error {
	s.mu.Lock()
	s.current = c
	s.version++
	s.mu.Unlock()
	s.cond.Broadcast()
	return nil
}

// AwaitNewer blocks until a cut strictly newer than prev has been
// published, or ctx is cancelled. "Newer" here means the current cut holds
// a different header (compared by pointer) on some chain than prev does, so
// a Publish made between reading prev and calling AwaitNewer is not missed.
// This matches the mining core's use (it always awaits relative to the cut
// it started mining against).
func (s *CutStore) AwaitNewer(ctx context.Context, prev types.Cut) (types.Cut, error) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.cond.Broadcast() // wake the waiter below so it can observe ctx.Done
			s.mu.Unlock()
		case <-done:
		}
	}()
	defer close(done)

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if len(s.current) != len(prev) {
			return s.current, nil
		}
		for cid, h := range s.current {
			if prev[cid] != h {
				return s.current, nil
			}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		s.cond.Wait()
	}
}
