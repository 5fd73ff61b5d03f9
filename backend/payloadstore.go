package backend

import (
	"context"
	"sync"

	"github.com/LabMember-001/chainweb-node/core"
	"github.com/LabMember-001/chainweb-node/types"
)

// PayloadStore is an in-memory, content-addressed payload store.
type PayloadStore struct {
	mu       sync.RWMutex
	payloads map[types.BlockHash]*core.PayloadWithOutputs
}

// NewPayloadStore constructs an empty PayloadStore.
func NewPayloadStore() *PayloadStore {
	return &PayloadStore{payloads: make(map[types.BlockHash]*core.PayloadWithOutputs)}
}

func (s *PayloadStore) AddNewPayload(ctx context.Context, p *core.PayloadWithOutputs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads[p.Hash] = p
	return nil
}

// Get returns the payload stored under hash, for tests and the demo CLI.
func (s *PayloadStore) Get(hash types.BlockHash) (*core.PayloadWithOutputs, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payloads[hash]
	return p, ok
}

// Len reports the number of payloads currently stored, for tests.
func (s *PayloadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payloads)
}
