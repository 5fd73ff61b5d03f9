package backend

import (
	"context"
	"crypto/sha512"
	"encoding/binary"
	"sync/atomic"

	"github.com/LabMember-001/chainweb-node/common"
	"github.com/LabMember-001/chainweb-node/core"
	"github.com/LabMember-001/chainweb-node/types"
)

// Executor is a deterministic, in-memory stand-in for the real execution
// service: every call to NewBlock synthesizes a trivial payload keyed off
// an incrementing counter and the parent hash, and ValidateBlock only checks
// that the header's payload hash matches the payload (there is no
// transaction semantics to check against).
type Executor struct {
	counter uint64
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor { return &Executor{} }

func (e *Executor) NewBlock(ctx context.Context, info core.MinerInfo, parent *types.BlockHeader) (*core.PayloadWithOutputs, error) {
	n := atomic.AddUint64(&e.counter, 1)
	var buf [8 + 32]byte
	binary.LittleEndian.PutUint64(buf[:8], n)
	copy(buf[8:], parent.Hash.Bytes())
	hash := common.BytesToHash(sumBytes(buf[:]))
	return &core.PayloadWithOutputs{Hash: hash, Data: n}, nil
}

func (e *Executor) ValidateBlock(ctx context.Context, header *types.BlockHeader, payload *core.PayloadWithOutputs) error {
	if header.PayloadHash != payload.Hash {
		return errPayloadMismatch
	}
	return nil
}

func sumBytes(b []byte) []byte {
	sum := sha512.Sum512_256(b)
	return sum[:]
}
