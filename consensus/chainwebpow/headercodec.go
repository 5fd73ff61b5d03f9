package chainwebpow

import (
	"encoding/binary"
	"sort"

	"github.com/pkg/errors"

	"github.com/LabMember-001/chainweb-node/common"
	"github.com/LabMember-001/chainweb-node/types"
)

// Fixed offsets within the without-hash encoding. InnerMiner relies on
// these exact offsets to mutate nonce and time in place without touching
// any other byte.
const (
	nonceOffset       = 0
	nonceLen          = 8
	timeOffset        = nonceOffset + nonceLen // 8
	timeLen           = 8
	fixedHeaderOffset = timeOffset + timeLen // 16
)

// ErrShortBuffer is returned by DecodeWithoutHash when buf is too small
// to contain a well-formed header.
var ErrShortBuffer = errors.New("chainwebpow: header buffer too short")

// EncodeWithoutHash serializes h into its canonical fixed-offset wire form.
// Bytes [0,8) are the nonce, bytes [8,16) are the creation time, both
// little-endian; the remainder is a stable encoding of every other field.
func EncodeWithoutHash(h *types.BlockHeader) []byte {
	cids := make([]int, 0, len(h.AdjacentParents))
	for cid := range h.AdjacentParents {
		cids = append(cids, int(cid))
	}
	sort.Ints(cids)

	size := fixedHeaderOffset + 4 + 8 + 32 + 4 + len(cids)*(4+32) + 32 + 32
	buf := make([]byte, size)

	WriteNonce(buf, h.Nonce)
	WriteTime(buf, h.CreationTime)

	off := fixedHeaderOffset
	binary.LittleEndian.PutUint32(buf[off:], uint32(h.ChainId))
	off += 4
	binary.LittleEndian.PutUint64(buf[off:], uint64(h.Height))
	off += 8
	copy(buf[off:off+32], h.ParentHash.Bytes())
	off += 32

	binary.LittleEndian.PutUint32(buf[off:], uint32(len(cids)))
	off += 4
	for _, cid := range cids {
		binary.LittleEndian.PutUint32(buf[off:], uint32(cid))
		off += 4
		hash := h.AdjacentParents[types.ChainId(cid)]
		copy(buf[off:off+32], hash.Bytes())
		off += 32
	}

	copy(buf[off:off+32], h.PayloadHash.Bytes())
	off += 32

	target32 := h.Target.Bytes32()
	copy(buf[off:off+32], target32[:])
	off += 32

	return buf
}

// DecodeWithoutHash is the inverse of EncodeWithoutHash.
func DecodeWithoutHash(buf []byte) (*types.BlockHeader, error) {
	if len(buf) < fixedHeaderOffset+4+8+32+4 {
		return nil, ErrShortBuffer
	}
	h := &types.BlockHeader{}
	h.Nonce = ReadNonce(buf)
	h.CreationTime = ReadTime(buf)

	off := fixedHeaderOffset
	h.ChainId = types.ChainId(binary.LittleEndian.Uint32(buf[off:]))
	off += 4
	h.Height = types.BlockHeight(binary.LittleEndian.Uint64(buf[off:]))
	off += 8
	h.ParentHash = common.BytesToHash(buf[off : off+32])
	off += 32

	count := int(binary.LittleEndian.Uint32(buf[off:]))
	off += 4
	if len(buf) < off+count*(4+32)+64 {
		return nil, ErrShortBuffer
	}
	h.AdjacentParents = make(types.BlockHashRecord, count)
	for i := 0; i < count; i++ {
		cid := types.ChainId(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
		h.AdjacentParents[cid] = common.BytesToHash(buf[off : off+32])
		off += 32
	}

	h.PayloadHash = common.BytesToHash(buf[off : off+32])
	off += 32

	h.Target = types.TargetFromLittleEndian(buf[off : off+32])
	off += 32

	return h, nil
}

// WriteNonce overwrites only bytes [0,8) of buf with n, little-endian. buf
// must already be at least nonceOffset+nonceLen bytes.
func WriteNonce(buf []byte, n types.Nonce) {
	binary.LittleEndian.PutUint64(buf[nonceOffset:], uint64(n))
}

// WriteTime overwrites only bytes [8,16) of buf with t, little-endian.
func WriteTime(buf []byte, t types.Time) {
	binary.LittleEndian.PutUint64(buf[timeOffset:], uint64(t))
}

// ReadNonce reads the nonce slot without touching any other byte.
func ReadNonce(buf []byte) types.Nonce {
	return types.Nonce(binary.LittleEndian.Uint64(buf[nonceOffset:]))
}

// ReadTime reads the time slot without touching any other byte.
func ReadTime(buf []byte) types.Time {
	return types.Time(binary.LittleEndian.Uint64(buf[timeOffset:]))
}
