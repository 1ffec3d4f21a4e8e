package minhash

import (
	"encoding/binary"
)

// Serialized layout, little-endian, no padding:
//
//	seed:int64 | numPerm:int32 | numPerm x uint32 | finalized:1 byte
//
// This form is far more compact than generic object serialization and is
// the interchange format between implementations. The immutable variant
// uses the legacy layout without the trailing finalized byte.
const (
	headerSize    = 8 + 4 // seed + slot count
	hashValueSize = 4
	flagSize      = 1
)

// ByteSize returns the number of bytes Serialize writes.
func (m *MinHash) ByteSize() int {
	return headerSize + hashValueSize*len(m.values) + flagSize
}

// Serialize encodes the sketch into buf, which must be at least ByteSize()
// bytes long. Permutations are not serialized; Deserialize re-derives them
// from the seed.
func (m *MinHash) Serialize(buf []byte) error {
	if len(buf) < m.ByteSize() {
		return SizeError{len(buf), m.ByteSize()}
	}
	binary.LittleEndian.PutUint64(buf[0:8], uint64(m.seed))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(m.values)))
	off := headerSize
	for _, v := range m.values {
		binary.LittleEndian.PutUint32(buf[off:off+4], v)
		off += 4
	}
	if m.finalized {
		buf[off] = 1
	} else {
		buf[off] = 0
	}
	return nil
}

// Deserialize reconstructs a sketch from buf. The buffer must contain the
// full header and slot vector; a missing trailing finalized byte is a legacy
// short encoding and decodes as finalized=false rather than failing. Unless
// the sketch was finalized, permutations are regenerated from the seed.
func Deserialize(buf []byte) (*MinHash, error) {
	seed, values, rest, err := decodeCommon(buf)
	if err != nil {
		return nil, err
	}
	if len(rest) >= flagSize && rest[0] != 0 {
		return RestoreFinalized(seed, values), nil
	}
	return Restore(seed, values, nil)
}

// decodeCommon reads the seed, slot count, and slot vector shared by both
// layouts, returning any trailing bytes.
func decodeCommon(buf []byte) (seed int64, values []uint32, rest []byte, err error) {
	if len(buf) < headerSize {
		return 0, nil, nil, SizeError{len(buf), headerSize}
	}
	seed = int64(binary.LittleEndian.Uint64(buf[0:8]))
	numPerm := int32(binary.LittleEndian.Uint32(buf[8:12]))
	if numPerm < 0 {
		return 0, nil, nil, ConfigError{"negative slot count in serialized sketch"}
	}
	need := headerSize + hashValueSize*int(numPerm)
	if len(buf) < need {
		return 0, nil, nil, SizeError{len(buf), need}
	}
	values = make([]uint32, numPerm)
	off := headerSize
	for i := range values {
		values[i] = binary.LittleEndian.Uint32(buf[off : off+4])
		off += 4
	}
	return seed, values, buf[need:], nil
}
