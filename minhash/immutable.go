package minhash

import (
	"encoding/binary"
)

// ImmutableMinHash is a read-only snapshot of a sketch: seed, slot vector,
// and digest name. It has no update or merge methods, so mutation is
// unrepresentable rather than a runtime error. It never shares mutable
// state with the sketch it was built from.
type ImmutableMinHash struct {
	seed       int64
	values     []uint32
	digestName string
}

// NewImmutable snapshots a sketch. The slot vector is deep-copied.
func NewImmutable(m *MinHash) *ImmutableMinHash {
	return &ImmutableMinHash{
		seed:       m.seed,
		values:     append([]uint32(nil), m.values...),
		digestName: m.digest.Name(),
	}
}

// Copy returns an independent snapshot with identical state.
func (im *ImmutableMinHash) Copy() *ImmutableMinHash {
	return &ImmutableMinHash{
		seed:       im.seed,
		values:     append([]uint32(nil), im.values...),
		digestName: im.digestName,
	}
}

// Len returns the number of permutation slots.
func (im *ImmutableMinHash) Len() int {
	return len(im.values)
}

// Seed returns the seed identifying the permutation family.
func (im *ImmutableMinHash) Seed() int64 {
	return im.seed
}

// DigestName returns the name of the digest the snapshotted sketch used.
func (im *ImmutableMinHash) DigestName() string {
	return im.digestName
}

// HashValues exports an independent copy of the slot vector.
func (im *ImmutableMinHash) HashValues() []uint32 {
	return append([]uint32(nil), im.values...)
}

// Jaccard estimates the Jaccard similarity between the sets summarized by
// the two snapshots.
func (im *ImmutableMinHash) Jaccard(other *ImmutableMinHash) (float64, error) {
	if other.seed != im.seed {
		return 0, ConfigError{"cannot compare sketches with different seeds"}
	}
	if len(other.values) != len(im.values) {
		return 0, ConfigError{"cannot compare sketches with different numbers of permutations"}
	}
	return jaccard(im.values, other.values), nil
}

// Count estimates the cardinality of the summarized set.
func (im *ImmutableMinHash) Count() float64 {
	var sum float64
	for _, v := range im.values {
		sum += float64(v) / float64(maxHash)
	}
	return float64(len(im.values))/sum - 1.0
}

// Equal reports whether the two snapshots have the same seed and identical
// slot vectors.
func (im *ImmutableMinHash) Equal(other *ImmutableMinHash) bool {
	if im.seed != other.seed || len(im.values) != len(other.values) {
		return false
	}
	for i, v := range im.values {
		if v != other.values[i] {
			return false
		}
	}
	return true
}

// UnionImmutable returns the snapshot of the union of the sets summarized
// by the inputs, which must number at least two and share a seed, slot
// count, and digest. The digest check is stricter than Union's because a
// snapshot records only the digest name and cannot fall back to the first
// input's digest function.
func UnionImmutable(sketches ...*ImmutableMinHash) (*ImmutableMinHash, error) {
	if len(sketches) < 2 {
		return nil, ConfigError{"cannot union less than 2 sketches"}
	}
	first := sketches[0]
	for _, s := range sketches[1:] {
		if s.seed != first.seed || len(s.values) != len(first.values) || s.digestName != first.digestName {
			return nil, ConfigError{"unioned sketches must share seed, number of permutations, and digest"}
		}
	}
	values := append([]uint32(nil), first.values...)
	for _, s := range sketches[1:] {
		for i, v := range s.values {
			if v < values[i] {
				values[i] = v
			}
		}
	}
	return &ImmutableMinHash{
		seed:       first.seed,
		values:     values,
		digestName: first.digestName,
	}, nil
}

// ByteSize returns the number of bytes Serialize writes. Snapshots use the
// legacy layout without the trailing finalized byte.
func (im *ImmutableMinHash) ByteSize() int {
	return headerSize + hashValueSize*len(im.values)
}

// Serialize encodes the snapshot into buf using the legacy layout:
//
//	seed:int64 | numPerm:int32 | numPerm x uint32
func (im *ImmutableMinHash) Serialize(buf []byte) error {
	if len(buf) < im.ByteSize() {
		return SizeError{len(buf), im.ByteSize()}
	}
	binary.LittleEndian.PutUint64(buf[0:8], uint64(im.seed))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(im.values)))
	off := headerSize
	for _, v := range im.values {
		binary.LittleEndian.PutUint32(buf[off:off+4], v)
		off += 4
	}
	return nil
}

// DeserializeImmutable reconstructs a snapshot from the legacy layout. Any
// trailing bytes are ignored. The digest is fixed to the default, since the
// layout does not record it.
func DeserializeImmutable(buf []byte) (*ImmutableMinHash, error) {
	seed, values, _, err := decodeCommon(buf)
	if err != nil {
		return nil, err
	}
	return &ImmutableMinHash{
		seed:       seed,
		values:     values,
		digestName: SHA1.Name(),
	}, nil
}
