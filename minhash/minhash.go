// Package minhash implements MinHash, a fixed-size probabilistic summary of
// a set that supports streaming updates and estimates the Jaccard similarity
// between two sets without storing either set.
//
// A sketch holds one running-minimum hash value per permutation slot. Each
// update digests the item, maps the digest through every slot's permutation
// function, and keeps the per-slot minimum. Two sketches built with the same
// seed and digest over different sets agree on a slot with probability equal
// to the Jaccard similarity of the sets, which Jaccard exploits.
//
// The original MinHash paper:
// http://cs.brown.edu/courses/cs253/papers/nearduplicate.pdf
package minhash

import (
	"encoding/binary"
)

// MinHash is a mutable sketch. It is not safe for concurrent mutation;
// callers needing parallel updates should shard into several sketches and
// combine them with Union or Merge.
type MinHash struct {
	seed      int64
	values    []uint32
	perms     []Permutation // empty iff finalized or never loaded
	digest    Digest
	finalized bool
}

// New creates a sketch with numPerm permutation slots derived from the seed,
// using the default digest. The seed selects the permutation family: only
// sketches sharing a seed can be compared or merged.
func New(numPerm int, seed int64) (*MinHash, error) {
	return NewWithDigest(numPerm, seed, SHA1)
}

// NewWithDigest is New with an explicit item digest.
func NewWithDigest(numPerm int, seed int64, d Digest) (*MinHash, error) {
	if numPerm < 0 || uint64(numPerm) > hashRange {
		// the slot count is persisted in a 32-bit field
		return nil, ConfigError{"slot count must be in [0, 2^32]"}
	}
	if d.sum == nil {
		return nil, ConfigError{"digest is not set"}
	}
	values := make([]uint32, numPerm)
	for i := range values {
		values[i] = uint32(maxHash)
	}
	return &MinHash{
		seed:   seed,
		values: values,
		perms:  GeneratePermutations(seed, numPerm),
		digest: d,
	}, nil
}

// Restore builds a sketch from previously exported state. The length of
// values defines the slot count. If perms is nil the permutations are
// regenerated from the seed; otherwise its length must match values.
func Restore(seed int64, values []uint32, perms []Permutation) (*MinHash, error) {
	if uint64(len(values)) > hashRange {
		return nil, ConfigError{"slot count must be in [0, 2^32]"}
	}
	m := &MinHash{
		seed:   seed,
		values: append([]uint32(nil), values...),
		digest: SHA1,
	}
	if perms == nil {
		m.perms = GeneratePermutations(seed, len(values))
		return m, nil
	}
	if len(perms) != len(values) {
		return nil, ConfigError{"numbers of hash values and permutations mismatch"}
	}
	m.perms = append([]Permutation(nil), perms...)
	return m, nil
}

// RestoreFinalized builds a finalized sketch from previously exported state.
// The result carries no permutations and rejects updates until permutations
// are regenerated or loaded.
func RestoreFinalized(seed int64, values []uint32) *MinHash {
	return &MinHash{
		seed:      seed,
		values:    append([]uint32(nil), values...),
		digest:    SHA1,
		finalized: true,
	}
}

// Len returns the number of permutation slots.
func (m *MinHash) Len() int {
	return len(m.values)
}

// Seed returns the seed identifying the permutation family.
func (m *MinHash) Seed() int64 {
	return m.seed
}

// Digest returns the item digest in use.
func (m *MinHash) Digest() Digest {
	return m.digest
}

// Finalized reports whether the sketch has been finalized.
func (m *MinHash) Finalized() bool {
	return m.finalized
}

// HashValues exports an independent copy of the slot vector. The slot
// vector, the seed, and the digest name are the only state external
// structures should read.
func (m *MinHash) HashValues() []uint32 {
	return append([]uint32(nil), m.values...)
}

// Update folds one item into the sketch. The item is digested, the first
// four digest bytes are taken as a little-endian 32-bit hash, and every slot
// keeps the minimum of its current value and the permuted hash.
func (m *MinHash) Update(b []byte) error {
	if len(m.perms) == 0 {
		return StateError{"sketch stores no permutations, so it cannot be updated"}
	}
	sum := m.digest.sum(b)
	if len(sum) < digestPrefix {
		return ConfigError{"digest output is shorter than four bytes"}
	}
	h := uint64(binary.LittleEndian.Uint32(sum[:digestPrefix]))
	for i, p := range m.perms {
		// a*h+b wraps mod 2^64 before the reduction; the permuted value
		// stays a deterministic function of h.
		ph := uint32(((p.A*h + p.B) % mersennePrime) & maxHash)
		if ph < m.values[i] {
			m.values[i] = ph
		}
	}
	return nil
}

// Merge folds the other sketch into this one, making this the sketch of the
// union of both sets. The other sketch is not modified.
func (m *MinHash) Merge(other *MinHash) error {
	if other.seed != m.seed {
		return ConfigError{"cannot merge sketches with different seeds"}
	}
	if len(other.values) != len(m.values) {
		return ConfigError{"cannot merge sketches with different numbers of permutations"}
	}
	for i, v := range other.values {
		if v < m.values[i] {
			m.values[i] = v
		}
	}
	return nil
}

// Union returns a new sketch of the union of the sets summarized by the
// inputs, which must number at least two and share a seed and slot count.
// The result regenerates its permutations from the shared seed, so it is
// immediately updatable; it carries the digest of the first input.
func Union(sketches ...*MinHash) (*MinHash, error) {
	if len(sketches) < 2 {
		return nil, ConfigError{"cannot union less than 2 sketches"}
	}
	first := sketches[0]
	for _, s := range sketches[1:] {
		if s.seed != first.seed || len(s.values) != len(first.values) {
			return nil, ConfigError{"unioned sketches must share seed and number of permutations"}
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
	return &MinHash{
		seed:   first.seed,
		values: values,
		perms:  GeneratePermutations(first.seed, len(values)),
		digest: first.digest,
	}, nil
}

// Jaccard estimates the Jaccard similarity (resemblance) between the sets
// summarized by the two sketches, as the fraction of slots on which they
// agree. Accuracy improves with the slot count.
func (m *MinHash) Jaccard(other *MinHash) (float64, error) {
	if other.seed != m.seed {
		return 0, ConfigError{"cannot compare sketches with different seeds"}
	}
	if len(other.values) != len(m.values) {
		return 0, ConfigError{"cannot compare sketches with different numbers of permutations"}
	}
	return jaccard(m.values, other.values), nil
}

func jaccard(a, b []uint32) float64 {
	eq := 0
	for i, v := range a {
		if v == b[i] {
			eq++
		}
	}
	return float64(eq) / float64(len(a))
}

// Count estimates the cardinality of the summarized set.
// See: http://ieeexplore.ieee.org/stamp/stamp.jsp?arnumber=365694
//
// The divisor is zero only when every slot is zero, a state updates cannot
// reach (slots start at the maximum sentinel); in that pathological case the
// result is +Inf.
func (m *MinHash) Count() float64 {
	var sum float64
	for _, v := range m.values {
		sum += float64(v) / float64(maxHash)
	}
	return float64(len(m.values))/sum - 1.0
}

// Equal reports whether the two sketches have the same seed and identical
// slot vectors. Permutations and the finalized flag are not compared.
func (m *MinHash) Equal(other *MinHash) bool {
	if m.seed != other.seed || len(m.values) != len(other.values) {
		return false
	}
	for i, v := range m.values {
		if v != other.values[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the sketch is in its just-initialized state, i.e.
// no update has lowered any slot.
func (m *MinHash) IsEmpty() bool {
	for _, v := range m.values {
		if v != uint32(maxHash) {
			return false
		}
	}
	return true
}

// Clear resets every slot to the maximum sentinel. Permutation state is
// untouched.
func (m *MinHash) Clear() {
	for i := range m.values {
		m.values[i] = uint32(maxHash)
	}
}

// Copy returns an independent sketch with identical state. The copy shares
// no mutable state with the original.
func (m *MinHash) Copy() *MinHash {
	return &MinHash{
		seed:      m.seed,
		values:    append([]uint32(nil), m.values...),
		perms:     append([]Permutation(nil), m.perms...),
		digest:    m.digest,
		finalized: m.finalized,
	}
}

// Finalize drops the permutation parameters, forbidding further updates but
// shrinking the in-memory and decoded footprint. It can be undone by
// RegeneratePermutations or LoadPermutations.
func (m *MinHash) Finalize() {
	m.perms = nil
	m.finalized = true
}

// RegeneratePermutations re-derives the permutations from the sketch's own
// seed, returning a finalized sketch to the updatable state.
func (m *MinHash) RegeneratePermutations() {
	m.perms = GeneratePermutations(m.seed, len(m.values))
	m.finalized = false
}

// LoadPermutations adopts previously exported permutations, returning a
// finalized sketch to the updatable state. Loading permutations that do not
// match the seed leaves the sketch inconsistent with others built from the
// same seed.
func (m *MinHash) LoadPermutations(perms []Permutation) error {
	if len(perms) != len(m.values) {
		return ConfigError{"numbers of hash values and permutations mismatch"}
	}
	m.perms = append([]Permutation(nil), perms...)
	m.finalized = false
	return nil
}

// Permutations exports an independent copy of the permutation parameters,
// or nil if the sketch is finalized.
func (m *MinHash) Permutations() []Permutation {
	if len(m.perms) == 0 {
		return nil
	}
	return append([]Permutation(nil), m.perms...)
}
