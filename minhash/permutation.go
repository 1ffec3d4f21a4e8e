package minhash

import (
	"math/rand"
)

const (
	// mersennePrime is the modulus of the universal hash family. It is the
	// largest prime that fits in 61 bits, so a*h+b stays meaningful under
	// wrapping 64-bit arithmetic before the reduction.
	mersennePrime = (uint64(1) << 61) - 1
	// maxHash is the maximum 32-bit hash value, and the initial value of
	// every slot of a fresh sketch.
	maxHash = (uint64(1) << 32) - 1
	// hashRange is the number of distinct 32-bit hash values, and the upper
	// bound on the slot count (the count is stored in a 32-bit field).
	hashRange = uint64(1) << 32
)

// Permutation parameterizes one slot's hash function
// p(h) = (A*h + B) mod (2^61-1), a universal family approximating a random
// bijection on 32-bit values. A is in [1, 2^61-1] and B in [0, 2^61-1].
type Permutation struct {
	A uint64
	B uint64
}

// GeneratePermutations deterministically derives n permutation parameter
// pairs from the seed. The same seed and n always yield the same pairs.
func GeneratePermutations(seed int64, n int) []Permutation {
	r := rand.New(rand.NewSource(seed))
	perms := make([]Permutation, n)
	for i := range perms {
		perms[i].A = 1 + r.Uint64()%mersennePrime
		perms[i].B = r.Uint64() % (mersennePrime + 1)
	}
	return perms
}
