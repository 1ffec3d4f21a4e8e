package minhash

import (
	"crypto/sha1"
	"encoding/binary"
	"hash"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/dchest/siphash"
	"golang.org/x/crypto/blake2b"
)

// digestPrefix is the number of leading digest bytes consumed per update.
const digestPrefix = 4

// Digest is a named deterministic hash over item bytes. Only the first four
// bytes of the output are consumed, so any digest producing at least four
// bytes works. The name identifies the algorithm when a sketch is stored or
// exchanged; two sketches must use the same digest to be comparable.
type Digest struct {
	name string
	sum  func(b []byte) []byte
}

func (d Digest) Name() string {
	return d.name
}

func pooledSum(pool *sync.Pool, b []byte) []byte {
	h := pool.Get().(hash.Hash)
	defer pool.Put(h)
	h.Reset()
	h.Write(b)
	return h.Sum(nil)
}

var sha1Pool = sync.Pool{
	New: func() interface{} {
		return sha1.New()
	},
}

var blake2bPool = sync.Pool{
	New: func() interface{} {
		h, _ := blake2b.New256(nil) // this fn never returns error when key=nil
		return h
	},
}

// SHA1 is the default digest.
var SHA1 = Digest{
	name: "sha1",
	sum:  func(b []byte) []byte { return pooledSum(&sha1Pool, b) },
}

// Blake2b256 digests items with BLAKE2b-256.
var Blake2b256 = Digest{
	name: "blake2b-256",
	sum:  func(b []byte) []byte { return pooledSum(&blake2bPool, b) },
}

// XXHash64 digests items with the non-cryptographic xxHash64. It is much
// faster than the cryptographic digests and adequate when items are not
// adversarial.
var XXHash64 = Digest{
	name: "xxhash64",
	sum: func(b []byte) []byte {
		var out [8]byte
		binary.LittleEndian.PutUint64(out[:], xxhash.Sum64(b))
		return out[:]
	},
}

// SipHash returns a digest keyed with k0, k1. Sketches built with different
// keys produce unrelated hash values even though they share the name
// "siphash", so the key must be agreed out of band; keyed digests are not
// resolvable by DigestByName.
func SipHash(k0, k1 uint64) Digest {
	return Digest{
		name: "siphash",
		sum: func(b []byte) []byte {
			var out [8]byte
			binary.LittleEndian.PutUint64(out[:], siphash.Hash(k0, k1, b))
			return out[:]
		},
	}
}

// DigestByName resolves a stored digest identifier to one of the unkeyed
// named digests.
func DigestByName(name string) (Digest, bool) {
	switch name {
	case SHA1.name:
		return SHA1, true
	case Blake2b256.name:
		return Blake2b256, true
	case XXHash64.name:
		return XXHash64, true
	}
	return Digest{}, false
}
