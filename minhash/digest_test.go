package minhash

import (
	"bytes"
	"testing"
)

func TestDigestsDeterministic(t *testing.T) {
	digests := []Digest{SHA1, Blake2b256, XXHash64, SipHash(567, 890)}
	item := []byte("the quick brown fox")
	for _, d := range digests {
		a := d.sum(item)
		b := d.sum(item)
		if !bytes.Equal(a, b) {
			t.Errorf("digest %q is not deterministic", d.Name())
		}
		if len(a) < digestPrefix {
			t.Errorf("digest %q yields %d bytes, need at least %d", d.Name(), len(a), digestPrefix)
		}
	}
}

func TestDigestByName(t *testing.T) {
	for _, want := range []Digest{SHA1, Blake2b256, XXHash64} {
		got, ok := DigestByName(want.Name())
		if !ok {
			t.Fatalf("digest %q should resolve", want.Name())
		}
		if got.Name() != want.Name() {
			t.Errorf("resolved %q, want %q", got.Name(), want.Name())
		}
	}
	if _, ok := DigestByName("siphash"); ok {
		t.Error("keyed digests should not resolve by name")
	}
	if _, ok := DigestByName("md5"); ok {
		t.Error("unknown digest names should not resolve")
	}
}

func TestSipHashKeying(t *testing.T) {
	item := []byte("item")
	a := SipHash(1, 2).sum(item)
	b := SipHash(3, 4).sum(item)
	if bytes.Equal(a, b) {
		t.Error("different keys should yield different digests")
	}
}

func TestDigestSelectsHashFamily(t *testing.T) {
	items := randomItems(1, 100)
	a, err := NewWithDigest(64, 1, SHA1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewWithDigest(64, 1, XXHash64)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if err := a.Update(it); err != nil {
			t.Fatal(err)
		}
		if err := b.Update(it); err != nil {
			t.Fatal(err)
		}
	}
	if a.Equal(b) {
		t.Error("different digests over the same items should yield different sketches")
	}
}

func TestNewWithUnsetDigest(t *testing.T) {
	_, err := NewWithDigest(16, 1, Digest{})
	if err == nil {
		t.Fatal("the zero digest should be rejected")
	}
	if _, ok := err.(ConfigError); !ok {
		t.Errorf("expected ConfigError, got %T", err)
	}
}
