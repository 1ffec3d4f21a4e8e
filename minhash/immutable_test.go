package minhash

import (
	"testing"
)

func TestImmutableSnapshotIndependent(t *testing.T) {
	m := sketchOf(t, 32, 1, randomItems(1, 50))
	im := NewImmutable(m)
	before := im.HashValues()
	for _, it := range randomItems(2, 50) {
		if err := m.Update(it); err != nil {
			t.Fatal(err)
		}
	}
	after := im.HashValues()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("updating the source sketch changed the snapshot")
		}
	}
}

func TestImmutableCopy(t *testing.T) {
	im := NewImmutable(sketchOf(t, 32, 1, randomItems(3, 50)))
	c := im.Copy()
	if !c.Equal(im) {
		t.Error("copy should equal the original snapshot")
	}
	if c.Seed() != im.Seed() || c.DigestName() != im.DigestName() {
		t.Error("copy lost metadata")
	}
	c.values[0] = 0
	if im.values[0] == 0 {
		t.Error("copy shares its slot vector with the original")
	}
}

func TestImmutableJaccard(t *testing.T) {
	m := sketchOf(t, 256, 1, randomItems(4, 200))
	im := NewImmutable(m)
	j, err := im.Jaccard(im)
	if err != nil {
		t.Fatal(err)
	}
	if j != 1.0 {
		t.Errorf("jaccard of a snapshot with itself is %f, want 1", j)
	}

	other := NewImmutable(sketchOf(t, 256, 2, nil))
	if _, err := im.Jaccard(other); err == nil {
		t.Error("comparing snapshots with different seeds should fail")
	}
}

func TestImmutableUnion(t *testing.T) {
	a := sketchOf(t, 64, 3, randomItems(5, 100))
	b := sketchOf(t, 64, 3, randomItems(6, 100))

	u, err := Union(a, b)
	if err != nil {
		t.Fatal(err)
	}
	iu, err := UnionImmutable(NewImmutable(a), NewImmutable(b))
	if err != nil {
		t.Fatal(err)
	}
	if !iu.Equal(NewImmutable(u)) {
		t.Error("immutable union disagrees with the live union")
	}

	if _, err := UnionImmutable(NewImmutable(a)); err == nil {
		t.Error("union of a single snapshot should fail")
	}

	x, err := NewWithDigest(64, 3, XXHash64)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := UnionImmutable(NewImmutable(a), NewImmutable(x)); err == nil {
		t.Error("unioning snapshots with different digests should fail")
	}
}

func TestImmutableCount(t *testing.T) {
	m := sketchOf(t, 256, 1, randomItems(7, 500))
	im := NewImmutable(m)
	if im.Count() != m.Count() {
		t.Error("snapshot cardinality estimate disagrees with the source sketch")
	}
}
