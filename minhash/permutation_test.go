package minhash

import (
	"testing"
)

func TestGeneratePermutationsDeterministic(t *testing.T) {
	a := GeneratePermutations(1, 128)
	b := GeneratePermutations(1, 128)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("permutation %d differs between two generations from the same seed", i)
		}
	}
}

func TestGeneratePermutationsBounds(t *testing.T) {
	for _, p := range GeneratePermutations(42, 1024) {
		if p.A < 1 || p.A > mersennePrime {
			t.Fatalf("multiplier %d out of [1, 2^61-1]", p.A)
		}
		if p.B > mersennePrime {
			t.Fatalf("offset %d out of [0, 2^61-1]", p.B)
		}
	}
}

func TestGeneratePermutationsSeedSensitive(t *testing.T) {
	a := GeneratePermutations(1, 16)
	b := GeneratePermutations(2, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should yield different permutation families")
	}
}
